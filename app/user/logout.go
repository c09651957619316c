package user

import (
	"net/http"

	"sharepile/file-api/internal"

	"github.com/gin-gonic/gin"
)

// UserLogout drops the auth cookie. Tokens are stateless so a copy kept by
// the client stays technically valid until it expires, the cookie removal
// is what ends the browser session.
func UserLogout(c *gin.Context, d *internal.Deps) {
	c.SetCookie("auth_token", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out",
	})
}
