// Package root holds the handlers that don't belong to a resource
package root

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func Heartbeat(c *gin.Context) {
	c.Status(http.StatusOK)
}

// Validate only runs behind the auth gate, reaching it means the
// credential checked out
func Validate(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"userID": c.GetString("userID"),
	})
}
