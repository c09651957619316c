package user

import (
	"net/http"
	"time"

	"sharepile/file-api/internal"
	"sharepile/file-api/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func UserLogin(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data loginBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Error("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if data.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Email field can't be empty",
			"requestID": requestID,
		})
		return
	}

	if data.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Password field can't be empty",
			"requestID": requestID,
		})
		return
	}

	var user model.User

	if err := d.DB.Where("email = ?", data.Email).First(&user).Error; err != nil {
		// Same response as a wrong password so emails can't be enumerated
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":     "Invalid credentials",
			"requestID": requestID,
		})

		zap.L().Debug("User not found", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	ok, err := d.Argon.VerifyPasswd(data.Password, user.PasswordHash)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to verify password", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":     "Invalid credentials",
			"requestID": requestID,
		})
		return
	}

	ttl := time.Hour * time.Duration(viper.GetInt("jwt.ttl_hours"))

	authToken, err := makeToken(&jwt.MapClaims{
		"user_id": user.ID,
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(ttl).Unix(),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to generate JWT auth token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	// The token goes out twice: as an http-only cookie for the hosted SPA
	// and in the body for clients that prefer the Authorization header
	c.SetCookie("auth_token", authToken, int(ttl.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"userID": user.ID,
		"token":  authToken,
	})
}

func makeToken(c *jwt.MapClaims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return t.SignedString([]byte(viper.GetString("jwt.secret")))
}
