package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"sharepile/file-api/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NewJWTMiddleware returns the auth gate used on every protected route.
// The credential is taken from the Authorization header (Bearer scheme)
// first, then from the auth_token cookie so browser sessions work without
// the SPA juggling headers. On success userID is set on the context,
// everything else aborts with 401 and the same generic message so callers
// can't probe which part of the check failed.
func NewJWTMiddleware(d *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)

		tokenStr := bearerToken(c)
		if tokenStr == "" {
			var err error

			tokenStr, err = c.Cookie("auth_token")
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error":     "No credentials provided",
					"requestID": requestID,
				})
				return
			}
		}

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
			}

			return []byte(viper.GetString("jwt.secret")), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "Authorization token invalid",
				"requestID": requestID,
			})

			zap.L().Debug("Failed to parse token", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "Authorization token invalid",
				"requestID": requestID,
			})
			return
		}

		userID, ok := claims["user_id"].(string)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "Authorization token invalid",
				"requestID": requestID,
			})
			return
		}

		exp, ok := claims["exp"].(float64)
		if !ok || time.Now().Unix() >= int64(exp) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "Authorization token expired. Please log in again",
				"requestID": requestID,
			})
			return
		}

		// The token may outlive the account it was issued for
		var count int64
		err = d.Model(model.User{}).Where("id = ?", userID).Count(&count).Error
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to check if user exists", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		if count == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "Authorization token invalid",
				"requestID": requestID,
			})
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" {
		return ""
	}

	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}

	return parts[1]
}
