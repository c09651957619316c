package user

import (
	"net/http"
	"time"

	"sharepile/file-api/internal"
	"sharepile/file-api/internal/model"
	"sharepile/file-api/pkg/validators"

	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

type registerBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func UserRegister(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data registerBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Error("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := validators.EmailValidator(data.Email); err != nil {
		zap.L().Debug("Invalid email", zap.Error(err), zap.String("requestID", requestID))

		c.JSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	if err := validators.PasswordValidator(data.Password); err != nil {
		zap.L().Debug("Invalid password", zap.Error(err), zap.String("requestID", requestID))

		c.JSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	var found bool

	r := d.DB.Model(model.User{}).
		Select("count(*) > 0").
		Where("email = ?", data.Email).
		Find(&found)
	if r.Error != nil && r.Error != gorm.ErrRecordNotFound {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to check if user is registered", zap.Error(r.Error), zap.String("requestID", requestID))
		return
	}

	if found {
		c.JSON(http.StatusConflict, gin.H{
			"error":     "This email is already registered. Please login or use a different email",
			"requestID": requestID,
		})
		return
	}

	hash, err := d.Argon.GenerateFromPassword(data.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to hash password", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	userID, err := gonanoid.Generate(charset, 16)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to generate user ID", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := d.DB.Create(&model.User{
		ID:           userID,
		Email:        data.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now().Unix(),
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"userID": userID,
	})
}
