package user

import (
	"net/http"

	"sharepile/file-api/internal"
	"sharepile/file-api/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func UserFetch(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	var user model.User
	if err := d.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	var fileCount int64
	var totalViews int64

	err := d.DB.Model(model.File{}).Where("user_id = ?", userID).Count(&fileCount).Error
	if err == nil {
		err = d.DB.Model(model.File{}).
			Where("user_id = ?", userID).
			Select("coalesce(sum(views), 0)").
			Find(&totalViews).
			Error
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch user stats", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"userID":      user.ID,
		"email":       user.Email,
		"files":       fileCount,
		"total_views": totalViews,
		"created_at":  user.CreatedAt,
	})
}
