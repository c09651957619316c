package file

import (
	"errors"
	"net/http"
	"time"

	"sharepile/file-api/internal"
	"sharepile/file-api/internal/model"
	"sharepile/file-api/pkg/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FileCreateLink issues one more share token for a file the caller owns.
// Existing tokens are untouched and keep resolving.
func FileCreateLink(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	fileID := c.Param("id")
	if fileID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "No file ID provided",
			"requestID": requestID,
		})
		return
	}

	var file model.File

	err := d.DB.
		Where("user_id = ? AND id = ?", userID, fileID).
		First(&file).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":     "File not found or unauthorized",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch file", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	link := model.ShareLink{
		FileID:    file.ID,
		Token:     util.NewShareToken(),
		CreatedAt: time.Now().Unix(),
	}

	if err := d.DB.Create(&link).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create share link", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": link.Token,
	})
}
