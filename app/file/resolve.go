package file

import (
	"encoding/base64"
	"errors"
	"net/http"
	"time"

	"sharepile/file-api/internal"
	"sharepile/file-api/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FileResolve is the public side of sharing: no auth, the token is the
// capability. One successful call accounts exactly one view. The counter
// bump is a single UPDATE at the database so concurrent resolutions can't
// lose increments.
func FileResolve(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "No token provided",
			"requestID": requestID,
		})
		return
	}

	var link model.ShareLink

	err := d.DB.Where("token = ?", token).First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":     "File not found",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to look up share token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	var file model.File

	if err := d.DB.Where("id = ?", link.FileID).First(&file).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Share token points at a missing file", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	data, err := d.Store.Read(file.StoredName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to read blob from storage", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	// View accounting happens after the content is known to be servable,
	// otherwise a broken blob would still count views
	err = d.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(model.File{}).
			Where("id = ?", file.ID).
			UpdateColumn("views", gorm.Expr("views + ?", 1)).
			Error
		if err != nil {
			return err
		}

		return tx.Create(&model.AccessRecord{
			FileID:   file.ID,
			IP:       c.ClientIP(),
			ViewedAt: time.Now().Unix(),
		}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to account view", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	var views int64

	err = d.DB.Model(model.File{}).
		Where("id = ?", file.ID).
		Select("views").
		Scan(&views).
		Error
	if err != nil {
		// The increment already committed, so the pre-read value plus our
		// own view is the floor. Under concurrent views it can lag behind
		// the stored count, hence the log
		views = file.Views + 1
		zap.L().Error("Failed to read view count after increment", zap.Error(err), zap.String("requestID", requestID))
	}

	c.JSON(http.StatusOK, gin.H{
		"base64":   base64.StdEncoding.EncodeToString(data),
		"filename": file.OriginalName,
		"kind":     file.Kind,
		"format":   file.Format,
		"views":    views,
	})
}
