package file

import (
	"encoding/base64"
	"net/http"

	"sharepile/file-api/internal"
	"sharepile/file-api/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FileList returns every file the caller owns, newest first, with the
// content inlined as base64 the way the SPA consumes it.
func FileList(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	var entries []model.File

	err := d.DB.
		Preload("Links").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&entries).
		Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to lookup user files", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	out := make([]gin.H, 0, len(entries))

	for _, f := range entries {
		data, err := d.Store.Read(f.StoredName)
		if err != nil {
			// A missing blob means a crash between the disk write and the
			// record insert at some point. Skip it instead of failing the
			// whole listing
			zap.L().Warn("File record has no blob on disk",
				zap.Uint("id", f.ID),
				zap.String("stored_name", f.StoredName),
				zap.String("requestID", requestID))
			continue
		}

		out = append(out, gin.H{
			"id":         f.ID,
			"name":       f.OriginalName,
			"kind":       f.Kind,
			"format":     f.Format,
			"base64":     base64.StdEncoding.EncodeToString(data),
			"tags":       f.Tags,
			"views":      f.Views,
			"links":      f.TokenList(),
			"created_at": f.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"files": out,
	})
}
