package file

import (
	"errors"
	"net/http"

	"sharepile/file-api/internal"
	"sharepile/file-api/internal/model"
	"sharepile/file-api/pkg/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Racing merges retry the compare-and-swap instead of overwriting or
// erroring; exhaustion only happens under sustained write pressure
const mergeAttempts = 5

type tagBody struct {
	Tags []string `json:"tags"`
}

// FileAddTags merges the given tags into a file the caller owns. A file
// that doesn't exist and a file owned by someone else produce the same 404
// so non-owners can't tell which it was.
func FileAddTags(c *gin.Context, d *internal.Deps) {
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

	var data tagBody
	if err := c.BindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Malformed or invalid JSON request body",
			"requestID": requestID,
		})

		zap.L().Debug("Failed to read JSON body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := validators.ValidateTags(data.Tags); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	// The union is written with a compare-and-swap on the tag column: the
	// update only lands if the tags are unchanged since the read, so two
	// concurrent merges against the same row can't lose each other's tags
	for attempt := 0; attempt < mergeAttempts; attempt++ {
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

		merged := validators.MergeTags(file.Tags, data.Tags)
		if len(merged) == len(file.Tags) {
			// Nothing new, the union is already stored
			c.JSON(http.StatusOK, file)
			return
		}

		res := d.DB.Model(model.File{}).
			Where("id = ? AND tags = ?", file.ID, file.Tags).
			Update("tags", model.StringSlice(merged))
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to update tags", zap.Error(res.Error), zap.String("requestID", requestID))
			return
		}

		if res.RowsAffected == 1 {
			file.Tags = merged
			c.JSON(http.StatusOK, file)
			return
		}

		// Someone else got their merge in between the read and the write,
		// redo the union on top of their result
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"error":     "Internal server error",
		"requestID": requestID,
	})

	zap.L().Warn("Tag merge retries exhausted", zap.String("fileID", fileID), zap.String("requestID", requestID))
}
