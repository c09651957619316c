package file

import (
	"net/http"
	"path"
	"strings"
	"time"

	"sharepile/file-api/internal"
	"sharepile/file-api/internal/model"
	"sharepile/file-api/pkg/util"
	"sharepile/file-api/pkg/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FileUpload takes exactly one multipart part named "file" plus an optional
// comma-separated "tags" field, writes the bytes into the store under a
// generated name and creates the file record together with its first share
// token. Record and blob commit together: if the insert fails the stored
// bytes are removed again so nothing is left orphaned.
func FileUpload(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Malformed multipart form",
			"requestID": requestID,
		})

		zap.L().Debug("Failed to parse multipart form", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	parts := form.File["file"]
	if len(parts) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     validators.ErrNoFile.Error(),
			"requestID": requestID,
		})
		return
	}

	if len(parts) > 1 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     validators.ErrTooManyFiles.Error(),
			"requestID": requestID,
		})
		return
	}

	fh := parts[0]

	code, f, mime, kind, err := validators.FileValidator(fh)
	if err != nil {
		c.JSON(code, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}
	defer f.Close()

	ext := mime.Extension()
	if ext == "" {
		ext = path.Ext(fh.Filename)
	}

	storedName := util.RandStr(12) + ext

	size, err := d.Store.Save(storedName, f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Failed to upload file",
			"requestID": requestID,
		})

		zap.L().Error("Failed to write upload to storage", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	var tags []string
	if raw := c.PostForm("tags"); raw != "" {
		tags = validators.CleanTags(strings.Split(raw, ","))
	}

	now := time.Now().Unix()
	fileEnt := &model.File{
		UserID:       userID,
		StoredName:   storedName,
		OriginalName: fh.Filename,
		Kind:         kind,
		Format:       mime.String(),
		Tags:         tags,
		Size:         size,
		CreatedAt:    now,
		Links: []model.ShareLink{
			{Token: util.NewShareToken(), CreatedAt: now},
		},
	}

	err = d.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(fileEnt).Error
	})
	if err != nil {
		if rmErr := d.Store.Remove(storedName); rmErr != nil {
			zap.L().Error("Failed to clean up stored blob after db error", zap.Error(rmErr), zap.String("requestID", requestID))
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Failed to upload file",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create file record", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, fileEnt)
}
