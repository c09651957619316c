package validators

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/viper"
)

var (
	ErrFileTooLarge    = errors.New("file too large")
	ErrFileNameTooLong = errors.New("file name is too long")
	ErrNoFile          = errors.New("no file provided")
	ErrTooManyFiles    = errors.New("only one file per upload is allowed")
)

const maxFileNameSize = 255

// FileValidator checks a multipart upload and classifies it. Returns the
// opened file, the detected MIME type and the file kind ("image" for
// image/* content, "video" for everything else).
//
// Headers are checked first which is easy to spoof, but faster for legit
// clients. The sniffed type is what gets stored.
func FileValidator(fh *multipart.FileHeader) (int, multipart.File, *mimetype.MIME, string, error) {
	if fh == nil {
		return http.StatusBadRequest, nil, nil, "", ErrNoFile
	}

	if len(fh.Filename) > maxFileNameSize {
		return http.StatusBadRequest, nil, nil, "", ErrFileNameTooLong
	}

	maxFileSize := viper.GetInt64("upload.max_size")
	if maxFileSize > 0 && fh.Size > maxFileSize {
		return http.StatusRequestEntityTooLarge, nil, nil, "", ErrFileTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return http.StatusInternalServerError, nil, nil, "", err
	}

	mime, err := mimetype.DetectReader(f)
	if err != nil {
		f.Close()
		return http.StatusInternalServerError, nil, nil, "", err
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return http.StatusInternalServerError, nil, nil, "", err
	}

	kind := "video"
	if strings.HasPrefix(mime.String(), "image/") {
		kind = "image"
	}

	return 0, f, mime, kind, nil
}
