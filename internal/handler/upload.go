package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/hisdocs/his-docs-api/internal/service"
	appErrors "github.com/hisdocs/his-docs-api/pkg/errors"
)

// formFileUpload extracts the "file" multipart part plus the optional
// "category" field. The caller owns closing the returned closer.
func formFileUpload(c *gin.Context) (service.FileUpload, func(), error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return service.FileUpload{}, nil, appErrors.Clone(appErrors.ErrValidation, "file is required")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return service.FileUpload{}, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open file")
	}

	upload := service.FileUpload{
		Filename: fileHeader.Filename,
		Size:     fileHeader.Size,
		MimeType: fileHeader.Header.Get("Content-Type"),
		Category: c.PostForm("category"),
		Content:  src,
	}
	return upload, func() { src.Close() }, nil
}
