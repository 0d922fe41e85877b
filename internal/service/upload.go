package service

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/hisdocs/his-docs-api/internal/models"
	appErrors "github.com/hisdocs/his-docs-api/pkg/errors"
)

// FileUpload carries an incoming multipart file through the service layer.
type FileUpload struct {
	Filename string
	Size     int64
	MimeType string
	Category string
	Content  io.Reader
}

// uploadStorage is the slice of LocalStorage the attachment flows need.
type uploadStorage interface {
	SaveStream(filename string, r io.Reader) (string, error)
	Delete(filename string) error
}

// uploadPolicy decides which files an entity accepts.
type uploadPolicy func(filename, mimeType string) bool

func pdfOnly(filename, mimeType string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".pdf") && mimeType == "application/pdf"
}

func imageOnly(_ string, mimeType string) bool {
	return strings.HasPrefix(mimeType, "image/")
}

func pdfOrImage(filename, mimeType string) bool {
	return pdfOnly(filename, mimeType) || imageOnly(filename, mimeType)
}

// validateUpload checks size and type before anything touches disk.
func validateUpload(upload FileUpload, maxSize int64, allowed uploadPolicy, typeMessage string) error {
	if upload.Filename == "" {
		return appErrors.Clone(appErrors.ErrValidation, "file name is required")
	}
	if maxSize > 0 && upload.Size > maxSize {
		return appErrors.Clone(appErrors.ErrFileTooLarge, fmt.Sprintf("file exceeds the %d MB limit", maxSize/(1024*1024)))
	}
	if allowed != nil && !allowed(upload.Filename, upload.MimeType) {
		return appErrors.Clone(appErrors.ErrUnsupportedFile, typeMessage)
	}
	return nil
}

// storedFilename builds the on-disk name: unix timestamp prefix plus the
// sanitized original name. The prefix keeps repeated uploads of the same
// file distinct within one entity directory.
func storedFilename(original string) string {
	return fmt.Sprintf("%d_%s", time.Now().Unix(), sanitizeFilename(original))
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	replacer := strings.NewReplacer("/", "_", "\\", "_", "..", "_", " ", "_")
	name = replacer.Replace(name)
	if name == "" || name == "." {
		name = "file"
	}
	return name
}

// buildAttachment assembles the bookkeeping entry for a stored upload.
func buildAttachment(upload FileUpload, stored, publicPath string) models.Attachment {
	return models.Attachment{
		Filename:       upload.Filename,
		StoredFilename: stored,
		FilePath:       publicPath,
		FileSize:       upload.Size,
		MimeType:       upload.MimeType,
		UploadTime:     time.Now().UTC(),
		Category:       upload.Category,
	}
}
