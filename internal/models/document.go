package models

import (
	"path"
	"time"
)

// DocumentType constrains what file kinds a document accepts.
type DocumentType string

const (
	DocumentTypePDF   DocumentType = "pdf"
	DocumentTypeImage DocumentType = "image"
)

// Document is a standalone reference document with file attachments.
// Rows created before multi-attachment support carry the legacy singular
// file columns instead of an attachments list.
type Document struct {
	ID                 string         `db:"id" json:"id"`
	Title              string         `db:"title" json:"title"`
	Description        string         `db:"description" json:"description"`
	Region             string         `db:"region" json:"region"`
	Person             string         `db:"person" json:"person"`
	DocumentType       DocumentType   `db:"document_type" json:"document_type"`
	Attachments        AttachmentList `db:"attachments" json:"attachments"`
	AttachmentsVersion int            `db:"attachments_version" json:"-"`
	FilePath           *string        `db:"file_path" json:"file_path,omitempty"`
	FileName           *string        `db:"file_name" json:"file_name,omitempty"`
	FileSize           *int64         `db:"file_size" json:"file_size,omitempty"`
	MimeType           *string        `db:"mime_type" json:"mime_type,omitempty"`
	CreatorID          string         `db:"creator_id" json:"creator_id"`
	CreatedAt          time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time      `db:"updated_at" json:"updated_at"`
}

// EffectiveAttachments returns the attachment list, synthesizing a
// one-element list from the legacy singular columns when the list is empty.
func (d *Document) EffectiveAttachments() AttachmentList {
	return synthesizeLegacy(d.Attachments, d.FilePath, d.FileName, d.FileSize, d.MimeType, d.CreatedAt)
}

// DocumentFilter captures listing criteria for documents.
type DocumentFilter struct {
	Keyword      string
	DocumentType DocumentType
	Region       string
	Person       string
	Page         int
	PageSize     int
}

func synthesizeLegacy(list AttachmentList, filePath, fileName *string, fileSize *int64, mimeType *string, fallbackTime time.Time) AttachmentList {
	if len(list) > 0 {
		return list
	}
	if filePath == nil || *filePath == "" {
		return list
	}

	// The stored filename comes from the on-disk path, not the display
	// name: legacy rows keep the user-facing name in file_name while the
	// file itself sits under a timestamped name.
	att := Attachment{
		FilePath:       *filePath,
		StoredFilename: path.Base(*filePath),
		UploadTime:     fallbackTime,
	}
	att.Filename = att.StoredFilename
	if fileName != nil && *fileName != "" {
		att.Filename = *fileName
	}
	if fileSize != nil {
		att.FileSize = *fileSize
	}
	if mimeType != nil {
		att.MimeType = *mimeType
	}
	return AttachmentList{att}
}
