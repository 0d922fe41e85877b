package models

import "time"

// FAQContentType selects between file-backed and inline rich-text answers.
type FAQContentType string

const (
	FAQContentAttachment FAQContentType = "attachment"
	FAQContentRichText   FAQContentType = "rich_text"
)

// FAQ is a frequently-asked-question entry. Attachment-typed entries carry
// uploaded files, rich-text entries carry inline HTML content.
type FAQ struct {
	ID                 string         `db:"id" json:"id"`
	Title              string         `db:"title" json:"title"`
	Description        string         `db:"description" json:"description"`
	Category           string         `db:"category" json:"category"`
	ContentType        FAQContentType `db:"content_type" json:"content_type"`
	Content            string         `db:"content" json:"content"`
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
func (f *FAQ) EffectiveAttachments() AttachmentList {
	return synthesizeLegacy(f.Attachments, f.FilePath, f.FileName, f.FileSize, f.MimeType, f.CreatedAt)
}

// FAQFilter captures listing criteria for FAQ entries.
type FAQFilter struct {
	Keyword  string
	Category string
	Page     int
	PageSize int
}
