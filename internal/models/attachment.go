package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Attachment describes one stored upload belonging to an entity.
// StoredFilename is unique within the owning entity's upload directory
// and is the sole key used for deletion.
type Attachment struct {
	Filename       string    `json:"filename"`
	StoredFilename string    `json:"stored_filename"`
	FilePath       string    `json:"file_path"`
	FileSize       int64     `json:"file_size"`
	MimeType       string    `json:"mime_type"`
	UploadTime     time.Time `json:"upload_time"`
	Category       string    `json:"category,omitempty"`
}

// AttachmentList is a JSONB-backed slice of attachments.
type AttachmentList []Attachment

// Value implements driver.Valuer for JSONB storage.
func (l AttachmentList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("marshal attachments: %w", err)
	}
	return string(data), nil
}

// Scan implements sql.Scanner for JSONB storage.
func (l *AttachmentList) Scan(src interface{}) error {
	if src == nil {
		*l = nil
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported attachments column type %T", src)
	}
	if len(data) == 0 {
		*l = nil
		return nil
	}
	return json.Unmarshal(data, l)
}

// Find returns the attachment with the given stored filename, if present.
func (l AttachmentList) Find(storedFilename string) (Attachment, bool) {
	for _, a := range l {
		if a.StoredFilename == storedFilename {
			return a, true
		}
	}
	return Attachment{}, false
}

// Without returns a copy of the list with the given stored filename removed.
func (l AttachmentList) Without(storedFilename string) AttachmentList {
	result := make(AttachmentList, 0, len(l))
	for _, a := range l {
		if a.StoredFilename != storedFilename {
			result = append(result, a)
		}
	}
	return result
}

// CountByMimePrefix counts attachments whose mime type starts with prefix.
func (l AttachmentList) CountByMimePrefix(prefix string) int {
	count := 0
	for _, a := range l {
		if len(a.MimeType) >= len(prefix) && a.MimeType[:len(prefix)] == prefix {
			count++
		}
	}
	return count
}

// StringList is a JSONB-backed slice of strings, used for interface tags.
type StringList []string

// Value implements driver.Valuer for JSONB storage.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("marshal string list: %w", err)
	}
	return string(data), nil
}

// Scan implements sql.Scanner for JSONB storage.
func (l *StringList) Scan(src interface{}) error {
	if src == nil {
		*l = nil
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported string list column type %T", src)
	}
	if len(data) == 0 {
		*l = nil
		return nil
	}
	return json.Unmarshal(data, l)
}
