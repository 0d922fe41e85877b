package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// DocumentNote is a lightweight reference to project-level documentation
// kept inline on the project record.
type DocumentNote struct {
	Name       string `json:"name"`
	Version    string `json:"version,omitempty"`
	UpdateDate string `json:"update_date,omitempty"`
}

// DocumentNoteList is a JSONB-backed slice of document notes.
type DocumentNoteList []DocumentNote

// Value implements driver.Valuer for JSONB storage.
func (l DocumentNoteList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("marshal document notes: %w", err)
	}
	return string(data), nil
}

// Scan implements sql.Scanner for JSONB storage.
func (l *DocumentNoteList) Scan(src interface{}) error {
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
		return fmt.Errorf("unsupported document notes column type %T", src)
	}
	if len(data) == 0 {
		*l = nil
		return nil
	}
	return json.Unmarshal(data, l)
}

// Project groups interfaces and dictionaries for one integration effort.
type Project struct {
	ID                 string           `db:"id" json:"id"`
	Name               string           `db:"name" json:"name"`
	Manager            string           `db:"manager" json:"manager"`
	ContactInfo        string           `db:"contact_info" json:"contact_info"`
	Description        string           `db:"description" json:"description"`
	Documents          DocumentNoteList `db:"documents" json:"documents"`
	Attachments        AttachmentList   `db:"attachments" json:"attachments"`
	AttachmentsVersion int              `db:"attachments_version" json:"-"`
	CreatorID          string           `db:"creator_id" json:"creator_id"`
	CreatedAt          time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time        `db:"updated_at" json:"updated_at"`
}

// ProjectFilter captures listing criteria for projects.
type ProjectFilter struct {
	Keyword  string
	Page     int
	PageSize int
}
