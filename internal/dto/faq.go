package dto

import "github.com/hisdocs/his-docs-api/internal/models"

// CreateFAQRequest contains the payload for creating a FAQ entry.
type CreateFAQRequest struct {
	Title       string                `json:"title" validate:"required,max=255"`
	Description string                `json:"description"`
	Category    string                `json:"category" validate:"omitempty,max=128"`
	ContentType models.FAQContentType `json:"content_type" validate:"required,oneof=attachment rich_text"`
	Content     string                `json:"content"`
}

// UpdateFAQRequest carries partial updates; nil fields are left untouched.
type UpdateFAQRequest struct {
	Title       *string                `json:"title" validate:"omitempty,max=255"`
	Description *string                `json:"description"`
	Category    *string                `json:"category" validate:"omitempty,max=128"`
	ContentType *models.FAQContentType `json:"content_type" validate:"omitempty,oneof=attachment rich_text"`
	Content     *string                `json:"content"`
}
