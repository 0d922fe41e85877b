package dto

import "github.com/hisdocs/his-docs-api/internal/models"

// CreateDocumentRequest contains the payload for creating a document record.
// Files are attached afterwards through the attachment endpoints.
type CreateDocumentRequest struct {
	Title        string              `json:"title" validate:"required,max=255"`
	Description  string              `json:"description"`
	Region       string              `json:"region" validate:"omitempty,max=128"`
	Person       string              `json:"person" validate:"omitempty,max=128"`
	DocumentType models.DocumentType `json:"document_type" validate:"required,oneof=pdf image"`
}

// UpdateDocumentRequest carries partial updates; nil fields are left untouched.
type UpdateDocumentRequest struct {
	Title        *string              `json:"title" validate:"omitempty,max=255"`
	Description  *string              `json:"description"`
	Region       *string              `json:"region" validate:"omitempty,max=128"`
	Person       *string              `json:"person" validate:"omitempty,max=128"`
	DocumentType *models.DocumentType `json:"document_type" validate:"omitempty,oneof=pdf image"`
}
