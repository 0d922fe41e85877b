package dto

import "github.com/hisdocs/his-docs-api/internal/models"

// CreateProjectRequest contains the payload for creating a project.
type CreateProjectRequest struct {
	Name        string                  `json:"name" validate:"required,max=255"`
	Manager     string                  `json:"manager" validate:"omitempty,max=128"`
	ContactInfo string                  `json:"contact_info" validate:"omitempty,max=255"`
	Description string                  `json:"description"`
	Documents   models.DocumentNoteList `json:"documents"`
}

// UpdateProjectRequest carries partial updates; nil fields are left untouched.
type UpdateProjectRequest struct {
	Name        *string                  `json:"name" validate:"omitempty,max=255"`
	Manager     *string                  `json:"manager" validate:"omitempty,max=128"`
	ContactInfo *string                  `json:"contact_info" validate:"omitempty,max=255"`
	Description *string                  `json:"description"`
	Documents   *models.DocumentNoteList `json:"documents"`
}
