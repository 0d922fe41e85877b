package dto

import "github.com/hisdocs/his-docs-api/internal/models"

// CreateInterfaceRequest contains the payload for cataloguing an interface.
// Parameters may be supplied inline and are stored together with the record.
type CreateInterfaceRequest struct {
	ProjectID      string                 `json:"project_id" validate:"required"`
	Code           string                 `json:"code" validate:"required,max=128"`
	Name           string                 `json:"name" validate:"required,max=255"`
	Description    string                 `json:"description"`
	InterfaceType  models.InterfaceType   `json:"interface_type" validate:"required,oneof=view api"`
	URL            string                 `json:"url" validate:"omitempty,max=512"`
	Method         string                 `json:"method" validate:"omitempty,max=16"`
	Category       string                 `json:"category" validate:"omitempty,max=128"`
	Tags           []string               `json:"tags"`
	Status         models.InterfaceStatus `json:"status" validate:"omitempty,oneof=active inactive"`
	InputExample   string                 `json:"input_example"`
	OutputExample  string                 `json:"output_example"`
	ViewDefinition string                 `json:"view_definition"`
	Notes          string                 `json:"notes"`
	Parameters     []ParameterPayload     `json:"parameters"`
}

// UpdateInterfaceRequest carries partial updates; nil fields are left
// untouched. A non-nil Parameters slice replaces the full parameter list.
type UpdateInterfaceRequest struct {
	Code           *string                 `json:"code" validate:"omitempty,max=128"`
	Name           *string                 `json:"name" validate:"omitempty,max=255"`
	Description    *string                 `json:"description"`
	InterfaceType  *models.InterfaceType   `json:"interface_type" validate:"omitempty,oneof=view api"`
	URL            *string                 `json:"url" validate:"omitempty,max=512"`
	Method         *string                 `json:"method" validate:"omitempty,max=16"`
	Category       *string                 `json:"category" validate:"omitempty,max=128"`
	Tags           *[]string               `json:"tags"`
	Status         *models.InterfaceStatus `json:"status" validate:"omitempty,oneof=active inactive"`
	InputExample   *string                 `json:"input_example"`
	OutputExample  *string                 `json:"output_example"`
	ViewDefinition *string                 `json:"view_definition"`
	Notes          *string                 `json:"notes"`
	Parameters     *[]ParameterPayload     `json:"parameters"`
}

// SearchInterfacesRequest is the POST /interfaces/search body.
type SearchInterfacesRequest struct {
	Keyword       string                 `json:"keyword"`
	ProjectID     string                 `json:"project_id"`
	InterfaceType models.InterfaceType   `json:"interface_type" validate:"omitempty,oneof=view api"`
	Category      string                 `json:"category"`
	Tags          []string               `json:"tags"`
	Status        models.InterfaceStatus `json:"status" validate:"omitempty,oneof=active inactive"`
	Page          int                    `json:"page"`
	PageSize      int                    `json:"page_size"`
}
