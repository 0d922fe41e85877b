package dto

import "github.com/hisdocs/his-docs-api/internal/models"

// ParameterPayload is the wire form of a single parameter definition.
type ParameterPayload struct {
	ParamType    models.ParamType `json:"param_type" validate:"omitempty,oneof=input output"`
	FieldName    string           `json:"field_name"`
	Name         string           `json:"name"`
	DataType     string           `json:"data_type"`
	Required     bool             `json:"required"`
	DefaultValue string           `json:"default_value"`
	Description  string           `json:"description"`
	Example      string           `json:"example"`
	OrderIndex   int              `json:"order_index"`
	DictionaryID *string          `json:"dictionary_id"`
}

// UpdateParameterRequest carries partial updates; nil fields are left untouched.
type UpdateParameterRequest struct {
	FieldName    *string `json:"field_name"`
	Name         *string `json:"name"`
	DataType     *string `json:"data_type"`
	Required     *bool   `json:"required"`
	DefaultValue *string `json:"default_value"`
	Description  *string `json:"description"`
	Example      *string `json:"example"`
	OrderIndex   *int    `json:"order_index"`
	DictionaryID *string `json:"dictionary_id"`
}

// ImportPreviewRequest submits raw delimited text for parsing.
type ImportPreviewRequest struct {
	Text      string           `json:"text" validate:"required"`
	ParamType models.ParamType `json:"param_type" validate:"required,oneof=input output"`
}

// ImportPreviewResponse returns the parsed rows without persisting them.
type ImportPreviewResponse struct {
	Parameters []ParameterPayload `json:"parameters"`
	Skipped    int                `json:"skipped"`
	Delimiter  string             `json:"delimiter"`
}

// ImportCommitRequest persists a previously previewed parameter batch.
type ImportCommitRequest struct {
	Parameters []ParameterPayload `json:"parameters" validate:"required,min=1"`
	ParamType  models.ParamType   `json:"param_type" validate:"required,oneof=input output"`
}
