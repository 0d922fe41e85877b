package models

import "time"

// ParamType separates request fields from response fields.
type ParamType string

const (
	ParamTypeInput  ParamType = "input"
	ParamTypeOutput ParamType = "output"
)

// Parameter describes a single input or output field of an interface.
type Parameter struct {
	ID           string    `db:"id" json:"id"`
	InterfaceID  string    `db:"interface_id" json:"interface_id"`
	ParamType    ParamType `db:"param_type" json:"param_type"`
	FieldName    string    `db:"field_name" json:"field_name"`
	Name         string    `db:"name" json:"name"`
	DataType     string    `db:"data_type" json:"data_type"`
	Required     bool      `db:"required" json:"required"`
	DefaultValue string    `db:"default_value" json:"default_value"`
	Description  string    `db:"description" json:"description"`
	Example      string    `db:"example" json:"example"`
	OrderIndex   int       `db:"order_index" json:"order_index"`
	DictionaryID *string   `db:"dictionary_id" json:"dictionary_id,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
