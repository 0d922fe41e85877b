package dto

// DictionaryValuePayload is the wire form of a dictionary entry.
type DictionaryValuePayload struct {
	Key         string `json:"key" validate:"required,max=128"`
	Value       string `json:"value" validate:"required,max=255"`
	Description string `json:"description"`
	OrderIndex  int    `json:"order_index"`
}

// CreateDictionaryRequest contains the payload for creating a dictionary,
// optionally with its values inline.
type CreateDictionaryRequest struct {
	ProjectID   string                   `json:"project_id" validate:"required"`
	Code        string                   `json:"code" validate:"required,max=128"`
	Name        string                   `json:"name" validate:"required,max=255"`
	Description string                   `json:"description"`
	InterfaceID *string                  `json:"interface_id"`
	Values      []DictionaryValuePayload `json:"values"`
}

// UpdateDictionaryRequest carries partial updates; nil fields are left untouched.
type UpdateDictionaryRequest struct {
	Code        *string `json:"code" validate:"omitempty,max=128"`
	Name        *string `json:"name" validate:"omitempty,max=255"`
	Description *string `json:"description"`
	InterfaceID *string `json:"interface_id"`
}
