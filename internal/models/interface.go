package models

import "time"

// InterfaceType distinguishes database-view style interfaces from HTTP APIs.
type InterfaceType string

const (
	InterfaceTypeView InterfaceType = "view"
	InterfaceTypeAPI  InterfaceType = "api"
)

// InterfaceStatus marks whether an interface is in active use.
type InterfaceStatus string

const (
	InterfaceStatusActive   InterfaceStatus = "active"
	InterfaceStatusInactive InterfaceStatus = "inactive"
)

// Interface is one catalogued integration point of a HIS project.
type Interface struct {
	ID             string          `db:"id" json:"id"`
	ProjectID      string          `db:"project_id" json:"project_id"`
	Code           string          `db:"code" json:"code"`
	Name           string          `db:"name" json:"name"`
	Description    string          `db:"description" json:"description"`
	InterfaceType  InterfaceType   `db:"interface_type" json:"interface_type"`
	URL            string          `db:"url" json:"url"`
	Method         string          `db:"method" json:"method"`
	Category       string          `db:"category" json:"category"`
	Tags           StringList      `db:"tags" json:"tags"`
	Status         InterfaceStatus `db:"status" json:"status"`
	InputExample   string          `db:"input_example" json:"input_example"`
	OutputExample  string          `db:"output_example" json:"output_example"`
	ViewDefinition string          `db:"view_definition" json:"view_definition"`
	Notes          string          `db:"notes" json:"notes"`
	CreatorID      string          `db:"creator_id" json:"creator_id"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at" json:"updated_at"`

	// Parameters are loaded on detail reads, not on list queries.
	Parameters []Parameter `db:"-" json:"parameters,omitempty"`
}

// InterfaceFilter captures search criteria for the interface catalogue.
type InterfaceFilter struct {
	Keyword       string          `json:"keyword"`
	ProjectID     string          `json:"project_id"`
	InterfaceType InterfaceType   `json:"interface_type"`
	Category      string          `json:"category"`
	Tags          []string        `json:"tags"`
	Status        InterfaceStatus `json:"status"`
	Page          int             `json:"page"`
	PageSize      int             `json:"page_size"`
}
