package models

import "time"

// Dictionary is a reference code table shared by interfaces of a project.
type Dictionary struct {
	ID          string    `db:"id" json:"id"`
	ProjectID   string    `db:"project_id" json:"project_id"`
	Code        string    `db:"code" json:"code"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	InterfaceID *string   `db:"interface_id" json:"interface_id,omitempty"`
	CreatorID   string    `db:"creator_id" json:"creator_id"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`

	// Values are loaded on detail reads.
	Values []DictionaryValue `db:"-" json:"values,omitempty"`
}

// DictionaryValue is one ordered key/value entry of a dictionary.
type DictionaryValue struct {
	ID           string    `db:"id" json:"id"`
	DictionaryID string    `db:"dictionary_id" json:"dictionary_id"`
	Key          string    `db:"key" json:"key"`
	Value        string    `db:"value" json:"value"`
	Description  string    `db:"description" json:"description"`
	OrderIndex   int       `db:"order_index" json:"order_index"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// DictionaryFilter captures listing criteria for dictionaries.
type DictionaryFilter struct {
	ProjectID string
	Keyword   string
	Page      int
	PageSize  int
}
