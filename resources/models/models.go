package models

import (
	"context"

	qb "github.com/rashikbuksh/Synaptech-Backend/internal/querybuilder"
	"github.com/rashikbuksh/Synaptech-Backend/internal/validation"
)

// KeyUUID is the primary key of every nanoid keyed table
const KeyUUID = "uuid"

// Hook adjusts a validated payload inside the write transaction, before the row is written
type Hook func(ctx context.Context, values map[string]interface{}) error

// Definition describes one CRUD resource mounted under /v1
type Definition struct {
	// Path is the route below /v1, e.g. "lib/loan-paid"
	Path  string
	Table *qb.Table
	// Key is the primary key column; "uuid" when empty
	Key string
	// Label is the column returned by writes and echoed in toasts
	Label string
	// CreateLabel overrides Label for inserts
	CreateLabel string
	// List is the base projection with its joins
	List qb.Query
	// Detail projections are added to List for single row reads
	Detail []qb.Projection
	// SearchFields opts joined columns into free-text search
	SearchFields []string
	DefaultSort  string
	Validator    *validation.Validator
	// BulkCreate accepts a JSON array on POST
	BulkCreate   bool
	BeforeCreate Hook
	BeforeUpdate Hook
}

// InsertLabel returns the column echoed by inserts
func (d *Definition) InsertLabel() string {
	if d.CreateLabel == "" {
		return d.Label
	}
	return d.CreateLabel
}

// KeyColumn returns the primary key column
func (d *Definition) KeyColumn() string {
	if d.Key == "" {
		return KeyUUID
	}
	return d.Key
}

// Toast kinds
const (
	ToastCreate   = "create"
	ToastUpdate   = "update"
	ToastDelete   = "delete"
	ToastNotFound = "not-found"
)

// Toast is the body of every successful write
type Toast struct {
	ToastType string `json:"toastType"`
	Message   string `json:"message"`
}

// NewToast builds "<label> created|updated|deleted"
func NewToast(kind, label string) Toast {
	var verb string
	switch kind {
	case ToastCreate:
		verb = "created"
	case ToastUpdate:
		verb = "updated"
	case ToastDelete:
		verb = "deleted"
	}
	return Toast{ToastType: kind, Message: label + " " + verb}
}
