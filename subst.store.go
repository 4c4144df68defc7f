package subst

import (
	"context"
	"time"
)

// StoredTemplate is a named template source held in a storage backend.
type StoredTemplate struct {
	// Name is the template name used for lookups.
	Name string `json:"name"`

	// Source is the raw template source.
	Source string `json:"source"`

	// Version is the version number (1, 2, 3, ...). Higher is newer.
	Version int `json:"version"`

	// CreatedAt is when this version was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when this version was last modified.
	UpdatedAt time.Time `json:"updated_at"`
}

// TemplateStore is the interface for pluggable template storage backends.
// Implementations must be safe for concurrent use.
//
// The interface follows patterns from database/sql for familiarity:
// context for cancellation and timeouts, explicit error returns, Close
// for resource cleanup.
type TemplateStore interface {
	// Get retrieves the latest version of a template by name.
	Get(ctx context.Context, name string) (*StoredTemplate, error)

	// Put stores a template source under name, creating version 1 or the
	// next version if the name already exists. Returns the stored record.
	Put(ctx context.Context, name, source string) (*StoredTemplate, error)

	// List returns all stored template names in sorted order.
	List(ctx context.Context) ([]string, error)

	// Delete removes all versions of a template by name.
	Delete(ctx context.Context, name string) error

	// Close releases backend resources. Operations after Close fail.
	Close() error
}

// copyStoredTemplate returns a defensive copy so callers cannot mutate
// store internals.
func copyStoredTemplate(t *StoredTemplate) *StoredTemplate {
	dup := *t
	return &dup
}
