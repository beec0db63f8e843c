package repository

import (
	"context"

	"esignapi/internal/model"
)

// FieldRepository defines data access for placed fields. Geometry
// validation happens in the service layer; this is persistence only.
type FieldRepository interface {
	// Create inserts a single field.
	Create(ctx context.Context, f *model.Field) (*model.Field, error)

	// FindByID returns a field by its ID.
	FindByID(ctx context.Context, id string) (*model.Field, error)

	// ListByDocument returns a document's fields in creation order.
	ListByDocument(ctx context.Context, documentID string) ([]model.Field, error)

	// Update replaces a field row by ID.
	Update(ctx context.Context, f *model.Field) (*model.Field, error)

	// ReplaceForDocument swaps a document's entire field set in one
	// transaction; the editor flushes its working set through this on save.
	ReplaceForDocument(ctx context.Context, documentID string, fields []model.Field) ([]model.Field, error)

	// UpdateValues writes filled values keyed by field ID.
	UpdateValues(ctx context.Context, documentID string, values map[string]string) error

	// Delete removes a field by ID.
	Delete(ctx context.Context, id string) error
}
