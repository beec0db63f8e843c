package repository

import (
	"context"

	"esignapi/internal/model"
)

// DocumentRepository defines data access for documents and their page
// geometry using SQL queries only. No business logic here.
type DocumentRepository interface {
	// Create inserts a new document record together with its per-page
	// dimensions, as one transaction.
	Create(ctx context.Context, doc *model.Document, pages []model.PageDimensions) (*model.Document, error)

	// FindByID returns a document by its ID.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// List returns a paginated list of documents and total rows count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Document], error)

	// Pages returns a document's per-page dimensions ordered by page number.
	Pages(ctx context.Context, documentID string) ([]model.PageDimensions, error)

	// UpdateSendOptions persists due date, message, expiry, and the
	// notification flag when the editor saves.
	UpdateSendOptions(ctx context.Context, doc *model.Document) error

	// Delete removes a document by ID. Page rows, fields, and signers go
	// with it via ON DELETE CASCADE.
	Delete(ctx context.Context, id string) error
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
type PageResult[T any] struct {
	Items []T
	Total int
}
