package repository

import (
	"context"

	"esignapi/internal/model"
)

// SignerRepository defines data access for document signers.
type SignerRepository interface {
	// Create inserts a new signer.
	Create(ctx context.Context, s *model.Signer) (*model.Signer, error)

	// FindByID returns a signer by its ID.
	FindByID(ctx context.Context, id string) (*model.Signer, error)

	// ListByDocument returns a document's signers ordered by signing order.
	ListByDocument(ctx context.Context, documentID string) ([]model.Signer, error)

	// Update replaces a signer row by ID.
	Update(ctx context.Context, s *model.Signer) (*model.Signer, error)

	// UpdateStatus sets a signer's status. Transition legality is checked
	// by the service layer before calling.
	UpdateStatus(ctx context.Context, id string, status model.SignerStatus) error

	// Delete removes a signer by ID; their fields become unassigned via
	// ON DELETE SET NULL.
	Delete(ctx context.Context, id string) error
}
