package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"esignapi/internal/model"
	"esignapi/internal/repository"
	"esignapi/internal/repository/postgres"
)

var (
	ErrInvalidEmail      = errors.New("invalid email address")
	ErrInvalidTransition = errors.New("illegal signer status transition")
)

// SignerService defines the use cases for managing a document's signers.
type SignerService interface {
	// ListByDocument returns signers in signing order.
	ListByDocument(ctx context.Context, documentID string) ([]model.Signer, error)

	// Create adds a signer with a palette color and the next signing
	// order slot.
	Create(ctx context.Context, s *model.Signer) (*model.Signer, error)

	// Update edits a signer's email, name, role, order, or color.
	Update(ctx context.Context, s *model.Signer) (*model.Signer, error)

	// UpdateStatus advances a signer through the signing flow, enforcing
	// transition legality.
	UpdateStatus(ctx context.Context, id string, status model.SignerStatus) (*model.Signer, error)

	// Delete removes a signer; their fields become unassigned.
	Delete(ctx context.Context, id string) error
}

type signerService struct {
	signers repository.SignerRepository
}

// NewSignerService constructs a new SignerService.
func NewSignerService(signers repository.SignerRepository) SignerService {
	return &signerService{signers: signers}
}

func (s *signerService) ListByDocument(ctx context.Context, documentID string) ([]model.Signer, error) {
	if documentID == "" {
		return nil, ErrIDRequired
	}
	return s.signers.ListByDocument(ctx, documentID)
}

func (s *signerService) Create(ctx context.Context, sg *model.Signer) (*model.Signer, error) {
	if sg.DocumentID == "" {
		return nil, ErrIDRequired
	}
	if !model.ValidEmail(sg.Email) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEmail, sg.Email)
	}

	existing, err := s.signers.ListByDocument(ctx, sg.DocumentID)
	if err != nil {
		return nil, err
	}

	if sg.ID == "" {
		sg.ID = uuid.New().String()
	}
	if sg.Order == 0 {
		sg.Order = len(existing) + 1
	}
	if sg.Color == "" {
		sg.Color = model.PaletteColor(len(existing))
	}
	sg.Status = model.SignerPending
	now := time.Now().UTC()
	sg.CreatedAt = now
	sg.UpdatedAt = now
	return s.signers.Create(ctx, sg)
}

func (s *signerService) Update(ctx context.Context, sg *model.Signer) (*model.Signer, error) {
	if sg.ID == "" {
		return nil, ErrIDRequired
	}
	if !model.ValidEmail(sg.Email) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEmail, sg.Email)
	}
	out, err := s.signers.Update(ctx, sg)
	if err != nil {
		if postgres.IsNoRowsError(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return out, nil
}

func (s *signerService) UpdateStatus(ctx context.Context, id string, status model.SignerStatus) (*model.Signer, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	sg, err := s.signers.FindByID(ctx, id)
	if err != nil {
		if postgres.IsNoRowsError(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !sg.Status.CanTransition(status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, sg.Status, status)
	}
	if err := s.signers.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	sg.Status = status
	return sg, nil
}

func (s *signerService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	return s.signers.Delete(ctx, id)
}
