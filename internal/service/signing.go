package service

import (
	"context"
	"errors"
	"fmt"

	"esignapi/internal/layout"
	"esignapi/internal/model"
	"esignapi/internal/repository"
	"esignapi/internal/repository/postgres"
)

var (
	ErrSignerMismatch  = errors.New("field not assigned to signer")
	ErrValueRejected   = errors.New("value fails field validation rule")
	ErrMissingRequired = errors.New("required field not filled")
)

// SigningService serves the signer-facing flow: the page-scoped view of a
// signer's own fields, and value submission.
type SigningService interface {
	// FieldsForPage returns the signer's fields on one page, in render
	// order, applying conditional visibility. Pages without recorded
	// dimensions yield no fields.
	FieldsForPage(ctx context.Context, documentID, signerID string, page int) ([]model.Field, error)

	// Submit stores filled values (signature data URIs verbatim) after
	// checking assignment, validation rules, and required coverage, then
	// marks the signer COMPLETED.
	Submit(ctx context.Context, documentID, signerID string, values map[string]string) error
}

type signingService struct {
	fields  repository.FieldRepository
	signers repository.SignerRepository
	docs    repository.DocumentRepository
}

// NewSigningService constructs a new SigningService.
func NewSigningService(fields repository.FieldRepository, signers repository.SignerRepository, docs repository.DocumentRepository) SigningService {
	return &signingService{fields: fields, signers: signers, docs: docs}
}

func (s *signingService) FieldsForPage(ctx context.Context, documentID, signerID string, page int) ([]model.Field, error) {
	if documentID == "" || signerID == "" {
		return nil, ErrIDRequired
	}
	fields, err := s.fields.ListByDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}
	dims, err := s.docs.Pages(ctx, documentID)
	if err != nil {
		return nil, err
	}
	pages := make(map[int]layout.PageSize, len(dims))
	for _, d := range dims {
		pages[d.PageNumber] = layout.PageSize{Width: d.Width, Height: d.Height}
	}

	visible := layout.VisibleFields(fields, layout.View{Page: page, SignerID: signerID}, pages)
	out := make([]model.Field, 0, len(visible))
	for _, f := range visible {
		if f.IsVisible(fields) {
			out = append(out, f)
		}
	}
	return out, nil
}

func (s *signingService) Submit(ctx context.Context, documentID, signerID string, values map[string]string) error {
	if documentID == "" || signerID == "" {
		return ErrIDRequired
	}
	signer, err := s.signers.FindByID(ctx, signerID)
	if err != nil {
		if postgres.IsNoRowsError(err) {
			return ErrNotFound
		}
		return err
	}
	if !signer.Status.CanTransition(model.SignerCompleted) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, signer.Status, model.SignerCompleted)
	}

	fields, err := s.fields.ListByDocument(ctx, documentID)
	if err != nil {
		return err
	}
	byID := make(map[string]model.Field, len(fields))
	for _, f := range fields {
		byID[f.ID] = f
	}

	for id, v := range values {
		f, ok := byID[id]
		if !ok {
			return fmt.Errorf("%w: field %s", ErrNotFound, id)
		}
		if f.SignerID != signerID {
			return fmt.Errorf("%w: field %s", ErrSignerMismatch, id)
		}
		// Malformed rules degrade to "no extra validation".
		if rule, ok := model.ParseValidationRule(f.ValidationRule); ok && !rule.Accepts(v) {
			return fmt.Errorf("%w: field %s", ErrValueRejected, id)
		}
	}

	// Required coverage: every required, visible field of this signer must
	// have a value either already stored or in this submission.
	for _, f := range fields {
		if f.SignerID != signerID || !f.Required || !f.IsVisible(fields) {
			continue
		}
		if f.Value == "" && values[f.ID] == "" {
			return fmt.Errorf("%w: field %s", ErrMissingRequired, f.ID)
		}
	}

	if err := s.fields.UpdateValues(ctx, documentID, values); err != nil {
		return err
	}
	return s.signers.UpdateStatus(ctx, signerID, model.SignerCompleted)
}
