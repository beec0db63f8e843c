package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"esignapi/internal/layout"
	"esignapi/internal/model"
	"esignapi/internal/repository"
	"esignapi/internal/repository/postgres"
)

var (
	ErrInvalidFieldType = errors.New("unknown field type")
	ErrPageOutOfRange   = errors.New("page number out of range")
)

// FieldService defines the use cases for placed fields. Geometry passes
// through the layout engine's clamp on every write, so stored fields always
// satisfy the type minimums and non-negative positions.
type FieldService interface {
	// ListByDocument returns a document's fields in overlay render order.
	ListByDocument(ctx context.Context, documentID string) ([]model.Field, error)

	// Create places a single field.
	Create(ctx context.Context, f *model.Field) (*model.Field, error)

	// Update replaces a field by ID.
	Update(ctx context.Context, f *model.Field) (*model.Field, error)

	// Replace swaps a document's entire field set; the editor's save
	// flushes its working session through this.
	Replace(ctx context.Context, documentID string, fields []model.Field) ([]model.Field, error)

	// Delete removes a field by ID.
	Delete(ctx context.Context, id string) error
}

type fieldService struct {
	fields repository.FieldRepository
	docs   repository.DocumentRepository
}

// NewFieldService constructs a new FieldService.
func NewFieldService(fields repository.FieldRepository, docs repository.DocumentRepository) FieldService {
	return &fieldService{fields: fields, docs: docs}
}

// normalizeField validates type and page range and clamps geometry. The
// clamp is silent per the editor contract; only structural problems (bad
// type, page out of range) are errors.
func (s *fieldService) normalizeField(ctx context.Context, f *model.Field) error {
	if !f.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidFieldType, f.Type)
	}
	doc, err := s.docs.FindByID(ctx, f.DocumentID)
	if err != nil {
		if postgres.IsNoRowsError(err) {
			return ErrNotFound
		}
		return err
	}
	page := f.PageNumber.Int()
	if page < 1 || page > doc.PageCount {
		return fmt.Errorf("%w: page %d of %d", ErrPageOutOfRange, page, doc.PageCount)
	}
	r := layout.ClampGeometry(f.Type, layout.Rect{
		X:      f.X.Float64(),
		Y:      f.Y.Float64(),
		Width:  f.Width.Float64(),
		Height: f.Height.Float64(),
	})
	f.X = model.FlexFloat(r.X)
	f.Y = model.FlexFloat(r.Y)
	f.Width = model.FlexFloat(r.Width)
	f.Height = model.FlexFloat(r.Height)
	return nil
}

func (s *fieldService) ListByDocument(ctx context.Context, documentID string) ([]model.Field, error) {
	if documentID == "" {
		return nil, ErrIDRequired
	}
	return s.fields.ListByDocument(ctx, documentID)
}

func (s *fieldService) Create(ctx context.Context, f *model.Field) (*model.Field, error) {
	if f.DocumentID == "" {
		return nil, ErrIDRequired
	}
	if err := s.normalizeField(ctx, f); err != nil {
		return nil, err
	}
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	f.CreatedAt = now
	f.UpdatedAt = now
	return s.fields.Create(ctx, f)
}

func (s *fieldService) Update(ctx context.Context, f *model.Field) (*model.Field, error) {
	if f.ID == "" || f.DocumentID == "" {
		return nil, ErrIDRequired
	}
	if err := s.normalizeField(ctx, f); err != nil {
		return nil, err
	}
	out, err := s.fields.Update(ctx, f)
	if err != nil {
		if postgres.IsNoRowsError(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return out, nil
}

func (s *fieldService) Replace(ctx context.Context, documentID string, fields []model.Field) ([]model.Field, error) {
	if documentID == "" {
		return nil, ErrIDRequired
	}
	now := time.Now().UTC()
	for i := range fields {
		fields[i].DocumentID = documentID
		if err := s.normalizeField(ctx, &fields[i]); err != nil {
			return nil, err
		}
		if fields[i].ID == "" {
			// Fields placed client-side arrive with temporary ids the
			// client strips before save.
			fields[i].ID = uuid.New().String()
		}
		if fields[i].CreatedAt.IsZero() {
			fields[i].CreatedAt = now
		}
		fields[i].UpdatedAt = now
	}
	return s.fields.ReplaceForDocument(ctx, documentID, fields)
}

func (s *fieldService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	return s.fields.Delete(ctx, id)
}
