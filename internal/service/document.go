package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"esignapi/internal/model"
	"esignapi/internal/pdfinfo"
	"esignapi/internal/repository"
	"esignapi/internal/repository/postgres"
	"esignapi/internal/storage"
)

var (
	ErrIDRequired = errors.New("id is required")
	ErrNotFound   = errors.New("not found")
	ErrReaderNil  = errors.New("reader is nil")
	ErrNotPDF     = errors.New("file is not a valid PDF")
)

// DownloadExpiry bounds presigned download links.
const DownloadExpiry = 15 * time.Minute

// DocumentListResult is the service-level DTO for paginated documents.
type DocumentListResult struct {
	Items []model.Document `json:"data"`
	Total int              `json:"total"`
}

// DocumentService defines the use cases for handling uploaded documents.
type DocumentService interface {
	// Upload probes the PDF for page geometry, streams it to object
	// storage, and records metadata plus per-page dimensions. Storage is
	// rolled back if the database save fails.
	Upload(ctx context.Context, r io.ReadSeeker, originalFilename string, size int64) (*model.Document, error)

	// List returns documents using limit/offset and a total count.
	List(ctx context.Context, limit, offset int) (*DocumentListResult, error)

	// Get returns a single document by its ID.
	Get(ctx context.Context, id string) (*model.Document, error)

	// Pages returns the per-page PDF-point dimensions recorded at upload.
	Pages(ctx context.Context, id string) ([]model.PageDimensions, error)

	// DownloadURL returns a presigned URL for the document's bytes.
	DownloadURL(ctx context.Context, id string) (string, error)

	// UpdateSendOptions saves due date, message, expiry days, and the
	// notification flag from the preparation editor.
	UpdateSendOptions(ctx context.Context, doc *model.Document) error

	// Delete removes a document from both storage and the repository.
	Delete(ctx context.Context, id string) error
}

type documentService struct {
	store  storage.Storage
	repo   repository.DocumentRepository
	prober pdfinfo.Prober
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(store storage.Storage, repo repository.DocumentRepository, prober pdfinfo.Prober) DocumentService {
	return &documentService{store: store, repo: repo, prober: prober}
}

func (s *documentService) Upload(ctx context.Context, r io.ReadSeeker, originalFilename string, size int64) (*model.Document, error) {
	if r == nil {
		return nil, ErrReaderNil
	}

	// Probe first: a document we cannot read page geometry from cannot be
	// prepared, so it is rejected before anything is stored.
	info, err := s.prober.Probe(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotPDF, err)
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind upload: %w", err)
	}

	ext := filepath.Ext(originalFilename)
	if ext == "" {
		ext = ".pdf"
	}
	genName := uuid.New().String() + ext
	key := filepath.ToSlash(filepath.Join("documents", genName))

	objInfo, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: "application/pdf",
		Metadata: map[string]string{
			"original-filename": originalFilename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	now := time.Now().UTC()
	doc := &model.Document{
		ID:          uuid.New().String(),
		Filename:    genName,
		StoragePath: objInfo.Key,
		Size:        objInfo.Size,
		ContentType: "application/pdf",
		PageCount:   info.PageCount,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	pages := make([]model.PageDimensions, 0, len(info.Pages))
	for _, p := range info.Pages {
		pages = append(pages, model.PageDimensions{
			DocumentID: doc.ID,
			PageNumber: p.Number,
			Width:      p.Width,
			Height:     p.Height,
		})
	}

	stored, err := s.repo.Create(ctx, doc, pages)
	if err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

func (s *documentService) List(ctx context.Context, limit, offset int) (*DocumentListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &DocumentListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *documentService) Get(ctx context.Context, id string) (*model.Document, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if postgres.IsNoRowsError(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

func (s *documentService) Pages(ctx context.Context, id string) ([]model.PageDimensions, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	pages, err := s.repo.Pages(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		// Distinguish "no such document" from a document with no recorded
		// geometry; both render nothing, but the former is a client error.
		if _, err := s.repo.FindByID(ctx, id); err != nil {
			if postgres.IsNoRowsError(err) {
				return nil, ErrNotFound
			}
			return nil, err
		}
	}
	return pages, nil
}

func (s *documentService) DownloadURL(ctx context.Context, id string) (string, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return s.store.PresignGet(ctx, doc.StoragePath, DownloadExpiry)
}

func (s *documentService) UpdateSendOptions(ctx context.Context, doc *model.Document) error {
	if doc.ID == "" {
		return ErrIDRequired
	}
	if _, err := s.Get(ctx, doc.ID); err != nil {
		return err
	}
	return s.repo.UpdateSendOptions(ctx, doc)
}

func (s *documentService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if postgres.IsNoRowsError(err) {
			return ErrNotFound
		}
		return err
	}
	// Delete from storage first; if this fails, keep the DB row so the
	// storage reference is not lost.
	if err := s.store.Delete(ctx, doc.StoragePath); err != nil {
		return fmt.Errorf("delete storage: %w", err)
	}
	return s.repo.Delete(ctx, id)
}
