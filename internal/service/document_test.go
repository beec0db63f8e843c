package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"esignapi/internal/model"
	"esignapi/internal/pdfinfo"
	proberMocks "esignapi/internal/pdfinfo/mocks"
	"esignapi/internal/repository"
	repoMocks "esignapi/internal/repository/mocks"
	"esignapi/internal/storage"
	storeMocks "esignapi/internal/storage/mocks"
)

func twoPageInfo() *pdfinfo.Info {
	return &pdfinfo.Info{
		PageCount: 2,
		Pages: []pdfinfo.Page{
			{Number: 1, Width: 612, Height: 792},
			{Number: 2, Width: 612, Height: 792},
		},
	}
}

func TestDocumentService_Upload(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		filename   string
		size       int64
		setupMocks func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository, mProber *proberMocks.MockProber) io.ReadSeeker
		wantErr    error
		wantErrMsg string
	}{
		{
			name:     "happy path",
			filename: "contract.pdf",
			size:     1024,
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository, mProber *proberMocks.MockProber) io.ReadSeeker {
				r := bytes.NewReader([]byte("%PDF-1.7 fake"))
				mProber.On("Probe", r).Return(twoPageInfo(), nil)
				mStore.On("Put", ctx, mock.MatchedBy(func(key string) bool {
					return strings.HasPrefix(key, "documents/") && strings.HasSuffix(key, ".pdf")
				}), r, mock.Anything).Return(storage.ObjectInfo{
					Key:  "documents/uuid.pdf",
					Size: 1024,
				}, nil)
				mRepo.On("Create", ctx, mock.MatchedBy(func(doc *model.Document) bool {
					return doc.PageCount == 2 && doc.ContentType == "application/pdf"
				}), mock.MatchedBy(func(pages []model.PageDimensions) bool {
					return len(pages) == 2 && pages[0].Width == 612
				})).Return(&model.Document{ID: "gen-id", PageCount: 2}, nil)
				return r
			},
		},
		{
			name:     "nil reader",
			filename: "contract.pdf",
			setupMocks: func(*storeMocks.MockStorage, *repoMocks.MockDocumentRepository, *proberMocks.MockProber) io.ReadSeeker {
				return nil
			},
			wantErr: ErrReaderNil,
		},
		{
			name:     "probe failure rejects upload before storage",
			filename: "notes.txt",
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository, mProber *proberMocks.MockProber) io.ReadSeeker {
				r := bytes.NewReader([]byte("plain text"))
				mProber.On("Probe", r).Return(nil, errors.New("pdfcpu: no header"))
				return r
			},
			wantErr: ErrNotPDF,
		},
		{
			name:     "storage error",
			filename: "contract.pdf",
			size:     5,
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository, mProber *proberMocks.MockProber) io.ReadSeeker {
				r := bytes.NewReader([]byte("%PDF-"))
				mProber.On("Probe", r).Return(twoPageInfo(), nil)
				mStore.On("Put", ctx, mock.Anything, r, mock.Anything).
					Return(storage.ObjectInfo{}, errors.New("storage fail"))
				return r
			},
			wantErrMsg: "upload to storage: storage fail",
		},
		{
			name:     "repository error rolls back storage",
			filename: "contract.pdf",
			size:     5,
			setupMocks: func(mStore *storeMocks.MockStorage, mRepo *repoMocks.MockDocumentRepository, mProber *proberMocks.MockProber) io.ReadSeeker {
				r := bytes.NewReader([]byte("%PDF-"))
				mProber.On("Probe", r).Return(twoPageInfo(), nil)
				mStore.On("Put", ctx, mock.Anything, r, mock.Anything).
					Return(storage.ObjectInfo{Key: "documents/x.pdf"}, nil)
				mRepo.On("Create", ctx, mock.Anything, mock.Anything).
					Return(nil, errors.New("db fail"))
				mStore.On("Delete", ctx, mock.Anything).Return(nil)
				return r
			},
			wantErrMsg: "db save failed: db fail",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mStore := new(storeMocks.MockStorage)
			mRepo := new(repoMocks.MockDocumentRepository)
			mProber := new(proberMocks.MockProber)
			svc := NewDocumentService(mStore, mRepo, mProber)

			r := tt.setupMocks(mStore, mRepo, mProber)

			doc, err := svc.Upload(ctx, r, tt.filename, tt.size)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else if tt.wantErrMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, doc)
			}
			mStore.AssertExpectations(t)
			mRepo.AssertExpectations(t)
			mProber.AssertExpectations(t)
		})
	}
}

func TestDocumentService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		mRepo.On("FindByID", ctx, "doc-1").Return(&model.Document{ID: "doc-1"}, nil)
		svc := NewDocumentService(nil, mRepo, nil)

		doc, err := svc.Get(ctx, "doc-1")
		assert.NoError(t, err)
		assert.Equal(t, "doc-1", doc.ID)
	})

	t.Run("empty id", func(t *testing.T) {
		svc := NewDocumentService(nil, new(repoMocks.MockDocumentRepository), nil)
		_, err := svc.Get(ctx, "")
		assert.ErrorIs(t, err, ErrIDRequired)
	})

	t.Run("not found maps sql.ErrNoRows", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		mRepo.On("FindByID", ctx, "missing").Return(nil, sql.ErrNoRows)
		svc := NewDocumentService(nil, mRepo, nil)

		_, err := svc.Get(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDocumentService_Pages(t *testing.T) {
	ctx := context.Background()

	t.Run("returns recorded dimensions", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		mRepo.On("Pages", ctx, "doc-1").Return([]model.PageDimensions{
			{DocumentID: "doc-1", PageNumber: 1, Width: 612, Height: 792},
		}, nil)
		svc := NewDocumentService(nil, mRepo, nil)

		pages, err := svc.Pages(ctx, "doc-1")
		assert.NoError(t, err)
		require.Len(t, pages, 1)
		assert.InDelta(t, 612, pages[0].Width, 1e-9)
	})

	t.Run("unknown document", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		mRepo.On("Pages", ctx, "missing").Return([]model.PageDimensions{}, nil)
		mRepo.On("FindByID", ctx, "missing").Return(nil, sql.ErrNoRows)
		svc := NewDocumentService(nil, mRepo, nil)

		_, err := svc.Pages(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDocumentService_DownloadURL(t *testing.T) {
	ctx := context.Background()

	mRepo := new(repoMocks.MockDocumentRepository)
	mStore := new(storeMocks.MockStorage)
	mRepo.On("FindByID", ctx, "doc-1").
		Return(&model.Document{ID: "doc-1", StoragePath: "documents/x.pdf"}, nil)
	mStore.On("PresignGet", ctx, "documents/x.pdf", DownloadExpiry).
		Return("https://storage.example.com/signed", nil)
	svc := NewDocumentService(mStore, mRepo, nil)

	url, err := svc.DownloadURL(ctx, "doc-1")

	assert.NoError(t, err)
	assert.Equal(t, "https://storage.example.com/signed", url)
}

func TestDocumentService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("storage then repository", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		mStore := new(storeMocks.MockStorage)
		mRepo.On("FindByID", ctx, "doc-1").
			Return(&model.Document{ID: "doc-1", StoragePath: "documents/x.pdf"}, nil)
		mStore.On("Delete", ctx, "documents/x.pdf").Return(nil)
		mRepo.On("Delete", ctx, "doc-1").Return(nil)
		svc := NewDocumentService(mStore, mRepo, nil)

		assert.NoError(t, svc.Delete(ctx, "doc-1"))
		mStore.AssertExpectations(t)
		mRepo.AssertExpectations(t)
	})

	t.Run("storage failure keeps row", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		mStore := new(storeMocks.MockStorage)
		mRepo.On("FindByID", ctx, "doc-1").
			Return(&model.Document{ID: "doc-1", StoragePath: "documents/x.pdf"}, nil)
		mStore.On("Delete", ctx, "documents/x.pdf").Return(errors.New("storage fail"))
		svc := NewDocumentService(mStore, mRepo, nil)

		err := svc.Delete(ctx, "doc-1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "delete storage")
		mRepo.AssertNotCalled(t, "Delete", ctx, "doc-1")
	})
}

func TestDocumentService_List(t *testing.T) {
	ctx := context.Background()

	mRepo := new(repoMocks.MockDocumentRepository)
	mRepo.On("List", ctx, repository.PageQuery{Limit: 10, Offset: 0}).
		Return(&repository.PageResult[model.Document]{
			Items: []model.Document{{ID: "1"}, {ID: "2"}},
			Total: 2,
		}, nil)
	svc := NewDocumentService(nil, mRepo, nil)

	// Zero limit and negative offset fall back to defaults.
	res, err := svc.List(ctx, 0, -1)

	assert.NoError(t, err)
	assert.Len(t, res.Items, 2)
	assert.Equal(t, 2, res.Total)
}
