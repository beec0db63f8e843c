package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"esignapi/internal/model"
)

type MockSignerService struct {
	mock.Mock
}

func (m *MockSignerService) ListByDocument(ctx context.Context, documentID string) ([]model.Signer, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Signer), args.Error(1)
}

func (m *MockSignerService) Create(ctx context.Context, s *model.Signer) (*model.Signer, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Signer), args.Error(1)
}

func (m *MockSignerService) Update(ctx context.Context, s *model.Signer) (*model.Signer, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Signer), args.Error(1)
}

func (m *MockSignerService) UpdateStatus(ctx context.Context, id string, status model.SignerStatus) (*model.Signer, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Signer), args.Error(1)
}

func (m *MockSignerService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockSigningService struct {
	mock.Mock
}

func (m *MockSigningService) FieldsForPage(ctx context.Context, documentID, signerID string, page int) ([]model.Field, error) {
	args := m.Called(ctx, documentID, signerID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Field), args.Error(1)
}

func (m *MockSigningService) Submit(ctx context.Context, documentID, signerID string, values map[string]string) error {
	args := m.Called(ctx, documentID, signerID, values)
	return args.Error(0)
}
