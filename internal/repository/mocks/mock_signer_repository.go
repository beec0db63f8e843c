package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"esignapi/internal/model"
)

type MockSignerRepository struct {
	mock.Mock
}

func (m *MockSignerRepository) Create(ctx context.Context, s *model.Signer) (*model.Signer, error) {
	args := m.Called(ctx, s)
	if fn, ok := args.Get(0).(func(context.Context, *model.Signer) *model.Signer); ok {
		return fn(ctx, s), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Signer), args.Error(1)
}

func (m *MockSignerRepository) FindByID(ctx context.Context, id string) (*model.Signer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Signer), args.Error(1)
}

func (m *MockSignerRepository) ListByDocument(ctx context.Context, documentID string) ([]model.Signer, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Signer), args.Error(1)
}

func (m *MockSignerRepository) Update(ctx context.Context, s *model.Signer) (*model.Signer, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Signer), args.Error(1)
}

func (m *MockSignerRepository) UpdateStatus(ctx context.Context, id string, status model.SignerStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockSignerRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
