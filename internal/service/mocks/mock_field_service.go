package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"esignapi/internal/model"
)

type MockFieldService struct {
	mock.Mock
}

func (m *MockFieldService) ListByDocument(ctx context.Context, documentID string) ([]model.Field, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Field), args.Error(1)
}

func (m *MockFieldService) Create(ctx context.Context, f *model.Field) (*model.Field, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Field), args.Error(1)
}

func (m *MockFieldService) Update(ctx context.Context, f *model.Field) (*model.Field, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Field), args.Error(1)
}

func (m *MockFieldService) Replace(ctx context.Context, documentID string, fields []model.Field) ([]model.Field, error) {
	args := m.Called(ctx, documentID, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Field), args.Error(1)
}

func (m *MockFieldService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
