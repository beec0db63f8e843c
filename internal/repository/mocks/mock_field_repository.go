package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"esignapi/internal/model"
)

type MockFieldRepository struct {
	mock.Mock
}

func (m *MockFieldRepository) Create(ctx context.Context, f *model.Field) (*model.Field, error) {
	args := m.Called(ctx, f)
	if fn, ok := args.Get(0).(func(context.Context, *model.Field) *model.Field); ok {
		return fn(ctx, f), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Field), args.Error(1)
}

func (m *MockFieldRepository) FindByID(ctx context.Context, id string) (*model.Field, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Field), args.Error(1)
}

func (m *MockFieldRepository) ListByDocument(ctx context.Context, documentID string) ([]model.Field, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Field), args.Error(1)
}

func (m *MockFieldRepository) Update(ctx context.Context, f *model.Field) (*model.Field, error) {
	args := m.Called(ctx, f)
	if fn, ok := args.Get(0).(func(context.Context, *model.Field) *model.Field); ok {
		return fn(ctx, f), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Field), args.Error(1)
}

func (m *MockFieldRepository) ReplaceForDocument(ctx context.Context, documentID string, fields []model.Field) ([]model.Field, error) {
	args := m.Called(ctx, documentID, fields)
	if fn, ok := args.Get(0).(func(context.Context, string, []model.Field) []model.Field); ok {
		return fn(ctx, documentID, fields), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Field), args.Error(1)
}

func (m *MockFieldRepository) UpdateValues(ctx context.Context, documentID string, values map[string]string) error {
	args := m.Called(ctx, documentID, values)
	return args.Error(0)
}

func (m *MockFieldRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
