package mocks

import (
	"context"

	"github.com/diillson/ponto-eletronico-go/internal/domain/model"
	"github.com/stretchr/testify/mock"
)

// MockPunchRepository é um mock para o repository.PunchRepository
type MockPunchRepository struct {
	mock.Mock
}

func (m *MockPunchRepository) Create(ctx context.Context, punch *model.Punch) error {
	args := m.Called(ctx, punch)
	return args.Error(0)
}

func (m *MockPunchRepository) List(ctx context.Context) ([]*model.Punch, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Punch), args.Error(1)
}

func (m *MockPunchRepository) ListByUser(ctx context.Context, userID string) ([]*model.Punch, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Punch), args.Error(1)
}

func (m *MockPunchRepository) Update(ctx context.Context, punch *model.Punch) error {
	args := m.Called(ctx, punch)
	return args.Error(0)
}

func (m *MockPunchRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPunchRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
