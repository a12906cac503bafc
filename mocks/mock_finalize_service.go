package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"brickvault/internal/service"
)

// MockFinalizeService is a mock implementation of service.FinalizeService.
type MockFinalizeService struct {
	mock.Mock
}

func (m *MockFinalizeService) Acquire(ctx context.Context, mocID uuid.UUID) error {
	args := m.Called(ctx, mocID)
	return args.Error(0)
}

func (m *MockFinalizeService) Release(ctx context.Context, mocID uuid.UUID, success bool) error {
	args := m.Called(ctx, mocID, success)
	return args.Error(0)
}

func (m *MockFinalizeService) ForceExpire(ctx context.Context, mocID uuid.UUID) error {
	args := m.Called(ctx, mocID)
	return args.Error(0)
}

func (m *MockFinalizeService) FinalizeMoc(ctx context.Context, ownerID, mocID uuid.UUID) (*service.FinalizeResult, error) {
	args := m.Called(ctx, ownerID, mocID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.FinalizeResult), args.Error(1)
}
