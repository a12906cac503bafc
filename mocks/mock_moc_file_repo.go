package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"brickvault/internal/domain"
)

// MockMocFileRepo is a mock implementation of port.MocFileRepository.
type MockMocFileRepo struct {
	mock.Mock
}

func (m *MockMocFileRepo) Create(ctx context.Context, file *domain.MocFile) error {
	args := m.Called(ctx, file)
	return args.Error(0)
}

func (m *MockMocFileRepo) ListByMoc(ctx context.Context, mocID uuid.UUID) ([]domain.MocFile, error) {
	args := m.Called(ctx, mocID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MocFile), args.Error(1)
}

func (m *MockMocFileRepo) DeleteByMoc(ctx context.Context, mocID uuid.UUID) error {
	args := m.Called(ctx, mocID)
	return args.Error(0)
}
