package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"brickvault/internal/domain"
)

// MockMocRepo is a mock implementation of port.MocRepository.
type MockMocRepo struct {
	mock.Mock
}

func (m *MockMocRepo) GetByIDAndOwner(ctx context.Context, mocID, ownerID uuid.UUID) (*domain.Moc, error) {
	args := m.Called(ctx, mocID, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Moc), args.Error(1)
}

func (m *MockMocRepo) GetByID(ctx context.Context, mocID uuid.UUID) (*domain.Moc, error) {
	args := m.Called(ctx, mocID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Moc), args.Error(1)
}

func (m *MockMocRepo) AcquireFinalizeLock(ctx context.Context, mocID uuid.UUID, staleBefore time.Time) (bool, error) {
	args := m.Called(ctx, mocID, staleBefore)
	return args.Bool(0), args.Error(1)
}

func (m *MockMocRepo) MarkFinalized(ctx context.Context, mocID uuid.UUID) error {
	args := m.Called(ctx, mocID)
	return args.Error(0)
}

func (m *MockMocRepo) ClearFinalizeLock(ctx context.Context, mocID uuid.UUID) error {
	args := m.Called(ctx, mocID)
	return args.Error(0)
}

func (m *MockMocRepo) UpdateThumbnail(ctx context.Context, mocID uuid.UUID, thumbnailURL string) error {
	args := m.Called(ctx, mocID, thumbnailURL)
	return args.Error(0)
}

func (m *MockMocRepo) Delete(ctx context.Context, mocID uuid.UUID) error {
	args := m.Called(ctx, mocID)
	return args.Error(0)
}
