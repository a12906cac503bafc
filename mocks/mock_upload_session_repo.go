package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"brickvault/internal/domain"
)

// MockUploadSessionRepo is a mock implementation of port.UploadSessionRepository.
type MockUploadSessionRepo struct {
	mock.Mock
}

func (m *MockUploadSessionRepo) Create(ctx context.Context, session *domain.UploadSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockUploadSessionRepo) GetByIDAndOwner(ctx context.Context, sessionID, ownerID uuid.UUID) (*domain.UploadSession, error) {
	args := m.Called(ctx, sessionID, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UploadSession), args.Error(1)
}

func (m *MockUploadSessionRepo) MarkCompleted(ctx context.Context, sessionID uuid.UUID, completedAt time.Time) (bool, error) {
	args := m.Called(ctx, sessionID, completedAt)
	return args.Bool(0), args.Error(1)
}

func (m *MockUploadSessionRepo) ExpireStale(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}
