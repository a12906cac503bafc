package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"brickvault/internal/domain"
	"brickvault/internal/service"
)

// MockUploadSessionService is a mock implementation of service.UploadSessionService.
type MockUploadSessionService struct {
	mock.Mock
}

func (m *MockUploadSessionService) CreateSessions(ctx context.Context, ownerID, mocID uuid.UUID, files []service.FileInput) (*service.CreateSessionsResult, error) {
	args := m.Called(ctx, ownerID, mocID, files)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CreateSessionsResult), args.Error(1)
}

func (m *MockUploadSessionService) CompleteSession(ctx context.Context, ownerID, mocID, sessionID uuid.UUID) (*domain.MocFile, error) {
	args := m.Called(ctx, ownerID, mocID, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MocFile), args.Error(1)
}
