package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockMocService is a mock implementation of service.MocService.
type MockMocService struct {
	mock.Mock
}

func (m *MockMocService) DeleteMoc(ctx context.Context, mocID, ownerID uuid.UUID) error {
	args := m.Called(ctx, mocID, ownerID)
	return args.Error(0)
}
