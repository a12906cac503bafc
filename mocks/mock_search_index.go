package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockSearchIndex is a mock implementation of port.SearchIndex.
type MockSearchIndex struct {
	mock.Mock
}

func (m *MockSearchIndex) RemoveMoc(ctx context.Context, mocID uuid.UUID) error {
	args := m.Called(ctx, mocID)
	return args.Error(0)
}
