package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"brickvault/internal/port"
)

// MockTaskDispatcher is a mock implementation of port.TaskDispatcher.
type MockTaskDispatcher struct {
	mock.Mock
}

func (m *MockTaskDispatcher) Dispatch(ctx context.Context, task port.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}
