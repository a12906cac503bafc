package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"brickvault/internal/port"
)

// MockObjectStorage is a mock implementation of port.ObjectStorage.
type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) GeneratePresignedPutURL(ctx context.Context, bucket, key, contentType string, ttl time.Duration) (string, error) {
	args := m.Called(ctx, bucket, key, contentType, ttl)
	return args.String(0), args.Error(1)
}

func (m *MockObjectStorage) HeadObject(ctx context.Context, bucket, key string) (*port.ObjectInfo, error) {
	args := m.Called(ctx, bucket, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.ObjectInfo), args.Error(1)
}

func (m *MockObjectStorage) DeleteObjects(ctx context.Context, bucket string, keys []string) error {
	args := m.Called(ctx, bucket, keys)
	return args.Error(0)
}

func (m *MockObjectStorage) GetPublicURL(bucket, key string) string {
	args := m.Called(bucket, key)
	return args.String(0)
}
