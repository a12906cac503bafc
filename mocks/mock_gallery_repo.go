package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"brickvault/internal/domain"
)

// MockGalleryRepo is a mock implementation of port.GalleryRepository.
type MockGalleryRepo struct {
	mock.Mock
}

func (m *MockGalleryRepo) ListLinkedImages(ctx context.Context, mocID uuid.UUID) ([]domain.GalleryImage, error) {
	args := m.Called(ctx, mocID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GalleryImage), args.Error(1)
}

func (m *MockGalleryRepo) DeleteMocLinks(ctx context.Context, mocID uuid.UUID) error {
	args := m.Called(ctx, mocID)
	return args.Error(0)
}

func (m *MockGalleryRepo) DeleteAlbumLinksByMoc(ctx context.Context, mocID uuid.UUID) error {
	args := m.Called(ctx, mocID)
	return args.Error(0)
}

func (m *MockGalleryRepo) IsLinkedToAnyMoc(ctx context.Context, imageID uuid.UUID) (bool, error) {
	args := m.Called(ctx, imageID)
	return args.Bool(0), args.Error(1)
}

func (m *MockGalleryRepo) IsAlbumCover(ctx context.Context, imageID uuid.UUID) (bool, error) {
	args := m.Called(ctx, imageID)
	return args.Bool(0), args.Error(1)
}

func (m *MockGalleryRepo) GetImage(ctx context.Context, imageID uuid.UUID) (*domain.GalleryImage, error) {
	args := m.Called(ctx, imageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GalleryImage), args.Error(1)
}

func (m *MockGalleryRepo) DeleteImage(ctx context.Context, imageID uuid.UUID) error {
	args := m.Called(ctx, imageID)
	return args.Error(0)
}
