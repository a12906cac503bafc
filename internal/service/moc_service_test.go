package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"brickvault/internal/domain"
	"brickvault/internal/port"
	"brickvault/internal/service"
	"brickvault/mocks"
)

type deleteFixture struct {
	mocRepo     *mocks.MockMocRepo
	fileRepo    *mocks.MockMocFileRepo
	galleryRepo *mocks.MockGalleryRepo
	dispatcher  *mocks.MockTaskDispatcher
	svc         service.MocService
}

func newDeleteFixture() *deleteFixture {
	f := &deleteFixture{
		mocRepo:     new(mocks.MockMocRepo),
		fileRepo:    new(mocks.MockMocFileRepo),
		galleryRepo: new(mocks.MockGalleryRepo),
		dispatcher:  new(mocks.MockTaskDispatcher),
	}
	f.svc = service.NewMocService(f.mocRepo, f.fileRepo, f.galleryRepo, f.dispatcher)
	return f
}

func (f *deleteFixture) expectRowDeletes(mocID uuid.UUID) {
	f.galleryRepo.On("DeleteAlbumLinksByMoc", mock.Anything, mocID).Return(nil)
	f.galleryRepo.On("DeleteMocLinks", mock.Anything, mocID).Return(nil)
	f.fileRepo.On("DeleteByMoc", mock.Anything, mocID).Return(nil)
	f.mocRepo.On("Delete", mock.Anything, mocID).Return(nil)
}

func TestDeleteMoc_NoGallery(t *testing.T) {
	f := newDeleteFixture()
	ownerID := uuid.New()
	mocID := uuid.New()
	files := []domain.MocFile{
		{ID: uuid.New(), MocID: mocID, S3Key: "test/mocs/a/b/instruction/one.pdf"},
		{ID: uuid.New(), MocID: mocID, S3Key: "test/mocs/a/b/image/two.jpg"},
	}

	f.mocRepo.On("GetByIDAndOwner", mock.Anything, mocID, ownerID).
		Return(&domain.Moc{ID: mocID, OwnerID: ownerID}, nil)
	f.fileRepo.On("ListByMoc", mock.Anything, mocID).Return(files, nil)
	f.galleryRepo.On("ListLinkedImages", mock.Anything, mocID).Return([]domain.GalleryImage{}, nil)
	f.expectRowDeletes(mocID)

	var cleanup port.Task
	f.dispatcher.On("Dispatch", mock.Anything, mock.MatchedBy(func(task port.Task) bool {
		return task.Kind == port.TaskStorageCleanup
	})).Run(func(args mock.Arguments) {
		cleanup = args.Get(1).(port.Task)
	}).Return(nil)
	f.dispatcher.On("Dispatch", mock.Anything, mock.MatchedBy(func(task port.Task) bool {
		return task.Kind == port.TaskCacheInvalidate
	})).Return(nil)
	f.dispatcher.On("Dispatch", mock.Anything, mock.MatchedBy(func(task port.Task) bool {
		return task.Kind == port.TaskSearchDeindex
	})).Return(nil)

	err := f.svc.DeleteMoc(context.Background(), mocID, ownerID)

	assert.NoError(t, err)
	assert.ElementsMatch(t, []string{files[0].S3Key, files[1].S3Key}, cleanup.StorageKeys)
	f.galleryRepo.AssertNotCalled(t, "DeleteImage")
	f.dispatcher.AssertNumberOfCalls(t, "Dispatch", 3)
}

func TestDeleteMoc_OrphanedImageReclaimed(t *testing.T) {
	f := newDeleteFixture()
	ownerID := uuid.New()
	mocID := uuid.New()
	img := domain.GalleryImage{ID: uuid.New(), OwnerID: ownerID, S3Key: "gallery/orphan.jpg"}

	f.mocRepo.On("GetByIDAndOwner", mock.Anything, mocID, ownerID).
		Return(&domain.Moc{ID: mocID, OwnerID: ownerID}, nil)
	f.fileRepo.On("ListByMoc", mock.Anything, mocID).Return([]domain.MocFile{}, nil)
	f.galleryRepo.On("ListLinkedImages", mock.Anything, mocID).Return([]domain.GalleryImage{img}, nil)
	f.expectRowDeletes(mocID)

	f.galleryRepo.On("IsLinkedToAnyMoc", mock.Anything, img.ID).Return(false, nil)
	f.galleryRepo.On("IsAlbumCover", mock.Anything, img.ID).Return(false, nil)
	f.galleryRepo.On("DeleteImage", mock.Anything, img.ID).Return(nil)

	var cleanup port.Task
	f.dispatcher.On("Dispatch", mock.Anything, mock.MatchedBy(func(task port.Task) bool {
		return task.Kind == port.TaskStorageCleanup
	})).Run(func(args mock.Arguments) {
		cleanup = args.Get(1).(port.Task)
	}).Return(nil)
	f.dispatcher.On("Dispatch", mock.Anything, mock.AnythingOfType("port.Task")).Return(nil)

	err := f.svc.DeleteMoc(context.Background(), mocID, ownerID)

	assert.NoError(t, err)
	assert.Equal(t, []string{"gallery/orphan.jpg"}, cleanup.StorageKeys)
	f.galleryRepo.AssertCalled(t, "DeleteImage", mock.Anything, img.ID)
}

func TestDeleteMoc_ImageStillLinkedElsewhereKept(t *testing.T) {
	f := newDeleteFixture()
	ownerID := uuid.New()
	mocID := uuid.New()
	img := domain.GalleryImage{ID: uuid.New(), OwnerID: ownerID, S3Key: "gallery/shared.jpg"}

	f.mocRepo.On("GetByIDAndOwner", mock.Anything, mocID, ownerID).
		Return(&domain.Moc{ID: mocID, OwnerID: ownerID}, nil)
	f.fileRepo.On("ListByMoc", mock.Anything, mocID).Return([]domain.MocFile{}, nil)
	f.galleryRepo.On("ListLinkedImages", mock.Anything, mocID).Return([]domain.GalleryImage{img}, nil)
	f.expectRowDeletes(mocID)

	f.galleryRepo.On("IsLinkedToAnyMoc", mock.Anything, img.ID).Return(true, nil)
	f.dispatcher.On("Dispatch", mock.Anything, mock.AnythingOfType("port.Task")).Return(nil)

	err := f.svc.DeleteMoc(context.Background(), mocID, ownerID)

	assert.NoError(t, err)
	f.galleryRepo.AssertNotCalled(t, "DeleteImage")
	f.galleryRepo.AssertNotCalled(t, "IsAlbumCover")
	// No storage keys at all, so the cleanup task is skipped entirely.
	f.dispatcher.AssertNumberOfCalls(t, "Dispatch", 2)
}

func TestDeleteMoc_AlbumCoverKept(t *testing.T) {
	f := newDeleteFixture()
	ownerID := uuid.New()
	mocID := uuid.New()
	img := domain.GalleryImage{ID: uuid.New(), OwnerID: ownerID, S3Key: "gallery/cover.jpg"}

	f.mocRepo.On("GetByIDAndOwner", mock.Anything, mocID, ownerID).
		Return(&domain.Moc{ID: mocID, OwnerID: ownerID}, nil)
	f.fileRepo.On("ListByMoc", mock.Anything, mocID).Return([]domain.MocFile{}, nil)
	f.galleryRepo.On("ListLinkedImages", mock.Anything, mocID).Return([]domain.GalleryImage{img}, nil)
	f.expectRowDeletes(mocID)

	f.galleryRepo.On("IsLinkedToAnyMoc", mock.Anything, img.ID).Return(false, nil)
	f.galleryRepo.On("IsAlbumCover", mock.Anything, img.ID).Return(true, nil)
	f.dispatcher.On("Dispatch", mock.Anything, mock.AnythingOfType("port.Task")).Return(nil)

	err := f.svc.DeleteMoc(context.Background(), mocID, ownerID)

	assert.NoError(t, err)
	f.galleryRepo.AssertNotCalled(t, "DeleteImage")
}

func TestDeleteMoc_AlbumMemberKept(t *testing.T) {
	f := newDeleteFixture()
	ownerID := uuid.New()
	mocID := uuid.New()
	albumID := uuid.New()
	img := domain.GalleryImage{ID: uuid.New(), OwnerID: ownerID, S3Key: "gallery/member.jpg", AlbumID: &albumID}

	f.mocRepo.On("GetByIDAndOwner", mock.Anything, mocID, ownerID).
		Return(&domain.Moc{ID: mocID, OwnerID: ownerID}, nil)
	f.fileRepo.On("ListByMoc", mock.Anything, mocID).Return([]domain.MocFile{}, nil)
	f.galleryRepo.On("ListLinkedImages", mock.Anything, mocID).Return([]domain.GalleryImage{img}, nil)
	f.expectRowDeletes(mocID)

	f.galleryRepo.On("IsLinkedToAnyMoc", mock.Anything, img.ID).Return(false, nil)
	f.galleryRepo.On("IsAlbumCover", mock.Anything, img.ID).Return(false, nil)
	f.dispatcher.On("Dispatch", mock.Anything, mock.AnythingOfType("port.Task")).Return(nil)

	err := f.svc.DeleteMoc(context.Background(), mocID, ownerID)

	assert.NoError(t, err)
	f.galleryRepo.AssertNotCalled(t, "DeleteImage")
}

func TestDeleteMoc_NotOwned(t *testing.T) {
	f := newDeleteFixture()
	ownerID := uuid.New()
	mocID := uuid.New()

	f.mocRepo.On("GetByIDAndOwner", mock.Anything, mocID, ownerID).
		Return(nil, domain.ErrMocNotFound)

	err := f.svc.DeleteMoc(context.Background(), mocID, ownerID)

	assert.ErrorIs(t, err, domain.ErrMocNotFound)
	f.mocRepo.AssertNotCalled(t, "Delete")
	f.dispatcher.AssertNotCalled(t, "Dispatch")
}

func TestDeleteMoc_DispatchFailureDoesNotSurface(t *testing.T) {
	f := newDeleteFixture()
	ownerID := uuid.New()
	mocID := uuid.New()
	files := []domain.MocFile{{ID: uuid.New(), MocID: mocID, S3Key: "k1"}}

	f.mocRepo.On("GetByIDAndOwner", mock.Anything, mocID, ownerID).
		Return(&domain.Moc{ID: mocID, OwnerID: ownerID}, nil)
	f.fileRepo.On("ListByMoc", mock.Anything, mocID).Return(files, nil)
	f.galleryRepo.On("ListLinkedImages", mock.Anything, mocID).Return([]domain.GalleryImage{}, nil)
	f.expectRowDeletes(mocID)

	f.dispatcher.On("Dispatch", mock.Anything, mock.AnythingOfType("port.Task")).
		Return(assert.AnError)

	err := f.svc.DeleteMoc(context.Background(), mocID, ownerID)

	assert.NoError(t, err)
}
