package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"brickvault/internal/domain"
	"brickvault/internal/service"
	"brickvault/mocks"
)

const staleAfter = 10 * time.Minute

func TestAcquire_FreeLock(t *testing.T) {
	mocRepo := new(mocks.MockMocRepo)
	fileRepo := new(mocks.MockMocFileRepo)
	svc := service.NewFinalizeService(mocRepo, fileRepo, staleAfter)
	mocID := uuid.New()

	mocRepo.On("GetByID", mock.Anything, mocID).
		Return(&domain.Moc{ID: mocID}, nil)
	mocRepo.On("AcquireFinalizeLock", mock.Anything, mocID, mock.AnythingOfType("time.Time")).
		Return(true, nil)

	err := svc.Acquire(context.Background(), mocID)

	assert.NoError(t, err)
	mocRepo.AssertExpectations(t)
}

func TestAcquire_AlreadyFinalizedIsIdempotent(t *testing.T) {
	mocRepo := new(mocks.MockMocRepo)
	svc := service.NewFinalizeService(mocRepo, new(mocks.MockMocFileRepo), staleAfter)
	mocID := uuid.New()
	done := time.Now().UTC().Add(-time.Hour)

	mocRepo.On("GetByID", mock.Anything, mocID).
		Return(&domain.Moc{ID: mocID, FinalizedAt: &done}, nil)

	err := svc.Acquire(context.Background(), mocID)

	assert.NoError(t, err)
	mocRepo.AssertNotCalled(t, "AcquireFinalizeLock")
}

func TestAcquire_FreshLockConflicts(t *testing.T) {
	mocRepo := new(mocks.MockMocRepo)
	svc := service.NewFinalizeService(mocRepo, new(mocks.MockMocFileRepo), staleAfter)
	mocID := uuid.New()
	holding := time.Now().UTC().Add(-time.Minute)

	mocRepo.On("GetByID", mock.Anything, mocID).
		Return(&domain.Moc{ID: mocID, FinalizingAt: &holding}, nil)

	err := svc.Acquire(context.Background(), mocID)

	assert.ErrorIs(t, err, domain.ErrLockConflict)
	mocRepo.AssertNotCalled(t, "AcquireFinalizeLock")
}

func TestAcquire_StaleLockReclaimed(t *testing.T) {
	mocRepo := new(mocks.MockMocRepo)
	svc := service.NewFinalizeService(mocRepo, new(mocks.MockMocFileRepo), staleAfter)
	mocID := uuid.New()
	stale := time.Now().UTC().Add(-time.Hour)

	mocRepo.On("GetByID", mock.Anything, mocID).
		Return(&domain.Moc{ID: mocID, FinalizingAt: &stale}, nil)
	mocRepo.On("AcquireFinalizeLock", mock.Anything, mocID, mock.AnythingOfType("time.Time")).
		Return(true, nil)

	err := svc.Acquire(context.Background(), mocID)

	assert.NoError(t, err)
	mocRepo.AssertExpectations(t)
}

func TestAcquire_LostRaceToFinishedWinner(t *testing.T) {
	mocRepo := new(mocks.MockMocRepo)
	svc := service.NewFinalizeService(mocRepo, new(mocks.MockMocFileRepo), staleAfter)
	mocID := uuid.New()
	done := time.Now().UTC()

	mocRepo.On("GetByID", mock.Anything, mocID).
		Return(&domain.Moc{ID: mocID}, nil).Once()
	mocRepo.On("AcquireFinalizeLock", mock.Anything, mocID, mock.AnythingOfType("time.Time")).
		Return(false, nil)
	mocRepo.On("GetByID", mock.Anything, mocID).
		Return(&domain.Moc{ID: mocID, FinalizedAt: &done}, nil).Once()

	err := svc.Acquire(context.Background(), mocID)

	assert.NoError(t, err)
}

func TestAcquire_LostRaceToRunningWinner(t *testing.T) {
	mocRepo := new(mocks.MockMocRepo)
	svc := service.NewFinalizeService(mocRepo, new(mocks.MockMocFileRepo), staleAfter)
	mocID := uuid.New()
	holding := time.Now().UTC()

	mocRepo.On("GetByID", mock.Anything, mocID).
		Return(&domain.Moc{ID: mocID}, nil).Once()
	mocRepo.On("AcquireFinalizeLock", mock.Anything, mocID, mock.AnythingOfType("time.Time")).
		Return(false, nil)
	mocRepo.On("GetByID", mock.Anything, mocID).
		Return(&domain.Moc{ID: mocID, FinalizingAt: &holding}, nil).Once()

	err := svc.Acquire(context.Background(), mocID)

	assert.ErrorIs(t, err, domain.ErrLockConflict)
}

func TestRelease_SuccessMarksFinalized(t *testing.T) {
	mocRepo := new(mocks.MockMocRepo)
	svc := service.NewFinalizeService(mocRepo, new(mocks.MockMocFileRepo), staleAfter)
	mocID := uuid.New()

	mocRepo.On("MarkFinalized", mock.Anything, mocID).Return(nil)

	assert.NoError(t, svc.Release(context.Background(), mocID, true))
	mocRepo.AssertNotCalled(t, "ClearFinalizeLock")
}

func TestRelease_FailureClearsLock(t *testing.T) {
	mocRepo := new(mocks.MockMocRepo)
	svc := service.NewFinalizeService(mocRepo, new(mocks.MockMocFileRepo), staleAfter)
	mocID := uuid.New()

	mocRepo.On("ClearFinalizeLock", mock.Anything, mocID).Return(nil)

	assert.NoError(t, svc.Release(context.Background(), mocID, false))
	mocRepo.AssertNotCalled(t, "MarkFinalized")
}

func TestFinalizeMoc_Success(t *testing.T) {
	mocRepo := new(mocks.MockMocRepo)
	fileRepo := new(mocks.MockMocFileRepo)
	svc := service.NewFinalizeService(mocRepo, fileRepo, staleAfter)
	ownerID := uuid.New()
	mocID := uuid.New()
	moc := &domain.Moc{ID: mocID, OwnerID: ownerID}
	files := []domain.MocFile{
		{ID: uuid.New(), MocID: mocID, Category: domain.CategoryInstruction, FileURL: "https://cdn/i.pdf"},
		{ID: uuid.New(), MocID: mocID, Category: domain.CategoryThumbnail, FileURL: "https://cdn/t.jpg"},
	}

	mocRepo.On("GetByIDAndOwner", mock.Anything, mocID, ownerID).Return(moc, nil)
	mocRepo.On("GetByID", mock.Anything, mocID).Return(moc, nil)
	mocRepo.On("AcquireFinalizeLock", mock.Anything, mocID, mock.AnythingOfType("time.Time")).
		Return(true, nil)
	fileRepo.On("ListByMoc", mock.Anything, mocID).Return(files, nil)
	mocRepo.On("UpdateThumbnail", mock.Anything, mocID, "https://cdn/t.jpg").Return(nil)
	mocRepo.On("MarkFinalized", mock.Anything, mocID).Return(nil)

	result, err := svc.FinalizeMoc(context.Background(), ownerID, mocID)

	assert.NoError(t, err)
	assert.False(t, result.Idempotent)
	assert.NotNil(t, result.Moc.FinalizedAt)
	assert.NotNil(t, result.Moc.ThumbnailURL)
	assert.Equal(t, "https://cdn/t.jpg", *result.Moc.ThumbnailURL)
	assert.Len(t, result.Files, 2)
	mocRepo.AssertExpectations(t)
}

func TestFinalizeMoc_AlreadyFinalizedShortCircuits(t *testing.T) {
	mocRepo := new(mocks.MockMocRepo)
	fileRepo := new(mocks.MockMocFileRepo)
	svc := service.NewFinalizeService(mocRepo, fileRepo, staleAfter)
	ownerID := uuid.New()
	mocID := uuid.New()
	done := time.Now().UTC().Add(-time.Hour)
	files := []domain.MocFile{{ID: uuid.New(), MocID: mocID}}

	mocRepo.On("GetByIDAndOwner", mock.Anything, mocID, ownerID).
		Return(&domain.Moc{ID: mocID, OwnerID: ownerID, FinalizedAt: &done}, nil)
	fileRepo.On("ListByMoc", mock.Anything, mocID).Return(files, nil)

	result, err := svc.FinalizeMoc(context.Background(), ownerID, mocID)

	assert.NoError(t, err)
	assert.True(t, result.Idempotent)
	mocRepo.AssertNotCalled(t, "AcquireFinalizeLock")
	mocRepo.AssertNotCalled(t, "MarkFinalized")
}

func TestFinalizeMoc_NoFilesReleasesLock(t *testing.T) {
	mocRepo := new(mocks.MockMocRepo)
	fileRepo := new(mocks.MockMocFileRepo)
	svc := service.NewFinalizeService(mocRepo, fileRepo, staleAfter)
	ownerID := uuid.New()
	mocID := uuid.New()
	moc := &domain.Moc{ID: mocID, OwnerID: ownerID}

	mocRepo.On("GetByIDAndOwner", mock.Anything, mocID, ownerID).Return(moc, nil)
	mocRepo.On("GetByID", mock.Anything, mocID).Return(moc, nil)
	mocRepo.On("AcquireFinalizeLock", mock.Anything, mocID, mock.AnythingOfType("time.Time")).
		Return(true, nil)
	fileRepo.On("ListByMoc", mock.Anything, mocID).Return([]domain.MocFile{}, nil)
	mocRepo.On("ClearFinalizeLock", mock.Anything, mocID).Return(nil)

	_, err := svc.FinalizeMoc(context.Background(), ownerID, mocID)

	assert.ErrorIs(t, err, domain.ErrValidation)
	mocRepo.AssertCalled(t, "ClearFinalizeLock", mock.Anything, mocID)
	mocRepo.AssertNotCalled(t, "MarkFinalized")
}

func TestFinalizeMoc_ExistingThumbnailKept(t *testing.T) {
	mocRepo := new(mocks.MockMocRepo)
	fileRepo := new(mocks.MockMocFileRepo)
	svc := service.NewFinalizeService(mocRepo, fileRepo, staleAfter)
	ownerID := uuid.New()
	mocID := uuid.New()
	existing := "https://cdn/already.jpg"
	moc := &domain.Moc{ID: mocID, OwnerID: ownerID, ThumbnailURL: &existing}
	files := []domain.MocFile{
		{ID: uuid.New(), MocID: mocID, Category: domain.CategoryThumbnail, FileURL: "https://cdn/new.jpg"},
	}

	mocRepo.On("GetByIDAndOwner", mock.Anything, mocID, ownerID).Return(moc, nil)
	mocRepo.On("GetByID", mock.Anything, mocID).Return(moc, nil)
	mocRepo.On("AcquireFinalizeLock", mock.Anything, mocID, mock.AnythingOfType("time.Time")).
		Return(true, nil)
	fileRepo.On("ListByMoc", mock.Anything, mocID).Return(files, nil)
	mocRepo.On("MarkFinalized", mock.Anything, mocID).Return(nil)

	result, err := svc.FinalizeMoc(context.Background(), ownerID, mocID)

	assert.NoError(t, err)
	assert.Equal(t, existing, *result.Moc.ThumbnailURL)
	mocRepo.AssertNotCalled(t, "UpdateThumbnail")
}

func TestFinalizeMoc_NotOwned(t *testing.T) {
	mocRepo := new(mocks.MockMocRepo)
	svc := service.NewFinalizeService(mocRepo, new(mocks.MockMocFileRepo), staleAfter)
	ownerID := uuid.New()
	mocID := uuid.New()

	mocRepo.On("GetByIDAndOwner", mock.Anything, mocID, ownerID).
		Return(nil, domain.ErrMocNotFound)

	_, err := svc.FinalizeMoc(context.Background(), ownerID, mocID)

	assert.ErrorIs(t, err, domain.ErrMocNotFound)
}

func TestForceExpire(t *testing.T) {
	mocRepo := new(mocks.MockMocRepo)
	svc := service.NewFinalizeService(mocRepo, new(mocks.MockMocFileRepo), staleAfter)
	mocID := uuid.New()

	mocRepo.On("ClearFinalizeLock", mock.Anything, mocID).Return(nil)

	assert.NoError(t, svc.ForceExpire(context.Background(), mocID))
	mocRepo.AssertExpectations(t)
}
