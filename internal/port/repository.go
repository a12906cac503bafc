package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"brickvault/internal/domain"
)

// MocRepository owns MOC records and their finalization lock fields.
// All lock mutations are conditional updates; callers inspect the returned
// bool to detect a lost race.
type MocRepository interface {
	GetByIDAndOwner(ctx context.Context, mocID, ownerID uuid.UUID) (*domain.Moc, error)
	GetByID(ctx context.Context, mocID uuid.UUID) (*domain.Moc, error)
	// AcquireFinalizeLock sets finalizing_at = now only when the record is
	// not finalized and the lock is free or older than staleBefore.
	AcquireFinalizeLock(ctx context.Context, mocID uuid.UUID, staleBefore time.Time) (bool, error)
	MarkFinalized(ctx context.Context, mocID uuid.UUID) error
	ClearFinalizeLock(ctx context.Context, mocID uuid.UUID) error
	UpdateThumbnail(ctx context.Context, mocID uuid.UUID, thumbnailURL string) error
	Delete(ctx context.Context, mocID uuid.UUID) error
}

// UploadSessionRepository owns upload session rows. Sessions are retained
// for audit; no delete operation exists.
type UploadSessionRepository interface {
	Create(ctx context.Context, session *domain.UploadSession) error
	GetByIDAndOwner(ctx context.Context, sessionID, ownerID uuid.UUID) (*domain.UploadSession, error)
	// MarkCompleted transitions pending -> completed as a single conditional
	// update and reports whether this call won the transition.
	MarkCompleted(ctx context.Context, sessionID uuid.UUID, completedAt time.Time) (bool, error)
	// ExpireStale transitions pending sessions past their deadline to
	// expired and returns the number of rows affected.
	ExpireStale(ctx context.Context, now time.Time) (int64, error)
}

// MocFileRepository owns durable file records.
type MocFileRepository interface {
	Create(ctx context.Context, file *domain.MocFile) error
	ListByMoc(ctx context.Context, mocID uuid.UUID) ([]domain.MocFile, error)
	DeleteByMoc(ctx context.Context, mocID uuid.UUID) error
}

// GalleryRepository owns shared gallery images and their links to MOCs and
// albums. The three reference checks back the orphan computation.
type GalleryRepository interface {
	ListLinkedImages(ctx context.Context, mocID uuid.UUID) ([]domain.GalleryImage, error)
	DeleteMocLinks(ctx context.Context, mocID uuid.UUID) error
	DeleteAlbumLinksByMoc(ctx context.Context, mocID uuid.UUID) error
	IsLinkedToAnyMoc(ctx context.Context, imageID uuid.UUID) (bool, error)
	IsAlbumCover(ctx context.Context, imageID uuid.UUID) (bool, error)
	GetImage(ctx context.Context, imageID uuid.UUID) (*domain.GalleryImage, error)
	DeleteImage(ctx context.Context, imageID uuid.UUID) error
}
