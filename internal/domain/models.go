package domain

import (
	"time"

	"github.com/google/uuid"
)

// Moc represents a user-owned content record that owns files, references
// gallery images, and carries the finalization lock fields.
type Moc struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	OwnerID      uuid.UUID  `db:"owner_id" json:"owner_id"`
	Title        string     `db:"title" json:"title"`
	Slug         string     `db:"slug" json:"slug"`
	ThumbnailURL *string    `db:"thumbnail_url" json:"thumbnail_url"`
	FinalizedAt  *time.Time `db:"finalized_at" json:"finalized_at"`
	FinalizingAt *time.Time `db:"finalizing_at" json:"-"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// UploadSession represents one pending direct-to-storage file transfer.
// Sessions are never deleted; terminal states are final.
type UploadSession struct {
	ID               uuid.UUID     `db:"id" json:"id"`
	OwnerID          uuid.UUID     `db:"owner_id" json:"owner_id"`
	MocID            uuid.UUID     `db:"moc_id" json:"moc_id"`
	Status           SessionStatus `db:"status" json:"status"`
	Category         FileCategory  `db:"category" json:"category"`
	S3Key            string        `db:"s3_key" json:"s3_key"`
	OriginalFilename string        `db:"original_filename" json:"original_filename"`
	DeclaredSize     int64         `db:"declared_size" json:"declared_size"`
	MimeType         string        `db:"mime_type" json:"mime_type"`
	ExpiresAt        time.Time     `db:"expires_at" json:"expires_at"`
	CreatedAt        time.Time     `db:"created_at" json:"created_at"`
	CompletedAt      *time.Time    `db:"completed_at" json:"completed_at"`
}

// Expired reports whether the session's completion window has passed.
func (s *UploadSession) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// MocFile is a durable reference to a verified uploaded object, owned
// exclusively by one MOC.
type MocFile struct {
	ID               uuid.UUID    `db:"id" json:"id"`
	MocID            uuid.UUID    `db:"moc_id" json:"moc_id"`
	Category         FileCategory `db:"category" json:"category"`
	S3Key            string       `db:"s3_key" json:"s3_key"`
	FileURL          string       `db:"file_url" json:"file_url"`
	MimeType         string       `db:"mime_type" json:"mime_type"`
	OriginalFilename string       `db:"original_filename" json:"original_filename"`
	SizeBytes        int64        `db:"size_bytes" json:"size_bytes"`
	CreatedAt        time.Time    `db:"created_at" json:"created_at"`
}

// GalleryImage is shared media that may be referenced by multiple MOCs or
// albums. It is deletable only when no reference of any kind remains.
type GalleryImage struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	OwnerID   uuid.UUID  `db:"owner_id" json:"owner_id"`
	S3Key     string     `db:"s3_key" json:"s3_key"`
	ImageURL  string     `db:"image_url" json:"image_url"`
	AlbumID   *uuid.UUID `db:"album_id" json:"album_id"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}

// GalleryAlbum groups gallery images and may pin one as its cover.
type GalleryAlbum struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	OwnerID      uuid.UUID  `db:"owner_id" json:"owner_id"`
	Title        string     `db:"title" json:"title"`
	CoverImageID *uuid.UUID `db:"cover_image_id" json:"cover_image_id"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
}
