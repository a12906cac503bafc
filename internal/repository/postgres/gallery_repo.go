package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"brickvault/internal/domain"
	"brickvault/internal/port"
)

type galleryRepo struct {
	db *sqlx.DB
}

// NewGalleryRepo creates a new PostgreSQL-backed GalleryRepository.
func NewGalleryRepo(db *sqlx.DB) port.GalleryRepository {
	return &galleryRepo{db: db}
}

func (r *galleryRepo) ListLinkedImages(ctx context.Context, mocID uuid.UUID) ([]domain.GalleryImage, error) {
	var images []domain.GalleryImage
	err := r.db.SelectContext(ctx, &images,
		`SELECT gi.* FROM gallery_images gi
		 INNER JOIN moc_gallery_images mgi ON mgi.gallery_image_id = gi.id
		 WHERE mgi.moc_id = $1`, mocID)
	if err != nil {
		return nil, fmt.Errorf("galleryRepo.ListLinkedImages: %w", err)
	}
	return images, nil
}

func (r *galleryRepo) DeleteMocLinks(ctx context.Context, mocID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM moc_gallery_images WHERE moc_id = $1", mocID)
	if err != nil {
		return fmt.Errorf("galleryRepo.DeleteMocLinks: %w", err)
	}
	return nil
}

func (r *galleryRepo) DeleteAlbumLinksByMoc(ctx context.Context, mocID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM moc_gallery_albums WHERE moc_id = $1", mocID)
	if err != nil {
		return fmt.Errorf("galleryRepo.DeleteAlbumLinksByMoc: %w", err)
	}
	return nil
}

func (r *galleryRepo) IsLinkedToAnyMoc(ctx context.Context, imageID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		"SELECT EXISTS(SELECT 1 FROM moc_gallery_images WHERE gallery_image_id = $1)", imageID)
	if err != nil {
		return false, fmt.Errorf("galleryRepo.IsLinkedToAnyMoc: %w", err)
	}
	return exists, nil
}

func (r *galleryRepo) IsAlbumCover(ctx context.Context, imageID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		"SELECT EXISTS(SELECT 1 FROM gallery_albums WHERE cover_image_id = $1)", imageID)
	if err != nil {
		return false, fmt.Errorf("galleryRepo.IsAlbumCover: %w", err)
	}
	return exists, nil
}

func (r *galleryRepo) GetImage(ctx context.Context, imageID uuid.UUID) (*domain.GalleryImage, error) {
	var img domain.GalleryImage
	err := r.db.GetContext(ctx, &img,
		"SELECT * FROM gallery_images WHERE id = $1", imageID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMocNotFound
		}
		return nil, fmt.Errorf("galleryRepo.GetImage: %w", err)
	}
	return &img, nil
}

func (r *galleryRepo) DeleteImage(ctx context.Context, imageID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM gallery_images WHERE id = $1", imageID)
	if err != nil {
		return fmt.Errorf("galleryRepo.DeleteImage: %w", err)
	}
	return nil
}
