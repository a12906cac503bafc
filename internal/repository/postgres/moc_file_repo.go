package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"brickvault/internal/domain"
	"brickvault/internal/port"
)

type mocFileRepo struct {
	db *sqlx.DB
}

// NewMocFileRepo creates a new PostgreSQL-backed MocFileRepository.
func NewMocFileRepo(db *sqlx.DB) port.MocFileRepository {
	return &mocFileRepo{db: db}
}

func (r *mocFileRepo) Create(ctx context.Context, f *domain.MocFile) error {
	f.CreatedAt = time.Now().UTC()

	query := `INSERT INTO moc_files
		(id, moc_id, category, s3_key, file_url, mime_type, original_filename, size_bytes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, query,
		f.ID, f.MocID, f.Category, f.S3Key, f.FileURL, f.MimeType,
		f.OriginalFilename, f.SizeBytes, f.CreatedAt)
	if err != nil {
		return fmt.Errorf("mocFileRepo.Create: %w", err)
	}
	return nil
}

func (r *mocFileRepo) ListByMoc(ctx context.Context, mocID uuid.UUID) ([]domain.MocFile, error) {
	var files []domain.MocFile
	err := r.db.SelectContext(ctx, &files,
		"SELECT * FROM moc_files WHERE moc_id = $1 ORDER BY created_at", mocID)
	if err != nil {
		return nil, fmt.Errorf("mocFileRepo.ListByMoc: %w", err)
	}
	return files, nil
}

func (r *mocFileRepo) DeleteByMoc(ctx context.Context, mocID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM moc_files WHERE moc_id = $1", mocID)
	if err != nil {
		return fmt.Errorf("mocFileRepo.DeleteByMoc: %w", err)
	}
	return nil
}
