package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"brickvault/internal/domain"
	"brickvault/internal/port"
)

type uploadSessionRepo struct {
	db *sqlx.DB
}

// NewUploadSessionRepo creates a new PostgreSQL-backed UploadSessionRepository.
func NewUploadSessionRepo(db *sqlx.DB) port.UploadSessionRepository {
	return &uploadSessionRepo{db: db}
}

func (r *uploadSessionRepo) Create(ctx context.Context, s *domain.UploadSession) error {
	s.CreatedAt = time.Now().UTC()

	query := `INSERT INTO upload_sessions
		(id, owner_id, moc_id, status, category, s3_key, original_filename,
		 declared_size, mime_type, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.OwnerID, s.MocID, s.Status, s.Category, s.S3Key,
		s.OriginalFilename, s.DeclaredSize, s.MimeType, s.ExpiresAt, s.CreatedAt)
	if err != nil {
		return fmt.Errorf("uploadSessionRepo.Create: %w", err)
	}
	return nil
}

func (r *uploadSessionRepo) GetByIDAndOwner(ctx context.Context, sessionID, ownerID uuid.UUID) (*domain.UploadSession, error) {
	var s domain.UploadSession
	err := r.db.GetContext(ctx, &s,
		"SELECT * FROM upload_sessions WHERE id = $1 AND owner_id = $2", sessionID, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("uploadSessionRepo.GetByIDAndOwner: %w", err)
	}
	return &s, nil
}

// MarkCompleted performs the pending -> completed transition as a single
// conditional update so concurrent completions cannot both win.
func (r *uploadSessionRepo) MarkCompleted(ctx context.Context, sessionID uuid.UUID, completedAt time.Time) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE upload_sessions SET status = $1, completed_at = $2
		 WHERE id = $3 AND status = $4`,
		domain.SessionStatusCompleted, completedAt, sessionID, domain.SessionStatusPending)
	if err != nil {
		return false, fmt.Errorf("uploadSessionRepo.MarkCompleted: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

func (r *uploadSessionRepo) ExpireStale(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE upload_sessions SET status = $1
		 WHERE status = $2 AND expires_at < $3`,
		domain.SessionStatusExpired, domain.SessionStatusPending, now)
	if err != nil {
		return 0, fmt.Errorf("uploadSessionRepo.ExpireStale: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows, nil
}
