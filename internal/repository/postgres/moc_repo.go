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

type mocRepo struct {
	db *sqlx.DB
}

// NewMocRepo creates a new PostgreSQL-backed MocRepository.
func NewMocRepo(db *sqlx.DB) port.MocRepository {
	return &mocRepo{db: db}
}

func (r *mocRepo) GetByIDAndOwner(ctx context.Context, mocID, ownerID uuid.UUID) (*domain.Moc, error) {
	var moc domain.Moc
	err := r.db.GetContext(ctx, &moc,
		"SELECT * FROM mocs WHERE id = $1 AND owner_id = $2", mocID, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMocNotFound
		}
		return nil, fmt.Errorf("mocRepo.GetByIDAndOwner: %w", err)
	}
	return &moc, nil
}

func (r *mocRepo) GetByID(ctx context.Context, mocID uuid.UUID) (*domain.Moc, error) {
	var moc domain.Moc
	err := r.db.GetContext(ctx, &moc, "SELECT * FROM mocs WHERE id = $1", mocID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMocNotFound
		}
		return nil, fmt.Errorf("mocRepo.GetByID: %w", err)
	}
	return &moc, nil
}

// AcquireFinalizeLock claims the advisory lock with a single conditional
// update. Zero rows affected means another process holds a fresh lock or
// the record is already finalized.
func (r *mocRepo) AcquireFinalizeLock(ctx context.Context, mocID uuid.UUID, staleBefore time.Time) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE mocs SET finalizing_at = $1, updated_at = $1
		 WHERE id = $2
		   AND finalized_at IS NULL
		   AND (finalizing_at IS NULL OR finalizing_at < $3)`,
		time.Now().UTC(), mocID, staleBefore)
	if err != nil {
		return false, fmt.Errorf("mocRepo.AcquireFinalizeLock: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

func (r *mocRepo) MarkFinalized(ctx context.Context, mocID uuid.UUID) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		"UPDATE mocs SET finalized_at = $1, finalizing_at = NULL, updated_at = $1 WHERE id = $2",
		now, mocID)
	if err != nil {
		return fmt.Errorf("mocRepo.MarkFinalized: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrMocNotFound
	}
	return nil
}

// ClearFinalizeLock releases the lock without finalizing so a later caller
// can retry. Finalized records are left untouched.
func (r *mocRepo) ClearFinalizeLock(ctx context.Context, mocID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE mocs SET finalizing_at = NULL, updated_at = $1 WHERE id = $2 AND finalized_at IS NULL",
		time.Now().UTC(), mocID)
	if err != nil {
		return fmt.Errorf("mocRepo.ClearFinalizeLock: %w", err)
	}
	return nil
}

func (r *mocRepo) UpdateThumbnail(ctx context.Context, mocID uuid.UUID, thumbnailURL string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE mocs SET thumbnail_url = $1, updated_at = $2 WHERE id = $3",
		thumbnailURL, time.Now().UTC(), mocID)
	if err != nil {
		return fmt.Errorf("mocRepo.UpdateThumbnail: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrMocNotFound
	}
	return nil
}

func (r *mocRepo) Delete(ctx context.Context, mocID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM mocs WHERE id = $1", mocID)
	if err != nil {
		return fmt.Errorf("mocRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrMocNotFound
	}
	return nil
}
