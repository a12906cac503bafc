package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"brickvault/internal/domain"
	"brickvault/internal/port"
)

// FinalizeResult reports the outcome of a finalize call.
type FinalizeResult struct {
	Moc        *domain.Moc
	Files      []domain.MocFile
	Idempotent bool
}

// FinalizeService serializes the multi-step finalize operation with an
// advisory compare-and-swap lock over the MOC's finalizing_at/finalized_at
// timestamp pair.
type FinalizeService interface {
	// Acquire claims the finalize lock. Already-finalized records succeed
	// idempotently; a fresh in-flight lock returns ErrLockConflict.
	Acquire(ctx context.Context, mocID uuid.UUID) error
	// Release ends a finalize attempt: success marks the record finalized,
	// failure just frees the lock so a later caller can retry.
	Release(ctx context.Context, mocID uuid.UUID, success bool) error
	// ForceExpire clears a held lock regardless of age. Operator escape
	// hatch for a crashed finalizer before the staleness window elapses.
	ForceExpire(ctx context.Context, mocID uuid.UUID) error
	FinalizeMoc(ctx context.Context, ownerID, mocID uuid.UUID) (*FinalizeResult, error)
}

type finalizeService struct {
	mocRepo    port.MocRepository
	fileRepo   port.MocFileRepository
	staleAfter time.Duration
}

// NewFinalizeService creates a new FinalizeService.
func NewFinalizeService(mocRepo port.MocRepository, fileRepo port.MocFileRepository, staleAfter time.Duration) FinalizeService {
	return &finalizeService{mocRepo: mocRepo, fileRepo: fileRepo, staleAfter: staleAfter}
}

func (s *finalizeService) Acquire(ctx context.Context, mocID uuid.UUID) error {
	moc, err := s.mocRepo.GetByID(ctx, mocID)
	if err != nil {
		if errors.Is(err, domain.ErrMocNotFound) {
			return err
		}
		return fmt.Errorf("%w: loading moc: %v", domain.ErrPersistence, err)
	}

	// Already done: acquire is idempotent.
	if moc.FinalizedAt != nil {
		return nil
	}

	staleBefore := time.Now().UTC().Add(-s.staleAfter)
	if moc.FinalizingAt != nil && moc.FinalizingAt.After(staleBefore) {
		return domain.ErrLockConflict
	}

	won, err := s.mocRepo.AcquireFinalizeLock(ctx, mocID, staleBefore)
	if err != nil {
		return fmt.Errorf("%w: acquiring finalize lock: %v", domain.ErrPersistence, err)
	}
	if !won {
		// Lost the race. If the winner already finished, this acquire is
		// still an idempotent success.
		current, err := s.mocRepo.GetByID(ctx, mocID)
		if err == nil && current.FinalizedAt != nil {
			return nil
		}
		return domain.ErrLockConflict
	}
	return nil
}

func (s *finalizeService) Release(ctx context.Context, mocID uuid.UUID, success bool) error {
	if success {
		if err := s.mocRepo.MarkFinalized(ctx, mocID); err != nil {
			return fmt.Errorf("%w: marking finalized: %v", domain.ErrPersistence, err)
		}
		return nil
	}
	if err := s.mocRepo.ClearFinalizeLock(ctx, mocID); err != nil {
		return fmt.Errorf("%w: clearing finalize lock: %v", domain.ErrPersistence, err)
	}
	return nil
}

func (s *finalizeService) ForceExpire(ctx context.Context, mocID uuid.UUID) error {
	if err := s.mocRepo.ClearFinalizeLock(ctx, mocID); err != nil {
		return fmt.Errorf("%w: force-expiring finalize lock: %v", domain.ErrPersistence, err)
	}
	log.Printf("finalizeService.ForceExpire: lock cleared for moc %s", mocID)
	return nil
}

// FinalizeMoc aggregates the MOC's completed upload output into permanent
// record state under the lock.
func (s *finalizeService) FinalizeMoc(ctx context.Context, ownerID, mocID uuid.UUID) (*FinalizeResult, error) {
	moc, err := s.mocRepo.GetByIDAndOwner(ctx, mocID, ownerID)
	if err != nil {
		if errors.Is(err, domain.ErrMocNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: loading moc: %v", domain.ErrPersistence, err)
	}

	if moc.FinalizedAt != nil {
		files, err := s.fileRepo.ListByMoc(ctx, mocID)
		if err != nil {
			return nil, fmt.Errorf("%w: listing files: %v", domain.ErrPersistence, err)
		}
		return &FinalizeResult{Moc: moc, Files: files, Idempotent: true}, nil
	}

	if err := s.Acquire(ctx, mocID); err != nil {
		return nil, err
	}

	result, err := s.finalizeLocked(ctx, moc)
	if err != nil {
		if relErr := s.Release(ctx, mocID, false); relErr != nil {
			log.Printf("finalizeService.FinalizeMoc: releasing lock after failure: %v", relErr)
		}
		return nil, err
	}

	if err := s.Release(ctx, mocID, true); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	result.Moc.FinalizedAt = &now
	result.Moc.FinalizingAt = nil

	log.Printf("finalizeService.FinalizeMoc: moc %s finalized with %d files", mocID, len(result.Files))
	return result, nil
}

func (s *finalizeService) finalizeLocked(ctx context.Context, moc *domain.Moc) (*FinalizeResult, error) {
	files, err := s.fileRepo.ListByMoc(ctx, moc.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: listing files: %v", domain.ErrPersistence, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no completed uploads to finalize", domain.ErrValidation)
	}

	// Promote the first thumbnail upload to the record's thumbnail.
	if moc.ThumbnailURL == nil {
		for i := range files {
			if files[i].Category == domain.CategoryThumbnail {
				if err := s.mocRepo.UpdateThumbnail(ctx, moc.ID, files[i].FileURL); err != nil {
					return nil, fmt.Errorf("%w: updating thumbnail: %v", domain.ErrPersistence, err)
				}
				url := files[i].FileURL
				moc.ThumbnailURL = &url
				break
			}
		}
	}

	return &FinalizeResult{Moc: moc, Files: files}, nil
}
