package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/google/uuid"

	"brickvault/internal/config"
	"brickvault/internal/domain"
	"brickvault/internal/port"
	"brickvault/internal/util"
)

// Symmetric tolerance between declared and actual object size.
const sizeTolerancePct = 0.05

// Upper bound on any single storage or rate-limit call.
const externalCallTimeout = 10 * time.Second

// FileInput describes one file the client wants to upload.
type FileInput struct {
	Category domain.FileCategory
	Filename string
	Size     int64
	MimeType string
}

// CreatedSession is the per-file result of CreateSessions.
type CreatedSession struct {
	ID        uuid.UUID
	Category  domain.FileCategory
	Filename  string
	UploadURL string
	S3Key     string
	ExpiresAt time.Time
}

// CreateSessionsResult bundles the presigned sessions with the shared
// completion deadline.
type CreateSessionsResult struct {
	Files            []CreatedSession
	SessionExpiresAt time.Time
}

// UploadSessionService creates presigned upload sessions and finalizes them
// into durable file records.
type UploadSessionService interface {
	CreateSessions(ctx context.Context, ownerID, mocID uuid.UUID, files []FileInput) (*CreateSessionsResult, error)
	CompleteSession(ctx context.Context, ownerID, mocID, sessionID uuid.UUID) (*domain.MocFile, error)
}

type uploadSessionService struct {
	mocRepo     port.MocRepository
	sessionRepo port.UploadSessionRepository
	fileRepo    port.MocFileRepository
	storage     port.ObjectStorage
	limiter     port.RateLimiter
	upload      *config.UploadConfig
	s3          *config.S3Config
	env         string
}

// NewUploadSessionService creates a new UploadSessionService implementation.
func NewUploadSessionService(
	mocRepo port.MocRepository,
	sessionRepo port.UploadSessionRepository,
	fileRepo port.MocFileRepository,
	storage port.ObjectStorage,
	limiter port.RateLimiter,
	upload *config.UploadConfig,
	s3 *config.S3Config,
	env string,
) UploadSessionService {
	return &uploadSessionService{
		mocRepo:     mocRepo,
		sessionRepo: sessionRepo,
		fileRepo:    fileRepo,
		storage:     storage,
		limiter:     limiter,
		upload:      upload,
		s3:          s3,
		env:         env,
	}
}

// CreateSessions validates every file, then the MOC ownership, then the
// daily quota, and only then touches storage or the database. Quota is
// checked here but never incremented; only verified completions count.
func (s *uploadSessionService) CreateSessions(ctx context.Context, ownerID, mocID uuid.UUID, files []FileInput) (*CreateSessionsResult, error) {
	if len(files) == 0 || len(files) > s.upload.MaxFilesPerRequest {
		return nil, fmt.Errorf("%w: between 1 and %d files required",
			domain.ErrValidation, s.upload.MaxFilesPerRequest)
	}

	for i := range files {
		if err := s.validateFile(&files[i]); err != nil {
			return nil, err
		}
	}

	// Not found and not owned collapse to the same outcome so callers
	// cannot probe for other users' MOCs.
	if _, err := s.mocRepo.GetByIDAndOwner(ctx, mocID, ownerID); err != nil {
		if errors.Is(err, domain.ErrMocNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: loading moc: %v", domain.ErrPersistence, err)
	}

	quotaCtx, cancel := context.WithTimeout(ctx, externalCallTimeout)
	quota, err := s.limiter.CheckLimit(quotaCtx, ownerID)
	cancel()
	if err != nil {
		// Fail closed: an unreadable quota blocks the upload.
		return nil, err
	}
	if !quota.Allowed {
		return nil, &domain.RateLimitError{
			RetryAfterSeconds: quota.RetryAfterSeconds,
			Remaining:         quota.Remaining,
		}
	}

	now := time.Now().UTC()
	sessionExpiresAt := now.Add(s.upload.SessionTTL)
	result := &CreateSessionsResult{SessionExpiresAt: sessionExpiresAt}

	for _, f := range files {
		sessionID := uuid.New()
		key := s.storageKey(ownerID, mocID, f.Category, sessionID, f.Filename)

		presignCtx, cancel := context.WithTimeout(ctx, externalCallTimeout)
		uploadURL, err := s.storage.GeneratePresignedPutURL(presignCtx, s.s3.Bucket, key, f.MimeType, s.upload.PresignTTL)
		cancel()
		if err != nil {
			return nil, fmt.Errorf("%w: presigning %s: %v", domain.ErrStorage, key, err)
		}

		session := &domain.UploadSession{
			ID:               sessionID,
			OwnerID:          ownerID,
			MocID:            mocID,
			Status:           domain.SessionStatusPending,
			Category:         f.Category,
			S3Key:            key,
			OriginalFilename: f.Filename,
			DeclaredSize:     f.Size,
			MimeType:         f.MimeType,
			ExpiresAt:        sessionExpiresAt,
		}
		if err := s.sessionRepo.Create(ctx, session); err != nil {
			return nil, fmt.Errorf("%w: persisting session: %v", domain.ErrPersistence, err)
		}

		result.Files = append(result.Files, CreatedSession{
			ID:        sessionID,
			Category:  f.Category,
			Filename:  f.Filename,
			UploadURL: uploadURL,
			S3Key:     key,
			ExpiresAt: now.Add(s.upload.PresignTTL),
		})
	}

	log.Printf("uploadSessionService.CreateSessions: created %d sessions for moc %s (owner %s)",
		len(result.Files), mocID, ownerID)
	return result, nil
}

func (s *uploadSessionService) validateFile(f *FileInput) error {
	if f.Filename == "" {
		return fmt.Errorf("%w: filename is required", domain.ErrValidation)
	}
	if f.Size <= 0 {
		return fmt.Errorf("%w: file size must be positive", domain.ErrValidation)
	}
	if f.MimeType == "" {
		return fmt.Errorf("%w: mime type is required", domain.ErrValidation)
	}

	limits, ok := s.upload.Limits(f.Category)
	if !ok {
		return fmt.Errorf("%w: unknown category %q", domain.ErrValidation, f.Category)
	}
	if f.Size <= limits.MinBytes {
		return fmt.Errorf("%w: %s requires more than %d bytes", domain.ErrFileTooSmall, f.Category, limits.MinBytes)
	}
	if f.Size > limits.MaxBytes {
		return fmt.Errorf("%w: %s allows at most %d bytes", domain.ErrFileTooLarge, f.Category, limits.MaxBytes)
	}

	for _, mt := range limits.MimeTypes {
		if mt == f.MimeType {
			return nil
		}
	}
	return fmt.Errorf("%w: %s not allowed for %s", domain.ErrInvalidMimeType, f.MimeType, f.Category)
}

// storageKey derives the deterministic object key. The shape is load-bearing
// for downstream tooling; do not reorder segments.
func (s *uploadSessionService) storageKey(ownerID, mocID uuid.UUID, category domain.FileCategory, sessionID uuid.UUID, filename string) string {
	return fmt.Sprintf("%s/mocs/%s/%s/%s/%s-%s",
		s.env, ownerID, mocID, category, sessionID, util.SanitizeFilename(filename))
}

// CompleteSession verifies the uploaded object and promotes the session into
// a durable file record. The status transition is a conditional update, so
// two racing completions produce exactly one file record.
func (s *uploadSessionService) CompleteSession(ctx context.Context, ownerID, mocID, sessionID uuid.UUID) (*domain.MocFile, error) {
	session, err := s.sessionRepo.GetByIDAndOwner(ctx, sessionID, ownerID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: loading session: %v", domain.ErrPersistence, err)
	}

	// A session completed under the wrong MOC looks absent, not forbidden.
	if session.MocID != mocID {
		return nil, domain.ErrSessionNotFound
	}
	if session.Status == domain.SessionStatusCompleted {
		return nil, domain.ErrSessionAlreadyCompleted
	}

	now := time.Now().UTC()
	if session.Status != domain.SessionStatusPending || session.Expired(now) {
		return nil, domain.ErrSessionExpired
	}

	headCtx, cancel := context.WithTimeout(ctx, externalCallTimeout)
	info, err := s.storage.HeadObject(headCtx, s.s3.Bucket, session.S3Key)
	cancel()
	if err != nil {
		if errors.Is(err, domain.ErrFileNotInStorage) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: verifying object %s: %v", domain.ErrStorage, session.S3Key, err)
	}

	// Zero declared size collapses the tolerance to zero, so any nonzero
	// actual size mismatches. Deliberate strictness.
	tolerance := float64(session.DeclaredSize) * sizeTolerancePct
	if math.Abs(float64(info.ContentLength-session.DeclaredSize)) > tolerance {
		return nil, fmt.Errorf("%w: declared %d, stored %d",
			domain.ErrSizeMismatch, session.DeclaredSize, info.ContentLength)
	}

	won, err := s.sessionRepo.MarkCompleted(ctx, session.ID, now)
	if err != nil {
		return nil, fmt.Errorf("%w: completing session: %v", domain.ErrPersistence, err)
	}
	if !won {
		return nil, domain.ErrSessionAlreadyCompleted
	}

	filename := session.OriginalFilename
	if filename == "" {
		filename = "unknown"
	}

	file := &domain.MocFile{
		ID:               uuid.New(),
		MocID:            session.MocID,
		Category:         session.Category,
		S3Key:            session.S3Key,
		FileURL:          s.publicURL(session.S3Key),
		MimeType:         session.MimeType,
		OriginalFilename: filename,
		SizeBytes:        info.ContentLength,
	}
	if err := s.fileRepo.Create(ctx, file); err != nil {
		return nil, fmt.Errorf("%w: persisting file record: %v", domain.ErrPersistence, err)
	}

	// The counter is advisory; a failed increment must not undo a verified
	// completion.
	incrCtx, cancel := context.WithTimeout(ctx, externalCallTimeout)
	if err := s.limiter.Increment(incrCtx, ownerID); err != nil {
		log.Printf("uploadSessionService.CompleteSession: rate limit increment failed for owner %s: %v", ownerID, err)
	}
	cancel()

	log.Printf("uploadSessionService.CompleteSession: session %s completed, file %s (%d bytes)",
		session.ID, file.ID, file.SizeBytes)
	return file, nil
}

func (s *uploadSessionService) publicURL(key string) string {
	if s.s3.CDNDomain != "" {
		return fmt.Sprintf("https://%s/%s", s.s3.CDNDomain, key)
	}
	return s.storage.GetPublicURL(s.s3.Bucket, key)
}
