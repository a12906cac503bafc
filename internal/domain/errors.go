package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation              = errors.New("invalid request")
	ErrMocNotFound             = errors.New("moc not found")
	ErrForbidden               = errors.New("forbidden")
	ErrFileTooSmall            = errors.New("file below minimum size for presigned upload")
	ErrFileTooLarge            = errors.New("file exceeds maximum allowed size")
	ErrInvalidMimeType         = errors.New("mime type not allowed for this category")
	ErrRateLimitExceeded       = errors.New("daily upload limit reached")
	ErrSessionNotFound         = errors.New("upload session not found")
	ErrSessionAlreadyCompleted = errors.New("upload session already completed")
	ErrSessionExpired          = errors.New("upload session expired")
	ErrFileNotInStorage        = errors.New("uploaded file not found in storage")
	ErrSizeMismatch            = errors.New("uploaded file size does not match declared size")
	ErrStorage                 = errors.New("object storage operation failed")
	ErrPersistence             = errors.New("database operation failed")
	ErrLockConflict            = errors.New("finalization already in progress")
)

// RateLimitError wraps ErrRateLimitExceeded with a retry-after hint so the
// HTTP layer can emit a Retry-After header.
type RateLimitError struct {
	RetryAfterSeconds int
	Remaining         int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("daily upload limit reached, retry in %ds", e.RetryAfterSeconds)
}

func (e *RateLimitError) Unwrap() error { return ErrRateLimitExceeded }
