package handler_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"brickvault/internal/domain"
	"brickvault/internal/handler"
)

func TestMapDomainError(t *testing.T) {
	cases := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{domain.ErrValidation, http.StatusBadRequest, "VALIDATION_ERROR"},
		{domain.ErrMocNotFound, http.StatusNotFound, "CONTENT_NOT_FOUND"},
		{domain.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{domain.ErrFileTooSmall, http.StatusBadRequest, "FILE_TOO_SMALL"},
		{domain.ErrFileTooLarge, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE"},
		{domain.ErrInvalidMimeType, http.StatusUnsupportedMediaType, "INVALID_MIME_TYPE"},
		{domain.ErrRateLimitExceeded, http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED"},
		{&domain.RateLimitError{RetryAfterSeconds: 60}, http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED"},
		{domain.ErrSessionNotFound, http.StatusNotFound, "SESSION_NOT_FOUND"},
		{domain.ErrSessionAlreadyCompleted, http.StatusConflict, "SESSION_ALREADY_COMPLETED"},
		{domain.ErrSessionExpired, http.StatusGone, "EXPIRED_SESSION"},
		{domain.ErrFileNotInStorage, http.StatusBadRequest, "FILE_NOT_FOUND_IN_STORAGE"},
		{domain.ErrSizeMismatch, http.StatusBadRequest, "SIZE_MISMATCH"},
		{domain.ErrLockConflict, http.StatusConflict, "LOCK_CONFLICT"},
		{domain.ErrStorage, http.StatusInternalServerError, "STORAGE_ERROR"},
		{domain.ErrPersistence, http.StatusInternalServerError, "PERSISTENCE_ERROR"},
		{assert.AnError, http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tc := range cases {
		status, code, _ := handler.MapDomainError(tc.err)
		assert.Equal(t, tc.wantStatus, status, "error %v", tc.err)
		assert.Equal(t, tc.wantCode, code, "error %v", tc.err)
	}
}
