package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"brickvault/internal/domain"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code              string `json:"code"`
	Message           string `json:"message"`
	CorrelationID     string `json:"correlationId,omitempty"`
	RetryAfterSeconds int    `json:"retryAfterSeconds,omitempty"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, "VALIDATION_ERROR", "invalid request"
	case errors.Is(err, domain.ErrMocNotFound):
		return http.StatusNotFound, "CONTENT_NOT_FOUND", "moc not found"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN", "forbidden"
	case errors.Is(err, domain.ErrFileTooSmall):
		return http.StatusBadRequest, "FILE_TOO_SMALL", "file below minimum size for this category"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.Is(err, domain.ErrInvalidMimeType):
		return http.StatusUnsupportedMediaType, "INVALID_MIME_TYPE", "mime type not allowed for this category"
	case errors.Is(err, domain.ErrRateLimitExceeded):
		return http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", "daily upload limit reached"
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound, "SESSION_NOT_FOUND", "upload session not found"
	case errors.Is(err, domain.ErrSessionAlreadyCompleted):
		return http.StatusConflict, "SESSION_ALREADY_COMPLETED", "upload session already completed"
	case errors.Is(err, domain.ErrSessionExpired):
		return http.StatusGone, "EXPIRED_SESSION", "upload session expired"
	case errors.Is(err, domain.ErrFileNotInStorage):
		return http.StatusBadRequest, "FILE_NOT_FOUND_IN_STORAGE", "uploaded file not found in storage"
	case errors.Is(err, domain.ErrSizeMismatch):
		return http.StatusBadRequest, "SIZE_MISMATCH", "uploaded file size does not match declared size"
	case errors.Is(err, domain.ErrLockConflict):
		return http.StatusConflict, "LOCK_CONFLICT", "finalization already in progress"
	case errors.Is(err, domain.ErrStorage):
		return http.StatusInternalServerError, "STORAGE_ERROR", "object storage operation failed"
	case errors.Is(err, domain.ErrPersistence):
		return http.StatusInternalServerError, "PERSISTENCE_ERROR", "a persistence error occurred"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
// Rate-limit errors additionally carry a Retry-After header.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	requestID, _ := c.Get("request_id")
	requestIDStr, _ := requestID.(string)

	if status >= 500 {
		log.Printf("[%s] internal error: %v", requestIDStr, err)
	}

	apiErr := &APIError{Code: code, Message: msg, CorrelationID: requestIDStr}

	var rle *domain.RateLimitError
	if errors.As(err, &rle) {
		c.Header("Retry-After", strconv.Itoa(rle.RetryAfterSeconds))
		apiErr.RetryAfterSeconds = rle.RetryAfterSeconds
	}

	c.JSON(status, APIResponse{Success: false, Error: apiErr})
}
