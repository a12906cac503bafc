package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"brickvault/internal/domain"
	"brickvault/internal/middleware"
	"brickvault/internal/service"
)

// UploadHandler handles presigned upload session endpoints.
type UploadHandler struct {
	sessions service.UploadSessionService
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(sessions service.UploadSessionService) *UploadHandler {
	return &UploadHandler{sessions: sessions}
}

type createSessionsFileRequest struct {
	Category string `json:"category" binding:"required"`
	Filename string `json:"filename" binding:"required"`
	Size     int64  `json:"size" binding:"required"`
	MimeType string `json:"mimeType" binding:"required"`
}

type createSessionsRequest struct {
	Files []createSessionsFileRequest `json:"files" binding:"required"`
}

type createdSessionResponse struct {
	ID        uuid.UUID `json:"id"`
	Category  string    `json:"category"`
	Filename  string    `json:"filename"`
	UploadURL string    `json:"uploadUrl"`
	S3Key     string    `json:"s3Key"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type createSessionsResponse struct {
	Files            []createdSessionResponse `json:"files"`
	SessionExpiresAt time.Time                `json:"sessionExpiresAt"`
}

// CreateSessions handles POST /api/v1/mocs/:id/upload-sessions
func (h *UploadHandler) CreateSessions(c *gin.Context) {
	ownerID, err := middleware.GetOwnerID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing owner context")
		return
	}

	mocID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid moc id")
		return
	}

	var req createSessionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body: "+err.Error())
		return
	}

	files := make([]service.FileInput, 0, len(req.Files))
	for _, f := range req.Files {
		files = append(files, service.FileInput{
			Category: domain.FileCategory(f.Category),
			Filename: f.Filename,
			Size:     f.Size,
			MimeType: f.MimeType,
		})
	}

	result, err := h.sessions.CreateSessions(c.Request.Context(), ownerID, mocID, files)
	if err != nil {
		HandleError(c, err)
		return
	}

	resp := createSessionsResponse{
		Files:            make([]createdSessionResponse, 0, len(result.Files)),
		SessionExpiresAt: result.SessionExpiresAt,
	}
	for _, s := range result.Files {
		resp.Files = append(resp.Files, createdSessionResponse{
			ID:        s.ID,
			Category:  string(s.Category),
			Filename:  s.Filename,
			UploadURL: s.UploadURL,
			S3Key:     s.S3Key,
			ExpiresAt: s.ExpiresAt,
		})
	}

	RespondCreated(c, resp)
}

// CompleteSession handles POST /api/v1/mocs/:id/upload-sessions/:sessionId/complete
func (h *UploadHandler) CompleteSession(c *gin.Context) {
	ownerID, err := middleware.GetOwnerID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing owner context")
		return
	}

	mocID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid moc id")
		return
	}
	sessionID, err := uuid.Parse(c.Param("sessionId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid session id")
		return
	}

	file, err := h.sessions.CompleteSession(c.Request.Context(), ownerID, mocID, sessionID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, file)
}
