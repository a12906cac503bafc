package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"brickvault/internal/middleware"
	"brickvault/internal/service"
)

// MocHandler handles MOC lifecycle endpoints.
type MocHandler struct {
	mocs     service.MocService
	finalize service.FinalizeService
}

// NewMocHandler creates a new MocHandler.
func NewMocHandler(mocs service.MocService, finalize service.FinalizeService) *MocHandler {
	return &MocHandler{mocs: mocs, finalize: finalize}
}

// Finalize handles POST /api/v1/mocs/:id/finalize
func (h *MocHandler) Finalize(c *gin.Context) {
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

	result, err := h.finalize.FinalizeMoc(c.Request.Context(), ownerID, mocID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{
		"moc":        result.Moc,
		"files":      result.Files,
		"idempotent": result.Idempotent,
	})
}

// Delete handles DELETE /api/v1/mocs/:id
func (h *MocHandler) Delete(c *gin.Context) {
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

	if err := h.mocs.DeleteMoc(c.Request.Context(), mocID, ownerID); err != nil {
		HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
