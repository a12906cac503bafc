package router

import (
	"github.com/gin-gonic/gin"

	"brickvault/internal/config"
	"brickvault/internal/handler"
	"brickvault/internal/middleware"
	"brickvault/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	authSvc service.AuthService,
	uploadH *handler.UploadHandler,
	mocH *handler.MocHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	mocs := protected.Group("/mocs")
	mocs.POST("/:id/upload-sessions", uploadH.CreateSessions)
	mocs.POST("/:id/upload-sessions/:sessionId/complete", uploadH.CompleteSession)
	mocs.POST("/:id/finalize", mocH.Finalize)
	mocs.DELETE("/:id", mocH.Delete)

	return r
}
