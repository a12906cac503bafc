package main

import (
	"fmt"
	"log"

	redislib "github.com/redis/go-redis/v9"

	"brickvault/internal/config"
	"brickvault/internal/handler"
	"brickvault/internal/port"
	redislimit "brickvault/internal/ratelimit/redis"
	"brickvault/internal/repository/postgres"
	"brickvault/internal/router"
	"brickvault/internal/service"
	s3storage "brickvault/internal/storage/s3"
	amqptasks "brickvault/internal/tasks/amqp"
	nooptasks "brickvault/internal/tasks/noop"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	mocRepo := postgres.NewMocRepo(db)
	sessionRepo := postgres.NewUploadSessionRepo(db)
	fileRepo := postgres.NewMocFileRepo(db)
	galleryRepo := postgres.NewGalleryRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Redis backs the daily upload counter.
	redisClient := redislib.NewClient(&redislib.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()
	limiter := redislimit.NewLimiterWithClient(redisClient, cfg.Upload.DailyLimit)

	// Task dispatcher. Degrade to a logging no-op when the broker is down
	// so content deletion keeps working; the database stays authoritative.
	var dispatcher port.TaskDispatcher
	amqpDispatcher, err := amqptasks.NewDispatcher(&cfg.MQ)
	if err != nil {
		log.Printf("main: rabbitmq unavailable, async tasks disabled: %v", err)
		dispatcher = nooptasks.NewDispatcher()
	} else {
		defer amqpDispatcher.Close()
		dispatcher = amqpDispatcher
	}

	// Initialize services
	authSvc := service.NewAuthService(cfg.JWT)
	uploadSvc := service.NewUploadSessionService(
		mocRepo, sessionRepo, fileRepo, s3Client, limiter,
		&cfg.Upload, &cfg.S3, cfg.Server.Environment,
	)
	finalizeSvc := service.NewFinalizeService(mocRepo, fileRepo, cfg.Upload.FinalizeStaleAfter)
	mocSvc := service.NewMocService(mocRepo, fileRepo, galleryRepo, dispatcher)

	// Initialize handlers
	uploadH := handler.NewUploadHandler(uploadSvc)
	mocH := handler.NewMocHandler(mocSvc, finalizeSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg, authSvc, uploadH, mocH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
