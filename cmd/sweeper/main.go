package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"brickvault/internal/config"
	"brickvault/internal/repository/postgres"
	"brickvault/internal/service"
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

	sweeper := service.NewSessionSweeper(postgres.NewUploadSessionRepo(db), cfg.Sweep.Interval)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sweeper.Start(ctx)
	return nil
}
