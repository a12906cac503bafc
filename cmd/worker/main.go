package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	rediscache "brickvault/internal/cache/redis"
	"brickvault/internal/config"
	noopsearch "brickvault/internal/search/noop"
	s3storage "brickvault/internal/storage/s3"
	"brickvault/internal/tasks"
	amqptasks "brickvault/internal/tasks/amqp"
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

	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	cache, err := rediscache.NewCache(&cfg.Redis)
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}

	runner := tasks.NewRunner(s3Client, cache, noopsearch.NewSearchIndex(), cfg.S3.Bucket)

	consumer, err := amqptasks.NewConsumer(&cfg.MQ, runner)
	if err != nil {
		return fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return consumer.Start(ctx)
}
