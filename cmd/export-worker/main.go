package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"contract-claim-system/internal/config"
	"contract-claim-system/internal/logger"
	"contract-claim-system/internal/queue"
	"contract-claim-system/internal/review"
	"contract-claim-system/internal/storage"
	"contract-claim-system/internal/store"
	"contract-claim-system/internal/worker"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Initialize logger
	logger.Init("export-worker", cfg.Logging.Level, cfg.Logging.Format)
	log := logger.Get()

	log.Info().Str("version", cfg.App.Version).Msg("Starting export worker")

	// Initialize blob storage
	blobs, err := storage.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize blob storage")
	}

	// Initialize Redis client
	redisClient, err := queue.NewRedisClient(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()

	// The worker holds its own seeded in-memory snapshot; claims mutated
	// through the API after startup are not visible here until a durable
	// store backs both processes.
	repo := store.NewSeededStore()
	reviews := review.NewService(repo, cfg.Review.PageSize)

	exportWorker := worker.NewExportWorker(cfg, reviews, blobs, redisClient)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := exportWorker.Start(ctx); err != nil && err != context.Canceled {
			log.Fatal().Err(err).Msg("Export worker failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down export worker...")

	cancel()
	exportWorker.Stop()

	log.Info().Msg("Export worker exited")
}
