package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"contract-claim-system/internal/config"
	"contract-claim-system/internal/export"
	"contract-claim-system/internal/logger"
	"contract-claim-system/internal/model"
	"contract-claim-system/internal/queue"
	"contract-claim-system/internal/review"
	"contract-claim-system/internal/storage"
)

// ExportWorker consumes export jobs from the Redis queue, snapshots the
// matching claims, builds the requested workbook and uploads it to blob
// storage. Jobs that fail end up on the DLQ via the consumer.
type ExportWorker struct {
	cfg        *config.Config
	reviews    *review.Service
	storage    storage.Storage
	consumer   *queue.Consumer
	workerPool *WorkerPool
	log        zerolog.Logger
}

func NewExportWorker(
	cfg *config.Config,
	reviews *review.Service,
	blobs storage.Storage,
	redisClient *queue.RedisClient,
) *ExportWorker {
	return &ExportWorker{
		cfg:        cfg,
		reviews:    reviews,
		storage:    blobs,
		consumer:   queue.NewConsumer(redisClient, cfg),
		workerPool: NewWorkerPool(cfg.Workers.Export.Count),
		log:        logger.Get(),
	}
}

func (w *ExportWorker) Start(ctx context.Context) error {
	w.log.Info().Msg("Starting export worker")

	w.workerPool.Start(ctx)

	return w.consumer.ConsumeExportQueue(ctx, w.handleMessage)
}

func (w *ExportWorker) Stop() {
	w.log.Info().Msg("Stopping export worker")
	w.workerPool.Stop()
}

func (w *ExportWorker) handleMessage(ctx context.Context, data []byte) error {
	var job model.ExportJob
	if err := json.Unmarshal(data, &job); err != nil {
		w.log.Error().Err(err).Msg("Failed to unmarshal export job")
		return err
	}

	w.log.Info().
		Str("format", string(job.Format)).
		Str("requested_by", job.RequestedBy).
		Msg("Processing export job")

	accepted := w.workerPool.Submit(func(ctx context.Context) error {
		return w.processExport(ctx, job)
	})
	if !accepted {
		// Erroring here sends the message to the DLQ instead of dropping it.
		return fmt.Errorf("export job queue is full")
	}

	return nil
}

func (w *ExportWorker) processExport(ctx context.Context, job model.ExportJob) error {
	log := w.log.With().Str("format", string(job.Format)).Logger()

	claims, err := w.reviews.SnapshotForExport(ctx, job.Filter)
	if err != nil {
		log.Error().Err(err).Msg("Failed to snapshot claims for export")
		return err
	}

	var content []byte
	switch job.Format {
	case model.ExportFormatCSV:
		content, err = export.BuildCSV(claims)
	case model.ExportFormatXLSX, "":
		content, err = export.BuildXLSX(claims)
	default:
		return fmt.Errorf("unknown export format: %s", job.Format)
	}
	if err != nil {
		log.Error().Err(err).Msg("Failed to build export file")
		return err
	}

	key := w.exportKey(job)
	if err := w.storage.Upload(ctx, key, bytes.NewReader(content)); err != nil {
		log.Error().Err(err).Str("key", key).Msg("Failed to upload export file")
		return err
	}

	log.Info().
		Str("key", key).
		Int("claims", len(claims)).
		Int("bytes", len(content)).
		Msg("Export file uploaded")

	return nil
}

func (w *ExportWorker) exportKey(job model.ExportJob) string {
	format := job.Format
	if format == "" {
		format = model.ExportFormatXLSX
	}
	return fmt.Sprintf("%s/claims-%s.%s",
		w.cfg.Workers.Export.Prefix,
		job.RequestedAt.Format("20060102-150405"),
		format)
}
