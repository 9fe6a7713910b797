package worker

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"contract-claim-system/internal/logger"
)

// Job is one unit of export work. The context passed in is the pool's run
// context, cancelled on shutdown.
type Job func(ctx context.Context) error

type WorkerPool struct {
	workerCount int
	jobChan     chan Job
	wg          sync.WaitGroup
	log         zerolog.Logger
}

func NewWorkerPool(workerCount int) *WorkerPool {
	return &WorkerPool{
		workerCount: workerCount,
		jobChan:     make(chan Job, workerCount*2),
		log:         logger.Get(),
	}
}

func (wp *WorkerPool) Start(ctx context.Context) {
	wp.log.Info().Int("worker_count", wp.workerCount).Msg("Starting export worker pool")

	for i := 0; i < wp.workerCount; i++ {
		wp.wg.Add(1)
		go wp.worker(ctx, i)
	}
}

func (wp *WorkerPool) Stop() {
	wp.log.Info().Msg("Stopping export worker pool")
	close(wp.jobChan)
	wp.wg.Wait()
	wp.log.Info().Msg("Export worker pool stopped")
}

// Submit queues a job without blocking. It reports whether the job was
// accepted; a full queue refuses the job so the caller can retry or park it
// elsewhere instead of losing it.
func (wp *WorkerPool) Submit(job Job) bool {
	select {
	case wp.jobChan <- job:
		return true
	default:
		wp.log.Warn().Int("capacity", cap(wp.jobChan)).Msg("Export job queue full, job refused")
		return false
	}
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	defer wp.wg.Done()

	log := wp.log.With().Int("worker_id", id).Logger()
	log.Debug().Msg("Export worker started")

	for {
		select {
		case <-ctx.Done():
			log.Debug().Msg("Export worker stopping due to context cancellation")
			return
		case job, ok := <-wp.jobChan:
			if !ok {
				log.Debug().Msg("Export worker stopping due to closed job channel")
				return
			}

			if err := job(ctx); err != nil {
				log.Error().Err(err).Msg("Export job failed")
			}
		}
	}
}
