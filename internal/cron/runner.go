package cron

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/noah-isme/animeaux-api/internal/observability"
)

// Job is a unit of scheduled work.
type Job interface {
	ID() string
	Run(ctx context.Context) error
}

// Runner executes jobs on a fixed interval until its context is cancelled.
type Runner struct {
	interval time.Duration
	jobs     []Job
	logger   zerolog.Logger
	wg       sync.WaitGroup
}

// NewRunner constructs a runner. Non-positive intervals default to one hour.
func NewRunner(interval time.Duration, logger zerolog.Logger, jobs ...Job) *Runner {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Runner{
		interval: interval,
		jobs:     jobs,
		logger:   logger.With().Str("component", "cron_runner").Logger(),
	}
}

// Start launches one goroutine per job. Each job runs immediately, then on
// every tick.
func (r *Runner) Start(ctx context.Context) {
	for _, job := range r.jobs {
		r.wg.Add(1)
		go r.loop(ctx, job)
	}
}

// Wait blocks until every job loop has stopped.
func (r *Runner) Wait() {
	r.wg.Wait()
}

func (r *Runner) loop(ctx context.Context, job Job) {
	defer r.wg.Done()

	logger := r.logger.With().Str("job", job.ID()).Logger()
	logger.Info().Dur("interval", r.interval).Msg("cron job scheduled")

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.RunOnce(ctx, job)
	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("cron job stopping")
			return
		case <-ticker.C:
			r.RunOnce(ctx, job)
		}
	}
}

// RunOnce executes a single job run, containing panics and recording the outcome.
func (r *Runner) RunOnce(ctx context.Context, job Job) (err error) {
	start := time.Now()
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("cron job %s panic: %v", job.ID(), recovered)
		}

		outcome := "ok"
		if err != nil {
			outcome = "error"
			r.logger.Error().Err(err).Str("job", job.ID()).Msg("cron job failed")
		} else {
			r.logger.Debug().Str("job", job.ID()).Dur("duration", time.Since(start)).Msg("cron job completed")
		}
		observability.CronJobRuns().WithLabelValues(job.ID(), outcome).Inc()
	}()

	return job.Run(ctx)
}
