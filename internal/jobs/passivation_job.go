package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Passivator removes idle order entities from memory. Implemented by the
// order runtime.
type Passivator interface {
	PassivateIdle(maxIdle time.Duration) int
}

// PassivationJob periodically sweeps idle order entities out of memory.
// Passivated orders lose no state and are recovered from the journal on
// their next command.
type PassivationJob struct {
	passivator Passivator
	maxIdle    time.Duration
	schedule   string
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewPassivationJob creates a job that passivates entities idle longer than
// maxIdle, on the given cron schedule (with seconds).
func NewPassivationJob(passivator Passivator, maxIdle time.Duration, schedule string, logger *slog.Logger) *PassivationJob {
	return &PassivationJob{
		passivator: passivator,
		maxIdle:    maxIdle,
		schedule:   schedule,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "passivation_job"),
	}
}

// Start begins the passivation sweep.
func (j *PassivationJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()

		if passivated := j.passivator.PassivateIdle(j.maxIdle); passivated > 0 {
			j.logger.InfoContext(ctx, "Passivated idle orders", "count", passivated)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Passivation job started",
		"schedule", j.schedule, "max_idle", j.maxIdle)
	return nil
}

// Stop stops the passivation sweeps.
func (j *PassivationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Passivation job stopped")
}
