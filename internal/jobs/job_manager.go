package jobs

import (
	"fmt"
	"log/slog"
	"time"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	passivationJob *PassivationJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	passivator Passivator,
	maxIdle time.Duration,
	passivationSchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		passivationJob: NewPassivationJob(passivator, maxIdle, passivationSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.passivationJob.Start(); err != nil {
		return fmt.Errorf("failed to start passivation job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.passivationJob.Stop()
}
