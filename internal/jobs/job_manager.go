package jobs

import (
	"fmt"
	"log/slog"
	"time"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	retentionJob *RetentionJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	purgeHandler PurgeHandler,
	retention time.Duration,
	schedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		retentionJob: NewRetentionJob(purgeHandler, retention, schedule, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.retentionJob.Start(); err != nil {
		return fmt.Errorf("failed to start retention job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.retentionJob.Stop()
}
