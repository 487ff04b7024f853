package jobs

import (
	"fmt"
	"log/slog"

	"expedition/internal/core/application/usecases/commands"
	"expedition/internal/core/domain/model/kernel"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	workItemResyncJob *WorkItemResyncJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	resyncHandler commands.ResyncWorkItemsCommandHandler,
	companies []kernel.UUID,
	resyncSchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		workItemResyncJob: NewWorkItemResyncJob(resyncHandler, companies, resyncSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.workItemResyncJob.Start(); err != nil {
		return fmt.Errorf("failed to start work item resync job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.workItemResyncJob.Stop()
}
