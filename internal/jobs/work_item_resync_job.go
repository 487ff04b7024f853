package jobs

import (
	"context"
	"log/slog"
	"time"

	"expedition/internal/core/application/usecases/commands"
	"expedition/internal/core/domain/model/kernel"

	"github.com/robfig/cron/v3"
)

// WorkItemResyncJob periodically re-projects the work items of the current
// dispatch date for every configured company. The projection is idempotent,
// so a sweep that overlaps normal command traffic is harmless.
type WorkItemResyncJob struct {
	handler   commands.ResyncWorkItemsCommandHandler
	companies []kernel.UUID
	schedule  string
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewWorkItemResyncJob creates a job that sweeps work-item mirrors on the
// given cron schedule (with a seconds field).
func NewWorkItemResyncJob(
	handler commands.ResyncWorkItemsCommandHandler,
	companies []kernel.UUID,
	schedule string,
	logger *slog.Logger,
) *WorkItemResyncJob {
	return &WorkItemResyncJob{
		handler:   handler,
		companies: companies,
		schedule:  schedule,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "work_item_resync_job"),
	}
}

// Start begins the sweep on the configured schedule.
func (j *WorkItemResyncJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		date, err := kernel.DateFromTime(time.Now())
		if err != nil {
			j.logger.ErrorContext(ctx, "Work item resync date rejected", "error", err)
			return
		}

		for _, companyID := range j.companies {
			cmd, err := commands.NewResyncWorkItemsCommand(companyID, date)
			if err != nil {
				j.logger.ErrorContext(ctx, "Work item resync command rejected",
					"company_id", companyID.String(), "error", err)
				continue
			}

			if err := j.handler.Handle(ctx, cmd); err != nil {
				j.logger.ErrorContext(ctx, "Work item resync job failed",
					"company_id", companyID.String(), "date", date.String(), "error", err)
			}
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Work item resync job started",
		"schedule", j.schedule, "companies", len(j.companies))
	return nil
}

// Stop stops the resync job.
func (j *WorkItemResyncJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Work item resync job stopped")
}
