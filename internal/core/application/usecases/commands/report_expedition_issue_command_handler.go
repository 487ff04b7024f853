package commands

import (
	"context"
	"time"

	"expedition/internal/core/domain/model/expedition"
)

// ReportExpeditionIssueCommandHandler suspends an expedition with an issue
// report. The previous state is remembered by the aggregate so a later
// step-back resumes it.
type ReportExpeditionIssueCommandHandler struct {
	uowFactory ExpeditionUoWFactory
	now        func() time.Time
}

// NewReportExpeditionIssueCommandHandler creates a handler for issue reports.
func NewReportExpeditionIssueCommandHandler(uowFactory ExpeditionUoWFactory) ReportExpeditionIssueCommandHandler {
	return ReportExpeditionIssueCommandHandler{
		uowFactory: uowFactory,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Handle puts the expedition on hold with the reported issue.
func (h *ReportExpeditionIssueCommandHandler) Handle(ctx context.Context, cmd ReportExpeditionIssueCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	issue, err := expedition.NewIssue(cmd.Kind(), cmd.Note(), cmd.ActorID(), h.now())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	expeditionRepo := uow.ExpeditionRepository()
	exp, err := expeditionRepo.Get(ctx, cmd.ExpeditionID())
	if err != nil {
		return err
	}

	if err = exp.HoldWithIssue(issue, cmd.ActorID()); err != nil {
		return err
	}

	if err = expeditionRepo.Update(ctx, exp); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
