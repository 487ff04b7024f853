package commands

import (
	"context"
)

// ResyncWorkItemsCommandHandler sweeps every expedition of one company and
// date and re-projects all work items. The projection is idempotent, so the
// sweep is safe to schedule aggressively.
type ResyncWorkItemsCommandHandler struct {
	uowFactory   RoutingUoWFactory
	synchronizer WorkItemSynchronizer
}

// NewResyncWorkItemsCommandHandler creates a handler for mirror sweeps.
func NewResyncWorkItemsCommandHandler(
	uowFactory RoutingUoWFactory,
	synchronizer WorkItemSynchronizer,
) ResyncWorkItemsCommandHandler {
	return ResyncWorkItemsCommandHandler{
		uowFactory:   uowFactory,
		synchronizer: synchronizer,
	}
}

// Handle re-syncs the work items of every stop on the date.
func (h *ResyncWorkItemsCommandHandler) Handle(ctx context.Context, cmd ResyncWorkItemsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	expeditions, err := uow.ExpeditionRepository().GetAllByDate(ctx, cmd.CompanyID(), cmd.Date())
	if err != nil {
		return err
	}

	docs := uow.DeliveryOrders()
	items := uow.WorkItems()
	for _, exp := range expeditions {
		for _, line := range exp.Lines() {
			if err = h.synchronizer.SyncLine(ctx, docs, items, exp, line); err != nil {
				return err
			}
		}
	}

	return uow.Commit(ctx)
}
