package commands

import (
	"context"

	"expedition/internal/core/ports"
)

// RemoveLineCommandHandler drops a stop from its expedition, renumbers the
// remaining stops and retires the stop's work items.
type RemoveLineCommandHandler struct {
	uowFactory   RoutingUoWFactory
	capabilities ports.Capabilities
	synchronizer WorkItemSynchronizer
}

// NewRemoveLineCommandHandler creates a handler for stop removals.
func NewRemoveLineCommandHandler(
	uowFactory RoutingUoWFactory,
	capabilities ports.Capabilities,
	synchronizer WorkItemSynchronizer,
) RemoveLineCommandHandler {
	return RemoveLineCommandHandler{
		uowFactory:   uowFactory,
		capabilities: capabilities,
		synchronizer: synchronizer,
	}
}

// Handle removes the stop, subject to the lock policy, and deactivates the
// work items of every driver who worked it.
func (h *RemoveLineCommandHandler) Handle(ctx context.Context, cmd RemoveLineCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	isDispatcher, err := h.capabilities.IsDispatcher(ctx, cmd.ActorID())
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

	removed, err := exp.RemoveLine(cmd.LineID(), isDispatcher)
	if err != nil {
		return err
	}

	if err = h.synchronizer.DeactivateLine(ctx, uow.WorkItems(), removed); err != nil {
		return err
	}

	if err = expeditionRepo.Update(ctx, exp); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
