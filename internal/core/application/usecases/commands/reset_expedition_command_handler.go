package commands

import (
	"context"

	"expedition/internal/core/ports"
)

// ResetExpeditionCommandHandler returns an expedition to the planned state.
// The dispatcher check is resolved here and handed to the aggregate, which
// decides whether the current state allows the reset.
type ResetExpeditionCommandHandler struct {
	uowFactory   ExpeditionUoWFactory
	capabilities ports.Capabilities
}

// NewResetExpeditionCommandHandler creates a handler for reset operations.
func NewResetExpeditionCommandHandler(
	uowFactory ExpeditionUoWFactory,
	capabilities ports.Capabilities,
) ResetExpeditionCommandHandler {
	return ResetExpeditionCommandHandler{
		uowFactory:   uowFactory,
		capabilities: capabilities,
	}
}

// Handle resets the expedition to planned, subject to the lock policy.
func (h *ResetExpeditionCommandHandler) Handle(ctx context.Context, cmd ResetExpeditionCommand) error {
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

	if err = exp.ResetToPlanned(cmd.ActorID(), isDispatcher); err != nil {
		return err
	}

	if err = expeditionRepo.Update(ctx, exp); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
