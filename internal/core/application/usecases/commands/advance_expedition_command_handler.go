package commands

import (
	"context"
)

// AdvanceExpeditionCommandHandler moves an expedition forward in its
// lifecycle. The aggregate enforces forward-only movement and the load
// precondition; the handler only provides the transaction.
type AdvanceExpeditionCommandHandler struct {
	uowFactory ExpeditionUoWFactory
}

// NewAdvanceExpeditionCommandHandler creates a handler for state advances.
func NewAdvanceExpeditionCommandHandler(uowFactory ExpeditionUoWFactory) AdvanceExpeditionCommandHandler {
	return AdvanceExpeditionCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle loads the expedition, advances it and persists the result,
// including the new entry of the transition log.
func (h *AdvanceExpeditionCommandHandler) Handle(ctx context.Context, cmd AdvanceExpeditionCommand) error {
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

	expeditionRepo := uow.ExpeditionRepository()
	exp, err := expeditionRepo.Get(ctx, cmd.ExpeditionID())
	if err != nil {
		return err
	}

	if err = exp.Advance(cmd.Target(), cmd.ActorID()); err != nil {
		return err
	}

	if err = expeditionRepo.Update(ctx, exp); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
