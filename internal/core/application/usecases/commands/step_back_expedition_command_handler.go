package commands

import (
	"context"
)

// StepBackExpeditionCommandHandler moves an expedition one lifecycle step
// backwards, or resumes it from hold.
type StepBackExpeditionCommandHandler struct {
	uowFactory ExpeditionUoWFactory
}

// NewStepBackExpeditionCommandHandler creates a handler for step-back operations.
func NewStepBackExpeditionCommandHandler(uowFactory ExpeditionUoWFactory) StepBackExpeditionCommandHandler {
	return StepBackExpeditionCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle loads the expedition, steps it back and persists the result.
func (h *StepBackExpeditionCommandHandler) Handle(ctx context.Context, cmd StepBackExpeditionCommand) error {
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

	if err = exp.StepBack(cmd.ActorID()); err != nil {
		return err
	}

	if err = expeditionRepo.Update(ctx, exp); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
