package commands

import (
	"context"

	"expedition/internal/core/domain/model/expedition"
	"expedition/internal/core/ports"
)

// SetLineVehicleCommandHandler changes a stop's vehicle override and
// refreshes the work items, whose resolved vehicle may have changed.
type SetLineVehicleCommandHandler struct {
	uowFactory   RoutingUoWFactory
	capabilities ports.Capabilities
	synchronizer WorkItemSynchronizer
}

// NewSetLineVehicleCommandHandler creates a handler for vehicle changes.
func NewSetLineVehicleCommandHandler(
	uowFactory RoutingUoWFactory,
	capabilities ports.Capabilities,
	synchronizer WorkItemSynchronizer,
) SetLineVehicleCommandHandler {
	return SetLineVehicleCommandHandler{
		uowFactory:   uowFactory,
		capabilities: capabilities,
		synchronizer: synchronizer,
	}
}

// Handle applies the vehicle override and re-syncs the stop's work items.
func (h *SetLineVehicleCommandHandler) Handle(ctx context.Context, cmd SetLineVehicleCommand) error {
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

	if err = exp.AuthorizeEdit(isDispatcher, "set line vehicle"); err != nil {
		return err
	}

	line := exp.LineByID(cmd.LineID())
	if line == nil {
		return expedition.ErrLineNotFound
	}

	if err = line.SetVehicle(cmd.VehicleID()); err != nil {
		return err
	}

	if err = h.synchronizer.SyncLine(ctx, uow.DeliveryOrders(), uow.WorkItems(), exp, line); err != nil {
		return err
	}

	if err = expeditionRepo.Update(ctx, exp); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
