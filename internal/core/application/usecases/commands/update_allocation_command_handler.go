package commands

import (
	"context"

	"expedition/internal/core/domain/model/expedition"
	"expedition/internal/core/ports"
)

// UpdateAllocationCommandHandler fills one driver's share of a stop and
// mirrors the new quantities and vehicle into the driver's work item.
type UpdateAllocationCommandHandler struct {
	uowFactory   RoutingUoWFactory
	capabilities ports.Capabilities
	synchronizer WorkItemSynchronizer
}

// NewUpdateAllocationCommandHandler creates a handler for share updates.
func NewUpdateAllocationCommandHandler(
	uowFactory RoutingUoWFactory,
	capabilities ports.Capabilities,
	synchronizer WorkItemSynchronizer,
) UpdateAllocationCommandHandler {
	return UpdateAllocationCommandHandler{
		uowFactory:   uowFactory,
		capabilities: capabilities,
		synchronizer: synchronizer,
	}
}

// Handle updates the share and re-syncs the stop's work items.
func (h *UpdateAllocationCommandHandler) Handle(ctx context.Context, cmd UpdateAllocationCommand) error {
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

	if err = exp.AuthorizeEdit(isDispatcher, "update allocation"); err != nil {
		return err
	}

	line := exp.LineByID(cmd.LineID())
	if line == nil {
		return expedition.ErrLineNotFound
	}

	allocation := line.AllocationFor(cmd.DriverID())
	if allocation == nil {
		return expedition.ErrAllocationNotFound
	}

	if err = allocation.SetQuantities(cmd.Boxes(), cmd.Weight()); err != nil {
		return err
	}
	if err = allocation.SetVehicle(cmd.VehicleID()); err != nil {
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
