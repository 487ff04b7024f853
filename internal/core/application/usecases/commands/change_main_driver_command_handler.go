package commands

import (
	"context"

	"expedition/internal/core/ports"
)

// ChangeMainDriverCommandHandler executes a full route handover: the
// aggregate transfers the driver on every stop, then each stop's document
// graph and work items are re-mirrored. Everything runs in one transaction;
// a delivery order that can no longer be touched rolls the handover back.
type ChangeMainDriverCommandHandler struct {
	uowFactory   MirrorUoWFactory
	capabilities ports.Capabilities
	drivers      ports.Drivers
	synchronizer WorkItemSynchronizer
}

// NewChangeMainDriverCommandHandler creates a handler for route handovers.
func NewChangeMainDriverCommandHandler(
	uowFactory MirrorUoWFactory,
	capabilities ports.Capabilities,
	drivers ports.Drivers,
	synchronizer WorkItemSynchronizer,
) ChangeMainDriverCommandHandler {
	return ChangeMainDriverCommandHandler{
		uowFactory:   uowFactory,
		capabilities: capabilities,
		drivers:      drivers,
		synchronizer: synchronizer,
	}
}

// Handle hands the expedition over to the new driver and mirrors the change
// into delivery orders, sales orders, draft invoices and work items.
func (h *ChangeMainDriverCommandHandler) Handle(ctx context.Context, cmd ChangeMainDriverCommand) error {
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

	// An expedition without a default vehicle inherits the new driver's own.
	vehicleID := cmd.VehicleID()
	if vehicleID == nil && exp.DefaultVehicleID() == nil {
		driver, err := h.drivers.Get(ctx, cmd.NewDriverID())
		if err != nil {
			return err
		}
		vehicleID = driver.DefaultVehicleID
	}

	if err = exp.ChangeMainDriver(cmd.NewDriverID(), vehicleID, isDispatcher); err != nil {
		return err
	}

	docs := uow.DeliveryOrders()
	for _, line := range exp.Lines() {
		if err = mirrorDriverToDocuments(
			ctx, docs, uow.SalesOrders(), uow.Invoices(),
			line.DeliveryOrderID(), cmd.NewDriverID(),
		); err != nil {
			return err
		}

		if err = h.synchronizer.SyncLine(ctx, docs, uow.WorkItems(), exp, line); err != nil {
			return err
		}
	}

	if err = expeditionRepo.Update(ctx, exp); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
