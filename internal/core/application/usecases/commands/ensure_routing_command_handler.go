package commands

import (
	"context"
	"errors"

	"expedition/internal/core/domain/model/expedition"
	"expedition/internal/core/domain/model/kernel"
	"expedition/internal/core/ports"
	"expedition/internal/pkg/errs"
)

// EnsureRoutingCommandHandler materializes the routing of a delivery order:
// expedition, line and work item mirror. Missing pieces are created, present
// ones are left alone, which makes the whole operation safe to repeat.
type EnsureRoutingCommandHandler struct {
	uowFactory   RoutingUoWFactory
	synchronizer WorkItemSynchronizer
}

// NewEnsureRoutingCommandHandler creates a handler for routing operations.
func NewEnsureRoutingCommandHandler(
	uowFactory RoutingUoWFactory,
	synchronizer WorkItemSynchronizer,
) EnsureRoutingCommandHandler {
	return EnsureRoutingCommandHandler{
		uowFactory:   uowFactory,
		synchronizer: synchronizer,
	}
}

// Handle routes the delivery order onto the driver's expedition for the
// date. Orders whose sales order stopped short of full logistics are left
// unrouted. The expedition is created on first use; the line is appended at
// the end of the route when the delivery is not carried yet; the driver
// mirror and work items are re-synced either way.
func (h *EnsureRoutingCommandHandler) Handle(ctx context.Context, cmd EnsureRoutingCommand) error {
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

	docs := uow.DeliveryOrders()

	deliveryOrder, err := docs.Get(ctx, cmd.DeliveryOrderID())
	if err != nil {
		return err
	}

	if deliveryOrder.SalesOrderID != nil {
		salesOrder, err := uow.SalesOrders().Get(ctx, *deliveryOrder.SalesOrderID)
		if err != nil {
			return err
		}
		if salesOrder.AppliedMode != ports.AppliedModeFull {
			return nil
		}
	}

	expeditionRepo := uow.ExpeditionRepository()

	exp, err := expeditionRepo.GetByKey(ctx, cmd.CompanyID(), cmd.Date(), cmd.DriverID())
	created := false
	if err != nil {
		var notFound *errs.ObjectNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}

		exp, err = expedition.NewExpedition(
			kernel.NewUUID(), cmd.CompanyID(), cmd.Date(), cmd.DriverID())
		if err != nil {
			return err
		}
		created = true
	}

	line := exp.LineByDeliveryOrder(cmd.DeliveryOrderID())
	if line == nil {
		line, err = exp.AddLine(cmd.DeliveryOrderID())
		if err != nil {
			return err
		}
	}

	if err = docs.SetDriver(ctx, cmd.DeliveryOrderID(), cmd.DriverID()); err != nil {
		return err
	}

	if err = h.synchronizer.SyncLine(ctx, docs, uow.WorkItems(), exp, line); err != nil {
		return err
	}

	if created {
		err = expeditionRepo.Add(ctx, exp)
	} else {
		err = expeditionRepo.Update(ctx, exp)
	}
	if err != nil {
		return err
	}

	return uow.Commit(ctx)
}
