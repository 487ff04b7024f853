package commands

import (
	"context"
	"errors"

	"expedition/internal/core/domain/model/expedition"
	"expedition/internal/core/domain/model/kernel"
	"expedition/internal/core/ports"
	"expedition/internal/pkg/errs"
)

// ErrDriverNotInvolved is returned when a reassignment names a driver who
// has no routing for the delivery order.
var ErrDriverNotInvolved = errors.New("driver has no routing for the delivery order")

// ReassignWorkItemCommandHandler follows a task reassignment made in the
// work management system back into the routing.
//
// When the outgoing driver is the main driver of the expedition carrying the
// stop, the whole stop moves to the incoming driver's own expedition and the
// document mirrors move with it. When the outgoing driver only helps on the
// stop, the incoming driver simply takes over their share; shares merge if
// the incoming driver already participates.
type ReassignWorkItemCommandHandler struct {
	uowFactory   MirrorUoWFactory
	capabilities ports.Capabilities
	synchronizer WorkItemSynchronizer
}

// NewReassignWorkItemCommandHandler creates a handler for task reassignments.
func NewReassignWorkItemCommandHandler(
	uowFactory MirrorUoWFactory,
	capabilities ports.Capabilities,
	synchronizer WorkItemSynchronizer,
) ReassignWorkItemCommandHandler {
	return ReassignWorkItemCommandHandler{
		uowFactory:   uowFactory,
		capabilities: capabilities,
		synchronizer: synchronizer,
	}
}

// Handle moves the routing of the delivery from the old driver to the new
// one, primary or helper as the case may be.
func (h *ReassignWorkItemCommandHandler) Handle(ctx context.Context, cmd ReassignWorkItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if cmd.OldDriverID().IsEqual(cmd.NewDriverID()) {
		return nil
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
	expeditions, err := expeditionRepo.GetByDeliveryOrder(ctx, cmd.DeliveryOrderID())
	if err != nil {
		return err
	}

	var source *expedition.Expedition
	var line *expedition.Line
	for _, candidate := range expeditions {
		l := candidate.LineByDeliveryOrder(cmd.DeliveryOrderID())
		if l != nil && l.HasParticipant(cmd.OldDriverID()) {
			source, line = candidate, l
			break
		}
	}
	if source == nil {
		return ErrDriverNotInvolved
	}

	if err = source.AuthorizeEdit(isDispatcher, "reassign work item"); err != nil {
		return err
	}

	if source.DriverID().IsEqual(cmd.OldDriverID()) {
		return h.transferPrimary(ctx, uow, source, line, cmd.NewDriverID())
	}

	if err = line.ReplaceParticipant(cmd.OldDriverID(), cmd.NewDriverID()); err != nil {
		return err
	}

	if err = h.synchronizer.SyncLine(ctx, uow.DeliveryOrders(), uow.WorkItems(), source, line); err != nil {
		return err
	}

	if err = expeditionRepo.Update(ctx, source); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// transferPrimary moves the stop to the new driver's expedition for the same
// date. The new driver takes the old main driver's position on the stop;
// helper drivers keep theirs. Document mirrors follow the new main driver.
func (h *ReassignWorkItemCommandHandler) transferPrimary(
	ctx context.Context,
	uow MirrorUoW,
	source *expedition.Expedition,
	line *expedition.Line,
	newDriverID kernel.UUID,
) error {
	expeditionRepo := uow.ExpeditionRepository()

	target, err := expeditionRepo.GetByKey(ctx, source.CompanyID(), source.Date(), newDriverID)
	created := false
	if err != nil {
		var notFound *errs.ObjectNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}

		target, err = expedition.NewExpedition(
			kernel.NewUUID(), source.CompanyID(), source.Date(), newDriverID)
		if err != nil {
			return err
		}
		created = true
	}

	taken, err := source.TakeLine(line.ID())
	if err != nil {
		return err
	}

	if err = taken.ReplaceParticipant(source.DriverID(), newDriverID); err != nil {
		return err
	}

	if err = target.AttachLine(taken); err != nil {
		return err
	}

	if err = mirrorDriverToDocuments(
		ctx, uow.DeliveryOrders(), uow.SalesOrders(), uow.Invoices(),
		taken.DeliveryOrderID(), newDriverID,
	); err != nil {
		return err
	}

	if err = h.synchronizer.SyncLine(ctx, uow.DeliveryOrders(), uow.WorkItems(), target, taken); err != nil {
		return err
	}

	if err = expeditionRepo.Update(ctx, source); err != nil {
		return err
	}

	if created {
		err = expeditionRepo.Add(ctx, target)
	} else {
		err = expeditionRepo.Update(ctx, target)
	}
	if err != nil {
		return err
	}

	return uow.Commit(ctx)
}
