package commands

import (
	"context"
	"errors"

	"expedition/internal/core/domain/model/expedition"
	"expedition/internal/core/domain/model/kernel"
	"expedition/internal/core/ports"
	"expedition/internal/pkg/errs"
)

// EditLineParticipantsCommandHandler applies a direct edit of a stop's
// driver set.
//
// With split normalization enabled, a stop never keeps more than one driver
// after a direct edit: one participant is retained (the expedition's main
// driver when present, else the first listed driver) and every other
// driver's share relocates onto a stop for the same delivery in that
// driver's own expedition for the date, created on first use and merged
// when it already exists. Writing exactly one driver who is not the main
// driver means "this stop is yours now": the whole line moves to that
// driver's expedition, document mirrors included.
//
// With split normalization disabled, the edit is stored as given and shared
// stops stay shared.
type EditLineParticipantsCommandHandler struct {
	uowFactory     MirrorUoWFactory
	capabilities   ports.Capabilities
	synchronizer   WorkItemSynchronizer
	splitUserEdits bool
}

// NewEditLineParticipantsCommandHandler creates a handler for participant edits.
func NewEditLineParticipantsCommandHandler(
	uowFactory MirrorUoWFactory,
	capabilities ports.Capabilities,
	synchronizer WorkItemSynchronizer,
	splitUserEdits bool,
) EditLineParticipantsCommandHandler {
	return EditLineParticipantsCommandHandler{
		uowFactory:     uowFactory,
		capabilities:   capabilities,
		synchronizer:   synchronizer,
		splitUserEdits: splitUserEdits,
	}
}

// Handle applies the participant edit, normalizing shared stops per the
// split policy.
func (h *EditLineParticipantsCommandHandler) Handle(ctx context.Context, cmd EditLineParticipantsCommand) error {
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

	if err = exp.AuthorizeEdit(isDispatcher, "edit line participants"); err != nil {
		return err
	}

	line := exp.LineByID(cmd.LineID())
	if line == nil {
		return expedition.ErrLineNotFound
	}

	participants := cmd.Participants()
	if h.splitUserEdits && len(participants) == 1 && !participants[0].IsEqual(exp.DriverID()) {
		return h.transferLine(ctx, uow, exp, line, participants[0])
	}

	if err = line.SetParticipants(participants); err != nil {
		return err
	}

	if h.splitUserEdits && line.IsShared() {
		return h.splitExtraDrivers(ctx, uow, exp, line)
	}

	if err = h.synchronizer.SyncLine(ctx, uow.DeliveryOrders(), uow.WorkItems(), exp, line); err != nil {
		return err
	}

	if err = expeditionRepo.Update(ctx, exp); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// splitExtraDrivers relocates every non-retained driver's share onto a stop
// for the same delivery in that driver's own expedition. The source stop
// keeps the expedition's main driver when they participate, the first
// listed driver otherwise.
func (h *EditLineParticipantsCommandHandler) splitExtraDrivers(
	ctx context.Context,
	uow MirrorUoW,
	source *expedition.Expedition,
	line *expedition.Line,
) error {
	retained := source.DriverID()
	if !line.HasParticipant(retained) {
		retained = line.Participants()[0]
	}

	type relocatedShare struct {
		driverID  kernel.UUID
		boxes     float64
		weight    float64
		vehicleID *kernel.UUID
	}

	var relocated []relocatedShare
	for _, participant := range line.Participants() {
		if participant.IsEqual(retained) {
			continue
		}
		share := line.AllocationFor(participant)
		relocated = append(relocated, relocatedShare{
			driverID:  participant,
			boxes:     share.Boxes(),
			weight:    share.Weight(),
			vehicleID: share.VehicleID(),
		})
	}

	for _, share := range relocated {
		if err := line.RemoveParticipant(share.driverID); err != nil {
			return err
		}
	}

	expeditionRepo := uow.ExpeditionRepository()
	docs := uow.DeliveryOrders()
	items := uow.WorkItems()

	// The source stop is synced first so the leaving drivers' items are
	// retired before the target sync revives them under their own stops.
	if err := h.synchronizer.SyncLine(ctx, docs, items, source, line); err != nil {
		return err
	}

	for _, share := range relocated {
		target, created, err := h.expeditionForDriver(
			ctx, expeditionRepo, source.CompanyID(), source.Date(), share.driverID)
		if err != nil {
			return err
		}

		targetLine := target.LineByDeliveryOrder(line.DeliveryOrderID())
		if targetLine == nil {
			targetLine, err = target.AddLine(line.DeliveryOrderID())
			if err != nil {
				return err
			}
		}

		if !targetLine.HasParticipant(share.driverID) {
			if err = targetLine.AddParticipant(share.driverID); err != nil {
				return err
			}
		}

		allocation := targetLine.AllocationFor(share.driverID)
		if err = allocation.SetQuantities(
			allocation.Boxes()+share.boxes, allocation.Weight()+share.weight); err != nil {
			return err
		}
		if share.vehicleID != nil {
			if err = allocation.SetVehicle(share.vehicleID); err != nil {
				return err
			}
		}

		if err = h.synchronizer.SyncLine(ctx, docs, items, target, targetLine); err != nil {
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
	}

	if err := expeditionRepo.Update(ctx, source); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// transferLine moves the stop onto the receiving driver's expedition for the
// same date, creating that expedition on first use, and moves every mirror
// with it.
func (h *EditLineParticipantsCommandHandler) transferLine(
	ctx context.Context,
	uow MirrorUoW,
	source *expedition.Expedition,
	line *expedition.Line,
	newDriverID kernel.UUID,
) error {
	expeditionRepo := uow.ExpeditionRepository()

	target, created, err := h.expeditionForDriver(
		ctx, expeditionRepo, source.CompanyID(), source.Date(), newDriverID)
	if err != nil {
		return err
	}

	taken, err := source.TakeLine(line.ID())
	if err != nil {
		return err
	}

	if err = taken.SetParticipants([]kernel.UUID{newDriverID}); err != nil {
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

// expeditionForDriver loads the driver's expedition for the date, creating
// a fresh one when the driver has none yet.
func (h *EditLineParticipantsCommandHandler) expeditionForDriver(
	ctx context.Context,
	expeditionRepo ports.ExpeditionRepository,
	companyID kernel.UUID,
	date kernel.Date,
	driverID kernel.UUID,
) (*expedition.Expedition, bool, error) {
	target, err := expeditionRepo.GetByKey(ctx, companyID, date, driverID)
	if err == nil {
		return target, false, nil
	}

	var notFound *errs.ObjectNotFoundError
	if !errors.As(err, &notFound) {
		return nil, false, err
	}

	target, err = expedition.NewExpedition(kernel.NewUUID(), companyID, date, driverID)
	if err != nil {
		return nil, false, err
	}
	return target, true, nil
}
