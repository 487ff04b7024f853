package commands

import (
	"context"
	"fmt"
	"strings"

	"expedition/internal/core/domain/model/expedition"
	"expedition/internal/core/domain/model/kernel"
	"expedition/internal/core/ports"
)

// WorkItemSynchronizer projects a line into the external work management
// system: one item per participating driver, keyed by (delivery order,
// driver). It resolves each driver's vehicle through the fallback chain and
// retires items of drivers who left the line.
//
// The projection is idempotent: running it twice over an unchanged line is
// a no-op apart from timestamp refreshes.
type WorkItemSynchronizer struct {
	drivers ports.Drivers
	fleet   ports.Fleet
}

// NewWorkItemSynchronizer creates a synchronizer backed by driver master
// data and the fleet registry.
func NewWorkItemSynchronizer(drivers ports.Drivers, fleet ports.Fleet) WorkItemSynchronizer {
	return WorkItemSynchronizer{
		drivers: drivers,
		fleet:   fleet,
	}
}

// SyncLine upserts one work item per participant of the line and
// deactivates items of drivers no longer participating. The delivery order
// supplies the title, the address block and the planned time range.
func (s WorkItemSynchronizer) SyncLine(
	ctx context.Context,
	docs ports.DeliveryOrders,
	items ports.WorkItems,
	exp *expedition.Expedition,
	line *expedition.Line,
) error {
	deliveryOrder, err := docs.Get(ctx, line.DeliveryOrderID())
	if err != nil {
		return err
	}

	plannedStart, plannedEnd := deliveryOrder.TimeWindow.PlannedRange(exp.Date())

	for _, allocation := range line.Allocations() {
		vehicleID, err := s.resolveVehicle(ctx, exp, line, allocation)
		if err != nil {
			return err
		}

		isPrimary := allocation.DriverID().IsEqual(exp.DriverID())
		item := ports.WorkItem{
			ID:              kernel.NewUUID(),
			DeliveryOrderID: line.DeliveryOrderID(),
			DriverID:        allocation.DriverID(),
			VehicleID:       vehicleID,
			Title:           deliveryOrder.Reference,
			Description:     buildWorkItemDescription(deliveryOrder, allocation, isPrimary),
			PlannedStart:    plannedStart,
			PlannedEnd:      plannedEnd,
			Sequence:        line.Sequence(),
			Boxes:           allocation.Boxes(),
			Weight:          allocation.Weight(),
			Primary:         isPrimary,
			Active:          true,
		}

		if err := items.Upsert(ctx, item); err != nil {
			return err
		}
	}

	return s.deactivateLeftovers(ctx, items, line)
}

// DeactivateLine retires the items of every participant, e.g. when the line
// is removed from its expedition.
func (s WorkItemSynchronizer) DeactivateLine(
	ctx context.Context,
	items ports.WorkItems,
	line *expedition.Line,
) error {
	for _, participant := range line.Participants() {
		if err := items.Deactivate(ctx, line.DeliveryOrderID(), participant); err != nil {
			return err
		}
	}
	return nil
}

// resolveVehicle walks the fallback chain for one driver's share:
// allocation override, line override, expedition default, driver default,
// fleet registry.
func (s WorkItemSynchronizer) resolveVehicle(
	ctx context.Context,
	exp *expedition.Expedition,
	line *expedition.Line,
	allocation *expedition.Allocation,
) (*kernel.UUID, error) {
	chain := expedition.VehicleChain{
		Allocation:        allocation.VehicleID(),
		Line:              line.VehicleID(),
		ExpeditionDefault: exp.DefaultVehicleID(),
	}

	if chain.Resolve() != nil {
		return chain.Resolve(), nil
	}

	driver, err := s.drivers.Get(ctx, allocation.DriverID())
	if err != nil {
		return nil, err
	}
	chain.DriverDefault = driver.DefaultVehicleID

	if chain.Resolve() == nil {
		fleetVehicle, err := s.fleet.VehicleOfDriver(ctx, allocation.DriverID())
		if err != nil {
			return nil, err
		}
		chain.Fleet = fleetVehicle
	}

	return chain.Resolve(), nil
}

// deactivateLeftovers retires active items whose driver left the line.
func (s WorkItemSynchronizer) deactivateLeftovers(
	ctx context.Context,
	items ports.WorkItems,
	line *expedition.Line,
) error {
	existing, err := items.GetByDelivery(ctx, line.DeliveryOrderID(), false)
	if err != nil {
		return err
	}

	for _, item := range existing {
		if line.HasParticipant(item.DriverID) {
			continue
		}
		if err := items.Deactivate(ctx, item.DeliveryOrderID, item.DriverID); err != nil {
			return err
		}
	}
	return nil
}

// buildWorkItemDescription renders the driver-facing task body: who to
// deliver to, where, what to carry, and whether the driver is the main or a
// helping driver.
func buildWorkItemDescription(
	deliveryOrder ports.DeliveryOrder,
	allocation *expedition.Allocation,
	isPrimary bool,
) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Delivery %s\n", deliveryOrder.Reference)
	if deliveryOrder.PartnerName != "" {
		fmt.Fprintf(&b, "Customer: %s\n", deliveryOrder.PartnerName)
	}
	if deliveryOrder.Street != "" || deliveryOrder.City != "" {
		fmt.Fprintf(&b, "Address: %s\n", strings.TrimSpace(deliveryOrder.Street+" "+deliveryOrder.City))
	}
	if deliveryOrder.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", deliveryOrder.Phone)
	}
	if !deliveryOrder.TimeWindow.IsZero() {
		fmt.Fprintf(&b, "Window: %s\n", deliveryOrder.TimeWindow)
	}
	if deliveryOrder.Region != "" {
		fmt.Fprintf(&b, "Region: %s\n", deliveryOrder.Region)
	}
	if deliveryOrder.Priority != "" {
		fmt.Fprintf(&b, "Priority: %s\n", deliveryOrder.Priority)
	}
	fmt.Fprintf(&b, "Load: %.0f boxes, %.1f kg\n", allocation.Boxes(), allocation.Weight())
	if isPrimary {
		b.WriteString("Role: main driver\n")
	} else {
		b.WriteString("Role: helping driver\n")
	}
	if deliveryOrder.Notes != "" {
		fmt.Fprintf(&b, "Notes: %s\n", deliveryOrder.Notes)
	}

	return b.String()
}
