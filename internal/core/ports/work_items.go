package ports

import (
	"context"
	"time"

	"expedition/internal/core/domain/model/kernel"
)

// WorkItem is one driver's task for one delivery order, mirrored into the
// external work management system. The (delivery order, driver) pair is the
// upsert key: re-syncing never duplicates items, it updates them in place.
//
// Primary marks the main driver's item; helper drivers get non-primary
// items. Items of drivers no longer involved are deactivated, not deleted,
// so their history survives.
type WorkItem struct {
	ID              kernel.UUID
	DeliveryOrderID kernel.UUID
	DriverID        kernel.UUID
	VehicleID       *kernel.UUID
	Title           string
	Description     string
	PlannedStart    time.Time
	PlannedEnd      time.Time
	Sequence        int
	Boxes           float64
	Weight          float64
	Primary         bool
	Active          bool
}

// WorkItems is the outbound contract for the mirrored driver tasks.
type WorkItems interface {
	// GetByDelivery retrieves the work items of a delivery order.
	// Inactive items are included only when requested; reactivation on
	// re-sync needs to see them.
	GetByDelivery(ctx context.Context, deliveryOrderID kernel.UUID, includeInactive bool) ([]WorkItem, error)

	// Upsert creates or updates the item keyed by (delivery order, driver).
	Upsert(ctx context.Context, item WorkItem) error

	// Deactivate retires the item of a driver who left the delivery.
	// Deactivating a missing item is not an error.
	Deactivate(ctx context.Context, deliveryOrderID kernel.UUID, driverID kernel.UUID) error
}
