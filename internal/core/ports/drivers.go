package ports

import (
	"context"

	"expedition/internal/core/domain/model/kernel"
)

// Driver is the read model of a driver as known to the dispatch core.
type Driver struct {
	ID               kernel.UUID
	Name             string
	DefaultVehicleID *kernel.UUID
}

// Drivers is the outbound contract for driver master data.
type Drivers interface {
	// Get retrieves a driver by their identifier.
	Get(ctx context.Context, id kernel.UUID) (Driver, error)
}

// Fleet is the outbound contract for the vehicle registry. It is the last
// level of the vehicle fallback chain.
type Fleet interface {
	// VehicleOfDriver returns the fleet vehicle registered to the driver,
	// or nil when the fleet knows none.
	VehicleOfDriver(ctx context.Context, driverID kernel.UUID) (*kernel.UUID, error)
}

// Capabilities answers authorization questions about actors. Dispatchers
// may edit locked expeditions; everyone else may not.
type Capabilities interface {
	// IsDispatcher reports whether the actor holds the dispatcher role.
	IsDispatcher(ctx context.Context, actorID kernel.UUID) (bool, error)
}
