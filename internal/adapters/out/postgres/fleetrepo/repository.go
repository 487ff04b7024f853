package fleetrepo

import (
	"context"
	"errors"

	"expedition/internal/core/domain/model/kernel"
	"expedition/internal/core/ports"
	"expedition/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormDrivers implements ports.Drivers using GORM.
type GormDrivers struct {
	db *gorm.DB
}

// NewGormDrivers creates a new GORM driver gateway.
func NewGormDrivers(db *gorm.DB) *GormDrivers {
	return &GormDrivers{db: db}
}

// Get retrieves a driver by ID.
func (r *GormDrivers) Get(ctx context.Context, id kernel.UUID) (ports.Driver, error) {
	if err := id.Validate(); err != nil {
		return ports.Driver{}, err
	}

	var dto DriverDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Driver{}, errs.NewObjectNotFoundError("driver", id.String())
		}
		return ports.Driver{}, err
	}

	return toDriver(dto)
}

// GormFleet implements ports.Fleet using GORM.
type GormFleet struct {
	db *gorm.DB
}

// NewGormFleet creates a new GORM fleet gateway.
func NewGormFleet(db *gorm.DB) *GormFleet {
	return &GormFleet{db: db}
}

// VehicleOfDriver returns the fleet vehicle registered to the driver, or
// nil when the fleet knows none. The fleet is the last level of the vehicle
// fallback chain, so an empty answer is a normal outcome.
func (r *GormFleet) VehicleOfDriver(ctx context.Context, driverID kernel.UUID) (*kernel.UUID, error) {
	if err := driverID.Validate(); err != nil {
		return nil, err
	}

	var dto VehicleDTO
	err := r.db.WithContext(ctx).
		Order("name").
		First(&dto, "driver_id = ?", driverID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	vehicleID, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return &vehicleID, nil
}

// GormCapabilities implements ports.Capabilities using GORM.
type GormCapabilities struct {
	db *gorm.DB
}

// NewGormCapabilities creates a new GORM capability gateway.
func NewGormCapabilities(db *gorm.DB) *GormCapabilities {
	return &GormCapabilities{db: db}
}

// IsDispatcher reports whether the actor holds the dispatcher role.
// Unknown actors are not dispatchers.
func (r *GormCapabilities) IsDispatcher(ctx context.Context, actorID kernel.UUID) (bool, error) {
	if err := actorID.Validate(); err != nil {
		return false, err
	}

	var dto DriverDTO
	err := r.db.WithContext(ctx).First(&dto, "id = ?", actorID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	return dto.IsDispatcher, nil
}
