// Package fleetrepo provides GORM adapters for driver master data and the
// vehicle registry. It backs the last two levels of the vehicle fallback
// chain and the dispatcher capability check.
package fleetrepo

import (
	"expedition/internal/core/domain/model/kernel"
	"expedition/internal/core/ports"

	"github.com/google/uuid"
)

// DriverDTO represents the database structure of a driver.
type DriverDTO struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name             string     `gorm:"type:varchar(255);not null"`
	DefaultVehicleID *uuid.UUID `gorm:"type:uuid"`
	IsDispatcher     bool       `gorm:"not null;default:false"`
}

// TableName specifies the database table name for drivers.
func (DriverDTO) TableName() string {
	return "drivers"
}

// VehicleDTO represents the database structure of a fleet vehicle. A vehicle
// may be registered to the driver who usually operates it.
type VehicleDTO struct {
	ID       uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name     string     `gorm:"type:varchar(255);not null"`
	Plate    string     `gorm:"type:varchar(32)"`
	DriverID *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName specifies the database table name for fleet vehicles.
func (VehicleDTO) TableName() string {
	return "vehicles"
}

func toDriver(dto DriverDTO) (ports.Driver, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.Driver{}, err
	}

	var defaultVehicleID *kernel.UUID
	if dto.DefaultVehicleID != nil {
		v, vErr := kernel.UUIDFromBytes((*dto.DefaultVehicleID)[:])
		if vErr != nil {
			return ports.Driver{}, vErr
		}
		defaultVehicleID = &v
	}

	return ports.Driver{
		ID:               id,
		Name:             dto.Name,
		DefaultVehicleID: defaultVehicleID,
	}, nil
}
