// Package workitemrepo provides the GORM adapter for the mirrored driver
// tasks in the work management system. The (delivery_order_id, driver_id)
// unique index makes re-syncing idempotent: a sync updates rows in place
// instead of duplicating them.
package workitemrepo

import (
	"time"

	"expedition/internal/core/domain/model/kernel"
	"expedition/internal/core/ports"

	"github.com/google/uuid"
)

// WorkItemDTO represents the database structure of a mirrored driver task.
type WorkItemDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	DeliveryOrderID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uix_work_items_delivery_driver"`
	DriverID        uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uix_work_items_delivery_driver"`
	VehicleID       *uuid.UUID `gorm:"type:uuid"`
	Title           string     `gorm:"type:varchar(255);not null"`
	Description     string     `gorm:"type:text"`
	PlannedStart    time.Time  `gorm:"not null"`
	PlannedEnd      time.Time  `gorm:"not null"`
	Sequence        int        `gorm:"type:int;not null"`
	Boxes           float64    `gorm:"type:numeric;not null;default:0"`
	Weight          float64    `gorm:"type:numeric;not null;default:0"`
	Primary         bool       `gorm:"column:is_primary;not null;default:false"`
	Active          bool       `gorm:"not null;default:true"`
}

// TableName specifies the database table name for work item mirrors.
func (WorkItemDTO) TableName() string {
	return "work_items"
}

func fromPort(item ports.WorkItem) WorkItemDTO {
	var vehicleID *uuid.UUID
	if item.VehicleID != nil {
		raw := item.VehicleID.Bytes()
		vehicleID = &raw
	}

	return WorkItemDTO{
		ID:              item.ID.Bytes(),
		DeliveryOrderID: item.DeliveryOrderID.Bytes(),
		DriverID:        item.DriverID.Bytes(),
		VehicleID:       vehicleID,
		Title:           item.Title,
		Description:     item.Description,
		PlannedStart:    item.PlannedStart,
		PlannedEnd:      item.PlannedEnd,
		Sequence:        item.Sequence,
		Boxes:           item.Boxes,
		Weight:          item.Weight,
		Primary:         item.Primary,
		Active:          item.Active,
	}
}

func toPort(dto WorkItemDTO) (ports.WorkItem, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.WorkItem{}, err
	}

	deliveryOrderID, err := kernel.UUIDFromBytes(dto.DeliveryOrderID[:])
	if err != nil {
		return ports.WorkItem{}, err
	}

	driverID, err := kernel.UUIDFromBytes(dto.DriverID[:])
	if err != nil {
		return ports.WorkItem{}, err
	}

	var vehicleID *kernel.UUID
	if dto.VehicleID != nil {
		v, vErr := kernel.UUIDFromBytes((*dto.VehicleID)[:])
		if vErr != nil {
			return ports.WorkItem{}, vErr
		}
		vehicleID = &v
	}

	return ports.WorkItem{
		ID:              id,
		DeliveryOrderID: deliveryOrderID,
		DriverID:        driverID,
		VehicleID:       vehicleID,
		Title:           dto.Title,
		Description:     dto.Description,
		PlannedStart:    dto.PlannedStart,
		PlannedEnd:      dto.PlannedEnd,
		Sequence:        dto.Sequence,
		Boxes:           dto.Boxes,
		Weight:          dto.Weight,
		Primary:         dto.Primary,
		Active:          dto.Active,
	}, nil
}
