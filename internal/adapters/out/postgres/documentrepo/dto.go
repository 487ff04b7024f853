// Package documentrepo provides GORM adapters for the external fulfillment
// documents: delivery orders, their sales orders and the invoices behind
// them. The dispatch core does not own these documents; the tables here are
// the transactional mirror it reads for routing and writes driver
// assignments into.
package documentrepo

import (
	"time"

	"expedition/internal/core/domain/model/kernel"
	"expedition/internal/core/ports"

	"github.com/google/uuid"
)

// DeliveryOrderDTO represents the database structure of a mirrored delivery
// order. Window offsets are stored as seconds from midnight; a row with
// both offsets zero and window_set false has no delivery window.
type DeliveryOrderDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Reference     string     `gorm:"type:varchar(64);not null"`
	State         string     `gorm:"type:varchar(16);not null"`
	DriverID      *uuid.UUID `gorm:"type:uuid;index"`
	VehicleID     *uuid.UUID `gorm:"type:uuid"`
	SalesOrderID  *uuid.UUID `gorm:"type:uuid;index"`
	CompanyID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	PartnerName   string     `gorm:"type:varchar(255)"`
	Street        string     `gorm:"type:varchar(255)"`
	City          string     `gorm:"type:varchar(255)"`
	Phone         string     `gorm:"type:varchar(64)"`
	WindowFrom    int64      `gorm:"type:bigint;not null;default:0"`
	WindowTo      int64      `gorm:"type:bigint;not null;default:0"`
	WindowSet     bool       `gorm:"not null;default:false"`
	Boxes         float64    `gorm:"type:numeric;not null;default:0"`
	Weight        float64    `gorm:"type:numeric;not null;default:0"`
	Region        string     `gorm:"type:varchar(64)"`
	Priority      string     `gorm:"type:varchar(16)"`
	Notes         string     `gorm:"type:text"`
}

// TableName specifies the database table name for delivery order mirrors.
func (DeliveryOrderDTO) TableName() string {
	return "delivery_orders"
}

// SalesOrderDTO represents the database structure of a mirrored sales order.
// AppliedMode records the logistics level the order opted into.
type SalesOrderDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Reference   string     `gorm:"type:varchar(64);not null"`
	DriverID    *uuid.UUID `gorm:"type:uuid"`
	Date        *time.Time `gorm:"type:date"`
	AppliedMode string     `gorm:"type:varchar(16);not null;default:'disabled'"`
}

// TableName specifies the database table name for sales order mirrors.
func (SalesOrderDTO) TableName() string {
	return "sales_orders"
}

// InvoiceDTO represents the database structure of a mirrored invoice.
// Only rows in the draft state accept driver updates.
type InvoiceDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	SalesOrderID uuid.UUID  `gorm:"type:uuid;not null;index"`
	State        string     `gorm:"type:varchar(16);not null"`
	DriverID     *uuid.UUID `gorm:"type:uuid"`
}

// TableName specifies the database table name for invoice mirrors.
func (InvoiceDTO) TableName() string {
	return "invoices"
}

// InvoiceDraft is the state of invoices that still accept driver changes.
const InvoiceDraft = "draft"

// toDeliveryOrder converts a delivery order DTO to the port read model.
func toDeliveryOrder(dto DeliveryOrderDTO) (ports.DeliveryOrder, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.DeliveryOrder{}, err
	}

	companyID, err := kernel.UUIDFromBytes(dto.CompanyID[:])
	if err != nil {
		return ports.DeliveryOrder{}, err
	}

	driverID, err := optionalUUID(dto.DriverID)
	if err != nil {
		return ports.DeliveryOrder{}, err
	}

	vehicleID, err := optionalUUID(dto.VehicleID)
	if err != nil {
		return ports.DeliveryOrder{}, err
	}

	salesOrderID, err := optionalUUID(dto.SalesOrderID)
	if err != nil {
		return ports.DeliveryOrder{}, err
	}

	var window kernel.TimeWindow
	if dto.WindowSet {
		window, err = kernel.NewTimeWindow(
			time.Duration(dto.WindowFrom)*time.Second,
			time.Duration(dto.WindowTo)*time.Second,
		)
		if err != nil {
			return ports.DeliveryOrder{}, err
		}
	}

	return ports.DeliveryOrder{
		ID:           id,
		Reference:    dto.Reference,
		State:        ports.DeliveryOrderState(dto.State),
		DriverID:     driverID,
		VehicleID:    vehicleID,
		SalesOrderID: salesOrderID,
		CompanyID:    companyID,
		PartnerName:  dto.PartnerName,
		Street:       dto.Street,
		City:         dto.City,
		Phone:        dto.Phone,
		TimeWindow:   window,
		Boxes:        dto.Boxes,
		Weight:       dto.Weight,
		Region:       dto.Region,
		Priority:     dto.Priority,
		Notes:        dto.Notes,
	}, nil
}

// toSalesOrder converts a sales order DTO to the port read model. Rows
// predating the logistics rollout carry no date and default to disabled.
func toSalesOrder(dto SalesOrderDTO) (ports.SalesOrder, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.SalesOrder{}, err
	}

	driverID, err := optionalUUID(dto.DriverID)
	if err != nil {
		return ports.SalesOrder{}, err
	}

	var date kernel.Date
	if dto.Date != nil {
		date, err = kernel.DateFromTime(*dto.Date)
		if err != nil {
			return ports.SalesOrder{}, err
		}
	}

	return ports.SalesOrder{
		ID:          id,
		Reference:   dto.Reference,
		DriverID:    driverID,
		Date:        date,
		AppliedMode: ports.AppliedMode(dto.AppliedMode),
	}, nil
}

func optionalUUID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes((*raw)[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
