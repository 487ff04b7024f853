package documentrepo

import (
	"context"
	"errors"
	"fmt"

	"expedition/internal/core/domain/model/kernel"
	"expedition/internal/core/ports"
	"expedition/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormDeliveryOrders implements ports.DeliveryOrders using GORM.
type GormDeliveryOrders struct {
	db *gorm.DB
}

// NewGormDeliveryOrders creates a new GORM delivery order gateway.
func NewGormDeliveryOrders(db *gorm.DB) *GormDeliveryOrders {
	return &GormDeliveryOrders{db: db}
}

// Get retrieves a delivery order by ID.
func (r *GormDeliveryOrders) Get(ctx context.Context, id kernel.UUID) (ports.DeliveryOrder, error) {
	if err := id.Validate(); err != nil {
		return ports.DeliveryOrder{}, err
	}

	var dto DeliveryOrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.DeliveryOrder{}, errs.NewObjectNotFoundError("delivery order", id.String())
		}
		return ports.DeliveryOrder{}, err
	}

	return toDeliveryOrder(dto)
}

// SetDriver mirrors the responsible driver onto the delivery order. Done and
// cancelled delivery orders refuse the change so the routing cannot silently
// diverge from the closed document.
func (r *GormDeliveryOrders) SetDriver(ctx context.Context, id kernel.UUID, driverID kernel.UUID) error {
	if err := errors.Join(id.Validate(), driverID.Validate()); err != nil {
		return err
	}

	order, err := r.Get(ctx, id)
	if err != nil {
		return err
	}

	if order.State.IsFinal() {
		return errs.NewValueIsInvalidErrorWithCause("delivery order state",
			fmt.Errorf("delivery order %s is %s and no longer accepts driver changes",
				order.Reference, order.State))
	}

	raw := driverID.Bytes()
	return r.db.WithContext(ctx).
		Model(&DeliveryOrderDTO{}).
		Where("id = ?", id.Bytes()).
		Update("driver_id", &raw).Error
}

// SetVehicle mirrors the resolved vehicle onto the delivery order.
func (r *GormDeliveryOrders) SetVehicle(ctx context.Context, id kernel.UUID, vehicleID *kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	var raw any
	if vehicleID != nil {
		raw = vehicleID.Bytes()
	}

	result := r.db.WithContext(ctx).
		Model(&DeliveryOrderDTO{}).
		Where("id = ?", id.Bytes()).
		Update("vehicle_id", raw)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("delivery order", id.String())
	}

	return nil
}

// GormSalesOrders implements ports.SalesOrders using GORM.
type GormSalesOrders struct {
	db *gorm.DB
}

// NewGormSalesOrders creates a new GORM sales order gateway.
func NewGormSalesOrders(db *gorm.DB) *GormSalesOrders {
	return &GormSalesOrders{db: db}
}

// Get retrieves a sales order by ID.
func (r *GormSalesOrders) Get(ctx context.Context, id kernel.UUID) (ports.SalesOrder, error) {
	if err := id.Validate(); err != nil {
		return ports.SalesOrder{}, err
	}

	var dto SalesOrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.SalesOrder{}, errs.NewObjectNotFoundError("sales order", id.String())
		}
		return ports.SalesOrder{}, err
	}

	return toSalesOrder(dto)
}

// SetDriver mirrors the responsible driver onto the sales order.
func (r *GormSalesOrders) SetDriver(ctx context.Context, id kernel.UUID, driverID kernel.UUID) error {
	if err := errors.Join(id.Validate(), driverID.Validate()); err != nil {
		return err
	}

	raw := driverID.Bytes()
	result := r.db.WithContext(ctx).
		Model(&SalesOrderDTO{}).
		Where("id = ?", id.Bytes()).
		Update("driver_id", &raw)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("sales order", id.String())
	}

	return nil
}

// GormInvoices implements ports.Invoices using GORM.
type GormInvoices struct {
	db *gorm.DB
}

// NewGormInvoices creates a new GORM invoice gateway.
func NewGormInvoices(db *gorm.DB) *GormInvoices {
	return &GormInvoices{db: db}
}

// SetDriverOnDrafts mirrors the driver onto all draft invoices of the sales
// order. Posted invoices keep the driver they were issued with; a sales
// order without draft invoices is not an error.
func (r *GormInvoices) SetDriverOnDrafts(ctx context.Context, salesOrderID kernel.UUID, driverID kernel.UUID) error {
	if err := errors.Join(salesOrderID.Validate(), driverID.Validate()); err != nil {
		return err
	}

	raw := driverID.Bytes()
	return r.db.WithContext(ctx).
		Model(&InvoiceDTO{}).
		Where("sales_order_id = ? AND state = ?", salesOrderID.Bytes(), InvoiceDraft).
		Update("driver_id", &raw).Error
}
