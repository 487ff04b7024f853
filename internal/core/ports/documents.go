package ports

import (
	"context"

	"expedition/internal/core/domain/model/kernel"
)

// DeliveryOrderState is the lifecycle state of an external delivery order
// as seen by the dispatch core.
type DeliveryOrderState string

const (
	DeliveryOrderDraft     DeliveryOrderState = "draft"
	DeliveryOrderConfirmed DeliveryOrderState = "confirmed"
	DeliveryOrderDone      DeliveryOrderState = "done"
	DeliveryOrderCancelled DeliveryOrderState = "cancelled"
)

// IsFinal reports whether the delivery order can still be touched.
// Driver mirroring into done or cancelled delivery orders must fail loudly
// rather than silently desynchronize.
func (s DeliveryOrderState) IsFinal() bool {
	return s == DeliveryOrderDone || s == DeliveryOrderCancelled
}

// DeliveryOrder is the read model of an external delivery order. The
// dispatch core never owns these documents; it reads them for routing and
// mirrors driver assignments back.
type DeliveryOrder struct {
	ID           kernel.UUID
	Reference    string
	State        DeliveryOrderState
	DriverID     *kernel.UUID
	VehicleID    *kernel.UUID
	SalesOrderID *kernel.UUID
	CompanyID    kernel.UUID
	PartnerName  string
	Street       string
	City         string
	Phone        string
	TimeWindow   kernel.TimeWindow
	Boxes        float64
	Weight       float64
	Region       string
	Priority     string
	Notes        string
}

// DeliveryOrders is the outbound contract for the delivery order documents
// living in the fulfillment system.
type DeliveryOrders interface {
	// Get retrieves a delivery order by its identifier.
	Get(ctx context.Context, id kernel.UUID) (DeliveryOrder, error)

	// SetDriver mirrors the responsible driver onto the delivery order.
	// Fails when the delivery order is in a final state.
	SetDriver(ctx context.Context, id kernel.UUID, driverID kernel.UUID) error

	// SetVehicle mirrors the resolved vehicle onto the delivery order.
	SetVehicle(ctx context.Context, id kernel.UUID, vehicleID *kernel.UUID) error
}

// AppliedMode is the logistics level a sales order opted into. Routing is
// materialized only for orders at full logistics; the other modes carry a
// driver or a date without ever producing expeditions.
type AppliedMode string

const (
	AppliedModeDisabled AppliedMode = "disabled"
	AppliedModeDateOnly AppliedMode = "date_only"
	AppliedModeFull     AppliedMode = "full_logistics"
)

// SalesOrder is the read model of a sales order behind a delivery order.
type SalesOrder struct {
	ID          kernel.UUID
	Reference   string
	DriverID    *kernel.UUID
	Date        kernel.Date
	AppliedMode AppliedMode
}

// SalesOrders is the outbound contract for the sales orders behind delivery
// orders. Driver changes propagate there so commissions follow the driver.
type SalesOrders interface {
	// Get retrieves a sales order by its identifier.
	Get(ctx context.Context, id kernel.UUID) (SalesOrder, error)

	// SetDriver mirrors the responsible driver onto the sales order.
	SetDriver(ctx context.Context, id kernel.UUID, driverID kernel.UUID) error
}

// Invoices is the outbound contract for invoicing. Only draft invoices are
// touched; posted ones keep the driver they were issued with.
type Invoices interface {
	// SetDriverOnDrafts mirrors the driver onto all draft invoices of the
	// given sales order.
	SetDriverOnDrafts(ctx context.Context, salesOrderID kernel.UUID, driverID kernel.UUID) error
}
