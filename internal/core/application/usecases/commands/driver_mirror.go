package commands

import (
	"context"

	"expedition/internal/core/domain/model/kernel"
	"expedition/internal/core/ports"
)

// mirrorDriverToDocuments propagates a main driver change to the external
// document graph of one delivery order: the delivery order itself, its sales
// order, and the draft invoices behind it. Posted invoices are never
// touched.
//
// The delivery order mirror fails loudly when the document is already in a
// final state; the caller's transaction then rolls the whole handover back.
func mirrorDriverToDocuments(
	ctx context.Context,
	docs ports.DeliveryOrders,
	sales ports.SalesOrders,
	invoices ports.Invoices,
	deliveryOrderID kernel.UUID,
	driverID kernel.UUID,
) error {
	deliveryOrder, err := docs.Get(ctx, deliveryOrderID)
	if err != nil {
		return err
	}

	if err := docs.SetDriver(ctx, deliveryOrderID, driverID); err != nil {
		return err
	}

	if deliveryOrder.SalesOrderID == nil {
		return nil
	}

	if err := sales.SetDriver(ctx, *deliveryOrder.SalesOrderID, driverID); err != nil {
		return err
	}

	return invoices.SetDriverOnDrafts(ctx, *deliveryOrder.SalesOrderID, driverID)
}
