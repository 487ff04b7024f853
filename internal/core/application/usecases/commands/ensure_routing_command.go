package commands

import (
	"errors"

	"expedition/internal/core/domain/model/kernel"
	"expedition/internal/pkg/guard"
)

var ErrEnsureRoutingCommandIsNotConstructed = errors.New(
	"EnsureRoutingCommand must be created via NewEnsureRoutingCommand constructor",
)

// EnsureRoutingCommand requests that a delivery order is routed for a driver
// on a date: the driver's expedition for that date exists, carries a line
// for the delivery order, and the driver's work item mirror is in place.
//
// The operation is idempotent. Repeating it for an already routed delivery
// changes nothing and creates no duplicates, so callers may fire it on every
// driver assignment without checking state first.
type EnsureRoutingCommand struct { //nolint:recvcheck //using for validation
	companyID       kernel.UUID
	date            kernel.Date
	driverID        kernel.UUID
	deliveryOrderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewEnsureRoutingCommand creates a command to route a delivery order.
// All identifiers must be valid and the date must be set.
func NewEnsureRoutingCommand(
	companyID kernel.UUID,
	date kernel.Date,
	driverID kernel.UUID,
	deliveryOrderID kernel.UUID,
) (EnsureRoutingCommand, error) {
	command := EnsureRoutingCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setCompanyID(companyID),
		command.setDate(date),
		command.setDriverID(driverID),
		command.setDeliveryOrderID(deliveryOrderID),
	); err != nil {
		return EnsureRoutingCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c EnsureRoutingCommand) Validate() error {
	return c.guard.Validate(ErrEnsureRoutingCommandIsNotConstructed)
}

// CompanyID returns the operating company.
func (c EnsureRoutingCommand) CompanyID() kernel.UUID {
	return c.companyID
}

// Date returns the dispatch date.
func (c EnsureRoutingCommand) Date() kernel.Date {
	return c.date
}

// DriverID returns the driver the delivery is assigned to.
func (c EnsureRoutingCommand) DriverID() kernel.UUID {
	return c.driverID
}

// DeliveryOrderID returns the delivery order to route.
func (c EnsureRoutingCommand) DeliveryOrderID() kernel.UUID {
	return c.deliveryOrderID
}

func (c *EnsureRoutingCommand) setCompanyID(companyID kernel.UUID) error {
	if err := companyID.Validate(); err != nil {
		return err
	}

	c.companyID = companyID
	return nil
}

func (c *EnsureRoutingCommand) setDate(date kernel.Date) error {
	if err := date.Validate(); err != nil {
		return err
	}

	c.date = date
	return nil
}

func (c *EnsureRoutingCommand) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	c.driverID = driverID
	return nil
}

func (c *EnsureRoutingCommand) setDeliveryOrderID(deliveryOrderID kernel.UUID) error {
	if err := deliveryOrderID.Validate(); err != nil {
		return err
	}

	c.deliveryOrderID = deliveryOrderID
	return nil
}
