package commands

import (
	"errors"

	"expedition/internal/core/domain/model/kernel"
	"expedition/internal/pkg/errs"
	"expedition/internal/pkg/guard"
)

var ErrUpdateAllocationCommandIsNotConstructed = errors.New(
	"UpdateAllocationCommand must be created via NewUpdateAllocationCommand constructor",
)

// UpdateAllocationCommand fills one driver's share of a stop: the boxes and
// weight the driver carries, and optionally a vehicle override for that
// share alone.
type UpdateAllocationCommand struct { //nolint:recvcheck //using for validation
	expeditionID kernel.UUID
	lineID       kernel.UUID
	driverID     kernel.UUID
	boxes        float64
	weight       float64
	vehicleID    *kernel.UUID
	actorID      kernel.UUID

	guard guard.ConstructorGuard
}

// NewUpdateAllocationCommand creates a command to fill a driver's share.
// Quantities must be non-negative.
func NewUpdateAllocationCommand(
	expeditionID kernel.UUID,
	lineID kernel.UUID,
	driverID kernel.UUID,
	boxes float64,
	weight float64,
	vehicleID *kernel.UUID,
	actorID kernel.UUID,
) (UpdateAllocationCommand, error) {
	command := UpdateAllocationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setExpeditionID(expeditionID),
		command.setLineID(lineID),
		command.setDriverID(driverID),
		command.setQuantities(boxes, weight),
		command.setVehicleID(vehicleID),
		command.setActorID(actorID),
	); err != nil {
		return UpdateAllocationCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateAllocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateAllocationCommandIsNotConstructed)
}

// ExpeditionID returns the expedition carrying the stop.
func (c UpdateAllocationCommand) ExpeditionID() kernel.UUID {
	return c.expeditionID
}

// LineID returns the stop whose share is edited.
func (c UpdateAllocationCommand) LineID() kernel.UUID {
	return c.lineID
}

// DriverID returns the driver whose share is edited.
func (c UpdateAllocationCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Boxes returns the boxes the driver will carry.
func (c UpdateAllocationCommand) Boxes() float64 {
	return c.boxes
}

// Weight returns the weight the driver will carry.
func (c UpdateAllocationCommand) Weight() float64 {
	return c.weight
}

// VehicleID returns the share's vehicle override, or nil.
func (c UpdateAllocationCommand) VehicleID() *kernel.UUID {
	return c.vehicleID
}

// ActorID returns who requested the change.
func (c UpdateAllocationCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *UpdateAllocationCommand) setExpeditionID(expeditionID kernel.UUID) error {
	if err := expeditionID.Validate(); err != nil {
		return err
	}

	c.expeditionID = expeditionID
	return nil
}

func (c *UpdateAllocationCommand) setLineID(lineID kernel.UUID) error {
	if err := lineID.Validate(); err != nil {
		return err
	}

	c.lineID = lineID
	return nil
}

func (c *UpdateAllocationCommand) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	c.driverID = driverID
	return nil
}

func (c *UpdateAllocationCommand) setQuantities(boxes, weight float64) error {
	if boxes < 0 {
		return errs.NewValueIsOutOfRangeError("boxes", boxes, 0, nil)
	}
	if weight < 0 {
		return errs.NewValueIsOutOfRangeError("weight", weight, 0, nil)
	}

	c.boxes = boxes
	c.weight = weight
	return nil
}

func (c *UpdateAllocationCommand) setVehicleID(vehicleID *kernel.UUID) error {
	if vehicleID != nil {
		if err := vehicleID.Validate(); err != nil {
			return err
		}
	}

	c.vehicleID = vehicleID
	return nil
}

func (c *UpdateAllocationCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
