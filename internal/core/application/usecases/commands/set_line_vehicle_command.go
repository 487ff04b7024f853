package commands

import (
	"errors"

	"expedition/internal/core/domain/model/kernel"
	"expedition/internal/pkg/guard"
)

var ErrSetLineVehicleCommandIsNotConstructed = errors.New(
	"SetLineVehicleCommand must be created via NewSetLineVehicleCommand constructor",
)

// SetLineVehicleCommand sets or clears the vehicle override of one stop.
// Clearing lets the stop inherit the expedition's default vehicle again.
type SetLineVehicleCommand struct { //nolint:recvcheck //using for validation
	expeditionID kernel.UUID
	lineID       kernel.UUID
	vehicleID    *kernel.UUID
	actorID      kernel.UUID

	guard guard.ConstructorGuard
}

// NewSetLineVehicleCommand creates a command to change a stop's vehicle.
func NewSetLineVehicleCommand(
	expeditionID kernel.UUID,
	lineID kernel.UUID,
	vehicleID *kernel.UUID,
	actorID kernel.UUID,
) (SetLineVehicleCommand, error) {
	command := SetLineVehicleCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setExpeditionID(expeditionID),
		command.setLineID(lineID),
		command.setVehicleID(vehicleID),
		command.setActorID(actorID),
	); err != nil {
		return SetLineVehicleCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c SetLineVehicleCommand) Validate() error {
	return c.guard.Validate(ErrSetLineVehicleCommandIsNotConstructed)
}

// ExpeditionID returns the expedition carrying the stop.
func (c SetLineVehicleCommand) ExpeditionID() kernel.UUID {
	return c.expeditionID
}

// LineID returns the stop to change.
func (c SetLineVehicleCommand) LineID() kernel.UUID {
	return c.lineID
}

// VehicleID returns the new override, or nil to clear it.
func (c SetLineVehicleCommand) VehicleID() *kernel.UUID {
	return c.vehicleID
}

// ActorID returns who requested the change.
func (c SetLineVehicleCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *SetLineVehicleCommand) setExpeditionID(expeditionID kernel.UUID) error {
	if err := expeditionID.Validate(); err != nil {
		return err
	}

	c.expeditionID = expeditionID
	return nil
}

func (c *SetLineVehicleCommand) setLineID(lineID kernel.UUID) error {
	if err := lineID.Validate(); err != nil {
		return err
	}

	c.lineID = lineID
	return nil
}

func (c *SetLineVehicleCommand) setVehicleID(vehicleID *kernel.UUID) error {
	if vehicleID != nil {
		if err := vehicleID.Validate(); err != nil {
			return err
		}
	}

	c.vehicleID = vehicleID
	return nil
}

func (c *SetLineVehicleCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
