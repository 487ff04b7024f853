package commands

import (
	"errors"

	"expedition/internal/core/domain/model/kernel"
	"expedition/internal/pkg/guard"
)

var ErrChangeMainDriverCommandIsNotConstructed = errors.New(
	"ChangeMainDriverCommand must be created via NewChangeMainDriverCommand constructor",
)

// ChangeMainDriverCommand hands a whole expedition over to another driver.
// Every stop, every external document mirror and every work item follows the
// new driver in one transaction.
type ChangeMainDriverCommand struct { //nolint:recvcheck //using for validation
	expeditionID kernel.UUID
	newDriverID  kernel.UUID
	vehicleID    *kernel.UUID
	actorID      kernel.UUID

	guard guard.ConstructorGuard
}

// NewChangeMainDriverCommand creates a command to hand an expedition over.
// The vehicle is optional; without it the new driver's own vehicle applies.
func NewChangeMainDriverCommand(
	expeditionID kernel.UUID,
	newDriverID kernel.UUID,
	vehicleID *kernel.UUID,
	actorID kernel.UUID,
) (ChangeMainDriverCommand, error) {
	command := ChangeMainDriverCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setExpeditionID(expeditionID),
		command.setNewDriverID(newDriverID),
		command.setVehicleID(vehicleID),
		command.setActorID(actorID),
	); err != nil {
		return ChangeMainDriverCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeMainDriverCommand) Validate() error {
	return c.guard.Validate(ErrChangeMainDriverCommandIsNotConstructed)
}

// ExpeditionID returns the expedition to hand over.
func (c ChangeMainDriverCommand) ExpeditionID() kernel.UUID {
	return c.expeditionID
}

// NewDriverID returns the driver taking over the route.
func (c ChangeMainDriverCommand) NewDriverID() kernel.UUID {
	return c.newDriverID
}

// VehicleID returns the proposed default vehicle, or nil.
func (c ChangeMainDriverCommand) VehicleID() *kernel.UUID {
	return c.vehicleID
}

// ActorID returns who requested the handover.
func (c ChangeMainDriverCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *ChangeMainDriverCommand) setExpeditionID(expeditionID kernel.UUID) error {
	if err := expeditionID.Validate(); err != nil {
		return err
	}

	c.expeditionID = expeditionID
	return nil
}

func (c *ChangeMainDriverCommand) setNewDriverID(newDriverID kernel.UUID) error {
	if err := newDriverID.Validate(); err != nil {
		return err
	}

	c.newDriverID = newDriverID
	return nil
}

func (c *ChangeMainDriverCommand) setVehicleID(vehicleID *kernel.UUID) error {
	if vehicleID != nil {
		if err := vehicleID.Validate(); err != nil {
			return err
		}
	}

	c.vehicleID = vehicleID
	return nil
}

func (c *ChangeMainDriverCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
