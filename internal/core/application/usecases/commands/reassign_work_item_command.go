package commands

import (
	"errors"

	"expedition/internal/core/domain/model/kernel"
	"expedition/internal/pkg/guard"
)

var ErrReassignWorkItemCommandIsNotConstructed = errors.New(
	"ReassignWorkItemCommand must be created via NewReassignWorkItemCommand constructor",
)

// ReassignWorkItemCommand moves one driver's task for a delivery to another
// driver. Fired when a work item is reassigned in the external work
// management system; the routing follows the item, not the other way round.
type ReassignWorkItemCommand struct { //nolint:recvcheck //using for validation
	deliveryOrderID kernel.UUID
	oldDriverID     kernel.UUID
	newDriverID     kernel.UUID
	actorID         kernel.UUID

	guard guard.ConstructorGuard
}

// NewReassignWorkItemCommand creates a command to follow a task reassignment.
func NewReassignWorkItemCommand(
	deliveryOrderID kernel.UUID,
	oldDriverID kernel.UUID,
	newDriverID kernel.UUID,
	actorID kernel.UUID,
) (ReassignWorkItemCommand, error) {
	command := ReassignWorkItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setDeliveryOrderID(deliveryOrderID),
		command.setOldDriverID(oldDriverID),
		command.setNewDriverID(newDriverID),
		command.setActorID(actorID),
	); err != nil {
		return ReassignWorkItemCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c ReassignWorkItemCommand) Validate() error {
	return c.guard.Validate(ErrReassignWorkItemCommandIsNotConstructed)
}

// DeliveryOrderID returns the delivery the task belongs to.
func (c ReassignWorkItemCommand) DeliveryOrderID() kernel.UUID {
	return c.deliveryOrderID
}

// OldDriverID returns the driver the task is taken from.
func (c ReassignWorkItemCommand) OldDriverID() kernel.UUID {
	return c.oldDriverID
}

// NewDriverID returns the driver the task goes to.
func (c ReassignWorkItemCommand) NewDriverID() kernel.UUID {
	return c.newDriverID
}

// ActorID returns who reassigned the task.
func (c ReassignWorkItemCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *ReassignWorkItemCommand) setDeliveryOrderID(deliveryOrderID kernel.UUID) error {
	if err := deliveryOrderID.Validate(); err != nil {
		return err
	}

	c.deliveryOrderID = deliveryOrderID
	return nil
}

func (c *ReassignWorkItemCommand) setOldDriverID(oldDriverID kernel.UUID) error {
	if err := oldDriverID.Validate(); err != nil {
		return err
	}

	c.oldDriverID = oldDriverID
	return nil
}

func (c *ReassignWorkItemCommand) setNewDriverID(newDriverID kernel.UUID) error {
	if err := newDriverID.Validate(); err != nil {
		return err
	}

	c.newDriverID = newDriverID
	return nil
}

func (c *ReassignWorkItemCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
