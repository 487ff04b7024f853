package commands

import (
	"errors"

	"expedition/internal/core/domain/model/kernel"
	"expedition/internal/pkg/guard"
)

var ErrRemoveLineCommandIsNotConstructed = errors.New(
	"RemoveLineCommand must be created via NewRemoveLineCommand constructor",
)

// RemoveLineCommand drops a stop from an expedition. The work items of the
// stop are deactivated, not deleted, so their history survives.
type RemoveLineCommand struct { //nolint:recvcheck //using for validation
	expeditionID kernel.UUID
	lineID       kernel.UUID
	actorID      kernel.UUID

	guard guard.ConstructorGuard
}

// NewRemoveLineCommand creates a command to drop a stop.
func NewRemoveLineCommand(
	expeditionID kernel.UUID,
	lineID kernel.UUID,
	actorID kernel.UUID,
) (RemoveLineCommand, error) {
	command := RemoveLineCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setExpeditionID(expeditionID),
		command.setLineID(lineID),
		command.setActorID(actorID),
	); err != nil {
		return RemoveLineCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c RemoveLineCommand) Validate() error {
	return c.guard.Validate(ErrRemoveLineCommandIsNotConstructed)
}

// ExpeditionID returns the expedition to drop the stop from.
func (c RemoveLineCommand) ExpeditionID() kernel.UUID {
	return c.expeditionID
}

// LineID returns the stop to drop.
func (c RemoveLineCommand) LineID() kernel.UUID {
	return c.lineID
}

// ActorID returns who requested the removal.
func (c RemoveLineCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *RemoveLineCommand) setExpeditionID(expeditionID kernel.UUID) error {
	if err := expeditionID.Validate(); err != nil {
		return err
	}

	c.expeditionID = expeditionID
	return nil
}

func (c *RemoveLineCommand) setLineID(lineID kernel.UUID) error {
	if err := lineID.Validate(); err != nil {
		return err
	}

	c.lineID = lineID
	return nil
}

func (c *RemoveLineCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
