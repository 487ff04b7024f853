package commands

import (
	"errors"

	"expedition/internal/core/domain/model/kernel"
	"expedition/internal/pkg/guard"
)

var ErrResetExpeditionCommandIsNotConstructed = errors.New(
	"ResetExpeditionCommand must be created via NewResetExpeditionCommand constructor",
)

// ResetExpeditionCommand returns an expedition to the planned state from
// anywhere in the lifecycle, clearing any issue. Resetting a locked
// expedition requires the dispatcher capability.
type ResetExpeditionCommand struct { //nolint:recvcheck //using for validation
	expeditionID kernel.UUID
	actorID      kernel.UUID

	guard guard.ConstructorGuard
}

// NewResetExpeditionCommand creates a command to reset an expedition.
func NewResetExpeditionCommand(
	expeditionID kernel.UUID,
	actorID kernel.UUID,
) (ResetExpeditionCommand, error) {
	command := ResetExpeditionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setExpeditionID(expeditionID),
		command.setActorID(actorID),
	); err != nil {
		return ResetExpeditionCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c ResetExpeditionCommand) Validate() error {
	return c.guard.Validate(ErrResetExpeditionCommandIsNotConstructed)
}

// ExpeditionID returns the expedition to reset.
func (c ResetExpeditionCommand) ExpeditionID() kernel.UUID {
	return c.expeditionID
}

// ActorID returns who requested the reset.
func (c ResetExpeditionCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *ResetExpeditionCommand) setExpeditionID(expeditionID kernel.UUID) error {
	if err := expeditionID.Validate(); err != nil {
		return err
	}

	c.expeditionID = expeditionID
	return nil
}

func (c *ResetExpeditionCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
