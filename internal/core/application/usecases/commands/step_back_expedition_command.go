package commands

import (
	"errors"

	"expedition/internal/core/domain/model/kernel"
	"expedition/internal/pkg/guard"
)

var ErrStepBackExpeditionCommandIsNotConstructed = errors.New(
	"StepBackExpeditionCommand must be created via NewStepBackExpeditionCommand constructor",
)

// StepBackExpeditionCommand requests that an expedition moves one step
// backwards in its lifecycle. For an expedition on hold this lifts the hold
// and resumes the state it was suspended from.
type StepBackExpeditionCommand struct { //nolint:recvcheck //using for validation
	expeditionID kernel.UUID
	actorID      kernel.UUID

	guard guard.ConstructorGuard
}

// NewStepBackExpeditionCommand creates a command to step an expedition back.
func NewStepBackExpeditionCommand(
	expeditionID kernel.UUID,
	actorID kernel.UUID,
) (StepBackExpeditionCommand, error) {
	command := StepBackExpeditionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setExpeditionID(expeditionID),
		command.setActorID(actorID),
	); err != nil {
		return StepBackExpeditionCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c StepBackExpeditionCommand) Validate() error {
	return c.guard.Validate(ErrStepBackExpeditionCommandIsNotConstructed)
}

// ExpeditionID returns the expedition to step back.
func (c StepBackExpeditionCommand) ExpeditionID() kernel.UUID {
	return c.expeditionID
}

// ActorID returns who requested the change.
func (c StepBackExpeditionCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *StepBackExpeditionCommand) setExpeditionID(expeditionID kernel.UUID) error {
	if err := expeditionID.Validate(); err != nil {
		return err
	}

	c.expeditionID = expeditionID
	return nil
}

func (c *StepBackExpeditionCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
