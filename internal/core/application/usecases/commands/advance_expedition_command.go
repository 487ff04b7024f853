package commands

import (
	"errors"

	"expedition/internal/core/domain/model/expedition"
	"expedition/internal/core/domain/model/kernel"
	"expedition/internal/pkg/guard"
)

var ErrAdvanceExpeditionCommandIsNotConstructed = errors.New(
	"AdvanceExpeditionCommand must be created via NewAdvanceExpeditionCommand constructor",
)

// AdvanceExpeditionCommand requests a forward state change of an expedition,
// e.g. planned to preparing or ready to loaded.
type AdvanceExpeditionCommand struct { //nolint:recvcheck //using for validation
	expeditionID kernel.UUID
	target       expedition.State
	actorID      kernel.UUID

	guard guard.ConstructorGuard
}

// NewAdvanceExpeditionCommand creates a command to advance an expedition.
// The target must be a forward-flow state; Hold is entered through
// ReportExpeditionIssueCommand instead.
func NewAdvanceExpeditionCommand(
	expeditionID kernel.UUID,
	target expedition.State,
	actorID kernel.UUID,
) (AdvanceExpeditionCommand, error) {
	command := AdvanceExpeditionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setExpeditionID(expeditionID),
		command.setTarget(target),
		command.setActorID(actorID),
	); err != nil {
		return AdvanceExpeditionCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c AdvanceExpeditionCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceExpeditionCommandIsNotConstructed)
}

// ExpeditionID returns the expedition to advance.
func (c AdvanceExpeditionCommand) ExpeditionID() kernel.UUID {
	return c.expeditionID
}

// Target returns the requested lifecycle state.
func (c AdvanceExpeditionCommand) Target() expedition.State {
	return c.target
}

// ActorID returns who requested the change.
func (c AdvanceExpeditionCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *AdvanceExpeditionCommand) setExpeditionID(expeditionID kernel.UUID) error {
	if err := expeditionID.Validate(); err != nil {
		return err
	}

	c.expeditionID = expeditionID
	return nil
}

func (c *AdvanceExpeditionCommand) setTarget(target expedition.State) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}

func (c *AdvanceExpeditionCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
