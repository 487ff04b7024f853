package commands

import (
	"errors"

	"expedition/internal/core/domain/model/kernel"
	"expedition/internal/pkg/errs"
	"expedition/internal/pkg/guard"
)

var ErrEditLineParticipantsCommandIsNotConstructed = errors.New(
	"EditLineParticipantsCommand must be created via NewEditLineParticipantsCommand constructor",
)

// EditLineParticipantsCommand replaces the set of drivers working one stop.
// Writing a single foreign driver hands the stop over to that driver's own
// expedition (when split normalization is enabled); any other edit keeps the
// stop in place and realigns its shares.
type EditLineParticipantsCommand struct { //nolint:recvcheck //using for validation
	expeditionID kernel.UUID
	lineID       kernel.UUID
	participants []kernel.UUID
	actorID      kernel.UUID

	guard guard.ConstructorGuard
}

// NewEditLineParticipantsCommand creates a command to edit a stop's drivers.
// At least one participant is required.
func NewEditLineParticipantsCommand(
	expeditionID kernel.UUID,
	lineID kernel.UUID,
	participants []kernel.UUID,
	actorID kernel.UUID,
) (EditLineParticipantsCommand, error) {
	command := EditLineParticipantsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setExpeditionID(expeditionID),
		command.setLineID(lineID),
		command.setParticipants(participants),
		command.setActorID(actorID),
	); err != nil {
		return EditLineParticipantsCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c EditLineParticipantsCommand) Validate() error {
	return c.guard.Validate(ErrEditLineParticipantsCommandIsNotConstructed)
}

// ExpeditionID returns the expedition carrying the stop.
func (c EditLineParticipantsCommand) ExpeditionID() kernel.UUID {
	return c.expeditionID
}

// LineID returns the stop to edit.
func (c EditLineParticipantsCommand) LineID() kernel.UUID {
	return c.lineID
}

// Participants returns the requested driver set.
func (c EditLineParticipantsCommand) Participants() []kernel.UUID {
	out := make([]kernel.UUID, len(c.participants))
	copy(out, c.participants)
	return out
}

// ActorID returns who requested the edit.
func (c EditLineParticipantsCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *EditLineParticipantsCommand) setExpeditionID(expeditionID kernel.UUID) error {
	if err := expeditionID.Validate(); err != nil {
		return err
	}

	c.expeditionID = expeditionID
	return nil
}

func (c *EditLineParticipantsCommand) setLineID(lineID kernel.UUID) error {
	if err := lineID.Validate(); err != nil {
		return err
	}

	c.lineID = lineID
	return nil
}

func (c *EditLineParticipantsCommand) setParticipants(participants []kernel.UUID) error {
	if len(participants) == 0 {
		return errs.NewValueIsRequiredError("participants")
	}

	for _, participant := range participants {
		if err := participant.Validate(); err != nil {
			return err
		}
	}

	c.participants = make([]kernel.UUID, len(participants))
	copy(c.participants, participants)
	return nil
}

func (c *EditLineParticipantsCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
