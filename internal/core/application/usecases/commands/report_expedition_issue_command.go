package commands

import (
	"errors"
	"strings"

	"expedition/internal/core/domain/model/expedition"
	"expedition/internal/core/domain/model/kernel"
	"expedition/internal/pkg/errs"
	"expedition/internal/pkg/guard"
)

var ErrReportExpeditionIssueCommandIsNotConstructed = errors.New(
	"ReportExpeditionIssueCommand must be created via NewReportExpeditionIssueCommand constructor",
)

// ReportExpeditionIssueCommand puts an expedition on hold with a mandatory
// note explaining why. The note requirement is enforced here as well as in
// the domain, so a caller can never suspend a route without a reason.
type ReportExpeditionIssueCommand struct { //nolint:recvcheck //using for validation
	expeditionID kernel.UUID
	kind         expedition.IssueKind
	note         string
	actorID      kernel.UUID

	guard guard.ConstructorGuard
}

// NewReportExpeditionIssueCommand creates a command to report an issue.
func NewReportExpeditionIssueCommand(
	expeditionID kernel.UUID,
	kind expedition.IssueKind,
	note string,
	actorID kernel.UUID,
) (ReportExpeditionIssueCommand, error) {
	command := ReportExpeditionIssueCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setExpeditionID(expeditionID),
		command.setKind(kind),
		command.setNote(note),
		command.setActorID(actorID),
	); err != nil {
		return ReportExpeditionIssueCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c ReportExpeditionIssueCommand) Validate() error {
	return c.guard.Validate(ErrReportExpeditionIssueCommandIsNotConstructed)
}

// ExpeditionID returns the expedition to suspend.
func (c ReportExpeditionIssueCommand) ExpeditionID() kernel.UUID {
	return c.expeditionID
}

// Kind returns the kind of the reported issue.
func (c ReportExpeditionIssueCommand) Kind() expedition.IssueKind {
	return c.kind
}

// Note returns the reporter's explanation.
func (c ReportExpeditionIssueCommand) Note() string {
	return c.note
}

// ActorID returns who reported the issue.
func (c ReportExpeditionIssueCommand) ActorID() kernel.UUID {
	return c.actorID
}

func (c *ReportExpeditionIssueCommand) setExpeditionID(expeditionID kernel.UUID) error {
	if err := expeditionID.Validate(); err != nil {
		return err
	}

	c.expeditionID = expeditionID
	return nil
}

func (c *ReportExpeditionIssueCommand) setKind(kind expedition.IssueKind) error {
	if err := kind.Validate(); err != nil {
		return err
	}

	c.kind = kind
	return nil
}

func (c *ReportExpeditionIssueCommand) setNote(note string) error {
	if strings.TrimSpace(note) == "" {
		return errs.NewValueIsRequiredError("note")
	}

	c.note = note
	return nil
}

func (c *ReportExpeditionIssueCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
