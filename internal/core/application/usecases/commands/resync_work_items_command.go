package commands

import (
	"errors"

	"expedition/internal/core/domain/model/kernel"
	"expedition/internal/pkg/guard"
)

var ErrResyncWorkItemsCommandIsNotConstructed = errors.New(
	"ResyncWorkItemsCommand must be created via NewResyncWorkItemsCommand constructor",
)

// ResyncWorkItemsCommand re-projects all work items for one company and one
// dispatch date. Run periodically to heal mirrors that drifted, e.g. after
// manual edits in the work management system.
type ResyncWorkItemsCommand struct { //nolint:recvcheck //using for validation
	companyID kernel.UUID
	date      kernel.Date

	guard guard.ConstructorGuard
}

// NewResyncWorkItemsCommand creates a command to sweep one day's mirrors.
func NewResyncWorkItemsCommand(
	companyID kernel.UUID,
	date kernel.Date,
) (ResyncWorkItemsCommand, error) {
	command := ResyncWorkItemsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setCompanyID(companyID),
		command.setDate(date),
	); err != nil {
		return ResyncWorkItemsCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c ResyncWorkItemsCommand) Validate() error {
	return c.guard.Validate(ErrResyncWorkItemsCommandIsNotConstructed)
}

// CompanyID returns the company to sweep.
func (c ResyncWorkItemsCommand) CompanyID() kernel.UUID {
	return c.companyID
}

// Date returns the dispatch date to sweep.
func (c ResyncWorkItemsCommand) Date() kernel.Date {
	return c.date
}

func (c *ResyncWorkItemsCommand) setCompanyID(companyID kernel.UUID) error {
	if err := companyID.Validate(); err != nil {
		return err
	}

	c.companyID = companyID
	return nil
}

func (c *ResyncWorkItemsCommand) setDate(date kernel.Date) error {
	if err := date.Validate(); err != nil {
		return err
	}

	c.date = date
	return nil
}
