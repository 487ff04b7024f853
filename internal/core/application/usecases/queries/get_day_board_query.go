package queries

import (
	"errors"

	"expedition/internal/core/domain/model/kernel"
	"expedition/internal/pkg/errs"
	"expedition/internal/pkg/guard"
)

var (
	ErrGetDayBoardQueryIsNotConstructed = errors.New(
		"GetDayBoardQuery must be created via NewGetDayBoardQuery constructor",
	)
)

// GetDayBoardQuery retrieves the dispatch board of one company for one day:
// every expedition of the date with its state, stop count and load totals.
//
// Example:
//
//	query, err := NewGetDayBoardQuery(companyID, date)
//	if err != nil {
//	    return err
//	}
//
//	board, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve day board: %w", err)
//	}
//
//	for _, row := range board {
//	    fmt.Printf("%s: %d stops, %.0f boxes\n", row.State, row.LineCount, row.TotalBoxes)
//	}
//
//nolint:recvcheck //using for validation
type GetDayBoardQuery struct {
	guard guard.ConstructorGuard

	companyID kernel.UUID
	date      kernel.Date
}

// NewGetDayBoardQuery creates a query for all expeditions of a company on
// the given date.
func NewGetDayBoardQuery(companyID kernel.UUID, date kernel.Date) (GetDayBoardQuery, error) {
	query := GetDayBoardQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		query.setCompanyID(companyID),
		query.setDate(date),
	); err != nil {
		return GetDayBoardQuery{}, err
	}

	return query, nil
}

// CompanyID returns the company whose board is requested.
func (q GetDayBoardQuery) CompanyID() kernel.UUID {
	return q.companyID
}

// Date returns the day the board covers.
func (q GetDayBoardQuery) Date() kernel.Date {
	return q.date
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetDayBoardQueryIsNotConstructed if validation fails.
func (q GetDayBoardQuery) Validate() error {
	return q.guard.Validate(ErrGetDayBoardQueryIsNotConstructed)
}

func (q *GetDayBoardQuery) setCompanyID(companyID kernel.UUID) error {
	if err := companyID.Validate(); err != nil {
		return errs.NewValueIsRequiredError("companyID")
	}
	q.companyID = companyID
	return nil
}

func (q *GetDayBoardQuery) setDate(date kernel.Date) error {
	if err := date.Validate(); err != nil {
		return errs.NewValueIsRequiredError("date")
	}
	q.date = date
	return nil
}

// GetDayBoardQueryResponse is one row of the day board: a single driver's
// expedition with aggregated load figures.
type GetDayBoardQueryResponse struct {
	ID          kernel.UUID
	DriverID    kernel.UUID
	State       string
	LineCount   int
	TotalBoxes  float64
	TotalWeight float64
}
