// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"

	"expedition/internal/core/domain/model/kernel"
	"expedition/internal/pkg/errs"
	"expedition/internal/pkg/guard"
)

var (
	ErrGetExpeditionQueryIsNotConstructed = errors.New(
		"GetExpeditionQuery must be created via NewGetExpeditionQuery constructor",
	)
)

// GetExpeditionQuery retrieves a single expedition with its stops and the
// per-driver load allocations of every stop.
//
// Example:
//
//	query, err := NewGetExpeditionQuery(expeditionID)
//	if err != nil {
//	    return err
//	}
//
//	board, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve expedition: %w", err)
//	}
//
//	fmt.Printf("Expedition %s (%s): %d stops\n",
//	    board.ID, board.State, len(board.Lines))
//
//nolint:recvcheck //using for validation
type GetExpeditionQuery struct {
	guard guard.ConstructorGuard

	expeditionID kernel.UUID
}

// NewGetExpeditionQuery creates a query for one expedition by its identifier.
func NewGetExpeditionQuery(expeditionID kernel.UUID) (GetExpeditionQuery, error) {
	query := GetExpeditionQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setExpeditionID(expeditionID); err != nil {
		return GetExpeditionQuery{}, err
	}

	return query, nil
}

// ExpeditionID returns the identifier of the requested expedition.
func (q GetExpeditionQuery) ExpeditionID() kernel.UUID {
	return q.expeditionID
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetExpeditionQueryIsNotConstructed if validation fails.
func (q GetExpeditionQuery) Validate() error {
	return q.guard.Validate(ErrGetExpeditionQueryIsNotConstructed)
}

func (q *GetExpeditionQuery) setExpeditionID(expeditionID kernel.UUID) error {
	if err := expeditionID.Validate(); err != nil {
		return errs.NewValueIsRequiredError("expeditionID")
	}
	q.expeditionID = expeditionID
	return nil
}

// GetExpeditionQueryResponse is the read model of a full expedition: header,
// current state, reported issue (if any) and the ordered stop list.
type GetExpeditionQueryResponse struct {
	ID               kernel.UUID
	CompanyID        kernel.UUID
	Date             kernel.Date
	DriverID         kernel.UUID
	DefaultVehicleID *kernel.UUID
	State            string
	IssueKind        string
	IssueNote        string
	TotalBoxes       float64
	TotalWeight      float64
	Lines            []ExpeditionLineResponse
}

// ExpeditionLineResponse represents one stop of the expedition read model.
type ExpeditionLineResponse struct {
	ID              kernel.UUID
	DeliveryOrderID kernel.UUID
	Sequence        int
	VehicleID       *kernel.UUID
	Allocations     []ExpeditionAllocationResponse
}

// ExpeditionAllocationResponse represents one driver's share of a stop.
type ExpeditionAllocationResponse struct {
	DriverID  kernel.UUID
	VehicleID *kernel.UUID
	Boxes     float64
	Weight    float64
}
