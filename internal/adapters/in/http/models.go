package http

import (
	"expedition/internal/core/application/usecases/queries"
	"expedition/internal/core/domain/model/kernel"
)

// EnsureRoutingRequest is the body of POST /expeditions/ensure-routing.
type EnsureRoutingRequest struct {
	CompanyID       string `json:"company_id"`
	Date            string `json:"date"`
	DriverID        string `json:"driver_id"`
	DeliveryOrderID string `json:"delivery_order_id"`
}

// AdvanceRequest is the body of POST /expeditions/:id/advance.
type AdvanceRequest struct {
	Target  string `json:"target"`
	ActorID string `json:"actor_id"`
}

// ActorRequest is the body of operations that only need the acting user.
type ActorRequest struct {
	ActorID string `json:"actor_id"`
}

// ReportIssueRequest is the body of POST /expeditions/:id/issues.
type ReportIssueRequest struct {
	Kind    string `json:"kind"`
	Note    string `json:"note"`
	ActorID string `json:"actor_id"`
}

// ChangeMainDriverRequest is the body of PUT /expeditions/:id/driver.
type ChangeMainDriverRequest struct {
	DriverID  string  `json:"driver_id"`
	VehicleID *string `json:"vehicle_id"`
	ActorID   string  `json:"actor_id"`
}

// EditParticipantsRequest is the body of the line participant edit.
type EditParticipantsRequest struct {
	DriverIDs []string `json:"driver_ids"`
	ActorID   string   `json:"actor_id"`
}

// SetVehicleRequest is the body of the line vehicle edit.
type SetVehicleRequest struct {
	VehicleID *string `json:"vehicle_id"`
	ActorID   string  `json:"actor_id"`
}

// UpdateAllocationRequest is the body of the allocation edit.
type UpdateAllocationRequest struct {
	Boxes     float64 `json:"boxes"`
	Weight    float64 `json:"weight"`
	VehicleID *string `json:"vehicle_id"`
	ActorID   string  `json:"actor_id"`
}

// ReassignRequest is the body of POST /work-items/reassign.
type ReassignRequest struct {
	DeliveryOrderID string `json:"delivery_order_id"`
	OldDriverID     string `json:"old_driver_id"`
	NewDriverID     string `json:"new_driver_id"`
	ActorID         string `json:"actor_id"`
}

// DayBoardRow is one expedition on the day board response.
type DayBoardRow struct {
	ID          string  `json:"id"`
	DriverID    string  `json:"driver_id"`
	State       string  `json:"state"`
	LineCount   int     `json:"line_count"`
	TotalBoxes  float64 `json:"total_boxes"`
	TotalWeight float64 `json:"total_weight"`
}

// ExpeditionResponse is the full expedition detail response.
type ExpeditionResponse struct {
	ID               string         `json:"id"`
	CompanyID        string         `json:"company_id"`
	Date             string         `json:"date"`
	DriverID         string         `json:"driver_id"`
	DefaultVehicleID *string        `json:"default_vehicle_id"`
	State            string         `json:"state"`
	IssueKind        string         `json:"issue_kind,omitempty"`
	IssueNote        string         `json:"issue_note,omitempty"`
	TotalBoxes       float64        `json:"total_boxes"`
	TotalWeight      float64        `json:"total_weight"`
	Lines            []LineResponse `json:"lines"`
}

// LineResponse is one stop of the expedition detail response.
type LineResponse struct {
	ID              string               `json:"id"`
	DeliveryOrderID string               `json:"delivery_order_id"`
	Sequence        int                  `json:"sequence"`
	VehicleID       *string              `json:"vehicle_id"`
	Allocations     []AllocationResponse `json:"allocations"`
}

// AllocationResponse is one driver's share on a stop.
type AllocationResponse struct {
	DriverID  string  `json:"driver_id"`
	VehicleID *string `json:"vehicle_id"`
	Boxes     float64 `json:"boxes"`
	Weight    float64 `json:"weight"`
}

func idToString(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func toExpeditionResponse(board queries.GetExpeditionQueryResponse) ExpeditionResponse {
	lines := make([]LineResponse, 0, len(board.Lines))
	for _, line := range board.Lines {
		allocations := make([]AllocationResponse, 0, len(line.Allocations))
		for _, allocation := range line.Allocations {
			allocations = append(allocations, AllocationResponse{
				DriverID:  allocation.DriverID.String(),
				VehicleID: idToString(allocation.VehicleID),
				Boxes:     allocation.Boxes,
				Weight:    allocation.Weight,
			})
		}
		lines = append(lines, LineResponse{
			ID:              line.ID.String(),
			DeliveryOrderID: line.DeliveryOrderID.String(),
			Sequence:        line.Sequence,
			VehicleID:       idToString(line.VehicleID),
			Allocations:     allocations,
		})
	}

	return ExpeditionResponse{
		ID:               board.ID.String(),
		CompanyID:        board.CompanyID.String(),
		Date:             board.Date.String(),
		DriverID:         board.DriverID.String(),
		DefaultVehicleID: idToString(board.DefaultVehicleID),
		State:            board.State,
		IssueKind:        board.IssueKind,
		IssueNote:        board.IssueNote,
		TotalBoxes:       board.TotalBoxes,
		TotalWeight:      board.TotalWeight,
		Lines:            lines,
	}
}
