package queries

import (
	"context"
	"time"

	"expedition/internal/core/domain/model/kernel"
	"expedition/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetExpeditionQueryHandler reads a full expedition from the database.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
type GetExpeditionQueryHandler struct {
	db *gorm.DB
}

// NewGetExpeditionQueryHandler creates a handler for expedition detail queries.
// Requires a GORM database connection for query execution.
func NewGetExpeditionQueryHandler(db *gorm.DB) GetExpeditionQueryHandler {
	return GetExpeditionQueryHandler{db: db}
}

// Handle executes the query and assembles header, stops and allocations
// into a single read model. Returns errs.ObjectNotFoundError when no
// expedition exists with the requested identifier.
func (h GetExpeditionQueryHandler) Handle(
	ctx context.Context,
	query GetExpeditionQuery,
) (GetExpeditionQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetExpeditionQueryResponse{}, err
	}

	response, err := h.readHeader(ctx, query.ExpeditionID())
	if err != nil {
		return GetExpeditionQueryResponse{}, err
	}

	response.Lines, err = h.readLines(ctx, query.ExpeditionID())
	if err != nil {
		return GetExpeditionQueryResponse{}, err
	}

	for _, line := range response.Lines {
		for _, allocation := range line.Allocations {
			response.TotalBoxes += allocation.Boxes
			response.TotalWeight += allocation.Weight
		}
	}

	return response, nil
}

func (h GetExpeditionQueryHandler) readHeader(
	ctx context.Context,
	expeditionID kernel.UUID,
) (GetExpeditionQueryResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			company_id,
			date,
			driver_id,
			default_vehicle_id,
			state,
			issue_kind,
			issue_note
		FROM expeditions
		WHERE id = ?
	`, expeditionID.String()).Rows()
	if err != nil {
		return GetExpeditionQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetExpeditionQueryResponse{}, err
		}
		return GetExpeditionQueryResponse{},
			errs.NewObjectNotFoundError("expedition", expeditionID)
	}

	var response GetExpeditionQueryResponse
	var id, companyID, driverID uuid.UUID
	var defaultVehicleID uuid.NullUUID
	var date time.Time

	err = rows.Scan(
		&id,
		&companyID,
		&date,
		&driverID,
		&defaultVehicleID,
		&response.State,
		&response.IssueKind,
		&response.IssueNote,
	)
	if err != nil {
		return GetExpeditionQueryResponse{}, err
	}

	if response.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetExpeditionQueryResponse{}, err
	}
	if response.CompanyID, err = kernel.UUIDFromBytes(companyID[:]); err != nil {
		return GetExpeditionQueryResponse{}, err
	}
	if response.DriverID, err = kernel.UUIDFromBytes(driverID[:]); err != nil {
		return GetExpeditionQueryResponse{}, err
	}
	if response.DefaultVehicleID, err = optionalUUID(defaultVehicleID); err != nil {
		return GetExpeditionQueryResponse{}, err
	}
	if response.Date, err = kernel.DateFromTime(date); err != nil {
		return GetExpeditionQueryResponse{}, err
	}

	if err = rows.Err(); err != nil {
		return GetExpeditionQueryResponse{}, err
	}

	return response, nil
}

func (h GetExpeditionQueryHandler) readLines(
	ctx context.Context,
	expeditionID kernel.UUID,
) ([]ExpeditionLineResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			l.id,
			l.delivery_order_id,
			l.sequence,
			l.vehicle_id,
			a.driver_id,
			a.vehicle_id,
			a.boxes,
			a.weight
		FROM expedition_lines l
		JOIN expedition_allocations a ON a.line_id = l.id
		WHERE l.expedition_id = ?
		ORDER BY l.sequence, a.driver_id
	`, expeditionID.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make([]ExpeditionLineResponse, 0)

	for rows.Next() {
		var lineID, deliveryOrderID, allocationDriverID uuid.UUID
		var lineVehicleID, allocationVehicleID uuid.NullUUID
		var sequence int
		var boxes, weight float64

		err = rows.Scan(
			&lineID,
			&deliveryOrderID,
			&sequence,
			&lineVehicleID,
			&allocationDriverID,
			&allocationVehicleID,
			&boxes,
			&weight,
		)
		if err != nil {
			return nil, err
		}

		allocation := ExpeditionAllocationResponse{Boxes: boxes, Weight: weight}
		if allocation.DriverID, err = kernel.UUIDFromBytes(allocationDriverID[:]); err != nil {
			return nil, err
		}
		if allocation.VehicleID, err = optionalUUID(allocationVehicleID); err != nil {
			return nil, err
		}

		// allocations of one stop arrive as consecutive rows
		if len(lines) > 0 && lines[len(lines)-1].ID.Bytes() == lineID {
			last := &lines[len(lines)-1]
			last.Allocations = append(last.Allocations, allocation)
			continue
		}

		line := ExpeditionLineResponse{
			Sequence:    sequence,
			Allocations: []ExpeditionAllocationResponse{allocation},
		}
		if line.ID, err = kernel.UUIDFromBytes(lineID[:]); err != nil {
			return nil, err
		}
		if line.DeliveryOrderID, err = kernel.UUIDFromBytes(deliveryOrderID[:]); err != nil {
			return nil, err
		}
		if line.VehicleID, err = optionalUUID(lineVehicleID); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}

func optionalUUID(v uuid.NullUUID) (*kernel.UUID, error) {
	if !v.Valid {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes(v.UUID[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
