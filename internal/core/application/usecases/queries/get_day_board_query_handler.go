package queries

import (
	"context"

	"expedition/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetDayBoardQueryHandler reads the per-day expedition overview from the
// database. Uses direct SQL queries for optimal read performance in the
// CQRS pattern.
type GetDayBoardQueryHandler struct {
	db *gorm.DB
}

// NewGetDayBoardQueryHandler creates a handler for day board queries.
// Requires a GORM database connection for query execution.
func NewGetDayBoardQueryHandler(db *gorm.DB) GetDayBoardQueryHandler {
	return GetDayBoardQueryHandler{db: db}
}

// Handle executes the query to retrieve all expeditions of the date.
// Rows are aggregated in SQL and sorted by driver for stable board output.
func (h GetDayBoardQueryHandler) Handle(
	ctx context.Context,
	query GetDayBoardQuery,
) ([]GetDayBoardQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	board := make([]GetDayBoardQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			e.id,
			e.driver_id,
			e.state,
			COUNT(DISTINCT l.id),
			COALESCE(SUM(a.boxes), 0),
			COALESCE(SUM(a.weight), 0)
		FROM expeditions e
		LEFT JOIN expedition_lines l ON l.expedition_id = e.id
		LEFT JOIN expedition_allocations a ON a.line_id = l.id
		WHERE e.company_id = ? AND e.date = ?
		GROUP BY e.id, e.driver_id, e.state
		ORDER BY e.driver_id
	`, query.CompanyID().String(), query.Date().Time()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var row GetDayBoardQueryResponse
		var id, driverID uuid.UUID

		err = rows.Scan(
			&id,
			&driverID,
			&row.State,
			&row.LineCount,
			&row.TotalBoxes,
			&row.TotalWeight,
		)
		if err != nil {
			return nil, err
		}

		if row.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if row.DriverID, err = kernel.UUIDFromBytes(driverID[:]); err != nil {
			return nil, err
		}
		board = append(board, row)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return board, nil
}
