package ports

import (
	"context"

	"expedition/internal/core/domain/model/expedition"
	"expedition/internal/core/domain/model/kernel"
)

// ExpeditionRepository defines the persistence contract for expedition
// aggregates. Storage enforces the natural key: at most one expedition per
// (company, date, main driver).
type ExpeditionRepository interface {
	// Add persists a new expedition aggregate to storage.
	// Fails with a validation error when the (company, date, driver) key
	// is already taken.
	Add(ctx context.Context, aggregate *expedition.Expedition) error

	// Update persists changes to an existing expedition aggregate,
	// including its lines, allocations and transition log.
	Update(ctx context.Context, aggregate *expedition.Expedition) error

	// Get retrieves an expedition aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*expedition.Expedition, error)

	// GetByKey retrieves the expedition for the natural key, if any.
	// Returns an ObjectNotFoundError when no expedition exists for the key.
	GetByKey(ctx context.Context, companyID kernel.UUID, date kernel.Date, driverID kernel.UUID) (*expedition.Expedition, error)

	// GetByDeliveryOrder retrieves the expeditions carrying a line for the
	// given delivery order, ordered by date. A delivery order split between
	// drivers can appear on several expeditions.
	GetByDeliveryOrder(ctx context.Context, deliveryOrderID kernel.UUID) ([]*expedition.Expedition, error)

	// GetAllByDate retrieves all expeditions of a company for one dispatch
	// date. Used by the day board and the mirror sweep.
	GetAllByDate(ctx context.Context, companyID kernel.UUID, date kernel.Date) ([]*expedition.Expedition, error)
}
