package workitemrepo

import (
	"context"
	"errors"

	"expedition/internal/core/domain/model/kernel"
	"expedition/internal/core/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormWorkItems implements ports.WorkItems using GORM.
type GormWorkItems struct {
	db *gorm.DB
}

// NewGormWorkItems creates a new GORM work item gateway.
func NewGormWorkItems(db *gorm.DB) *GormWorkItems {
	return &GormWorkItems{db: db}
}

// GetByDelivery retrieves the work items of a delivery order, ordered by
// driver for stable output. Inactive items are included only on request.
func (r *GormWorkItems) GetByDelivery(
	ctx context.Context,
	deliveryOrderID kernel.UUID,
	includeInactive bool,
) ([]ports.WorkItem, error) {
	if err := deliveryOrderID.Validate(); err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).Where("delivery_order_id = ?", deliveryOrderID.Bytes())
	if !includeInactive {
		query = query.Where("active")
	}

	var dtos []WorkItemDTO
	if err := query.Order("driver_id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	items := make([]ports.WorkItem, 0, len(dtos))
	for _, dto := range dtos {
		item, err := toPort(dto)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

// Upsert creates or updates the item keyed by (delivery order, driver).
// An existing row keeps its identifier; everything else, including the
// active flag, is overwritten so a re-sync revives deactivated items.
func (r *GormWorkItems) Upsert(ctx context.Context, item ports.WorkItem) error {
	if err := errors.Join(
		item.ID.Validate(),
		item.DeliveryOrderID.Validate(),
		item.DriverID.Validate(),
	); err != nil {
		return err
	}

	dto := fromPort(item)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "delivery_order_id"}, {Name: "driver_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"vehicle_id", "title", "description",
				"planned_start", "planned_end", "sequence",
				"boxes", "weight", "is_primary", "active",
			}),
		}).
		Create(&dto).Error
}

// Deactivate retires the item of a driver who left the delivery. The row
// stays for history; deactivating a missing item is not an error.
func (r *GormWorkItems) Deactivate(
	ctx context.Context,
	deliveryOrderID kernel.UUID,
	driverID kernel.UUID,
) error {
	if err := errors.Join(deliveryOrderID.Validate(), driverID.Validate()); err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Model(&WorkItemDTO{}).
		Where("delivery_order_id = ? AND driver_id = ?", deliveryOrderID.Bytes(), driverID.Bytes()).
		Update("active", false).Error
}
