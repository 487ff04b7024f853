package expeditionrepo

import (
	"context"
	"errors"

	"expedition/internal/core/domain/model/expedition"
	"expedition/internal/core/domain/model/kernel"
	"expedition/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormExpeditionRepository implements ExpeditionRepository using GORM.
type GormExpeditionRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormExpeditionRepository creates a new GORM expedition repository.
func NewGormExpeditionRepository(db *gorm.DB, tracker aggregateTracker) *GormExpeditionRepository {
	return &GormExpeditionRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new expedition to the database. A second expedition for the
// same (company, date, driver) key violates the unique index and is
// reported as a validation error.
func (r *GormExpeditionRepository) Add(ctx context.Context, aggregate *expedition.Expedition) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewValueIsInvalidErrorWithCause("expedition key", err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing expedition to the database. Stops, allocations
// and the transition log are rewritten so removed children do not linger.
func (r *GormExpeditionRepository) Update(ctx context.Context, aggregate *expedition.Expedition) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	// deleting the lines cascades into their allocations
	if err := db.Where("expedition_id = ?", dto.ID).Delete(&LineDTO{}).Error; err != nil {
		return err
	}
	if err := db.Where("expedition_id = ?", dto.ID).Delete(&StateChangeDTO{}).Error; err != nil {
		return err
	}

	result := db.Session(&gorm.Session{FullSaveAssociations: true}).Save(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an expedition by ID.
func (r *GormExpeditionRepository) Get(ctx context.Context, id kernel.UUID) (*expedition.Expedition, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ExpeditionDTO
	if err := r.preloaded(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("expedition", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByKey retrieves the expedition of the (company, date, driver) natural
// key, if one exists for the day.
func (r *GormExpeditionRepository) GetByKey(
	ctx context.Context,
	companyID kernel.UUID,
	date kernel.Date,
	driverID kernel.UUID,
) (*expedition.Expedition, error) {
	if err := errors.Join(companyID.Validate(), date.Validate(), driverID.Validate()); err != nil {
		return nil, err
	}

	var dto ExpeditionDTO
	err := r.preloaded(ctx).
		First(&dto, "company_id = ? AND date = ? AND driver_id = ?",
			companyID.Bytes(), date.Time(), driverID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("expedition", driverID.String()+"@"+date.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByDeliveryOrder retrieves every expedition carrying a stop for the
// delivery order, ordered by date.
func (r *GormExpeditionRepository) GetByDeliveryOrder(
	ctx context.Context,
	deliveryOrderID kernel.UUID,
) ([]*expedition.Expedition, error) {
	if err := deliveryOrderID.Validate(); err != nil {
		return nil, err
	}

	var expeditionIDs []uuid.UUID
	err := r.db.WithContext(ctx).
		Table("expedition_lines").
		Where("delivery_order_id = ?", deliveryOrderID.Bytes()).
		Pluck("expedition_id", &expeditionIDs).Error
	if err != nil {
		return nil, err
	}

	if len(expeditionIDs) == 0 {
		return []*expedition.Expedition{}, nil
	}

	var dtos []ExpeditionDTO
	if err = r.preloaded(ctx).Order("date").Find(&dtos, "id IN ?", expeditionIDs).Error; err != nil {
		return nil, err
	}

	return r.toDomainAll(dtos)
}

// GetAllByDate retrieves all expeditions of a company for one dispatch date.
func (r *GormExpeditionRepository) GetAllByDate(
	ctx context.Context,
	companyID kernel.UUID,
	date kernel.Date,
) ([]*expedition.Expedition, error) {
	if err := errors.Join(companyID.Validate(), date.Validate()); err != nil {
		return nil, err
	}

	var dtos []ExpeditionDTO
	err := r.preloaded(ctx).
		Find(&dtos, "company_id = ? AND date = ?", companyID.Bytes(), date.Time()).Error
	if err != nil {
		return nil, err
	}

	return r.toDomainAll(dtos)
}

// preloaded returns a query with the child collections loaded in their
// domain order.
func (r *GormExpeditionRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence")
		}).
		Preload("Lines.Allocations", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		Preload("StateChanges", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		})
}

func (r *GormExpeditionRepository) toDomainAll(dtos []ExpeditionDTO) ([]*expedition.Expedition, error) {
	expeditions := make([]*expedition.Expedition, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		expeditions = append(expeditions, aggregate)
	}
	return expeditions, nil
}
