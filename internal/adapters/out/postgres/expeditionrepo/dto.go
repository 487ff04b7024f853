// Package expeditionrepo provides data transfer objects and mapping functions
// for expedition persistence. This package implements the repository pattern
// for the expedition domain aggregate, handling the conversion between domain
// entities and database representations.
package expeditionrepo

import (
	"time"

	"expedition/internal/core/domain/model/expedition"
	"expedition/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// ExpeditionDTO represents the database structure for persisting expedition
// aggregates. The unique index over (company_id, date, driver_id) enforces
// the natural key: one expedition per main driver per day per company.
type ExpeditionDTO struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CompanyID        uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uix_expeditions_key;index:idx_expeditions_day"`
	Date             time.Time  `gorm:"type:date;not null;uniqueIndex:uix_expeditions_key;index:idx_expeditions_day"`
	DriverID         uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uix_expeditions_key"`
	DefaultVehicleID *uuid.UUID `gorm:"type:uuid"`
	State            string     `gorm:"type:varchar(32);not null"`
	StateBeforeHold  string     `gorm:"type:varchar(32)"`
	IssueKind        string     `gorm:"type:varchar(32)"`
	IssueNote        string     `gorm:"type:text"`
	IssueReportedBy  *uuid.UUID `gorm:"type:uuid"`
	IssueReportedAt  *time.Time

	Lines        []LineDTO        `gorm:"foreignKey:ExpeditionID;constraint:OnDelete:CASCADE"`
	StateChanges []StateChangeDTO `gorm:"foreignKey:ExpeditionID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for expedition entities.
func (ExpeditionDTO) TableName() string {
	return "expeditions"
}

// LineDTO represents one stop of an expedition. A delivery order appears at
// most once per expedition, enforced by the unique index.
type LineDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ExpeditionID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uix_expedition_lines_delivery"`
	DeliveryOrderID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uix_expedition_lines_delivery;index"`
	Sequence        int        `gorm:"type:int;not null"`
	VehicleID       *uuid.UUID `gorm:"type:uuid"`

	Allocations []AllocationDTO `gorm:"foreignKey:LineID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for expedition line entities.
func (LineDTO) TableName() string {
	return "expedition_lines"
}

// AllocationDTO represents one driver's share of a stop. A driver has at
// most one allocation per line; Position preserves participant order.
type AllocationDTO struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	LineID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uix_expedition_allocations_driver"`
	DriverID  uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uix_expedition_allocations_driver"`
	VehicleID *uuid.UUID `gorm:"type:uuid"`
	Position  int        `gorm:"type:int;not null"`
	Boxes     float64    `gorm:"type:numeric;not null"`
	Weight    float64    `gorm:"type:numeric;not null"`
}

// TableName specifies the database table name for allocation entities.
func (AllocationDTO) TableName() string {
	return "expedition_allocations"
}

// StateChangeDTO represents one entry of the expedition transition log.
type StateChangeDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	ExpeditionID uuid.UUID `gorm:"type:uuid;not null;index"`
	Position     int       `gorm:"type:int;not null"`
	FromState    string    `gorm:"type:varchar(32);not null"`
	ToState      string    `gorm:"type:varchar(32);not null"`
	ChangedBy    uuid.UUID `gorm:"type:uuid;not null"`
	ChangedAt    time.Time `gorm:"not null"`
}

// TableName specifies the database table name for transition log entries.
func (StateChangeDTO) TableName() string {
	return "expedition_state_changes"
}

// fromDomain converts an expedition domain aggregate to its database
// representation, including stops, allocations and the transition log.
func fromDomain(aggregate *expedition.Expedition) ExpeditionDTO {
	expeditionID := aggregate.ID().Bytes()

	lines := make([]LineDTO, 0, len(aggregate.Lines()))
	for _, line := range aggregate.Lines() {
		lines = append(lines, lineFromDomain(expeditionID, line))
	}

	stateChanges := make([]StateChangeDTO, 0, len(aggregate.StateLog()))
	for i, change := range aggregate.StateLog() {
		stateChanges = append(stateChanges, StateChangeDTO{
			ID:           uuid.New(),
			ExpeditionID: expeditionID,
			Position:     i,
			FromState:    change.From.String(),
			ToState:      change.To.String(),
			ChangedBy:    change.ChangedBy.Bytes(),
			ChangedAt:    change.ChangedAt,
		})
	}

	dto := ExpeditionDTO{
		ID:               expeditionID,
		CompanyID:        aggregate.CompanyID().Bytes(),
		Date:             aggregate.Date().Time(),
		DriverID:         aggregate.DriverID().Bytes(),
		DefaultVehicleID: optionalBytes(aggregate.DefaultVehicleID()),
		State:            aggregate.State().String(),
		Lines:            lines,
		StateChanges:     stateChanges,
	}

	if aggregate.State() == expedition.Hold {
		dto.StateBeforeHold = aggregate.StateBeforeHold().String()
	}

	if issue := aggregate.Issue(); issue != nil {
		reportedBy := issue.ReportedBy().Bytes()
		reportedAt := issue.ReportedAt()
		dto.IssueKind = issue.Kind().String()
		dto.IssueNote = issue.Note()
		dto.IssueReportedBy = &reportedBy
		dto.IssueReportedAt = &reportedAt
	}

	return dto
}

func lineFromDomain(expeditionID uuid.UUID, line *expedition.Line) LineDTO {
	lineID := line.ID().Bytes()

	allocations := make([]AllocationDTO, 0, len(line.Participants()))
	for position, driverID := range line.Participants() {
		allocation := line.AllocationFor(driverID)
		allocations = append(allocations, AllocationDTO{
			ID:        allocation.ID().Bytes(),
			LineID:    lineID,
			DriverID:  driverID.Bytes(),
			VehicleID: optionalBytes(allocation.VehicleID()),
			Position:  position,
			Boxes:     allocation.Boxes(),
			Weight:    allocation.Weight(),
		})
	}

	return LineDTO{
		ID:              lineID,
		ExpeditionID:    expeditionID,
		DeliveryOrderID: line.DeliveryOrderID().Bytes(),
		Sequence:        line.Sequence(),
		VehicleID:       optionalBytes(line.VehicleID()),
		Allocations:     allocations,
	}
}

// toDomain converts a database DTO to an expedition domain aggregate.
// Reconstructs the complete aggregate via RestoreExpedition.
func toDomain(dto ExpeditionDTO) (*expedition.Expedition, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	companyID, err := kernel.UUIDFromBytes(dto.CompanyID[:])
	if err != nil {
		return nil, err
	}

	driverID, err := kernel.UUIDFromBytes(dto.DriverID[:])
	if err != nil {
		return nil, err
	}

	date, err := kernel.DateFromTime(dto.Date)
	if err != nil {
		return nil, err
	}

	defaultVehicleID, err := optionalUUID(dto.DefaultVehicleID)
	if err != nil {
		return nil, err
	}

	state, err := expedition.StateFromString(dto.State)
	if err != nil {
		return nil, err
	}

	stateBeforeHold := expedition.Unknown
	if dto.StateBeforeHold != "" {
		stateBeforeHold, err = expedition.StateFromString(dto.StateBeforeHold)
		if err != nil {
			return nil, err
		}
	}

	issue, err := issueToDomain(dto)
	if err != nil {
		return nil, err
	}

	lines := make([]*expedition.Line, 0, len(dto.Lines))
	for _, lineDto := range dto.Lines {
		line, lineErr := lineToDomain(lineDto)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	stateLog, err := stateLogToDomain(dto.StateChanges)
	if err != nil {
		return nil, err
	}

	return expedition.RestoreExpedition(
		id, companyID, date, driverID, defaultVehicleID,
		state, stateBeforeHold, issue, lines, stateLog,
	)
}

func lineToDomain(dto LineDTO) (*expedition.Line, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	deliveryOrderID, err := kernel.UUIDFromBytes(dto.DeliveryOrderID[:])
	if err != nil {
		return nil, err
	}

	vehicleID, err := optionalUUID(dto.VehicleID)
	if err != nil {
		return nil, err
	}

	// participant order is the allocation Position order
	participants := make([]kernel.UUID, 0, len(dto.Allocations))
	allocations := make([]*expedition.Allocation, 0, len(dto.Allocations))
	for _, allocationDto := range dto.Allocations {
		allocation, allocationErr := allocationToDomain(allocationDto)
		if allocationErr != nil {
			return nil, allocationErr
		}
		participants = append(participants, allocation.DriverID())
		allocations = append(allocations, allocation)
	}

	return expedition.RestoreLine(id, deliveryOrderID, dto.Sequence, vehicleID, participants, allocations)
}

func allocationToDomain(dto AllocationDTO) (*expedition.Allocation, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	driverID, err := kernel.UUIDFromBytes(dto.DriverID[:])
	if err != nil {
		return nil, err
	}

	vehicleID, err := optionalUUID(dto.VehicleID)
	if err != nil {
		return nil, err
	}

	return expedition.RestoreAllocation(id, driverID, vehicleID, dto.Boxes, dto.Weight)
}

func issueToDomain(dto ExpeditionDTO) (*expedition.Issue, error) {
	if dto.IssueKind == "" {
		return nil, nil
	}

	kind, err := expedition.IssueKindFromString(dto.IssueKind)
	if err != nil {
		return nil, err
	}

	var reportedBy kernel.UUID
	if dto.IssueReportedBy != nil {
		reportedBy, err = kernel.UUIDFromBytes((*dto.IssueReportedBy)[:])
		if err != nil {
			return nil, err
		}
	}

	var reportedAt time.Time
	if dto.IssueReportedAt != nil {
		reportedAt = *dto.IssueReportedAt
	}

	issue, err := expedition.NewIssue(kind, dto.IssueNote, reportedBy, reportedAt)
	if err != nil {
		return nil, err
	}
	return &issue, nil
}

func stateLogToDomain(dtos []StateChangeDTO) ([]expedition.StateChange, error) {
	stateLog := make([]expedition.StateChange, 0, len(dtos))
	for _, dto := range dtos {
		from, err := expedition.StateFromString(dto.FromState)
		if err != nil {
			return nil, err
		}

		to, err := expedition.StateFromString(dto.ToState)
		if err != nil {
			return nil, err
		}

		changedBy, err := kernel.UUIDFromBytes(dto.ChangedBy[:])
		if err != nil {
			return nil, err
		}

		stateLog = append(stateLog, expedition.StateChange{
			From:      from,
			To:        to,
			ChangedBy: changedBy,
			ChangedAt: dto.ChangedAt,
		})
	}
	return stateLog, nil
}

func optionalBytes(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func optionalUUID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes((*raw)[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
