package expedition

import (
	"errors"

	"expedition/internal/core/domain/model/kernel"
	"expedition/internal/pkg/errs"
	"expedition/internal/pkg/guard"
)

// Domain errors for allocation operations.
var (
	// ErrBoxesIsOutOfRange is returned when an allocation is given a negative box count.
	ErrBoxesIsOutOfRange = errs.NewValueIsInvalidError("boxes")
	// ErrWeightIsOutOfRange is returned when an allocation is given a negative weight.
	ErrWeightIsOutOfRange = errs.NewValueIsInvalidError("weight")
	// ErrAllocationIsNotConstructed is returned when using an improperly initialized Allocation.
	ErrAllocationIsNotConstructed = errors.New("Allocation must be created via NewAllocation constructor")
)

// Allocation is the per-driver share of a line. Every driver participating in
// a line owns exactly one allocation on it, holding the boxes and weight that
// driver carries for the underlying delivery order.
//
// Business rules:
//   - Boxes and weight are never negative
//   - A fresh allocation starts empty (zero boxes, zero weight)
//   - An allocation may carry its own vehicle override for the work item mirror
type Allocation struct {
	// id uniquely identifies the allocation
	id kernel.UUID
	// driverID is the driver this share belongs to
	driverID kernel.UUID
	// vehicleID optionally overrides the vehicle for this share
	vehicleID *kernel.UUID
	// boxes is the number of boxes carried by the driver
	boxes float64
	// weight is the weight in kilograms carried by the driver
	weight float64
	// guard ensures the allocation was properly constructed
	guard guard.ConstructorGuard
}

// NewAllocation creates an empty allocation for the given driver.
// Quantities start at zero and must be filled via SetQuantities before the
// expedition can be loaded when the line is shared between several drivers.
func NewAllocation(id kernel.UUID, driverID kernel.UUID) (*Allocation, error) {
	allocation := &Allocation{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		allocation.setID(id),
		allocation.setDriverID(driverID),
	); err != nil {
		return nil, err
	}

	return allocation, nil
}

// RestoreAllocation reconstructs an Allocation from persistent storage,
// including its quantities and optional vehicle override.
func RestoreAllocation(
	id kernel.UUID,
	driverID kernel.UUID,
	vehicleID *kernel.UUID,
	boxes float64,
	weight float64,
) (*Allocation, error) {
	allocation := &Allocation{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		allocation.setID(id),
		allocation.setDriverID(driverID),
		allocation.SetVehicle(vehicleID),
		allocation.SetQuantities(boxes, weight),
	); err != nil {
		return nil, err
	}

	return allocation, nil
}

// IsEqual compares two allocations by their unique identifiers.
func (a *Allocation) IsEqual(other *Allocation) bool {
	if other == nil {
		return false
	}
	return a.id.IsEqual(other.id)
}

// Validate checks if the Allocation was properly constructed.
// The zero value of Allocation is invalid and will fail this validation.
func (a *Allocation) Validate() error {
	if a == nil {
		return ErrAllocationIsNotConstructed
	}
	return a.guard.Validate(ErrAllocationIsNotConstructed)
}

// ID returns the unique identifier of the allocation.
func (a *Allocation) ID() kernel.UUID {
	return a.id
}

// DriverID returns the driver this share belongs to.
func (a *Allocation) DriverID() kernel.UUID {
	return a.driverID
}

// VehicleID returns the vehicle override for this share, or nil when the
// share inherits the vehicle from the line or the expedition.
func (a *Allocation) VehicleID() *kernel.UUID {
	return a.vehicleID
}

// Boxes returns the number of boxes carried by the driver.
func (a *Allocation) Boxes() float64 {
	return a.boxes
}

// Weight returns the weight in kilograms carried by the driver.
func (a *Allocation) Weight() float64 {
	return a.weight
}

// IsFilled reports whether the allocation carries anything.
// A shared line cannot be loaded while any of its allocations is unfilled.
func (a *Allocation) IsFilled() bool {
	return a.boxes > 0 || a.weight > 0
}

// SetQuantities sets the boxes and weight for this share.
// Both values must be non-negative.
func (a *Allocation) SetQuantities(boxes float64, weight float64) error {
	if boxes < 0 {
		return ErrBoxesIsOutOfRange
	}
	if weight < 0 {
		return ErrWeightIsOutOfRange
	}

	a.boxes = boxes
	a.weight = weight
	return nil
}

// SetVehicle sets or clears the vehicle override for this share.
func (a *Allocation) SetVehicle(vehicleID *kernel.UUID) error {
	if vehicleID != nil {
		if err := vehicleID.Validate(); err != nil {
			return err
		}
	}

	a.vehicleID = vehicleID
	return nil
}

// absorb merges another share into this one, summing quantities. When this
// share has no vehicle override, it inherits the other's. Used when a
// participant swap collapses two shares of the same driver into one.
func (a *Allocation) absorb(other *Allocation) {
	a.boxes += other.boxes
	a.weight += other.weight
	if a.vehicleID == nil {
		a.vehicleID = other.vehicleID
	}
}

// reassign hands this share over to another driver. Quantities and the
// vehicle override travel with the share.
func (a *Allocation) reassign(driverID kernel.UUID) error {
	return a.setDriverID(driverID)
}

// setID sets the allocation's unique identifier with validation.
func (a *Allocation) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	a.id = id
	return nil
}

// setDriverID sets the owning driver with validation.
func (a *Allocation) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	a.driverID = driverID
	return nil
}
