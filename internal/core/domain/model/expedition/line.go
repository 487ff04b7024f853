package expedition

import (
	"errors"

	"expedition/internal/core/domain/model/kernel"
	"expedition/internal/pkg/errs"
	"expedition/internal/pkg/guard"
)

// Domain errors for line operations.
var (
	// ErrParticipantsAreRequired is returned when a line would be left without drivers.
	ErrParticipantsAreRequired = errs.NewValueIsRequiredError("participants")
	// ErrParticipantNotFound is returned when an operation names a driver that
	// does not participate in the line.
	ErrParticipantNotFound = errors.New("driver does not participate in the line")
	// ErrParticipantAlreadyPresent is returned when adding a driver that already
	// participates in the line.
	ErrParticipantAlreadyPresent = errors.New("driver already participates in the line")
	// ErrAllocationNotFound is returned when an operation names an allocation
	// that does not belong to the line.
	ErrAllocationNotFound = errors.New("allocation not found on the line")
	// ErrLineIsNotConstructed is returned when using an improperly initialized Line.
	ErrLineIsNotConstructed = errors.New("Line must be created via NewLine constructor")
)

// Line ties one delivery order to an expedition. It carries the stop's
// position in the route, the set of participating drivers, and one allocation
// per participant describing that driver's share of the load.
//
// Invariants maintained by the line:
//   - At least one participant at all times
//   - Participants and allocations stay in bijection: every participant owns
//     exactly one allocation, and no allocation is orphaned
type Line struct {
	// id uniquely identifies the line
	id kernel.UUID
	// deliveryOrderID is the external delivery order this stop fulfills
	deliveryOrderID kernel.UUID
	// sequence is the 1-based position of the stop in the route
	sequence int
	// vehicleID optionally overrides the expedition's default vehicle for this stop
	vehicleID *kernel.UUID
	// participants are the drivers working this stop, in stable order
	participants []kernel.UUID
	// allocations are the per-driver shares, one per participant
	allocations []*Allocation
	// guard ensures the line was properly constructed
	guard guard.ConstructorGuard
}

// NewLine creates a line for a delivery order with a single participating
// driver. The driver's allocation is created empty alongside; shared lines
// arise later through reassignment, never at creation.
func NewLine(id kernel.UUID, deliveryOrderID kernel.UUID, driverID kernel.UUID) (*Line, error) {
	line := &Line{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		line.setID(id),
		line.setDeliveryOrderID(deliveryOrderID),
	); err != nil {
		return nil, err
	}

	if err := driverID.Validate(); err != nil {
		return nil, err
	}

	allocation, err := NewAllocation(kernel.NewUUID(), driverID)
	if err != nil {
		return nil, err
	}

	line.participants = []kernel.UUID{driverID}
	line.allocations = []*Allocation{allocation}
	return line, nil
}

// RestoreLine reconstructs a Line from persistent storage.
// Participants and allocations must already satisfy the bijection invariant.
func RestoreLine(
	id kernel.UUID,
	deliveryOrderID kernel.UUID,
	sequence int,
	vehicleID *kernel.UUID,
	participants []kernel.UUID,
	allocations []*Allocation,
) (*Line, error) {
	line := &Line{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		line.setID(id),
		line.setDeliveryOrderID(deliveryOrderID),
		line.SetVehicle(vehicleID),
		line.setParticipants(participants),
		line.setAllocations(allocations),
	); err != nil {
		return nil, err
	}

	line.sequence = sequence
	return line, nil
}

// IsEqual compares two lines by their unique identifiers.
func (l *Line) IsEqual(other *Line) bool {
	if other == nil {
		return false
	}
	return l.id.IsEqual(other.id)
}

// Validate checks if the Line was properly constructed.
// The zero value of Line is invalid and will fail this validation.
func (l *Line) Validate() error {
	if l == nil {
		return ErrLineIsNotConstructed
	}
	return l.guard.Validate(ErrLineIsNotConstructed)
}

// ID returns the unique identifier of the line.
func (l *Line) ID() kernel.UUID {
	return l.id
}

// DeliveryOrderID returns the delivery order this stop fulfills.
func (l *Line) DeliveryOrderID() kernel.UUID {
	return l.deliveryOrderID
}

// Sequence returns the 1-based position of the stop in the route.
// Lines not yet sequenced report zero.
func (l *Line) Sequence() int {
	return l.sequence
}

// VehicleID returns the stop's vehicle override, or nil when the stop
// inherits the expedition's default vehicle.
func (l *Line) VehicleID() *kernel.UUID {
	return l.vehicleID
}

// Participants returns the drivers working this stop.
// The returned slice is a copy to prevent external modification.
func (l *Line) Participants() []kernel.UUID {
	out := make([]kernel.UUID, len(l.participants))
	copy(out, l.participants)
	return out
}

// Allocations returns the per-driver shares of this stop.
// The returned slice is a copy to prevent external modification.
func (l *Line) Allocations() []*Allocation {
	out := make([]*Allocation, len(l.allocations))
	copy(out, l.allocations)
	return out
}

// AllocationFor returns the share owned by the given driver, or nil when the
// driver does not participate in the line.
func (l *Line) AllocationFor(driverID kernel.UUID) *Allocation {
	for _, allocation := range l.allocations {
		if allocation.DriverID().IsEqual(driverID) {
			return allocation
		}
	}
	return nil
}

// IsShared reports whether more than one driver participates in the line.
// Shared lines require filled allocations before the expedition can be loaded.
func (l *Line) IsShared() bool {
	return len(l.participants) > 1
}

// HasParticipant reports whether the given driver works this stop.
func (l *Line) HasParticipant(driverID kernel.UUID) bool {
	for _, participant := range l.participants {
		if participant.IsEqual(driverID) {
			return true
		}
	}
	return false
}

// TotalBoxes sums the boxes over all shares of the stop.
func (l *Line) TotalBoxes() float64 {
	var total float64
	for _, allocation := range l.allocations {
		total += allocation.Boxes()
	}
	return total
}

// TotalWeight sums the weight over all shares of the stop.
func (l *Line) TotalWeight() float64 {
	var total float64
	for _, allocation := range l.allocations {
		total += allocation.Weight()
	}
	return total
}

// SetVehicle sets or clears the vehicle override for this stop.
func (l *Line) SetVehicle(vehicleID *kernel.UUID) error {
	if vehicleID != nil {
		if err := vehicleID.Validate(); err != nil {
			return err
		}
	}

	l.vehicleID = vehicleID
	return nil
}

// AddParticipant adds a driver to the stop and creates an empty share for
// them. Fails when the driver already participates.
func (l *Line) AddParticipant(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	if l.HasParticipant(driverID) {
		return ErrParticipantAlreadyPresent
	}

	allocation, err := NewAllocation(kernel.NewUUID(), driverID)
	if err != nil {
		return err
	}

	l.participants = append(l.participants, driverID)
	l.allocations = append(l.allocations, allocation)
	return nil
}

// RemoveParticipant removes a driver from the stop together with their share.
// Fails when the driver does not participate or when removal would leave the
// stop without drivers.
func (l *Line) RemoveParticipant(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	if !l.HasParticipant(driverID) {
		return ErrParticipantNotFound
	}
	if len(l.participants) == 1 {
		return ErrParticipantsAreRequired
	}

	l.participants = removeID(l.participants, driverID)

	kept := l.allocations[:0]
	for _, allocation := range l.allocations {
		if !allocation.DriverID().IsEqual(driverID) {
			kept = append(kept, allocation)
		}
	}
	l.allocations = kept
	return nil
}

// ReplaceParticipant hands one driver's position on the stop over to another.
// The outgoing driver's share follows them: when the incoming driver already
// participates, the two shares are merged by summing quantities; otherwise the
// share is simply renamed to the incoming driver.
func (l *Line) ReplaceParticipant(oldDriverID kernel.UUID, newDriverID kernel.UUID) error {
	if err := errors.Join(oldDriverID.Validate(), newDriverID.Validate()); err != nil {
		return err
	}
	if !l.HasParticipant(oldDriverID) {
		return ErrParticipantNotFound
	}
	if oldDriverID.IsEqual(newDriverID) {
		return nil
	}

	outgoing := l.AllocationFor(oldDriverID)

	if l.HasParticipant(newDriverID) {
		l.AllocationFor(newDriverID).absorb(outgoing)
		return l.RemoveParticipant(oldDriverID)
	}

	for i, participant := range l.participants {
		if participant.IsEqual(oldDriverID) {
			l.participants[i] = newDriverID
		}
	}
	return outgoing.reassign(newDriverID)
}

// SetParticipants replaces the participant set wholesale, realigning the
// shares afterwards: existing shares of surviving drivers are kept, shares
// of removed drivers are dropped, and new drivers get empty shares.
// Duplicates in the input are collapsed, first occurrence wins.
func (l *Line) SetParticipants(participants []kernel.UUID) error {
	if len(participants) == 0 {
		return ErrParticipantsAreRequired
	}

	deduped := make([]kernel.UUID, 0, len(participants))
	for _, participant := range participants {
		if err := participant.Validate(); err != nil {
			return err
		}
		duplicate := false
		for _, seen := range deduped {
			if seen.IsEqual(participant) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			deduped = append(deduped, participant)
		}
	}

	l.participants = deduped
	return l.SyncAllocations(nil)
}

// SyncAllocations realigns the share set with the participant set: a share is
// created for every participant missing one, and shares of drivers who no
// longer participate are dropped. vehicleFor supplies the vehicle override
// for newly created shares and may be nil.
func (l *Line) SyncAllocations(vehicleFor func(driverID kernel.UUID) *kernel.UUID) error {
	kept := make([]*Allocation, 0, len(l.participants))
	for _, allocation := range l.allocations {
		if l.HasParticipant(allocation.DriverID()) {
			kept = append(kept, allocation)
		}
	}
	l.allocations = kept

	for _, participant := range l.participants {
		if l.AllocationFor(participant) != nil {
			continue
		}

		allocation, err := NewAllocation(kernel.NewUUID(), participant)
		if err != nil {
			return err
		}
		if vehicleFor != nil {
			if err := allocation.SetVehicle(vehicleFor(participant)); err != nil {
				return err
			}
		}
		l.allocations = append(l.allocations, allocation)
	}
	return nil
}

// setSequence positions the stop in the route. Sequencing is owned by the
// expedition, which keeps the numbering dense.
func (l *Line) setSequence(sequence int) {
	l.sequence = sequence
}

// setID sets the line's unique identifier with validation.
func (l *Line) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	l.id = id
	return nil
}

// setDeliveryOrderID sets the fulfilled delivery order with validation.
func (l *Line) setDeliveryOrderID(deliveryOrderID kernel.UUID) error {
	if err := deliveryOrderID.Validate(); err != nil {
		return err
	}

	l.deliveryOrderID = deliveryOrderID
	return nil
}

// setParticipants sets the participant set during restoration.
func (l *Line) setParticipants(participants []kernel.UUID) error {
	if len(participants) == 0 {
		return ErrParticipantsAreRequired
	}

	for _, participant := range participants {
		if err := participant.Validate(); err != nil {
			return err
		}
	}

	l.participants = make([]kernel.UUID, len(participants))
	copy(l.participants, participants)
	return nil
}

// setAllocations sets the share set during restoration.
func (l *Line) setAllocations(allocations []*Allocation) error {
	for _, allocation := range allocations {
		if err := allocation.Validate(); err != nil {
			return err
		}
	}

	l.allocations = make([]*Allocation, len(allocations))
	copy(l.allocations, allocations)
	return nil
}

// removeID removes the first occurrence of id from ids, preserving order.
func removeID(ids []kernel.UUID, id kernel.UUID) []kernel.UUID {
	out := ids[:0]
	for _, candidate := range ids {
		if !candidate.IsEqual(id) {
			out = append(out, candidate)
		}
	}
	return out
}
