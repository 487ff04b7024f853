package expedition

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"expedition/internal/core/domain/model/kernel"
	"expedition/internal/pkg/errs"
	"expedition/internal/pkg/guard"
)

// Domain errors for expedition operations.
var (
	// ErrExpeditionIsNotConstructed is returned when using an improperly initialized Expedition.
	ErrExpeditionIsNotConstructed = errors.New("Expedition must be created via NewExpedition constructor")
	// ErrLineNotFound is returned when an operation names a line that does not
	// belong to the expedition.
	ErrLineNotFound = errors.New("line not found on the expedition")
	// ErrDeliveryOrderAlreadyRouted is returned when adding a line for a
	// delivery order the expedition already carries.
	ErrDeliveryOrderAlreadyRouted = errors.New("delivery order is already routed on the expedition")
	// ErrStateChangeIsNotForward is returned when Advance is asked to move the
	// expedition backwards or into Hold.
	ErrStateChangeIsNotForward = errors.New("state change must move forward in the lifecycle")
	// ErrLastLineCannotBeRemoved is returned when removing the only line of an
	// expedition that has already left planning.
	ErrLastLineCannotBeRemoved = errors.New("cannot remove the last line of an active expedition")
)

// Expedition is the aggregate root of the dispatch core. It represents one
// driver's route on one date for one company, carries the ordered stops
// (lines), drives the lifecycle state machine, and keeps the transition
// audit log.
//
// Key responsibilities:
//   - Enforcing the forward-only lifecycle and the load precondition
//   - Keeping the route numbering dense (stops numbered 1..N without gaps)
//   - Keeping the main driver present on every line
//   - Restricting edits of locked expeditions to dispatchers
//
// Business rules:
//   - One expedition per (company, date, main driver); enforced by storage
//   - A delivery order appears at most once per expedition
//   - Shared stops need filled per-driver shares before loading
type Expedition struct {
	// id uniquely identifies the expedition
	id kernel.UUID
	// companyID scopes the expedition to an operating company
	companyID kernel.UUID
	// date is the dispatch date of the route
	date kernel.Date
	// driverID is the main driver owning the route
	driverID kernel.UUID
	// defaultVehicleID is the vehicle used for stops without an override
	defaultVehicleID *kernel.UUID
	// state is the current lifecycle state
	state State
	// stateBeforeHold remembers where to resume after Hold
	stateBeforeHold State
	// issue holds the report that put the expedition on hold, if any
	issue *Issue
	// lines are the ordered stops of the route
	lines []*Line
	// stateLog is the transition audit trail, oldest first
	stateLog []StateChange
	// guard ensures the expedition was properly constructed
	guard guard.ConstructorGuard
}

// NewExpedition creates a fresh expedition in the planned state with no
// stops. The (companyID, date, driverID) triple is the natural key of the
// expedition; the repository enforces its uniqueness.
func NewExpedition(
	id kernel.UUID,
	companyID kernel.UUID,
	date kernel.Date,
	driverID kernel.UUID,
) (*Expedition, error) {
	expedition := &Expedition{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		expedition.setID(id),
		expedition.setCompanyID(companyID),
		expedition.setDate(date),
		expedition.setDriverID(driverID),
	); err != nil {
		return nil, err
	}

	expedition.state = Planned
	return expedition, nil
}

// RestoreExpedition reconstructs an Expedition aggregate from persistent
// storage, including its stops, issue and transition log.
func RestoreExpedition(
	id kernel.UUID,
	companyID kernel.UUID,
	date kernel.Date,
	driverID kernel.UUID,
	defaultVehicleID *kernel.UUID,
	state State,
	stateBeforeHold State,
	issue *Issue,
	lines []*Line,
	stateLog []StateChange,
) (*Expedition, error) {
	expedition := &Expedition{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		expedition.setID(id),
		expedition.setCompanyID(companyID),
		expedition.setDate(date),
		expedition.setDriverID(driverID),
		expedition.SetDefaultVehicle(defaultVehicleID),
		state.Validate(),
		expedition.setLines(lines),
	); err != nil {
		return nil, err
	}

	expedition.state = state
	expedition.stateBeforeHold = stateBeforeHold
	expedition.issue = issue
	expedition.stateLog = make([]StateChange, len(stateLog))
	copy(expedition.stateLog, stateLog)
	return expedition, nil
}

// IsEqual compares two expeditions by their unique identifiers.
func (e *Expedition) IsEqual(other *Expedition) bool {
	if other == nil {
		return false
	}
	return e.id.IsEqual(other.id)
}

// Validate checks if the Expedition was properly constructed.
// The zero value of Expedition is invalid and will fail this validation.
func (e *Expedition) Validate() error {
	if e == nil {
		return ErrExpeditionIsNotConstructed
	}
	return e.guard.Validate(ErrExpeditionIsNotConstructed)
}

// ID returns the unique identifier of the expedition.
func (e *Expedition) ID() kernel.UUID {
	return e.id
}

// CompanyID returns the operating company of the expedition.
func (e *Expedition) CompanyID() kernel.UUID {
	return e.companyID
}

// Date returns the dispatch date of the route.
func (e *Expedition) Date() kernel.Date {
	return e.date
}

// DriverID returns the main driver owning the route.
func (e *Expedition) DriverID() kernel.UUID {
	return e.driverID
}

// DefaultVehicleID returns the expedition's default vehicle, or nil when
// vehicle resolution falls through to the driver's default.
func (e *Expedition) DefaultVehicleID() *kernel.UUID {
	return e.defaultVehicleID
}

// State returns the current lifecycle state.
func (e *Expedition) State() State {
	return e.state
}

// StateBeforeHold returns the state the expedition will resume to when the
// hold is lifted. Meaningful only while the expedition is on hold.
func (e *Expedition) StateBeforeHold() State {
	return e.stateBeforeHold
}

// Issue returns the report that put the expedition on hold, or nil.
func (e *Expedition) Issue() *Issue {
	return e.issue
}

// Lines returns the stops of the route in sequence order.
// The returned slice is a copy to prevent external modification.
func (e *Expedition) Lines() []*Line {
	out := make([]*Line, len(e.lines))
	copy(out, e.lines)
	return out
}

// StateLog returns the transition audit trail, oldest first.
// The returned slice is a copy to prevent external modification.
func (e *Expedition) StateLog() []StateChange {
	out := make([]StateChange, len(e.stateLog))
	copy(out, e.stateLog)
	return out
}

// LineByID returns the stop with the given identifier, or nil.
func (e *Expedition) LineByID(lineID kernel.UUID) *Line {
	for _, line := range e.lines {
		if line.ID().IsEqual(lineID) {
			return line
		}
	}
	return nil
}

// LineByDeliveryOrder returns the stop fulfilling the given delivery order,
// or nil.
func (e *Expedition) LineByDeliveryOrder(deliveryOrderID kernel.UUID) *Line {
	for _, line := range e.lines {
		if line.DeliveryOrderID().IsEqual(deliveryOrderID) {
			return line
		}
	}
	return nil
}

// TotalBoxes sums the boxes over all stops of the route.
func (e *Expedition) TotalBoxes() float64 {
	var total float64
	for _, line := range e.lines {
		total += line.TotalBoxes()
	}
	return total
}

// TotalWeight sums the weight over all stops of the route.
func (e *Expedition) TotalWeight() float64 {
	var total float64
	for _, line := range e.lines {
		total += line.TotalWeight()
	}
	return total
}

// IsLocked reports whether the expedition is in a locked state.
func (e *Expedition) IsLocked() bool {
	return e.state.IsLocked()
}

// AuthorizeEdit checks that assignment data may be edited in the current
// state. Locked expeditions accept edits from dispatchers only; the returned
// *LockedError names the rejected action.
func (e *Expedition) AuthorizeEdit(isDispatcher bool, action string) error {
	if e.IsLocked() && !isDispatcher {
		return &LockedError{Action: action}
	}
	return nil
}

// Advance moves the expedition forward to the target state. Moving to the
// current state is a no-op; moving backwards or into Hold is rejected.
// Crossing into Loaded (or past it) runs the load precondition: every shared
// stop must have one filled share per participating driver.
//
// Each effective transition is appended to the audit log.
func (e *Expedition) Advance(target State, changedBy kernel.UUID) error {
	if err := errors.Join(target.Validate(), changedBy.Validate()); err != nil {
		return err
	}
	if target == e.state {
		return nil
	}
	if !target.IsForward() || e.state == Hold {
		return ErrStateChangeIsNotForward
	}
	if target.position() < e.state.position() {
		return ErrStateChangeIsNotForward
	}

	if e.state.position() < Loaded.position() && target.position() >= Loaded.position() {
		if err := e.ValidateBeforeLoaded(); err != nil {
			return err
		}
	}

	e.logTransition(target, changedBy)
	e.state = target
	return nil
}

// StepBack moves the expedition one step backwards in the lifecycle. From
// Hold it resumes the state remembered when the hold was entered and clears
// the issue. Stepping back from Planned is a no-op.
func (e *Expedition) StepBack(changedBy kernel.UUID) error {
	if err := changedBy.Validate(); err != nil {
		return err
	}

	if e.state == Hold {
		resumeTo := e.stateBeforeHold
		if resumeTo.Validate() != nil {
			resumeTo = Planned
		}
		e.logTransition(resumeTo, changedBy)
		e.state = resumeTo
		e.stateBeforeHold = Unknown
		e.issue = nil
		return nil
	}

	previous, ok := e.state.Previous()
	if !ok {
		return nil
	}

	e.logTransition(previous, changedBy)
	e.state = previous
	return nil
}

// HoldWithIssue suspends the expedition with a mandatory issue report. The
// current state is remembered so StepBack can resume it later. Holding an
// expedition already on hold replaces the issue and keeps the remembered
// state.
func (e *Expedition) HoldWithIssue(issue Issue, changedBy kernel.UUID) error {
	if err := errors.Join(issue.Validate(), changedBy.Validate()); err != nil {
		return err
	}

	if e.state != Hold {
		e.stateBeforeHold = e.state
		e.logTransition(Hold, changedBy)
		e.state = Hold
	}
	e.issue = &issue
	return nil
}

// ResetToPlanned returns the expedition to the planned state regardless of
// where it is in the lifecycle, clearing any issue. Resetting a locked
// expedition is restricted to dispatchers.
func (e *Expedition) ResetToPlanned(changedBy kernel.UUID, isDispatcher bool) error {
	if err := changedBy.Validate(); err != nil {
		return err
	}
	if err := e.AuthorizeEdit(isDispatcher, "reset to planned"); err != nil {
		return err
	}
	if e.state == Planned {
		return nil
	}

	e.logTransition(Planned, changedBy)
	e.state = Planned
	e.stateBeforeHold = Unknown
	e.issue = nil
	return nil
}

// ValidateBeforeLoaded runs the load precondition over all stops. A stop
// worked by several drivers must carry one share per driver, and every one
// of those shares must hold boxes or weight. The first offending stop is
// reported with the drivers that block it.
func (e *Expedition) ValidateBeforeLoaded() error {
	for _, line := range e.lines {
		if !line.IsShared() {
			continue
		}

		var missing, unfilled []kernel.UUID
		for _, participant := range line.Participants() {
			allocation := line.AllocationFor(participant)
			switch {
			case allocation == nil:
				missing = append(missing, participant)
			case !allocation.IsFilled():
				unfilled = append(unfilled, participant)
			}
		}

		if len(missing) > 0 || len(unfilled) > 0 {
			return &LoadValidationError{
				DeliveryOrderID: line.DeliveryOrderID(),
				MissingDrivers:  missing,
				UnfilledDrivers: unfilled,
			}
		}
	}
	return nil
}

// SetDefaultVehicle sets or clears the expedition's default vehicle.
func (e *Expedition) SetDefaultVehicle(vehicleID *kernel.UUID) error {
	if vehicleID != nil {
		if err := vehicleID.Validate(); err != nil {
			return err
		}
	}

	e.defaultVehicleID = vehicleID
	return nil
}

// ChangeMainDriver hands the whole route over to another driver. The old
// main driver's position on every stop is transferred to the new driver
// (shares merge when the new driver already helps on a stop); stops worked
// only by helpers gain the new driver with an empty share. When a vehicle
// is proposed it becomes the new default; without a proposal the current
// default is kept.
//
// On locked expeditions this is a dispatcher-only operation.
func (e *Expedition) ChangeMainDriver(
	newDriverID kernel.UUID,
	proposedVehicleID *kernel.UUID,
	isDispatcher bool,
) error {
	if err := newDriverID.Validate(); err != nil {
		return err
	}
	if err := e.AuthorizeEdit(isDispatcher, "change main driver"); err != nil {
		return err
	}
	if newDriverID.IsEqual(e.driverID) {
		if proposedVehicleID == nil {
			return nil
		}
		return e.SetDefaultVehicle(proposedVehicleID)
	}

	oldDriverID := e.driverID
	for _, line := range e.lines {
		if line.HasParticipant(oldDriverID) {
			if err := line.ReplaceParticipant(oldDriverID, newDriverID); err != nil {
				return err
			}
			continue
		}
		if line.HasParticipant(newDriverID) {
			continue
		}
		if err := line.AddParticipant(newDriverID); err != nil {
			return err
		}
	}

	e.driverID = newDriverID
	if proposedVehicleID == nil {
		return nil
	}
	return e.SetDefaultVehicle(proposedVehicleID)
}

// AddLine routes a delivery order on this expedition as a new stop worked by
// the main driver, appended at the end of the route. Fails when the
// expedition already carries the delivery order.
func (e *Expedition) AddLine(deliveryOrderID kernel.UUID) (*Line, error) {
	if err := deliveryOrderID.Validate(); err != nil {
		return nil, err
	}
	if e.LineByDeliveryOrder(deliveryOrderID) != nil {
		return nil, ErrDeliveryOrderAlreadyRouted
	}

	line, err := NewLine(kernel.NewUUID(), deliveryOrderID, e.driverID)
	if err != nil {
		return nil, err
	}

	e.lines = append(e.lines, line)
	e.resequence()
	return line, nil
}

// AttachLine adopts an existing stop, typically taken from another
// expedition during a driver handover. The stop joins the end of the route
// with its participants as they are; callers set the participant list before
// attaching. Fails when this expedition already carries the stop's delivery
// order.
func (e *Expedition) AttachLine(line *Line) error {
	if err := line.Validate(); err != nil {
		return err
	}
	if e.LineByDeliveryOrder(line.DeliveryOrderID()) != nil {
		return ErrDeliveryOrderAlreadyRouted
	}

	line.setSequence(0)
	e.lines = append(e.lines, line)
	e.resequence()
	return nil
}

// TakeLine detaches a stop from the route and returns it, renumbering the
// remaining stops densely. Used when a stop moves to another driver's
// expedition. Taking the last stop of an expedition that already left
// planning is rejected.
func (e *Expedition) TakeLine(lineID kernel.UUID) (*Line, error) {
	if err := lineID.Validate(); err != nil {
		return nil, err
	}

	line := e.LineByID(lineID)
	if line == nil {
		return nil, ErrLineNotFound
	}
	if len(e.lines) == 1 && e.state != Planned {
		return nil, ErrLastLineCannotBeRemoved
	}

	kept := e.lines[:0]
	for _, candidate := range e.lines {
		if !candidate.IsEqual(line) {
			kept = append(kept, candidate)
		}
	}
	e.lines = kept
	e.resequence()
	return line, nil
}

// RemoveLine drops a stop from the route and renumbers the remaining stops.
// On locked expeditions this is a dispatcher-only operation.
func (e *Expedition) RemoveLine(lineID kernel.UUID, isDispatcher bool) (*Line, error) {
	if err := e.AuthorizeEdit(isDispatcher, "remove line"); err != nil {
		return nil, err
	}
	return e.TakeLine(lineID)
}

// IsEmpty reports whether the expedition has no stops left.
func (e *Expedition) IsEmpty() bool {
	return len(e.lines) == 0
}

// resequence renumbers the stops densely from 1, keeping the existing
// relative order. Stops without a sequence yet (zero) go to the end of the
// route in insertion order.
func (e *Expedition) resequence() {
	sort.SliceStable(e.lines, func(i, j int) bool {
		si, sj := e.lines[i].Sequence(), e.lines[j].Sequence()
		if si == 0 {
			return false
		}
		if sj == 0 {
			return true
		}
		return si < sj
	})

	for i, line := range e.lines {
		line.setSequence(i + 1)
	}
}

// logTransition appends one entry to the audit trail.
func (e *Expedition) logTransition(to State, changedBy kernel.UUID) {
	e.stateLog = append(e.stateLog, StateChange{
		From:      e.state,
		To:        to,
		ChangedBy: changedBy,
		ChangedAt: time.Now().UTC(),
	})
}

// setID sets the expedition's unique identifier with validation.
func (e *Expedition) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	e.id = id
	return nil
}

// setCompanyID sets the operating company with validation.
func (e *Expedition) setCompanyID(companyID kernel.UUID) error {
	if err := companyID.Validate(); err != nil {
		return err
	}

	e.companyID = companyID
	return nil
}

// setDate sets the dispatch date with validation.
func (e *Expedition) setDate(date kernel.Date) error {
	if err := date.Validate(); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrValueIsRequired, err)
	}

	e.date = date
	return nil
}

// setDriverID sets the main driver with validation.
func (e *Expedition) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	e.driverID = driverID
	return nil
}

// setLines sets the stop collection during restoration.
func (e *Expedition) setLines(lines []*Line) error {
	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return err
		}
	}

	e.lines = make([]*Line, len(lines))
	copy(e.lines, lines)
	e.resequence()
	return nil
}
