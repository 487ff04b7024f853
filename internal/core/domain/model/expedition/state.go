package expedition

import (
	"fmt"
	"time"

	"expedition/internal/core/domain/model/kernel"
	"expedition/internal/pkg/errs"
)

// State represents the lifecycle state of an expedition.
//
// The forward flow is fixed:
//
//	Planned -> Preparing -> Ready -> Loaded -> Dispatched -> Delivered -> Done
//
// Hold is a side-state reachable from any state; leaving it returns to the
// state remembered before entering (see Expedition.StepBack). From Loaded
// onwards the expedition counts as locked and edits to assignment data are
// restricted to dispatchers.
type State int

const (
	// Unknown represents an invalid or undefined state.
	Unknown State = iota

	// Planned is the initial state of every expedition.
	Planned

	// Preparing means the warehouse is picking the goods.
	Preparing

	// Ready means all goods are staged and waiting for the vehicle.
	Ready

	// Loaded means the route is on the truck. First locked state; entering
	// it requires every shared line to have filled allocations.
	Loaded

	// Dispatched means the vehicle has left.
	Dispatched

	// Delivered means all deliveries of the route were handed over.
	Delivered

	// Done is the terminal state of the forward flow.
	Done

	// Hold is a recoverable suspension entered through an issue report.
	Hold
)

// stateFlow is the forward lifecycle order, used for step-back navigation.
func stateFlow() []State {
	return []State{Planned, Preparing, Ready, Loaded, Dispatched, Delivered, Done}
}

func getStateStrings() map[State]string {
	return map[State]string{
		Unknown:    "Unknown",
		Planned:    "planned",
		Preparing:  "preparing",
		Ready:      "ready",
		Loaded:     "loaded",
		Dispatched: "dispatched",
		Delivered:  "delivered",
		Done:       "done",
		Hold:       "hold",
	}
}

// StateFromString parses the persisted textual form of a State.
func StateFromString(s string) (State, error) {
	for state, str := range getStateStrings() {
		if str == s && state != Unknown {
			return state, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("state", fmt.Errorf("%q is not a valid state", s))
}

// Validate checks that the State is one of the defined lifecycle states.
func (s State) Validate() error {
	if s <= Unknown || s > Hold {
		return errs.NewValueIsInvalidErrorWithCause("state", fmt.Errorf("%d is not a valid state", s))
	}
	return nil
}

// String returns the lower-case name of the state, as persisted and exposed
// over the API.
func (s State) String() string {
	if str, ok := getStateStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsLocked reports whether the state stabilizes the expedition. While
// locked, assignment data may only be edited by dispatchers.
func (s State) IsLocked() bool {
	return s == Loaded || s == Dispatched || s == Delivered || s == Done
}

// IsForward reports whether the state belongs to the forward flow
// (everything but Hold).
func (s State) IsForward() bool {
	return s.Validate() == nil && s != Hold
}

// position returns the index of the state in the forward flow, or -1 for
// states outside it (Unknown, Hold).
func (s State) position() int {
	for i, st := range stateFlow() {
		if st == s {
			return i
		}
	}
	return -1
}

// Previous returns the state immediately preceding this one in the forward
// flow. The second return value is false for Planned (nothing precedes it)
// and for Hold (its predecessor is remembered per expedition, not fixed).
func (s State) Previous() (State, bool) {
	flow := stateFlow()
	for i, st := range flow {
		if st == s {
			if i == 0 {
				return Unknown, false
			}
			return flow[i-1], true
		}
	}
	return Unknown, false
}

// StateChange is one entry of the expedition's transition audit log,
// recording who moved the expedition between which states and when.
type StateChange struct {
	From      State
	To        State
	ChangedBy kernel.UUID
	ChangedAt time.Time
}
