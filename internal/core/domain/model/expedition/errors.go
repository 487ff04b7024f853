package expedition

import (
	"fmt"
	"strings"

	"expedition/internal/core/domain/model/kernel"
)

// LockedError is the policy error raised when an edit hits a locked
// expedition (state loaded or later) and the actor does not hold the
// dispatcher capability.
type LockedError struct {
	// Action names the restricted edit, e.g. "change main driver".
	Action string
}

func (e *LockedError) Error() string {
	return fmt.Sprintf(
		"expedition is already loaded/dispatched: %s is restricted to dispatchers", e.Action)
}

// LoadValidationError is the precondition error raised when an expedition
// cannot enter the loaded state because a line shared by several drivers has
// missing or empty allocations. It names the offending delivery and drivers
// so the caller can fix the allocations and retry.
type LoadValidationError struct {
	DeliveryOrderID kernel.UUID
	MissingDrivers  []kernel.UUID
	UnfilledDrivers []kernel.UUID
}

func (e *LoadValidationError) Error() string {
	var parts []string
	if len(e.MissingDrivers) > 0 {
		parts = append(parts, fmt.Sprintf("missing allocations for drivers %s", joinIDs(e.MissingDrivers)))
	}
	if len(e.UnfilledDrivers) > 0 {
		parts = append(parts, fmt.Sprintf("zero boxes and zero weight for drivers %s", joinIDs(e.UnfilledDrivers)))
	}
	return fmt.Sprintf(
		"cannot set expedition to loaded: delivery %s has %s",
		e.DeliveryOrderID, strings.Join(parts, " and "))
}

func joinIDs(ids []kernel.UUID) string {
	strs := make([]string, 0, len(ids))
	for _, id := range ids {
		strs = append(strs, id.String())
	}
	return strings.Join(strs, ", ")
}
