package kernel

import (
	"fmt"
	"time"

	"expedition/internal/pkg/errs"
)

const day = 24 * time.Hour

// TimeWindow is a value object describing a delivery time window within a
// day, as offsets from midnight. A delivery may have no window at all; that
// state is represented by the zero value, for which IsZero reports true.
//
// The window end is allowed to be at or before the start: such windows wrap
// past midnight and PlannedRange rolls the end over to the next day.
type TimeWindow struct {
	from time.Duration
	to   time.Duration
	set  bool
}

// NewTimeWindow creates a TimeWindow from midnight offsets. Both offsets
// must lie within [0, 24h).
func NewTimeWindow(from, to time.Duration) (TimeWindow, error) {
	if from < 0 || from >= day {
		return TimeWindow{}, errs.NewValueIsOutOfRangeError("time window start", from.String(), "0h", "24h")
	}
	if to < 0 || to >= day {
		return TimeWindow{}, errs.NewValueIsOutOfRangeError("time window end", to.String(), "0h", "24h")
	}
	return TimeWindow{from: from, to: to, set: true}, nil
}

// From returns the window start as an offset from midnight.
func (w TimeWindow) From() time.Duration {
	return w.from
}

// To returns the window end as an offset from midnight.
func (w TimeWindow) To() time.Duration {
	return w.to
}

// IsZero reports whether no window was set.
func (w TimeWindow) IsZero() bool {
	return !w.set
}

// PlannedRange anchors the window on the given day and returns the concrete
// start and end instants. When the end offset is not after the start offset
// the end rolls over to the next day, so a 22:00-04:00 window yields an end
// on the following date. For a zero window the whole day is returned.
func (w TimeWindow) PlannedRange(d Date) (time.Time, time.Time) {
	start := d.Time().Add(w.from)
	end := d.Time().Add(w.to)
	if !end.After(start) {
		end = end.Add(day)
	}
	return start, end
}

// String renders the window as "HH:MM - HH:MM", or "-" when unset.
func (w TimeWindow) String() string {
	if w.IsZero() {
		return "-"
	}
	return fmt.Sprintf("%s - %s", formatOffset(w.from), formatOffset(w.to))
}

func formatOffset(o time.Duration) string {
	h := int(o / time.Hour)
	m := int(o%time.Hour) / int(time.Minute)
	return fmt.Sprintf("%02d:%02d", h, m)
}
