package kernel

import (
	"fmt"
	"time"

	"expedition/internal/pkg/errs"
)

// dateLayout is the canonical textual form of a Date.
const dateLayout = "2006-01-02"

// ErrDateIsNotConstructed indicates a zero-value Date that was not created
// through one of the constructor functions.
var ErrDateIsNotConstructed = errs.NewValueIsRequiredError(
	"Date must be created via NewDate, DateFromTime or DateFromString",
)

// Date is a value object representing a calendar day, without a time-of-day
// component. It identifies the day an expedition runs on and is part of the
// expedition uniqueness key (company, date, main driver).
//
// Dates are normalized to midnight UTC so that two Dates constructed from
// different wall-clock instants of the same day always compare equal.
// The zero value is invalid and fails Validate.
type Date struct {
	t time.Time
}

// NewDate creates a Date for the given year, month and day.
func NewDate(year int, month time.Month, day int) (Date, error) {
	d := Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
	if err := d.Validate(); err != nil {
		return Date{}, err
	}
	return d, nil
}

// DateFromTime creates a Date from the calendar day of t, discarding the
// time-of-day and location.
func DateFromTime(t time.Time) (Date, error) {
	if t.IsZero() {
		return Date{}, ErrDateIsNotConstructed
	}
	y, m, day := t.Date()
	return NewDate(y, m, day)
}

// DateFromString parses a Date in "YYYY-MM-DD" form.
func DateFromString(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, errs.NewValueIsInvalidErrorWithCause("date", fmt.Errorf("%q is not in YYYY-MM-DD form: %w", s, err))
	}
	return DateFromTime(t)
}

// Time returns the midnight UTC instant of the day.
func (d Date) Time() time.Time {
	return d.t
}

// String returns the date in "YYYY-MM-DD" form.
func (d Date) String() string {
	return d.t.Format(dateLayout)
}

// AddDays returns the Date n days after (or before, for negative n) this one.
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

// IsEqual reports whether both Dates denote the same calendar day.
func (d Date) IsEqual(other Date) bool {
	return d.t.Equal(other.t)
}

// Validate checks that the Date was properly constructed.
func (d Date) Validate() error {
	if d.t.IsZero() {
		return ErrDateIsNotConstructed
	}
	return nil
}
