package timesheet

import "time"

// Entry is a single timesheet row: either a clock-in/clock-out pair with a
// break, or a manually entered total. Entries are written by the time-tracking
// surface and only read by the payroll engine once approved.
type Entry struct {
	ID            string
	EmployeeID    string
	Date          time.Time
	ClockIn       *time.Time
	ClockOut      *time.Time
	BreakMinutes  int64
	ManualMinutes *int64
	Approved      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// HasClockPair reports whether both clock timestamps are present.
func (e Entry) HasClockPair() bool {
	return e.ClockIn != nil && e.ClockOut != nil
}

// Incomplete reports a clock-in without a matching clock-out.
func (e Entry) Incomplete() bool {
	return e.ClockIn != nil && e.ClockOut == nil
}
