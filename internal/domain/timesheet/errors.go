package timesheet

import "errors"

var (
	ErrEntryNotFound        = errors.New("timesheet entry not found")
	ErrEntryAlreadyApproved = errors.New("timesheet entry already approved")
)
