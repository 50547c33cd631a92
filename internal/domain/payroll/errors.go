package payroll

import "errors"

var (
	ErrPeriodNotFound      = errors.New("pay period not found")
	ErrPeriodNotOpen       = errors.New("pay period is not open for processing")
	ErrPeriodClosed        = errors.New("pay period is already closed")
	ErrPeriodIncomplete    = errors.New("pay period has employees without records; close requires accepting failures")
	ErrRecordNotFound      = errors.New("pay record not found")
	ErrRecordAlreadyExists = errors.New("pay record already exists for this employee and period")

	// Configuration errors abort a batch before any side effects.
	ErrInvalidTaxConfig    = errors.New("invalid tax configuration")
	ErrUnknownJurisdiction = errors.New("no state tax configured for jurisdiction")

	// Per-employee calculation errors.
	ErrInvalidPayRate = errors.New("employee pay rate must be positive")
	ErrNegativeGross  = errors.New("computed gross pay is negative")
)
