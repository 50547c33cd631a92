package payroll

// Warning codes attached to per-employee batch outcomes.
const (
	WarningNegativeDuration = "negative_duration"
	WarningIncompleteEntry  = "incomplete_entry"
	WarningNegativeNet      = "negative_net"
)

// Per-employee outcome status in a batch report.
const (
	OutcomeSucceeded = "succeeded"
	OutcomeSkipped   = "skipped"
	OutcomeFailed    = "failed"
)
