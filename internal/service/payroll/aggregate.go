package payroll

import (
	"fmt"

	"github.com/littlesprouts/daycare-backend-go/internal/domain/payroll"
	"github.com/littlesprouts/daycare-backend-go/internal/domain/timesheet"
)

// WorkedTime is the aggregation result for one employee over a period.
// RegularMinutes + OvertimeMinutes == TotalMinutes always holds.
type WorkedTime struct {
	TotalMinutes    int64
	RegularMinutes  int64
	OvertimeMinutes int64
}

// AggregateTimesheets folds approved entries into worked minutes and splits
// them at the overtime threshold. Malformed entries are clamped or excluded
// and surfaced as warnings, never as errors: a bad row must not sink the
// employee's whole period.
func AggregateTimesheets(entries []timesheet.Entry, overtimeThresholdMinutes int64) (WorkedTime, []payroll.Warning) {
	var total int64
	var warnings []payroll.Warning

	for _, e := range entries {
		if !e.Approved {
			continue
		}
		switch {
		case e.HasClockPair():
			minutes := int64(e.ClockOut.Sub(*e.ClockIn).Minutes()) - e.BreakMinutes
			if minutes < 0 {
				warnings = append(warnings, payroll.Warning{
					Code:    payroll.WarningNegativeDuration,
					Message: fmt.Sprintf("entry %s on %s has a negative duration; clamped to zero", e.ID, e.Date.Format("2006-01-02")),
				})
				minutes = 0
			}
			total += minutes
		case e.Incomplete():
			// Clock-in without clock-out: excluded, flagged for manual
			// resolution rather than silently dropped.
			warnings = append(warnings, payroll.Warning{
				Code:    payroll.WarningIncompleteEntry,
				Message: fmt.Sprintf("entry %s on %s has a clock-in but no clock-out; excluded", e.ID, e.Date.Format("2006-01-02")),
			})
		case e.ManualMinutes != nil:
			total += *e.ManualMinutes
		}
	}

	worked := WorkedTime{TotalMinutes: total}
	worked.RegularMinutes = min(total, overtimeThresholdMinutes)
	worked.OvertimeMinutes = max(int64(0), total-overtimeThresholdMinutes)
	return worked, warnings
}
