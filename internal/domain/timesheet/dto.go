package timesheet

import (
	"time"

	"github.com/littlesprouts/daycare-backend-go/internal/pkg/validator"
)

type CreateEntryRequest struct {
	EmployeeID    string  `json:"employee_id"`
	Date          string  `json:"date"`
	ClockIn       *string `json:"clock_in,omitempty"`
	ClockOut      *string `json:"clock_out,omitempty"`
	BreakMinutes  int64   `json:"break_minutes"`
	ManualMinutes *int64  `json:"manual_minutes,omitempty"`
}

func (r *CreateEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be YYYY-MM-DD"})
	}
	if r.ClockIn != nil {
		if _, ok := validator.IsValidDateTime(*r.ClockIn); !ok {
			errs = append(errs, validator.ValidationError{Field: "clock_in", Message: "must be an ISO8601 timestamp"})
		}
	}
	if r.ClockOut != nil {
		if _, ok := validator.IsValidDateTime(*r.ClockOut); !ok {
			errs = append(errs, validator.ValidationError{Field: "clock_out", Message: "must be an ISO8601 timestamp"})
		}
	}
	if r.ClockOut != nil && r.ClockIn == nil {
		errs = append(errs, validator.ValidationError{Field: "clock_in", Message: "is required when clock_out is set"})
	}
	if r.BreakMinutes < 0 {
		errs = append(errs, validator.ValidationError{Field: "break_minutes", Message: "must be non-negative"})
	}
	if r.ClockIn == nil && r.ManualMinutes == nil {
		errs = append(errs, validator.ValidationError{Field: "manual_minutes", Message: "is required when no clock times are given"})
	}
	if r.ManualMinutes != nil && *r.ManualMinutes < 0 {
		errs = append(errs, validator.ValidationError{Field: "manual_minutes", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EntryResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	Date          string  `json:"date"`
	ClockIn       *string `json:"clock_in,omitempty"`
	ClockOut      *string `json:"clock_out,omitempty"`
	BreakMinutes  int64   `json:"break_minutes"`
	ManualMinutes *int64  `json:"manual_minutes,omitempty"`
	Approved      bool    `json:"approved"`
}

func ToEntryResponse(e Entry) EntryResponse {
	resp := EntryResponse{
		ID:            e.ID,
		EmployeeID:    e.EmployeeID,
		Date:          e.Date.Format("2006-01-02"),
		BreakMinutes:  e.BreakMinutes,
		ManualMinutes: e.ManualMinutes,
		Approved:      e.Approved,
	}
	if e.ClockIn != nil {
		s := e.ClockIn.Format(time.RFC3339)
		resp.ClockIn = &s
	}
	if e.ClockOut != nil {
		s := e.ClockOut.Format(time.RFC3339)
		resp.ClockOut = &s
	}
	return resp
}
