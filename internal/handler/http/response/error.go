package response

import (
	"errors"
	"net/http"

	"github.com/littlesprouts/daycare-backend-go/internal/domain/employee"
	"github.com/littlesprouts/daycare-backend-go/internal/domain/payroll"
	"github.com/littlesprouts/daycare-backend-go/internal/domain/timesheet"
	"github.com/littlesprouts/daycare-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, employee.ErrInvalidPayBasis):
		BadRequest(w, "Employee pay basis is not configured", nil)

	// Timesheet domain errors
	case errors.Is(err, timesheet.ErrEntryNotFound):
		NotFound(w, "Timesheet entry not found")
	case errors.Is(err, timesheet.ErrEntryAlreadyApproved):
		Conflict(w, "Timesheet entry already approved")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPeriodNotFound):
		NotFound(w, "Pay period not found")
	case errors.Is(err, payroll.ErrPeriodClosed):
		Conflict(w, "Pay period is already closed")
	case errors.Is(err, payroll.ErrPeriodNotOpen):
		Conflict(w, "Pay period is not open for processing")
	case errors.Is(err, payroll.ErrPeriodIncomplete):
		Conflict(w, "Pay period has employees without records")
	case errors.Is(err, payroll.ErrRecordNotFound):
		NotFound(w, "Pay record not found")
	case errors.Is(err, payroll.ErrRecordAlreadyExists):
		Conflict(w, "Pay record already exists for this employee and period")
	case errors.Is(err, payroll.ErrInvalidTaxConfig):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, payroll.ErrUnknownJurisdiction):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
