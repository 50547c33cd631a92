package employee

import (
	"github.com/littlesprouts/daycare-backend-go/internal/pkg/validator"
)

const (
	PayBasisTypeHourly   = "hourly"
	PayBasisTypeSalaried = "salaried"
)

type CreateEmployeeRequest struct {
	FirstName                  string `json:"first_name"`
	LastName                   string `json:"last_name"`
	Email                      string `json:"email"`
	PayBasisType               string `json:"pay_basis_type"`
	HourlyRateCents            int64  `json:"hourly_rate_cents,omitempty"`
	PeriodAmountCents          int64  `json:"period_amount_cents,omitempty"`
	Allowances                 int    `json:"allowances"`
	AdditionalWithholdingCents int64  `json:"additional_withholding_cents"`
	OtherDeductionsCents       int64  `json:"other_deductions_cents"`
	StateCode                  string `json:"state_code"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FirstName) {
		errs = append(errs, validator.ValidationError{Field: "first_name", Message: "is required"})
	}
	if validator.IsEmpty(r.LastName) {
		errs = append(errs, validator.ValidationError{Field: "last_name", Message: "is required"})
	}
	if !validator.IsValidStateCode(r.StateCode) {
		errs = append(errs, validator.ValidationError{Field: "state_code", Message: "must be a two-letter code"})
	}
	switch r.PayBasisType {
	case PayBasisTypeHourly:
		if r.HourlyRateCents <= 0 {
			errs = append(errs, validator.ValidationError{Field: "hourly_rate_cents", Message: "must be positive"})
		}
	case PayBasisTypeSalaried:
		if r.PeriodAmountCents <= 0 {
			errs = append(errs, validator.ValidationError{Field: "period_amount_cents", Message: "must be positive"})
		}
	default:
		errs = append(errs, validator.ValidationError{Field: "pay_basis_type", Message: "must be 'hourly' or 'salaried'"})
	}
	if r.Allowances < 0 {
		errs = append(errs, validator.ValidationError{Field: "allowances", Message: "must be non-negative"})
	}
	if r.AdditionalWithholdingCents < 0 {
		errs = append(errs, validator.ValidationError{Field: "additional_withholding_cents", Message: "must be non-negative"})
	}
	if r.OtherDeductionsCents < 0 {
		errs = append(errs, validator.ValidationError{Field: "other_deductions_cents", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// PayBasis builds the tagged variant from the request fields. Validate must
// have been called first.
func (r *CreateEmployeeRequest) ToPayBasis() PayBasis {
	if r.PayBasisType == PayBasisTypeSalaried {
		return Salaried{PeriodAmountCents: r.PeriodAmountCents}
	}
	return Hourly{RateCents: r.HourlyRateCents}
}

type EmployeeResponse struct {
	ID                         string `json:"id"`
	FirstName                  string `json:"first_name"`
	LastName                   string `json:"last_name"`
	Email                      string `json:"email"`
	PayBasisType               string `json:"pay_basis_type"`
	HourlyRateCents            int64  `json:"hourly_rate_cents,omitempty"`
	PeriodAmountCents          int64  `json:"period_amount_cents,omitempty"`
	Allowances                 int    `json:"allowances"`
	AdditionalWithholdingCents int64  `json:"additional_withholding_cents"`
	OtherDeductionsCents       int64  `json:"other_deductions_cents"`
	StateCode                  string `json:"state_code"`
	IsActive                   bool   `json:"is_active"`
}
