package payroll

import (
	"time"

	"github.com/littlesprouts/daycare-backend-go/internal/pkg/money"
	"github.com/littlesprouts/daycare-backend-go/internal/pkg/validator"
)

type CreatePeriodRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	PayDate   string `json:"pay_date"`
}

func (r *CreatePeriodRequest) Validate() error {
	var errs validator.ValidationErrors

	start, okStart := validator.IsValidDate(r.StartDate)
	if !okStart {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be YYYY-MM-DD"})
	}
	end, okEnd := validator.IsValidDate(r.EndDate)
	if !okEnd {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be YYYY-MM-DD"})
	}
	pay, okPay := validator.IsValidDate(r.PayDate)
	if !okPay {
		errs = append(errs, validator.ValidationError{Field: "pay_date", Message: "must be YYYY-MM-DD"})
	}
	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must not be before start_date"})
	}
	if okEnd && okPay && pay.Before(end) {
		errs = append(errs, validator.ValidationError{Field: "pay_date", Message: "must not be before end_date"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ClosePeriodRequest struct {
	AcceptFailures bool `json:"accept_failures"`
}

// Warning is a non-fatal note attached to an employee outcome, e.g. a clamped
// negative duration or an excluded incomplete entry.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// EmployeeOutcome is the per-employee result inside a batch report.
type EmployeeOutcome struct {
	EmployeeID string     `json:"employee_id"`
	Status     string     `json:"status"`
	Reason     string     `json:"reason,omitempty"`
	Warnings   []Warning  `json:"warnings,omitempty"`
	Record     *PayRecord `json:"-"`
}

// BatchReport is the outcome of one Pay Period Processor run. Succeeded and
// Failed are always distinguished; Skipped holds idempotent re-run hits.
type BatchReport struct {
	PeriodID  string            `json:"period_id"`
	Succeeded []EmployeeOutcome `json:"succeeded"`
	Skipped   []EmployeeOutcome `json:"skipped"`
	Failed    []EmployeeOutcome `json:"failed"`
}

func (r BatchReport) HasFailures() bool {
	return len(r.Failed) > 0
}

type PeriodResponse struct {
	ID          string  `json:"id"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	PayDate     string  `json:"pay_date"`
	Status      string  `json:"status"`
	TotalGross  string  `json:"total_gross"`
	TotalNet    string  `json:"total_net"`
	TotalTax    string  `json:"total_tax"`
	ProcessedBy *string `json:"processed_by,omitempty"`
	ProcessedAt *string `json:"processed_at,omitempty"`
}

func ToPeriodResponse(p PayPeriod) PeriodResponse {
	resp := PeriodResponse{
		ID:          p.ID,
		StartDate:   p.StartDate.Format("2006-01-02"),
		EndDate:     p.EndDate.Format("2006-01-02"),
		PayDate:     p.PayDate.Format("2006-01-02"),
		Status:      string(p.Status),
		TotalGross:  money.Format(p.TotalGrossCents),
		TotalNet:    money.Format(p.TotalNetCents),
		TotalTax:    money.Format(p.TotalTaxCents),
		ProcessedBy: p.ProcessedBy,
	}
	if p.ProcessedAt != nil {
		s := p.ProcessedAt.Format(time.RFC3339)
		resp.ProcessedAt = &s
	}
	return resp
}

type PayRecordResponse struct {
	ID              string `json:"id"`
	EmployeeID      string `json:"employee_id"`
	PayPeriodID     string `json:"pay_period_id"`
	RegularMinutes  int64  `json:"regular_minutes"`
	OvertimeMinutes int64  `json:"overtime_minutes"`
	RegularPay      string `json:"regular_pay"`
	OvertimePay     string `json:"overtime_pay"`
	GrossPay        string `json:"gross_pay"`
	FederalTax      string `json:"federal_tax"`
	StateTax        string `json:"state_tax"`
	SocialSecurity  string `json:"social_security"`
	Medicare        string `json:"medicare"`
	OtherDeductions string `json:"other_deductions"`
	NetPay          string `json:"net_pay"`
}

func ToPayRecordResponse(r PayRecord) PayRecordResponse {
	return PayRecordResponse{
		ID:              r.ID,
		EmployeeID:      r.EmployeeID,
		PayPeriodID:     r.PayPeriodID,
		RegularMinutes:  r.RegularMinutes,
		OvertimeMinutes: r.OvertimeMinutes,
		RegularPay:      money.Format(r.RegularPayCents),
		OvertimePay:     money.Format(r.OvertimePayCents),
		GrossPay:        money.Format(r.GrossPayCents),
		FederalTax:      money.Format(r.FederalTaxCents),
		StateTax:        money.Format(r.StateTaxCents),
		SocialSecurity:  money.Format(r.SocialSecurityCents),
		Medicare:        money.Format(r.MedicareCents),
		OtherDeductions: money.Format(r.OtherDeductionsCents),
		NetPay:          money.Format(r.NetPayCents),
	}
}

type YTDResponse struct {
	EmployeeID     string `json:"employee_id"`
	Year           int    `json:"year"`
	Gross          string `json:"gross"`
	FederalTax     string `json:"federal_tax"`
	StateTax       string `json:"state_tax"`
	SocialSecurity string `json:"social_security"`
	Medicare       string `json:"medicare"`
	Net            string `json:"net"`
}

func ToYTDResponse(employeeID string, year int, t YTDTotals) YTDResponse {
	return YTDResponse{
		EmployeeID:     employeeID,
		Year:           year,
		Gross:          money.Format(t.GrossCents),
		FederalTax:     money.Format(t.FederalTaxCents),
		StateTax:       money.Format(t.StateTaxCents),
		SocialSecurity: money.Format(t.SocialSecurityCents),
		Medicare:       money.Format(t.MedicareCents),
		Net:            money.Format(t.NetCents),
	}
}
