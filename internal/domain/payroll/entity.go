package payroll

import "time"

// PeriodStatus enum
type PeriodStatus string

const (
	PeriodStatusOpen       PeriodStatus = "open"
	PeriodStatusProcessing PeriodStatus = "processing"
	PeriodStatusClosed     PeriodStatus = "closed"
)

// PayPeriod is a fixed date range for which hours are aggregated and pay
// computed. Aggregated totals always equal the sum of the period's PayRecords.
type PayPeriod struct {
	ID              string
	StartDate       time.Time
	EndDate         time.Time
	PayDate         time.Time
	Status          PeriodStatus
	TotalGrossCents int64
	TotalNetCents   int64
	TotalTaxCents   int64
	ProcessedBy     *string
	ProcessedAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// PayRecord is the committed result for one employee in one period. Once
// created it is immutable; corrections go through an explicit reversal, never
// an update.
type PayRecord struct {
	ID                   string
	EmployeeID           string
	PayPeriodID          string
	RegularMinutes       int64
	OvertimeMinutes      int64
	RegularPayCents      int64
	OvertimePayCents     int64
	GrossPayCents        int64
	FederalTaxCents      int64
	StateTaxCents        int64
	SocialSecurityCents  int64
	MedicareCents        int64
	OtherDeductionsCents int64
	NetPayCents          int64
	CreatedAt            time.Time
}

// TotalTaxCents is the sum of all withholding components on the record.
func (r PayRecord) TotalTaxCents() int64 {
	return r.FederalTaxCents + r.StateTaxCents + r.SocialSecurityCents + r.MedicareCents
}

// YTDTotals are an employee's cumulative figures within one calendar year,
// scoped by pay date. Feeds the Social Security wage-cap check.
type YTDTotals struct {
	GrossCents          int64
	FederalTaxCents     int64
	StateTaxCents       int64
	SocialSecurityCents int64
	MedicareCents       int64
	NetCents            int64
}

// PeriodTotals is the aggregate written back onto a PayPeriod.
type PeriodTotals struct {
	GrossCents int64
	NetCents   int64
	TaxCents   int64
}
