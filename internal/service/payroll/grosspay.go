package payroll

import (
	"fmt"

	"github.com/littlesprouts/daycare-backend-go/internal/domain/employee"
	"github.com/littlesprouts/daycare-backend-go/internal/domain/payroll"
	"github.com/littlesprouts/daycare-backend-go/internal/pkg/money"
)

// GrossPay is the pre-withholding earnings breakdown in integer cents.
type GrossPay struct {
	RegularCents  int64
	OvertimeCents int64
	GrossCents    int64
}

// ComputeGrossPay converts worked time and a pay basis into cents. Rounding
// is half-up at each multiplication boundary; no fractional cents are carried
// between steps.
func ComputeGrossPay(basis employee.PayBasis, worked WorkedTime, cfg payroll.TaxConfig) (GrossPay, error) {
	switch b := basis.(type) {
	case employee.Hourly:
		if b.RateCents <= 0 {
			return GrossPay{}, fmt.Errorf("%w: hourly rate %d", payroll.ErrInvalidPayRate, b.RateCents)
		}
		regular := money.MulDivRound(worked.RegularMinutes, b.RateCents, 60)
		overtime := money.RoundHalfUpDiv(worked.OvertimeMinutes*b.RateCents*cfg.OvertimeMultiplierHundredths, 60*100)
		return GrossPay{
			RegularCents:  regular,
			OvertimeCents: overtime,
			GrossCents:    regular + overtime,
		}, nil
	case employee.Salaried:
		if b.PeriodAmountCents <= 0 {
			return GrossPay{}, fmt.Errorf("%w: period amount %d", payroll.ErrInvalidPayRate, b.PeriodAmountCents)
		}
		// Salaried pay is the fixed period amount regardless of minutes
		// worked; worked time still flows into the record for reporting.
		return GrossPay{
			RegularCents: b.PeriodAmountCents,
			GrossCents:   b.PeriodAmountCents,
		}, nil
	default:
		return GrossPay{}, employee.ErrInvalidPayBasis
	}
}
