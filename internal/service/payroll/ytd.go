package payroll

import (
	"github.com/littlesprouts/daycare-backend-go/internal/domain/payroll"
)

// AccumulateYTD sums an employee's historical records whose period's pay date
// falls in the target calendar year. periods maps PayPeriodID to its period.
// The repository runs the same aggregation in SQL during batch processing;
// this pure form backs reporting and tests.
func AccumulateYTD(records []payroll.PayRecord, periods map[string]payroll.PayPeriod, year int) payroll.YTDTotals {
	var totals payroll.YTDTotals
	for _, r := range records {
		period, ok := periods[r.PayPeriodID]
		if !ok || period.PayDate.Year() != year {
			continue
		}
		totals.GrossCents += r.GrossPayCents
		totals.FederalTaxCents += r.FederalTaxCents
		totals.StateTaxCents += r.StateTaxCents
		totals.SocialSecurityCents += r.SocialSecurityCents
		totals.MedicareCents += r.MedicareCents
		totals.NetCents += r.NetPayCents
	}
	return totals
}
