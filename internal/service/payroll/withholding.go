package payroll

import (
	"github.com/littlesprouts/daycare-backend-go/internal/domain/employee"
	"github.com/littlesprouts/daycare-backend-go/internal/domain/payroll"
	"github.com/littlesprouts/daycare-backend-go/internal/pkg/money"
)

// Withholding is the per-period tax breakdown in integer cents.
type Withholding struct {
	FederalCents        int64
	StateCents          int64
	SocialSecurityCents int64
	MedicareCents       int64
}

// Total is the sum of all four components.
func (w Withholding) Total() int64 {
	return w.FederalCents + w.StateCents + w.SocialSecurityCents + w.MedicareCents
}

// ComputeWithholding runs the full withholding pipeline for one period's
// gross pay. ytdGrossCents is the employee's prior gross for the pay date's
// calendar year and drives the Social Security wage cap.
func ComputeWithholding(grossCents int64, emp employee.Employee, ytdGrossCents int64, cfg payroll.TaxConfig) (Withholding, error) {
	st, err := cfg.StateFor(emp.StateCode)
	if err != nil {
		return Withholding{}, err
	}

	annualized := grossCents * cfg.PayPeriodsPerYear

	return Withholding{
		FederalCents:        federalTax(annualized, emp, cfg),
		StateCents:          stateTax(annualized, st, cfg),
		SocialSecurityCents: socialSecurityTax(grossCents, ytdGrossCents, cfg),
		MedicareCents:       money.ApplyBps(grossCents, cfg.MedicareRateBps),
	}, nil
}

// federalTax annualizes the period gross, applies the allowance deduction,
// accumulates bracket-by-bracket tax, then de-annualizes. Each bracket
// contribution is rounded to the cent before it is added.
func federalTax(annualizedCents int64, emp employee.Employee, cfg payroll.TaxConfig) int64 {
	taxable := annualizedCents - int64(emp.Allowances)*cfg.AllowanceDeductionCents
	if taxable < 0 {
		taxable = 0
	}

	annualTax := bracketTax(taxable, cfg.FederalBrackets)
	return money.RoundHalfUpDiv(annualTax, cfg.PayPeriodsPerYear) + emp.AdditionalWithholdingCents
}

// bracketTax walks the ordered bracket table and sums the tax owed on the
// slice of taxable income falling inside each bracket.
func bracketTax(taxableCents int64, brackets []payroll.TaxBracket) int64 {
	var tax int64
	for _, b := range brackets {
		if taxableCents <= b.MinCents {
			break
		}
		upper := taxableCents
		if !b.Unbounded() && b.MaxCents < upper {
			upper = b.MaxCents
		}
		tax += money.ApplyBps(upper-b.MinCents, b.RateBps)
	}
	return tax
}

func stateTax(annualizedCents int64, st payroll.StateTax, cfg payroll.TaxConfig) int64 {
	taxable := annualizedCents - st.StandardDeductionCents
	if taxable < 0 {
		taxable = 0
	}
	return money.RoundHalfUpDiv(taxable*st.RateBps, 10_000*cfg.PayPeriodsPerYear)
}

// socialSecurityTax taxes only the portion of gross that fits under the
// annual wage cap given what the employee already earned this year.
func socialSecurityTax(grossCents, ytdGrossCents int64, cfg payroll.TaxConfig) int64 {
	if ytdGrossCents >= cfg.SocialSecurityWageCapCents {
		return 0
	}
	taxable := min(grossCents, cfg.SocialSecurityWageCapCents-ytdGrossCents)
	return money.ApplyBps(taxable, cfg.SocialSecurityRateBps)
}
