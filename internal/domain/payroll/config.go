package payroll

import "fmt"

// TaxBracket is one federal bracket over annualized taxable income. Brackets
// are ordered ascending by MinCents and do not overlap; MaxCents == 0 marks
// the final unbounded bracket. Rates are basis points (1/10000).
type TaxBracket struct {
	MinCents int64 `yaml:"min_cents"`
	MaxCents int64 `yaml:"max_cents"`
	RateBps  int64 `yaml:"rate_bps"`
}

// Unbounded reports whether the bracket has no upper limit.
func (b TaxBracket) Unbounded() bool {
	return b.MaxCents == 0
}

// StateTax is a flat-rate-after-deduction jurisdiction entry.
type StateTax struct {
	RateBps                int64 `yaml:"rate_bps"`
	StandardDeductionCents int64 `yaml:"standard_deduction_cents"`
}

// TaxConfig is the full externally supplied calculation bundle. Nothing in it
// is hard-coded anywhere in the engine; every calculation call receives an
// explicit config value.
type TaxConfig struct {
	FederalBrackets              []TaxBracket        `yaml:"federal_brackets"`
	PayPeriodsPerYear            int64               `yaml:"pay_periods_per_year"`
	AllowanceDeductionCents      int64               `yaml:"allowance_deduction_cents"`
	SocialSecurityRateBps        int64               `yaml:"social_security_rate_bps"`
	SocialSecurityWageCapCents   int64               `yaml:"social_security_wage_cap_cents"`
	MedicareRateBps              int64               `yaml:"medicare_rate_bps"`
	States                       map[string]StateTax `yaml:"states"`
	OvertimeThresholdMinutes     int64               `yaml:"overtime_threshold_minutes"`
	OvertimeMultiplierHundredths int64               `yaml:"overtime_multiplier_hundredths"`
	WorkerCount                  int                 `yaml:"worker_count"`
}

// Validate checks the bundle before any batch work starts. A failure here is
// fatal for the whole run.
func (c TaxConfig) Validate() error {
	if len(c.FederalBrackets) == 0 {
		return fmt.Errorf("%w: federal bracket table is empty", ErrInvalidTaxConfig)
	}
	for i, b := range c.FederalBrackets {
		if b.RateBps < 0 {
			return fmt.Errorf("%w: bracket %d has negative rate", ErrInvalidTaxConfig, i)
		}
		if i == 0 && b.MinCents != 0 {
			return fmt.Errorf("%w: first bracket must start at 0", ErrInvalidTaxConfig)
		}
		if i > 0 {
			prev := c.FederalBrackets[i-1]
			if prev.Unbounded() {
				return fmt.Errorf("%w: only the last bracket may be unbounded", ErrInvalidTaxConfig)
			}
			if b.MinCents != prev.MaxCents {
				return fmt.Errorf("%w: bracket %d does not start where bracket %d ends", ErrInvalidTaxConfig, i, i-1)
			}
		}
		if !b.Unbounded() && b.MaxCents <= b.MinCents {
			return fmt.Errorf("%w: bracket %d has max <= min", ErrInvalidTaxConfig, i)
		}
	}
	if !c.FederalBrackets[len(c.FederalBrackets)-1].Unbounded() {
		return fmt.Errorf("%w: last bracket must be unbounded", ErrInvalidTaxConfig)
	}
	if c.PayPeriodsPerYear <= 0 {
		return fmt.Errorf("%w: pay_periods_per_year must be positive", ErrInvalidTaxConfig)
	}
	if c.AllowanceDeductionCents < 0 {
		return fmt.Errorf("%w: allowance_deduction_cents must be non-negative", ErrInvalidTaxConfig)
	}
	if c.SocialSecurityRateBps < 0 || c.MedicareRateBps < 0 {
		return fmt.Errorf("%w: FICA rates must be non-negative", ErrInvalidTaxConfig)
	}
	if c.SocialSecurityWageCapCents <= 0 {
		return fmt.Errorf("%w: social_security_wage_cap_cents must be positive", ErrInvalidTaxConfig)
	}
	if len(c.States) == 0 {
		return fmt.Errorf("%w: no state jurisdictions configured", ErrInvalidTaxConfig)
	}
	for code, st := range c.States {
		if st.RateBps < 0 || st.StandardDeductionCents < 0 {
			return fmt.Errorf("%w: state %s has negative rate or deduction", ErrInvalidTaxConfig, code)
		}
	}
	if c.OvertimeThresholdMinutes <= 0 {
		return fmt.Errorf("%w: overtime_threshold_minutes must be positive", ErrInvalidTaxConfig)
	}
	if c.OvertimeMultiplierHundredths < 100 {
		return fmt.Errorf("%w: overtime_multiplier_hundredths must be at least 100", ErrInvalidTaxConfig)
	}
	return nil
}

// StateFor resolves the jurisdiction entry for a state code.
func (c TaxConfig) StateFor(code string) (StateTax, error) {
	st, ok := c.States[code]
	if !ok {
		return StateTax{}, fmt.Errorf("%w: %s", ErrUnknownJurisdiction, code)
	}
	return st, nil
}

// Workers returns the bounded concurrency for a batch run.
func (c TaxConfig) Workers() int {
	if c.WorkerCount <= 0 {
		return 4
	}
	return c.WorkerCount
}
