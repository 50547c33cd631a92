package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/littlesprouts/daycare-backend-go/internal/domain/payroll"
)

const validTaxYAML = `
federal_brackets:
  - min_cents: 0
    max_cents: 1100000
    rate_bps: 1000
  - min_cents: 1100000
    max_cents: 4472500
    rate_bps: 1200
  - min_cents: 4472500
    max_cents: 0
    rate_bps: 2200
pay_periods_per_year: 26
allowance_deduction_cents: 430000
social_security_rate_bps: 620
social_security_wage_cap_cents: 16020000
medicare_rate_bps: 145
states:
  CA:
    rate_bps: 500
    standard_deduction_cents: 500000
  WA:
    rate_bps: 0
    standard_deduction_cents: 0
overtime_threshold_minutes: 2400
overtime_multiplier_hundredths: 150
worker_count: 8
`

func writeTaxFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tax_config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadTaxConfig_Valid(t *testing.T) {
	cfg, err := LoadTaxConfig(writeTaxFile(t, validTaxYAML))

	require.NoError(t, err)
	require.Len(t, cfg.FederalBrackets, 3)
	assert.Equal(t, int64(1000), cfg.FederalBrackets[0].RateBps)
	assert.True(t, cfg.FederalBrackets[2].Unbounded())
	assert.Equal(t, int64(26), cfg.PayPeriodsPerYear)
	assert.Equal(t, int64(16_020_000), cfg.SocialSecurityWageCapCents)
	assert.Equal(t, 8, cfg.Workers())

	st, err := cfg.StateFor("CA")
	require.NoError(t, err)
	assert.Equal(t, int64(500), st.RateBps)
	assert.Equal(t, int64(500_000), st.StandardDeductionCents)
}

func TestLoadTaxConfig_MissingFile(t *testing.T) {
	_, err := LoadTaxConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadTaxConfig_MalformedYAML(t *testing.T) {
	_, err := LoadTaxConfig(writeTaxFile(t, "federal_brackets: ["))
	assert.Error(t, err)
}

func TestLoadTaxConfig_InvalidBundleRejected(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			"no brackets",
			`
pay_periods_per_year: 26
social_security_wage_cap_cents: 100
states: {WA: {rate_bps: 0, standard_deduction_cents: 0}}
overtime_threshold_minutes: 2400
overtime_multiplier_hundredths: 150
`,
		},
		{
			"bounded last bracket",
			`
federal_brackets:
  - {min_cents: 0, max_cents: 100000, rate_bps: 1000}
pay_periods_per_year: 26
social_security_wage_cap_cents: 100
states: {WA: {rate_bps: 0, standard_deduction_cents: 0}}
overtime_threshold_minutes: 2400
overtime_multiplier_hundredths: 150
`,
		},
		{
			"gap between brackets",
			`
federal_brackets:
  - {min_cents: 0, max_cents: 100000, rate_bps: 1000}
  - {min_cents: 200000, max_cents: 0, rate_bps: 2000}
pay_periods_per_year: 26
social_security_wage_cap_cents: 100
states: {WA: {rate_bps: 0, standard_deduction_cents: 0}}
overtime_threshold_minutes: 2400
overtime_multiplier_hundredths: 150
`,
		},
		{
			"no states",
			`
federal_brackets:
  - {min_cents: 0, max_cents: 0, rate_bps: 1000}
pay_periods_per_year: 26
social_security_wage_cap_cents: 100
overtime_threshold_minutes: 2400
overtime_multiplier_hundredths: 150
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTaxConfig(writeTaxFile(t, tt.yaml))
			assert.ErrorIs(t, err, payroll.ErrInvalidTaxConfig)
		})
	}
}
