package payroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/littlesprouts/daycare-backend-go/internal/domain/employee"
	"github.com/littlesprouts/daycare-backend-go/internal/domain/payroll"
)

func TestComputeGrossPay_HourlyWithOvertime(t *testing.T) {
	// $150.00/hour, 2400 regular + 600 overtime minutes at 1.5x:
	// regular 2400 * 15000 / 60 = 600000, overtime 600 * 15000 * 1.5 / 60 = 225000
	cfg := testTaxConfig()
	worked := WorkedTime{TotalMinutes: 3000, RegularMinutes: 2400, OvertimeMinutes: 600}

	gross, err := ComputeGrossPay(employee.Hourly{RateCents: 15_000}, worked, cfg)

	require.NoError(t, err)
	assert.Equal(t, int64(600_000), gross.RegularCents)
	assert.Equal(t, int64(225_000), gross.OvertimeCents)
	assert.Equal(t, int64(825_000), gross.GrossCents)
}

func TestComputeGrossPay_HourlyRounding(t *testing.T) {
	cfg := testTaxConfig()
	// 55 minutes at 999 cents/hour = 915.75 cents, rounds to 916
	worked := WorkedTime{TotalMinutes: 55, RegularMinutes: 55}

	gross, err := ComputeGrossPay(employee.Hourly{RateCents: 999}, worked, cfg)

	require.NoError(t, err)
	assert.Equal(t, int64(916), gross.RegularCents)
	assert.Equal(t, int64(0), gross.OvertimeCents)
}

func TestComputeGrossPay_SalariedIgnoresMinutes(t *testing.T) {
	cfg := testTaxConfig()
	worked := WorkedTime{TotalMinutes: 123, RegularMinutes: 123}

	gross, err := ComputeGrossPay(employee.Salaried{PeriodAmountCents: 250_000}, worked, cfg)

	require.NoError(t, err)
	assert.Equal(t, int64(250_000), gross.RegularCents)
	assert.Equal(t, int64(0), gross.OvertimeCents)
	assert.Equal(t, int64(250_000), gross.GrossCents)
}

func TestComputeGrossPay_ZeroWorkedTime(t *testing.T) {
	cfg := testTaxConfig()

	gross, err := ComputeGrossPay(employee.Hourly{RateCents: 15_000}, WorkedTime{}, cfg)

	require.NoError(t, err)
	assert.Equal(t, int64(0), gross.GrossCents)
}

func TestComputeGrossPay_InvalidRate(t *testing.T) {
	cfg := testTaxConfig()

	_, err := ComputeGrossPay(employee.Hourly{RateCents: 0}, WorkedTime{RegularMinutes: 60}, cfg)
	assert.ErrorIs(t, err, payroll.ErrInvalidPayRate)

	_, err = ComputeGrossPay(employee.Salaried{PeriodAmountCents: -100}, WorkedTime{}, cfg)
	assert.ErrorIs(t, err, payroll.ErrInvalidPayRate)
}

func TestComputeGrossPay_NilBasis(t *testing.T) {
	cfg := testTaxConfig()

	_, err := ComputeGrossPay(nil, WorkedTime{}, cfg)
	assert.ErrorIs(t, err, employee.ErrInvalidPayBasis)
}
