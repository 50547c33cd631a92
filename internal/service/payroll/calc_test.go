package payroll

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/littlesprouts/daycare-backend-go/internal/domain/employee"
	"github.com/littlesprouts/daycare-backend-go/internal/domain/payroll"
	"github.com/littlesprouts/daycare-backend-go/internal/domain/timesheet"
)

func testPeriod() payroll.PayPeriod {
	return payroll.PayPeriod{
		ID:        "period-1",
		StartDate: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		PayDate:   time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
		Status:    payroll.PeriodStatusOpen,
	}
}

func TestCalculateEmployeePay_HourlyEndToEnd(t *testing.T) {
	cfg := testTaxConfig()
	emp := testEmployee("CA")
	emp.PayBasis = employee.Hourly{RateCents: 15_000}
	emp.OtherDeductionsCents = 10_000
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	entries := []timesheet.Entry{
		manualEntry("ts-1", day, 1500),
		manualEntry("ts-2", day.AddDate(0, 0, 1), 1500),
	}

	record, warnings, err := CalculateEmployeePay(emp, entries, testPeriod(), 0, cfg)

	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, "emp-1", record.EmployeeID)
	assert.Equal(t, "period-1", record.PayPeriodID)
	assert.Equal(t, int64(2400), record.RegularMinutes)
	assert.Equal(t, int64(600), record.OvertimeMinutes)
	assert.Equal(t, int64(600_000), record.RegularPayCents)
	assert.Equal(t, int64(225_000), record.OvertimePayCents)
	assert.Equal(t, int64(825_000), record.GrossPayCents)
	assert.Equal(t, int64(10_000), record.OtherDeductionsCents)
	// Net is always gross minus withholding minus other deductions.
	assert.Equal(t, record.GrossPayCents-record.TotalTaxCents()-record.OtherDeductionsCents, record.NetPayCents)
}

func TestCalculateEmployeePay_WarningsCarryThrough(t *testing.T) {
	cfg := testTaxConfig()
	emp := testEmployee("WA")
	day := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
	entries := []timesheet.Entry{
		manualEntry("ts-1", day, 480),
		clockEntry("ts-2", day, "09:00", "", 0),
	}

	record, warnings, err := CalculateEmployeePay(emp, entries, testPeriod(), 0, cfg)

	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Equal(t, payroll.WarningIncompleteEntry, warnings[0].Code)
	assert.Equal(t, int64(480), record.RegularMinutes)
}

func TestCalculateEmployeePay_NegativeNetWarned(t *testing.T) {
	cfg := testTaxConfig()
	emp := testEmployee("WA")
	emp.PayBasis = employee.Salaried{PeriodAmountCents: 10_000}
	emp.OtherDeductionsCents = 50_000

	record, warnings, err := CalculateEmployeePay(emp, nil, testPeriod(), 0, cfg)

	require.NoError(t, err)
	require.NotEmpty(t, warnings)
	assert.Equal(t, payroll.WarningNegativeNet, warnings[len(warnings)-1].Code)
	assert.Negative(t, record.NetPayCents)
}

func TestCalculateEmployeePay_InvalidRateFails(t *testing.T) {
	cfg := testTaxConfig()
	emp := testEmployee("WA")
	emp.PayBasis = employee.Hourly{RateCents: -1}

	_, _, err := CalculateEmployeePay(emp, nil, testPeriod(), 0, cfg)

	assert.ErrorIs(t, err, payroll.ErrInvalidPayRate)
}
