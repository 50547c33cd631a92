package payroll

import (
	"fmt"

	"github.com/littlesprouts/daycare-backend-go/internal/domain/employee"
	"github.com/littlesprouts/daycare-backend-go/internal/domain/payroll"
	"github.com/littlesprouts/daycare-backend-go/internal/domain/timesheet"
)

// CalculateEmployeePay is the pure per-employee calculation: employee config,
// their approved timesheets, the period, their YTD gross so far and the tax
// config in; one PayRecord out. No I/O happens here, which is what makes the
// batch safely parallel per employee.
func CalculateEmployeePay(
	emp employee.Employee,
	entries []timesheet.Entry,
	period payroll.PayPeriod,
	ytdGrossCents int64,
	cfg payroll.TaxConfig,
) (payroll.PayRecord, []payroll.Warning, error) {
	worked, warnings := AggregateTimesheets(entries, cfg.OvertimeThresholdMinutes)

	gross, err := ComputeGrossPay(emp.PayBasis, worked, cfg)
	if err != nil {
		return payroll.PayRecord{}, warnings, err
	}
	if gross.GrossCents < 0 {
		// Unreachable with validated inputs; a negative gross means the
		// arithmetic itself broke.
		return payroll.PayRecord{}, warnings, fmt.Errorf("%w: %d cents for employee %s", payroll.ErrNegativeGross, gross.GrossCents, emp.ID)
	}

	withheld, err := ComputeWithholding(gross.GrossCents, emp, ytdGrossCents, cfg)
	if err != nil {
		return payroll.PayRecord{}, warnings, err
	}

	net := gross.GrossCents - withheld.Total() - emp.OtherDeductionsCents
	if net < 0 {
		warnings = append(warnings, payroll.Warning{
			Code:    payroll.WarningNegativeNet,
			Message: fmt.Sprintf("net pay is negative (%d cents); deductions exceed gross", net),
		})
	}

	return payroll.PayRecord{
		EmployeeID:           emp.ID,
		PayPeriodID:          period.ID,
		RegularMinutes:       worked.RegularMinutes,
		OvertimeMinutes:      worked.OvertimeMinutes,
		RegularPayCents:      gross.RegularCents,
		OvertimePayCents:     gross.OvertimeCents,
		GrossPayCents:        gross.GrossCents,
		FederalTaxCents:      withheld.FederalCents,
		StateTaxCents:        withheld.StateCents,
		SocialSecurityCents:  withheld.SocialSecurityCents,
		MedicareCents:        withheld.MedicareCents,
		OtherDeductionsCents: emp.OtherDeductionsCents,
		NetPayCents:          net,
	}, warnings, nil
}
