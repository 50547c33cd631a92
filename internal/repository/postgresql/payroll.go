package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/littlesprouts/daycare-backend-go/internal/domain/payroll"
	"github.com/littlesprouts/daycare-backend-go/internal/pkg/database"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.Repository {
	return &payrollRepository{db: db}
}

// ========== PERIODS ==========

const periodColumns = `
	id, start_date, end_date, pay_date, status, total_gross_cents,
	total_net_cents, total_tax_cents, processed_by, processed_at,
	created_at, updated_at
`

func (r *payrollRepository) CreatePeriod(ctx context.Context, period payroll.PayPeriod) (payroll.PayPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO pay_periods (start_date, end_date, pay_date, status)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + periodColumns

	created, err := scanPeriod(q.QueryRow(ctx, query,
		period.StartDate, period.EndDate, period.PayDate, period.Status,
	))
	if err != nil {
		return payroll.PayPeriod{}, fmt.Errorf("failed to create pay period: %w", err)
	}
	return created, nil
}

func (r *payrollRepository) GetPeriodByID(ctx context.Context, id string) (payroll.PayPeriod, error) {
	q := GetQuerier(ctx, r.db)

	period, err := scanPeriod(q.QueryRow(ctx, `SELECT `+periodColumns+` FROM pay_periods WHERE id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayPeriod{}, payroll.ErrPeriodNotFound
		}
		return payroll.PayPeriod{}, fmt.Errorf("failed to get pay period: %w", err)
	}
	return period, nil
}

func (r *payrollRepository) ListPeriods(ctx context.Context) ([]payroll.PayPeriod, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+periodColumns+` FROM pay_periods ORDER BY start_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list pay periods: %w", err)
	}
	defer rows.Close()

	var periods []payroll.PayPeriod
	for rows.Next() {
		period, err := scanPeriod(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pay period: %w", err)
		}
		periods = append(periods, period)
	}
	return periods, rows.Err()
}

func (r *payrollRepository) UpdatePeriodStatus(ctx context.Context, id string, status payroll.PeriodStatus) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE pay_periods SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status != 'closed'
	`, id, status)
	if err != nil {
		return fmt.Errorf("failed to update period status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPeriodNotFound
	}
	return nil
}

func (r *payrollRepository) UpdatePeriodTotals(ctx context.Context, id string, totals payroll.PeriodTotals) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE pay_periods
		SET total_gross_cents = $2, total_net_cents = $3, total_tax_cents = $4, updated_at = NOW()
		WHERE id = $1
	`, id, totals.GrossCents, totals.NetCents, totals.TaxCents)
	if err != nil {
		return fmt.Errorf("failed to update period totals: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPeriodNotFound
	}
	return nil
}

// ClosePeriod writes totals, processor identity and the closed status in one
// transaction so a period can never be half-closed.
func (r *payrollRepository) ClosePeriod(ctx context.Context, id string, totals payroll.PeriodTotals, processedBy string) error {
	return WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		var status payroll.PeriodStatus
		err := tx.QueryRow(ctx, `SELECT status FROM pay_periods WHERE id = $1 FOR UPDATE`, id).Scan(&status)
		if err != nil {
			if err == pgx.ErrNoRows {
				return payroll.ErrPeriodNotFound
			}
			return fmt.Errorf("failed to lock pay period: %w", err)
		}
		if status == payroll.PeriodStatusClosed {
			return payroll.ErrPeriodClosed
		}

		_, err = tx.Exec(ctx, `
			UPDATE pay_periods
			SET status = 'closed', total_gross_cents = $2, total_net_cents = $3,
				total_tax_cents = $4, processed_by = $5, processed_at = NOW(), updated_at = NOW()
			WHERE id = $1
		`, id, totals.GrossCents, totals.NetCents, totals.TaxCents, processedBy)
		if err != nil {
			return fmt.Errorf("failed to close pay period: %w", err)
		}
		return nil
	})
}

// ========== RECORDS ==========

const recordColumns = `
	id, employee_id, pay_period_id, regular_minutes, overtime_minutes,
	regular_pay_cents, overtime_pay_cents, gross_pay_cents, federal_tax_cents,
	state_tax_cents, social_security_cents, medicare_cents,
	other_deductions_cents, net_pay_cents, created_at
`

func (r *payrollRepository) CreatePayRecord(ctx context.Context, record payroll.PayRecord) (payroll.PayRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO pay_records (
			employee_id, pay_period_id, regular_minutes, overtime_minutes,
			regular_pay_cents, overtime_pay_cents, gross_pay_cents, federal_tax_cents,
			state_tax_cents, social_security_cents, medicare_cents,
			other_deductions_cents, net_pay_cents
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING ` + recordColumns

	created, err := scanRecord(q.QueryRow(ctx, query,
		record.EmployeeID, record.PayPeriodID, record.RegularMinutes, record.OvertimeMinutes,
		record.RegularPayCents, record.OvertimePayCents, record.GrossPayCents, record.FederalTaxCents,
		record.StateTaxCents, record.SocialSecurityCents, record.MedicareCents,
		record.OtherDeductionsCents, record.NetPayCents,
	))
	if err != nil {
		// uk_pay_record_employee_period makes the idempotence check safe
		// under concurrent runs.
		if strings.Contains(err.Error(), "uk_pay_record_employee_period") {
			return payroll.PayRecord{}, payroll.ErrRecordAlreadyExists
		}
		return payroll.PayRecord{}, fmt.Errorf("failed to create pay record: %w", err)
	}
	return created, nil
}

func (r *payrollRepository) GetRecordByEmployeePeriod(ctx context.Context, employeeID, periodID string) (payroll.PayRecord, error) {
	q := GetQuerier(ctx, r.db)

	record, err := scanRecord(q.QueryRow(ctx, `
		SELECT `+recordColumns+` FROM pay_records
		WHERE employee_id = $1 AND pay_period_id = $2
	`, employeeID, periodID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayRecord{}, payroll.ErrRecordNotFound
		}
		return payroll.PayRecord{}, fmt.Errorf("failed to get pay record: %w", err)
	}
	return record, nil
}

func (r *payrollRepository) ListRecordsByPeriod(ctx context.Context, periodID string) ([]payroll.PayRecord, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT `+recordColumns+` FROM pay_records
		WHERE pay_period_id = $1
		ORDER BY employee_id
	`, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pay records: %w", err)
	}
	defer rows.Close()

	var records []payroll.PayRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pay record: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func (r *payrollRepository) CountRecordsByPeriod(ctx context.Context, periodID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM pay_records WHERE pay_period_id = $1`, periodID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count pay records: %w", err)
	}
	return count, nil
}

func (r *payrollRepository) SumRecordTotals(ctx context.Context, periodID string) (payroll.PeriodTotals, error) {
	q := GetQuerier(ctx, r.db)

	var totals payroll.PeriodTotals
	err := q.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(gross_pay_cents), 0),
			COALESCE(SUM(net_pay_cents), 0),
			COALESCE(SUM(federal_tax_cents + state_tax_cents + social_security_cents + medicare_cents), 0)
		FROM pay_records
		WHERE pay_period_id = $1
	`, periodID).Scan(&totals.GrossCents, &totals.NetCents, &totals.TaxCents)
	if err != nil {
		return payroll.PeriodTotals{}, fmt.Errorf("failed to sum pay record totals: %w", err)
	}
	return totals, nil
}

// ========== AGGREGATIONS ==========

// YTDTotals sums an employee's records for periods whose pay date falls in
// the given calendar year.
func (r *payrollRepository) YTDTotals(ctx context.Context, employeeID string, year int) (payroll.YTDTotals, error) {
	q := GetQuerier(ctx, r.db)

	var totals payroll.YTDTotals
	err := q.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(r.gross_pay_cents), 0),
			COALESCE(SUM(r.federal_tax_cents), 0),
			COALESCE(SUM(r.state_tax_cents), 0),
			COALESCE(SUM(r.social_security_cents), 0),
			COALESCE(SUM(r.medicare_cents), 0),
			COALESCE(SUM(r.net_pay_cents), 0)
		FROM pay_records r
		JOIN pay_periods p ON r.pay_period_id = p.id
		WHERE r.employee_id = $1 AND EXTRACT(YEAR FROM p.pay_date) = $2
	`, employeeID, year).Scan(
		&totals.GrossCents, &totals.FederalTaxCents, &totals.StateTaxCents,
		&totals.SocialSecurityCents, &totals.MedicareCents, &totals.NetCents,
	)
	if err != nil {
		return payroll.YTDTotals{}, fmt.Errorf("failed to sum year-to-date totals: %w", err)
	}
	return totals, nil
}

func scanPeriod(row pgx.Row) (payroll.PayPeriod, error) {
	var p payroll.PayPeriod
	err := row.Scan(
		&p.ID, &p.StartDate, &p.EndDate, &p.PayDate, &p.Status, &p.TotalGrossCents,
		&p.TotalNetCents, &p.TotalTaxCents, &p.ProcessedBy, &p.ProcessedAt,
		&p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func scanRecord(row pgx.Row) (payroll.PayRecord, error) {
	var rec payroll.PayRecord
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.PayPeriodID, &rec.RegularMinutes, &rec.OvertimeMinutes,
		&rec.RegularPayCents, &rec.OvertimePayCents, &rec.GrossPayCents, &rec.FederalTaxCents,
		&rec.StateTaxCents, &rec.SocialSecurityCents, &rec.MedicareCents,
		&rec.OtherDeductionsCents, &rec.NetPayCents, &rec.CreatedAt,
	)
	return rec, err
}
