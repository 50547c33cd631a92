package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/littlesprouts/daycare-backend-go/internal/domain/employee"
	"github.com/littlesprouts/daycare-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.Repository {
	return &employeeRepository{db: db}
}

const employeeColumns = `
	id, first_name, last_name, email, pay_basis_type, hourly_rate_cents,
	period_amount_cents, allowances, additional_withholding_cents,
	other_deductions_cents, state_code, is_active, created_at, updated_at
`

func (r *employeeRepository) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	basisType, hourlyRate, periodAmount := flattenPayBasis(emp.PayBasis)

	query := `
		INSERT INTO employees (
			first_name, last_name, email, pay_basis_type, hourly_rate_cents,
			period_amount_cents, allowances, additional_withholding_cents,
			other_deductions_cents, state_code, is_active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + employeeColumns

	row := q.QueryRow(ctx, query,
		emp.FirstName, emp.LastName, emp.Email, basisType, hourlyRate,
		periodAmount, emp.Allowances, emp.AdditionalWithholdingCents,
		emp.OtherDeductionsCents, emp.StateCode, emp.IsActive,
	)
	created, err := scanEmployee(row)
	if err != nil {
		if strings.Contains(err.Error(), "uk_employee_email") {
			return employee.Employee{}, employee.ErrEmailExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}
	return created, nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	emp, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return emp, nil
}

func (r *employeeRepository) List(ctx context.Context, activeOnly bool) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees`
	if activeOnly {
		query += ` WHERE is_active = true`
	}
	query += ` ORDER BY last_name, first_name`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

func (r *employeeRepository) ListActive(ctx context.Context) ([]employee.Employee, error) {
	return r.List(ctx, true)
}

func (r *employeeRepository) SetActive(ctx context.Context, id string, active bool) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE employees SET is_active = $2, updated_at = NOW() WHERE id = $1`, id, active)
	if err != nil {
		return fmt.Errorf("failed to update employee active flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

func flattenPayBasis(basis employee.PayBasis) (basisType string, hourlyRate, periodAmount *int64) {
	switch b := basis.(type) {
	case employee.Hourly:
		return employee.PayBasisTypeHourly, &b.RateCents, nil
	case employee.Salaried:
		return employee.PayBasisTypeSalaried, nil, &b.PeriodAmountCents
	}
	return "", nil, nil
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	var basisType string
	var hourlyRate, periodAmount *int64

	err := row.Scan(
		&emp.ID, &emp.FirstName, &emp.LastName, &emp.Email, &basisType, &hourlyRate,
		&periodAmount, &emp.Allowances, &emp.AdditionalWithholdingCents,
		&emp.OtherDeductionsCents, &emp.StateCode, &emp.IsActive, &emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		return employee.Employee{}, err
	}

	switch basisType {
	case employee.PayBasisTypeHourly:
		if hourlyRate != nil {
			emp.PayBasis = employee.Hourly{RateCents: *hourlyRate}
		}
	case employee.PayBasisTypeSalaried:
		if periodAmount != nil {
			emp.PayBasis = employee.Salaried{PeriodAmountCents: *periodAmount}
		}
	}
	if emp.PayBasis == nil {
		return employee.Employee{}, employee.ErrInvalidPayBasis
	}
	return emp, nil
}
