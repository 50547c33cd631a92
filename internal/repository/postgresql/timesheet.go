package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/littlesprouts/daycare-backend-go/internal/domain/timesheet"
	"github.com/littlesprouts/daycare-backend-go/internal/pkg/database"
)

type timesheetRepository struct {
	db *database.DB
}

func NewTimesheetRepository(db *database.DB) timesheet.Repository {
	return &timesheetRepository{db: db}
}

const entryColumns = `
	id, employee_id, date, clock_in, clock_out, break_minutes,
	manual_minutes, approved, created_at, updated_at
`

func (r *timesheetRepository) Create(ctx context.Context, entry timesheet.Entry) (timesheet.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO timesheet_entries (
			employee_id, date, clock_in, clock_out, break_minutes, manual_minutes, approved
		) VALUES ($1, $2, $3, $4, $5, $6, false)
		RETURNING ` + entryColumns

	created, err := scanEntry(q.QueryRow(ctx, query,
		entry.EmployeeID, entry.Date, entry.ClockIn, entry.ClockOut,
		entry.BreakMinutes, entry.ManualMinutes,
	))
	if err != nil {
		return timesheet.Entry{}, fmt.Errorf("failed to create timesheet entry: %w", err)
	}
	return created, nil
}

func (r *timesheetRepository) GetByID(ctx context.Context, id string) (timesheet.Entry, error) {
	q := GetQuerier(ctx, r.db)

	entry, err := scanEntry(q.QueryRow(ctx, `SELECT `+entryColumns+` FROM timesheet_entries WHERE id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return timesheet.Entry{}, timesheet.ErrEntryNotFound
		}
		return timesheet.Entry{}, fmt.Errorf("failed to get timesheet entry: %w", err)
	}
	return entry, nil
}

func (r *timesheetRepository) Approve(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE timesheet_entries SET approved = true, updated_at = NOW()
		WHERE id = $1 AND approved = false
	`, id)
	if err != nil {
		return fmt.Errorf("failed to approve timesheet entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return getErr
		}
		return timesheet.ErrEntryAlreadyApproved
	}
	return nil
}

func (r *timesheetRepository) ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]timesheet.Entry, error) {
	return r.list(ctx, `
		SELECT `+entryColumns+`
		FROM timesheet_entries
		WHERE employee_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date
	`, employeeID, from, to)
}

func (r *timesheetRepository) ListApprovedInRange(ctx context.Context, employeeID string, from, to time.Time) ([]timesheet.Entry, error) {
	return r.list(ctx, `
		SELECT `+entryColumns+`
		FROM timesheet_entries
		WHERE employee_id = $1 AND date BETWEEN $2 AND $3 AND approved = true
		ORDER BY date
	`, employeeID, from, to)
}

func (r *timesheetRepository) CountUnapprovedInRange(ctx context.Context, from, to time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx, `
		SELECT COUNT(*) FROM timesheet_entries
		WHERE date BETWEEN $1 AND $2 AND approved = false
	`, from, to).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unapproved entries: %w", err)
	}
	return count, nil
}

func (r *timesheetRepository) list(ctx context.Context, query string, args ...interface{}) ([]timesheet.Entry, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list timesheet entries: %w", err)
	}
	defer rows.Close()

	var entries []timesheet.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan timesheet entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func scanEntry(row pgx.Row) (timesheet.Entry, error) {
	var e timesheet.Entry
	err := row.Scan(
		&e.ID, &e.EmployeeID, &e.Date, &e.ClockIn, &e.ClockOut, &e.BreakMinutes,
		&e.ManualMinutes, &e.Approved, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}
