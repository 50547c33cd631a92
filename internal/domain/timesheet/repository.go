package timesheet

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, entry Entry) (Entry, error)
	GetByID(ctx context.Context, id string) (Entry, error)
	Approve(ctx context.Context, id string) error
	ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]Entry, error)
	// ListApprovedInRange returns only approved entries; the payroll engine
	// never sees unapproved rows.
	ListApprovedInRange(ctx context.Context, employeeID string, from, to time.Time) ([]Entry, error)
	CountUnapprovedInRange(ctx context.Context, from, to time.Time) (int64, error)
}
