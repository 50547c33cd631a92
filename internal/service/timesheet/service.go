package timesheet

import (
	"context"
	"time"

	"github.com/littlesprouts/daycare-backend-go/internal/domain/employee"
	"github.com/littlesprouts/daycare-backend-go/internal/domain/timesheet"
)

// Service is the time-tracking feeder: clock/manual entries come in here and
// the payroll engine reads only the approved ones back out.
type Service struct {
	repo         timesheet.Repository
	employeeRepo employee.Repository
}

func NewService(repo timesheet.Repository, employeeRepo employee.Repository) *Service {
	return &Service{repo: repo, employeeRepo: employeeRepo}
}

func (s *Service) Create(ctx context.Context, req timesheet.CreateEntryRequest) (timesheet.EntryResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.EntryResponse{}, err
	}
	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return timesheet.EntryResponse{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	entry := timesheet.Entry{
		EmployeeID:    req.EmployeeID,
		Date:          date,
		BreakMinutes:  req.BreakMinutes,
		ManualMinutes: req.ManualMinutes,
	}
	if req.ClockIn != nil {
		t, _ := time.Parse(time.RFC3339, *req.ClockIn)
		entry.ClockIn = &t
	}
	if req.ClockOut != nil {
		t, _ := time.Parse(time.RFC3339, *req.ClockOut)
		entry.ClockOut = &t
	}

	created, err := s.repo.Create(ctx, entry)
	if err != nil {
		return timesheet.EntryResponse{}, err
	}
	return timesheet.ToEntryResponse(created), nil
}

func (s *Service) Approve(ctx context.Context, id string) error {
	return s.repo.Approve(ctx, id)
}

func (s *Service) ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]timesheet.EntryResponse, error) {
	entries, err := s.repo.ListByEmployee(ctx, employeeID, from, to)
	if err != nil {
		return nil, err
	}
	result := make([]timesheet.EntryResponse, 0, len(entries))
	for _, e := range entries {
		result = append(result, timesheet.ToEntryResponse(e))
	}
	return result, nil
}

// CountUnapproved tells admins how many entries in a date range would be
// excluded from a payroll run.
func (s *Service) CountUnapproved(ctx context.Context, from, to time.Time) (int64, error) {
	return s.repo.CountUnapprovedInRange(ctx, from, to)
}
