package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/littlesprouts/daycare-backend-go/internal/domain/employee"
	"github.com/littlesprouts/daycare-backend-go/internal/domain/payroll"
	"github.com/littlesprouts/daycare-backend-go/internal/domain/timesheet"
)

// Service is the Pay Period Processor: it orchestrates aggregation, gross
// pay and withholding per employee for a whole period, persists the results
// and reports the batch outcome.
type Service struct {
	payrollRepo   payroll.Repository
	employeeRepo  employee.Repository
	timesheetRepo timesheet.Repository
	cfg           payroll.TaxConfig
	logger        *slog.Logger
}

func NewService(
	payrollRepo payroll.Repository,
	employeeRepo employee.Repository,
	timesheetRepo timesheet.Repository,
	cfg payroll.TaxConfig,
	logger *slog.Logger,
) *Service {
	return &Service{
		payrollRepo:   payrollRepo,
		employeeRepo:  employeeRepo,
		timesheetRepo: timesheetRepo,
		cfg:           cfg,
		logger:        logger,
	}
}

// ========== PERIOD ADMINISTRATION ==========

func (s *Service) CreatePeriod(ctx context.Context, req payroll.CreatePeriodRequest) (payroll.PeriodResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PeriodResponse{}, err
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)
	pay, _ := time.Parse("2006-01-02", req.PayDate)

	period, err := s.payrollRepo.CreatePeriod(ctx, payroll.PayPeriod{
		StartDate: start,
		EndDate:   end,
		PayDate:   pay,
		Status:    payroll.PeriodStatusOpen,
	})
	if err != nil {
		return payroll.PeriodResponse{}, err
	}

	return payroll.ToPeriodResponse(period), nil
}

func (s *Service) GetPeriod(ctx context.Context, id string) (payroll.PeriodResponse, error) {
	period, err := s.payrollRepo.GetPeriodByID(ctx, id)
	if err != nil {
		return payroll.PeriodResponse{}, err
	}
	return payroll.ToPeriodResponse(period), nil
}

func (s *Service) ListPeriods(ctx context.Context) ([]payroll.PeriodResponse, error) {
	periods, err := s.payrollRepo.ListPeriods(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]payroll.PeriodResponse, 0, len(periods))
	for _, p := range periods {
		result = append(result, payroll.ToPeriodResponse(p))
	}
	return result, nil
}

func (s *Service) ListRecords(ctx context.Context, periodID string) ([]payroll.PayRecordResponse, error) {
	if _, err := s.payrollRepo.GetPeriodByID(ctx, periodID); err != nil {
		return nil, err
	}
	records, err := s.payrollRepo.ListRecordsByPeriod(ctx, periodID)
	if err != nil {
		return nil, err
	}
	result := make([]payroll.PayRecordResponse, 0, len(records))
	for _, r := range records {
		result = append(result, payroll.ToPayRecordResponse(r))
	}
	return result, nil
}

func (s *Service) YTD(ctx context.Context, employeeID string, year int) (payroll.YTDResponse, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return payroll.YTDResponse{}, err
	}
	totals, err := s.payrollRepo.YTDTotals(ctx, employeeID, year)
	if err != nil {
		return payroll.YTDResponse{}, err
	}
	return payroll.ToYTDResponse(employeeID, year, totals), nil
}

// ========== BATCH PROCESSING ==========

// Run processes every active employee for the period. The period must be
// open, or processing when resuming an interrupted run. Configuration
// problems abort before any record is written; per-employee failures are
// collected and never stop the rest of the batch.
func (s *Service) Run(ctx context.Context, periodID, processedBy string) (payroll.BatchReport, error) {
	period, err := s.payrollRepo.GetPeriodByID(ctx, periodID)
	if err != nil {
		return payroll.BatchReport{}, err
	}
	switch period.Status {
	case payroll.PeriodStatusOpen, payroll.PeriodStatusProcessing:
	case payroll.PeriodStatusClosed:
		return payroll.BatchReport{}, payroll.ErrPeriodClosed
	default:
		return payroll.BatchReport{}, payroll.ErrPeriodNotOpen
	}

	// Pre-flight: every computation depends on this shared configuration, so
	// any problem here is fatal before side effects begin.
	if err := s.cfg.Validate(); err != nil {
		return payroll.BatchReport{}, err
	}
	employees, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return payroll.BatchReport{}, err
	}
	for _, emp := range employees {
		if _, err := s.cfg.StateFor(emp.StateCode); err != nil {
			return payroll.BatchReport{}, fmt.Errorf("employee %s: %w", emp.ID, err)
		}
	}

	if period.Status == payroll.PeriodStatusOpen {
		if err := s.payrollRepo.UpdatePeriodStatus(ctx, periodID, payroll.PeriodStatusProcessing); err != nil {
			return payroll.BatchReport{}, err
		}
	}

	s.logger.Info("payroll run started",
		slog.String("period_id", periodID),
		slog.String("processed_by", processedBy),
		slog.Int("employees", len(employees)),
	)

	report := payroll.BatchReport{PeriodID: periodID}
	var mu sync.Mutex
	appendOutcome := func(o payroll.EmployeeOutcome) {
		mu.Lock()
		defer mu.Unlock()
		switch o.Status {
		case payroll.OutcomeSucceeded:
			report.Succeeded = append(report.Succeeded, o)
		case payroll.OutcomeSkipped:
			report.Skipped = append(report.Skipped, o)
		default:
			report.Failed = append(report.Failed, o)
		}
	}

	// Employees are independent of each other, so the batch fans out over a
	// bounded pool. Within one run each employee is handled exactly once,
	// which keeps per-employee YTD reads consistent.
	var g errgroup.Group
	g.SetLimit(s.cfg.Workers())
	for _, emp := range employees {
		emp := emp
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			appendOutcome(s.processEmployee(ctx, emp, period))
			return nil
		})
	}
	_ = g.Wait()

	sortOutcomes(&report)

	// Recompute the aggregate from the store so the period totals always
	// equal the sum of its committed records, including ones from a prior
	// interrupted run.
	totals, err := s.payrollRepo.SumRecordTotals(ctx, periodID)
	if err != nil {
		return report, err
	}

	if ctx.Err() != nil {
		// Cancellation: committed records stay valid, period stays in
		// processing so a later run can resume.
		_ = s.payrollRepo.UpdatePeriodTotals(context.WithoutCancel(ctx), periodID, totals)
		return report, ctx.Err()
	}

	if report.HasFailures() {
		if err := s.payrollRepo.UpdatePeriodTotals(ctx, periodID, totals); err != nil {
			return report, err
		}
		s.logger.Warn("payroll run finished with failures",
			slog.String("period_id", periodID),
			slog.Int("succeeded", len(report.Succeeded)),
			slog.Int("skipped", len(report.Skipped)),
			slog.Int("failed", len(report.Failed)),
		)
		return report, nil
	}

	if err := s.payrollRepo.ClosePeriod(ctx, periodID, totals, processedBy); err != nil {
		return report, err
	}
	s.logger.Info("payroll run closed period",
		slog.String("period_id", periodID),
		slog.Int("succeeded", len(report.Succeeded)),
		slog.Int("skipped", len(report.Skipped)),
	)
	return report, nil
}

// processEmployee runs the full pipeline for one employee and classifies the
// outcome. All errors end up in the outcome, never returned, so one
// employee's failure cannot abort the batch.
func (s *Service) processEmployee(ctx context.Context, emp employee.Employee, period payroll.PayPeriod) payroll.EmployeeOutcome {
	outcome := payroll.EmployeeOutcome{EmployeeID: emp.ID}

	// Idempotence: a committed record for this (employee, period) pair is
	// immutable, so reprocessing skips instead of duplicating.
	if _, err := s.payrollRepo.GetRecordByEmployeePeriod(ctx, emp.ID, period.ID); err == nil {
		outcome.Status = payroll.OutcomeSkipped
		outcome.Reason = "already processed"
		return outcome
	} else if !errors.Is(err, payroll.ErrRecordNotFound) {
		outcome.Status = payroll.OutcomeFailed
		outcome.Reason = fmt.Sprintf("checking existing record: %v", err)
		return outcome
	}

	entries, err := s.timesheetRepo.ListApprovedInRange(ctx, emp.ID, period.StartDate, period.EndDate)
	if err != nil {
		outcome.Status = payroll.OutcomeFailed
		outcome.Reason = fmt.Sprintf("fetching timesheets: %v", err)
		return outcome
	}

	ytd, err := s.payrollRepo.YTDTotals(ctx, emp.ID, period.PayDate.Year())
	if err != nil {
		outcome.Status = payroll.OutcomeFailed
		outcome.Reason = fmt.Sprintf("fetching year-to-date totals: %v", err)
		return outcome
	}

	record, warnings, err := CalculateEmployeePay(emp, entries, period, ytd.GrossCents, s.cfg)
	outcome.Warnings = warnings
	if err != nil {
		outcome.Status = payroll.OutcomeFailed
		outcome.Reason = err.Error()
		return outcome
	}

	created, err := s.payrollRepo.CreatePayRecord(ctx, record)
	if err != nil {
		if errors.Is(err, payroll.ErrRecordAlreadyExists) {
			outcome.Status = payroll.OutcomeSkipped
			outcome.Reason = "already processed"
			return outcome
		}
		outcome.Status = payroll.OutcomeFailed
		outcome.Reason = fmt.Sprintf("persisting pay record: %v", err)
		s.logger.Error("pay record persistence failed",
			slog.String("employee_id", emp.ID),
			slog.String("period_id", period.ID),
			slog.Any("error", err),
		)
		return outcome
	}

	outcome.Status = payroll.OutcomeSucceeded
	outcome.Record = &created
	return outcome
}

// Close finalizes a period that ended a run with failures. Unless
// acceptFailures is set, every active employee must already have a record.
func (s *Service) Close(ctx context.Context, periodID, processedBy string, acceptFailures bool) (payroll.PeriodResponse, error) {
	period, err := s.payrollRepo.GetPeriodByID(ctx, periodID)
	if err != nil {
		return payroll.PeriodResponse{}, err
	}
	if period.Status == payroll.PeriodStatusClosed {
		return payroll.PeriodResponse{}, payroll.ErrPeriodClosed
	}
	if period.Status != payroll.PeriodStatusProcessing {
		return payroll.PeriodResponse{}, payroll.ErrPeriodNotOpen
	}

	if !acceptFailures {
		employees, err := s.employeeRepo.ListActive(ctx)
		if err != nil {
			return payroll.PeriodResponse{}, err
		}
		count, err := s.payrollRepo.CountRecordsByPeriod(ctx, periodID)
		if err != nil {
			return payroll.PeriodResponse{}, err
		}
		if count < int64(len(employees)) {
			return payroll.PeriodResponse{}, payroll.ErrPeriodIncomplete
		}
	}

	totals, err := s.payrollRepo.SumRecordTotals(ctx, periodID)
	if err != nil {
		return payroll.PeriodResponse{}, err
	}
	if err := s.payrollRepo.ClosePeriod(ctx, periodID, totals, processedBy); err != nil {
		return payroll.PeriodResponse{}, err
	}

	return s.GetPeriod(ctx, periodID)
}

func sortOutcomes(r *payroll.BatchReport) {
	byID := func(outcomes []payroll.EmployeeOutcome) {
		sort.Slice(outcomes, func(i, j int) bool {
			return outcomes[i].EmployeeID < outcomes[j].EmployeeID
		})
	}
	byID(r.Succeeded)
	byID(r.Skipped)
	byID(r.Failed)
}
