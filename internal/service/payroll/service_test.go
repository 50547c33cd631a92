package payroll

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/littlesprouts/daycare-backend-go/internal/domain/employee"
	"github.com/littlesprouts/daycare-backend-go/internal/domain/payroll"
	"github.com/littlesprouts/daycare-backend-go/internal/domain/timesheet"
)

// ========== IN-MEMORY FAKES ==========

type fakeEmployeeRepo struct {
	mu        sync.Mutex
	employees map[string]employee.Employee
}

func newFakeEmployeeRepo(emps ...employee.Employee) *fakeEmployeeRepo {
	repo := &fakeEmployeeRepo{employees: make(map[string]employee.Employee)}
	for _, e := range emps {
		repo.employees[e.ID] = e
	}
	return repo
}

func (r *fakeEmployeeRepo) Create(_ context.Context, emp employee.Employee) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.employees[emp.ID] = emp
	return emp, nil
}

func (r *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	emp, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (r *fakeEmployeeRepo) List(ctx context.Context, activeOnly bool) ([]employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []employee.Employee
	for _, e := range r.employees {
		if activeOnly && !e.IsActive {
			continue
		}
		result = append(result, e)
	}
	return result, nil
}

func (r *fakeEmployeeRepo) ListActive(ctx context.Context) ([]employee.Employee, error) {
	return r.List(ctx, true)
}

func (r *fakeEmployeeRepo) SetActive(_ context.Context, id string, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	emp, ok := r.employees[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	emp.IsActive = active
	r.employees[id] = emp
	return nil
}

type fakeTimesheetRepo struct {
	mu      sync.Mutex
	entries []timesheet.Entry
}

func (r *fakeTimesheetRepo) Create(_ context.Context, entry timesheet.Entry) (timesheet.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	return entry, nil
}

func (r *fakeTimesheetRepo) GetByID(_ context.Context, id string) (timesheet.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return timesheet.Entry{}, timesheet.ErrEntryNotFound
}

func (r *fakeTimesheetRepo) Approve(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, e := range r.entries {
		if e.ID == id {
			r.entries[i].Approved = true
			return nil
		}
	}
	return timesheet.ErrEntryNotFound
}

func (r *fakeTimesheetRepo) ListByEmployee(_ context.Context, employeeID string, from, to time.Time) ([]timesheet.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []timesheet.Entry
	for _, e := range r.entries {
		if e.EmployeeID == employeeID && !e.Date.Before(from) && !e.Date.After(to) {
			result = append(result, e)
		}
	}
	return result, nil
}

func (r *fakeTimesheetRepo) ListApprovedInRange(ctx context.Context, employeeID string, from, to time.Time) ([]timesheet.Entry, error) {
	all, _ := r.ListByEmployee(ctx, employeeID, from, to)
	var result []timesheet.Entry
	for _, e := range all {
		if e.Approved {
			result = append(result, e)
		}
	}
	return result, nil
}

func (r *fakeTimesheetRepo) CountUnapprovedInRange(_ context.Context, from, to time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, e := range r.entries {
		if !e.Approved && !e.Date.Before(from) && !e.Date.After(to) {
			count++
		}
	}
	return count, nil
}

type fakePayrollRepo struct {
	mu          sync.Mutex
	periods     map[string]payroll.PayPeriod
	records     map[string]payroll.PayRecord
	failCreate  map[string]error
	nextID      int
	createCalls int
}

func newFakePayrollRepo(periods ...payroll.PayPeriod) *fakePayrollRepo {
	repo := &fakePayrollRepo{
		periods:    make(map[string]payroll.PayPeriod),
		records:    make(map[string]payroll.PayRecord),
		failCreate: make(map[string]error),
	}
	for _, p := range periods {
		repo.periods[p.ID] = p
	}
	return repo
}

func recordKey(employeeID, periodID string) string {
	return employeeID + "|" + periodID
}

func (r *fakePayrollRepo) CreatePeriod(_ context.Context, period payroll.PayPeriod) (payroll.PayPeriod, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	period.ID = fmt.Sprintf("period-%d", r.nextID)
	r.periods[period.ID] = period
	return period, nil
}

func (r *fakePayrollRepo) GetPeriodByID(_ context.Context, id string) (payroll.PayPeriod, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	period, ok := r.periods[id]
	if !ok {
		return payroll.PayPeriod{}, payroll.ErrPeriodNotFound
	}
	return period, nil
}

func (r *fakePayrollRepo) ListPeriods(_ context.Context) ([]payroll.PayPeriod, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []payroll.PayPeriod
	for _, p := range r.periods {
		result = append(result, p)
	}
	return result, nil
}

func (r *fakePayrollRepo) UpdatePeriodStatus(_ context.Context, id string, status payroll.PeriodStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	period, ok := r.periods[id]
	if !ok {
		return payroll.ErrPeriodNotFound
	}
	period.Status = status
	r.periods[id] = period
	return nil
}

func (r *fakePayrollRepo) UpdatePeriodTotals(_ context.Context, id string, totals payroll.PeriodTotals) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	period, ok := r.periods[id]
	if !ok {
		return payroll.ErrPeriodNotFound
	}
	period.TotalGrossCents = totals.GrossCents
	period.TotalNetCents = totals.NetCents
	period.TotalTaxCents = totals.TaxCents
	r.periods[id] = period
	return nil
}

func (r *fakePayrollRepo) ClosePeriod(_ context.Context, id string, totals payroll.PeriodTotals, processedBy string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	period, ok := r.periods[id]
	if !ok {
		return payroll.ErrPeriodNotFound
	}
	if period.Status == payroll.PeriodStatusClosed {
		return payroll.ErrPeriodClosed
	}
	now := time.Now()
	period.Status = payroll.PeriodStatusClosed
	period.TotalGrossCents = totals.GrossCents
	period.TotalNetCents = totals.NetCents
	period.TotalTaxCents = totals.TaxCents
	period.ProcessedBy = &processedBy
	period.ProcessedAt = &now
	r.periods[id] = period
	return nil
}

func (r *fakePayrollRepo) CreatePayRecord(_ context.Context, record payroll.PayRecord) (payroll.PayRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.createCalls++
	if err, ok := r.failCreate[record.EmployeeID]; ok {
		return payroll.PayRecord{}, err
	}
	key := recordKey(record.EmployeeID, record.PayPeriodID)
	if _, exists := r.records[key]; exists {
		return payroll.PayRecord{}, payroll.ErrRecordAlreadyExists
	}
	r.nextID++
	record.ID = fmt.Sprintf("rec-%d", r.nextID)
	record.CreatedAt = time.Now()
	r.records[key] = record
	return record, nil
}

func (r *fakePayrollRepo) GetRecordByEmployeePeriod(_ context.Context, employeeID, periodID string) (payroll.PayRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[recordKey(employeeID, periodID)]
	if !ok {
		return payroll.PayRecord{}, payroll.ErrRecordNotFound
	}
	return record, nil
}

func (r *fakePayrollRepo) ListRecordsByPeriod(_ context.Context, periodID string) ([]payroll.PayRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []payroll.PayRecord
	for _, rec := range r.records {
		if rec.PayPeriodID == periodID {
			result = append(result, rec)
		}
	}
	return result, nil
}

func (r *fakePayrollRepo) CountRecordsByPeriod(ctx context.Context, periodID string) (int64, error) {
	records, _ := r.ListRecordsByPeriod(ctx, periodID)
	return int64(len(records)), nil
}

func (r *fakePayrollRepo) SumRecordTotals(ctx context.Context, periodID string) (payroll.PeriodTotals, error) {
	records, _ := r.ListRecordsByPeriod(ctx, periodID)
	var totals payroll.PeriodTotals
	for _, rec := range records {
		totals.GrossCents += rec.GrossPayCents
		totals.NetCents += rec.NetPayCents
		totals.TaxCents += rec.TotalTaxCents()
	}
	return totals, nil
}

func (r *fakePayrollRepo) YTDTotals(_ context.Context, employeeID string, year int) (payroll.YTDTotals, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var totals payroll.YTDTotals
	for _, rec := range r.records {
		if rec.EmployeeID != employeeID {
			continue
		}
		period, ok := r.periods[rec.PayPeriodID]
		if !ok || period.PayDate.Year() != year {
			continue
		}
		totals.GrossCents += rec.GrossPayCents
		totals.FederalTaxCents += rec.FederalTaxCents
		totals.StateTaxCents += rec.StateTaxCents
		totals.SocialSecurityCents += rec.SocialSecurityCents
		totals.MedicareCents += rec.MedicareCents
		totals.NetCents += rec.NetPayCents
	}
	return totals, nil
}

// ========== TEST SETUP ==========

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func hourlyEmployee(id, state string, rateCents int64) employee.Employee {
	return employee.Employee{
		ID:        id,
		FirstName: "Test",
		LastName:  id,
		Email:     id + "@example.com",
		PayBasis:  employee.Hourly{RateCents: rateCents},
		StateCode: state,
		IsActive:  true,
	}
}

func salariedEmployee(id, state string, periodCents int64) employee.Employee {
	emp := hourlyEmployee(id, state, 0)
	emp.PayBasis = employee.Salaried{PeriodAmountCents: periodCents}
	return emp
}

func seedTimesheets(repo *fakeTimesheetRepo, employeeID string, day time.Time, minutes int64) {
	entry := manualEntry("ts-"+employeeID, day, minutes)
	entry.EmployeeID = employeeID
	repo.entries = append(repo.entries, entry)
}

// ========== RUN ==========

func TestPayrollService_Run_ProcessesAllEmployees(t *testing.T) {
	period := testPeriod()
	payrollRepo := newFakePayrollRepo(period)
	employeeRepo := newFakeEmployeeRepo(
		hourlyEmployee("emp-a", "CA", 2_500),
		salariedEmployee("emp-b", "WA", 250_000),
	)
	timesheetRepo := &fakeTimesheetRepo{}
	seedTimesheets(timesheetRepo, "emp-a", period.StartDate, 2400)
	svc := NewService(payrollRepo, employeeRepo, timesheetRepo, testTaxConfig(), testLogger())

	report, err := svc.Run(context.Background(), period.ID, "admin-1")

	require.NoError(t, err)
	require.Len(t, report.Succeeded, 2)
	assert.Empty(t, report.Skipped)
	assert.Empty(t, report.Failed)
	assert.Equal(t, "emp-a", report.Succeeded[0].EmployeeID)
	assert.Equal(t, "emp-b", report.Succeeded[1].EmployeeID)

	closed, err := payrollRepo.GetPeriodByID(context.Background(), period.ID)
	require.NoError(t, err)
	assert.Equal(t, payroll.PeriodStatusClosed, closed.Status)
	require.NotNil(t, closed.ProcessedBy)
	assert.Equal(t, "admin-1", *closed.ProcessedBy)
	assert.NotNil(t, closed.ProcessedAt)

	// Period totals must equal the sum over committed records.
	records, err := payrollRepo.ListRecordsByPeriod(context.Background(), period.ID)
	require.NoError(t, err)
	require.Len(t, records, 2)
	var gross, net, tax int64
	for _, rec := range records {
		gross += rec.GrossPayCents
		net += rec.NetPayCents
		tax += rec.TotalTaxCents()
	}
	assert.Equal(t, gross, closed.TotalGrossCents)
	assert.Equal(t, net, closed.TotalNetCents)
	assert.Equal(t, tax, closed.TotalTaxCents)
}

func TestPayrollService_Run_Idempotent(t *testing.T) {
	period := testPeriod()
	period.Status = payroll.PeriodStatusProcessing
	payrollRepo := newFakePayrollRepo(period)
	employeeRepo := newFakeEmployeeRepo(
		hourlyEmployee("emp-a", "CA", 2_500),
		hourlyEmployee("emp-b", "CA", 2_500),
	)
	timesheetRepo := &fakeTimesheetRepo{}
	seedTimesheets(timesheetRepo, "emp-a", period.StartDate, 2400)
	seedTimesheets(timesheetRepo, "emp-b", period.StartDate, 2400)
	svc := NewService(payrollRepo, employeeRepo, timesheetRepo, testTaxConfig(), testLogger())

	// emp-a already has a committed record from an interrupted earlier run.
	existing, err := payrollRepo.CreatePayRecord(context.Background(), payroll.PayRecord{
		EmployeeID:    "emp-a",
		PayPeriodID:   period.ID,
		GrossPayCents: 100_000,
		NetPayCents:   80_000,
	})
	require.NoError(t, err)

	report, err := svc.Run(context.Background(), period.ID, "admin-1")

	require.NoError(t, err)
	require.Len(t, report.Skipped, 1)
	assert.Equal(t, "emp-a", report.Skipped[0].EmployeeID)
	assert.Equal(t, "already processed", report.Skipped[0].Reason)
	require.Len(t, report.Succeeded, 1)
	assert.Equal(t, "emp-b", report.Succeeded[0].EmployeeID)

	// The earlier record is untouched and not duplicated.
	record, err := payrollRepo.GetRecordByEmployeePeriod(context.Background(), "emp-a", period.ID)
	require.NoError(t, err)
	assert.Equal(t, existing.ID, record.ID)
	assert.Equal(t, int64(100_000), record.GrossPayCents)
	count, err := payrollRepo.CountRecordsByPeriod(context.Background(), period.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	closed, _ := payrollRepo.GetPeriodByID(context.Background(), period.ID)
	assert.Equal(t, payroll.PeriodStatusClosed, closed.Status)
}

func TestPayrollService_Run_IsolatesEmployeeFailure(t *testing.T) {
	period := testPeriod()
	payrollRepo := newFakePayrollRepo(period)
	payrollRepo.failCreate["emp-b"] = errors.New("connection reset")
	employeeRepo := newFakeEmployeeRepo(
		hourlyEmployee("emp-a", "CA", 2_500),
		hourlyEmployee("emp-b", "CA", 2_500),
		hourlyEmployee("emp-c", "CA", 2_500),
	)
	timesheetRepo := &fakeTimesheetRepo{}
	for _, id := range []string{"emp-a", "emp-b", "emp-c"} {
		seedTimesheets(timesheetRepo, id, period.StartDate, 2400)
	}
	svc := NewService(payrollRepo, employeeRepo, timesheetRepo, testTaxConfig(), testLogger())

	report, err := svc.Run(context.Background(), period.ID, "admin-1")

	// A per-employee failure is reported, not returned.
	require.NoError(t, err)
	require.Len(t, report.Succeeded, 2)
	assert.Equal(t, "emp-a", report.Succeeded[0].EmployeeID)
	assert.Equal(t, "emp-c", report.Succeeded[1].EmployeeID)
	require.Len(t, report.Failed, 1)
	assert.Equal(t, "emp-b", report.Failed[0].EmployeeID)
	assert.Contains(t, report.Failed[0].Reason, "connection reset")

	// No partial record for the failed employee; period stays open for a
	// retry instead of closing.
	_, err = payrollRepo.GetRecordByEmployeePeriod(context.Background(), "emp-b", period.ID)
	assert.ErrorIs(t, err, payroll.ErrRecordNotFound)
	current, _ := payrollRepo.GetPeriodByID(context.Background(), period.ID)
	assert.Equal(t, payroll.PeriodStatusProcessing, current.Status)

	// Totals reflect only the committed records.
	totals, err := payrollRepo.SumRecordTotals(context.Background(), period.ID)
	require.NoError(t, err)
	assert.Equal(t, totals.GrossCents, current.TotalGrossCents)
	assert.Equal(t, totals.NetCents, current.TotalNetCents)
}

func TestPayrollService_Run_InvalidConfigAbortsBeforeSideEffects(t *testing.T) {
	period := testPeriod()
	payrollRepo := newFakePayrollRepo(period)
	employeeRepo := newFakeEmployeeRepo(hourlyEmployee("emp-a", "CA", 2_500))
	cfg := testTaxConfig()
	cfg.FederalBrackets = nil
	svc := NewService(payrollRepo, employeeRepo, &fakeTimesheetRepo{}, cfg, testLogger())

	_, err := svc.Run(context.Background(), period.ID, "admin-1")

	assert.ErrorIs(t, err, payroll.ErrInvalidTaxConfig)
	assert.Zero(t, payrollRepo.createCalls)
	current, _ := payrollRepo.GetPeriodByID(context.Background(), period.ID)
	assert.Equal(t, payroll.PeriodStatusOpen, current.Status)
}

func TestPayrollService_Run_UnknownJurisdictionAborts(t *testing.T) {
	period := testPeriod()
	payrollRepo := newFakePayrollRepo(period)
	employeeRepo := newFakeEmployeeRepo(
		hourlyEmployee("emp-a", "CA", 2_500),
		hourlyEmployee("emp-b", "ZZ", 2_500),
	)
	svc := NewService(payrollRepo, employeeRepo, &fakeTimesheetRepo{}, testTaxConfig(), testLogger())

	_, err := svc.Run(context.Background(), period.ID, "admin-1")

	assert.ErrorIs(t, err, payroll.ErrUnknownJurisdiction)
	assert.Zero(t, payrollRepo.createCalls)
}

func TestPayrollService_Run_ClosedPeriodRejected(t *testing.T) {
	period := testPeriod()
	period.Status = payroll.PeriodStatusClosed
	payrollRepo := newFakePayrollRepo(period)
	svc := NewService(payrollRepo, newFakeEmployeeRepo(), &fakeTimesheetRepo{}, testTaxConfig(), testLogger())

	_, err := svc.Run(context.Background(), period.ID, "admin-1")

	assert.ErrorIs(t, err, payroll.ErrPeriodClosed)
}

func TestPayrollService_Run_CancelledContextLeavesPeriodResumable(t *testing.T) {
	period := testPeriod()
	payrollRepo := newFakePayrollRepo(period)
	employeeRepo := newFakeEmployeeRepo(hourlyEmployee("emp-a", "CA", 2_500))
	svc := NewService(payrollRepo, employeeRepo, &fakeTimesheetRepo{}, testTaxConfig(), testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := svc.Run(ctx, period.ID, "admin-1")

	assert.ErrorIs(t, err, context.Canceled)
	current, _ := payrollRepo.GetPeriodByID(context.Background(), period.ID)
	assert.Equal(t, payroll.PeriodStatusProcessing, current.Status)
	count, _ := payrollRepo.CountRecordsByPeriod(context.Background(), period.ID)
	assert.Zero(t, count)
}

// ========== CLOSE ==========

func TestPayrollService_Close_RequiresAllRecords(t *testing.T) {
	period := testPeriod()
	period.Status = payroll.PeriodStatusProcessing
	payrollRepo := newFakePayrollRepo(period)
	employeeRepo := newFakeEmployeeRepo(
		hourlyEmployee("emp-a", "CA", 2_500),
		hourlyEmployee("emp-b", "CA", 2_500),
	)
	svc := NewService(payrollRepo, employeeRepo, &fakeTimesheetRepo{}, testTaxConfig(), testLogger())

	_, err := payrollRepo.CreatePayRecord(context.Background(), payroll.PayRecord{
		EmployeeID:    "emp-a",
		PayPeriodID:   period.ID,
		GrossPayCents: 100_000,
		NetPayCents:   80_000,
	})
	require.NoError(t, err)

	_, err = svc.Close(context.Background(), period.ID, "admin-1", false)
	assert.ErrorIs(t, err, payroll.ErrPeriodIncomplete)

	resp, err := svc.Close(context.Background(), period.ID, "admin-1", true)
	require.NoError(t, err)
	assert.Equal(t, string(payroll.PeriodStatusClosed), resp.Status)
	assert.Equal(t, "1000.00", resp.TotalGross)
}

func TestPayrollService_Close_NotProcessingRejected(t *testing.T) {
	open := testPeriod()
	payrollRepo := newFakePayrollRepo(open)
	svc := NewService(payrollRepo, newFakeEmployeeRepo(), &fakeTimesheetRepo{}, testTaxConfig(), testLogger())

	_, err := svc.Close(context.Background(), open.ID, "admin-1", true)
	assert.ErrorIs(t, err, payroll.ErrPeriodNotOpen)
}

// ========== PERIOD ADMINISTRATION ==========

func TestPayrollService_CreatePeriod_Validates(t *testing.T) {
	payrollRepo := newFakePayrollRepo()
	svc := NewService(payrollRepo, newFakeEmployeeRepo(), &fakeTimesheetRepo{}, testTaxConfig(), testLogger())

	_, err := svc.CreatePeriod(context.Background(), payroll.CreatePeriodRequest{
		StartDate: "2026-03-15",
		EndDate:   "2026-03-02",
		PayDate:   "2026-03-20",
	})
	require.Error(t, err)

	resp, err := svc.CreatePeriod(context.Background(), payroll.CreatePeriodRequest{
		StartDate: "2026-03-02",
		EndDate:   "2026-03-15",
		PayDate:   "2026-03-20",
	})
	require.NoError(t, err)
	assert.Equal(t, string(payroll.PeriodStatusOpen), resp.Status)
	assert.Equal(t, "2026-03-20", resp.PayDate)
}

func TestPayrollService_YTD_UnknownEmployee(t *testing.T) {
	svc := NewService(newFakePayrollRepo(), newFakeEmployeeRepo(), &fakeTimesheetRepo{}, testTaxConfig(), testLogger())

	_, err := svc.YTD(context.Background(), "ghost", 2026)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
