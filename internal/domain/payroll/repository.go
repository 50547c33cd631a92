package payroll

import "context"

// Repository defines the engine's only write targets: PayRecord creation and
// PayPeriod status/aggregate updates. Reads cover records and YTD aggregates.
type Repository interface {
	// Periods
	CreatePeriod(ctx context.Context, period PayPeriod) (PayPeriod, error)
	GetPeriodByID(ctx context.Context, id string) (PayPeriod, error)
	ListPeriods(ctx context.Context) ([]PayPeriod, error)
	UpdatePeriodStatus(ctx context.Context, id string, status PeriodStatus) error
	UpdatePeriodTotals(ctx context.Context, id string, totals PeriodTotals) error
	ClosePeriod(ctx context.Context, id string, totals PeriodTotals, processedBy string) error

	// Records
	CreatePayRecord(ctx context.Context, record PayRecord) (PayRecord, error)
	GetRecordByEmployeePeriod(ctx context.Context, employeeID, periodID string) (PayRecord, error)
	ListRecordsByPeriod(ctx context.Context, periodID string) ([]PayRecord, error)
	CountRecordsByPeriod(ctx context.Context, periodID string) (int64, error)
	SumRecordTotals(ctx context.Context, periodID string) (PeriodTotals, error)

	// Aggregations
	YTDTotals(ctx context.Context, employeeID string, year int) (YTDTotals, error)
}
