package employee

import "time"

// PayBasis is the exhaustive pay-basis variant for an employee: either an
// hourly rate or a fixed salaried amount per pay period. Consumers must type
// switch over both cases; there is no zero-value fallback.
type PayBasis interface {
	payBasis()
}

// Hourly pays by worked minutes at RateCents per hour.
type Hourly struct {
	RateCents int64
}

// Salaried pays PeriodAmountCents per pay period regardless of minutes worked.
type Salaried struct {
	PeriodAmountCents int64
}

func (Hourly) payBasis()   {}
func (Salaried) payBasis() {}

type Employee struct {
	ID                         string
	FirstName                  string
	LastName                   string
	Email                      string
	PayBasis                   PayBasis
	Allowances                 int
	AdditionalWithholdingCents int64
	OtherDeductionsCents       int64
	StateCode                  string
	IsActive                   bool
	CreatedAt                  time.Time
	UpdatedAt                  time.Time
}
