package employee

import (
	"context"

	"github.com/littlesprouts/daycare-backend-go/internal/domain/employee"
)

// Service is the employee directory: the payroll engine's read-only source
// of pay basis, allowances, withholding extras and jurisdiction.
type Service struct {
	repo employee.Repository
}

func NewService(repo employee.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	created, err := s.repo.Create(ctx, employee.Employee{
		FirstName:                  req.FirstName,
		LastName:                   req.LastName,
		Email:                      req.Email,
		PayBasis:                   req.ToPayBasis(),
		Allowances:                 req.Allowances,
		AdditionalWithholdingCents: req.AdditionalWithholdingCents,
		OtherDeductionsCents:       req.OtherDeductionsCents,
		StateCode:                  req.StateCode,
		IsActive:                   true,
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return toResponse(created), nil
}

func (s *Service) GetByID(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return toResponse(emp), nil
}

func (s *Service) List(ctx context.Context, activeOnly bool) ([]employee.EmployeeResponse, error) {
	employees, err := s.repo.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	result := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		result = append(result, toResponse(emp))
	}
	return result, nil
}

func (s *Service) SetActive(ctx context.Context, id string, active bool) error {
	return s.repo.SetActive(ctx, id, active)
}

func toResponse(emp employee.Employee) employee.EmployeeResponse {
	resp := employee.EmployeeResponse{
		ID:                         emp.ID,
		FirstName:                  emp.FirstName,
		LastName:                   emp.LastName,
		Email:                      emp.Email,
		Allowances:                 emp.Allowances,
		AdditionalWithholdingCents: emp.AdditionalWithholdingCents,
		OtherDeductionsCents:       emp.OtherDeductionsCents,
		StateCode:                  emp.StateCode,
		IsActive:                   emp.IsActive,
	}
	switch b := emp.PayBasis.(type) {
	case employee.Hourly:
		resp.PayBasisType = employee.PayBasisTypeHourly
		resp.HourlyRateCents = b.RateCents
	case employee.Salaried:
		resp.PayBasisType = employee.PayBasisTypeSalaried
		resp.PeriodAmountCents = b.PeriodAmountCents
	}
	return resp
}
