package employee

import "context"

// Repository defines data access for the employee directory. The payroll
// engine only reads from it; writes come from the administration surface.
type Repository interface {
	Create(ctx context.Context, emp Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	List(ctx context.Context, activeOnly bool) ([]Employee, error)
	ListActive(ctx context.Context) ([]Employee, error)
	SetActive(ctx context.Context, id string, active bool) error
}
