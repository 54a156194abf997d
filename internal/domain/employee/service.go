package employee

import (
	"context"
)

// EmployeeService defines business logic for employee operations
type EmployeeService interface {
	// ListEmployees returns every employee in the order they were added
	ListEmployees(ctx context.Context) ([]EmployeeResponse, error)

	// CreateEmployee validates and creates a new employee
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	// DeleteEmployee removes an employee and all of its records. Idempotent.
	DeleteEmployee(ctx context.Context, id string) error
}
