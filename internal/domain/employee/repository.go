package employee

import "context"

// EmployeeRepository is the employee collection of the record store.
type EmployeeRepository interface {
	// List returns all employees in insertion order.
	List(ctx context.Context) ([]Employee, error)

	// GetByID returns nil, nil when no employee has the given id.
	GetByID(ctx context.Context, id string) (*Employee, error)

	// Create assigns a fresh id and avatar. Rejects departments outside the closed set.
	Create(ctx context.Context, newEmployee Employee) (Employee, error)

	// Delete removes the employee together with every attendance record, review and
	// insight that references it. Deleting an unknown id is a no-op.
	Delete(ctx context.Context, id string) error
}
