package insight

import "context"

type InsightRepository interface {
	// Create persists an approved payload, stamping ID and CreatedAt.
	// Fails with employee.ErrEmployeeNotFound for unknown employees.
	Create(ctx context.Context, employeeID string, payload Payload) (Insight, error)

	// ListByEmployee returns insights newest first.
	ListByEmployee(ctx context.Context, employeeID string) ([]Insight, error)
}
