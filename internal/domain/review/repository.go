package review

import (
	"context"
	"time"
)

type ReviewRepository interface {
	// Create appends a review dated on the given calendar day.
	// Fails with employee.ErrEmployeeNotFound for unknown employees.
	Create(ctx context.Context, employeeID string, date time.Time, summary string) (PerformanceReview, error)

	// ListByEmployee returns reviews newest first.
	ListByEmployee(ctx context.Context, employeeID string) ([]PerformanceReview, error)
}
