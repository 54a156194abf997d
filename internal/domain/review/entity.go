package review

import "time"

// PerformanceReview is append-only: it is never edited after creation.
// Date is the calendar day the review was recorded.
type PerformanceReview struct {
	ID         string
	EmployeeID string
	Date       time.Time
	Summary    string
	CreatedAt  time.Time
}
