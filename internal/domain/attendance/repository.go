package attendance

import (
	"context"
	"time"
)

// AttendanceFilter narrows List. Nil fields do not filter.
type AttendanceFilter struct {
	EmployeeID *string
	Date       *time.Time
}

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	// Upsert sets the status for (employeeID, date). An existing record keeps its ID and
	// only has its status overwritten; otherwise a new record is created. This is the only
	// way attendance changes. Fails with employee.ErrEmployeeNotFound for unknown employees.
	Upsert(ctx context.Context, employeeID string, date time.Time, status Status) (Attendance, error)

	// GetByEmployeeAndDate returns nil, nil when the day is unmarked.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)

	// List returns matching records, most recent date first.
	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, error)
}
