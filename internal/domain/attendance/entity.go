package attendance

import (
	"time"
)

// Attendance is the status of one employee on one calendar day.
// Date is stored as midnight UTC.
type Attendance struct {
	ID         string
	EmployeeID string
	Date       time.Time
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusLate    Status = "late"
	StatusLeave   Status = "leave"

	// StatusUnmarked is reported for an employee with no record on a day.
	// It is a projection only and is never stored.
	StatusUnmarked Status = "unmarked"
)

// Statuses lists the statuses that can be recorded.
func Statuses() []Status {
	return []Status{StatusPresent, StatusAbsent, StatusLate, StatusLeave}
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusLate, StatusLeave:
		return true
	}
	return false
}
