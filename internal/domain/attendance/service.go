package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// MarkAttendance records a status for an employee and day, replacing any earlier status for that day
	MarkAttendance(ctx context.Context, req MarkAttendanceRequest) (AttendanceResponse, error)

	// ListAttendance returns records newest first, optionally for one employee
	ListAttendance(ctx context.Context, filter ListAttendanceRequest) ([]AttendanceResponse, error)

	// GetTodayAttendance reports today's status for every employee
	GetTodayAttendance(ctx context.Context) (TodayAttendanceResponse, error)
}
