package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/sse"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/utils"
)

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	events         sse.Publisher
	clock          utils.Clock
	loc            *time.Location
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	events sse.Publisher,
	clock utils.Clock,
	loc *time.Location,
) attendance.AttendanceService {
	if events == nil {
		events = sse.Discard
	}
	if clock == nil {
		clock = utils.SystemClock()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		events:         events,
		clock:          clock,
		loc:            loc,
	}
}

// MarkAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) MarkAttendance(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	day, err := req.ParsedDate()
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := s.attendanceRepo.Upsert(ctx, req.EmployeeID, day, attendance.Status(req.Status))
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to mark attendance: %w", err)
	}

	slog.Info("Attendance marked",
		"employee_id", record.EmployeeID,
		"date", utils.FormatDate(record.Date),
		"status", record.Status,
	)

	resp := attendance.NewAttendanceResponse(record)
	s.events.Publish(sse.TopicRecords, sse.Event{Event: sse.EventAttendanceMarked, Data: resp})
	return resp, nil
}

// ListAttendance implements attendance.AttendanceService.
// An unknown employee simply has no records.
func (s *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.ListAttendanceRequest) ([]attendance.AttendanceResponse, error) {
	records, err := s.attendanceRepo.List(ctx, attendance.AttendanceFilter{EmployeeID: filter.EmployeeID})
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, attendance.NewAttendanceResponse(rec))
	}
	return responses, nil
}

// GetTodayAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetTodayAttendance(ctx context.Context) (attendance.TodayAttendanceResponse, error) {
	today := utils.Today(s.clock, s.loc)

	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return attendance.TodayAttendanceResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}
	records, err := s.attendanceRepo.List(ctx, attendance.AttendanceFilter{Date: &today})
	if err != nil {
		return attendance.TodayAttendanceResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	return attendance.TodayAttendanceResponse{
		Date:  utils.FormatDate(today),
		Items: ProjectDay(employees, records),
	}, nil
}

// ProjectDay reports one row per employee, in employee order. Employees without a
// record for the day are reported as unmarked.
func ProjectDay(employees []employee.Employee, records []attendance.Attendance) []attendance.TodayAttendanceItem {
	byEmployee := make(map[string]attendance.Status, len(records))
	for _, rec := range records {
		byEmployee[rec.EmployeeID] = rec.Status
	}

	items := make([]attendance.TodayAttendanceItem, 0, len(employees))
	for _, emp := range employees {
		status, ok := byEmployee[emp.ID]
		if !ok {
			status = attendance.StatusUnmarked
		}
		items = append(items, attendance.TodayAttendanceItem{
			EmployeeID: emp.ID,
			FullName:   emp.FullName,
			Department: string(emp.Department),
			AvatarURL:  emp.AvatarURL,
			Status:     string(status),
		})
	}
	return items
}
