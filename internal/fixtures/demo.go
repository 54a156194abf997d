package fixtures

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/review"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/utils"
)

// ==========================================
// DEMO DATA
// ==========================================

type demoAttendance struct {
	Date   string
	Status attendance.Status
}

type demoReview struct {
	Date    string
	Summary string
}

type demoEmployee struct {
	FullName   string
	Address    string
	Department employee.Department
	Attendance []demoAttendance
	Reviews    []demoReview
}

// demoEmployees is the sample organization loaded into an empty store.
var demoEmployees = []demoEmployee{
	{
		FullName:   "Jane Doe",
		Address:    "123 Maple Street, Springfield",
		Department: employee.DepartmentEngineering,
		Attendance: []demoAttendance{
			{Date: "2024-07-20", Status: attendance.StatusPresent},
			{Date: "2024-07-21", Status: attendance.StatusAbsent},
		},
		Reviews: []demoReview{
			{Date: "2024-06-01", Summary: "Exceeded expectations on the recent project, showing great leadership."},
		},
	},
	{
		FullName:   "John Smith",
		Address:    "456 Oak Avenue, Metropolis",
		Department: employee.DepartmentMarketing,
		Attendance: []demoAttendance{
			{Date: "2024-07-20", Status: attendance.StatusPresent},
		},
	},
	{
		FullName:   "Alice Johnson",
		Address:    "789 Pine Lane, Gotham",
		Department: employee.DepartmentSales,
	},
}

// ==========================================
// SEEDED DATA RESULT
// ==========================================

// SeededDataIDs holds the ids assigned to the demo records.
type SeededDataIDs struct {
	EmployeeIDs   map[string]string // full name -> id
	AttendanceIDs []string
	ReviewIDs     []string
}

func NewSeededDataIDs() *SeededDataIDs {
	return &SeededDataIDs{
		EmployeeIDs: make(map[string]string),
	}
}

// ==========================================
// SEEDING
// ==========================================

// SeedDemoData loads the demo organization through the repositories. Ids are assigned
// by the store, so callers look records up by name through the returned SeededDataIDs.
func SeedDemoData(
	ctx context.Context,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	reviewRepo review.ReviewRepository,
) (*SeededDataIDs, error) {
	ids := NewSeededDataIDs()

	for _, d := range demoEmployees {
		emp, err := employeeRepo.Create(ctx, employee.Employee{
			FullName:   d.FullName,
			Address:    d.Address,
			Department: d.Department,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to seed employee %q: %w", d.FullName, err)
		}
		ids.EmployeeIDs[d.FullName] = emp.ID

		for _, a := range d.Attendance {
			date, err := utils.ParseDate(a.Date)
			if err != nil {
				return nil, fmt.Errorf("invalid demo attendance date %q: %w", a.Date, err)
			}
			rec, err := attendanceRepo.Upsert(ctx, emp.ID, date, a.Status)
			if err != nil {
				return nil, fmt.Errorf("failed to seed attendance for %q: %w", d.FullName, err)
			}
			ids.AttendanceIDs = append(ids.AttendanceIDs, rec.ID)
		}

		for _, r := range d.Reviews {
			date, err := utils.ParseDate(r.Date)
			if err != nil {
				return nil, fmt.Errorf("invalid demo review date %q: %w", r.Date, err)
			}
			rev, err := reviewRepo.Create(ctx, emp.ID, date, r.Summary)
			if err != nil {
				return nil, fmt.Errorf("failed to seed review for %q: %w", d.FullName, err)
			}
			ids.ReviewIDs = append(ids.ReviewIDs, rev.ID)
		}
	}

	slog.Info("Demo data seeded",
		"employees", len(ids.EmployeeIDs),
		"attendance", len(ids.AttendanceIDs),
		"reviews", len(ids.ReviewIDs),
	)
	return ids, nil
}
