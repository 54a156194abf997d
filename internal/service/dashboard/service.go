package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/dashboard"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/insight"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/review"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/utils"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type DashboardServiceImpl struct {
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	reviewRepo     review.ReviewRepository
	insightRepo    insight.InsightRepository
	clock          utils.Clock
	loc            *time.Location
}

func NewDashboardService(
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	reviewRepo review.ReviewRepository,
	insightRepo insight.InsightRepository,
	clock utils.Clock,
	loc *time.Location,
) dashboard.DashboardService {
	if clock == nil {
		clock = utils.SystemClock()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardServiceImpl{
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		reviewRepo:     reviewRepo,
		insightRepo:    insightRepo,
		clock:          clock,
		loc:            loc,
	}
}

var hundred = decimal.NewFromInt(100)

// attendanceRate is (present + late) / total as a percentage with one decimal.
func attendanceRate(present, late, total int64) string {
	if total == 0 {
		return decimal.Zero.StringFixed(1)
	}
	return decimal.NewFromInt(present + late).
		Mul(hundred).
		Div(decimal.NewFromInt(total)).
		StringFixed(1)
}

// GetDashboard returns the organization overview, reading employees and today's
// attendance in parallel.
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context) (*dashboard.DashboardResponse, error) {
	today := utils.Today(s.clock, s.loc)

	var (
		employees []employee.Employee
		records   []attendance.Attendance
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		list, err := s.employeeRepo.List(gCtx)
		if err != nil {
			return fmt.Errorf("failed to list employees: %w", err)
		}
		employees = list
		return nil
	})

	g.Go(func() error {
		list, err := s.attendanceRepo.List(gCtx, attendance.AttendanceFilter{Date: &today})
		if err != nil {
			return fmt.Errorf("failed to list attendance: %w", err)
		}
		records = list
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Records of an employee deleted between the two reads are ignored.
	known := make(map[string]struct{}, len(employees))
	byDepartment := make(map[employee.Department]int64)
	for _, emp := range employees {
		known[emp.ID] = struct{}{}
		byDepartment[emp.Department]++
	}

	stats := dashboard.AttendanceStatsResponse{
		Date:  utils.FormatDate(today),
		Total: int64(len(employees)),
	}
	var marked int64
	for _, rec := range records {
		if _, ok := known[rec.EmployeeID]; !ok {
			continue
		}
		marked++
		switch rec.Status {
		case attendance.StatusPresent:
			stats.Present++
		case attendance.StatusLate:
			stats.Late++
		case attendance.StatusAbsent:
			stats.Absent++
		case attendance.StatusLeave:
			stats.Leave++
		}
	}
	stats.Unmarked = stats.Total - marked
	stats.AttendanceRate = attendanceRate(stats.Present, stats.Late, stats.Total)

	departments := make([]dashboard.DepartmentCount, 0, len(employee.Departments()))
	for _, d := range employee.Departments() {
		departments = append(departments, dashboard.DepartmentCount{
			Department: string(d),
			Employees:  byDepartment[d],
		})
	}

	return &dashboard.DashboardResponse{
		TotalEmployees:  int64(len(employees)),
		AttendanceToday: stats,
		Departments:     departments,
	}, nil
}

// GetEmployeeDetail bundles an employee with its full history and today's record.
// The reads run in parallel.
func (s *DashboardServiceImpl) GetEmployeeDetail(ctx context.Context, employeeID string) (*dashboard.EmployeeDetailResponse, error) {
	today := utils.Today(s.clock, s.loc)

	var (
		emp         *employee.Employee
		todayRecord *attendance.Attendance
		records     []attendance.Attendance
		reviews     []review.PerformanceReview
		insights    []insight.Insight
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		found, err := s.employeeRepo.GetByID(gCtx, employeeID)
		if err != nil {
			return fmt.Errorf("failed to get employee: %w", err)
		}
		emp = found
		return nil
	})

	g.Go(func() error {
		found, err := s.attendanceRepo.GetByEmployeeAndDate(gCtx, employeeID, today)
		if err != nil {
			return fmt.Errorf("failed to get today's attendance: %w", err)
		}
		todayRecord = found
		return nil
	})

	g.Go(func() error {
		list, err := s.attendanceRepo.List(gCtx, attendance.AttendanceFilter{EmployeeID: &employeeID})
		if err != nil {
			return fmt.Errorf("failed to list attendance: %w", err)
		}
		records = list
		return nil
	})

	g.Go(func() error {
		list, err := s.reviewRepo.ListByEmployee(gCtx, employeeID)
		if err != nil {
			return fmt.Errorf("failed to list reviews: %w", err)
		}
		reviews = list
		return nil
	})

	g.Go(func() error {
		list, err := s.insightRepo.ListByEmployee(gCtx, employeeID)
		if err != nil {
			return fmt.Errorf("failed to list insights: %w", err)
		}
		insights = list
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, employee.ErrEmployeeNotFound
	}

	resp := &dashboard.EmployeeDetailResponse{
		Employee:    employee.NewEmployeeResponse(*emp),
		TodayStatus: string(attendance.StatusUnmarked),
		Attendance:  make([]attendance.AttendanceResponse, 0, len(records)),
		Reviews:     make([]review.ReviewResponse, 0, len(reviews)),
		Insights:    make([]insight.InsightResponse, 0, len(insights)),
	}
	if todayRecord != nil {
		resp.TodayStatus = string(todayRecord.Status)
	}

	for i, rec := range records {
		r := attendance.NewAttendanceResponse(rec)
		if i == 0 {
			latest := r
			resp.LatestAttendance = &latest
		}
		resp.Attendance = append(resp.Attendance, r)
	}
	for _, r := range reviews {
		resp.Reviews = append(resp.Reviews, review.NewReviewResponse(r))
	}
	for _, in := range insights {
		resp.Insights = append(resp.Insights, insight.NewInsightResponse(in))
	}

	return resp, nil
}
