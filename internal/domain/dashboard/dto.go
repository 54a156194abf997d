package dashboard

import (
	"github.com/cmlabs-hris/hrms-lite/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/insight"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/review"
)

// ========== ORGANIZATION DASHBOARD ==========

// DashboardResponse is the combined response for the main dashboard endpoint
type DashboardResponse struct {
	TotalEmployees  int64                   `json:"total_employees"`
	AttendanceToday AttendanceStatsResponse `json:"attendance_today"`
	Departments     []DepartmentCount       `json:"departments"`
}

// AttendanceStatsResponse counts today's statuses across all employees.
// AttendanceRate is the share of employees marked present or late, as a percentage with one decimal.
type AttendanceStatsResponse struct {
	Date           string `json:"date"`
	Present        int64  `json:"present"`
	Late           int64  `json:"late"`
	Absent         int64  `json:"absent"`
	Leave          int64  `json:"leave"`
	Unmarked       int64  `json:"unmarked"`
	Total          int64  `json:"total"`
	AttendanceRate string `json:"attendance_rate"`
}

type DepartmentCount struct {
	Department string `json:"department"`
	Employees  int64  `json:"employees"`
}

// ========== EMPLOYEE DETAIL ==========

type EmployeeDetailResponse struct {
	Employee         employee.EmployeeResponse       `json:"employee"`
	TodayStatus      string                          `json:"today_status"`
	LatestAttendance *attendance.AttendanceResponse  `json:"latest_attendance"`
	Attendance       []attendance.AttendanceResponse `json:"attendance"`
	Reviews          []review.ReviewResponse         `json:"reviews"`
	Insights         []insight.InsightResponse       `json:"insights"`
}
