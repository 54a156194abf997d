package dashboard

import "context"

// DashboardService is the read-only query facade used by presentation.
// Every call reads the record store at call time; nothing is cached.
type DashboardService interface {
	// GetDashboard returns the organization overview for today
	GetDashboard(ctx context.Context) (*DashboardResponse, error)

	// GetEmployeeDetail bundles an employee with attendance, reviews and saved insights
	GetEmployeeDetail(ctx context.Context, employeeID string) (*EmployeeDetailResponse, error)
}
