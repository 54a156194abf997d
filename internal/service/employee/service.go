package employee

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/sse"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	events       sse.Publisher
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository, events sse.Publisher) employee.EmployeeService {
	if events == nil {
		events = sse.Discard
	}
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
		events:       events,
	}
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, employee.NewEmployeeResponse(emp))
	}
	return responses, nil
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	created, err := s.employeeRepo.Create(ctx, employee.Employee{
		FullName:   req.FullName,
		Address:    req.Address,
		Department: employee.Department(req.Department),
	})
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to create employee: %w", err)
	}

	slog.Info("Employee created", "employee_id", created.ID, "department", created.Department)

	resp := employee.NewEmployeeResponse(created)
	s.events.Publish(sse.TopicRecords, sse.Event{Event: sse.EventEmployeeCreated, Data: resp})
	return resp, nil
}

// DeleteEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, id string) error {
	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	slog.Info("Employee deleted", "employee_id", id)
	s.events.Publish(sse.TopicRecords, sse.Event{Event: sse.EventEmployeeDeleted, Data: map[string]string{"id": id}})
	return nil
}
