package memory

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/employee"
)

type employeeRepository struct {
	store *Store
}

func NewEmployeeRepository(store *Store) employee.EmployeeRepository {
	return &employeeRepository{store: store}
}

// List implements employee.EmployeeRepository.
func (r *employeeRepository) List(_ context.Context) ([]employee.Employee, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]employee.Employee, len(r.store.employees))
	copy(result, r.store.employees)
	return result, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByID(_ context.Context, id string) (*employee.Employee, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	idx := r.store.employeeIndexLocked(id)
	if idx < 0 {
		return nil, nil
	}
	emp := r.store.employees[idx]
	return &emp, nil
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepository) Create(_ context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	if !newEmployee.Department.IsValid() {
		return employee.Employee{}, fmt.Errorf("%w: %q", employee.ErrInvalidDepartment, newEmployee.Department)
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	created := employee.Employee{
		ID:         r.store.newID(),
		FullName:   strings.TrimSpace(newEmployee.FullName),
		Address:    strings.TrimSpace(newEmployee.Address),
		Department: newEmployee.Department,
		AvatarURL:  r.store.pickAvatar(),
		CreatedAt:  r.store.clock.Now().UTC(),
	}
	r.store.employees = append(r.store.employees, created)
	return created, nil
}

// Delete implements employee.EmployeeRepository.
func (r *employeeRepository) Delete(_ context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if r.store.deleteEmployeeLocked(id) {
		slog.Debug("Employee removed with dependent records", "employee_id", id)
	}
	return nil
}
