package memory

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/utils"
)

type attendanceRepository struct {
	store *Store
}

func NewAttendanceRepository(store *Store) attendance.AttendanceRepository {
	return &attendanceRepository{store: store}
}

// Upsert implements attendance.AttendanceRepository.
func (r *attendanceRepository) Upsert(_ context.Context, employeeID string, date time.Time, status attendance.Status) (attendance.Attendance, error) {
	if !status.IsValid() {
		return attendance.Attendance{}, attendance.ErrInvalidStatus
	}
	day := utils.DateOnly(date)
	k := keyFor(employeeID, utils.FormatDate(day))

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if !r.store.employeeExistsLocked(employeeID) {
		return attendance.Attendance{}, employee.ErrEmployeeNotFound
	}

	now := r.store.clock.Now().UTC()

	if idx, ok := r.store.attendanceIndex[k]; ok {
		if !r.store.indexMatchesLocked(k, attendance.Attendance{EmployeeID: employeeID, Date: day}) {
			slog.Error("Attendance index points at the wrong record",
				"employee_id", employeeID,
				"date", k.day,
				"index", idx,
			)
			return attendance.Attendance{}, fmt.Errorf("%w: attendance index stale for %s on %s", ErrInvariantViolation, employeeID, k.day)
		}
		existing := &r.store.attendance[idx]
		existing.Status = status
		existing.UpdatedAt = now
		return *existing, nil
	}

	rec := attendance.Attendance{
		ID:         r.store.newID(),
		EmployeeID: employeeID,
		Date:       day,
		Status:     status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	r.store.attendance = append(r.store.attendance, rec)
	r.store.attendanceIndex[k] = len(r.store.attendance) - 1
	return rec, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	idx, ok := r.store.attendanceIndex[keyFor(employeeID, utils.FormatDate(date))]
	if !ok {
		return nil, nil
	}
	rec := r.store.attendance[idx]
	return &rec, nil
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepository) List(_ context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, error) {
	var day string
	if filter.Date != nil {
		day = utils.FormatDate(*filter.Date)
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]attendance.Attendance, 0)
	for _, rec := range r.store.attendance {
		if filter.EmployeeID != nil && rec.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Date != nil && utils.FormatDate(rec.Date) != day {
			continue
		}
		result = append(result, rec)
	}

	slices.SortStableFunc(result, func(a, b attendance.Attendance) int {
		return b.Date.Compare(a.Date)
	})
	return result, nil
}
