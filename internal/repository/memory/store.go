// Package memory is the in-process record store. It owns the employee,
// attendance, review and insight collections behind a single lock so that
// every mutation, including cascading deletes, is atomic to observers.
package memory

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/insight"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/review"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/utils"
	"github.com/google/uuid"
)

// ErrInvariantViolation means the store reached a state that its mutators should make impossible.
var ErrInvariantViolation = errors.New("record store invariant violated")

type attendanceKey struct {
	employeeID string
	day        string
}

// Store holds all records. Create one per process and share it between repositories.
type Store struct {
	mu    sync.RWMutex
	clock utils.Clock

	newID      func() string
	pickAvatar func() string

	employees       []employee.Employee
	attendance      []attendance.Attendance
	attendanceIndex map[attendanceKey]int
	reviews         []review.PerformanceReview
	insights        []insight.Insight
}

// NewStore creates an empty store. A nil clock uses the system clock.
func NewStore(clock utils.Clock) *Store {
	if clock == nil {
		clock = utils.SystemClock()
	}
	return &Store{
		clock:           clock,
		newID:           newUUID,
		pickAvatar:      randomAvatar,
		attendanceIndex: make(map[attendanceKey]int),
	}
}

func newUUID() string {
	return uuid.Must(uuid.NewV7()).String()
}

func randomAvatar() string {
	return employee.AvatarPlaceholders[rand.IntN(len(employee.AvatarPlaceholders))]
}

func keyFor(employeeID string, day string) attendanceKey {
	return attendanceKey{employeeID: employeeID, day: day}
}

func (s *Store) employeeExistsLocked(id string) bool {
	return s.employeeIndexLocked(id) >= 0
}

func (s *Store) employeeIndexLocked(id string) int {
	for i := range s.employees {
		if s.employees[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) reindexAttendanceLocked() {
	s.attendanceIndex = make(map[attendanceKey]int, len(s.attendance))
	for i, rec := range s.attendance {
		s.attendanceIndex[keyFor(rec.EmployeeID, utils.FormatDate(rec.Date))] = i
	}
}

// deleteEmployeeLocked removes the employee and every dependent record.
func (s *Store) deleteEmployeeLocked(id string) (removed bool) {
	idx := s.employeeIndexLocked(id)
	if idx < 0 {
		return false
	}
	s.employees = append(s.employees[:idx], s.employees[idx+1:]...)

	s.attendance = filter(s.attendance, func(a attendance.Attendance) bool { return a.EmployeeID != id })
	s.reviews = filter(s.reviews, func(r review.PerformanceReview) bool { return r.EmployeeID != id })
	s.insights = filter(s.insights, func(i insight.Insight) bool { return i.EmployeeID != id })
	s.reindexAttendanceLocked()
	return true
}

func filter[T any](in []T, keep func(T) bool) []T {
	out := in[:0]
	for _, v := range in {
		if keep(v) {
			out = append(out, v)
		}
	}
	// Clear the tail so dropped records are not kept alive by the backing array.
	var zero T
	for i := len(out); i < len(in); i++ {
		in[i] = zero
	}
	return out
}

// CheckIntegrity scans every collection for duplicate attendance days, orphaned
// records and a stale attendance index. It returns an error wrapping
// ErrInvariantViolation listing each problem found.
func (s *Store) CheckIntegrity(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var problems []string

	seen := make(map[attendanceKey]string, len(s.attendance))
	for _, rec := range s.attendance {
		k := keyFor(rec.EmployeeID, utils.FormatDate(rec.Date))
		if other, dup := seen[k]; dup {
			problems = append(problems, fmt.Sprintf("attendance %s and %s share employee %s on %s", other, rec.ID, k.employeeID, k.day))
		}
		seen[k] = rec.ID
		if !s.indexMatchesLocked(k, rec) {
			problems = append(problems, fmt.Sprintf("attendance index is stale for record %s", rec.ID))
		}
		if !s.employeeExistsLocked(rec.EmployeeID) {
			problems = append(problems, fmt.Sprintf("attendance %s references missing employee %s", rec.ID, rec.EmployeeID))
		}
	}
	if len(s.attendanceIndex) != len(seen) {
		problems = append(problems, fmt.Sprintf("attendance index has %d keys for %d distinct days", len(s.attendanceIndex), len(seen)))
	}
	for _, r := range s.reviews {
		if !s.employeeExistsLocked(r.EmployeeID) {
			problems = append(problems, fmt.Sprintf("review %s references missing employee %s", r.ID, r.EmployeeID))
		}
	}
	for _, in := range s.insights {
		if !s.employeeExistsLocked(in.EmployeeID) {
			problems = append(problems, fmt.Sprintf("insight %s references missing employee %s", in.ID, in.EmployeeID))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvariantViolation, strings.Join(problems, "; "))
	}
	return nil
}

func (s *Store) indexMatchesLocked(k attendanceKey, rec attendance.Attendance) bool {
	idx, ok := s.attendanceIndex[k]
	if !ok || idx < 0 || idx >= len(s.attendance) {
		return false
	}
	indexed := s.attendance[idx]
	return indexed.EmployeeID == rec.EmployeeID && indexed.Date.Equal(rec.Date)
}

// Counts returns the size of each collection.
func (s *Store) Counts() (employees, attendanceRecords, reviews, insights int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.employees), len(s.attendance), len(s.reviews), len(s.insights)
}
