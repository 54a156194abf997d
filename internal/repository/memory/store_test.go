package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/insight"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/review"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stepClock struct {
	mu   sync.Mutex
	t    time.Time
	step time.Duration
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(c.step)
	return c.t
}

type testRepos struct {
	store      *Store
	employees  employee.EmployeeRepository
	attendance attendance.AttendanceRepository
	reviews    review.ReviewRepository
	insights   insight.InsightRepository
}

func newTestRepos(t *testing.T) testRepos {
	t.Helper()
	store := NewStore(&stepClock{t: time.Date(2024, 7, 1, 8, 0, 0, 0, time.UTC), step: time.Second})
	return testRepos{
		store:      store,
		employees:  NewEmployeeRepository(store),
		attendance: NewAttendanceRepository(store),
		reviews:    NewReviewRepository(store),
		insights:   NewInsightRepository(store),
	}
}

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func createEmployee(t *testing.T, ctx context.Context, repo employee.EmployeeRepository, name string) employee.Employee {
	t.Helper()
	emp, err := repo.Create(ctx, employee.Employee{
		FullName:   name,
		Address:    "123 Maple Street, Springfield",
		Department: employee.DepartmentEngineering,
	})
	require.NoError(t, err)
	return emp
}

// ===== EMPLOYEES =====

func TestEmployeeRepository_Create_AssignsIDAndAvatar(t *testing.T) {
	ctx := context.Background()
	r := newTestRepos(t)

	a := createEmployee(t, ctx, r.employees, "Jane Doe")
	b := createEmployee(t, ctx, r.employees, "John Smith")

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Contains(t, employee.AvatarPlaceholders, a.AvatarURL)
	assert.False(t, a.CreatedAt.IsZero())
}

func TestEmployeeRepository_Create_RejectsUnknownDepartment(t *testing.T) {
	ctx := context.Background()
	r := newTestRepos(t)

	_, err := r.employees.Create(ctx, employee.Employee{FullName: "Jane Doe", Address: "123 Maple", Department: "Legal"})
	assert.ErrorIs(t, err, employee.ErrInvalidDepartment)

	list, err := r.employees.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestEmployeeRepository_List_InsertionOrder(t *testing.T) {
	ctx := context.Background()
	r := newTestRepos(t)

	names := []string{"Jane Doe", "John Smith", "Alice Johnson"}
	for _, n := range names {
		createEmployee(t, ctx, r.employees, n)
	}

	list, err := r.employees.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i, n := range names {
		assert.Equal(t, n, list[i].FullName)
	}
}

func TestEmployeeRepository_ReadsAreCopies(t *testing.T) {
	ctx := context.Background()
	r := newTestRepos(t)
	emp := createEmployee(t, ctx, r.employees, "Jane Doe")

	list, _ := r.employees.List(ctx)
	list[0].FullName = "Mallory"
	got, _ := r.employees.GetByID(ctx, emp.ID)
	got.Address = "elsewhere"

	again, err := r.employees.GetByID(ctx, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", again.FullName)
	assert.Equal(t, "123 Maple Street, Springfield", again.Address)
}

func TestEmployeeRepository_GetByID_NotFoundIsNotAnError(t *testing.T) {
	r := newTestRepos(t)

	got, err := r.employees.GetByID(context.Background(), "missing")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

// ===== CASCADE DELETE =====

func seedHistory(t *testing.T, ctx context.Context, r testRepos, emp employee.Employee) {
	t.Helper()
	_, err := r.attendance.Upsert(ctx, emp.ID, day("2024-07-20"), attendance.StatusPresent)
	require.NoError(t, err)
	_, err = r.attendance.Upsert(ctx, emp.ID, day("2024-07-21"), attendance.StatusAbsent)
	require.NoError(t, err)
	_, err = r.reviews.Create(ctx, emp.ID, day("2024-06-01"), "Exceeded expectations.")
	require.NoError(t, err)
	_, err = r.insights.Create(ctx, emp.ID, insight.Payload{Summary: "Strong contributor", Insights: []string{"Reliable"}})
	require.NoError(t, err)
}

func TestEmployeeRepository_Delete_CascadesAndIsIdempotent(t *testing.T) {
	ctx := context.Background()
	r := newTestRepos(t)

	jane := createEmployee(t, ctx, r.employees, "Jane Doe")
	john := createEmployee(t, ctx, r.employees, "John Smith")
	seedHistory(t, ctx, r, jane)
	seedHistory(t, ctx, r, john)

	require.NoError(t, r.employees.Delete(ctx, jane.ID))
	emps1, att1, rev1, ins1 := r.store.Counts()

	require.NoError(t, r.employees.Delete(ctx, jane.ID))
	emps2, att2, rev2, ins2 := r.store.Counts()

	assert.Equal(t, []int{emps1, att1, rev1, ins1}, []int{emps2, att2, rev2, ins2})
	assert.Equal(t, []int{1, 2, 1, 1}, []int{emps2, att2, rev2, ins2})

	gone, err := r.employees.GetByID(ctx, jane.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	janeID := jane.ID
	att, err := r.attendance.List(ctx, attendance.AttendanceFilter{EmployeeID: &janeID})
	require.NoError(t, err)
	assert.Empty(t, att)
	revs, _ := r.reviews.ListByEmployee(ctx, jane.ID)
	assert.Empty(t, revs)
	ins, _ := r.insights.ListByEmployee(ctx, jane.ID)
	assert.Empty(t, ins)

	// John's history is untouched.
	johnID := john.ID
	att, _ = r.attendance.List(ctx, attendance.AttendanceFilter{EmployeeID: &johnID})
	assert.Len(t, att, 2)

	assert.NoError(t, r.store.CheckIntegrity(ctx))
}

func TestEmployeeRepository_Delete_UnknownIsNoop(t *testing.T) {
	r := newTestRepos(t)
	assert.NoError(t, r.employees.Delete(context.Background(), "never-existed"))
}

func TestEmployeeRepository_Delete_ReusedDayAfterCascade(t *testing.T) {
	ctx := context.Background()
	r := newTestRepos(t)

	jane := createEmployee(t, ctx, r.employees, "Jane Doe")
	john := createEmployee(t, ctx, r.employees, "John Smith")
	seedHistory(t, ctx, r, jane)
	_, err := r.attendance.Upsert(ctx, john.ID, day("2024-07-21"), attendance.StatusPresent)
	require.NoError(t, err)

	require.NoError(t, r.employees.Delete(ctx, jane.ID))

	// The index must have been rebuilt so John's record is still found and updated in place.
	updated, err := r.attendance.Upsert(ctx, john.ID, day("2024-07-21"), attendance.StatusLate)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusLate, updated.Status)

	all, _ := r.attendance.List(ctx, attendance.AttendanceFilter{})
	assert.Len(t, all, 1)
	assert.NoError(t, r.store.CheckIntegrity(ctx))
}

// ===== ATTENDANCE =====

func TestAttendanceRepository_Upsert_JaneDoeScenario(t *testing.T) {
	ctx := context.Background()
	r := newTestRepos(t)
	jane := createEmployee(t, ctx, r.employees, "Jane Doe")

	_, err := r.attendance.Upsert(ctx, jane.ID, day("2024-07-20"), attendance.StatusPresent)
	require.NoError(t, err)
	original, err := r.attendance.Upsert(ctx, jane.ID, day("2024-07-21"), attendance.StatusAbsent)
	require.NoError(t, err)

	updated, err := r.attendance.Upsert(ctx, jane.ID, day("2024-07-21"), attendance.StatusLate)
	require.NoError(t, err)
	assert.Equal(t, original.ID, updated.ID, "re-marking keeps the record identity")
	assert.Equal(t, attendance.StatusLate, updated.Status)

	janeID := jane.ID
	records, err := r.attendance.List(ctx, attendance.AttendanceFilter{EmployeeID: &janeID})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, day("2024-07-21"), records[0].Date)
	assert.Equal(t, attendance.StatusLate, records[0].Status)
	assert.Equal(t, day("2024-07-20"), records[1].Date)
	assert.Equal(t, attendance.StatusPresent, records[1].Status)
}

func TestAttendanceRepository_Upsert_IgnoresTimeOfDay(t *testing.T) {
	ctx := context.Background()
	r := newTestRepos(t)
	jane := createEmployee(t, ctx, r.employees, "Jane Doe")

	morning := time.Date(2024, 7, 21, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2024, 7, 21, 19, 30, 0, 0, time.UTC)
	_, err := r.attendance.Upsert(ctx, jane.ID, morning, attendance.StatusPresent)
	require.NoError(t, err)
	_, err = r.attendance.Upsert(ctx, jane.ID, evening, attendance.StatusLeave)
	require.NoError(t, err)

	all, _ := r.attendance.List(ctx, attendance.AttendanceFilter{})
	require.Len(t, all, 1)
	assert.Equal(t, attendance.StatusLeave, all[0].Status)
	assert.Equal(t, day("2024-07-21"), all[0].Date)
}

func TestAttendanceRepository_Upsert_UniquenessAcrossManyWrites(t *testing.T) {
	ctx := context.Background()
	r := newTestRepos(t)
	jane := createEmployee(t, ctx, r.employees, "Jane Doe")

	statuses := attendance.Statuses()
	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			d := day("2024-07-01").AddDate(0, 0, i%5)
			_, err := r.attendance.Upsert(ctx, jane.ID, d, statuses[i%len(statuses)])
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	all, err := r.attendance.List(ctx, attendance.AttendanceFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 5)
	assert.NoError(t, r.store.CheckIntegrity(ctx))
}

func TestAttendanceRepository_Upsert_Errors(t *testing.T) {
	ctx := context.Background()
	r := newTestRepos(t)
	jane := createEmployee(t, ctx, r.employees, "Jane Doe")

	_, err := r.attendance.Upsert(ctx, "missing", day("2024-07-21"), attendance.StatusPresent)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	_, err = r.attendance.Upsert(ctx, jane.ID, day("2024-07-21"), attendance.StatusUnmarked)
	assert.ErrorIs(t, err, attendance.ErrInvalidStatus)

	all, _ := r.attendance.List(ctx, attendance.AttendanceFilter{})
	assert.Empty(t, all)
}

func TestAttendanceRepository_List_SortedNewestFirst(t *testing.T) {
	ctx := context.Background()
	r := newTestRepos(t)
	jane := createEmployee(t, ctx, r.employees, "Jane Doe")
	john := createEmployee(t, ctx, r.employees, "John Smith")

	for _, d := range []string{"2024-07-03", "2024-07-01", "2024-07-05", "2024-07-02"} {
		_, err := r.attendance.Upsert(ctx, jane.ID, day(d), attendance.StatusPresent)
		require.NoError(t, err)
	}
	_, err := r.attendance.Upsert(ctx, john.ID, day("2024-07-04"), attendance.StatusLate)
	require.NoError(t, err)

	all, err := r.attendance.List(ctx, attendance.AttendanceFilter{})
	require.NoError(t, err)
	require.Len(t, all, 5)
	for i := 1; i < len(all); i++ {
		assert.False(t, all[i].Date.After(all[i-1].Date), "record %d is newer than record %d", i, i-1)
	}
	assert.Equal(t, john.ID, all[1].EmployeeID)

	d := day("2024-07-04")
	onDay, err := r.attendance.List(ctx, attendance.AttendanceFilter{Date: &d})
	require.NoError(t, err)
	require.Len(t, onDay, 1)
	assert.Equal(t, john.ID, onDay[0].EmployeeID)
}

func TestAttendanceRepository_GetByEmployeeAndDate(t *testing.T) {
	ctx := context.Background()
	r := newTestRepos(t)
	jane := createEmployee(t, ctx, r.employees, "Jane Doe")

	none, err := r.attendance.GetByEmployeeAndDate(ctx, jane.ID, day("2024-07-21"))
	require.NoError(t, err)
	assert.Nil(t, none)

	_, err = r.attendance.Upsert(ctx, jane.ID, day("2024-07-21"), attendance.StatusAbsent)
	require.NoError(t, err)

	got, err := r.attendance.GetByEmployeeAndDate(ctx, jane.ID, day("2024-07-21"))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, attendance.StatusAbsent, got.Status)
}

// ===== REVIEWS =====

func TestReviewRepository_CreateAndList(t *testing.T) {
	ctx := context.Background()
	r := newTestRepos(t)
	jane := createEmployee(t, ctx, r.employees, "Jane Doe")

	_, err := r.reviews.Create(ctx, jane.ID, day("2024-01-10"), "First")
	require.NoError(t, err)
	_, err = r.reviews.Create(ctx, jane.ID, day("2024-06-01"), "Second")
	require.NoError(t, err)
	_, err = r.reviews.Create(ctx, jane.ID, day("2024-06-01"), "Third")
	require.NoError(t, err)

	list, err := r.reviews.ListByEmployee(ctx, jane.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"Third", "Second", "First"}, []string{list[0].Summary, list[1].Summary, list[2].Summary})
}

func TestReviewRepository_Create_Errors(t *testing.T) {
	ctx := context.Background()
	r := newTestRepos(t)
	jane := createEmployee(t, ctx, r.employees, "Jane Doe")

	_, err := r.reviews.Create(ctx, "missing", day("2024-06-01"), "text")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	_, err = r.reviews.Create(ctx, jane.ID, day("2024-06-01"), "   ")
	assert.ErrorIs(t, err, review.ErrEmptySummary)

	list, _ := r.reviews.ListByEmployee(ctx, jane.ID)
	assert.Empty(t, list)
}

// ===== INSIGHTS =====

func TestInsightRepository_CreateAndList(t *testing.T) {
	ctx := context.Background()
	r := newTestRepos(t)
	jane := createEmployee(t, ctx, r.employees, "Jane Doe")

	for i := 1; i <= 3; i++ {
		_, err := r.insights.Create(ctx, jane.ID, insight.Payload{Summary: fmt.Sprintf("insight %d", i)})
		require.NoError(t, err)
	}

	list, err := r.insights.ListByEmployee(ctx, jane.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "insight 3", list[0].Summary)
	assert.Equal(t, "insight 1", list[2].Summary)
	for i := 1; i < len(list); i++ {
		assert.True(t, list[i-1].CreatedAt.After(list[i].CreatedAt))
	}
}

func TestInsightRepository_DefensiveCopies(t *testing.T) {
	ctx := context.Background()
	r := newTestRepos(t)
	jane := createEmployee(t, ctx, r.employees, "Jane Doe")

	findings := []string{"Punctual"}
	created, err := r.insights.Create(ctx, jane.ID, insight.Payload{Summary: "s", Insights: findings})
	require.NoError(t, err)

	findings[0] = "mutated input"
	created.Insights[0] = "mutated output"

	list, _ := r.insights.ListByEmployee(ctx, jane.ID)
	list[0].Insights = append(list[0].Insights, "extra")

	again, _ := r.insights.ListByEmployee(ctx, jane.ID)
	assert.Equal(t, []string{"Punctual"}, again[0].Insights)
}

func TestInsightRepository_Create_UnknownEmployee(t *testing.T) {
	r := newTestRepos(t)
	_, err := r.insights.Create(context.Background(), "missing", insight.Payload{Summary: "s"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

// ===== INTEGRITY =====

func TestStore_CheckIntegrity_DetectsCorruption(t *testing.T) {
	ctx := context.Background()
	r := newTestRepos(t)
	jane := createEmployee(t, ctx, r.employees, "Jane Doe")
	rec, err := r.attendance.Upsert(ctx, jane.ID, day("2024-07-21"), attendance.StatusPresent)
	require.NoError(t, err)
	require.NoError(t, r.store.CheckIntegrity(ctx))

	// Bypass Upsert to plant a duplicate day.
	dup := rec
	dup.ID = "duplicate"
	r.store.mu.Lock()
	r.store.attendance = append(r.store.attendance, dup)
	r.store.mu.Unlock()

	err = r.store.CheckIntegrity(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvariantViolation))
	assert.Contains(t, err.Error(), "share employee")
}
