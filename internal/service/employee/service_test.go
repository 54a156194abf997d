package employee

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/sse"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/utils"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/validator"
	"github.com/cmlabs-hris/hrms-lite/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) (employee.EmployeeService, *memory.Store, *sse.Hub) {
	t.Helper()
	store := memory.NewStore(utils.FixedClock{T: time.Date(2024, 7, 21, 9, 0, 0, 0, time.UTC)})
	hub := sse.NewHub()
	return NewEmployeeService(memory.NewEmployeeRepository(store), hub), store, hub
}

func TestCreateEmployee(t *testing.T) {
	ctx := context.Background()
	svc, _, hub := newService(t)
	events, cleanup := hub.Subscribe(sse.TopicRecords)
	defer cleanup()

	created, err := svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{
		FullName:   "  Jane Doe ",
		Address:    "123 Maple Street",
		Department: "Engineering",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Jane Doe", created.FullName)
	assert.NotEmpty(t, created.AvatarURL)
	assert.Equal(t, "2024-07-21T09:00:00Z", created.CreatedAt)

	ev := <-events
	assert.Equal(t, sse.EventEmployeeCreated, ev.Event)
	assert.Equal(t, created, ev.Data)

	list, err := svc.ListEmployees(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, created, list[0])
}

func TestCreateEmployee_Validation(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService(t)

	_, err := svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{FullName: "Jo", Address: "St", Department: "Legal"})
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	fields := verrs.ToMap()
	assert.Contains(t, fields, "full_name")
	assert.Contains(t, fields, "address")
	assert.Contains(t, fields, "department")

	list, err := svc.ListEmployees(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDeleteEmployee_CascadesAndIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newService(t)

	jane, err := svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{FullName: "Jane Doe", Address: "123 Maple Street", Department: "HR"})
	require.NoError(t, err)
	_, err = memory.NewAttendanceRepository(store).Upsert(ctx, jane.ID, time.Date(2024, 7, 20, 0, 0, 0, 0, time.UTC), attendance.StatusPresent)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteEmployee(ctx, jane.ID))
	require.NoError(t, svc.DeleteEmployee(ctx, jane.ID))

	emps, att, reviews, insights := store.Counts()
	assert.Equal(t, 0, emps+att+reviews+insights)

	gone, err := memory.NewEmployeeRepository(store).GetByID(ctx, jane.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestListEmployees_InsertionOrder(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService(t)

	for _, name := range []string{"Jane Doe", "John Smith", "Alice Johnson"} {
		_, err := svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{FullName: name, Address: "1 Main Street", Department: "Sales"})
		require.NoError(t, err)
	}

	list, err := svc.ListEmployees(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Jane Doe", list[0].FullName)
	assert.Equal(t, "Alice Johnson", list[2].FullName)
}
