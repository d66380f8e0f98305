package create_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/svojko1/nechty-sub001/internal/domain"
	entryRepo "github.com/svojko1/nechty-sub001/internal/infra/storage/employeequeue"
	"github.com/svojko1/nechty-sub001/internal/service/availability"
	wqModels "github.com/svojko1/nechty-sub001/internal/service/waitqueue/models"
	"github.com/svojko1/nechty-sub001/pkg/ptr"
)

type fakeAppointmentRepo struct {
	nextID  int64
	created []*domain.Appointment
}

func (f *fakeAppointmentRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	f.nextID++
	copied := *appt
	copied.ID = f.nextID
	f.created = append(f.created, &copied)
	return &copied, nil
}

type fakeEntryRepo struct {
	assignErr   error
	assignCalls int
}

func (f *fakeEntryRepo) AssignCustomer(_ context.Context, _, _ int64, _ time.Time) error {
	f.assignCalls++
	return f.assignErr
}

type fakeDurationResolver struct {
	minutes int
	err     error
}

func (f *fakeDurationResolver) Resolve(_ context.Context, explicit *int, _ *int64) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	if explicit != nil {
		return *explicit, nil
	}
	return f.minutes, nil
}

// fakeAvailability отдает заранее заданные результаты подбора;
// chairChecks потребляется по одному на вызов IsResourceFree
type fakeAvailability struct {
	employees []*domain.EmployeeQueueEntry
	chairs    []*availability.ChairSearch
	chairIdx  int

	chairChecks []bool
	checkIdx    int
}

func (f *fakeAvailability) FindAvailableEmployees(_ context.Context, _ int64, _ time.Time, _ int) ([]*domain.EmployeeQueueEntry, error) {
	return f.employees, nil
}

func (f *fakeAvailability) FindAvailablePedicureChair(_ context.Context, _ int64, _ time.Time, _ int) (*availability.ChairSearch, error) {
	search := f.chairs[f.chairIdx]
	if f.chairIdx < len(f.chairs)-1 {
		f.chairIdx++
	}
	return search, nil
}

func (f *fakeAvailability) IsResourceFree(_ context.Context, _ availability.CheckRequest) (*availability.ResourceCheck, error) {
	free := f.chairChecks[f.checkIdx]
	if f.checkIdx < len(f.chairChecks)-1 {
		f.checkIdx++
	}
	return &availability.ResourceCheck{Free: free}, nil
}

type fakeWaitQueue struct {
	entry    *wqModels.EntryResponse
	requests []*wqModels.EnqueueRequest
}

func (f *fakeWaitQueue) Enqueue(_ context.Context, req *wqModels.EnqueueRequest) (*wqModels.EntryResponse, error) {
	f.requests = append(f.requests, req)
	return f.entry, nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct{ now time.Time }

func (f fixedTimeProvider) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

type fixture struct {
	appointments *fakeAppointmentRepo
	entries      *fakeEntryRepo
	avail        *fakeAvailability
	waitQueue    *fakeWaitQueue
	uc           *UseCase
}

func newFixture(avail *fakeAvailability) *fixture {
	f := &fixture{
		appointments: &fakeAppointmentRepo{},
		entries:      &fakeEntryRepo{},
		avail:        avail,
		waitQueue: &fakeWaitQueue{
			entry: &wqModels.EntryResponse{ID: 50, TicketCode: "W-abc12345", Status: domain.QueueStatusWaiting},
		},
	}
	f.uc = NewUseCase(
		f.appointments,
		f.entries,
		&fakeDurationResolver{minutes: 45},
		f.avail,
		f.waitQueue,
		passthroughTxManager{},
		nopLogger{},
	)
	f.uc.timeProvider = fixedTimeProvider{now: testNow}
	return f
}

func walkInRequest() *Request {
	return &Request{
		FacilityID:    1,
		ServiceID:     2,
		ResourceKind:  domain.ResourceEmployee,
		CustomerName:  "Walk In",
		CustomerPhone: ptr.Ptr("+79990001122"),
	}
}

func TestUseCase_Execute_WalkInPairsEmployee(t *testing.T) {
	f := newFixture(&fakeAvailability{
		employees: []*domain.EmployeeQueueEntry{
			{ID: 7, EmployeeID: 3, FacilityID: 1, IsActive: true},
			{ID: 8, EmployeeID: 9, FacilityID: 1, IsActive: true},
		},
	})

	result, err := f.uc.Execute(context.Background(), walkInRequest())
	require.NoError(t, err)
	require.False(t, result.Queued())

	appt := result.Appointment
	assert.Equal(t, domain.StatusInProgress, appt.Status)
	assert.Equal(t, testNow, appt.StartTime)
	assert.Equal(t, testNow.Add(45*time.Minute), appt.EndTime)

	// Выбран сотрудник с наименьшим ID из свободных
	require.NotNil(t, appt.EmployeeID)
	assert.Equal(t, int64(3), *appt.EmployeeID)

	assert.Equal(t, 1, f.entries.assignCalls)
	assert.Empty(t, f.waitQueue.requests)
}

func TestUseCase_Execute_FutureBookingStaysScheduled(t *testing.T) {
	f := newFixture(&fakeAvailability{
		employees: []*domain.EmployeeQueueEntry{
			{ID: 7, EmployeeID: 3, FacilityID: 1, IsActive: true},
		},
	})

	start := testNow.Add(2 * time.Hour)
	req := &Request{
		FacilityID:   1,
		ServiceID:    2,
		ResourceKind: domain.ResourceEmployee,
		CustomerName: "Booked Ahead",
		StartTime:    &start,
	}

	result, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.False(t, result.Queued())

	appt := result.Appointment
	assert.Equal(t, domain.StatusScheduled, appt.Status)
	assert.Equal(t, start, appt.StartTime)
	assert.Equal(t, start.Add(45*time.Minute), appt.EndTime)

	// До прихода клиента сотрудник не закрепляется
	assert.Zero(t, f.entries.assignCalls)
}

func TestUseCase_Execute_NoFreeEmployeeQueues(t *testing.T) {
	f := newFixture(&fakeAvailability{employees: nil})

	result, err := f.uc.Execute(context.Background(), walkInRequest())
	require.NoError(t, err)

	// Ровно один из результатов: запись либо очередь
	require.True(t, result.Queued())
	assert.Nil(t, result.Appointment)
	assert.Equal(t, int64(50), result.QueueEntry.ID)

	require.Len(t, f.waitQueue.requests, 1)
	assert.Equal(t, int64(1), f.waitQueue.requests[0].FacilityID)
	assert.Equal(t, int64(2), f.waitQueue.requests[0].ServiceID)
	assert.Empty(t, f.appointments.created)
}

func TestUseCase_Execute_AssignRaceReturnsEmployeeBusy(t *testing.T) {
	f := newFixture(&fakeAvailability{
		employees: []*domain.EmployeeQueueEntry{
			{ID: 7, EmployeeID: 3, FacilityID: 1, IsActive: true},
		},
	})
	f.entries.assignErr = entryRepo.ErrAlreadyAssigned

	_, err := f.uc.Execute(context.Background(), walkInRequest())
	assert.ErrorIs(t, err, ErrEmployeeBusy)
}

func pedicureRequest() *Request {
	return &Request{
		FacilityID:    1,
		ServiceID:     2,
		ResourceKind:  domain.ResourcePedicure,
		CustomerName:  "Pedicure",
		CustomerEmail: ptr.Ptr("client@example.com"),
	}
}

func TestUseCase_Execute_PedicureChair(t *testing.T) {
	t.Run("lowest free chair is taken", func(t *testing.T) {
		f := newFixture(&fakeAvailability{
			chairs:      []*availability.ChairSearch{{ChairNumber: ptr.Ptr(2), TotalChairs: 4}},
			chairChecks: []bool{true},
		})

		result, err := f.uc.Execute(context.Background(), pedicureRequest())
		require.NoError(t, err)
		require.False(t, result.Queued())

		appt := result.Appointment
		require.NotNil(t, appt.ChairNumber)
		assert.Equal(t, 2, *appt.ChairNumber)
		assert.Nil(t, appt.EmployeeID)
		assert.Equal(t, domain.StatusInProgress, appt.Status)
	})

	t.Run("retry once when chair is snatched", func(t *testing.T) {
		f := newFixture(&fakeAvailability{
			chairs: []*availability.ChairSearch{
				{ChairNumber: ptr.Ptr(1), TotalChairs: 4},
				{ChairNumber: ptr.Ptr(3), TotalChairs: 4},
			},
			chairChecks: []bool{false, true},
		})

		result, err := f.uc.Execute(context.Background(), pedicureRequest())
		require.NoError(t, err)

		require.NotNil(t, result.Appointment.ChairNumber)
		assert.Equal(t, 3, *result.Appointment.ChairNumber)
	})

	t.Run("second loss returns chair taken", func(t *testing.T) {
		f := newFixture(&fakeAvailability{
			chairs: []*availability.ChairSearch{
				{ChairNumber: ptr.Ptr(1), TotalChairs: 4},
				{ChairNumber: ptr.Ptr(2), TotalChairs: 4},
			},
			chairChecks: []bool{false, false},
		})

		_, err := f.uc.Execute(context.Background(), pedicureRequest())
		assert.ErrorIs(t, err, ErrChairTaken)
		assert.Empty(t, f.appointments.created)
	})

	t.Run("all chairs busy queues the customer", func(t *testing.T) {
		f := newFixture(&fakeAvailability{
			chairs: []*availability.ChairSearch{{ChairNumber: nil, TotalChairs: 4, OccupiedCount: 4}},
		})

		result, err := f.uc.Execute(context.Background(), pedicureRequest())
		require.NoError(t, err)
		require.True(t, result.Queued())
	})
}

func TestUseCase_Execute_Validation(t *testing.T) {
	past := testNow.Add(-time.Hour)

	tests := []struct {
		name string
		req  *Request
	}{
		{
			name: "missing facility",
			req: &Request{
				ServiceID: 2, ResourceKind: domain.ResourceEmployee,
				CustomerName: "x", CustomerPhone: ptr.Ptr("+7"),
			},
		},
		{
			name: "unknown resource kind",
			req: &Request{
				FacilityID: 1, ServiceID: 2, ResourceKind: "massage",
				CustomerName: "x", CustomerPhone: ptr.Ptr("+7"),
			},
		},
		{
			name: "walk-in without contact",
			req: &Request{
				FacilityID: 1, ServiceID: 2, ResourceKind: domain.ResourceEmployee,
				CustomerName: "x",
			},
		},
		{
			name: "walk-in with both contacts",
			req: &Request{
				FacilityID: 1, ServiceID: 2, ResourceKind: domain.ResourceEmployee,
				CustomerName: "x", CustomerEmail: ptr.Ptr("a@b.c"), CustomerPhone: ptr.Ptr("+7"),
			},
		},
		{
			name: "start time in the past",
			req: &Request{
				FacilityID: 1, ServiceID: 2, ResourceKind: domain.ResourceEmployee,
				CustomerName: "x", StartTime: &past,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(&fakeAvailability{})
			_, err := f.uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUseCase_Execute_ExplicitDurationWins(t *testing.T) {
	f := newFixture(&fakeAvailability{
		employees: []*domain.EmployeeQueueEntry{
			{ID: 7, EmployeeID: 3, FacilityID: 1, IsActive: true},
		},
	})

	req := walkInRequest()
	req.DurationMinutes = ptr.Ptr(90)

	result, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 90, result.Appointment.DurationMinutes)
	assert.Equal(t, testNow.Add(90*time.Minute), result.Appointment.EndTime)
}
