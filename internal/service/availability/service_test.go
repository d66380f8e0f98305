package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/svojko1/nechty-sub001/internal/domain"
	facilityRepo "github.com/svojko1/nechty-sub001/internal/infra/storage/facility"
	"github.com/svojko1/nechty-sub001/pkg/ptr"
)

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
}

// matches применяет ту же логику фильтра, что и хранилище
func (f *fakeAppointmentRepo) GetOverlapping(_ context.Context, filter domain.OverlapFilter) ([]*domain.Appointment, error) {
	var out []*domain.Appointment
	for _, a := range f.appointments {
		if a.FacilityID != filter.FacilityID || !a.IsActive() {
			continue
		}
		if !a.Overlaps(filter.Start, filter.End) {
			continue
		}
		if filter.EmployeeID != nil && (a.EmployeeID == nil || *a.EmployeeID != *filter.EmployeeID) {
			continue
		}
		if filter.ChairNumber != nil && (a.ChairNumber == nil || *a.ChairNumber != *filter.ChairNumber) {
			continue
		}
		if filter.OnlyChairs && a.ChairNumber == nil {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

type fakeEmployeeRepo struct {
	entries []*domain.EmployeeQueueEntry
}

func (f *fakeEmployeeRepo) ListFree(_ context.Context, facilityID int64) ([]*domain.EmployeeQueueEntry, error) {
	var out []*domain.EmployeeQueueEntry
	for _, e := range f.entries {
		if e.FacilityID == facilityID && e.IsFree() {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeFacilityRepo struct {
	facilities map[int64]*domain.Facility
}

func (f *fakeFacilityRepo) GetByID(_ context.Context, id int64) (*domain.Facility, error) {
	fac, ok := f.facilities[id]
	if !ok {
		return nil, facilityRepo.ErrFacilityNotFound
	}
	return fac, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testStart = time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

func activeAppointment(facilityID int64, employeeID *int64, chair *int, start time.Time, minutes int) *domain.Appointment {
	return &domain.Appointment{
		FacilityID:      facilityID,
		EmployeeID:      employeeID,
		ChairNumber:     chair,
		StartTime:       start,
		EndTime:         start.Add(time.Duration(minutes) * time.Minute),
		DurationMinutes: minutes,
		Status:          domain.StatusScheduled,
	}
}

func TestService_IsResourceFree(t *testing.T) {
	employeeID := int64(5)

	tests := []struct {
		name         string
		appointments []*domain.Appointment
		req          CheckRequest
		wantFree     bool
	}{
		{
			name: "employee with overlapping appointment is busy",
			appointments: []*domain.Appointment{
				activeAppointment(1, &employeeID, nil, testStart, 60),
			},
			req: CheckRequest{
				ResourceID: employeeID,
				FacilityID: 1,
				StartTime:  testStart.Add(30 * time.Minute),
				Minutes:    60,
				Kind:       domain.ResourceEmployee,
			},
			wantFree: false,
		},
		{
			name: "employee free when appointment belongs to someone else",
			appointments: []*domain.Appointment{
				activeAppointment(1, ptr.Ptr(int64(8)), nil, testStart, 60),
			},
			req: CheckRequest{
				ResourceID: employeeID,
				FacilityID: 1,
				StartTime:  testStart,
				Minutes:    60,
				Kind:       domain.ResourceEmployee,
			},
			wantFree: true,
		},
		{
			name: "window touching existing appointment end is free",
			appointments: []*domain.Appointment{
				activeAppointment(1, &employeeID, nil, testStart, 60),
			},
			req: CheckRequest{
				ResourceID: employeeID,
				FacilityID: 1,
				StartTime:  testStart.Add(60 * time.Minute),
				Minutes:    30,
				Kind:       domain.ResourceEmployee,
			},
			wantFree: true,
		},
		{
			name: "chair occupied by overlapping pedicure appointment",
			appointments: []*domain.Appointment{
				activeAppointment(1, nil, ptr.Ptr(2), testStart, 60),
			},
			req: CheckRequest{
				FacilityID:  1,
				StartTime:   testStart.Add(15 * time.Minute),
				Minutes:     30,
				Kind:        domain.ResourcePedicure,
				ChairNumber: ptr.Ptr(2),
			},
			wantFree: false,
		},
		{
			name: "different chair is free",
			appointments: []*domain.Appointment{
				activeAppointment(1, nil, ptr.Ptr(2), testStart, 60),
			},
			req: CheckRequest{
				FacilityID:  1,
				StartTime:   testStart,
				Minutes:     60,
				Kind:        domain.ResourcePedicure,
				ChairNumber: ptr.Ptr(1),
			},
			wantFree: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(
				&fakeAppointmentRepo{appointments: tt.appointments},
				&fakeEmployeeRepo{},
				&fakeFacilityRepo{},
				nopLogger{},
			)

			check, err := svc.IsResourceFree(context.Background(), tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantFree, check.Free)
			if !tt.wantFree {
				assert.NotEmpty(t, check.Conflicts)
			}
		})
	}
}

func TestService_IsResourceFree_Validation(t *testing.T) {
	svc := NewService(&fakeAppointmentRepo{}, &fakeEmployeeRepo{}, &fakeFacilityRepo{}, nopLogger{})

	_, err := svc.IsResourceFree(context.Background(), CheckRequest{
		FacilityID: 1,
		StartTime:  testStart,
		Minutes:    0,
		Kind:       domain.ResourceEmployee,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.IsResourceFree(context.Background(), CheckRequest{
		FacilityID: 1,
		StartTime:  testStart,
		Minutes:    30,
		Kind:       domain.ResourceKind("massage"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_FindAvailableEmployees(t *testing.T) {
	busyID := int64(3)

	employees := &fakeEmployeeRepo{entries: []*domain.EmployeeQueueEntry{
		{ID: 1, EmployeeID: 3, FacilityID: 1, IsActive: true},
		{ID: 2, EmployeeID: 5, FacilityID: 1, IsActive: true},
		{ID: 3, EmployeeID: 7, FacilityID: 2, IsActive: true},
	}}

	appointments := &fakeAppointmentRepo{appointments: []*domain.Appointment{
		activeAppointment(1, &busyID, nil, testStart, 60),
	}}

	svc := NewService(appointments, employees, &fakeFacilityRepo{}, nopLogger{})

	free, err := svc.FindAvailableEmployees(context.Background(), 1, testStart, 30)
	require.NoError(t, err)

	// Сотрудник 3 занят пересекающейся записью, сотрудник 7 - другая точка
	require.Len(t, free, 1)
	assert.Equal(t, int64(5), free[0].EmployeeID)
}

func TestService_FindAvailablePedicureChair(t *testing.T) {
	facilities := &fakeFacilityRepo{facilities: map[int64]*domain.Facility{
		1: {ID: 1, Name: "center", Chairs: 6, PedicureChairs: 2},
	}}

	t.Run("lowest free chair picked first", func(t *testing.T) {
		appointments := &fakeAppointmentRepo{appointments: []*domain.Appointment{
			activeAppointment(1, nil, ptr.Ptr(1), testStart, 60),
		}}
		svc := NewService(appointments, &fakeEmployeeRepo{}, facilities, nopLogger{})

		search, err := svc.FindAvailablePedicureChair(context.Background(), 1, testStart, 30)
		require.NoError(t, err)
		require.NotNil(t, search.ChairNumber)
		assert.Equal(t, 2, *search.ChairNumber)
		assert.Equal(t, 2, search.TotalChairs)
		assert.Equal(t, 1, search.OccupiedCount)
	})

	t.Run("all chairs occupied reports earliest release", func(t *testing.T) {
		appointments := &fakeAppointmentRepo{appointments: []*domain.Appointment{
			activeAppointment(1, nil, ptr.Ptr(1), testStart, 90),
			activeAppointment(1, nil, ptr.Ptr(2), testStart, 30),
		}}
		svc := NewService(appointments, &fakeEmployeeRepo{}, facilities, nopLogger{})

		search, err := svc.FindAvailablePedicureChair(context.Background(), 1, testStart, 60)
		require.NoError(t, err)
		assert.Nil(t, search.ChairNumber)
		assert.Equal(t, 2, search.OccupiedCount)
		require.NotNil(t, search.NextAvailableTime)
		assert.Equal(t, testStart.Add(30*time.Minute), *search.NextAvailableTime)
	})

	t.Run("unknown facility", func(t *testing.T) {
		svc := NewService(&fakeAppointmentRepo{}, &fakeEmployeeRepo{}, facilities, nopLogger{})

		_, err := svc.FindAvailablePedicureChair(context.Background(), 42, testStart, 30)
		assert.ErrorIs(t, err, ErrFacilityNotFound)
	})
}
