package finish_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/svojko1/nechty-sub001/internal/domain"
	apptRepo "github.com/svojko1/nechty-sub001/internal/infra/storage/appointment"
)

type fakeAppointmentRepo struct {
	appointments map[int64]*domain.Appointment
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	appt, ok := f.appointments[id]
	if !ok {
		return nil, apptRepo.ErrAppointmentNotFound
	}
	copied := *appt
	return &copied, nil
}

func (f *fakeAppointmentRepo) Finish(_ context.Context, id int64, price float64) error {
	appt, ok := f.appointments[id]
	if !ok || appt.Status != domain.StatusInProgress {
		return apptRepo.ErrStateConflict
	}
	appt.Status = domain.StatusCompleted
	appt.Price = &price
	return nil
}

type fakeEntryRepo struct {
	clearedFor []int64
	clearErr   error
}

func (f *fakeEntryRepo) ClearCustomer(_ context.Context, appointmentID int64) error {
	if f.clearErr != nil {
		return f.clearErr
	}
	f.clearedFor = append(f.clearedFor, appointmentID)
	return nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func inProgressAppointment(id int64) *domain.Appointment {
	start := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	return &domain.Appointment{
		ID:              id,
		FacilityID:      1,
		ServiceID:       1,
		CustomerName:    "customer",
		StartTime:       start,
		EndTime:         start.Add(45 * time.Minute),
		DurationMinutes: 45,
		Status:          domain.StatusInProgress,
	}
}

func TestUseCase_Execute(t *testing.T) {
	appointments := &fakeAppointmentRepo{appointments: map[int64]*domain.Appointment{
		10: inProgressAppointment(10),
	}}
	entries := &fakeEntryRepo{}
	uc := NewUseCase(appointments, entries, passthroughTxManager{}, nopLogger{})

	result, err := uc.Execute(context.Background(), &Request{AppointmentID: 10, Price: 1500})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCompleted, result.Status)
	require.NotNil(t, result.Price)
	assert.Equal(t, 1500.0, *result.Price)

	// Пара сотрудник-клиент снята
	assert.Equal(t, []int64{10}, entries.clearedFor)
}

func TestUseCase_Execute_RepeatedFinishConflicts(t *testing.T) {
	appointments := &fakeAppointmentRepo{appointments: map[int64]*domain.Appointment{
		10: inProgressAppointment(10),
	}}
	uc := NewUseCase(appointments, &fakeEntryRepo{}, passthroughTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{AppointmentID: 10, Price: 1500})
	require.NoError(t, err)

	// Вторая попытка теряет CAS по статусу
	_, err = uc.Execute(context.Background(), &Request{AppointmentID: 10, Price: 2000})
	assert.ErrorIs(t, err, ErrInvalidStateTransition)

	// Цена первого завершения не перезаписана
	stored := appointments.appointments[10]
	assert.Equal(t, 1500.0, *stored.Price)
}

func TestUseCase_Execute_Errors(t *testing.T) {
	tests := []struct {
		name         string
		appointments map[int64]*domain.Appointment
		req          Request
		wantErr      error
	}{
		{
			name:    "invalid appointment id",
			req:     Request{AppointmentID: 0, Price: 100},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "negative price",
			req:     Request{AppointmentID: 10, Price: -1},
			wantErr: ErrInvalidInput,
		},
		{
			name:         "appointment not found",
			appointments: map[int64]*domain.Appointment{},
			req:          Request{AppointmentID: 10, Price: 100},
			wantErr:      ErrInvalidStateTransition,
		},
		{
			name: "scheduled appointment cannot be finished",
			appointments: map[int64]*domain.Appointment{
				10: {ID: 10, Status: domain.StatusScheduled},
			},
			req:     Request{AppointmentID: 10, Price: 100},
			wantErr: ErrInvalidStateTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appointments := &fakeAppointmentRepo{appointments: tt.appointments}
			uc := NewUseCase(appointments, &fakeEntryRepo{}, passthroughTxManager{}, nopLogger{})

			_, err := uc.Execute(context.Background(), &tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
