package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAppointment_Overlaps(t *testing.T) {
	base := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	appt := &Appointment{
		StartTime: base,
		EndTime:   base.Add(60 * time.Minute),
	}

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{
			name:  "identical window conflicts",
			start: base,
			end:   base.Add(60 * time.Minute),
			want:  true,
		},
		{
			name:  "partial overlap at the end conflicts",
			start: base.Add(30 * time.Minute),
			end:   base.Add(90 * time.Minute),
			want:  true,
		},
		{
			name:  "window fully inside conflicts",
			start: base.Add(15 * time.Minute),
			end:   base.Add(45 * time.Minute),
			want:  true,
		},
		{
			name:  "window containing appointment conflicts",
			start: base.Add(-30 * time.Minute),
			end:   base.Add(90 * time.Minute),
			want:  true,
		},
		{
			name:  "touching at appointment end does not conflict",
			start: base.Add(60 * time.Minute),
			end:   base.Add(120 * time.Minute),
			want:  false,
		},
		{
			name:  "touching at appointment start does not conflict",
			start: base.Add(-60 * time.Minute),
			end:   base,
			want:  false,
		},
		{
			name:  "disjoint window before does not conflict",
			start: base.Add(-120 * time.Minute),
			end:   base.Add(-60 * time.Minute),
			want:  false,
		},
		{
			name:  "disjoint window after does not conflict",
			start: base.Add(120 * time.Minute),
			end:   base.Add(180 * time.Minute),
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, appt.Overlaps(tt.start, tt.end))
		})
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from AppointmentStatus
		to   AppointmentStatus
		want bool
	}{
		{StatusScheduled, StatusInProgress, true},
		{StatusInProgress, StatusCompleted, true},
		{StatusScheduled, StatusCompleted, false},
		{StatusInProgress, StatusScheduled, false},
		{StatusCompleted, StatusInProgress, false},
		{StatusCompleted, StatusScheduled, false},
		{StatusScheduled, StatusScheduled, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CanTransition(tt.from, tt.to),
			"transition %s -> %s", tt.from, tt.to)
	}
}

func TestAppointment_StatusPredicates(t *testing.T) {
	scheduled := &Appointment{Status: StatusScheduled}
	inProgress := &Appointment{Status: StatusInProgress}
	completed := &Appointment{Status: StatusCompleted}

	assert.True(t, scheduled.IsActive())
	assert.True(t, scheduled.CanStart())
	assert.False(t, scheduled.CanFinish())

	assert.True(t, inProgress.IsActive())
	assert.False(t, inProgress.CanStart())
	assert.True(t, inProgress.CanFinish())

	assert.False(t, completed.IsActive())
	assert.False(t, completed.CanStart())
	assert.False(t, completed.CanFinish())
}

func TestResourceKind_Valid(t *testing.T) {
	assert.True(t, ResourceEmployee.Valid())
	assert.True(t, ResourcePedicure.Valid())
	assert.False(t, ResourceKind("manicure").Valid())
	assert.False(t, ResourceKind("").Valid())
}

func TestEmployeeQueueEntry_IsFree(t *testing.T) {
	customerID := int64(7)

	tests := []struct {
		name  string
		entry EmployeeQueueEntry
		want  bool
	}{
		{"active without customer", EmployeeQueueEntry{IsActive: true}, true},
		{"active with customer", EmployeeQueueEntry{IsActive: true, CurrentCustomerID: &customerID}, false},
		{"inactive without customer", EmployeeQueueEntry{IsActive: false}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.entry.IsFree())
		})
	}
}
