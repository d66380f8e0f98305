package domain

import "time"

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusScheduled  AppointmentStatus = "scheduled"
	StatusInProgress AppointmentStatus = "in_progress"
	StatusCompleted  AppointmentStatus = "completed"
)

// Appointment represents a scheduled or in-progress service instance
type Appointment struct {
	ID            int64
	FacilityID    int64
	ServiceID     int64
	EmployeeID    *int64 // nil until an employee is assigned
	CustomerName  string
	CustomerEmail *string
	CustomerPhone *string

	StartTime       time.Time
	EndTime         time.Time // always StartTime + DurationMinutes
	DurationMinutes int

	Status      AppointmentStatus
	ChairNumber *int     // pedicure only
	Price       *float64 // set at completion

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment still occupies its resource
func (a *Appointment) IsActive() bool {
	return a.Status == StatusScheduled || a.Status == StatusInProgress
}

// CanStart returns true if the appointment can transition to in_progress
func (a *Appointment) CanStart() bool {
	return a.Status == StatusScheduled
}

// CanFinish returns true if the appointment can transition to completed
func (a *Appointment) CanFinish() bool {
	return a.Status == StatusInProgress
}

// Overlaps reports whether two half-open windows [a.Start, a.End) and
// [start, end) intersect. Touching boundaries do not conflict.
func (a *Appointment) Overlaps(start, end time.Time) bool {
	return a.StartTime.Before(end) && start.Before(a.EndTime)
}

// CanTransition validates a forward-only status change:
// scheduled -> in_progress -> completed, no skipping, no reverse
func CanTransition(from, to AppointmentStatus) bool {
	switch from {
	case StatusScheduled:
		return to == StatusInProgress
	case StatusInProgress:
		return to == StatusCompleted
	default:
		return false
	}
}

// ResourceKind is the kind of resource an appointment occupies
type ResourceKind string

const (
	ResourceEmployee ResourceKind = "employee"
	ResourcePedicure ResourceKind = "pedicure"
)

// Valid returns true for a known resource kind
func (k ResourceKind) Valid() bool {
	return k == ResourceEmployee || k == ResourcePedicure
}

// OverlapFilter параметры выборки пересекающихся активных записей
// Используется Availability Checker'ом и аллокатором кресел
type OverlapFilter struct {
	FacilityID  int64
	EmployeeID  *int64 // nil - все сотрудники
	ChairNumber *int   // nil - все кресла
	OnlyChairs  bool   // только записи с назначенным креслом (педикюр)
	Start       time.Time
	End         time.Time
}
