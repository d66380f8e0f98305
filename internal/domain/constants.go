package domain

// Default wait estimate heuristics: max(peopleAhead * per-person, floor).
// Оценка, а не обязательство - реальное время зависит от услуг в очереди.
const (
	DefaultWaitPerPersonMinutes = 15
	DefaultMinWaitMinutes       = 5
)

// Business validation constants
const (
	MinDurationMinutes = 1
	MaxDurationMinutes = 480 // 8 hours
	MaxCustomerNameLen = 200
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses список статусов, при которых запись занимает ресурс
// Используется в запросах пересечений при подсчёте доступности
var ActiveStatuses = []AppointmentStatus{
	StatusScheduled,
	StatusInProgress,
}
