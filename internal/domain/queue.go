package domain

import "time"

// QueueEntryStatus represents the status of a customer queue entry
type QueueEntryStatus string

const (
	QueueStatusWaiting   QueueEntryStatus = "waiting"
	QueueStatusAssigned  QueueEntryStatus = "assigned"
	QueueStatusCancelled QueueEntryStatus = "cancelled"
)

// CustomerQueueEntry is a walk-in customer waiting for a free resource.
// Queue position is never stored: it is always recomputed as
// 1 + count(waiting entries at the same facility created strictly earlier).
type CustomerQueueEntry struct {
	ID            int64
	TicketCode    string // короткий код для табло и клиента
	FacilityID    int64
	ServiceID     int64
	CustomerName  string
	CustomerEmail *string
	CustomerPhone *string
	Status        QueueEntryStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsWaiting returns true if the entry still counts toward queue positions
func (c *CustomerQueueEntry) IsWaiting() bool {
	return c.Status == QueueStatusWaiting
}

// QueuePosition вычисленная позиция клиента в очереди
type QueuePosition struct {
	PeopleAhead          int
	Position             int // PeopleAhead + 1
	EstimatedWaitMinutes int
}
