package waitqueue

import (
	"context"
	"time"

	"github.com/svojko1/nechty-sub001/internal/domain"
)

// CustomerQueueRepository интерфейс репозитория очереди клиентов
type CustomerQueueRepository interface {
	Create(ctx context.Context, entry *domain.CustomerQueueEntry) (*domain.CustomerQueueEntry, error)
	GetByID(ctx context.Context, id int64) (*domain.CustomerQueueEntry, error)
	CountEarlierWaiting(ctx context.Context, entry *domain.CustomerQueueEntry) (int, error)
	ListWaiting(ctx context.Context, facilityID int64) ([]*domain.CustomerQueueEntry, error)
	UpdateStatus(ctx context.Context, id int64, from, to domain.QueueEntryStatus) error
}

// Notification одно уведомление об изменении очереди или записей.
// Payload содержит facility_id в текстовом виде (см. pg_notify триггеры)
type Notification struct {
	Channel string
	Payload string
}

// NotificationSource источник уведомлений об изменениях данных.
// В production это обертка над pq.Listener (LISTEN/NOTIFY)
type NotificationSource interface {
	Listen(channel string) error
	Notifications() <-chan Notification
	Close() error
}

// TicketGenerator генерирует короткий код талона для табло
type TicketGenerator interface {
	NewTicketCode() string
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// MetricsCollector счетчики пересчетов трекера
type MetricsCollector interface {
	IncTrackerRecompute(trigger string)
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
