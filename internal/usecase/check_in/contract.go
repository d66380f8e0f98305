package check_in

import (
	"context"
	"time"

	"github.com/svojko1/nechty-sub001/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	Start(ctx context.Context, id int64, startTime, endTime time.Time) error
}

// EmployeeQueueRepository интерфейс репозитория очереди сотрудников
type EmployeeQueueRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.EmployeeQueueEntry, error)
	AssignCustomer(ctx context.Context, entryID, appointmentID int64, assignedAt time.Time) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
