package create_appointment

import (
	"context"
	"time"

	"github.com/svojko1/nechty-sub001/internal/domain"
	"github.com/svojko1/nechty-sub001/internal/service/availability"
	wqModels "github.com/svojko1/nechty-sub001/internal/service/waitqueue/models"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
}

// EmployeeQueueRepository интерфейс репозитория очереди сотрудников
type EmployeeQueueRepository interface {
	AssignCustomer(ctx context.Context, entryID, appointmentID int64, assignedAt time.Time) error
}

// DurationResolver интерфейс вычисления длительности услуги
type DurationResolver interface {
	Resolve(ctx context.Context, explicitMinutes *int, serviceID *int64) (int, error)
}

// AvailabilityService интерфейс подбора свободного ресурса
type AvailabilityService interface {
	FindAvailableEmployees(ctx context.Context, facilityID int64, start time.Time, minutes int) ([]*domain.EmployeeQueueEntry, error)
	FindAvailablePedicureChair(ctx context.Context, facilityID int64, start time.Time, minutes int) (*availability.ChairSearch, error)
	IsResourceFree(ctx context.Context, req availability.CheckRequest) (*availability.ResourceCheck, error)
}

// WaitQueueService интерфейс постановки клиента в очередь ожидания
type WaitQueueService interface {
	Enqueue(ctx context.Context, req *wqModels.EnqueueRequest) (*wqModels.EntryResponse, error)
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
