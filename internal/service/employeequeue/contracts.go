package employeequeue

import (
	"context"
	"time"

	"github.com/svojko1/nechty-sub001/internal/domain"
)

// EmployeeQueueRepository интерфейс репозитория очереди сотрудников
type EmployeeQueueRepository interface {
	Create(ctx context.Context, employeeID, facilityID int64) (*domain.EmployeeQueueEntry, error)
	GetByID(ctx context.Context, id int64) (*domain.EmployeeQueueEntry, error)
	CheckOut(ctx context.Context, entryID int64, checkOutAt time.Time) error
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
