package availability

import (
	"context"

	"github.com/svojko1/nechty-sub001/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetOverlapping(ctx context.Context, filter domain.OverlapFilter) ([]*domain.Appointment, error)
}

// EmployeeQueueRepository интерфейс репозитория очереди сотрудников
type EmployeeQueueRepository interface {
	ListFree(ctx context.Context, facilityID int64) ([]*domain.EmployeeQueueEntry, error)
}

// FacilityRepository интерфейс репозитория точек
type FacilityRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Facility, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
