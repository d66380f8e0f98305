package finish_appointment

import (
	"context"

	"github.com/svojko1/nechty-sub001/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	Finish(ctx context.Context, id int64, price float64) error
}

// EmployeeQueueRepository интерфейс репозитория очереди сотрудников
type EmployeeQueueRepository interface {
	ClearCustomer(ctx context.Context, appointmentID int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
