package finish_appointment

import (
	"context"

	"github.com/svojko1/nechty-sub001/internal/domain"
	finishAppointment "github.com/svojko1/nechty-sub001/internal/usecase/finish_appointment"
)

type FinishAppointmentUseCase interface {
	Execute(ctx context.Context, req *finishAppointment.Request) (*domain.Appointment, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
