package get_availability

import (
	"context"
	"time"

	"github.com/svojko1/nechty-sub001/internal/domain"
	"github.com/svojko1/nechty-sub001/internal/service/availability"
)

type AvailabilityService interface {
	FindAvailableEmployees(ctx context.Context, facilityID int64, start time.Time, minutes int) ([]*domain.EmployeeQueueEntry, error)
	FindAvailablePedicureChair(ctx context.Context, facilityID int64, start time.Time, minutes int) (*availability.ChairSearch, error)
}

type DurationResolver interface {
	Resolve(ctx context.Context, explicitMinutes *int, serviceID *int64) (int, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
