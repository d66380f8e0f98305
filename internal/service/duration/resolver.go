package duration

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/svojko1/nechty-sub001/internal/domain"
	serviceRepo "github.com/svojko1/nechty-sub001/internal/infra/storage/servicecatalog"
)

// Resolver вычисляет эффективную длительность услуги:
// явное переопределение из запроса или дефолт из каталога услуг
type Resolver struct {
	services ServiceRepository
	logger   Logger
}

// NewResolver создает новый экземпляр resolver'а
func NewResolver(services ServiceRepository, logger Logger) *Resolver {
	return &Resolver{
		services: services,
		logger:   logger,
	}
}

// Resolve возвращает длительность в минутах
// Приоритет: явная положительная длительность из запроса, иначе дефолт услуги
// Если не передано ни то, ни другое - ErrInvalidInput
func (r *Resolver) Resolve(ctx context.Context, explicitMinutes *int, serviceID *int64) (int, error) {
	if explicitMinutes != nil {
		if *explicitMinutes <= 0 || *explicitMinutes > domain.MaxDurationMinutes {
			return 0, fmt.Errorf("%w: duration must be in (0, %d] minutes", ErrInvalidInput, domain.MaxDurationMinutes)
		}
		return *explicitMinutes, nil
	}

	if serviceID == nil {
		return 0, fmt.Errorf("%w: either duration or serviceId is required", ErrInvalidInput)
	}

	svc, err := r.services.GetByID(ctx, *serviceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			r.logger.Warn("Resolve: service id=%d not found", *serviceID)
			return 0, ErrServiceNotFound
		}
		r.logger.Error("Resolve: failed to get service id=%d: %v", *serviceID, err)
		return 0, fmt.Errorf("%w: Resolve - repository error: %v", ErrStoreUnavailable, err)
	}

	if svc.DefaultDurationMinutes <= 0 {
		return 0, fmt.Errorf("%w: service id=%d has no default duration", ErrInvalidInput, *serviceID)
	}

	return svc.DefaultDurationMinutes, nil
}

// ComputeEndTime вычисляет время окончания: чистое сложение start + minutes
func ComputeEndTime(start time.Time, minutes int) (time.Time, error) {
	if start.IsZero() {
		return time.Time{}, fmt.Errorf("%w: start time is required", ErrInvalidInput)
	}
	if minutes <= 0 {
		return time.Time{}, fmt.Errorf("%w: minutes must be positive", ErrInvalidInput)
	}
	return start.Add(time.Duration(minutes) * time.Minute), nil
}
