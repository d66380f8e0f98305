package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/svojko1/nechty-sub001/internal/domain"
	durationSvc "github.com/svojko1/nechty-sub001/internal/service/duration"
)

// Service проверяет занятость ресурсов и подбирает свободные
// Решения о доступности никогда не кэшируются между вызовами - каждая
// проверка перечитывает текущее состояние хранилища
type Service struct {
	appointmentRepo AppointmentRepository
	employeeRepo    EmployeeQueueRepository
	facilityRepo    FacilityRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(
	appointmentRepo AppointmentRepository,
	employeeRepo EmployeeQueueRepository,
	facilityRepo FacilityRepository,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		employeeRepo:    employeeRepo,
		facilityRepo:    facilityRepo,
		logger:          logger,
	}
}

// IsResourceFree проверяет, свободен ли ресурс в окне [StartTime, StartTime+Minutes)
// Два окна [s1,e1) и [s2,e2) пересекаются, только если s1 < e2 AND s2 < e1 -
// окно, заканчивающееся ровно там, где начинается другое, не конфликтует
// Завершенные записи (completed) никогда не считаются конфликтами
func (s *Service) IsResourceFree(ctx context.Context, req CheckRequest) (*ResourceCheck, error) {
	if err := validateWindow(req.StartTime, req.Minutes); err != nil {
		return nil, err
	}
	if !req.Kind.Valid() {
		return nil, fmt.Errorf("%w: unknown resource kind %q", ErrInvalidInput, req.Kind)
	}

	end, err := durationSvc.ComputeEndTime(req.StartTime, req.Minutes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	filter := domain.OverlapFilter{
		FacilityID: req.FacilityID,
		Start:      req.StartTime,
		End:        end,
	}
	switch req.Kind {
	case domain.ResourceEmployee:
		filter.EmployeeID = &req.ResourceID
	case domain.ResourcePedicure:
		filter.OnlyChairs = true
		if req.ChairNumber != nil {
			filter.ChairNumber = req.ChairNumber
		}
	}

	conflicts, err := s.appointmentRepo.GetOverlapping(ctx, filter)
	if err != nil {
		s.logger.Error("IsResourceFree: overlap query failed for resource=%d facility=%d: %v",
			req.ResourceID, req.FacilityID, err)
		return nil, fmt.Errorf("%w: IsResourceFree - repository error: %v", ErrStoreUnavailable, err)
	}

	return &ResourceCheck{
		Free:      len(conflicts) == 0,
		Conflicts: conflicts,
	}, nil
}

func validateWindow(start time.Time, minutes int) error {
	if start.IsZero() {
		return fmt.Errorf("%w: start time is required", ErrInvalidInput)
	}
	if minutes <= 0 {
		return fmt.Errorf("%w: window duration must be positive", ErrInvalidInput)
	}
	return nil
}
