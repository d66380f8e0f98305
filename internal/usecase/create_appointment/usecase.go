package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/svojko1/nechty-sub001/internal/domain"
	entryRepo "github.com/svojko1/nechty-sub001/internal/infra/storage/employeequeue"
	"github.com/svojko1/nechty-sub001/internal/service/availability"
	durationSvc "github.com/svojko1/nechty-sub001/internal/service/duration"
	wqModels "github.com/svojko1/nechty-sub001/internal/service/waitqueue/models"
)

// UseCase use case создания записи: подбор свободного ресурса
// и создание записи, либо постановка клиента в очередь ожидания
type UseCase struct {
	appointmentRepo AppointmentRepository
	entryRepo       EmployeeQueueRepository
	durations       DurationResolver
	availability    AvailabilityService
	waitQueue       WaitQueueService
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	entryRepo EmployeeQueueRepository,
	durations DurationResolver,
	availabilitySvc AvailabilityService,
	waitQueue WaitQueueService,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		entryRepo:       entryRepo,
		durations:       durations,
		availability:    availabilitySvc,
		waitQueue:       waitQueue,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет создание записи или постановку в очередь
// Ровно один из результатов: запись создана либо клиент в очереди
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: facility=%d, service=%d, kind=%s, walkIn=%v",
		req.FacilityID, req.ServiceID, req.ResourceKind, req.IsWalkIn())

	// 1. Получаем текущее время
	now := uc.timeProvider.Now()

	// 2. Валидация входных данных
	if err := validateRequest(req, now); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 3. Вычисляем эффективную длительность
	minutes, err := uc.durations.Resolve(ctx, req.DurationMinutes, &req.ServiceID)
	if err != nil {
		return nil, uc.translateDurationError(err)
	}

	start := now
	if req.StartTime != nil {
		start = *req.StartTime
	}

	var result *Response

	// 4. Подбор ресурса и создание записи в сериализуемой транзакции
	// Каждый запрос перечитывает актуальное состояние - решения
	// о доступности никогда не кешируются между вызовами
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		switch req.ResourceKind {
		case domain.ResourceEmployee:
			return uc.createWithEmployee(txCtx, req, start, minutes, now, &result)
		case domain.ResourcePedicure:
			return uc.createWithChair(txCtx, req, start, minutes, now, &result)
		default:
			return fmt.Errorf("%w: unknown resource kind %q", ErrInvalidInput, req.ResourceKind)
		}
	})

	if err != nil {
		return nil, err
	}

	if result.Queued() {
		uc.logger.Info("CreateAppointment: no free resource, queued entry id=%d ticket=%s",
			result.QueueEntry.ID, result.QueueEntry.TicketCode)
	} else {
		uc.logger.Info("CreateAppointment: created appointment id=%d status=%s",
			result.Appointment.ID, result.Appointment.Status)
	}

	return result, nil
}

// createWithEmployee подбирает свободного сотрудника и создает запись
// Walk-in сразу переходит в in_progress и закрепляет сотрудника,
// будущая запись остается scheduled без закрепления
func (uc *UseCase) createWithEmployee(ctx context.Context, req *Request, start time.Time, minutes int, now time.Time, result **Response) error {
	free, err := uc.availability.FindAvailableEmployees(ctx, req.FacilityID, start, minutes)
	if err != nil {
		return uc.translateAvailabilityError(err)
	}

	if len(free) == 0 {
		return uc.enqueue(ctx, req, result)
	}

	// Первый в отсортированном списке - наименьший employee_id
	entry := free[0]

	appt, err := uc.insertAppointment(ctx, req, start, minutes, &entry.EmployeeID, nil)
	if err != nil {
		return err
	}

	if req.IsWalkIn() {
		if err := uc.entryRepo.AssignCustomer(ctx, entry.ID, appt.ID, now); err != nil {
			if errors.Is(err, entryRepo.ErrAlreadyAssigned) {
				uc.logger.Warn("CreateAppointment: employee=%d lost assignment race", entry.EmployeeID)
				return ErrEmployeeBusy
			}
			uc.logger.Error("CreateAppointment: failed to assign employee=%d: %v", entry.EmployeeID, err)
			return fmt.Errorf("%w: failed to assign employee: %v", ErrStoreUnavailable, err)
		}
	}

	*result = &Response{Appointment: appt}
	return nil
}

// createWithChair подбирает педикюрное кресло
// Перед вставкой выбранное кресло перепроверяется; если его перехватили,
// подбор повторяется один раз, после чего возвращается ErrChairTaken
func (uc *UseCase) createWithChair(ctx context.Context, req *Request, start time.Time, minutes int, now time.Time, result **Response) error {
	chair, err := uc.pickChair(ctx, req.FacilityID, start, minutes)
	if err != nil {
		return err
	}
	if chair == nil {
		return uc.enqueue(ctx, req, result)
	}

	free, err := uc.chairStillFree(ctx, req.FacilityID, *chair, start, minutes)
	if err != nil {
		return err
	}

	if !free {
		// Повторный подбор, ровно один
		chair, err = uc.pickChair(ctx, req.FacilityID, start, minutes)
		if err != nil {
			return err
		}
		if chair == nil {
			uc.logger.Warn("CreateAppointment: all chairs taken on retry, facility=%d", req.FacilityID)
			return ErrChairTaken
		}

		free, err = uc.chairStillFree(ctx, req.FacilityID, *chair, start, minutes)
		if err != nil {
			return err
		}
		if !free {
			uc.logger.Warn("CreateAppointment: chair %d taken on retry, facility=%d", *chair, req.FacilityID)
			return ErrChairTaken
		}
	}

	appt, err := uc.insertAppointment(ctx, req, start, minutes, nil, chair)
	if err != nil {
		return err
	}

	*result = &Response{Appointment: appt}
	return nil
}

// enqueue ставит клиента в очередь ожидания вместо создания записи
func (uc *UseCase) enqueue(ctx context.Context, req *Request, result **Response) error {
	entry, err := uc.waitQueue.Enqueue(ctx, &wqModels.EnqueueRequest{
		FacilityID:    req.FacilityID,
		ServiceID:     req.ServiceID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
	})
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to enqueue customer: %v", err)
		return fmt.Errorf("%w: failed to enqueue customer: %v", ErrStoreUnavailable, err)
	}

	*result = &Response{QueueEntry: entry}
	return nil
}

func (uc *UseCase) insertAppointment(ctx context.Context, req *Request, start time.Time, minutes int, employeeID *int64, chair *int) (*domain.Appointment, error) {
	end, err := durationSvc.ComputeEndTime(start, minutes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	status := domain.StatusScheduled
	if req.IsWalkIn() {
		status = domain.StatusInProgress
	}

	appt := &domain.Appointment{
		FacilityID:      req.FacilityID,
		ServiceID:       req.ServiceID,
		EmployeeID:      employeeID,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		StartTime:       start,
		EndTime:         end,
		DurationMinutes: minutes,
		Status:          status,
		ChairNumber:     chair,
	}

	created, err := uc.appointmentRepo.Create(ctx, appt)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
		return nil, fmt.Errorf("%w: failed to create appointment: %v", ErrStoreUnavailable, err)
	}

	return created, nil
}

// pickChair возвращает наименьший свободный номер кресла, nil - все заняты
func (uc *UseCase) pickChair(ctx context.Context, facilityID int64, start time.Time, minutes int) (*int, error) {
	search, err := uc.availability.FindAvailablePedicureChair(ctx, facilityID, start, minutes)
	if err != nil {
		return nil, uc.translateAvailabilityError(err)
	}
	return search.ChairNumber, nil
}

func (uc *UseCase) chairStillFree(ctx context.Context, facilityID int64, chair int, start time.Time, minutes int) (bool, error) {
	check, err := uc.availability.IsResourceFree(ctx, availability.CheckRequest{
		FacilityID:  facilityID,
		StartTime:   start,
		Minutes:     minutes,
		Kind:        domain.ResourcePedicure,
		ChairNumber: &chair,
	})
	if err != nil {
		return false, uc.translateAvailabilityError(err)
	}
	return check.Free, nil
}

func (uc *UseCase) translateDurationError(err error) error {
	switch {
	case errors.Is(err, durationSvc.ErrServiceNotFound):
		uc.logger.Warn("CreateAppointment: service not found: %v", err)
		return ErrServiceNotFound
	case errors.Is(err, durationSvc.ErrInvalidInput):
		uc.logger.Warn("CreateAppointment: duration validation failed: %v", err)
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		uc.logger.Error("CreateAppointment: duration resolver error: %v", err)
		return fmt.Errorf("%w: duration resolver error: %v", ErrStoreUnavailable, err)
	}
}

func (uc *UseCase) translateAvailabilityError(err error) error {
	switch {
	case errors.Is(err, availability.ErrFacilityNotFound):
		uc.logger.Warn("CreateAppointment: facility not found: %v", err)
		return ErrFacilityNotFound
	case errors.Is(err, availability.ErrInvalidInput):
		uc.logger.Warn("CreateAppointment: availability validation failed: %v", err)
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		uc.logger.Error("CreateAppointment: availability error: %v", err)
		return fmt.Errorf("%w: availability error: %v", ErrStoreUnavailable, err)
	}
}
