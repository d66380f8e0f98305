package check_in

import (
	"context"
	"errors"
	"fmt"

	"github.com/svojko1/nechty-sub001/internal/domain"
	apptRepo "github.com/svojko1/nechty-sub001/internal/infra/storage/appointment"
	entryRepo "github.com/svojko1/nechty-sub001/internal/infra/storage/employeequeue"
	"github.com/svojko1/nechty-sub001/internal/service/duration"
)

// UseCase use case начала обслуживания: пара сотрудник + запись
// закрепляются друг за другом атомарно
type UseCase struct {
	appointmentRepo AppointmentRepository
	entryRepo       EmployeeQueueRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	entryRepo EmployeeQueueRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		entryRepo:       entryRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет начало обслуживания
// Сериализуемая транзакция гарантирует, что закрепление сотрудника
// и перевод записи в in_progress применяются вместе или никак
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckIn: appointment=%d, entry=%d", req.AppointmentID, req.EntryID)

	if req.AppointmentID <= 0 || req.EntryID <= 0 {
		return nil, fmt.Errorf("%w: appointmentID and entryID must be positive", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()

	var result *Response

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Загружаем запись очереди сотрудников с блокировкой
		entry, err := uc.entryRepo.GetByID(txCtx, req.EntryID)
		if err != nil {
			if errors.Is(err, entryRepo.ErrEntryNotFound) {
				uc.logger.Warn("CheckIn: entry id=%d not found", req.EntryID)
				return ErrEntryNotFound
			}
			uc.logger.Error("CheckIn: failed to get entry id=%d: %v", req.EntryID, err)
			return fmt.Errorf("%w: failed to get entry: %v", ErrStoreUnavailable, err)
		}

		if !entry.IsFree() {
			uc.logger.Warn("CheckIn: entry id=%d is busy or inactive", req.EntryID)
			return ErrEmployeeBusy
		}

		// 2. Загружаем запись с блокировкой
		appt, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("CheckIn: appointment id=%d not found", req.AppointmentID)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("CheckIn: failed to get appointment id=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get appointment: %v", ErrStoreUnavailable, err)
		}

		if !appt.CanStart() {
			uc.logger.Warn("CheckIn: appointment id=%d has status %s", appt.ID, appt.Status)
			return ErrInvalidStateTransition
		}

		if appt.EmployeeID == nil || *appt.EmployeeID != entry.EmployeeID {
			uc.logger.Warn("CheckIn: appointment id=%d is not assigned to employee=%d",
				appt.ID, entry.EmployeeID)
			return ErrEmployeeMismatch
		}

		// 3. Закрепляем клиента за сотрудником compare-and-set'ом
		// (current_customer_id IS NULL). Проигравший гонку получает ErrEmployeeBusy
		if err := uc.entryRepo.AssignCustomer(txCtx, entry.ID, appt.ID, now); err != nil {
			if errors.Is(err, entryRepo.ErrAlreadyAssigned) {
				uc.logger.Warn("CheckIn: entry id=%d lost assignment race", entry.ID)
				return ErrEmployeeBusy
			}
			uc.logger.Error("CheckIn: failed to assign customer to entry id=%d: %v", entry.ID, err)
			return fmt.Errorf("%w: failed to assign customer: %v", ErrStoreUnavailable, err)
		}

		// 4. Переводим запись в in_progress, окно сдвигается на фактический старт
		endTime, err := duration.ComputeEndTime(now, appt.DurationMinutes)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		if err := uc.appointmentRepo.Start(txCtx, appt.ID, now, endTime); err != nil {
			if errors.Is(err, apptRepo.ErrStateConflict) {
				uc.logger.Warn("CheckIn: appointment id=%d lost start race", appt.ID)
				return ErrInvalidStateTransition
			}
			uc.logger.Error("CheckIn: failed to start appointment id=%d: %v", appt.ID, err)
			return fmt.Errorf("%w: failed to start appointment: %v", ErrStoreUnavailable, err)
		}

		appt.Status = domain.StatusInProgress
		appt.StartTime = now
		appt.EndTime = endTime

		entry.CurrentCustomerID = &appt.ID
		entry.LastAssignmentTime = &now

		result = &Response{Appointment: appt, Entry: entry}
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CheckIn: appointment id=%d started by employee=%d",
		result.Appointment.ID, result.Entry.EmployeeID)
	return result, nil
}
