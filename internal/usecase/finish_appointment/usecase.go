package finish_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/svojko1/nechty-sub001/internal/domain"
	apptRepo "github.com/svojko1/nechty-sub001/internal/infra/storage/appointment"
)

// Request модель запроса на завершение обслуживания
type Request struct {
	AppointmentID int64
	Price         float64
}

// UseCase use case завершения обслуживания: фиксация цены
// и освобождение сотрудника в одной транзакции
type UseCase struct {
	appointmentRepo AppointmentRepository
	entryRepo       EmployeeQueueRepository
	txManager       TransactionManager
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
		logger:          logger,
	}
}

// Execute завершает обслуживание
// Повторный вызов теряет CAS по статусу и ничего не изменяет
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Appointment, error) {
	uc.logger.Info("FinishAppointment: appointment=%d, price=%.2f", req.AppointmentID, req.Price)

	if req.AppointmentID <= 0 {
		return nil, fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}

	var result *domain.Appointment

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Переводим запись в completed compare-and-set'ом по статусу
		if err := uc.appointmentRepo.Finish(txCtx, req.AppointmentID, req.Price); err != nil {
			if errors.Is(err, apptRepo.ErrStateConflict) {
				uc.logger.Warn("FinishAppointment: appointment id=%d is not in progress", req.AppointmentID)
				return ErrInvalidStateTransition
			}
			uc.logger.Error("FinishAppointment: failed to finish appointment id=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to finish appointment: %v", ErrStoreUnavailable, err)
		}

		// 2. Снимаем пару с владеющей записи очереди сотрудников
		// Для педикюра пары нет - ноль затронутых строк допустим
		if err := uc.entryRepo.ClearCustomer(txCtx, req.AppointmentID); err != nil {
			uc.logger.Error("FinishAppointment: failed to clear pairing for appointment id=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to clear pairing: %v", ErrStoreUnavailable, err)
		}

		// 3. Перечитываем запись для ответа
		appt, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			uc.logger.Error("FinishAppointment: failed to reload appointment id=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to reload appointment: %v", ErrStoreUnavailable, err)
		}

		result = appt
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("FinishAppointment: appointment id=%d completed", result.ID)
	return result, nil
}
