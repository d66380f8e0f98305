package finish_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("finish_appointment: invalid input data")

	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("finish_appointment: appointment not found")

	// ErrInvalidStateTransition возвращается, когда запись не в статусе
	// in_progress (повторное завершение теряет CAS и попадает сюда)
	ErrInvalidStateTransition = errors.New("finish_appointment: appointment is not in progress")

	// ErrStoreUnavailable возвращается при недоступности хранилища
	ErrStoreUnavailable = errors.New("finish_appointment: record store unavailable")
)
