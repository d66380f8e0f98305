package check_in

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_in: invalid input data")

	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("check_in: appointment not found")

	// ErrEntryNotFound возвращается, когда запись очереди сотрудников не найдена
	ErrEntryNotFound = errors.New("check_in: employee queue entry not found")

	// ErrEmployeeBusy возвращается, когда у сотрудника уже есть клиент
	// или запись деактивирована
	ErrEmployeeBusy = errors.New("check_in: employee already assigned")

	// ErrEmployeeMismatch возвращается, когда запись закреплена
	// за другим сотрудником
	ErrEmployeeMismatch = errors.New("check_in: appointment belongs to another employee")

	// ErrInvalidStateTransition возвращается, когда запись уже начата
	// или завершена
	ErrInvalidStateTransition = errors.New("check_in: appointment is not scheduled")

	// ErrStoreUnavailable возвращается при недоступности хранилища
	ErrStoreUnavailable = errors.New("check_in: record store unavailable")
)
