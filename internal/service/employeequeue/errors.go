package employeequeue

import "errors"

var (
	// ErrEntryNotFound возвращается, когда запись очереди сотрудников не найдена
	ErrEntryNotFound = errors.New("entry not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrStoreUnavailable возвращается при недоступности хранилища
	ErrStoreUnavailable = errors.New("employeequeue service: record store unavailable")
)
