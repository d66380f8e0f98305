package waitqueue

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("waitqueue: invalid input data")

	// ErrEntryNotFound возвращается, когда запись очереди не найдена
	ErrEntryNotFound = errors.New("waitqueue: queue entry not found")

	// ErrEntryNotWaiting возвращается при попытке перевести запись,
	// которая уже не в статусе waiting
	ErrEntryNotWaiting = errors.New("waitqueue: queue entry is not waiting")

	// ErrStoreUnavailable возвращается при недоступности хранилища
	ErrStoreUnavailable = errors.New("waitqueue: record store unavailable")
)
