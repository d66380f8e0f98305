package customerqueue

import "errors"

var (
	// ErrEntryNotFound возвращается, когда запись очереди клиентов не найдена
	ErrEntryNotFound = errors.New("customerqueue.repository: entry not found")

	// ErrStatusConflict возвращается, когда CAS смены статуса не затронул
	// ни одной строки (запись уже не в ожидаемом статусе)
	ErrStatusConflict = errors.New("customerqueue.repository: entry is not in the expected status")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("customerqueue.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("customerqueue.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("customerqueue.repository: failed to scan row")
)
