package employeequeue

import "errors"

var (
	// ErrEntryNotFound возвращается, когда запись очереди сотрудников не найдена
	ErrEntryNotFound = errors.New("employeequeue.repository: entry not found")

	// ErrAlreadyAssigned возвращается, когда compare-and-set назначения
	// не прошел: у сотрудника уже есть текущий клиент
	ErrAlreadyAssigned = errors.New("employeequeue.repository: employee already has an assigned customer")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("employeequeue.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("employeequeue.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("employeequeue.repository: failed to scan row")
)
