package facility

import "errors"

var (
	// ErrFacilityNotFound возвращается, когда точка не найдена
	// Отсутствующая точка никогда не трактуется как нулевая вместимость
	ErrFacilityNotFound = errors.New("facility.repository: facility not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("facility.repository: failed to build query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("facility.repository: failed to scan row")
)
