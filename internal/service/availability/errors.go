package availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	// (нулевое или отрицательное окно, неизвестный вид ресурса)
	ErrInvalidInput = errors.New("availability: invalid input data")

	// ErrFacilityNotFound возвращается, когда точка не найдена
	// Отсутствующая вместимость - ошибка, а не "ноль кресел"
	ErrFacilityNotFound = errors.New("availability: facility not found")

	// ErrStoreUnavailable возвращается при недоступности хранилища
	ErrStoreUnavailable = errors.New("availability: record store unavailable")
)
