package create_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrFacilityNotFound возвращается, когда точка не найдена
	ErrFacilityNotFound = errors.New("create_appointment: facility not found")

	// ErrChairTaken возвращается, когда кресло перехвачено конкурентным
	// запросом и повторный подбор тоже не нашел свободного
	ErrChairTaken = errors.New("create_appointment: pedicure chair already taken")

	// ErrEmployeeBusy возвращается, когда выбранный сотрудник перехвачен
	// конкурентным запросом
	ErrEmployeeBusy = errors.New("create_appointment: employee already assigned")

	// ErrStoreUnavailable возвращается при недоступности хранилища
	ErrStoreUnavailable = errors.New("create_appointment: record store unavailable")
)
