package duration

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных:
	// неположительная длительность, нулевое время, отсутствие и явной
	// длительности, и услуги одновременно
	ErrInvalidInput = errors.New("duration: invalid input data")

	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("duration: service not found")

	// ErrStoreUnavailable возвращается при недоступности хранилища
	ErrStoreUnavailable = errors.New("duration: record store unavailable")
)
