package get_weekly_availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_weekly_availability: invalid input data")

	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге мастера
	ErrServiceNotFound = errors.New("get_weekly_availability: service not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_weekly_availability: internal error")
)
