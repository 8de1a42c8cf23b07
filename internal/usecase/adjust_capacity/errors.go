package adjust_capacity

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("adjust_capacity: invalid input data")

	// ErrAccessDenied возвращается, когда вместимость меняет не сам мастер
	ErrAccessDenied = errors.New("adjust_capacity: access denied")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("adjust_capacity: internal error")
)
