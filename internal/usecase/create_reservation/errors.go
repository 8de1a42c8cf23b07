package create_reservation

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrNoServices возвращается, когда не выбрано ни одной услуги
	ErrNoServices = errors.New("create_reservation: no services selected")

	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге мастера
	ErrServiceNotFound = errors.New("create_reservation: service not found")

	// ErrHoliday возвращается, когда мастер не работает в этот день
	ErrHoliday = errors.New("create_reservation: stylist does not work on this date")

	// ErrStartBeforeOpening возвращается, когда начало брони раньше открытия
	ErrStartBeforeOpening = errors.New("create_reservation: start is before opening time")

	// ErrEndAfterClosing возвращается, когда бронь заканчивается после закрытия
	ErrEndAfterClosing = errors.New("create_reservation: end is after closing time")

	// ErrPastCutoff возвращается, когда на это время уже нельзя записаться
	ErrPastCutoff = errors.New("create_reservation: too late to book this time")

	// ErrCapacityExceeded возвращается, когда в одном из слотов нет мест
	ErrCapacityExceeded = errors.New("create_reservation: capacity exceeded")

	// ErrBusy возвращается, когда не удалось дождаться блокировки дня мастера
	ErrBusy = errors.New("create_reservation: schedule is busy, try again")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
