package update_reservation

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_reservation: invalid input data")

	// ErrReservationNotFound возвращается, когда бронь не найдена
	ErrReservationNotFound = errors.New("update_reservation: reservation not found")

	// ErrAccessDenied возвращается, когда пользователь не может менять бронь
	ErrAccessDenied = errors.New("update_reservation: access denied")

	// ErrNotEditable возвращается, когда бронь не в статусе pending
	ErrNotEditable = errors.New("update_reservation: only pending reservations can be edited")

	// ErrNoServices возвращается, когда не выбрано ни одной услуги
	ErrNoServices = errors.New("update_reservation: no services selected")

	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге мастера
	ErrServiceNotFound = errors.New("update_reservation: service not found")

	// ErrHoliday возвращается, когда мастер не работает в этот день
	ErrHoliday = errors.New("update_reservation: stylist does not work on this date")

	// ErrStartBeforeOpening возвращается, когда начало брони раньше открытия
	ErrStartBeforeOpening = errors.New("update_reservation: start is before opening time")

	// ErrEndAfterClosing возвращается, когда бронь заканчивается после закрытия
	ErrEndAfterClosing = errors.New("update_reservation: end is after closing time")

	// ErrPastCutoff возвращается, когда на это время уже нельзя записаться
	ErrPastCutoff = errors.New("update_reservation: too late to book this time")

	// ErrCapacityExceeded возвращается, когда в одном из слотов нет мест
	ErrCapacityExceeded = errors.New("update_reservation: capacity exceeded")

	// ErrBusy возвращается, когда не удалось дождаться блокировки дня мастера
	ErrBusy = errors.New("update_reservation: schedule is busy, try again")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_reservation: internal error")
)
