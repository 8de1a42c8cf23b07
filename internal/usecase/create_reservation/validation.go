package create_reservation

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/schedule"
	"github.com/m04kA/SMC-ScheduleService/pkg/redislock"
	"github.com/m04kA/SMC-ScheduleService/pkg/txmanager"
)

// Исходы операции для метрик
const (
	outcomeCreated  = "created"
	outcomeRejected = "rejected"
	outcomeConflict = "capacity_exceeded"
	outcomeError    = "error"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.StylistID <= 0 {
		return fmt.Errorf("%w: stylistID must be positive", ErrInvalidInput)
	}

	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if req.CustomerName == "" {
		return fmt.Errorf("%w: customer name is required", ErrInvalidInput)
	}

	if utf8.RuneCountInString(req.CustomerName) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customer name is longer than %d characters", ErrInvalidInput, domain.MaxCustomerNameLength)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if len(req.ServiceIDs) == 0 {
		return ErrNoServices
	}

	seen := make(map[int64]struct{}, len(req.ServiceIDs))
	for _, id := range req.ServiceIDs {
		if id <= 0 {
			return fmt.Errorf("%w: service id must be positive", ErrInvalidInput)
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: service id=%d is duplicated", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
	}

	if req.DurationMinutes != nil {
		if *req.DurationMinutes <= 0 || *req.DurationMinutes > domain.MaxReservationDurationHours*60 {
			return fmt.Errorf("%w: duration must be in (0, %d] minutes", ErrInvalidInput, domain.MaxReservationDurationHours*60)
		}
	}

	return nil
}

// mapScheduleError переводит ошибку проверки расписания в ошибку usecase
func mapScheduleError(err error) error {
	switch {
	case errors.Is(err, schedule.ErrNoServices):
		return fmt.Errorf("%w: %v", ErrNoServices, err)
	case errors.Is(err, schedule.ErrHoliday):
		return fmt.Errorf("%w: %v", ErrHoliday, err)
	case errors.Is(err, schedule.ErrStartBeforeOpening):
		return fmt.Errorf("%w: %v", ErrStartBeforeOpening, err)
	case errors.Is(err, schedule.ErrEndAfterClosing):
		return fmt.Errorf("%w: %v", ErrEndAfterClosing, err)
	case errors.Is(err, schedule.ErrPastCutoff):
		return fmt.Errorf("%w: %v", ErrPastCutoff, err)
	case errors.Is(err, schedule.ErrCapacityExceeded):
		return fmt.Errorf("%w: %v", ErrCapacityExceeded, err)
	case errors.Is(err, schedule.ErrInvalidDuration):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}

// isKnownError проверяет, что ошибка уже переведена в ошибку usecase
func isKnownError(err error) bool {
	for _, known := range []error{
		ErrInvalidInput, ErrNoServices, ErrServiceNotFound, ErrHoliday,
		ErrStartBeforeOpening, ErrEndAfterClosing, ErrPastCutoff,
		ErrCapacityExceeded, ErrBusy, ErrInternal,
	} {
		if errors.Is(err, known) {
			return true
		}
	}
	return false
}

// normalizeError приводит ошибку транзакции или блокировки к ошибке usecase
func normalizeError(err error) error {
	switch {
	case errors.Is(err, redislock.ErrLockNotAcquired):
		return fmt.Errorf("%w: %v", ErrBusy, err)
	case errors.Is(err, txmanager.ErrRetriesExhausted):
		return fmt.Errorf("%w: %v", ErrBusy, err)
	case isKnownError(err):
		return err
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}

// outcomeOf возвращает исход операции для метрик
func outcomeOf(err error) string {
	switch {
	case err == nil:
		return outcomeCreated
	case errors.Is(err, ErrCapacityExceeded):
		return outcomeConflict
	case errors.Is(err, ErrInternal):
		return outcomeError
	default:
		return outcomeRejected
	}
}

// lockKey ключ блокировки дня мастера
func lockKey(stylistID int64, dateKey string) string {
	return fmt.Sprintf("stylist:%d:%s", stylistID, dateKey)
}
