package update_reservation

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/schedule"
	"github.com/m04kA/SMC-ScheduleService/pkg/redislock"
	"github.com/m04kA/SMC-ScheduleService/pkg/txmanager"
)

const (
	outcomeUpdated  = "updated"
	outcomeRejected = "rejected"
	outcomeConflict = "capacity_exceeded"
	outcomeError    = "error"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ReservationID <= 0 {
		return fmt.Errorf("%w: reservationID must be positive", ErrInvalidInput)
	}

	if req.ActorID <= 0 {
		return fmt.Errorf("%w: actorID must be positive", ErrInvalidInput)
	}

	if req.ActorRole != domain.ActorCustomer && req.ActorRole != domain.ActorStylist {
		return fmt.Errorf("%w: unknown actor role %q", ErrInvalidInput, req.ActorRole)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
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

// checkAccess проверяет, что пользователь - клиент брони или её мастер
func checkAccess(res *domain.Reservation, actorID int64, role domain.ActorRole) error {
	switch role {
	case domain.ActorCustomer:
		if res.CustomerID == actorID {
			return nil
		}
	case domain.ActorStylist:
		if res.StylistID == actorID {
			return nil
		}
	}
	return ErrAccessDenied
}

// diff собирает изменения полей брони
func diff(before, after *domain.Reservation) domain.ChangeSet {
	changes := domain.ChangeSet{}

	if !domain.SameDate(before.Date, after.Date) {
		changes = append(changes, domain.FieldChange{
			Field:  domain.ChangeDate,
			Before: domain.DateKey(before.Date),
			After:  domain.DateKey(after.Date),
		})
	}

	if !before.StartTime.Equal(after.StartTime) || !before.EndTime.Equal(after.EndTime) {
		changes = append(changes, domain.FieldChange{
			Field:  domain.ChangeTime,
			Before: before.StartTime.String() + "-" + before.EndTime.String(),
			After:  after.StartTime.String() + "-" + after.EndTime.String(),
		})
	}

	if !slices.Equal(before.ServiceIDs, after.ServiceIDs) {
		changes = append(changes, domain.FieldChange{
			Field:  domain.ChangeServices,
			Before: strings.Join(before.ServiceNames, ", "),
			After:  strings.Join(after.ServiceNames, ", "),
		})
	}

	return changes
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

func isKnownError(err error) bool {
	for _, known := range []error{
		ErrInvalidInput, ErrReservationNotFound, ErrAccessDenied, ErrNotEditable,
		ErrNoServices, ErrServiceNotFound, ErrHoliday, ErrStartBeforeOpening,
		ErrEndAfterClosing, ErrPastCutoff, ErrCapacityExceeded, ErrBusy, ErrInternal,
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
	case errors.Is(err, redislock.ErrLockNotAcquired), errors.Is(err, txmanager.ErrRetriesExhausted):
		return fmt.Errorf("%w: %v", ErrBusy, err)
	case isKnownError(err):
		return err
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return outcomeUpdated
	case errors.Is(err, ErrCapacityExceeded):
		return outcomeConflict
	case errors.Is(err, ErrInternal):
		return outcomeError
	default:
		return outcomeRejected
	}
}

func lockKey(stylistID int64, dateKey string) string {
	return fmt.Sprintf("stylist:%d:%s", stylistID, dateKey)
}
