package schedule

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

var (
	// ErrNoServices не выбрано ни одной услуги
	ErrNoServices = errors.New("schedule: no services selected")

	// ErrHoliday день нерабочий или рабочее окно нулевой ширины
	ErrHoliday = errors.New("schedule: day is a holiday")

	// ErrStartBeforeOpening начало брони раньше открытия
	ErrStartBeforeOpening = errors.New("schedule: start is before opening time")

	// ErrEndAfterClosing конец брони позже закрытия
	ErrEndAfterClosing = errors.New("schedule: end is after closing time")

	// ErrPastCutoff бронь на прошедшую дату или слишком близко к текущему моменту
	ErrPastCutoff = errors.New("schedule: start is past the booking cutoff")

	// ErrCapacityExceeded в одном из слотов нет свободного места
	ErrCapacityExceeded = errors.New("schedule: slot capacity exceeded")

	// ErrInvalidDuration длительность брони не положительная
	ErrInvalidDuration = errors.New("schedule: invalid duration")
)

// Candidate проверяемая бронь
type Candidate struct {
	Date            time.Time
	Start           types.TimeString
	DurationMinutes int
	ServiceCount    int
}

// CheckCutoff проверяет, что на время еще можно записаться.
// Прошедшая дата - всегда ошибка; на сегодня начало должно быть не раньше now+lead.
// Будущие даты не ограничены.
func CheckCutoff(date time.Time, start types.TimeString, now time.Time, lead time.Duration) error {
	dateKey := domain.DateKey(date)
	todayKey := domain.DateKey(now)

	if dateKey < todayKey {
		return fmt.Errorf("%w: date %s is in the past", ErrPastCutoff, dateKey)
	}
	if dateKey > todayKey {
		return nil
	}

	startAt := start.On(domain.DateIn(date, now.Location()))
	if startAt.Before(now.Add(lead)) {
		return fmt.Errorf("%w: %s must be at least %s from now", ErrPastCutoff, start, lead)
	}
	return nil
}

// Validate проверяет бронь по расписанию дня и возвращает время окончания.
// view должен быть построен внутри транзакции, в которой бронь будет сохранена;
// при редактировании редактируемая бронь в view не входит.
func Validate(view *DayView, c Candidate, now time.Time, lead time.Duration) (types.TimeString, error) {
	if c.ServiceCount <= 0 {
		return types.TimeString{}, ErrNoServices
	}
	if c.DurationMinutes <= 0 {
		return types.TimeString{}, fmt.Errorf("%w: %d minutes", ErrInvalidDuration, c.DurationMinutes)
	}

	if view.IsClosed() {
		return types.TimeString{}, fmt.Errorf("%w: %s", ErrHoliday, domain.DateKey(c.Date))
	}
	hours, _ := view.Hours()

	if c.Start.IsBefore(hours.Start) {
		return types.TimeString{}, fmt.Errorf("%w: %s < %s", ErrStartBeforeOpening, c.Start, hours.Start)
	}

	end, err := c.Start.AddMinutes(c.DurationMinutes)
	if err != nil {
		return types.TimeString{}, fmt.Errorf("%w: ends past midnight", ErrEndAfterClosing)
	}
	if end.IsAfter(hours.End) {
		return types.TimeString{}, fmt.Errorf("%w: %s > %s", ErrEndAfterClosing, end, hours.End)
	}

	if err := CheckCutoff(c.Date, c.Start, now, lead); err != nil {
		return types.TimeString{}, err
	}

	for _, s := range domain.SlotRange(c.Start, end) {
		if view.CountAt(s)+1 > view.LimitAt(s) {
			return types.TimeString{}, fmt.Errorf("%w: slot %s has %d/%d", ErrCapacityExceeded, s, view.CountAt(s), view.LimitAt(s))
		}
	}

	return end, nil
}
