package apply_shift_settings

import (
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// validateRequest проверяет запрос и возвращает нормализованные дни,
// отсортированные по дате, и первый день месяца
func validateRequest(req *Request, maxCapacity int) ([]domain.ShiftDay, time.Time, error) {
	if req.StylistID <= 0 {
		return nil, time.Time{}, fmt.Errorf("%w: stylistID must be positive", ErrInvalidInput)
	}

	month, err := time.Parse(domain.MonthFormat, req.Month)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("%w: month must be YYYY-MM", ErrInvalidInput)
	}

	if len(req.Days) == 0 {
		return nil, time.Time{}, fmt.Errorf("%w: days are required", ErrInvalidInput)
	}

	keys := make([]int, 0, len(req.Days))
	for k := range req.Days {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	days := make([]domain.ShiftDay, 0, len(keys))
	for _, k := range keys {
		in := req.Days[k]
		if err := validateDay(k, in, month, maxCapacity); err != nil {
			return nil, time.Time{}, err
		}
		days = append(days, domain.ShiftDay{
			Date:            domain.DateOnly(in.Date),
			IsHoliday:       in.IsHoliday,
			Start:           in.StartTime,
			End:             in.EndTime,
			MaxReservations: in.MaxReservations,
		}.Normalized())
	}

	return days, month, nil
}

func validateDay(key int, in DayInput, month time.Time, maxCapacity int) error {
	if in.Date.IsZero() {
		return fmt.Errorf("%w: day %d: date is required", ErrInvalidInput, key)
	}

	if in.Date.Year() != month.Year() || in.Date.Month() != month.Month() {
		return fmt.Errorf("%w: day %d: date %s is outside %s", ErrInvalidInput, key, domain.DateKey(in.Date), month.Format(domain.MonthFormat))
	}

	if in.Date.Day() != key {
		return fmt.Errorf("%w: day %d: key does not match date %s", ErrInvalidInput, key, domain.DateKey(in.Date))
	}

	if in.IsHoliday {
		return nil
	}

	if in.StartTime.IsZero() || in.EndTime.IsZero() {
		return fmt.Errorf("%w: day %d: start and end are required", ErrInvalidInput, key)
	}

	if !in.StartTime.IsBefore(in.EndTime) {
		return fmt.Errorf("%w: day %d: end %s must be after start %s", ErrInvalidInput, key, in.EndTime, in.StartTime)
	}

	if in.MaxReservations < 0 || in.MaxReservations > maxCapacity {
		return fmt.Errorf("%w: day %d: max reservations must be in [0, %d]", ErrInvalidInput, key, maxCapacity)
	}

	return nil
}
