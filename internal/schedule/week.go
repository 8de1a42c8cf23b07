package schedule

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// DaysPerWeek количество дней в сетке доступности
const DaysPerWeek = 7

// ClampWeekStart возвращает понедельник недели anchor,
// но не раньше понедельника текущей недели
func ClampWeekStart(anchor, now time.Time) time.Time {
	current := domain.WeekStart(domain.DateIn(now, now.Location()))
	start := domain.WeekStart(domain.DateIn(anchor, now.Location()))
	if start.Before(current) {
		return current
	}
	return start
}

// Week строит сетку доступности на 7 дней начиная с weekStart
// для брони длительностью durationMinutes
func (r *Resolver) Week(weekStart time.Time, durationMinutes int, reservations []*domain.Reservation, now time.Time) *domain.WeekAvailability {
	n := domain.SlotCount(durationMinutes)
	week := &domain.WeekAvailability{
		StylistID:       r.StylistID(),
		WeekStart:       weekStart,
		DurationMinutes: durationMinutes,
		SlotCount:       n,
		Days:            make([]domain.DayAvailability, 0, DaysPerWeek),
	}

	byDate := make(map[string][]*domain.Reservation)
	for _, res := range reservations {
		key := domain.DateKey(res.Date)
		byDate[key] = append(byDate[key], res)
	}

	for i := 0; i < DaysPerWeek; i++ {
		date := weekStart.AddDate(0, 0, i)
		view := r.Day(date, byDate[domain.DateKey(date)])
		week.Days = append(week.Days, DayMarkers(view, n, now, r.opts))
	}

	return week
}

// DayMarkers отмечает каждый диапазон из n слотов, помещающийся в рабочее время дня
func DayMarkers(view *DayView, n int, now time.Time, opts Options) domain.DayAvailability {
	day := domain.DayAvailability{
		Date:      view.Date(),
		IsHoliday: view.IsHoliday(),
		Cells:     []domain.AvailabilityCell{},
	}
	hours, ok := view.Hours()
	if ok {
		day.Hours = &hours
	}
	if n <= 0 {
		return day
	}

	// в выходной сетка строится по часам, чтобы все диапазоны были отмечены BLOCKED
	slots := view.Slots()
	if view.IsHoliday() && ok {
		slots = domain.SlotsWithin(hours.Start, hours.End)
	}
	for i := 0; i+n <= len(slots); i++ {
		start := slots[i]
		day.Cells = append(day.Cells, domain.AvailabilityCell{
			Start:  start,
			Marker: markRange(view, start, n, now, opts),
		})
	}

	return day
}

func markRange(view *DayView, start domain.Slot, n int, now time.Time, opts Options) domain.AvailabilityMarker {
	if view.IsHoliday() {
		return domain.MarkerBlocked
	}
	if err := CheckCutoff(view.Date(), start.Start(), now, opts.BookingLead); err != nil {
		return domain.MarkerBlocked
	}

	fills := false
	for s := start; s < start+domain.Slot(n); s++ {
		count, limit := view.CountAt(s), view.LimitAt(s)
		if count >= limit {
			return domain.MarkerBlocked
		}
		if count+1 == limit {
			switch opts.LastAvailableRule {
			case domain.LastAvailableStartSlot:
				fills = fills || s == start
			case domain.LastAvailableDisabled:
			default:
				fills = true
			}
		}
	}

	if fills {
		return domain.MarkerLastAvailable
	}
	return domain.MarkerOpen
}
