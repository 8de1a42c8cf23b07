package schedule

import (
	"sort"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/ptr"
)

// FindConflicts возвращает брони, которые станут недействительными после применения смен.
// days должны быть нормализованы. Отмененные брони и брони на даты вне days не учитываются.
// Результат отсортирован по дате, затем по времени начала.
func FindConflicts(days []domain.ShiftDay, reservations []*domain.Reservation) []domain.ShiftConflict {
	byDate := make(map[string]domain.ShiftDay, len(days))
	for _, d := range days {
		byDate[domain.DateKey(d.Date)] = d
	}

	conflicts := make([]domain.ShiftConflict, 0)
	for _, res := range reservations {
		if res == nil || res.IsCanceled() {
			continue
		}
		day, ok := byDate[domain.DateKey(res.Date)]
		if !ok {
			continue
		}

		if day.IsHoliday {
			conflicts = append(conflicts, domain.ShiftConflict{
				Type:          domain.ConflictHoliday,
				Date:          day.Date,
				ReservationID: res.ID,
				Start:         res.StartTime,
				End:           res.EndTime,
				CustomerName:  res.CustomerName,
			})
			continue
		}

		if res.StartTime.IsBefore(day.Start) || res.EndTime.IsAfter(day.End) {
			conflicts = append(conflicts, domain.ShiftConflict{
				Type:          domain.ConflictOutOfHours,
				Date:          day.Date,
				ReservationID: res.ID,
				Start:         res.StartTime,
				End:           res.EndTime,
				CustomerName:  res.CustomerName,
				ProposedStart: ptr.Ptr(day.Start),
				ProposedEnd:   ptr.Ptr(day.End),
			})
		}
	}

	sort.SliceStable(conflicts, func(i, j int) bool {
		ki, kj := domain.DateKey(conflicts[i].Date), domain.DateKey(conflicts[j].Date)
		if ki != kj {
			return ki < kj
		}
		if !conflicts[i].Start.Equal(conflicts[j].Start) {
			return conflicts[i].Start.IsBefore(conflicts[j].Start)
		}
		return conflicts[i].ReservationID < conflicts[j].ReservationID
	})

	return conflicts
}
