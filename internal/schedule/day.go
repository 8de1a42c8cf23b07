package schedule

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// DayView расписание мастера на один день.
// Все производные поля вычисляются в NewDayView и дальше не меняются.
type DayView struct {
	stylistID int64
	date      time.Time
	isHoliday bool
	hours     domain.Hours
	hasHours  bool
	slots     []domain.Slot
	counts    [domain.SlotsPerDay]int
	limits    [domain.SlotsPerDay]int
	starting  map[domain.Slot][]*domain.Reservation
}

// Day строит DayView на дату по броням мастера.
// Брони на другие даты игнорируются.
func (r *Resolver) Day(date time.Time, reservations []*domain.Reservation) *DayView {
	return NewDayView(r, date, reservations)
}

// NewDayView строит расписание дня
func NewDayView(r *Resolver, date time.Time, reservations []*domain.Reservation) *DayView {
	v := &DayView{
		stylistID: r.StylistID(),
		date:      domain.DateOnly(date),
		isHoliday: r.IsHoliday(date),
		starting:  make(map[domain.Slot][]*domain.Reservation),
	}

	v.hours, v.hasHours = r.Hours(date)
	if !v.isHoliday && v.hasHours {
		v.slots = domain.SlotsWithin(v.hours.Start, v.hours.End)
	} else {
		v.slots = []domain.Slot{}
	}

	for s := domain.Slot(0); s < domain.SlotsPerDay; s++ {
		v.limits[s] = r.Limit(date, s)
	}

	key := domain.DateKey(date)
	for _, res := range reservations {
		if res == nil || domain.DateKey(res.Date) != key || res.IsCanceled() {
			continue
		}
		if res.CountsAgainstCapacity() {
			for _, s := range res.Slots() {
				v.counts[s]++
			}
		}
		first := res.FirstSlot()
		v.starting[first] = append(v.starting[first], res)
	}

	for s := range v.starting {
		group := v.starting[s]
		sort.SliceStable(group, func(i, j int) bool {
			if !group[i].CreatedAt.Equal(group[j].CreatedAt) {
				return group[i].CreatedAt.Before(group[j].CreatedAt)
			}
			return group[i].ID < group[j].ID
		})
	}

	return v
}

// StylistID возвращает мастера
func (v *DayView) StylistID() int64 { return v.stylistID }

// Date возвращает дату
func (v *DayView) Date() time.Time { return v.date }

// IsHoliday возвращает true для выходного дня
func (v *DayView) IsHoliday() bool { return v.isHoliday }

// Hours возвращает рабочие часы; ok == false, если часы не определены
func (v *DayView) Hours() (domain.Hours, bool) { return v.hours, v.hasHours }

// IsClosed возвращает true, если в день нельзя записаться:
// выходной, часы не определены или окно нулевой ширины
func (v *DayView) IsClosed() bool {
	return v.isHoliday || !v.hasHours || v.hours.IsZeroWidth()
}

// Slots возвращает слоты рабочего времени
func (v *DayView) Slots() []domain.Slot {
	out := make([]domain.Slot, len(v.slots))
	copy(out, v.slots)
	return out
}

// CountAt возвращает количество активных броней, занимающих слот
func (v *DayView) CountAt(slot domain.Slot) int {
	if !slot.Valid() {
		return 0
	}
	return v.counts[slot]
}

// LimitAt возвращает вместимость слота
func (v *DayView) LimitAt(slot domain.Slot) int {
	if !slot.Valid() {
		return 0
	}
	return v.limits[slot]
}

// Remaining возвращает количество свободных мест в слоте
func (v *DayView) Remaining(slot domain.Slot) int {
	left := v.LimitAt(slot) - v.CountAt(slot)
	if left < 0 {
		return 0
	}
	return left
}

// ReservationsStartingAt возвращает брони, начинающиеся в слоте, в порядке создания
func (v *DayView) ReservationsStartingAt(slot domain.Slot) []*domain.Reservation {
	group := v.starting[slot]
	out := make([]*domain.Reservation, len(group))
	copy(out, group)
	return out
}

// StartsOutsideHours возвращает слоты вне рабочего времени, в которых начинаются брони,
// по возрастанию. Такие брони остаются после смены часов или закрытия дня.
func (v *DayView) StartsOutsideHours() []domain.Slot {
	inHours := make(map[domain.Slot]bool, len(v.slots))
	for _, s := range v.slots {
		inHours[s] = true
	}

	out := make([]domain.Slot, 0)
	for s := range v.starting {
		if !inHours[s] {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Fits возвращает true, если n слотов начиная со start лежат в рабочем времени
func (v *DayView) Fits(start domain.Slot, n int) bool {
	if n <= 0 || len(v.slots) == 0 {
		return false
	}
	first := v.slots[0]
	last := v.slots[len(v.slots)-1]
	return start >= first && start+domain.Slot(n-1) <= last
}

// Bookable возвращает true, если в каждом из n слотов начиная со start есть свободное место
func (v *DayView) Bookable(start domain.Slot, n int) bool {
	if v.IsClosed() || !v.Fits(start, n) {
		return false
	}
	for s := start; s < start+domain.Slot(n); s++ {
		if v.CountAt(s) >= v.LimitAt(s) {
			return false
		}
	}
	return true
}
