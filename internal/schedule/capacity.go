package schedule

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

type dateSlotKey struct {
	date string
	slot domain.Slot
}

// CapacityIndex индекс правил вместимости для поиска за O(1)
type CapacityIndex struct {
	bySlot      map[dateSlotKey]int
	byDate      map[string]int
	global      *int
	maxCapacity int
}

// NewCapacityIndex строит индекс. Правила с неподдерживаемой областью пропускаются.
func NewCapacityIndex(rules []domain.CapacityRule, maxCapacity int) *CapacityIndex {
	idx := &CapacityIndex{
		bySlot:      make(map[dateSlotKey]int, len(rules)),
		byDate:      make(map[string]int),
		maxCapacity: maxCapacity,
	}

	for i := range rules {
		rule := rules[i]
		scope, err := rule.Scope()
		if err != nil {
			continue
		}
		switch scope {
		case domain.ScopeDateSlot:
			key := dateSlotKey{date: domain.DateKey(*rule.Date), slot: *rule.Slot}
			if _, ok := idx.bySlot[key]; !ok {
				idx.bySlot[key] = rule.MaxReservations
			}
		case domain.ScopeDate:
			key := domain.DateKey(*rule.Date)
			if _, ok := idx.byDate[key]; !ok {
				idx.byDate[key] = rule.MaxReservations
			}
		case domain.ScopeDefault:
			if idx.global == nil {
				v := rule.MaxReservations
				idx.global = &v
			}
		}
	}

	return idx
}

// Limit возвращает вместимость слота.
// Приоритет: (дата, слот) > дата > глобальное правило > 1.
func (idx *CapacityIndex) Limit(date time.Time, slot domain.Slot) int {
	key := domain.DateKey(date)

	if v, ok := idx.bySlot[dateSlotKey{date: key, slot: slot}]; ok {
		return idx.clamp(v)
	}
	if v, ok := idx.byDate[key]; ok {
		return idx.clamp(v)
	}
	if idx.global != nil {
		return idx.clamp(*idx.global)
	}
	return idx.clamp(domain.CapacityFloor)
}

func (idx *CapacityIndex) clamp(v int) int {
	if v < 0 {
		return 0
	}
	if idx.maxCapacity > 0 && v > idx.maxCapacity {
		return idx.maxCapacity
	}
	return v
}
