package domain

import (
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// Slot номер получасового интервала суток, 0..47.
// Слот i начинается в (i/2):(i%2*30).
type Slot int

// ToSlot возвращает слот, в который попадает время (округление вниз до получаса).
// Некорректное время - ошибка вызывающего кода, функция паникует.
func ToSlot(t types.TimeString) Slot {
	if err := t.Validate(); err != nil {
		panic(fmt.Sprintf("domain.ToSlot: %v", err))
	}
	if t.Minutes() >= 24*60 {
		panic(fmt.Sprintf("domain.ToSlot: %s is not a slot start", t))
	}

	s := Slot(t.Hour() * 2)
	if t.Minute() >= SlotMinutes {
		s++
	}
	return s
}

// MustSlot парсит "HH:MM" и возвращает слот. Паникует на некорректной строке.
func MustSlot(s string) Slot {
	return ToSlot(types.MustTimeString(s))
}

// ceilSlot возвращает номер первого слота, начинающегося не раньше t (допускает 24:00 -> 48)
func ceilSlot(t types.TimeString) Slot {
	return Slot((t.Minutes() + SlotMinutes - 1) / SlotMinutes)
}

// Valid проверяет, что номер слота в пределах суток
func (s Slot) Valid() bool {
	return s >= 0 && s < SlotsPerDay
}

// Start возвращает время начала слота
func (s Slot) Start() types.TimeString {
	ts, err := types.NewTimeStringFromMinutes(int(s) * SlotMinutes)
	if err != nil || !s.Valid() {
		panic(fmt.Sprintf("domain.Slot: invalid slot %d", int(s)))
	}
	return ts
}

// End возвращает время окончания слота
func (s Slot) End() types.TimeString {
	ts, err := s.Start().AddMinutes(SlotMinutes)
	if err != nil {
		panic(fmt.Sprintf("domain.Slot: invalid slot %d", int(s)))
	}
	return ts
}

// String возвращает "HH:MM" начала слота
func (s Slot) String() string {
	return s.Start().String()
}

// SlotRange возвращает слоты, занятые интервалом [start, end).
// Конец округляется вверх, поэтому непустой интервал всегда занимает хотя бы один слот.
func SlotRange(start, end types.TimeString) []Slot {
	if !start.IsBefore(end) {
		return nil
	}
	first := ToSlot(start)
	last := ceilSlot(end)

	slots := make([]Slot, 0, int(last-first))
	for s := first; s < last; s++ {
		slots = append(slots, s)
	}
	return slots
}

// SlotsWithin возвращает слоты, целиком лежащие внутри рабочих часов [open, close)
func SlotsWithin(open, close types.TimeString) []Slot {
	if !open.IsBefore(close) {
		return []Slot{}
	}
	first := ceilSlot(open)
	last := Slot(close.Minutes() / SlotMinutes)

	slots := make([]Slot, 0)
	for s := first; s < last; s++ {
		slots = append(slots, s)
	}
	return slots
}

// SlotCount возвращает количество слотов для длительности в минутах (округление вверх)
func SlotCount(durationMinutes int) int {
	if durationMinutes <= 0 {
		return 0
	}
	return (durationMinutes + SlotMinutes - 1) / SlotMinutes
}
