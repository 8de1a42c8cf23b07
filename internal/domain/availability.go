package domain

import "time"

// AvailabilityMarker отметка доступности диапазона слотов для новой брони
type AvailabilityMarker string

const (
	MarkerBlocked       AvailabilityMarker = "BLOCKED"
	MarkerLastAvailable AvailabilityMarker = "LAST_AVAILABLE"
	MarkerOpen          AvailabilityMarker = "OPEN"
)

// LastAvailableRule правило, по которому диапазон помечается LAST_AVAILABLE
type LastAvailableRule string

const (
	// LastAvailableAnySlot хотя бы один слот диапазона заполнится до предела
	LastAvailableAnySlot LastAvailableRule = "any_slot_fills"
	// LastAvailableStartSlot заполнится до предела первый слот диапазона
	LastAvailableStartSlot LastAvailableRule = "start_slot_fills"
	// LastAvailableDisabled отметка LAST_AVAILABLE не используется
	LastAvailableDisabled LastAvailableRule = "disabled"
)

// Valid проверяет значение правила
func (r LastAvailableRule) Valid() bool {
	switch r {
	case LastAvailableAnySlot, LastAvailableStartSlot, LastAvailableDisabled:
		return true
	default:
		return false
	}
}

// AvailabilityCell отметка для диапазона, начинающегося в слоте Start
type AvailabilityCell struct {
	Start  Slot
	Marker AvailabilityMarker
}

// DayAvailability доступность одного дня недели
type DayAvailability struct {
	Date      time.Time
	IsHoliday bool
	Hours     *Hours
	Cells     []AvailabilityCell
}

// WeekAvailability сетка доступности на 7 дней
type WeekAvailability struct {
	StylistID       int64
	WeekStart       time.Time
	DurationMinutes int
	SlotCount       int
	Days            []DayAvailability
}
