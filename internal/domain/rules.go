package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// WeekdayClass класс дня недели для правил.
// 0..6 совпадают с time.Weekday (воскресенье = 0), 7 - государственный праздник.
type WeekdayClass int

// NationalHolidayClass отдельный класс для дат из календаря государственных праздников
const NationalHolidayClass WeekdayClass = 7

// WeekdayClassOf возвращает класс для дня недели
func WeekdayClassOf(d time.Weekday) WeekdayClass {
	return WeekdayClass(d)
}

// Valid проверяет диапазон класса
func (c WeekdayClass) Valid() bool {
	return c >= 0 && c <= NationalHolidayClass
}

// String возвращает имя класса
func (c WeekdayClass) String() string {
	if c == NationalHolidayClass {
		return "NationalHoliday"
	}
	if c >= 0 && c < NationalHolidayClass {
		return time.Weekday(c).String()
	}
	return fmt.Sprintf("WeekdayClass(%d)", int(c))
}

// ScopeKind уровень конкретности правила
type ScopeKind string

const (
	ScopeDate     ScopeKind = "date"
	ScopeWeekday  ScopeKind = "weekday"
	ScopeDefault  ScopeKind = "default"
	ScopeDateSlot ScopeKind = "date_slot"
)

// RuleKind вид правила расписания
type RuleKind string

const (
	RuleWorkingHours RuleKind = "working_hours"
	RuleHoliday      RuleKind = "holidays"
	RuleCapacity     RuleKind = "capacity"
)

// ParseRuleKind проверяет строку вида правила
func ParseRuleKind(s string) (RuleKind, bool) {
	switch RuleKind(s) {
	case RuleWorkingHours, RuleHoliday, RuleCapacity:
		return RuleKind(s), true
	default:
		return "", false
	}
}

// Hours рабочие часы. Start == End означает закрытый день.
type Hours struct {
	Start types.TimeString
	End   types.TimeString
}

// IsZeroWidth возвращает true для полностью закрытого дня
func (h Hours) IsZeroWidth() bool {
	return !h.Start.IsBefore(h.End)
}

// WorkingHourRule правило рабочих часов мастера.
// Область действия: Date (конкретная дата), Weekday (класс дня недели)
// или ни то ни другое (общее правило мастера).
type WorkingHourRule struct {
	ID        int64
	StylistID int64
	Date      *time.Time
	Weekday   *WeekdayClass
	Start     types.TimeString
	End       types.TimeString
	IsClosed  bool // нерабочее правило, часы игнорируются
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Scope возвращает уровень правила
func (r *WorkingHourRule) Scope() (ScopeKind, error) {
	return scopeOf(r.Date, r.Weekday)
}

// Hours возвращает часы правила; закрытое правило дает окно нулевой ширины
func (r *WorkingHourRule) Hours() Hours {
	if r.IsClosed {
		zero := types.MustTimeString("00:00")
		return Hours{Start: zero, End: zero}
	}
	return Hours{Start: r.Start, End: r.End}
}

// Validate проверяет инварианты правила
func (r *WorkingHourRule) Validate() error {
	if _, err := r.Scope(); err != nil {
		return err
	}
	if r.IsClosed {
		return nil
	}
	if r.Start.IsZero() || r.End.IsZero() {
		return fmt.Errorf("%w: start and end are required", ErrInvalidRule)
	}
	if !r.Start.IsBefore(r.End) {
		return fmt.Errorf("%w: end %s must be after start %s", ErrInvalidRule, r.End, r.Start)
	}
	return nil
}

// HolidayRule правило выходного дня
type HolidayRule struct {
	ID        int64
	StylistID int64
	Date      *time.Time
	Weekday   *WeekdayClass
	IsHoliday bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Scope возвращает уровень правила
func (r *HolidayRule) Scope() (ScopeKind, error) {
	return scopeOf(r.Date, r.Weekday)
}

// Validate проверяет инварианты правила. Правило выходного без области действия не поддерживается.
func (r *HolidayRule) Validate() error {
	scope, err := r.Scope()
	if err != nil {
		return err
	}
	if scope == ScopeDefault {
		return fmt.Errorf("%w: holiday rule needs a date or a weekday", ErrUnsupportedScope)
	}
	return nil
}

// CapacityRule правило вместимости слота.
// Области: (Date, Slot), (Date, без слота), глобальное (ни даты, ни слота).
type CapacityRule struct {
	ID              int64
	StylistID       int64
	Date            *time.Time
	Slot            *Slot
	MaxReservations int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Scope возвращает уровень правила. Слот без даты не поддерживается.
func (r *CapacityRule) Scope() (ScopeKind, error) {
	switch {
	case r.Date != nil && r.Slot != nil:
		return ScopeDateSlot, nil
	case r.Date != nil:
		return ScopeDate, nil
	case r.Slot != nil:
		return "", fmt.Errorf("%w: slot without date", ErrUnsupportedScope)
	default:
		return ScopeDefault, nil
	}
}

// Validate проверяет инварианты правила с учетом верхней границы вместимости
func (r *CapacityRule) Validate(maxCapacity int) error {
	if _, err := r.Scope(); err != nil {
		return err
	}
	if r.Slot != nil && !r.Slot.Valid() {
		return fmt.Errorf("%w: slot %d out of range", ErrInvalidRule, int(*r.Slot))
	}
	if r.MaxReservations < 0 || r.MaxReservations > maxCapacity {
		return fmt.Errorf("%w: max reservations %d not in [0, %d]", ErrInvalidRule, r.MaxReservations, maxCapacity)
	}
	return nil
}

// RuleSet материализованный набор правил мастера на период
type RuleSet struct {
	StylistID    int64
	WorkingHours []WorkingHourRule
	Holidays     []HolidayRule
	Capacities   []CapacityRule
}

func scopeOf(date *time.Time, weekday *WeekdayClass) (ScopeKind, error) {
	switch {
	case date != nil && weekday != nil:
		return "", fmt.Errorf("%w: both date and weekday set", ErrUnsupportedScope)
	case date != nil:
		return ScopeDate, nil
	case weekday != nil:
		if !weekday.Valid() {
			return "", fmt.Errorf("%w: weekday class %d", ErrUnsupportedScope, int(*weekday))
		}
		return ScopeWeekday, nil
	default:
		return ScopeDefault, nil
	}
}
