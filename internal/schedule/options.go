// Package schedule содержит чистые функции расчета расписания мастера:
// разрешение рабочих часов, выходных и вместимости слотов,
// представления дня и недели, проверку брони и конфликтов смен.
// Пакет не ходит в хранилище, все данные передаются вызывающим кодом.
package schedule

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// Calendar календарь государственных праздников
type Calendar interface {
	IsNationalHoliday(date time.Time) bool
}

// Options параметры расчета расписания
type Options struct {
	// DefaultHours рабочие часы платформы по умолчанию; nil - умолчания нет
	DefaultHours *domain.Hours
	// MaxCapacity верхняя граница вместимости слота
	MaxCapacity int
	// BookingLead минимальный запас времени до начала брони на сегодня
	BookingLead time.Duration
	// LastAvailableRule правило отметки LAST_AVAILABLE
	LastAvailableRule domain.LastAvailableRule
}

// DefaultOptions возвращает параметры по умолчанию
func DefaultOptions() Options {
	return Options{
		DefaultHours: &domain.Hours{
			Start: types.MustTimeString(domain.DefaultOpeningTime),
			End:   types.MustTimeString(domain.DefaultClosingTime),
		},
		MaxCapacity:       domain.DefaultMaxCapacity,
		BookingLead:       domain.DefaultBookingLeadMinutes * time.Minute,
		LastAvailableRule: domain.LastAvailableAnySlot,
	}
}

type noHolidays struct{}

func (noHolidays) IsNationalHoliday(time.Time) bool { return false }

// Resolver разрешает правила одного мастера.
// Строится один раз на запрос из материализованного набора правил.
type Resolver struct {
	rules    *domain.RuleSet
	calendar Calendar
	opts     Options
	capacity *CapacityIndex
}

// NewResolver создает Resolver. calendar может быть nil.
func NewResolver(rules *domain.RuleSet, calendar Calendar, opts Options) *Resolver {
	if rules == nil {
		rules = &domain.RuleSet{}
	}
	if calendar == nil {
		calendar = noHolidays{}
	}
	return &Resolver{
		rules:    rules,
		calendar: calendar,
		opts:     opts,
		capacity: NewCapacityIndex(rules.Capacities, opts.MaxCapacity),
	}
}

// StylistID возвращает мастера, для которого построен Resolver
func (r *Resolver) StylistID() int64 {
	return r.rules.StylistID
}

// Options возвращает параметры расчета
func (r *Resolver) Options() Options {
	return r.opts
}

// Hours возвращает рабочие часы на дату
func (r *Resolver) Hours(date time.Time) (domain.Hours, bool) {
	return ResolveHours(r.rules.WorkingHours, date, r.calendar.IsNationalHoliday(date), r.opts.DefaultHours)
}

// IsHoliday возвращает true, если дата нерабочая
func (r *Resolver) IsHoliday(date time.Time) bool {
	return IsHoliday(r.rules.Holidays, date, r.calendar.IsNationalHoliday(date))
}

// Limit возвращает вместимость слота на дату
func (r *Resolver) Limit(date time.Time, slot domain.Slot) int {
	return r.capacity.Limit(date, slot)
}
