package schedule

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// ResolveHours возвращает рабочие часы мастера на дату.
// Приоритет (от высшего к низшему):
// 1. Правило на конкретную дату
// 2. Правило на класс дня недели (для государственного праздника - класс праздника)
// 3. Общее правило мастера
// 4. Часы платформы по умолчанию
// ok == false только если ни одно правило не подошло и умолчание не задано.
func ResolveHours(rules []domain.WorkingHourRule, date time.Time, nationalHoliday bool, platformDefault *domain.Hours) (domain.Hours, bool) {
	class := domain.WeekdayClassOf(date.Weekday())
	if nationalHoliday {
		class = domain.NationalHolidayClass
	}
	key := domain.DateKey(date)

	var byDate, byWeekday, byDefault *domain.WorkingHourRule
	for i := range rules {
		rule := &rules[i]
		switch {
		case rule.Date != nil && rule.Weekday == nil:
			if byDate == nil && domain.DateKey(*rule.Date) == key {
				byDate = rule
			}
		case rule.Weekday != nil && rule.Date == nil:
			if byWeekday == nil && *rule.Weekday == class {
				byWeekday = rule
			}
		case rule.Date == nil && rule.Weekday == nil:
			if byDefault == nil {
				byDefault = rule
			}
		}
	}

	for _, rule := range []*domain.WorkingHourRule{byDate, byWeekday, byDefault} {
		if rule != nil {
			return rule.Hours(), true
		}
	}

	if platformDefault != nil {
		return *platformDefault, true
	}
	return domain.Hours{}, false
}
