package schedule

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// IsHoliday возвращает true, если дата для мастера нерабочая.
// Приоритет:
// 1. Правило на дату: используется его флаг (false открывает обычно закрытый день)
// 2. Государственный праздник: наличие правила на класс праздника
// 3. Наличие правила на день недели даты
// 4. По умолчанию рабочий день
func IsHoliday(rules []domain.HolidayRule, date time.Time, nationalHoliday bool) bool {
	key := domain.DateKey(date)
	for i := range rules {
		if rules[i].Date != nil && domain.DateKey(*rules[i].Date) == key {
			return rules[i].IsHoliday
		}
	}

	class := domain.WeekdayClassOf(date.Weekday())
	if nationalHoliday {
		class = domain.NationalHolidayClass
	}

	for i := range rules {
		if rules[i].Date == nil && rules[i].Weekday != nil && *rules[i].Weekday == class {
			return true
		}
	}

	return false
}
