package schedule

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/ptr"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

func date(s string) time.Time {
	t, err := time.ParseInLocation(domain.DateFormat, s, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func at(day, clock string) time.Time {
	return types.MustTimeString(clock).On(date(day))
}

func ts(s string) types.TimeString {
	return types.MustTimeString(s)
}

func weekday(d time.Weekday) *domain.WeekdayClass {
	return ptr.Ptr(domain.WeekdayClassOf(d))
}

func hoursRule(start, end string) domain.WorkingHourRule {
	return domain.WorkingHourRule{Start: ts(start), End: ts(end)}
}

func reservation(id int64, day, start, end string, status domain.ReservationStatus) *domain.Reservation {
	return &domain.Reservation{
		ID:           id,
		StylistID:    1,
		CustomerName: "Клиент",
		Date:         date(day),
		StartTime:    ts(start),
		EndTime:      ts(end),
		Status:       status,
		CreatedAt:    at(day, "00:00").Add(-time.Duration(100-id) * time.Minute),
	}
}

type fixedCalendar map[string]bool

func (c fixedCalendar) IsNationalHoliday(d time.Time) bool {
	return c[domain.DateKey(d)]
}
