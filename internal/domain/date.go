package domain

import "time"

// DateOnly обнуляет время суток, сохраняя часовой пояс
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DateIn переносит календарную дату в часовой пояс loc (полночь)
func DateIn(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// DateKey ключ календарной даты без учета часового пояса
func DateKey(t time.Time) string {
	return t.Format(DateFormat)
}

// SameDate сравнивает календарные даты
func SameDate(a, b time.Time) bool {
	ya, ma, da := a.Date()
	yb, mb, db := b.Date()
	return ya == yb && ma == mb && da == db
}

// DateBefore возвращает true, если календарная дата a раньше b
func DateBefore(a, b time.Time) bool {
	return DateKey(a) < DateKey(b)
}

// WeekStart возвращает понедельник недели, в которую попадает дата
func WeekStart(t time.Time) time.Time {
	d := DateOnly(t)
	offset := (int(d.Weekday()) + 6) % 7 // понедельник = 0
	return d.AddDate(0, 0, -offset)
}

// MonthDays возвращает количество дней в месяце
func MonthDays(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DaysBetween количество календарных дней от a до b
func DaysBetween(a, b time.Time) int {
	ya, ma, da := a.Date()
	yb, mb, db := b.Date()
	from := time.Date(ya, ma, da, 0, 0, 0, 0, time.UTC)
	to := time.Date(yb, mb, db, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}
