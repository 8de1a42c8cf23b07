package domain

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// ShiftDay настройки одного дня в массовом редактировании смен на месяц
type ShiftDay struct {
	Date            time.Time
	IsHoliday       bool
	Start           types.TimeString
	End             types.TimeString
	MaxReservations int
}

// Normalized возвращает день с принудительными значениями для выходного:
// часы 00:00-00:00 и вместимость 0
func (d ShiftDay) Normalized() ShiftDay {
	if !d.IsHoliday {
		return d
	}
	zero := types.MustTimeString("00:00")
	d.Start = zero
	d.End = zero
	d.MaxReservations = 0
	return d
}

// ConflictType тип конфликта смены с существующей бронью
type ConflictType string

const (
	ConflictHoliday    ConflictType = "HOLIDAY"
	ConflictOutOfHours ConflictType = "OUT_OF_HOURS"
)

// ShiftConflict бронь, которая станет недействительной после применения настроек
type ShiftConflict struct {
	Type          ConflictType
	Date          time.Time
	ReservationID int64
	Start         types.TimeString
	End           types.TimeString
	CustomerName  string
	ProposedStart *types.TimeString // только для OUT_OF_HOURS
	ProposedEnd   *types.TimeString // только для OUT_OF_HOURS
}
