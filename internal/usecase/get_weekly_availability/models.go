package get_weekly_availability

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// Request модель запроса недельной доступности
type Request struct {
	StylistID       int64   // ID мастера
	Date            string  // Дата навигации YYYY-MM-DD; некорректная дата означает "сегодня"
	ServiceIDs      []int64 // Услуги, длительность которых суммируется
	DurationMinutes *int    // Явная длительность (опционально)
}

// Cell отметка диапазона, начинающегося в слоте
type Cell struct {
	Slot   domain.Slot
	Time   types.TimeString
	Marker domain.AvailabilityMarker
}

// Day доступность одного дня
type Day struct {
	Date        time.Time
	IsHoliday   bool
	OpeningTime *types.TimeString
	ClosingTime *types.TimeString
	Cells       []Cell
}

// Response модель ответа с сеткой на неделю
type Response struct {
	StylistID       int64
	WeekStart       time.Time
	PrevWeek        *time.Time // nil, если неделя текущая
	NextWeek        time.Time
	DurationMinutes int
	SlotCount       int
	Days            []Day
}
