package apply_shift_settings

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// DayInput настройки дня из запроса
type DayInput struct {
	Date            time.Time
	IsHoliday       bool
	StartTime       types.TimeString
	EndTime         types.TimeString
	MaxReservations int
}

// Request модель запроса массового изменения смен на месяц
type Request struct {
	StylistID int64            // ID мастера
	ActorID   int64            // ID пользователя
	Month     string           // Месяц YYYY-MM
	Days      map[int]DayInput // День месяца -> настройки
	DryRun    bool             // Только проверить конфликты
	Force     bool             // Записать, несмотря на конфликты
}

// Response модель ответа
type Response struct {
	StylistID int64
	Month     string
	Applied   bool                   // Настройки записаны
	Days      int                    // Количество дней в запросе
	Conflicts []domain.ShiftConflict // Найденные конфликты
}
