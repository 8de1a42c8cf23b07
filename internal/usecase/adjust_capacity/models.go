package adjust_capacity

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// Direction направление изменения вместимости
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// Request модель запроса изменения вместимости слота
type Request struct {
	StylistID int64       // ID мастера
	ActorID   int64       // ID пользователя
	Date      time.Time   // Дата
	Slot      domain.Slot // Слот
	Direction Direction   // up или down
}

// Response модель ответа с новой вместимостью
type Response struct {
	StylistID int64
	Date      time.Time
	Slot      domain.Slot
	Time      types.TimeString
	Previous  int  // Вместимость до изменения
	Limit     int  // Вместимость после изменения
	Changed   bool // false, если достигнута граница
}
