package get_day_schedule

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// Request модель запроса расписания дня
type Request struct {
	StylistID int64     // ID мастера
	ActorID   int64     // ID пользователя, запрашивающего расписание
	Date      string    // Дата навигации YYYY-MM-DD; пустая или некорректная - сегодня
}

// ReservationInfo бронь, начинающаяся в слоте
type ReservationInfo struct {
	ID           int64
	CustomerID   int64
	CustomerName string
	StartTime    types.TimeString
	EndTime      types.TimeString
	Status       string
	ServiceNames []string
}

// SlotInfo состояние одного слота
type SlotInfo struct {
	Slot         domain.Slot
	Time         types.TimeString
	Count        int
	Limit        int
	Remaining    int
	OutsideHours bool // слот вне рабочего времени, в нем начинаются брони
	Reservations []ReservationInfo
}

// Response модель ответа с расписанием дня
type Response struct {
	StylistID   int64
	Date        time.Time
	IsHoliday   bool
	IsClosed    bool
	OpeningTime *types.TimeString
	ClosingTime *types.TimeString
	Slots       []SlotInfo
}
