package update_reservation

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// Request модель запроса на изменение брони
type Request struct {
	ReservationID   int64            // ID брони
	ActorID         int64            // ID пользователя, который меняет бронь
	ActorRole       domain.ActorRole // Клиент или мастер
	Date            time.Time        // Новая дата
	StartTime       types.TimeString // Новое время начала
	ServiceIDs      []int64          // Новый набор услуг
	DurationMinutes *int             // Явная длительность (опционально)
}

// Response модель ответа с измененной бронью
type Response struct {
	ID              int64
	StylistID       int64
	CustomerID      int64
	CustomerName    string
	Date            time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	Status          string
	ServiceIDs      []int64
	ServiceNames    []string
	Changes         domain.ChangeSet // Что изменилось
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
