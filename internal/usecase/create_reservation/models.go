package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// Request модель запроса на создание брони
type Request struct {
	StylistID       int64            // ID мастера
	CustomerID      int64            // ID клиента
	CustomerName    string           // Отображаемое имя клиента
	Date            time.Time        // Дата брони (без времени)
	StartTime       types.TimeString // Время начала
	ServiceIDs      []int64          // Выбранные услуги
	DurationMinutes *int             // Длительность вместо суммы длительностей услуг (опционально)
}

// Response модель ответа с созданной бронью
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
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
