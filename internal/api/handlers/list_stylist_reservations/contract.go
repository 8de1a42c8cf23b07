package list_stylist_reservations

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/service/reservations/models"
)

type ReservationService interface {
	ListByStylist(ctx context.Context, req *models.ListRequest) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
