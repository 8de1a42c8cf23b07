package cancel_reservation

import (
	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/service/reservations/models"
)

// CancelReservationRequest HTTP request model
type CancelReservationRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CancelReservationRequest) ToServiceRequest(actorID int64, role domain.ActorRole) *models.CancelRequest {
	return &models.CancelRequest{
		ActorID:   actorID,
		ActorRole: role,
		Reason:    r.Reason,
	}
}
