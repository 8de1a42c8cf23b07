package update_reservation_status

import "github.com/m04kA/SMC-ScheduleService/internal/service/reservations/models"

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string `json:"status"` // completed | no_show
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateStatusRequest) ToServiceRequest(actorID int64) *models.UpdateStatusRequest {
	return &models.UpdateStatusRequest{
		ActorID: actorID,
		Status:  r.Status,
	}
}
