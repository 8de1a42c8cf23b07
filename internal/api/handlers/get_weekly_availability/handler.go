package get_weekly_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	getWeeklyAvailability "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_weekly_availability"
)

const (
	msgInvalidStylistID = "некорректный ID мастера"
	msgInvalidParams    = "некорректные параметры: ожидаются serviceIds=1,2 и/или duration в минутах"
	msgInvalidInput     = "укажите услуги или длительность"
	msgServiceNotFound  = "услуга не найдена у мастера"
)

type Handler struct {
	useCase GetWeeklyAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetWeeklyAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/stylists/{stylistId}/availability
// Query params: date (YYYY-MM-DD, по умолчанию сегодня), serviceIds, duration
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	stylistID, err := handlers.PathInt64(r, "stylistId")
	if err != nil {
		h.logger.Warn("GET /stylists/{id}/availability - Invalid stylist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStylistID)
		return
	}

	query := r.URL.Query()
	useCaseReq, err := ToUseCaseRequest(stylistID, query.Get("date"), query.Get("serviceIds"), query.Get("duration"))
	if err != nil {
		h.logger.Warn("GET /stylists/{id}/availability - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getWeeklyAvailability.ErrServiceNotFound):
			h.logger.Warn("GET /stylists/{id}/availability - Service not found: stylist_id=%d, service_ids=%v",
				stylistID, useCaseReq.ServiceIDs)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getWeeklyAvailability.ErrInvalidInput):
			h.logger.Warn("GET /stylists/{id}/availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /stylists/{id}/availability - Failed to get availability: stylist_id=%d, error=%v",
				stylistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /stylists/{id}/availability - Availability retrieved: stylist_id=%d, week=%s, slot_count=%d",
		stylistID, domain.DateKey(result.WeekStart), result.SlotCount)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
