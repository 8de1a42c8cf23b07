package list_rules

import (
	"net/http"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
)

const (
	msgInvalidStylistID = "некорректный ID мастера"
)

type Handler struct {
	service RulesService
	logger  Logger
}

func NewHandler(service RulesService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/stylists/{stylistId}/rules
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	stylistID, err := handlers.PathInt64(r, "stylistId")
	if err != nil {
		h.logger.Warn("GET /stylists/{id}/rules - Invalid stylist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStylistID)
		return
	}

	result, err := h.service.List(r.Context(), stylistID)
	if err != nil {
		h.logger.Error("GET /stylists/{id}/rules - Failed to list rules: stylist_id=%d, error=%v", stylistID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /stylists/{id}/rules - Rules retrieved: stylist_id=%d, working_hours=%d, holidays=%d, capacities=%d",
		stylistID, len(result.WorkingHours), len(result.Holidays), len(result.Capacities))
	handlers.RespondJSON(w, http.StatusOK, result)
}
