package get_day_schedule

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	getDaySchedule "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_day_schedule"
)

const (
	msgInvalidStylistID = "некорректный ID мастера"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgInvalidRequest   = "некорректный запрос"
	msgForbidden        = "доступ запрещен"
)

type Handler struct {
	useCase GetDayScheduleUseCase
	logger  Logger
}

func NewHandler(useCase GetDayScheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/stylists/{stylistId}/schedule
// Query params: date (optional, YYYY-MM-DD; пустая или некорректная дата - сегодня)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	stylistID, err := handlers.PathInt64(r, "stylistId")
	if err != nil {
		h.logger.Warn("GET /stylists/{id}/schedule - Invalid stylist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStylistID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /stylists/{id}/schedule - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	useCaseReq := ToUseCaseRequest(stylistID, userID, dateStr)

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getDaySchedule.ErrAccessDenied):
			h.logger.Warn("GET /stylists/{id}/schedule - Access denied: stylist_id=%d, user_id=%d", stylistID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, getDaySchedule.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("GET /stylists/{id}/schedule - Failed to get schedule: stylist_id=%d, date=%s, error=%v",
				stylistID, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /stylists/{id}/schedule - Schedule retrieved: stylist_id=%d, date=%s, slots=%d",
		stylistID, domain.DateKey(result.Date), len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
