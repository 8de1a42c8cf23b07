package adjust_capacity

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	adjustCapacity "github.com/m04kA/SMC-ScheduleService/internal/usecase/adjust_capacity"
)

const (
	msgInvalidStylistID   = "некорректный ID мастера"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidParams      = "некорректные дата или слот"
	msgInvalidInput       = "некорректные данные: слот 0..47, direction up или down"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	useCase AdjustCapacityUseCase
	logger  Logger
}

func NewHandler(useCase AdjustCapacityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/stylists/{stylistId}/schedule/{date}/slots/{slot}/capacity
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	stylistID, err := handlers.PathInt64(r, "stylistId")
	if err != nil {
		h.logger.Warn("PATCH /stylists/{id}/schedule/{date}/slots/{slot}/capacity - Invalid stylist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStylistID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /stylists/{id}/schedule/{date}/slots/{slot}/capacity - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req AdjustCapacityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /stylists/{id}/schedule/{date}/slots/{slot}/capacity - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	vars := mux.Vars(r)
	useCaseReq, err := req.ToUseCaseRequest(stylistID, userID, vars["date"], vars["slot"])
	if err != nil {
		h.logger.Warn("PATCH /stylists/{id}/schedule/{date}/slots/{slot}/capacity - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, adjustCapacity.ErrAccessDenied):
			h.logger.Warn("PATCH /stylists/{id}/schedule/{date}/slots/{slot}/capacity - Access denied: stylist_id=%d, user_id=%d",
				stylistID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, adjustCapacity.ErrInvalidInput):
			h.logger.Warn("PATCH /stylists/{id}/schedule/{date}/slots/{slot}/capacity - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /stylists/{id}/schedule/{date}/slots/{slot}/capacity - Failed to adjust capacity: stylist_id=%d, error=%v",
				stylistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /stylists/{id}/schedule/{date}/slots/{slot}/capacity - Capacity adjusted: stylist_id=%d, slot=%d, %d -> %d",
		stylistID, int(result.Slot), result.Previous, result.Limit)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
