package apply_shift_settings

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	applyShiftSettings "github.com/m04kA/SMC-ScheduleService/internal/usecase/apply_shift_settings"
)

const (
	msgInvalidStylistID   = "некорректный ID мастера"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidParams      = "некорректные параметры запроса"
	msgInvalidInput       = "некорректные настройки смен"
	msgForbidden          = "доступ запрещен"
	msgConflicts          = "настройки конфликтуют с существующими бронями"
)

type Handler struct {
	useCase ApplyShiftSettingsUseCase
	logger  Logger
}

func NewHandler(useCase ApplyShiftSettingsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/stylists/{stylistId}/shift-settings/{month}
// Query params: dry_run, force
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	stylistID, err := handlers.PathInt64(r, "stylistId")
	if err != nil {
		h.logger.Warn("POST /stylists/{id}/shift-settings/{month} - Invalid stylist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStylistID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /stylists/{id}/shift-settings/{month} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	query := r.URL.Query()
	dryRun, err := handlers.ParseBool(query.Get("dry_run"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}
	force, err := handlers.ParseBool(query.Get("force"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	var req ShiftSettingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /stylists/{id}/shift-settings/{month} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(stylistID, userID, mux.Vars(r)["month"], dryRun, force)
	if err != nil {
		h.logger.Warn("POST /stylists/{id}/shift-settings/{month} - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var conflictErr *applyShiftSettings.ConflictError
		switch {
		case errors.As(err, &conflictErr):
			h.logger.Warn("POST /stylists/{id}/shift-settings/{month} - Conflicts: stylist_id=%d, count=%d",
				stylistID, len(conflictErr.Conflicts))
			handlers.RespondJSON(w, http.StatusConflict, ConflictsErrorResponse{
				Error:     msgConflicts,
				Conflicts: FromConflicts(conflictErr.Conflicts),
			})

		case errors.Is(err, applyShiftSettings.ErrAccessDenied):
			h.logger.Warn("POST /stylists/{id}/shift-settings/{month} - Access denied: stylist_id=%d, user_id=%d",
				stylistID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, applyShiftSettings.ErrInvalidInput):
			h.logger.Warn("POST /stylists/{id}/shift-settings/{month} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /stylists/{id}/shift-settings/{month} - Failed to apply settings: stylist_id=%d, error=%v",
				stylistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /stylists/{id}/shift-settings/{month} - Settings processed: stylist_id=%d, month=%s, applied=%t, conflicts=%d",
		stylistID, result.Month, result.Applied, len(result.Conflicts))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
