package upsert_rule

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/service/rules"
	"github.com/m04kA/SMC-ScheduleService/internal/service/rules/models"
)

const (
	msgInvalidStylistID   = "некорректный ID мастера"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUnknownKind        = "неизвестный вид правила, ожидается working_hours, holidays или capacity"
	msgUnsupportedScope   = "такая область действия не поддерживается для этого вида правила"
	msgForbidden          = "доступ запрещен"
	msgInvalidData        = "некорректные данные правила"
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

// Handle PUT /api/v1/stylists/{stylistId}/rules/{kind}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	stylistID, err := handlers.PathInt64(r, "stylistId")
	if err != nil {
		h.logger.Warn("PUT /stylists/{id}/rules/{kind} - Invalid stylist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStylistID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /stylists/{id}/rules/{kind} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.UpsertRuleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /stylists/{id}/rules/{kind} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.StylistID = stylistID
	req.ActorID = userID
	req.Kind = domain.RuleKind(mux.Vars(r)["kind"])

	// Права мастера проверяет сервис
	result, err := h.service.Upsert(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, rules.ErrAccessDenied):
			h.logger.Warn("PUT /stylists/{id}/rules/{kind} - Access denied: stylist_id=%d, user_id=%d", stylistID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, rules.ErrUnknownKind):
			handlers.RespondBadRequest(w, msgUnknownKind)

		case errors.Is(err, rules.ErrUnsupportedScope):
			h.logger.Warn("PUT /stylists/{id}/rules/{kind} - Unsupported scope: kind=%s, error=%v", req.Kind, err)
			handlers.RespondBadRequest(w, msgUnsupportedScope)

		case errors.Is(err, rules.ErrInvalidInput):
			h.logger.Warn("PUT /stylists/{id}/rules/{kind} - Invalid data: stylist_id=%d, error=%v", stylistID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("PUT /stylists/{id}/rules/{kind} - Failed to save rule: stylist_id=%d, error=%v", stylistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /stylists/{id}/rules/{kind} - Rule saved: stylist_id=%d, kind=%s, rule_id=%d, scope=%s",
		stylistID, result.Kind, result.ID, result.Scope)
	handlers.RespondJSON(w, http.StatusOK, result)
}
