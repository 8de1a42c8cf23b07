package delete_rule

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	"github.com/m04kA/SMC-ScheduleService/internal/service/rules"
	"github.com/m04kA/SMC-ScheduleService/internal/service/rules/models"
)

const (
	msgInvalidStylistID = "некорректный ID мастера"
	msgInvalidRuleID    = "некорректный ID правила"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgUnknownKind      = "неизвестный вид правила"
	msgNotFound         = "правило не найдено"
	msgForbidden        = "доступ запрещен"
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

// Handle DELETE /api/v1/stylists/{stylistId}/rules/{kind}/{ruleId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	stylistID, err := handlers.PathInt64(r, "stylistId")
	if err != nil {
		h.logger.Warn("DELETE /stylists/{id}/rules/{kind}/{ruleId} - Invalid stylist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStylistID)
		return
	}

	ruleID, err := handlers.PathInt64(r, "ruleId")
	if err != nil {
		h.logger.Warn("DELETE /stylists/{id}/rules/{kind}/{ruleId} - Invalid rule ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRuleID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /stylists/{id}/rules/{kind}/{ruleId} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req := &models.DeleteRuleRequest{
		StylistID: stylistID,
		ActorID:   userID,
		Kind:      mux.Vars(r)["kind"],
		RuleID:    ruleID,
	}

	if err := h.service.Delete(r.Context(), req); err != nil {
		switch {
		case errors.Is(err, rules.ErrAccessDenied):
			h.logger.Warn("DELETE /stylists/{id}/rules/{kind}/{ruleId} - Access denied: stylist_id=%d, user_id=%d",
				stylistID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, rules.ErrUnknownKind):
			handlers.RespondBadRequest(w, msgUnknownKind)

		case errors.Is(err, rules.ErrRuleNotFound):
			h.logger.Warn("DELETE /stylists/{id}/rules/{kind}/{ruleId} - Rule not found: kind=%s, rule_id=%d", req.Kind, ruleID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /stylists/{id}/rules/{kind}/{ruleId} - Failed to delete rule: rule_id=%d, error=%v",
				ruleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /stylists/{id}/rules/{kind}/{ruleId} - Rule deleted: stylist_id=%d, kind=%s, rule_id=%d",
		stylistID, req.Kind, ruleID)
	w.WriteHeader(http.StatusNoContent)
}
