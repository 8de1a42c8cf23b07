package health

import (
	"context"
	"net/http"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
)

const (
	statusOK   = "ok"
	statusDown = "down"

	checkTimeout = time.Second
)

// Response ответ проверки здоровья
type Response struct {
	Status       string            `json:"status"`
	Version      string            `json:"version,omitempty"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
}

type Handler struct {
	checkers []Checker
	version  string
	logger   Logger
}

func NewHandler(version string, logger Logger, checkers ...Checker) *Handler {
	return &Handler{
		checkers: checkers,
		version:  version,
		logger:   logger,
	}
}

// Live GET /health/live
func (h *Handler) Live(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, Response{Status: statusOK, Version: h.version})
}

// Ready GET /health/ready
// Все зависимости должны отвечать, иначе 503.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	resp := Response{
		Status:       statusOK,
		Version:      h.version,
		Dependencies: make(map[string]string, len(h.checkers)),
	}

	for _, c := range h.checkers {
		ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
		err := c.Check(ctx)
		cancel()

		if err != nil {
			h.logger.Warn("GET /health/ready - %s is down: %v", c.Name(), err)
			resp.Dependencies[c.Name()] = statusDown
			resp.Status = statusDown
			continue
		}
		resp.Dependencies[c.Name()] = statusOK
	}

	status := http.StatusOK
	if resp.Status != statusOK {
		status = http.StatusServiceUnavailable
	}
	handlers.RespondJSON(w, status, resp)
}
