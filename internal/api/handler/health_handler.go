package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// HealthHandler answers liveness probes without touching storage.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) RegisterRoutes(r chi.Router) {
	r.Get("/health_check", h.Check)
}

// Check godoc
// @Summary Liveness probe
// @Description Always returns 200 with an empty body; storage is not touched.
// @Tags health
// @Success 200 "service is up"
// @Router /health_check [get]
func (h *HealthHandler) Check(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}
