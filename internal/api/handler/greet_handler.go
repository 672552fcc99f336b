package handler

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
)

const greeting = "Hello World!"

type GreetHandler struct{}

func NewGreetHandler() *GreetHandler {
	return &GreetHandler{}
}

func (h *GreetHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Greet)
}

// Greet godoc
// @Summary Static greeting
// @Tags health
// @Produce plain
// @Success 200 {string} string "Hello World!"
// @Router / [get]
func (h *GreetHandler) Greet(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, greeting)
}
