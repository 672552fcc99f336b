package handler

import (
	"net/http"

	"newsletter/internal/api/dto"
	"newsletter/internal/logger"
	"newsletter/internal/model"
	"newsletter/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// SubscriptionHandler handles subscription-related endpoints.
type SubscriptionHandler struct {
	subSvc service.SubscriptionService
	logger zerolog.Logger
}

// NewSubscriptionHandler creates a new SubscriptionHandler.
func NewSubscriptionHandler(subSvc service.SubscriptionService, logger zerolog.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{subSvc: subSvc, logger: logger}
}

// RegisterRoutes registers the subscription endpoints.
func (h *SubscriptionHandler) RegisterRoutes(r chi.Router) {
	r.Post("/subscriptions", h.Subscribe)
}

// Subscribe godoc
// @Summary Subscribe to the newsletter
// @Description Stores a new subscriber from a urlencoded form. Responses carry no body.
// @Tags subscriptions
// @Accept x-www-form-urlencoded
// @Param name formData string true "Subscriber name"
// @Param email formData string true "Subscriber email"
// @Success 200 "subscriber stored"
// @Failure 400 "missing or invalid field"
// @Failure 500 "storage failure"
// @Router /subscriptions [post]
func (h *SubscriptionHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	log := h.requestLogger(r)

	form, err := dto.DecodeSubscribeForm(w, r)
	if err != nil {
		log.Debug().Err(err).Msg("Rejected subscription form")
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	sub, err := model.ParseNewSubscriber(form.Name, form.Email)
	if err != nil {
		log.Debug().Err(err).Msg("Rejected subscriber")
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	log = log.With().
		Str("subscriber_email", logger.RedactEmail(sub.Email.String())).
		Str("subscriber_name", sub.Name.String()).
		Logger()
	log.Info().Msg("Adding a new subscriber")

	if err := h.subSvc.Subscribe(log.WithContext(r.Context()), sub); err != nil {
		log.Error().Err(err).Msg("Failed to execute query")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *SubscriptionHandler) requestLogger(r *http.Request) zerolog.Logger {
	if l := zerolog.Ctx(r.Context()); l.GetLevel() != zerolog.Disabled {
		return *l
	}
	return h.logger
}
