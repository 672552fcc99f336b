package router

import (
	"net/http"

	"newsletter/internal/api/handler"
	"newsletter/internal/config"
	"newsletter/internal/middleware"
	"newsletter/internal/service"
	"newsletter/internal/storage"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

// New wires services and handlers over backend and returns the root handler.
// The backend is shared by every request; the caller owns and closes it.
func New(app config.ApplicationSettings, backend storage.Backend, logger zerolog.Logger) http.Handler {
	logger.Info().Msg("Router initialized")

	// 1. Initialize services & handlers
	subSvc := service.NewSubscriptionService(backend, logger)

	greetHandler := handler.NewGreetHandler()
	healthHandler := handler.NewHealthHandler()
	subscriptionHandler := handler.NewSubscriptionHandler(subSvc, logger)

	// 2. Build router
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chimw.Recoverer)

	greetHandler.RegisterRoutes(r)
	healthHandler.RegisterRoutes(r)
	subscriptionHandler.RegisterRoutes(r)

	// 3. Apply CORS middleware. With no configured origins the service is
	// same-origin only.
	if len(app.AllowedOrigins) == 0 {
		return r
	}
	c := cors.New(cors.Options{
		AllowedOrigins: app.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(r)
}
