package service

import (
	"context"

	"newsletter/internal/logger"
	"newsletter/internal/model"
	"newsletter/internal/storage"

	"github.com/rs/zerolog"
)

// SubscriptionService defines business logic methods for subscriptions.
type SubscriptionService interface {
	// Subscribe stores a validated subscriber. Storage errors are returned
	// unchanged so the caller decides how to surface them.
	Subscribe(ctx context.Context, s model.NewSubscriber) error
}

type subscriptionService struct {
	backend storage.Backend
	logger  zerolog.Logger
}

// NewSubscriptionService creates a new SubscriptionService with a scoped logger.
func NewSubscriptionService(backend storage.Backend, logger zerolog.Logger) SubscriptionService {
	return &subscriptionService{
		backend: backend,
		logger:  logger.With().Str("service", "SubscriptionService").Logger(),
	}
}

func (s *subscriptionService) Subscribe(ctx context.Context, sub model.NewSubscriber) error {
	log := s.loggerFor(ctx)
	log.Debug().Msg("Saving new subscriber details in the database")

	if _, err := s.backend.InsertSubscriber(ctx, sub); err != nil {
		log.Error().Err(err).
			Str("subscriber_email", logger.RedactEmail(sub.Email.String())).
			Bool("connect_error", storage.IsConnectError(err)).
			Msg("Failed to insert subscriber")
		return err
	}

	log.Debug().Msg("New subscriber details have been saved")
	return nil
}

// loggerFor prefers the request-scoped logger so lines carry the request id.
func (s *subscriptionService) loggerFor(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		scoped := l.With().Str("service", "SubscriptionService").Logger()
		return &scoped
	}
	return &s.logger
}
