package service

import (
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"tripmate/internal/config"
	"tripmate/internal/repository"
	"tripmate/internal/service/auth"
	"tripmate/internal/service/email"
	"tripmate/internal/service/notification"
	"tripmate/internal/service/trip"
)

type Services struct {
	Auth         auth.Service
	Trip         trip.Service
	Email        email.Service
	Notification notification.Service
}

func NewServices(repos *repository.Repositories, redis *redis.Client, deliverer notification.Deliverer, cfg *config.Config, logger *zap.Logger) *Services {
	authService := auth.NewService(cfg)
	emailService := email.NewService(cfg)
	notificationService := notification.NewService(repos.Member, deliverer, logger.Named("notification"))
	tripService := trip.NewService(
		repos.Trip,
		repos.Member,
		redis,
		cfg.TripCacheTTL,
		notificationService,
		emailService,
		logger.Named("trip"),
	)

	return &Services{
		Auth:         authService,
		Trip:         tripService,
		Email:        emailService,
		Notification: notificationService,
	}
}
