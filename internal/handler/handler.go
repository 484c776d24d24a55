package handlers

import (
	"context"

	"cateringCMS/internal/config"
	"cateringCMS/internal/service"

	"github.com/go-playground/validator/v10"
)

// HealthChecker is satisfied by the database connection.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

type Handlers struct {
	AuthService    service.AuthService
	GalleryService service.GalleryService
	ReviewService  service.ReviewService
	StatsService   service.StatsService
	DB             HealthChecker
	Cfg            *config.Config
	Validate       *validator.Validate
}

func NewHandlers(service *service.Service, db HealthChecker, config *config.Config) *Handlers {
	return &Handlers{
		AuthService:    service.Auth,
		GalleryService: service.Gallery,
		ReviewService:  service.Review,
		StatsService:   service.Stats,
		DB:             db,
		Cfg:            config,
		Validate:       validator.New(),
	}
}
