package service

import (
	"cateringCMS/internal/cache"
	"cateringCMS/internal/config"
	"cateringCMS/internal/repository"
	"cateringCMS/internal/storage"
)

type Service struct {
	Auth    AuthService
	Gallery GalleryService
	Review  ReviewService
	Stats   StatsService
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage, c cache.Cache) *Service {
	tokens := NewTokenService(cfg.JWTSecretKey)

	return &Service{
		Auth:    NewAuthService(rep.Admin, tokens),
		Gallery: NewGalleryService(rep.Gallery, storage, c, cfg),
		Review:  NewReviewService(rep.Review, c),
		Stats:   NewStatsService(rep),
	}
}
