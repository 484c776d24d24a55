package repository

import (
	"context"
	"time"

	"cateringCMS/internal/models"

	"github.com/jmoiron/sqlx"
)

type AdminRepository interface {
	CreateAdmin(ctx context.Context, admin *models.Admin, password string) error
	GetAdminByID(ctx context.Context, adminID string) (*models.Admin, error)
	VerifyPassword(ctx context.Context, username, password string) (*models.Admin, error)
	UpdateLastLogin(ctx context.Context, adminID string, at time.Time) error
}

type GalleryRepository interface {
	Create(ctx context.Context, item *models.GalleryItem) error
	GetByID(ctx context.Context, itemID string) (*models.GalleryItem, error)
	List(ctx context.Context, active *bool) ([]*models.GalleryItem, error)
	Recent(ctx context.Context, limit int) ([]*models.GalleryItem, error)
	Update(ctx context.Context, item *models.GalleryItem) error
	Delete(ctx context.Context, itemID string) error
}

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, reviewID string) (*models.Review, error)
	List(ctx context.Context, status string) ([]*models.Review, error)
	Recent(ctx context.Context, limit int) ([]*models.Review, error)
	RecentlyUpdated(ctx context.Context, limit int) ([]*models.Review, error)
	SetStatus(ctx context.Context, reviewID, status, approverID string, decidedAt time.Time) (*models.Review, error)
	Delete(ctx context.Context, reviewID string) error
}

type StatsRepository interface {
	GalleryTotals(ctx context.Context) (models.GalleryTotals, error)
	ReviewCounts(ctx context.Context) (models.ReviewCounts, error)
	CountAdmins(ctx context.Context) (int, error)
}

type Repository struct {
	Admin   AdminRepository
	Gallery GalleryRepository
	Review  ReviewRepository
	Stats   StatsRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		Admin:   NewAdminRepository(db),
		Gallery: NewGalleryRepository(db),
		Review:  NewReviewRepository(db),
		Stats:   NewStatsRepository(db),
	}
}
