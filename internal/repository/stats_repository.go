package repository

import (
	"context"
	"fmt"

	"cateringCMS/internal/models"

	"github.com/jmoiron/sqlx"
)

type statsRepository struct {
	db *sqlx.DB
}

func NewStatsRepository(db *sqlx.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) GalleryTotals(ctx context.Context) (models.GalleryTotals, error) {
	var totals models.GalleryTotals

	err := r.db.GetContext(ctx, &totals, `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE is_active) AS active
		FROM gallery_items
	`)
	if err != nil {
		return models.GalleryTotals{}, fmt.Errorf("failed to count gallery items: %w", err)
	}

	totals.Inactive = totals.Total - totals.Active
	return totals, nil
}

func (r *statsRepository) ReviewCounts(ctx context.Context) (models.ReviewCounts, error) {
	var counts models.ReviewCounts

	err := r.db.GetContext(ctx, &counts, `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE status = 'pending') AS pending,
			COUNT(*) FILTER (WHERE status = 'approved') AS approved,
			COUNT(*) FILTER (WHERE status = 'rejected') AS rejected,
			COALESCE(SUM(rating) FILTER (WHERE status = 'approved'), 0) AS approved_rating_sum
		FROM reviews
	`)
	if err != nil {
		return models.ReviewCounts{}, fmt.Errorf("failed to count reviews: %w", err)
	}

	return counts, nil
}

func (r *statsRepository) CountAdmins(ctx context.Context) (int, error) {
	var count int

	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM admins`); err != nil {
		return 0, fmt.Errorf("failed to count admins: %w", err)
	}

	return count, nil
}
