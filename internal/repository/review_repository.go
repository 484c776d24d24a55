package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"cateringCMS/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const reviewColumns = `
	r.review_id, r.customer_name, r.rating, r.comment, r.email, r.status,
	r.approved_by, COALESCE(a.username, '') AS approver_name,
	r.approved_at, r.created_at, r.updated_at
`

const reviewSelect = `SELECT ` + reviewColumns + `
	FROM reviews r
	LEFT JOIN admins a ON a.admin_id = r.approved_by
`

type ReviewRepositoryImpl struct {
	db *sqlx.DB
}

func NewReviewRepository(db *sqlx.DB) *ReviewRepositoryImpl {
	return &ReviewRepositoryImpl{db: db}
}

func (r *ReviewRepositoryImpl) Create(ctx context.Context, review *models.Review) error {
	query := `
		INSERT INTO reviews
		(review_id, customer_name, rating, comment, email, status, created_at, updated_at)
		VALUES
		(:review_id, :customer_name, :rating, :comment, :email, :status, :created_at, :updated_at)
	`

	if review.ReviewID == "" {
		review.ReviewID = uuid.New().String()
	}
	if review.Status == "" {
		review.Status = models.ReviewPending
	}

	now := time.Now().UTC()
	review.CreatedAt = now
	review.UpdatedAt = now

	_, err := r.db.NamedExecContext(ctx, query, review)
	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}

	return nil
}

func (r *ReviewRepositoryImpl) GetByID(ctx context.Context, reviewID string) (*models.Review, error) {
	query := reviewSelect + ` WHERE r.review_id = $1`

	var review models.Review
	err := r.db.GetContext(ctx, &review, query, reviewID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("review %s: %w", reviewID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	return &review, nil
}

// List returns reviews newest first; an empty status lists every status.
func (r *ReviewRepositoryImpl) List(ctx context.Context, status string) ([]*models.Review, error) {
	reviews := []*models.Review{}

	var err error
	if status == "" {
		query := reviewSelect + ` ORDER BY r.created_at DESC`
		err = r.db.SelectContext(ctx, &reviews, query)
	} else {
		query := reviewSelect + ` WHERE r.status = $1 ORDER BY r.created_at DESC`
		err = r.db.SelectContext(ctx, &reviews, query, status)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	return reviews, nil
}

func (r *ReviewRepositoryImpl) Recent(ctx context.Context, limit int) ([]*models.Review, error) {
	query := reviewSelect + ` ORDER BY r.created_at DESC LIMIT $1`

	reviews := []*models.Review{}
	if err := r.db.SelectContext(ctx, &reviews, query, limit); err != nil {
		return nil, fmt.Errorf("failed to get recent reviews: %w", err)
	}

	return reviews, nil
}

func (r *ReviewRepositoryImpl) RecentlyUpdated(ctx context.Context, limit int) ([]*models.Review, error) {
	query := reviewSelect + ` ORDER BY r.updated_at DESC LIMIT $1`

	reviews := []*models.Review{}
	if err := r.db.SelectContext(ctx, &reviews, query, limit); err != nil {
		return nil, fmt.Errorf("failed to get recently updated reviews: %w", err)
	}

	return reviews, nil
}

// SetStatus records a moderation decision in one statement, so concurrent
// decisions on the same review resolve to whichever commits last.
func (r *ReviewRepositoryImpl) SetStatus(ctx context.Context, reviewID, status, approverID string, decidedAt time.Time) (*models.Review, error) {
	query := `
		WITH r AS (
			UPDATE reviews SET
				status = $1,
				approved_by = $2,
				approved_at = $3,
				updated_at = $3
			WHERE review_id = $4
			RETURNING *
		)
		SELECT ` + reviewColumns + `
		FROM r
		LEFT JOIN admins a ON a.admin_id = r.approved_by
	`

	var review models.Review
	err := r.db.GetContext(ctx, &review, query, status, approverID, decidedAt, reviewID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("review %s: %w", reviewID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to set review status: %w", err)
	}

	return &review, nil
}

func (r *ReviewRepositoryImpl) Delete(ctx context.Context, reviewID string) error {
	query := `DELETE FROM reviews WHERE review_id = $1`

	result, err := r.db.ExecContext(ctx, query, reviewID)
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("review %s: %w", reviewID, ErrNotFound)
	}

	return nil
}
