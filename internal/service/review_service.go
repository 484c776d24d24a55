package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"cateringCMS/internal/cache"
	"cateringCMS/internal/models"
	"cateringCMS/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	minRating = 1
	maxRating = 5
)

type ReviewService interface {
	Submit(ctx context.Context, req models.CreateReviewRequest) (*models.Review, error)
	GetPublic(ctx context.Context, reviewID string) (*models.Review, error)
	ListPublic(ctx context.Context) ([]*models.Review, error)
	ListAdmin(ctx context.Context) ([]*models.Review, error)
	Approve(ctx context.Context, reviewID, approverID string) (*models.Review, error)
	Reject(ctx context.Context, reviewID, approverID string) (*models.Review, error)
	Delete(ctx context.Context, reviewID string) error
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	cache      cache.Cache
	validate   *validator.Validate
	now        func() time.Time
}

func NewReviewService(reviewRepo repository.ReviewRepository, c cache.Cache) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		cache:      c,
		validate:   newValidator(),
		now:        time.Now,
	}
}

// Submit stores a customer review. Whatever status the client asked for,
// the review starts out pending.
func (s *reviewService) Submit(ctx context.Context, req models.CreateReviewRequest) (*models.Review, error) {
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.Comment = strings.TrimSpace(req.Comment)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if req.Rating < minRating || req.Rating > maxRating {
		return nil, invalid("Rating must be between %d and %d", minRating, maxRating)
	}

	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	review := &models.Review{
		CustomerName: req.CustomerName,
		Rating:       req.Rating,
		Comment:      req.Comment,
		Email:        req.Email,
		Status:       models.ReviewPending,
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	return review, nil
}

// GetPublic hides anything that has not been approved.
func (s *reviewService) GetPublic(ctx context.Context, reviewID string) (*models.Review, error) {
	if _, err := uuid.Parse(reviewID); err != nil {
		return nil, fmt.Errorf("review %s: %w", reviewID, ErrNotFound)
	}

	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	if review.Status != models.ReviewApproved {
		return nil, fmt.Errorf("review %s: %w", reviewID, ErrNotFound)
	}

	return review, nil
}

// ListPublic reads through the cache; see galleryService.List for how the
// generation keeps a slow reader from restoring a retired listing.
func (s *reviewService) ListPublic(ctx context.Context) ([]*models.Review, error) {
	gen, err := s.cache.Generation(ctx, cache.PublicReviews)
	if err != nil {
		log.Printf("Warning: review cache unavailable: %v", err)
		return s.reviewRepo.List(ctx, models.ReviewApproved)
	}
	key := cache.Key(cache.PublicReviews, gen, "")

	var cached []*models.Review
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		log.Printf("Warning: review cache read failed: %v", err)
	}
	if found {
		return cached, nil
	}

	reviews, err := s.reviewRepo.List(ctx, models.ReviewApproved)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, reviews); err != nil {
		log.Printf("Warning: review cache write failed: %v", err)
	}

	return reviews, nil
}

func (s *reviewService) ListAdmin(ctx context.Context) ([]*models.Review, error) {
	return s.reviewRepo.List(ctx, "")
}

func (s *reviewService) Approve(ctx context.Context, reviewID, approverID string) (*models.Review, error) {
	return s.decide(ctx, reviewID, models.ReviewApproved, approverID)
}

func (s *reviewService) Reject(ctx context.Context, reviewID, approverID string) (*models.Review, error) {
	return s.decide(ctx, reviewID, models.ReviewRejected, approverID)
}

// decide is valid from any status, including the one the review is already in;
// each call records a fresh decision time and approver.
func (s *reviewService) decide(ctx context.Context, reviewID, status, approverID string) (*models.Review, error) {
	if _, err := uuid.Parse(reviewID); err != nil {
		return nil, fmt.Errorf("review %s: %w", reviewID, ErrNotFound)
	}

	review, err := s.reviewRepo.SetStatus(ctx, reviewID, status, approverID, s.now().UTC())
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return review, nil
}

func (s *reviewService) Delete(ctx context.Context, reviewID string) error {
	if _, err := uuid.Parse(reviewID); err != nil {
		return fmt.Errorf("review %s: %w", reviewID, ErrNotFound)
	}

	if err := s.reviewRepo.Delete(ctx, reviewID); err != nil {
		return err
	}

	s.invalidate(ctx)
	return nil
}

func (s *reviewService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, cache.PublicReviews); err != nil {
		log.Printf("Warning: review cache invalidation failed: %v", err)
	}
}
