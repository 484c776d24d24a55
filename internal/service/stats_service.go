package service

import (
	"context"
	"fmt"
	"math"
	"sort"

	"cateringCMS/internal/models"
	"cateringCMS/internal/repository"
)

const (
	recentLimit         = 5
	activitySourceLimit = 10
	activityLimit       = 15
)

type StatsService interface {
	ComputeStats(ctx context.Context) (*models.DashboardStats, error)
	RecentActivity(ctx context.Context) ([]models.ActivityEntry, error)
}

type statsService struct {
	statsRepo   repository.StatsRepository
	galleryRepo repository.GalleryRepository
	reviewRepo  repository.ReviewRepository
}

func NewStatsService(rep *repository.Repository) StatsService {
	return &statsService{
		statsRepo:   rep.Stats,
		galleryRepo: rep.Gallery,
		reviewRepo:  rep.Review,
	}
}

func (s *statsService) ComputeStats(ctx context.Context) (*models.DashboardStats, error) {
	galleryTotals, err := s.statsRepo.GalleryTotals(ctx)
	if err != nil {
		return nil, err
	}

	counts, err := s.statsRepo.ReviewCounts(ctx)
	if err != nil {
		return nil, err
	}

	adminCount, err := s.statsRepo.CountAdmins(ctx)
	if err != nil {
		return nil, err
	}

	recentReviews, err := s.reviewRepo.Recent(ctx, recentLimit)
	if err != nil {
		return nil, err
	}

	recentGallery, err := s.galleryRepo.Recent(ctx, recentLimit)
	if err != nil {
		return nil, err
	}

	activity, err := s.RecentActivity(ctx)
	if err != nil {
		return nil, err
	}

	return &models.DashboardStats{
		Gallery: galleryTotals,
		Reviews: models.ReviewTotals{
			Total:         counts.Total,
			Pending:       counts.Pending,
			Approved:      counts.Approved,
			Rejected:      counts.Rejected,
			AverageRating: averageRating(counts),
		},
		Admins: models.AdminTotals{Total: adminCount},
		Recent: models.RecentItems{
			Reviews: recentReviews,
			Gallery: recentGallery,
		},
		Activity: activity,
	}, nil
}

// averageRating is the mean over approved reviews, rounded to one decimal.
func averageRating(counts models.ReviewCounts) float64 {
	if counts.Approved == 0 {
		return 0
	}
	avg := float64(counts.ApprovedRatingSum) / float64(counts.Approved)
	return math.Round(avg*10) / 10
}

// RecentActivity merges review decisions and gallery uploads, newest first.
func (s *statsService) RecentActivity(ctx context.Context) ([]models.ActivityEntry, error) {
	reviews, err := s.reviewRepo.RecentlyUpdated(ctx, activitySourceLimit)
	if err != nil {
		return nil, err
	}

	items, err := s.galleryRepo.Recent(ctx, activitySourceLimit)
	if err != nil {
		return nil, err
	}

	activity := make([]models.ActivityEntry, 0, len(reviews)+len(items))

	for _, review := range reviews {
		user := review.ApproverName
		if user == "" {
			user = "Customer"
		}
		activity = append(activity, models.ActivityEntry{
			Type:        "review",
			Action:      review.Status,
			Description: fmt.Sprintf("Review by %s - %s", review.CustomerName, review.Status),
			User:        user,
			Timestamp:   review.UpdatedAt,
		})
	}

	for _, item := range items {
		user := item.UploaderName
		if user == "" {
			user = "Admin"
		}
		activity = append(activity, models.ActivityEntry{
			Type:        "gallery",
			Action:      "upload",
			Description: fmt.Sprintf("Gallery item %q uploaded", item.Title),
			User:        user,
			Timestamp:   item.CreatedAt,
		})
	}

	sort.SliceStable(activity, func(i, j int) bool {
		return activity[i].Timestamp.After(activity[j].Timestamp)
	})

	if len(activity) > activityLimit {
		activity = activity[:activityLimit]
	}

	return activity, nil
}
