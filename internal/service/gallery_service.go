package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"cateringCMS/internal/cache"
	"cateringCMS/internal/config"
	"cateringCMS/internal/models"
	"cateringCMS/internal/repository"
	"cateringCMS/internal/storage"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var galleryCategories = map[string]bool{
	models.CategoryEvent:   true,
	models.CategoryFood:    true,
	models.CategoryService: true,
	models.CategoryTeam:    true,
	models.CategoryOther:   true,
}

type GalleryService interface {
	List(ctx context.Context, filter models.GalleryFilter) ([]*models.GalleryItem, error)
	Get(ctx context.Context, itemID string) (*models.GalleryItem, error)
	Create(ctx context.Context, req models.CreateGalleryItemRequest, upload models.ImageUpload) (*models.GalleryItem, error)
	Update(ctx context.Context, itemID string, req models.UpdateGalleryItemRequest) (*models.GalleryItem, error)
	Delete(ctx context.Context, itemID string) error
}

type galleryService struct {
	galleryRepo repository.GalleryRepository
	storage     storage.Storage
	cache       cache.Cache
	cfg         *config.Config
	validate    *validator.Validate
}

func NewGalleryService(galleryRepo repository.GalleryRepository, storage storage.Storage, c cache.Cache, cfg *config.Config) GalleryService {
	return &galleryService{
		galleryRepo: galleryRepo,
		storage:     storage,
		cache:       c,
		cfg:         cfg,
		validate:    newValidator(),
	}
}

func galleryListName(filter models.GalleryFilter) string {
	switch {
	case filter.Active == nil:
		return "all"
	case *filter.Active:
		return "active"
	default:
		return "inactive"
	}
}

// List reads through the cache. The generation is taken before the store is
// queried, so rows loaded before a concurrent mutation land under a key that
// the mutation has already retired.
func (s *galleryService) List(ctx context.Context, filter models.GalleryFilter) ([]*models.GalleryItem, error) {
	gen, err := s.cache.Generation(ctx, cache.GalleryList)
	if err != nil {
		log.Printf("Warning: gallery cache unavailable: %v", err)
		return s.galleryRepo.List(ctx, filter.Active)
	}
	key := cache.Key(cache.GalleryList, gen, galleryListName(filter))

	var cached []*models.GalleryItem
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		log.Printf("Warning: gallery cache read failed: %v", err)
	}
	if found {
		return cached, nil
	}

	items, err := s.galleryRepo.List(ctx, filter.Active)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, items); err != nil {
		log.Printf("Warning: gallery cache write failed: %v", err)
	}

	return items, nil
}

func (s *galleryService) Get(ctx context.Context, itemID string) (*models.GalleryItem, error) {
	if _, err := uuid.Parse(itemID); err != nil {
		return nil, fmt.Errorf("gallery item %s: %w", itemID, ErrNotFound)
	}

	return s.galleryRepo.GetByID(ctx, itemID)
}

func (s *galleryService) Create(ctx context.Context, req models.CreateGalleryItemRequest, upload models.ImageUpload) (*models.GalleryItem, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	req.Category = strings.ToLower(strings.TrimSpace(req.Category))

	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	if upload.Body == nil {
		return nil, invalid("Image file is required")
	}

	if req.Category == "" {
		req.Category = models.CategoryOther
	}

	contentType, body, err := storage.ValidateImage(upload.FileName, upload.Size, upload.Body, s.cfg.MaxUploadSize)
	if err != nil {
		if storage.IsPolicyError(err) {
			return nil, &BlobStoreError{Rejected: true, Err: err}
		}
		return nil, &BlobStoreError{Err: err}
	}

	objectName, imageURL, err := s.storage.UploadImage(ctx, upload.FileName, body, upload.Size, contentType)
	if err != nil {
		return nil, &BlobStoreError{Err: err}
	}

	item := &models.GalleryItem{
		Title:        req.Title,
		Description:  req.Description,
		ImageURL:     imageURL,
		ImageKey:     objectName,
		Category:     req.Category,
		UploadedBy:   req.UploaderID,
		IsActive:     true,
		DisplayOrder: req.DisplayOrder,
	}

	if err := s.galleryRepo.Create(ctx, item); err != nil {
		if delErr := s.storage.DeleteImage(ctx, objectName); delErr != nil {
			log.Printf("Warning: orphaned gallery object %s: %v", objectName, delErr)
		}
		return nil, fmt.Errorf("failed to save gallery item: %w", err)
	}

	s.invalidate(ctx)

	return s.galleryRepo.GetByID(ctx, item.ItemID)
}

// Update applies only the fields present in req.
func (s *galleryService) Update(ctx context.Context, itemID string, req models.UpdateGalleryItemRequest) (*models.GalleryItem, error) {
	item, err := s.Get(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, invalid("title must not be empty")
		}
		if len([]rune(title)) > 255 {
			return nil, invalid("title must be at most 255 characters")
		}
		item.Title = title
	}
	if req.Description != nil {
		item.Description = strings.TrimSpace(*req.Description)
	}
	if req.Category != nil {
		category := strings.ToLower(strings.TrimSpace(*req.Category))
		if !galleryCategories[category] {
			return nil, invalid("category must be one of: event, food, service, team, other")
		}
		item.Category = category
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}
	if req.DisplayOrder != nil {
		item.DisplayOrder = *req.DisplayOrder
	}

	if err := s.galleryRepo.Update(ctx, item); err != nil {
		return nil, err
	}

	s.invalidate(ctx)

	return s.galleryRepo.GetByID(ctx, itemID)
}

// Delete removes the record only; the stored image is left in place.
func (s *galleryService) Delete(ctx context.Context, itemID string) error {
	if _, err := uuid.Parse(itemID); err != nil {
		return fmt.Errorf("gallery item %s: %w", itemID, ErrNotFound)
	}

	if err := s.galleryRepo.Delete(ctx, itemID); err != nil {
		return err
	}

	s.invalidate(ctx)
	return nil
}

func (s *galleryService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, cache.GalleryList); err != nil {
		log.Printf("Warning: gallery cache invalidation failed: %v", err)
	}
}
