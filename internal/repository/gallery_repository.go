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

const gallerySelect = `
	SELECT g.item_id, g.title, g.description, g.image_url, g.image_key, g.category,
		g.uploaded_by, COALESCE(a.username, '') AS uploader_name,
		g.is_active, g.display_order, g.created_at, g.updated_at
	FROM gallery_items g
	LEFT JOIN admins a ON a.admin_id = g.uploaded_by
`

type GalleryRepositoryImpl struct {
	db *sqlx.DB
}

func NewGalleryRepository(db *sqlx.DB) *GalleryRepositoryImpl {
	return &GalleryRepositoryImpl{db: db}
}

func (r *GalleryRepositoryImpl) Create(ctx context.Context, item *models.GalleryItem) error {
	query := `
		INSERT INTO gallery_items
		(item_id, title, description, image_url, image_key, category, uploaded_by, is_active, display_order, created_at, updated_at)
		VALUES
		(:item_id, :title, :description, :image_url, :image_key, :category, :uploaded_by, :is_active, :display_order, :created_at, :updated_at)
	`

	if item.ItemID == "" {
		item.ItemID = uuid.New().String()
	}

	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now

	_, err := r.db.NamedExecContext(ctx, query, item)
	if err != nil {
		return fmt.Errorf("failed to create gallery item: %w", err)
	}

	return nil
}

func (r *GalleryRepositoryImpl) GetByID(ctx context.Context, itemID string) (*models.GalleryItem, error) {
	query := gallerySelect + ` WHERE g.item_id = $1`

	var item models.GalleryItem
	err := r.db.GetContext(ctx, &item, query, itemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("gallery item %s: %w", itemID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get gallery item: %w", err)
	}

	return &item, nil
}

// List returns items ordered by display order, newest first within the same order.
func (r *GalleryRepositoryImpl) List(ctx context.Context, active *bool) ([]*models.GalleryItem, error) {
	items := []*models.GalleryItem{}

	var err error
	if active == nil {
		query := gallerySelect + ` ORDER BY g.display_order DESC, g.created_at DESC`
		err = r.db.SelectContext(ctx, &items, query)
	} else {
		query := gallerySelect + ` WHERE g.is_active = $1 ORDER BY g.display_order DESC, g.created_at DESC`
		err = r.db.SelectContext(ctx, &items, query, *active)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list gallery items: %w", err)
	}

	return items, nil
}

func (r *GalleryRepositoryImpl) Recent(ctx context.Context, limit int) ([]*models.GalleryItem, error) {
	query := gallerySelect + ` ORDER BY g.created_at DESC LIMIT $1`

	items := []*models.GalleryItem{}
	if err := r.db.SelectContext(ctx, &items, query, limit); err != nil {
		return nil, fmt.Errorf("failed to get recent gallery items: %w", err)
	}

	return items, nil
}

func (r *GalleryRepositoryImpl) Update(ctx context.Context, item *models.GalleryItem) error {
	query := `
		UPDATE gallery_items SET
			title = :title,
			description = :description,
			category = :category,
			is_active = :is_active,
			display_order = :display_order,
			updated_at = :updated_at
		WHERE item_id = :item_id
	`

	item.UpdatedAt = time.Now().UTC()

	result, err := r.db.NamedExecContext(ctx, query, item)
	if err != nil {
		return fmt.Errorf("failed to update gallery item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("gallery item %s: %w", item.ItemID, ErrNotFound)
	}

	return nil
}

func (r *GalleryRepositoryImpl) Delete(ctx context.Context, itemID string) error {
	query := `DELETE FROM gallery_items WHERE item_id = $1`

	result, err := r.db.ExecContext(ctx, query, itemID)
	if err != nil {
		return fmt.Errorf("failed to delete gallery item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("gallery item %s: %w", itemID, ErrNotFound)
	}

	return nil
}
