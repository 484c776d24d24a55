package models

import (
	"io"
	"time"
)

const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superadmin"
)

const (
	ReviewPending  = "pending"
	ReviewApproved = "approved"
	ReviewRejected = "rejected"
)

const (
	CategoryEvent   = "event"
	CategoryFood    = "food"
	CategoryService = "service"
	CategoryTeam    = "team"
	CategoryOther   = "other"
)

// Admin is a principal allowed into the admin area.
type Admin struct {
	AdminID      string     `json:"id" db:"admin_id"`
	Username     string     `json:"username" db:"username"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"`
	Role         string     `json:"role" db:"role"`
	LastLoginAt  *time.Time `json:"lastLogin,omitempty" db:"last_login_at"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
}

type CreateAdminRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=admin superadmin"`
}

type GalleryItem struct {
	ItemID       string    `json:"id" db:"item_id"`
	Title        string    `json:"title" db:"title"`
	Description  string    `json:"description" db:"description"`
	ImageURL     string    `json:"imageUrl" db:"image_url"`
	ImageKey     string    `json:"-" db:"image_key"`
	Category     string    `json:"category" db:"category"`
	UploadedBy   string    `json:"uploadedBy" db:"uploaded_by"`
	UploaderName string    `json:"uploaderName,omitempty" db:"uploader_name"`
	IsActive     bool      `json:"isActive" db:"is_active"`
	DisplayOrder int       `json:"displayOrder" db:"display_order"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// GalleryFilter restricts a listing to active or hidden items; nil Active lists everything.
type GalleryFilter struct {
	Active *bool
}

type CreateGalleryItemRequest struct {
	Title        string `json:"title" validate:"required,max=255"`
	Description  string `json:"description" validate:"max=2000"`
	Category     string `json:"category" validate:"omitempty,oneof=event food service team other"`
	DisplayOrder int    `json:"displayOrder"`
	UploaderID   string `json:"uploadedBy" validate:"required"`
}

// UpdateGalleryItemRequest is a partial update: nil fields are left untouched.
type UpdateGalleryItemRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	Category     *string `json:"category"`
	IsActive     *bool   `json:"isActive"`
	DisplayOrder *int    `json:"displayOrder"`
}

// ImageUpload is the file part of a gallery upload.
type ImageUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type Review struct {
	ReviewID     string     `json:"id" db:"review_id"`
	CustomerName string     `json:"customerName" db:"customer_name"`
	Rating       int        `json:"rating" db:"rating"`
	Comment      string     `json:"comment" db:"comment"`
	Email        string     `json:"email,omitempty" db:"email"`
	Status       string     `json:"status" db:"status"`
	ApprovedBy   *string    `json:"approvedBy,omitempty" db:"approved_by"`
	ApproverName string     `json:"approverName,omitempty" db:"approver_name"`
	ApprovedAt   *time.Time `json:"approvedAt,omitempty" db:"approved_at"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time  `json:"updatedAt" db:"updated_at"`
}

type CreateReviewRequest struct {
	CustomerName string `json:"customerName" validate:"required,max=255"`
	Rating       int    `json:"rating" validate:"required"`
	Comment      string `json:"comment" validate:"required,max=1000"`
	Email        string `json:"email" validate:"omitempty,email"`
}

type GalleryTotals struct {
	Total    int `json:"total" db:"total"`
	Active   int `json:"active" db:"active"`
	Inactive int `json:"inactive" db:"-"`
}

// ReviewCounts is the raw per-status tally read from the store.
type ReviewCounts struct {
	Total             int `db:"total"`
	Pending           int `db:"pending"`
	Approved          int `db:"approved"`
	Rejected          int `db:"rejected"`
	ApprovedRatingSum int `db:"approved_rating_sum"`
}

type ReviewTotals struct {
	Total         int     `json:"total"`
	Pending       int     `json:"pending"`
	Approved      int     `json:"approved"`
	Rejected      int     `json:"rejected"`
	AverageRating float64 `json:"averageRating"`
}

type AdminTotals struct {
	Total int `json:"total"`
}

type RecentItems struct {
	Reviews []*Review      `json:"reviews"`
	Gallery []*GalleryItem `json:"gallery"`
}

type DashboardStats struct {
	Gallery  GalleryTotals   `json:"gallery"`
	Reviews  ReviewTotals    `json:"reviews"`
	Admins   AdminTotals     `json:"admins"`
	Recent   RecentItems     `json:"recent"`
	Activity []ActivityEntry `json:"activity"`
}

type ActivityEntry struct {
	Type        string    `json:"type"`
	Action      string    `json:"action"`
	Description string    `json:"description"`
	User        string    `json:"user"`
	Timestamp   time.Time `json:"timestamp"`
}
