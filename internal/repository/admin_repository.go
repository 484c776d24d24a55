package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"cateringCMS/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

const adminColumns = `admin_id, username, email, password_hash, role, last_login_at, created_at`

type adminRepository struct {
	db *sqlx.DB
}

// decoyHash is compared against when the username is unknown so that both
// failure paths cost one bcrypt comparison.
var (
	decoyHash     []byte
	decoyHashOnce sync.Once
)

func decoy() []byte {
	decoyHashOnce.Do(func() {
		decoyHash, _ = bcrypt.GenerateFromPassword([]byte("decoy-password"), bcrypt.DefaultCost)
	})
	return decoyHash
}

func NewAdminRepository(db *sqlx.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) CreateAdmin(ctx context.Context, admin *models.Admin, password string) error {
	// create password hash
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	admin.AdminID = uuid.New().String()
	admin.Username = strings.TrimSpace(admin.Username)
	admin.Email = strings.ToLower(strings.TrimSpace(admin.Email))
	admin.PasswordHash = string(hashedPassword)
	if admin.CreatedAt.IsZero() {
		admin.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO admins (admin_id, username, email, password_hash, role, created_at)
		VALUES (:admin_id, :username, :email, :password_hash, :role, :created_at)
	`

	_, err = r.db.NamedExecContext(ctx, query, admin)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("admin %s: %w", admin.Username, ErrDuplicate)
		}
		return fmt.Errorf("failed to create admin: %w", err)
	}

	return nil
}

func (r *adminRepository) GetAdminByID(ctx context.Context, adminID string) (*models.Admin, error) {
	var admin models.Admin

	query := `SELECT ` + adminColumns + ` FROM admins WHERE admin_id = $1`

	err := r.db.GetContext(ctx, &admin, query, adminID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("admin %s: %w", adminID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}

	return &admin, nil
}

func (r *adminRepository) getAdminByUsername(ctx context.Context, username string) (*models.Admin, error) {
	var admin models.Admin

	query := `SELECT ` + adminColumns + ` FROM admins WHERE username = $1`

	err := r.db.GetContext(ctx, &admin, query, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("admin %s: %w", username, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get admin by username: %w", err)
	}

	return &admin, nil
}

func (r *adminRepository) VerifyPassword(ctx context.Context, username, password string) (*models.Admin, error) {
	admin, err := r.getAdminByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(decoy(), []byte(password))
		}
		return nil, err
	}

	// checking that the password hash is the same
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, ErrPasswordMismatch
	}

	return admin, nil
}

func (r *adminRepository) UpdateLastLogin(ctx context.Context, adminID string, at time.Time) error {
	query := `UPDATE admins SET last_login_at = $1 WHERE admin_id = $2`

	result, err := r.db.ExecContext(ctx, query, at, adminID)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("admin %s: %w", adminID, ErrNotFound)
	}

	return nil
}
