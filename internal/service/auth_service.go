package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cateringCMS/internal/models"
	"cateringCMS/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type AuthService interface {
	Authenticate(ctx context.Context, username, password string) (*models.Admin, error)
	Login(ctx context.Context, username, password string) (*models.Admin, string, error)
	ResolvePrincipal(ctx context.Context, tokenString string) (*models.Admin, *TokenClaims, error)
	GetProfile(ctx context.Context, adminID string) (*models.Admin, error)
	CreateAdmin(ctx context.Context, req models.CreateAdminRequest) (*models.Admin, error)
}

type authService struct {
	adminRepo repository.AdminRepository
	tokens    TokenService
	validate  *validator.Validate
	now       func() time.Time
}

func NewAuthService(adminRepo repository.AdminRepository, tokens TokenService) AuthService {
	return &authService{
		adminRepo: adminRepo,
		tokens:    tokens,
		validate:  newValidator(),
		now:       time.Now,
	}
}

// Authenticate checks the credentials and records the login time. Unknown
// usernames and wrong passwords fail with the same error.
func (s *authService) Authenticate(ctx context.Context, username, password string) (*models.Admin, error) {
	admin, err := s.adminRepo.VerifyPassword(ctx, strings.TrimSpace(username), password)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrPasswordMismatch) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to verify credentials: %w", err)
	}

	loginAt := s.now().UTC()
	if err := s.adminRepo.UpdateLastLogin(ctx, admin.AdminID, loginAt); err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}
	admin.LastLoginAt = &loginAt

	return admin, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (*models.Admin, string, error) {
	admin, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(admin.AdminID, admin.Role)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return admin, token, nil
}

// ResolvePrincipal verifies the token and loads the admin it names. The
// returned claims carry the role the request is authorized with.
func (s *authService) ResolvePrincipal(ctx context.Context, tokenString string) (*models.Admin, *TokenClaims, error) {
	claims, err := s.tokens.Verify(tokenString)
	if err != nil {
		return nil, nil, err
	}

	if _, err := uuid.Parse(claims.AdminID); err != nil {
		return nil, nil, ErrInvalidToken
	}

	admin, err := s.adminRepo.GetAdminByID(ctx, claims.AdminID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrUnauthorized
		}
		return nil, nil, fmt.Errorf("failed to load principal: %w", err)
	}

	return admin, claims, nil
}

func (s *authService) GetProfile(ctx context.Context, adminID string) (*models.Admin, error) {
	if _, err := uuid.Parse(adminID); err != nil {
		return nil, fmt.Errorf("admin %s: %w", adminID, ErrNotFound)
	}

	return s.adminRepo.GetAdminByID(ctx, adminID)
}

func (s *authService) CreateAdmin(ctx context.Context, req models.CreateAdminRequest) (*models.Admin, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	admin := &models.Admin{
		Username: req.Username,
		Email:    req.Email,
		Role:     req.Role,
	}

	if err := s.adminRepo.CreateAdmin(ctx, admin, req.Password); err != nil {
		return nil, err
	}

	return admin, nil
}
