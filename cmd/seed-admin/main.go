package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"time"

	"cateringCMS/internal/config"
	"cateringCMS/internal/database"
	"cateringCMS/internal/models"
	"cateringCMS/internal/repository"
	"cateringCMS/internal/service"
)

// seed-admin creates the first admin account. The password is read from
// SEED_ADMIN_PASSWORD and is never echoed.
func main() {
	username := flag.String("username", "admin", "admin username")
	email := flag.String("email", "", "admin email")
	role := flag.String("role", models.RoleSuperAdmin, "admin or superadmin")
	flag.Parse()

	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		log.Fatal("SEED_ADMIN_PASSWORD is not set")
	}

	cfg := config.LoadConfig()

	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.CloseDB()

	repo := repository.NewRepository(db.DB)
	auth := service.NewAuthService(repo.Admin, service.NewTokenService(cfg.JWTSecretKey))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	admin, err := auth.CreateAdmin(ctx, models.CreateAdminRequest{
		Username: *username,
		Email:    *email,
		Password: password,
		Role:     *role,
	})
	if err != nil {
		var validationErr *service.ValidationError
		switch {
		case errors.Is(err, service.ErrDuplicate):
			log.Printf("Admin %q already exists, nothing to do", *username)
			return
		case errors.As(err, &validationErr):
			log.Fatalf("Invalid admin: %s", validationErr.Message)
		default:
			log.Fatalf("Failed to create admin: %v", err)
		}
	}

	log.Printf("Created %s %q (id %s)", admin.Role, admin.Username, admin.AdminID)
}
