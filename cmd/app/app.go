package app

import (
	"log"

	"cateringCMS/internal/cache"
	"cateringCMS/internal/config"
	"cateringCMS/internal/database"
	"cateringCMS/internal/repository"
	"cateringCMS/internal/service"
	"cateringCMS/internal/storage"
)

// App connects the stores and wires the services. The returned function
// releases the cache connection.
func App(cfg *config.Config) (*database.DB, *repository.Repository, *service.Service, func() error) {
	// connection DB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// connection MinIO
	minioClient, err := storage.NewMinIOClient(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize MinIO: %v", err)
	}

	// optional read cache
	readCache, closeCache := cache.New(cfg.Redis)
	if _, ok := readCache.(cache.Noop); ok && cfg.Redis.Enabled {
		log.Printf("Warning: Redis at %s is unreachable, caching disabled", cfg.Redis.Addr)
	}

	// enabling dependencies
	repo := repository.NewRepository(db.DB)

	services := service.NewService(repo, cfg, minioClient, readCache)

	return db, repo, services, closeCache
}
