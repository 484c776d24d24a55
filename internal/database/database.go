package database

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"time"

	"cateringCMS/internal/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

const migrationsPath = "migrations/001_create_tables.sql"

type DB struct {
	*sqlx.DB
}

// DataSourceName renders the lib/pq keyword/value connection string.
func DataSourceName(c config.DB) string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DbHOST, c.DbPORT, c.DbUSER, c.DbPASSWORD, c.DbNAME, c.DbSSLMODE,
	)
}

func ConnectDB(cfg *config.Config) (*DB, error) {
	log.Printf("Connecting to database: host=%s, dbname=%s", cfg.DB.DbHOST, cfg.DB.DbNAME)

	db, err := sqlx.Connect("postgres", DataSourceName(cfg.DB))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	conn := &DB{db}

	if err := conn.RunMigrations(migrationsPath); err != nil {
		log.Printf("Warning: migrations were not applied: %v", err)
	}

	if err := conn.HealthCheck(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("database health check failed: %w", err)
	}

	log.Println("Connected to PostgreSQL")
	return conn, nil
}

func (db *DB) CloseDB() error {
	return db.DB.Close()
}

// RunMigrations executes the schema file. Every statement in it is
// IF NOT EXISTS, so it is safe to run on each start.
func (db *DB) RunMigrations(path string) error {
	schema, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("migration file not found: %s", path)
	}
	if err != nil {
		return fmt.Errorf("failed to read migration file: %w", err)
	}

	log.Printf("Applying migrations from %s", path)

	if _, err := db.Exec(string(schema)); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	log.Println("Migrations applied")
	return nil
}

// HealthCheck pings the database with a short deadline.
func (db *DB) HealthCheck(ctx context.Context) error {
	if db == nil || db.DB == nil {
		return fmt.Errorf("database connection is not initialized")
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return db.PingContext(ctx)
}
