package database

import (
	"embed"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pressly/goose/v3"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/staffdesk/employee-manager/internal/config"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

var (
	mu       sync.Mutex
	database *gorm.DB
)

// EnsureDatabase returns the process-wide gorm handle, dialing PostgreSQL on
// first use. Concurrent callers share a single establishment attempt; a
// failed attempt is returned to the caller and not cached, so the next call
// dials again from scratch.
func EnsureDatabase(cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	mu.Lock()
	defer mu.Unlock()

	if database != nil {
		return database, nil
	}

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%d sslmode=disable TimeZone=UTC",
		cfg.PostgreSQLHost,
		cfg.PostgreSQLUser,
		cfg.PostgreSQLPassword,
		cfg.PostgreSQLDatabase,
		cfg.PostgreSQLPort,
	)

	logger.Info("🔌 [Database] Connecting to PostgreSQL...",
		"host", cfg.PostgreSQLHost,
		"port", cfg.PostgreSQLPort,
		"database", cfg.PostgreSQLDatabase,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping PostgreSQL: %w", err)
	}

	logger.Info("✅ [Database] Database connection established")

	logger.Info("🔄 [Database] Running migrations...")
	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.Up(sqlDB, "migrations"); err != nil {
		return nil, fmt.Errorf("failed to run goose migrations: %w", err)
	}
	logger.Info("✅ [Database] Migrations completed successfully")

	database = db
	return database, nil
}

// GetDatabase returns the cached handle, or nil before the first successful
// EnsureDatabase call.
func GetDatabase() *gorm.DB {
	mu.Lock()
	defer mu.Unlock()
	return database
}
