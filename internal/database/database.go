package database

import (
	"fmt"
	"log/slog"

	"github.com/yukikurage/kanban-web/internal/config"
	"github.com/yukikurage/kanban-web/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the client state store selected by cfg.StateDriver.
func Open(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.StateDriver {
	case "sqlite", "":
		dialector = sqlite.Open(cfg.StateDSN)
	case "mysql":
		dialector = mysql.Open(cfg.StateDSN)
	case "postgres":
		dialector = postgres.Open(cfg.StateDSN)
	default:
		return nil, fmt.Errorf("unsupported state driver %q", cfg.StateDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to state store: %w", err)
	}

	slog.Debug("state store connection established", slog.String("driver", cfg.StateDriver))
	return db, nil
}

// Migrate creates the client state table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.ClientState{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
