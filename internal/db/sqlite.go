package db

import (
	"github.com/bienestar-escolar/backend/internal/config"
	"github.com/bienestar-escolar/backend/internal/models"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects the SQLite file and optionally syncs the schema. Auto-sync is
// gated by config because it can alter tables destructively on a database
// with pre-existing data.
func Open(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	logLevel := logger.Warn
	if cfg.VerboseQuery {
		logLevel = logger.Info
	}

	gdb, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, err
	}

	if cfg.AutoMigrate {
		if err := Migrate(gdb); err != nil {
			return nil, err
		}
		log.Info("schema auto-sync complete")
	}

	log.Info("sqlite opened", zap.String("path", cfg.DatabasePath))
	return gdb, nil
}

// Migrate syncs the schema for every tracked entity.
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&models.User{},
		&models.Student{},
		&models.Intervention{},
		&models.InterventionComment{},
		&models.Audit{},
	)
}
