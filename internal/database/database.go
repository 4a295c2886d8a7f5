package database

import (
	"fmt"

	"github.com/apex/log"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"objectcache/internal/models"
)

// Open connects to the SQLite file at path and runs migrations. The file is
// created if missing; ":memory:" gives a private in-memory database.
func Open(path string, level logger.LogLevel) (*gorm.DB, error) {
	// glebarez/sqlite is a pure Go driver, no CGO required
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if path == ":memory:" {
		// every pooled connection would otherwise see its own empty database
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.WithField("path", path).Info("database connected and migrated")
	return db, nil
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Lookup{}); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	return nil
}
