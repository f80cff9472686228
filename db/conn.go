// Package db contains things related to SQLite
package db

import (
	"fmt"
	"path/filepath"

	"github.com/Saurav-Paul/drop/internal/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// New opens (or creates) the SQLite database inside the data directory
// and migrates the schema
func New(dataDir string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(filepath.Join(dataDir, "drop.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite database, %w", err)
	}

	err = db.AutoMigrate(model.File{}, model.Setting{})
	if err != nil {
		return nil, fmt.Errorf("failed to automigrate tables, %w", err)
	}

	return db, nil
}
