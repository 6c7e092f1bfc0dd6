package store

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to (and creates if missing) a SQLite database at path and
// migrates the schema. Query logging is silenced; callers that want SQL
// visibility should wrap the *gorm.DB themselves.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("store: underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1) // sqlite: one writer at a time is simplest and sufficient here

	if err := db.AutoMigrate(&Run{}, &ThreadResult{}); err != nil {
		return nil, fmt.Errorf("store: migrate: %w", err)
	}
	return db, nil
}
