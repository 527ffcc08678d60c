// internal/store/store.go
package store

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/recallai/recall/internal/cache"
	"github.com/recallai/recall/internal/calllog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open opens the SQLite database at path and migrates the schema.
// The returned handle is safe for concurrent use; unrelated rows need
// no coordination beyond the store's defaults.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening store %s: %w", path, err)
	}

	if err := db.AutoMigrate(&cache.Entry{}, &calllog.Entry{}); err != nil {
		return nil, fmt.Errorf("migrating store: %w", err)
	}

	return db, nil
}
