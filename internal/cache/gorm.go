// internal/cache/gorm.go
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/recallai/recall/internal/core"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore is the relational cache store.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a store over an opened database handle.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Lookup returns the cached entry for the fingerprint, nil if absent.
func (s *GormStore) Lookup(ctx context.Context, fp string) (*Entry, error) {
	var entry Entry
	err := s.db.WithContext(ctx).First(&entry, "fingerprint = ?", fp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, core.WrapError(core.ErrStoreFailed, err)
	}
	return &entry, nil
}

// Put stores the entry. Concurrent misses racing on the same
// fingerprint resolve to last-write-wins; no locking is introduced for
// cache-write deduplication.
func (s *GormStore) Put(ctx context.Context, entry Entry) error {
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "fingerprint"}},
			UpdateAll: true,
		}).
		Create(&entry).Error
	if err != nil {
		return core.WrapError(core.ErrStoreFailed, err)
	}
	return nil
}

// RecordHit increments the hit counter for the fingerprint.
func (s *GormStore) RecordHit(ctx context.Context, fp string) error {
	err := s.db.WithContext(ctx).
		Model(&Entry{}).
		Where("fingerprint = ?", fp).
		UpdateColumn("hit_count", gorm.Expr("hit_count + 1")).Error
	if err != nil {
		return core.WrapError(core.ErrStoreFailed, err)
	}
	return nil
}

// Stats returns cache table counters.
func (s *GormStore) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	if err := s.db.WithContext(ctx).Model(&Entry{}).Count(&stats.Entries).Error; err != nil {
		return Stats{}, core.WrapError(core.ErrStoreFailed, err)
	}
	err := s.db.WithContext(ctx).
		Model(&Entry{}).
		Select("COALESCE(SUM(hit_count), 0)").
		Scan(&stats.TotalHits).Error
	if err != nil {
		return Stats{}, core.WrapError(core.ErrStoreFailed, err)
	}
	return stats, nil
}

// Purge deletes entries created before the cutoff.
func (s *GormStore) Purge(ctx context.Context, olderThan time.Time) (int64, error) {
	tx := s.db.WithContext(ctx)
	if olderThan.IsZero() {
		tx = tx.Where("1 = 1")
	} else {
		tx = tx.Where("created_at < ?", olderThan)
	}
	res := tx.Delete(&Entry{})
	if res.Error != nil {
		return 0, core.WrapError(core.ErrStoreFailed, res.Error)
	}
	return res.RowsAffected, nil
}
