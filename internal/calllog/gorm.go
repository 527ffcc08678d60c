// internal/calllog/gorm.go
package calllog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/recallai/recall/internal/core"
	"gorm.io/gorm"
)

// GormRecorder persists call log entries in the relational store.
type GormRecorder struct {
	db *gorm.DB
}

// NewGormRecorder creates a recorder over an opened database handle.
func NewGormRecorder(db *gorm.DB) *GormRecorder {
	return &GormRecorder{db: db}
}

// Record appends one entry. Missing ID and timestamp are filled in.
func (r *GormRecorder) Record(ctx context.Context, entry Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	if err := r.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return core.WrapError(core.ErrStoreFailed, err)
	}
	return nil
}

// List returns the most recent entries, newest first.
func (r *GormRecorder) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	var entries []Entry
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, core.WrapError(core.ErrStoreFailed, err)
	}
	return entries, nil
}

// Stats returns aggregated counters over the call log.
func (r *GormRecorder) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	if err := r.db.WithContext(ctx).Model(&Entry{}).Count(&stats.Total).Error; err != nil {
		return Stats{}, core.WrapError(core.ErrStoreFailed, err)
	}
	err := r.db.WithContext(ctx).Model(&Entry{}).
		Where("status = ?", StatusSuccess).
		Count(&stats.Successes).Error
	if err != nil {
		return Stats{}, core.WrapError(core.ErrStoreFailed, err)
	}
	stats.Errors = stats.Total - stats.Successes
	err = r.db.WithContext(ctx).Model(&Entry{}).
		Where("cached = ?", true).
		Count(&stats.CacheHits).Error
	if err != nil {
		return Stats{}, core.WrapError(core.ErrStoreFailed, err)
	}
	return stats, nil
}

// ListOlderThan returns entries past the cutoff, oldest first.
// Callers archive these before deleting them.
func (r *GormRecorder) ListOlderThan(ctx context.Context, olderThan time.Time) ([]Entry, error) {
	var entries []Entry
	err := r.db.WithContext(ctx).
		Where("created_at < ?", olderThan).
		Order("created_at ASC").
		Find(&entries).Error
	if err != nil {
		return nil, core.WrapError(core.ErrStoreFailed, err)
	}
	return entries, nil
}

// DeleteOlderThan removes entries past the cutoff and reports how many
// went. Run only after the entries are safely archived.
func (r *GormRecorder) DeleteOlderThan(ctx context.Context, olderThan time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("created_at < ?", olderThan).
		Delete(&Entry{})
	if res.Error != nil {
		return 0, core.WrapError(core.ErrStoreFailed, res.Error)
	}
	return res.RowsAffected, nil
}
