// internal/cache/cache.go
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Entry is one cached provider response. Rows are immutable after
// creation except for the hit counter, and are never expired
// automatically; eviction is an administrative action.
type Entry struct {
	Fingerprint  string `gorm:"primaryKey;size:64"`
	SystemPrompt string `gorm:"type:text"`
	UserPrompt   string `gorm:"type:text;not null"`
	Response     string `gorm:"type:text"`
	Provider     string `gorm:"index"`
	Model        string `gorm:"index"`
	Temperature  float64
	TokensUsed   int
	HitCount     int64
	CreatedAt    time.Time
}

// TableName sets the table name for GORM.
func (Entry) TableName() string { return "cached_responses" }

// Stats reports cache table counters.
type Stats struct {
	Entries   int64 `json:"entries"`
	TotalHits int64 `json:"total_hits"`
}

// Store persists cached responses keyed by fingerprint.
type Store interface {
	// Lookup returns the entry for the fingerprint, or nil if absent.
	Lookup(ctx context.Context, fp string) (*Entry, error)

	// Put creates the entry. A concurrent write to the same
	// fingerprint is benign; last write wins.
	Put(ctx context.Context, entry Entry) error

	// RecordHit increments the hit counter. Best-effort: callers
	// must not fail their request on an error.
	RecordHit(ctx context.Context, fp string) error

	// Stats returns table counters.
	Stats(ctx context.Context) (Stats, error)

	// Purge deletes entries created before the cutoff and returns the
	// number removed. A zero cutoff removes everything.
	Purge(ctx context.Context, olderThan time.Time) (int64, error)
}

// Fingerprint computes the deterministic cache key for a resolved
// request. Temperature is fixed to three decimals so float formatting
// can never split logically identical requests.
func Fingerprint(providerName, model string, temperature float64, systemPrompt, userPrompt string) string {
	payload := fmt.Sprintf("%s|%s|%.3f|%s|%s", providerName, model, temperature, systemPrompt, userPrompt)
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}
