// internal/calllog/calllog.go
package calllog

import (
	"context"
	"fmt"
	"time"
)

// Status values for a call log entry.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// DefaultExcerptMaxLen bounds stored request/response excerpts (1KB).
const DefaultExcerptMaxLen = 1024

// Entry records one orchestrator invocation. Entries are append-only;
// nothing in the service updates or deletes them outside of archival.
type Entry struct {
	ID              string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt       time.Time `gorm:"index" json:"created_at"`
	Provider        string    `gorm:"index" json:"provider"`
	Model           string    `gorm:"index" json:"model"`
	RequestExcerpt  string    `gorm:"type:text" json:"request_excerpt,omitempty"`
	ResponseExcerpt string    `gorm:"type:text" json:"response_excerpt,omitempty"`
	Status          string    `gorm:"index" json:"status"`
	ErrorMessage    string    `gorm:"type:text" json:"error_message,omitempty"`
	DurationMS      int64     `json:"duration_ms"`
	Cached          bool      `json:"cached"`
	InputTokens     int       `json:"input_tokens,omitempty"`
	OutputTokens    int       `json:"output_tokens,omitempty"`
}

// TableName sets the table name for GORM.
func (Entry) TableName() string { return "call_log_entries" }

// Stats holds aggregated call log counters.
type Stats struct {
	Total     int64 `json:"total"`
	Successes int64 `json:"successes"`
	Errors    int64 `json:"errors"`
	CacheHits int64 `json:"cache_hits"`
}

// Recorder persists call log entries. The orchestrator treats Record
// as fire-and-forget: an error is logged, never propagated.
type Recorder interface {
	Record(ctx context.Context, entry Entry) error
}

// Truncate shortens long prompt or response text for log storage.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = DefaultExcerptMaxLen
	}
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + fmt.Sprintf("... [truncated, %d bytes total]", len(s))
}
