// internal/archive/archive.go
package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/recallai/recall/internal/calllog"
)

// Storage is a cold-storage backend for archived call log batches.
type Storage interface {
	// Write stores data at the given path
	Write(ctx context.Context, path string, data []byte) error

	// Read retrieves data from the given path
	Read(ctx context.Context, path string) ([]byte, error)

	// List returns all paths matching the prefix
	List(ctx context.Context, prefix string) ([]string, error)
}

// Archiver writes pruned call log entries to cold storage as
// JSON-lines batches keyed by date.
type Archiver struct {
	storage Storage
}

// NewArchiver creates an archiver over a storage backend.
func NewArchiver(storage Storage) *Archiver {
	return &Archiver{storage: storage}
}

// batchPath builds the object path for a batch written at ts.
func batchPath(ts time.Time) string {
	return fmt.Sprintf("calllog/%s/%s.jsonl", ts.UTC().Format("2006/01/02"), ts.UTC().Format("150405"))
}

// ArchiveEntries writes the entries as one JSON-lines batch and
// returns the path written. An empty slice writes nothing.
func (a *Archiver) ArchiveEntries(ctx context.Context, entries []calllog.Entry, ts time.Time) (string, error) {
	if len(entries) == 0 {
		return "", nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, entry := range entries {
		if err := enc.Encode(entry); err != nil {
			return "", fmt.Errorf("encoding call log entry %s: %w", entry.ID, err)
		}
	}

	path := batchPath(ts)
	if err := a.storage.Write(ctx, path, buf.Bytes()); err != nil {
		return "", fmt.Errorf("writing archive batch: %w", err)
	}
	return path, nil
}

// List returns the archived batch paths.
func (a *Archiver) List(ctx context.Context) ([]string, error) {
	return a.storage.List(ctx, "calllog/")
}

// ReadEntries loads one archived batch back.
func (a *Archiver) ReadEntries(ctx context.Context, path string) ([]calllog.Entry, error) {
	data, err := a.storage.Read(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("reading archive batch %s: %w", path, err)
	}

	var entries []calllog.Entry
	dec := json.NewDecoder(bytes.NewReader(data))
	for dec.More() {
		var entry calllog.Entry
		if err := dec.Decode(&entry); err != nil {
			return nil, fmt.Errorf("decoding archive batch %s: %w", path, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
