// internal/cache/gorm_test.go
package cache

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testStore(t *testing.T) *GormStore {
	t.Helper()

	path := filepath.Join(t.TempDir(), "cache.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Entry{}))

	return NewGormStore(db)
}

func TestGormStore_PutLookup(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	fp := Fingerprint("openai", "gpt-4o", 0.2, "sys", "Hello")

	got, err := s.Lookup(ctx, fp)
	require.NoError(t, err)
	require.Nil(t, got)

	err = s.Put(ctx, Entry{
		Fingerprint:  fp,
		SystemPrompt: "sys",
		UserPrompt:   "Hello",
		Response:     "Hi there",
		Provider:     "openai",
		Model:        "gpt-4o",
		Temperature:  0.2,
		TokensUsed:   10,
		CreatedAt:    time.Now().UTC(),
	})
	require.NoError(t, err)

	got, err = s.Lookup(ctx, fp)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "Hi there", got.Response)
	require.Equal(t, "openai", got.Provider)
	require.EqualValues(t, 0, got.HitCount)
}

func TestGormStore_PutRace_LastWriteWins(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	fp := "same-fingerprint"
	require.NoError(t, s.Put(ctx, Entry{Fingerprint: fp, UserPrompt: "u", Response: "first"}))
	require.NoError(t, s.Put(ctx, Entry{Fingerprint: fp, UserPrompt: "u", Response: "second"}))

	got, err := s.Lookup(ctx, fp)
	require.NoError(t, err)
	require.Equal(t, "second", got.Response)

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, stats.Entries)
}

func TestGormStore_RecordHit(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, Entry{Fingerprint: "fp", UserPrompt: "u"}))

	require.NoError(t, s.RecordHit(ctx, "fp"))
	require.NoError(t, s.RecordHit(ctx, "fp"))
	require.NoError(t, s.RecordHit(ctx, "missing"))

	got, err := s.Lookup(ctx, "fp")
	require.NoError(t, err)
	require.EqualValues(t, 2, got.HitCount)

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 2, stats.TotalHits)
}

func TestGormStore_Purge(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	now := time.Now().UTC()
	require.NoError(t, s.Put(ctx, Entry{Fingerprint: "old", UserPrompt: "u", CreatedAt: now.Add(-48 * time.Hour)}))
	require.NoError(t, s.Put(ctx, Entry{Fingerprint: "recent", UserPrompt: "u", CreatedAt: now}))

	removed, err := s.Purge(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	require.EqualValues(t, 1, removed)

	got, err := s.Lookup(ctx, "recent")
	require.NoError(t, err)
	require.NotNil(t, got)

	removed, err = s.Purge(ctx, time.Time{})
	require.NoError(t, err)
	require.EqualValues(t, 1, removed)
}
