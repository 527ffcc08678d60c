package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/recallai/recall/internal/cache"
	"github.com/recallai/recall/internal/logger"
	"github.com/recallai/recall/internal/store"
)

var purgeOlderThan time.Duration

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and manage the response cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cache entry and hit counters",
	RunE:  runCacheStats,
}

var cachePurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete cached responses",
	RunE:  runCachePurge,
}

func init() {
	cachePurgeCmd.Flags().DurationVar(&purgeOlderThan, "older-than", 0,
		"only purge entries older than this duration (e.g. 720h); 0 purges everything")
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cachePurgeCmd)
	rootCmd.AddCommand(cacheCmd)
}

func openCacheStore() (*cache.GormStore, error) {
	log := logger.Must(debug)
	defer log.Sync()

	cfg, err := loadConfig(log)
	if err != nil {
		return nil, err
	}
	db, err := store.Open(cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	return cache.NewGormStore(db), nil
}

func runCacheStats(cmd *cobra.Command, args []string) error {
	cacheStore, err := openCacheStore()
	if err != nil {
		return err
	}

	stats, err := cacheStore.Stats(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("Entries:    %d\n", stats.Entries)
	fmt.Printf("Total hits: %d\n", stats.TotalHits)
	return nil
}

func runCachePurge(cmd *cobra.Command, args []string) error {
	cacheStore, err := openCacheStore()
	if err != nil {
		return err
	}

	var cutoff time.Time
	if purgeOlderThan > 0 {
		cutoff = time.Now().UTC().Add(-purgeOlderThan)
	}

	purged, err := cacheStore.Purge(cmd.Context(), cutoff)
	if err != nil {
		return err
	}

	fmt.Printf("Purged %d cached responses\n", purged)
	return nil
}
