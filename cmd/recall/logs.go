package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/recallai/recall/internal/archive"
	"github.com/recallai/recall/internal/calllog"
	"github.com/recallai/recall/internal/config"
	"github.com/recallai/recall/internal/logger"
	"github.com/recallai/recall/internal/store"
)

var logsLimit int

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Inspect and archive the call log",
}

var logsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show recent call log entries",
	RunE:  runLogsList,
}

var logsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregated call log counters",
	RunE:  runLogsStats,
}

var logsArchiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Move entries past retention into cold storage",
	RunE:  runLogsArchive,
}

func init() {
	logsListCmd.Flags().IntVar(&logsLimit, "limit", 20, "maximum entries to show")
	logsCmd.AddCommand(logsListCmd)
	logsCmd.AddCommand(logsStatsCmd)
	logsCmd.AddCommand(logsArchiveCmd)
	rootCmd.AddCommand(logsCmd)
}

func openRecorder(log *zap.Logger) (*config.Config, *calllog.GormRecorder, error) {
	cfg, err := loadConfig(log)
	if err != nil {
		return nil, nil, err
	}
	db, err := store.Open(cfg.Store.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening store: %w", err)
	}
	return cfg, calllog.NewGormRecorder(db), nil
}

func runLogsList(cmd *cobra.Command, args []string) error {
	log := logger.Must(debug)
	defer log.Sync()

	_, recorder, err := openRecorder(log)
	if err != nil {
		return err
	}

	entries, err := recorder.List(cmd.Context(), logsLimit)
	if err != nil {
		return err
	}

	for _, e := range entries {
		line := fmt.Sprintf("%s  %-8s %s/%s  %dms",
			e.CreatedAt.Format(time.RFC3339), e.Status, e.Provider, e.Model, e.DurationMS)
		if e.Cached {
			line += "  (cached)"
		}
		if e.ErrorMessage != "" {
			line += "  " + e.ErrorMessage
		}
		fmt.Println(line)
	}
	fmt.Printf("\n%d entries\n", len(entries))
	return nil
}

func runLogsStats(cmd *cobra.Command, args []string) error {
	log := logger.Must(debug)
	defer log.Sync()

	_, recorder, err := openRecorder(log)
	if err != nil {
		return err
	}

	stats, err := recorder.Stats(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("Total:      %d\n", stats.Total)
	fmt.Printf("Successes:  %d\n", stats.Successes)
	fmt.Printf("Errors:     %d\n", stats.Errors)
	fmt.Printf("Cache hits: %d\n", stats.CacheHits)
	return nil
}

// archiveStorage builds the configured cold storage backend.
func archiveStorage(cfg *config.Config) (archive.Storage, error) {
	switch cfg.Archive.Type {
	case "s3":
		return archive.NewS3(archive.S3Config{
			Bucket:    cfg.Archive.S3.Bucket,
			Endpoint:  cfg.Archive.S3.Endpoint,
			Region:    cfg.Archive.S3.Region,
			AccessKey: cfg.Archive.S3.AccessKey,
			SecretKey: cfg.Archive.S3.SecretKey,
			Prefix:    cfg.Archive.S3.Prefix,
		})
	default:
		return archive.NewLocalFS(cfg.Archive.Path)
	}
}

func runLogsArchive(cmd *cobra.Command, args []string) error {
	log := logger.Must(debug)
	defer log.Sync()

	cfg, recorder, err := openRecorder(log)
	if err != nil {
		return err
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -cfg.CallLog.RetentionDays)
	entries, err := recorder.ListOlderThan(cmd.Context(), cutoff)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No entries past retention")
		return nil
	}

	storage, err := archiveStorage(cfg)
	if err != nil {
		return err
	}

	path, err := archive.NewArchiver(storage).ArchiveEntries(cmd.Context(), entries, time.Now().UTC())
	if err != nil {
		return err
	}

	// Entries leave the hot store only once the batch is written.
	if _, err := recorder.DeleteOlderThan(cmd.Context(), cutoff); err != nil {
		return err
	}

	log.Info("archived call log entries",
		zap.Int("count", len(entries)),
		zap.String("batch", path),
	)
	fmt.Printf("Archived %d entries to %s\n", len(entries), path)
	return nil
}
