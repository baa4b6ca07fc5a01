package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var reindexRecreate bool

var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Rebuild the search index from the catalog",
	Long: `Walks the catalog in id order and upserts every record into the search index.
With --recreate the index definition is dropped and created again first,
which is required after the index schema changes.`,
	RunE: runReindex,
}

func init() {
	reindexCmd.Flags().BoolVar(&reindexRecreate, "recreate", false, "drop and recreate the index definition first")
	rootCmd.AddCommand(reindexCmd)
}

func runReindex(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx := cmd.Context()
	if cfg.Sync.TimeoutSec > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(cfg.Sync.TimeoutSec)*time.Second)
		defer cancel()
	}

	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	if !a.handle.Ready(ctx) {
		return fmt.Errorf("search index unavailable: %s", a.handle.Reason())
	}

	if reindexRecreate {
		if err := a.handle.Recreate(ctx); err != nil {
			return err //nolint:wrapcheck // already descriptive
		}
	}

	rep, err := a.sync.Reindex(ctx)
	if err != nil {
		return fmt.Errorf("reindex: %w", err)
	}
	cmd.Printf("scanned %d, indexed %d, failed %d in %s\n",
		rep.Scanned, rep.Indexed, rep.Failed, rep.Duration.Round(time.Millisecond))
	return nil
}
