package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
)

// defaultSchedule is used when the config carries no schedule.
const defaultSchedule = "@every 6h"

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Scrape on a schedule until interrupted",
	Long:  "Runs one scrape immediately, then repeats on the configured cron schedule. Blocks until SIGINT/SIGTERM.",
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	schedule := cfg.Schedule
	if schedule == "" {
		schedule = defaultSchedule
	}

	sqlStore := openStore(cfg, logger)
	defer sqlStore.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	run := func() {
		if err := scrapeOnce(ctx, cfg, sqlStore, logger); err != nil && ctx.Err() == nil {
			logger.Error("scheduled scrape failed", "error", err)
		}
	}

	c := cron.New()
	if _, err := c.AddFunc(schedule, run); err != nil {
		logger.Error("invalid schedule", "schedule", schedule, "error", err)
		os.Exit(1)
	}

	logger.Info("watch started", "schedule", schedule)
	run()
	c.Start()

	<-ctx.Done()
	// Let an in-flight scheduled run finish before closing the store.
	<-c.Stop().Done()
	logger.Info("goodbye")
	return nil
}
