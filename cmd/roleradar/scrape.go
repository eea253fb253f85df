package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roleradar/roleradar/internal/config"
	"github.com/roleradar/roleradar/internal/match"
	"github.com/roleradar/roleradar/internal/search"
	"github.com/roleradar/roleradar/internal/store"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Run one scrape across all configured sources",
	Long:  "Queries every configured source for every role, keeps the postings that match, and saves them. Already-seen URLs are ignored.",
	RunE:  runScrape,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("config loaded",
		"roles", cfg.Roles,
		"location", cfg.Location,
		"match_mode", string(cfg.MatchMode),
		"sources", cfg.Sources,
	)

	sqlStore := openStore(cfg, logger)
	defer sqlStore.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return scrapeOnce(ctx, cfg, sqlStore, logger)
}

// scrapeOnce runs the full pipeline: scrape, match, persist, record.
func scrapeOnce(ctx context.Context, cfg *config.Config, sqlStore *store.SQLiteStore, logger *slog.Logger) error {
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	orch := buildOrchestrator(cfg, httpClient, logger)

	raw, outcomes, err := orch.Run(ctx, cfg.Roles, cfg.Location)
	if err != nil {
		// Cancellation mid-run: nothing is saved, the previous state stands.
		logger.Warn("scrape aborted, nothing saved", "error", err)
		return err
	}

	matched := match.Filter(raw, cfg.Roles, cfg.MatchMode)
	found, fresh, err := sqlStore.UpsertJobs(matched)
	if err != nil {
		return fmt.Errorf("saving jobs: %w", err)
	}
	if err := sqlStore.RecordRun(cfg.Roles, found, fresh); err != nil {
		return fmt.Errorf("recording run: %w", err)
	}

	printRunReport(outcomes, len(raw), found, fresh)
	return nil
}

func printRunReport(outcomes []search.Outcome, scraped, matched, fresh int) {
	fmt.Println()
	fmt.Println(headerStyle.Render("Scrape run"))
	fmt.Printf("%-16s %8s   %s\n", "Source", "Jobs", "Note")
	fmt.Println(dimStyle.Render(strings.Repeat("─", 48)))

	for _, out := range outcomes {
		note := okStyle.Render("ok")
		if out.Err != nil {
			note = errStyle.Render(out.Describe())
		}
		fmt.Printf("%-16s %8d   %s\n", out.Source, out.JobsFound, note)
	}

	fmt.Println(dimStyle.Render(strings.Repeat("─", 48)))
	fmt.Printf("%d scraped, %d matched, %s\n",
		scraped, matched, okStyle.Render(fmt.Sprintf("%d new", fresh)))
}
