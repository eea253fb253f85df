package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/roleradar/roleradar/internal/adapter"
	"github.com/roleradar/roleradar/internal/config"
	"github.com/roleradar/roleradar/internal/ratelimit"
	"github.com/roleradar/roleradar/internal/search"
	"github.com/roleradar/roleradar/internal/store"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "roleradar",
	Short: "Job radar for Australian boards",
	Long:  "RoleRadar scrapes Seek, Indeed, Jora, LinkedIn, GradConnection and Adzuna for your target roles and keeps what matches in a local database.",
	// Default to `scrape` so `roleradar` with no args runs one pass.
	RunE: runScrape,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: ROLERADAR_CONFIG env var or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > ROLERADAR_CONFIG env var > "./config.yaml"
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		if env := os.Getenv("ROLERADAR_CONFIG"); env != "" {
			path = env
		} else {
			path = "config.yaml"
		}
	}
	return config.Load(path)
}

func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

func openStore(cfg *config.Config, logger *slog.Logger) *store.SQLiteStore {
	s, err := store.NewSQLiteStore(cfg.Store.Path)
	if err != nil {
		logger.Error("failed to open store", "path", cfg.Store.Path, "error", err)
		os.Exit(1)
	}
	return s
}

// buildOrchestrator registers one adapter per configured source, in
// config order.
func buildOrchestrator(cfg *config.Config, httpClient *http.Client, logger *slog.Logger) *search.Orchestrator {
	limiter := ratelimit.New(cfg.RateLimit.MinDelay, cfg.RateLimit.SourceOverrides)
	o := search.NewOrchestrator(limiter, logger)

	for _, source := range cfg.Sources {
		switch source {
		case adapter.SourceSeek:
			o.Add(source, adapter.NewSeekAdapter(httpClient, cfg.Location, logger))
		case adapter.SourceIndeed:
			o.Add(source, adapter.NewIndeedAdapter(httpClient, cfg.Location, logger))
		case adapter.SourceJora:
			o.Add(source, adapter.NewJoraAdapter(httpClient, cfg.Location, logger))
		case adapter.SourceCareerOne:
			o.Add(source, adapter.NewCareerOneAdapter(logger))
		case adapter.SourceLinkedIn:
			o.Add(source, adapter.NewLinkedInAdapter(httpClient, cfg.Location, logger))
		case adapter.SourceGradConnection:
			o.Add(source, adapter.NewGradConnectionAdapter(httpClient, cfg.Location, logger))
		case adapter.SourceAdzuna:
			o.Add(source, adapter.NewAdzunaAdapter(
				cfg.Adzuna.AppID, cfg.Adzuna.AppKey, cfg.HTTPTimeout, cfg.Location, logger))
		}
	}
	return o
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("42"))

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)
