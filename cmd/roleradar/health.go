package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roleradar/roleradar/internal/health"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check connectivity to every configured source",
	Long:  "Pings each source's homepage concurrently and reports reachability and latency.",
	RunE:  runHealth,
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

func runHealth(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Redirects are part of a normal homepage visit; only transport
	// failures count as offline.
	prober := health.NewProber(&http.Client{}, logger)
	results := prober.ProbeAll(ctx, cfg.Sources)

	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println(headerStyle.Render("Source health"))
	fmt.Printf("%-16s %-8s %10s   %s\n", "Source", "Status", "Latency", "Note")
	fmt.Println(dimStyle.Render(strings.Repeat("─", 56)))
	for _, name := range names {
		h := results[name]
		status := errStyle.Render("offline")
		if h.Online {
			status = okStyle.Render("online")
		}
		fmt.Printf("%-16s %-8s %8dms   %s\n", name, status, h.LatencyMS, h.Note)
	}
	return nil
}
