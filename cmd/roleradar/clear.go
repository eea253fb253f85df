package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var clearAll bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete stored jobs",
	Long:  "Deletes all stored jobs. Run history is kept unless --all is given.",
	RunE:  runClear,
}

func init() {
	clearCmd.Flags().BoolVar(&clearAll, "all", false, "also delete run history")
	rootCmd.AddCommand(clearCmd)
}

func runClear(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	sqlStore := openStore(cfg, logger)
	defer sqlStore.Close()

	if clearAll {
		if err := sqlStore.ClearAll(); err != nil {
			return fmt.Errorf("clearing store: %w", err)
		}
		fmt.Println("Cleared all jobs and run history.")
		return nil
	}

	if err := sqlStore.ClearJobs(); err != nil {
		return fmt.Errorf("clearing jobs: %w", err)
	}
	fmt.Println("Cleared all jobs.")
	return nil
}
