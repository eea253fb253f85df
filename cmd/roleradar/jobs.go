package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	jobsLimit  int
	jobsSource string
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List recently found jobs",
	Long:  "Prints stored jobs, newest first. Filter to one source with --source.",
	RunE:  runJobs,
}

func init() {
	jobsCmd.Flags().IntVarP(&jobsLimit, "limit", "n", 20, "maximum number of jobs to show")
	jobsCmd.Flags().StringVarP(&jobsSource, "source", "s", "", "only show jobs from this source")
	rootCmd.AddCommand(jobsCmd)
}

func runJobs(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	sqlStore := openStore(cfg, logger)
	defer sqlStore.Close()

	jobs, err := sqlStore.Recent(jobsLimit, jobsSource)
	if err != nil {
		return fmt.Errorf("listing jobs: %w", err)
	}

	if lastRun, err := sqlStore.LastRun(); err == nil && lastRun != nil {
		fmt.Println(dimStyle.Render(fmt.Sprintf("last run %s · %d found · %d new",
			lastRun.RunAt.Format("2006-01-02 15:04"), lastRun.JobsFound, lastRun.JobsNew)))
	}

	if len(jobs) == 0 {
		if jobsSource != "" {
			sources, err := sqlStore.AllSources()
			if err == nil && len(sources) > 0 {
				fmt.Printf("No jobs from %q. Stored sources: %s\n", jobsSource, strings.Join(sources, ", "))
				return nil
			}
		}
		fmt.Println("No jobs stored yet. Run `roleradar scrape` first.")
		return nil
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("%d jobs", len(jobs))))
	for _, j := range jobs {
		fmt.Printf("%s — %s\n", j.Title, j.Company)
		details := []string{j.Source, j.Location}
		if j.Salary != "" {
			details = append(details, j.Salary)
		}
		details = append(details, "first seen "+j.FirstSeen.Format("2006-01-02"))
		fmt.Println(dimStyle.Render("  " + strings.Join(details, " · ")))
		if j.URL != "" {
			fmt.Println(dimStyle.Render("  " + j.URL))
		}
	}
	return nil
}
