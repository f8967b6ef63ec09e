package cmd

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hzerrad/reminderd/internal/stats"
)

type StatsCommand struct {
	*cobra.Command
	configDir string
	json      bool
	verbose   bool
	top       int
	window    time.Duration
}

func newStatsCommand() *StatsCommand {
	sc := &StatsCommand{}
	sc.Command = &cobra.Command{
		Use:   "stats",
		Short: "Calculate and display reminder catalogue statistics",
		Long: `Calculate and display statistics about the configured reminder catalogue:
  - Run frequency metrics (runs per day, per hour) per reminder
  - Hour distribution histogram (with --verbose)
  - Most frequent reminders
  - Collision analysis (how often reminders fire together, with --verbose)

Examples:
  reminderd stats
  reminderd stats --config /path/to/config --json
  reminderd stats --top 10 --verbose`,
		RunE: sc.runStats,
		Args: cobra.NoArgs,
	}

	sc.Flags().StringVar(&sc.configDir, "config", "", "Reminder configuration directory (defaults to $HOME/.config/reminder-system)")
	sc.Flags().BoolVarP(&sc.json, "json", "j", false, "Output in JSON format")
	sc.Flags().BoolVarP(&sc.verbose, "verbose", "v", false, "Show detailed statistics")
	sc.Flags().IntVar(&sc.top, "top", DefaultStatsTopN, "Number of top items to show")
	sc.Flags().DurationVar(&sc.window, "window", 24*time.Hour, "Time window to analyze for reminder collisions")

	return sc
}

func init() {
	rootCmd.AddCommand(newStatsCommand().Command)
}

func (sc *StatsCommand) runStats(_ *cobra.Command, _ []string) error {
	cat, warnings, err := loadCatalogue(sc.configDir)
	if err != nil {
		return fmt.Errorf("failed to load reminder catalogue: %w", err)
	}
	for _, w := range warnings {
		fmt.Fprintln(sc.ErrOrStderr(), w.String())
	}

	calculator := stats.NewCalculator()
	metrics, err := calculator.CalculateMetrics(cat.Reminders, sc.window)
	if err != nil {
		return fmt.Errorf("failed to calculate metrics: %w", err)
	}

	if sc.json {
		return sc.outputJSON(metrics)
	}
	return sc.outputText(metrics, calculator, len(cat.Reminders))
}

func (sc *StatsCommand) outputJSON(metrics *stats.Metrics) error {
	encoder := json.NewEncoder(sc.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(metrics)
}

func (sc *StatsCommand) outputText(metrics *stats.Metrics, calculator *stats.Calculator, total int) error {
	sc.Println("Reminder Catalogue Statistics")
	sc.Println(strings.Repeat("=", 50))

	sc.Printf("\nSummary:\n")
	sc.Printf("  Total Reminders: %d\n", total)
	sc.Printf("  Total Runs per Day: %d\n", metrics.TotalRunsPerDay)
	sc.Printf("  Total Runs per Hour: %d\n", metrics.TotalRunsPerHour)

	mostFrequent := calculator.IdentifyMostFrequent(metrics.Frequencies, sc.top)
	if len(mostFrequent) > 0 {
		sc.Printf("\nTop %d Most Frequent Reminders:\n", sc.top)
		for i, freq := range mostFrequent {
			sc.Printf("  %d. %s (%d runs/day, %d runs/hour)\n",
				i+1, freq.Name, freq.RunsPerDay, freq.RunsPerHour)
		}
	}

	if sc.verbose {
		sc.Printf("\n%s\n", stats.GenerateHistogram(metrics.HourHistogram, stats.DefaultHistogramWidth))
	}

	if sc.verbose && len(metrics.Collisions.BusiestHours) > 0 {
		sc.Printf("\nBusiest Hours:\n")
		for i, hour := range metrics.Collisions.BusiestHours {
			if i >= sc.top {
				break
			}
			sc.Printf("  %02d:00 - %d concurrent fires\n", hour.Hour, hour.RunCount)
		}
		sc.Printf("\nCollision Frequency: %.2f%%\n", metrics.Collisions.CollisionFrequency)
		sc.Printf("Max Concurrent Reminders: %d\n", metrics.Collisions.MaxConcurrent)
	}

	return nil
}
