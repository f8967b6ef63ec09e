package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hzerrad/reminderd/internal/cronx"
	"github.com/hzerrad/reminderd/internal/human"
	"github.com/spf13/cobra"
)

// NextCommand wraps cobra.Command with next-specific functionality
type NextCommand struct {
	*cobra.Command
	count     int
	json      bool
	configDir string
}

// NextRun represents a single scheduled run time
type NextRun struct {
	Number    int    `json:"number"`
	Timestamp string `json:"timestamp"`
	Relative  string `json:"relative"`
}

// NextResult represents the complete output for the next command
type NextResult struct {
	Name        string    `json:"name"`
	Expression  string    `json:"expression"`
	Description string    `json:"description"`
	Timezone    string    `json:"timezone"`
	NextRuns    []NextRun `json:"next_runs"`
}

func init() {
	rootCmd.AddCommand(newNextCommand().Command)
}

// newNextCommand creates a fresh next command instance for testing
// This avoids state pollution between tests by creating isolated command instances
func newNextCommand() *NextCommand {
	nc := &NextCommand{}
	nc.Command = &cobra.Command{
		Args:  cobra.ExactArgs(1),
		RunE:  nc.runNext,
		Use:   "next <reminder-name>",
		Short: "Show the next scheduled fire times for a reminder",
		Long: `Calculate and display the next scheduled fire times for a reminder in the
configured catalogue.

This command helps you understand when a reminder will actually fire, showing
exact timestamps; the --json output also carries relative times (e.g., "in 2 hours").

Examples:
  reminderd next water_break                # Next 10 fires (default)
  reminderd next stretch_break --count 5     # Next 5 fires
  reminderd next eye_rest -c 3               # Next 3 fires (short flag)
  reminderd next water_break --json          # JSON output`,
	}

	nc.Command.Flags().IntVarP(&nc.count, "count", "c", DefaultNextCount, "Number of fires to show (1-100)")
	nc.Command.Flags().BoolVarP(&nc.json, "json", "j", false, "Output as JSON")
	nc.Command.Flags().StringVar(&nc.configDir, "config", "", "Reminder configuration directory (defaults to $HOME/.config/reminder-system)")

	return nc
}

func (nc *NextCommand) runNext(_ *cobra.Command, args []string) error {
	name := args[0]

	if nc.count < MinNextCount {
		return fmt.Errorf("count must be at least %d", MinNextCount)
	}
	if nc.count > MaxNextCount {
		return fmt.Errorf("count must be at most %d", MaxNextCount)
	}

	cat, warnings, err := loadCatalogue(nc.configDir)
	if err != nil {
		return fmt.Errorf("failed to load reminder catalogue: %w", err)
	}
	for _, w := range warnings {
		fmt.Fprintln(nc.ErrOrStderr(), w.String())
	}

	def, ok := cat.Get(name)
	if !ok {
		return fmt.Errorf("no reminder named %q in the catalogue", name)
	}

	now := time.Now()
	times, err := cronx.NextN(def.Schedule, now, nc.count)
	if err != nil {
		return fmt.Errorf("failed to calculate next fires: %w", err)
	}

	humanizer := human.NewHumanizer()
	description := humanizer.Humanize(def.Schedule)

	if nc.json {
		return nc.outputNextJSON(name, def.Schedule.Original, description, times, now)
	}

	return nc.outputNextText(name, def.Schedule.Original, description, times)
}

func (nc *NextCommand) outputNextText(name, expression, description string, times []time.Time) error {
	// Header with count
	runWord := "fires"
	if len(times) == 1 {
		runWord = "fire"
	}
	_, _ = fmt.Fprintf(nc.OutOrStdout(), "Next %d %s for %q (%s, %s):\n\n",
		len(times), runWord, name, expression, description)

	// List each run with timestamp
	for i, t := range times {
		_, _ = fmt.Fprintf(nc.OutOrStdout(), "%d. %s\n",
			i+1, t.Format("2006-01-02 15:04:05 MST"))
	}

	return nil
}

func (nc *NextCommand) outputNextJSON(name, expression, description string, times []time.Time, now time.Time) error {
	// Build next runs array
	runs := make([]NextRun, len(times))
	for i, t := range times {
		runs[i] = NextRun{
			Number:    i + 1,
			Timestamp: t.Format(time.RFC3339),
			Relative:  formatRelativeTime(now, t),
		}
	}

	// Build result structure
	result := NextResult{
		Name:        name,
		Expression:  expression,
		Description: description,
		Timezone:    times[0].Location().String(),
		NextRuns:    runs,
	}

	// Encode as JSON with indentation
	encoder := json.NewEncoder(nc.OutOrStdout())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}

// formatRelativeTime converts a duration between two times to a human-readable format.
func formatRelativeTime(from, to time.Time) string {
	duration := to.Sub(from)

	// Less than a minute
	if duration < time.Minute {
		return "in less than a minute"
	}

	// Minutes (less than an hour)
	if duration < time.Hour {
		minutes := int(duration.Minutes())
		if minutes == 1 {
			return "in 1 minute"
		}
		return fmt.Sprintf("in %d minutes", minutes)
	}

	// Hours (less than a day)
	if duration < 24*time.Hour {
		hours := int(duration.Hours())
		if hours == 1 {
			return "in 1 hour"
		}
		return fmt.Sprintf("in %d hours", hours)
	}

	// Days
	days := int(duration.Hours() / 24)
	if days == 1 {
		return "in 1 day"
	}
	return fmt.Sprintf("in %d days", days)
}
