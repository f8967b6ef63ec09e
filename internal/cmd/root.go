package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	locale  string // Global locale flag for symbol parsing
)

var rootCmd = &cobra.Command{
	Use:   "reminderd",
	Short: "reminderd - a desktop reminder daemon",
	Long: `reminderd is a desktop reminder daemon: it loads a declarative TOML
catalogue of recurring reminders, schedules them with cron expressions, and
presents them one at a time as they come due, queueing overflow until the
user responds.

Run "reminderd run" to start the daemon, or use check/list/next to inspect
the configured catalogue and its cron expressions ahead of time.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	Run: func(cmd *cobra.Command, args []string) {
		// Default behavior when no subcommand is specified
		_ = cmd.Help()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags - these apply to all subcommands
	rootCmd.PersistentFlags().StringVar(&locale, "locale", "en", "Locale for parsing day/month names (e.g., en, fr, es)")
}

// GetLocale returns the current locale setting
func GetLocale() string {
	if locale == "" {
		return "en" // Default to English
	}
	return locale
}

// SetOutput sets the output and error writers for the root command
func SetOutput(out, err interface{}) {
	if w, ok := out.(interface{ Write([]byte) (int, error) }); ok {
		rootCmd.SetOut(w)
	}
	if w, ok := err.(interface{ Write([]byte) (int, error) }); ok {
		rootCmd.SetErr(w)
	}
}
