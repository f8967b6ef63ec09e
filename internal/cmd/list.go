package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/hzerrad/reminderd/internal/crontab"
	"github.com/hzerrad/reminderd/internal/cronx"
	"github.com/hzerrad/reminderd/internal/human"
	"github.com/hzerrad/reminderd/internal/reminder"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	listFile      string
	listAll       bool
	listJSON      bool
	listStdin     bool
	listConfigDir string
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalogue reminders, or cron jobs from a crontab file",
	Long: `Display the configured reminder catalogue, or cron jobs from a crontab file or stdin.

Examples:
  reminderd list                        # List every reminder in the configured catalogue
  reminderd list --file /etc/crontab    # List jobs from a crontab file
  reminderd list --all                  # Include comments and environment variables
  reminderd list --json                 # Output as JSON
  reminderd list --file sample.cron --json > jobs.json`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listFile, "file", "f", "", "Path to crontab file (defaults to the reminder catalogue if not specified)")
	listCmd.Flags().BoolVarP(&listAll, "all", "a", false, "Show all entries including comments and environment variables")
	listCmd.Flags().BoolVarP(&listJSON, "json", "j", false, "Output in JSON format")
	listCmd.Flags().BoolVar(&listStdin, "stdin", false, "Read crontab from standard input (automatic if stdin is not a terminal)")
	listCmd.Flags().StringVar(&listConfigDir, "config", "", "Reminder configuration directory (defaults to $HOME/.config/reminder-system)")
}

// newListCommand creates a new list command for testing
func newListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalogue reminders, or cron jobs from a crontab file",
		Long: `Display the configured reminder catalogue, or cron jobs from a crontab file or stdin.

Examples:
  reminderd list                        # List every reminder in the configured catalogue
  reminderd list --file /etc/crontab    # List jobs from a crontab file
  reminderd list --all                  # Include comments and environment variables
  reminderd list --json                 # Output as JSON
  reminderd list --file sample.cron --json > jobs.json`,
		RunE: runList,
	}

	cmd.Flags().StringVarP(&listFile, "file", "f", "", "Path to crontab file (defaults to the reminder catalogue if not specified)")
	cmd.Flags().BoolVarP(&listAll, "all", "a", false, "Show all entries including comments and environment variables")
	cmd.Flags().BoolVarP(&listJSON, "json", "j", false, "Output in JSON format")
	cmd.Flags().BoolVar(&listStdin, "stdin", false, "Read crontab from standard input (automatic if stdin is not a terminal)")
	cmd.Flags().StringVar(&listConfigDir, "config", "", "Reminder configuration directory (defaults to $HOME/.config/reminder-system)")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	reader := crontab.NewReader()

	var jobs []*crontab.Job
	var entries []*crontab.Entry
	var err error

	// Priority: --file > --stdin > piped stdin > reminder catalogue
	if listFile != "" {
		if listAll {
			entries, err = reader.ParseFile(listFile)
		} else {
			jobs, err = reader.ReadFile(listFile)
		}
		if err != nil {
			return fmt.Errorf("failed to read crontab file %s: %w", listFile, err)
		}
	} else if listStdin {
		// Read from stdin
		if listAll {
			entries, err = reader.ParseStdin()
		} else {
			jobs, err = reader.ReadStdin()
		}
		if err != nil {
			return fmt.Errorf("failed to read crontab from stdin: %w", err)
		}
	} else {
		// Check if stdin is available (not a terminal)
		if isStdinAvailable() {
			// Read from stdin automatically
			if listAll {
				entries, err = reader.ParseStdin()
			} else {
				jobs, err = reader.ReadStdin()
			}
			if err != nil {
				return fmt.Errorf("failed to read crontab from stdin: %w", err)
			}
		} else {
			// Fall back to the reminder catalogue
			cat, warnings, loadErr := loadCatalogue(listConfigDir)
			if loadErr != nil {
				return fmt.Errorf("failed to load reminder catalogue: %w", loadErr)
			}
			for _, w := range warnings {
				fmt.Fprintln(os.Stderr, w.String())
			}
			return outputCatalogue(cmd, cat)
		}
	}

	if err != nil {
		return fmt.Errorf("failed to read crontab: %w", err)
	}

	// Handle --all mode
	if listAll && entries != nil {
		return outputAllEntries(cmd, entries)
	}

	// Handle empty job list
	if len(jobs) == 0 {
		if listJSON {
			return outputJSON(cmd, map[string]interface{}{"jobs": []interface{}{}})
		}
		cmd.Println("No cron jobs found")
		return nil
	}

	// Output results
	if listJSON {
		return outputJobsJSON(cmd, jobs)
	}

	return outputJobsTable(cmd, jobs)
}

func outputJobsJSON(cmd *cobra.Command, jobs []*crontab.Job) error {
	type jobOutput struct {
		LineNumber  int    `json:"lineNumber"`
		Expression  string `json:"expression"`
		Command     string `json:"command"`
		Comment     string `json:"comment,omitempty"`
		Description string `json:"description,omitempty"`
	}

	output := make([]jobOutput, 0, len(jobs))
	parser := cronx.NewParserWithLocale(GetLocale())

	for _, job := range jobs {
		jo := jobOutput{
			LineNumber: job.LineNumber,
			Expression: job.Expression,
			Command:    job.Command,
			Comment:    job.Comment,
		}

		// Try to parse and humanize the expression
		schedule, err := parser.Parse(job.Expression)
		if err == nil {
			humanizer := human.NewHumanizer()
			jo.Description = humanizer.Humanize(schedule)
		}

		output = append(output, jo)
	}

	return outputJSON(cmd, map[string]interface{}{
		"jobs":   output,
		"locale": GetLocale(),
	})
}

func outputAllEntries(cmd *cobra.Command, entries []*crontab.Entry) error {
	if listJSON {
		type entryOutput struct {
			LineNumber int    `json:"lineNumber"`
			Type       string `json:"type"`
			Raw        string `json:"raw"`
			Job        *struct {
				Expression string `json:"expression"`
				Command    string `json:"command"`
				Comment    string `json:"comment,omitempty"`
			} `json:"job,omitempty"`
		}

		output := make([]entryOutput, 0, len(entries))
		for _, entry := range entries {
			eo := entryOutput{
				LineNumber: entry.LineNumber,
				Type:       entryTypeString(entry.Type),
				Raw:        entry.Raw,
			}

			if entry.Type == crontab.EntryTypeJob && entry.Job != nil {
				eo.Job = &struct {
					Expression string `json:"expression"`
					Command    string `json:"command"`
					Comment    string `json:"comment,omitempty"`
				}{
					Expression: entry.Job.Expression,
					Command:    entry.Job.Command,
					Comment:    entry.Job.Comment,
				}
			}

			output = append(output, eo)
		}

		return outputJSON(cmd, map[string]interface{}{
			"entries": output,
			"locale":  GetLocale(),
		})
	}

	// Table output for all entries
	for _, entry := range entries {
		typeStr := entryTypeString(entry.Type)
		cmd.Printf("%-4d  %-10s  %s\n", entry.LineNumber, typeStr, entry.Raw)
	}

	return nil
}

func outputJobsTable(cmd *cobra.Command, jobs []*crontab.Job) error {
	parser := cronx.NewParserWithLocale(GetLocale())
	humanizer := human.NewHumanizer()

	// Print header
	cmd.Println("LINE  EXPRESSION        DESCRIPTION                          COMMAND")
	cmd.Println("────  ────────────────  ───────────────────────────────────  ────────────────────────")

	for _, job := range jobs {
		description := ""
		schedule, err := parser.Parse(job.Expression)
		if err == nil {
			description = humanizer.Humanize(schedule)
		} else {
			description = "(invalid)"
		}

		// Truncate long descriptions
		if len(description) > 36 {
			description = description[:33] + "..."
		}

		// Truncate long commands
		command := job.Command
		if len(command) > 40 {
			command = command[:37] + "..."
		}

		cmd.Printf("%-4d  %-16s  %-36s  %s\n", job.LineNumber, job.Expression, description, command)
	}

	return nil
}

// outputCatalogue prints every reminder in the catalogue in load order,
// grounded on outputJobsTable/outputJobsJSON's table/JSON duality above.
func outputCatalogue(cmd *cobra.Command, cat *reminder.Catalogue) error {
	humanizer := human.NewHumanizer()

	if listJSON {
		type reminderOutput struct {
			Name          string `json:"name"`
			Schedule      string `json:"schedule"`
			Description   string `json:"description"`
			Icon          string `json:"icon"`
			SnoozeSeconds int    `json:"snoozeSeconds"`
			Text          string `json:"text,omitempty"`
		}

		output := make([]reminderOutput, 0, len(cat.Reminders))
		for _, def := range cat.Reminders {
			output = append(output, reminderOutput{
				Name:          def.Name,
				Schedule:      def.Schedule.Original,
				Description:   humanizer.Humanize(def.Schedule),
				Icon:          def.IconPath,
				SnoozeSeconds: def.SnoozeSeconds,
				Text:          def.Text,
			})
		}

		return outputJSON(cmd, map[string]interface{}{"reminders": output})
	}

	if len(cat.Reminders) == 0 {
		cmd.Println("No reminders configured")
		return nil
	}

	cmd.Println("NAME                  SCHEDULE            DESCRIPTION                          SNOOZE")
	cmd.Println("────────────────────  ──────────────────  ───────────────────────────────────  ──────")

	for _, def := range cat.Reminders {
		description := humanizer.Humanize(def.Schedule)
		if len(description) > 36 {
			description = description[:33] + "..."
		}
		cmd.Printf("%-20s  %-18s  %-36s  %ds\n", def.Name, def.Schedule.Original, description, def.SnoozeSeconds)
	}

	return nil
}

func entryTypeString(t crontab.EntryType) string {
	switch t {
	case crontab.EntryTypeJob:
		return "JOB"
	case crontab.EntryTypeComment:
		return "COMMENT"
	case crontab.EntryTypeEnvVar:
		return "ENV"
	case crontab.EntryTypeEmpty:
		return "EMPTY"
	case crontab.EntryTypeInvalid:
		return "INVALID"
	default:
		return "UNKNOWN"
	}
}

func outputJSON(cmd *cobra.Command, data interface{}) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// isStdinAvailable checks if stdin is available (not a terminal)
func isStdinAvailable() bool {
	return !term.IsTerminal(int(os.Stdin.Fd()))
}
