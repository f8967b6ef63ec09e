package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hzerrad/reminderd/internal/config"
	"github.com/hzerrad/reminderd/internal/doc"
)

type DocCommand struct {
	*cobra.Command
	configDir string
	format    string
	next      int
	stats     bool
}

func newDocCommand() *DocCommand {
	dc := &DocCommand{}
	dc.Command = &cobra.Command{
		Use:   "doc",
		Short: "Generate reference documentation for the reminder catalogue",
		Long: `Generate a reference document describing every reminder in the
configured catalogue: its schedule, a human-readable description, and
optionally its upcoming run times and frequency statistics.

Examples:
  reminderd doc
  reminderd doc --format html > reminders.html
  reminderd doc --next 5 --stats --format markdown`,
		RunE: dc.runDoc,
		Args: cobra.NoArgs,
	}

	dc.Flags().StringVar(&dc.configDir, "config", "", "Reminder configuration directory (defaults to $HOME/.config/reminder-system)")
	dc.Flags().StringVar(&dc.format, "format", "markdown", "Output format: 'markdown' (default), 'html', or 'json'")
	dc.Flags().IntVar(&dc.next, "next", 0, "Number of upcoming run times to include per reminder")
	dc.Flags().BoolVar(&dc.stats, "stats", false, "Include frequency statistics per reminder")

	return dc
}

func init() {
	rootCmd.AddCommand(newDocCommand().Command)
}

func (dc *DocCommand) runDoc(_ *cobra.Command, _ []string) error {
	cat, warnings, err := loadCatalogue(dc.configDir)
	if err != nil {
		return fmt.Errorf("failed to load reminder catalogue: %w", err)
	}
	for _, w := range warnings {
		fmt.Fprintln(dc.ErrOrStderr(), w.String())
	}

	source := dc.configDir
	if source == "" {
		source = config.DefaultDir()
	}

	generator := doc.NewGenerator()
	document, err := generator.GenerateDocument(cat.Reminders, source, doc.GenerateOptions{
		IncludeNext:  dc.next,
		IncludeStats: dc.stats,
	})
	if err != nil {
		return fmt.Errorf("failed to generate document: %w", err)
	}

	renderer, err := doc.NewRenderer(dc.format)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}

	if err := renderer.Render(document, dc.OutOrStdout()); err != nil {
		return fmt.Errorf("failed to render document: %w", err)
	}

	return nil
}
