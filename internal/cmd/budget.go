package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hzerrad/reminderd/internal/budget"
)

type BudgetCommand struct {
	*cobra.Command
	configDir     string
	maxConcurrent int
	window        time.Duration
	enforce       bool
	json          bool
	verbose       bool
}

func newBudgetCommand() *BudgetCommand {
	bc := &BudgetCommand{}
	bc.Command = &cobra.Command{
		Use:   "budget",
		Short: "Check the reminder catalogue against a concurrency budget",
		Long: `Check whether the configured reminder catalogue violates a concurrency
budget by analyzing how many reminders fire within the same time window.

Examples:
  reminderd budget --max-concurrent 3 --window 1h
  reminderd budget --config /path/to/config --max-concurrent 2 --window 30m --json
  reminderd budget --max-concurrent 1 --window 1h --enforce`,
		RunE: bc.runBudget,
		Args: cobra.NoArgs,
	}

	bc.Flags().StringVar(&bc.configDir, "config", "", "Reminder configuration directory (defaults to $HOME/.config/reminder-system)")
	bc.Flags().IntVar(&bc.maxConcurrent, "max-concurrent", 0, "Maximum concurrent reminders allowed (required)")
	bc.Flags().DurationVar(&bc.window, "window", DefaultBudgetWindow, "Time window for the budget (e.g., 1m, 1h, 24h)")
	bc.Flags().BoolVar(&bc.enforce, "enforce", false, "Exit with an error if the budget is violated (default: report only)")
	bc.Flags().BoolVarP(&bc.json, "json", "j", false, "Output in JSON format")
	bc.Flags().BoolVarP(&bc.verbose, "verbose", "v", false, "Show detailed violation information")

	return bc
}

func init() {
	rootCmd.AddCommand(newBudgetCommand().Command)
}

func (bc *BudgetCommand) runBudget(_ *cobra.Command, _ []string) error {
	if bc.maxConcurrent <= 0 {
		return fmt.Errorf("--max-concurrent must be greater than 0")
	}

	cat, warnings, err := loadCatalogue(bc.configDir)
	if err != nil {
		return fmt.Errorf("failed to load reminder catalogue: %w", err)
	}
	for _, w := range warnings {
		fmt.Fprintln(bc.ErrOrStderr(), w.String())
	}

	budgets := []budget.Budget{
		{
			MaxConcurrent: bc.maxConcurrent,
			TimeWindow:    bc.window,
			Name:          fmt.Sprintf("max-%d-per-%s", bc.maxConcurrent, bc.window),
		},
	}

	report, err := budget.AnalyzeBudget(cat.Reminders, budgets)
	if err != nil {
		return fmt.Errorf("failed to analyze budget: %w", err)
	}

	format := "text"
	if bc.json {
		format = "json"
	}

	renderer, err := budget.NewRenderer(format, bc.verbose)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}

	if err := renderer.Render(bc.OutOrStdout(), report); err != nil {
		return fmt.Errorf("failed to render budget report: %w", err)
	}

	if bc.enforce && !report.Passed {
		return fmt.Errorf("budget violation detected")
	}

	return nil
}
