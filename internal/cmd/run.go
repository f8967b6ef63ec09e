package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hzerrad/reminderd/internal/config"
	"github.com/hzerrad/reminderd/internal/presenter"
	"github.com/hzerrad/reminderd/internal/presenter/consoleui"
	"github.com/hzerrad/reminderd/internal/scheduler"
)

// RunCommand wraps cobra.Command with the daemon's entrypoint.
type RunCommand struct {
	*cobra.Command
	configDir string
}

func init() {
	rootCmd.AddCommand(newRunCommand().Command)
}

func newRunCommand() *RunCommand {
	rc := &RunCommand{}
	rc.Command = &cobra.Command{
		Use:   "run",
		Short: "Start the reminder daemon",
		Long: `Load the reminder catalogue, schedule every reminder, and present them one
at a time as they come due.

While running, type commands on stdin to respond to the active reminder:

  complete <name>            acknowledge and schedule the next recurrence
  snooze <name> <seconds>    postpone and re-present after the duration

SIGINT and SIGTERM trigger a clean shutdown: the scheduler stops first,
then the presenter's event loop exits; queued reminders are not presented.`,
		RunE: rc.runDaemon,
	}

	rc.Flags().StringVar(&rc.configDir, "config", "", "Reminder configuration directory (defaults to $HOME/.config/reminder-system)")

	return rc
}

func (rc *RunCommand) runDaemon(_ *cobra.Command, _ []string) error {
	dir := rc.configDir
	if dir == "" {
		dir = config.DefaultDir()
	}

	logger := log.New(rc.ErrOrStderr(), "reminderd: ", log.LstdFlags)

	cat, warnings, err := config.Load(dir)
	if err != nil {
		if errors.Is(err, config.ErrConfigMissing) {
			logger.Printf("no configuration found at %s, writing an example", dir)
			if writeErr := config.WriteExampleConfig(dir); writeErr != nil {
				return fmt.Errorf("failed to write example configuration: %w", writeErr)
			}
			return fmt.Errorf("configuration missing: wrote an example to %s, edit it and rerun", dir)
		}
		return fmt.Errorf("failed to load reminder catalogue: %w", err)
	}
	for _, w := range warnings {
		logger.Print(w.String())
	}

	sched := scheduler.New(logger)
	ui := consoleui.New(rc.OutOrStdout())
	coord := presenter.New(ui, sched, cat)

	for _, def := range cat.Reminders {
		name := def.Name
		if err := sched.Add(name, def.Schedule, coord.OnReminderDue); err != nil {
			return fmt.Errorf("failed to schedule reminder %q: %w", name, err)
		}
	}

	sched.Start()
	coord.Start()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	commandsDone := make(chan struct{})
	go func() {
		consoleui.RunCommandLoop(os.Stdin, rc.ErrOrStderr(), coord)
		close(commandsDone)
	}()

	select {
	case sig := <-sigCh:
		logger.Printf("received %s, shutting down", sig)
	case <-commandsDone:
		logger.Print("stdin closed, shutting down")
	}

	sched.Stop()
	coord.Stop()

	return nil
}
