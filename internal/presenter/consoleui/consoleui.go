// Package consoleui is a concrete stand-in for the excluded graphical
// overlay (spec.md §1's Non-goals). It prints the reminder text/icon path
// to stdout, grounded on internal/render/timeline.go's plain-text rendering
// idiom, and reads single-line commands from stdin to drive the
// presenter.Coordinator's user-response callbacks.
package consoleui

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hzerrad/reminderd/internal/reminder"
)

// Responder receives the user-response callbacks consoleui's command reader
// parses from stdin. presenter.Coordinator satisfies this.
type Responder interface {
	OnUserComplete(name string)
	OnUserSnooze(name string, durationSeconds int)
}

// UI is a console-based stand-in for the graphical overlay. It implements
// presenter.Presenter.
type UI struct {
	out io.Writer
}

// New creates a console UI writing to out.
func New(out io.Writer) *UI {
	return &UI{out: out}
}

// Present prints a reminder's text, icon path, and the commands available to
// respond to it.
func (u *UI) Present(def reminder.Definition) {
	fmt.Fprintf(u.out, "\n━━━ Reminder: %s ━━━\n", def.Name)
	if def.Text != "" {
		fmt.Fprintf(u.out, "  %s\n", def.Text)
	}
	if def.IconPath != "" {
		fmt.Fprintf(u.out, "  icon: %s\n", def.IconPath)
	}
	fmt.Fprintf(u.out, "  commands: complete %s | snooze %s <seconds> (default %ds)\n",
		def.Name, def.Name, def.SnoozeSeconds)
}

// RunCommandLoop reads single-line commands from in until end of input or a
// read error, forwarding them to responder. Recognized commands:
//
//	complete <name>
//	snooze <name> <seconds>
//
// Unrecognized lines and malformed commands are reported to errOut and
// otherwise ignored — this is CLI operator convenience, not a protocol that
// needs strict validation.
func RunCommandLoop(in io.Reader, errOut io.Writer, responder Responder) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := dispatchCommand(line, responder); err != nil {
			fmt.Fprintf(errOut, "reminderd: %v\n", err)
		}
	}
}

func dispatchCommand(line string, responder Responder) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	switch fields[0] {
	case "complete":
		if len(fields) != 2 {
			return fmt.Errorf("usage: complete <name>")
		}
		responder.OnUserComplete(fields[1])
		return nil
	case "snooze":
		if len(fields) != 3 {
			return fmt.Errorf("usage: snooze <name> <seconds>")
		}
		seconds, err := strconv.Atoi(fields[2])
		if err != nil {
			return fmt.Errorf("invalid snooze duration %q: %w", fields[2], err)
		}
		responder.OnUserSnooze(fields[1], seconds)
		return nil
	default:
		return fmt.Errorf("unknown command %q (expected complete|snooze)", fields[0])
	}
}
