package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/xvierd/pomodoro-timer/internal/adapters/tui"
	"github.com/xvierd/pomodoro-timer/internal/domain"
)

var headless bool

// runCmd starts the first work countdown right away.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start a pomodoro immediately",
	Long: `Start the first work countdown without waiting for a key press.

With --headless no full-screen interface is drawn: a status line is printed
on every change and logs go to stderr. The command ends when the goal is
reached or on Ctrl+C. Breaks and work phases start on their own in this
mode, whatever the auto-start setting.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !headless {
			return launchTUI(cmd.Context(), true)
		}
		return runHeadless(cmd.Context(), cmd.OutOrStdout())
	},
}

func init() {
	runCmd.Flags().BoolVar(&headless, "headless", false, "Print status lines instead of opening the full-screen timer")
}

// runHeadless streams snapshots to out until the session is done or ctx ends.
func runHeadless(ctx context.Context, out io.Writer) error {
	ctx, stopSignals := setupSignalHandler(ctx)
	defer stopSignals()

	updates := app.timer.Subscribe(32)
	ctx, stopTimer := startTimer(ctx)
	defer stopTimer()

	if branch := currentBranch(ctx); branch != "" {
		fmt.Fprintf(out, "%s %s\n", app.config.Theme.IconGit, branch)
	}

	// Nobody can press start here, so every idle phase is started as soon
	// as it is published.
	start := func() { app.timer.Start(ctx) }
	start()

	inPlace := isTerminal(out)
	return streamStatus(ctx, out, updates, inPlace, start)
}

// streamStatus prints one status line per snapshot. When inPlace is set the
// line is redrawn instead of appended. start is called for every idle
// snapshot.
func streamStatus(ctx context.Context, out io.Writer, updates <-chan domain.Snapshot, inPlace bool, start func()) error {
	for {
		select {
		case <-ctx.Done():
			if inPlace {
				fmt.Fprintln(out)
			}
			return nil
		case snap, ok := <-updates:
			if !ok {
				return nil
			}
			line := tui.FormatStatus(snap)
			if inPlace {
				fmt.Fprintf(out, "\r\033[K%s", line)
			} else {
				fmt.Fprintln(out, line)
			}
			switch snap.Phase {
			case domain.PhaseDone:
				if inPlace {
					fmt.Fprintln(out)
				}
				return nil
			case domain.PhaseIdle:
				if start != nil {
					start()
				}
			}
		}
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(f.Fd())
}
