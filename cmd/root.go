// Package cmd provides the CLI commands for the pomodoro timer.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xvierd/pomodoro-timer/internal/adapters/tui"
	"github.com/xvierd/pomodoro-timer/internal/domain"
	"github.com/xvierd/pomodoro-timer/internal/ports"
)

var (
	// Version info (set at build time via ldflags)
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"

	// Global flags
	dbPath     string
	logLevel   string
	jsonOutput bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pomodoro",
	Short: "Pomodoro - a work/break countdown timer for the terminal",
	Long: `Pomodoro alternates work and break countdowns until you reach the
day's goal of completed pomodoros.

Run "pomodoro" with no arguments to open the timer.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeServices()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return cleanupServices()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return launchTUI(cmd.Context(), false)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the settings database (default: ~/.pomodoro/settings.db)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error (default from config)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results in JSON format")

	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("Pomodoro\nVersion: {{.Version}}\n")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(configCmd)
}

// launchTUI opens the full-screen timer. With autoStart the first work
// countdown begins immediately.
func launchTUI(ctx context.Context, autoStart bool) error {
	ctx, stopSignals := setupSignalHandler(ctx)
	defer stopSignals()

	updates := app.timer.Subscribe(16)
	ctx, stopTimer := startTimer(ctx)
	defer stopTimer()

	if autoStart {
		app.timer.Start(ctx)
	}

	timer := tui.NewTimer(&app.config.Theme)
	go forwardSnapshots(ctx, updates, timer)
	timer.SetBranch(currentBranch(ctx))
	timer.SetFetchState(app.timer.Snapshot)
	timer.SetCommandCallback(func(cmd ports.TimerCommand) error {
		_, err := app.timer.Execute(ctx, cmd)
		return err
	})

	if err := timer.Run(ctx, app.timer.Snapshot()); err != nil {
		return fmt.Errorf("timer error: %w", err)
	}
	return nil
}

// forwardSnapshots pushes published snapshots to the interface until the
// channel closes or ctx ends.
func forwardSnapshots(ctx context.Context, updates <-chan domain.Snapshot, timer ports.Timer) {
	for {
		select {
		case <-ctx.Done():
			return
		case snap, ok := <-updates:
			if !ok {
				return
			}
			timer.UpdateState(snap)
		}
	}
}
