package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xvierd/pomodoro-timer/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the application configuration",
	Long: `Show where the configuration file lives and the values in effect.
Edit the file directly, or override values with POMODORO_* environment
variables such as POMODORO_LOG_LEVEL=debug.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		cfg := app.config

		fmt.Fprintf(out, "  Config file:    %s\n", path)
		fmt.Fprintf(out, "  Data dir:       %s\n", cfg.Storage.DataDir)
		fmt.Fprintf(out, "  Log file:       %s\n", config.GetLogPath(cfg))
		fmt.Fprintf(out, "  Log level:      %s\n", cfg.Log.Level)
		fmt.Fprintf(out, "  Tick interval:  %s\n", cfg.Timer.TickInterval)
		fmt.Fprintf(out, "  Notifications:  %s\n", onOff(cfg.Notifications.Enabled))
		fmt.Fprintf(out, "  Audio player:   %s (volume %.2f)\n", cfg.Audio.Player, cfg.Audio.Volume)
		fmt.Fprintf(out, "  MCP server:     %s\n", onOff(cfg.MCP.Enabled))
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Rewrite the configuration file with default values",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Save(config.DefaultConfig()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Configuration reset to defaults.")
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
