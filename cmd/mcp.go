package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xvierd/pomodoro-timer/internal/adapters/mcp"
)

// ErrMCPDisabled is returned when mcp.enabled is false in the config file.
var ErrMCPDisabled = errors.New("MCP server is disabled (set mcp.enabled = true in the config file)")

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol (MCP) server for integration with AI assistants.
The server runs its own timer and exposes tools to query and control it and
to change the settings.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !app.config.MCP.Enabled {
			return ErrMCPDisabled
		}

		// stdout carries the protocol
		fmt.Fprintln(os.Stderr, "🚀 Starting MCP server on stdio (Ctrl+C to stop)")

		ctx, stopSignals := setupSignalHandler(cmd.Context())
		defer stopSignals()
		ctx, stopTimer := startTimer(ctx)
		defer stopTimer()

		server := mcp.NewServer(app.timer, Version)
		if err := server.Start(ctx); err != nil {
			return fmt.Errorf("MCP server error: %w", err)
		}
		return nil
	},
}
