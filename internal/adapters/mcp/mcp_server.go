// Package mcp provides the MCP (Model Context Protocol) server implementation.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/xvierd/pomodoro-timer/internal/domain"
	"github.com/xvierd/pomodoro-timer/internal/ports"
)

// Server implements the MCP server using mark3labs/mcp-go.
type Server struct {
	server        *server.MCPServer
	stateProvider ports.MCPStateProvider
	ctx           context.Context
	cancel        context.CancelFunc
}

// NewServer creates a new MCP server instance.
func NewServer(stateProvider ports.MCPStateProvider, version string) *Server {
	s := &Server{
		stateProvider: stateProvider,
	}

	s.server = server.NewMCPServer(
		"pomodoro-timer",
		version,
		server.WithLogging(),
	)

	s.registerTools()

	return s
}

// registerTools registers all available MCP tools.
func (s *Server) registerTools() {
	s.server.AddTool(
		mcp.NewTool(
			"get_timer_state",
			mcp.WithDescription("Get the current pomodoro state: mode, phase, remaining time and completed pomodoros"),
		),
		s.handleGetTimerState,
	)

	s.server.AddTool(
		mcp.NewTool(
			"start_timer",
			mcp.WithDescription("Start the armed countdown. Has no effect unless the timer is idle"),
		),
		s.commandHandler(s.stateProvider.Start),
	)

	s.server.AddTool(
		mcp.NewTool(
			"pause_timer",
			mcp.WithDescription("Pause the running countdown"),
		),
		s.commandHandler(s.stateProvider.Pause),
	)

	s.server.AddTool(
		mcp.NewTool(
			"resume_timer",
			mcp.WithDescription("Resume a paused countdown"),
		),
		s.commandHandler(s.stateProvider.Resume),
	)

	s.server.AddTool(
		mcp.NewTool(
			"reset_timer",
			mcp.WithDescription("Reset the session to the first work phase without starting it"),
		),
		s.commandHandler(s.stateProvider.Reset),
	)

	s.server.AddTool(
		mcp.NewTool(
			"get_settings",
			mcp.WithDescription("Get the timer settings"),
		),
		s.handleGetSettings,
	)

	updateSettingsTool := mcp.NewTool(
		"update_settings",
		mcp.WithDescription("Change timer settings. Omitted fields keep their value. Any change resets the session"),
		mcp.WithNumber(
			domain.KeyWorkDuration,
			mcp.Description("Work phase length in minutes"),
		),
		mcp.WithNumber(
			domain.KeyBreakDuration,
			mcp.Description("Break phase length in minutes"),
		),
		mcp.WithNumber(
			domain.KeyGoalPomodoros,
			mcp.Description("Work phases to complete before the session is done"),
		),
		mcp.WithBoolean(
			domain.KeyAutoStart,
			mcp.Description("Start the next phase automatically when one ends"),
		),
		mcp.WithString(
			domain.KeyNotificationMode,
			mcp.Description("How transitions are announced"),
			mcp.Enum("sound", "desktop"),
		),
		mcp.WithString(
			domain.KeyBGMMode,
			mcp.Description("Background noise during work phases"),
			mcp.Enum("off", "white", "pink", "brown"),
		),
	)
	s.server.AddTool(updateSettingsTool, s.handleUpdateSettings)
}

// Start begins serving MCP requests via stdio.
func (s *Server) Start(ctx context.Context) error {
	s.ctx, s.cancel = context.WithCancel(ctx)

	return server.ServeStdio(s.server)
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	if s.cancel != nil {
		s.cancel()
	}
	return nil
}

// IsRunning returns true if the server is active.
func (s *Server) IsRunning() bool {
	if s.ctx == nil {
		return false
	}
	return s.ctx.Err() == nil
}

// Ensure Server implements ports.MCPHandler.
var _ ports.MCPHandler = (*Server)(nil)

// handleGetTimerState handles the get_timer_state tool.
func (s *Server) handleGetTimerState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(snapshotData(s.stateProvider.Snapshot()))
}

// commandHandler wraps a timer command as a tool handler. A command that is
// not valid in the current state is reported with applied=false.
func (s *Server) commandHandler(command func(context.Context) (domain.Snapshot, bool)) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		snap, applied := command(ctx)
		result := snapshotData(snap)
		result["applied"] = applied
		return jsonResult(result)
	}
}

// handleGetSettings handles the get_settings tool.
func (s *Server) handleGetSettings(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(settingsData(s.stateProvider.Settings()))
}

// handleUpdateSettings handles the update_settings tool.
func (s *Server) handleUpdateSettings(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	settings := s.stateProvider.Settings()
	args := request.GetArguments()

	for _, key := range domain.SettingKeys {
		raw, ok := args[key]
		if !ok || raw == nil {
			continue
		}
		if err := settings.Set(key, argString(raw)); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	snap, err := s.stateProvider.UpdateSettings(ctx, settings)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to update settings: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{
		"settings": settingsData(snap.Settings),
		"state":    snapshotData(snap),
	})
}

func argString(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}

func snapshotData(snap domain.Snapshot) map[string]interface{} {
	return map[string]interface{}{
		"session_id":        snap.SessionID,
		"mode":              string(snap.Mode),
		"phase":             string(snap.Phase),
		"completed":         snap.CompletedCount,
		"goal":              snap.Goal,
		"remaining":         domain.FormatClock(snap.Remaining),
		"remaining_seconds": snap.RemainingSeconds(),
		"progress":          snap.Progress(),
	}
}

func settingsData(settings domain.Settings) map[string]interface{} {
	return map[string]interface{}{
		domain.KeyWorkDuration:     settings.WorkDurationMinutes,
		domain.KeyBreakDuration:    settings.BreakDurationMinutes,
		domain.KeyGoalPomodoros:    settings.GoalPomodoros,
		domain.KeyAutoStart:        settings.AutoStart,
		domain.KeyNotificationMode: string(settings.NotificationMode),
		domain.KeyBGMMode:          string(settings.BGMMode),
	}
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}
