// Package tui provides the terminal user interface implementation
// using the Bubbletea framework.
package tui

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/xvierd/pomodoro-timer/internal/config"
	"github.com/xvierd/pomodoro-timer/internal/domain"
	"github.com/xvierd/pomodoro-timer/internal/ports"
)

// resolveTheme fills any empty string fields in the given ThemeConfig with defaults.
// If theme is nil, returns the full default theme.
func resolveTheme(theme *config.ThemeConfig) config.ThemeConfig {
	defaults := config.DefaultThemeConfig()
	if theme == nil {
		return defaults
	}
	resolved := *theme
	rv := reflect.ValueOf(&resolved).Elem()
	dv := reflect.ValueOf(defaults)
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if f.Kind() == reflect.String && f.String() == "" {
			f.SetString(dv.Field(i).String())
		}
	}
	return resolved
}

// tickMsg is sent on every display tick.
type tickMsg time.Time

// snapshotMsg carries a snapshot fetched asynchronously.
type snapshotMsg domain.Snapshot

// Model represents the TUI state.
type Model struct {
	snap            domain.Snapshot
	progress        progress.Model
	help            help.Model
	keys            keyMap
	width           int
	height          int
	branch          string
	theme           config.ThemeConfig
	fetchState      func() domain.Snapshot
	commandCallback func(ports.TimerCommand) error
	lastError       error
}

// NewModel creates a new TUI model.
func NewModel(initial domain.Snapshot, theme *config.ThemeConfig) Model {
	return Model{
		snap:     initial,
		progress: progress.New(progress.WithDefaultGradient()),
		help:     help.New(),
		keys:     defaultKeyMap(),
		theme:    resolveTheme(theme),
	}
}

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// fetchStateCmd returns a tea.Cmd that fetches the snapshot asynchronously.
func fetchStateCmd(fetch func() domain.Snapshot) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(fetch())
	}
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.send(ports.CmdQuit)
			return m, tea.Quit
		case key.Matches(msg, m.keys.Toggle):
			m.send(ports.CmdToggle)
		case key.Matches(msg, m.keys.Reset):
			m.send(ports.CmdReset)
		case key.Matches(msg, m.keys.Notify):
			m.send(ports.CmdCycleNotification)
		case key.Matches(msg, m.keys.Noise):
			m.send(ports.CmdCycleBGM)
		case key.Matches(msg, m.keys.AutoStart):
			m.send(ports.CmdToggleAutoStart)
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 4
		m.help.Width = msg.Width

	case tickMsg:
		cmds := []tea.Cmd{tickCmd()}
		if m.fetchState != nil {
			cmds = append(cmds, fetchStateCmd(m.fetchState))
		}
		return m, tea.Batch(cmds...)

	case snapshotMsg:
		m.snap = domain.Snapshot(msg)

	case domain.Snapshot:
		m.snap = msg
	}

	newProgress, cmd := m.progress.Update(msg)
	if p, ok := newProgress.(progress.Model); ok {
		m.progress = p
	}
	return m, cmd
}

// send runs a command and refreshes the snapshot so the key press shows
// immediately instead of on the next tick.
func (m *Model) send(cmd ports.TimerCommand) {
	if m.commandCallback == nil {
		return
	}
	m.lastError = m.commandCallback(cmd)
	if m.fetchState != nil {
		m.snap = m.fetchState()
	}
}

// phaseColor returns the accent color for the current mode and phase.
func (m Model) phaseColor() lipgloss.Color {
	switch {
	case m.snap.Phase == domain.PhasePaused:
		return lipgloss.Color(m.theme.ColorPaused)
	case m.snap.Phase == domain.PhaseDone:
		return lipgloss.Color(m.theme.ColorDone)
	case m.snap.Mode == domain.ModeBreak:
		return lipgloss.Color(m.theme.ColorBreak)
	default:
		return lipgloss.Color(m.theme.ColorWork)
	}
}

// View renders the TUI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	accent := m.phaseColor()
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorTitle)).MarginBottom(1)
	statusStyle := lipgloss.NewStyle().Foreground(accent)
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorHelp))

	var sections []string
	title := fmt.Sprintf("%s Pomodoro", m.theme.IconApp)
	if m.branch != "" {
		title += helpStyle.Render(fmt.Sprintf("  %s %s", m.theme.IconGit, m.branch))
	}
	sections = append(sections, titleStyle.Render(title))

	if m.snap.Phase == domain.PhaseDone {
		sections = append(sections, statusStyle.Bold(true).Render("Goal reached!"))
		sections = append(sections, helpStyle.Render(fmt.Sprintf("%d of %d pomodoros done. Press r to start over.", m.snap.CompletedCount, m.snap.Goal)))
	} else {
		sections = append(sections, statusStyle.Render(fmt.Sprintf("%s · %s", m.snap.Mode.Label(), domain.GetPhaseLabel(m.snap.Phase))))
	}

	sections = append(sections, "")
	sections = append(sections, renderBigTime(domain.FormatClock(m.snap.Remaining), accent, m.width))

	if m.snap.Phase == domain.PhasePaused {
		pauseBadge := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color(m.theme.ColorPaused)).
			Padding(0, 1).
			Render(fmt.Sprintf("%s PAUSED", m.theme.IconPaused))
		sections = append(sections, "", pauseBadge)
	}

	sections = append(sections, "")
	var start, end string
	switch {
	case m.snap.Phase == domain.PhasePaused:
		start, end = m.theme.PausedGradientStart, m.theme.PausedGradientEnd
	case m.snap.Mode == domain.ModeBreak:
		start, end = m.theme.BreakGradientStart, m.theme.BreakGradientEnd
	default:
		start, end = m.theme.WorkGradientStart, m.theme.WorkGradientEnd
	}
	pbar := progress.New(progress.WithGradient(start, end))
	pbar.Width = m.width - 4
	sections = append(sections, pbar.ViewAs(m.snap.Progress()))

	sections = append(sections, "")
	sections = append(sections, statusStyle.Render(goalCounter(m.snap, m.theme.IconApp)))
	sections = append(sections, helpStyle.Render(settingsLine(m.snap.Settings)))

	if m.lastError != nil {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E74C3C"))
		sections = append(sections, "", errStyle.Render("Error: "+m.lastError.Error()))
	}

	sections = append(sections, "", m.help.View(m.keys))

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// goalCounter renders one icon per completed pomodoro and a dot per
// pomodoro still to go.
func goalCounter(snap domain.Snapshot, icon string) string {
	done := snap.CompletedCount
	left := snap.Goal - done
	if left < 0 {
		left = 0
	}
	return fmt.Sprintf("%s%s  %d/%d", strings.Repeat(icon, done), strings.Repeat("·", left), done, snap.Goal)
}

func settingsLine(s domain.Settings) string {
	auto := "off"
	if s.AutoStart {
		auto = "on"
	}
	return fmt.Sprintf("work %dm · break %dm · notify %s · noise %s · auto-start %s",
		s.WorkDurationMinutes, s.BreakDurationMinutes, s.NotificationMode, strings.ToLower(s.BGMMode.Label()), auto)
}

// tickCmd creates a command that sends a tick message.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
