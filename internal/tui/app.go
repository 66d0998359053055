package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/winpin/winpin/internal/config"
	"github.com/winpin/winpin/internal/ipc"
)

// model is the root bubbletea model for the config editor.
type model struct {
	configPath string
	cfg        *config.Config

	// Snapshot taken at startup, used for the save diff preview.
	original *config.Config

	// Daemon state, probed once at startup.
	daemonRunning bool
	daemonTitle   string

	// Edit mode
	editing bool
	form    *huh.Form

	// Form-bound values (strings for huh, converted on submit)
	fTitle      string
	fIntervalMs string
	fDX         string
	fDY         string
	fWidth      string
	fHeight     string
	fColor      string
	fLogLevel   string

	saveOverlay SaveOverlay

	width  int
	height int
}

func newModel(configPath string, cfg *config.Config) model {
	snapshot := *cfg
	m := model{
		configPath: configPath,
		cfg:        cfg,
		original:   &snapshot,
	}

	// A running daemon won't pick up the edited file; surface that in the
	// status bar so the user knows a restart is needed.
	client := ipc.NewClient()
	if data, err := client.GetStatus(); err == nil {
		m.daemonRunning = data.DaemonRunning
		m.daemonTitle = data.TargetTitle
	}

	return m
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Save overlay captures all input when active
	if m.saveOverlay.Active() {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			prevPhase := m.saveOverlay.phase
			m.saveOverlay = m.saveOverlay.Update(msg, m.cfg, m.configPath)
			// After a successful save the snapshot catches up, so a
			// second ctrl+s reports no pending changes.
			if prevPhase == savePreview && m.saveOverlay.SaveSucceeded() {
				snapshot := *m.cfg
				m.original = &snapshot
			}
		case tea.WindowSizeMsg:
			m.width = msg.Width
			m.height = msg.Height
		}
		return m, nil
	}

	// ctrl+s triggers the save overlay from any context (including form editing)
	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "ctrl+s" {
		m.saveOverlay.Show(m.original, m.cfg)
		return m, nil
	}

	if m.editing {
		return m.updateEditing(msg)
	}
	return m.updateDisplay(msg)
}

func (m model) updateDisplay(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "e":
			m.startEditing()
			return m, m.form.Init()
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m model) updateEditing(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.editing = false
			m.form = nil
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.applyForm()
		m.editing = false
		m.form = nil
		return m, nil
	}

	return m, cmd
}

func (m *model) startEditing() {
	cfg := m.cfg

	m.fTitle = cfg.TargetTitle
	m.fIntervalMs = strconv.Itoa(cfg.PollIntervalMs)
	m.fDX = strconv.Itoa(cfg.Offset.DX)
	m.fDY = strconv.Itoa(cfg.Offset.DY)
	m.fWidth = strconv.Itoa(cfg.Overlay.Width)
	m.fHeight = strconv.Itoa(cfg.Overlay.Height)
	m.fColor = cfg.Overlay.Color
	m.fLogLevel = cfg.LogLevel

	levelOpts := []huh.Option[string]{
		huh.NewOption("debug", "debug"),
		huh.NewOption("info", "info"),
		huh.NewOption("warn", "warn"),
		huh.NewOption("error", "error"),
	}

	w := m.width - 4
	if w < 40 {
		w = 40
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("target_title").
				Title("Target Title").
				Description("Exact window title to pin the overlay to").
				Value(&m.fTitle),

			huh.NewInput().
				Key("poll_interval_ms").
				Title("Poll Interval (ms)").
				Description("How often the target window is re-checked").
				Value(&m.fIntervalMs),

			huh.NewInput().
				Key("dx").
				Title("Offset: DX").
				Description("Pixels from the target's right edge").
				Value(&m.fDX),

			huh.NewInput().
				Key("dy").
				Title("Offset: DY").
				Description("Pixels from the target's top edge").
				Value(&m.fDY),
		),
		huh.NewGroup(
			huh.NewInput().
				Key("width").
				Title("Overlay Width").
				Value(&m.fWidth),

			huh.NewInput().
				Key("height").
				Title("Overlay Height").
				Value(&m.fHeight),

			huh.NewInput().
				Key("color").
				Title("Overlay Color").
				Description("Background color as #rrggbb").
				Value(&m.fColor),

			huh.NewSelect[string]().
				Key("log_level").
				Title("Log Level").
				Options(levelOpts...).
				Value(&m.fLogLevel),
		),
	).WithWidth(w).WithShowHelp(true).WithShowErrors(true)

	m.editing = true
}

func (m *model) applyForm() {
	if strings.TrimSpace(m.fTitle) != "" {
		m.cfg.TargetTitle = m.fTitle
	}
	if v, err := strconv.Atoi(m.fIntervalMs); err == nil && v > 0 {
		m.cfg.PollIntervalMs = v
	}
	if v, err := strconv.Atoi(m.fDX); err == nil {
		m.cfg.Offset.DX = v
	}
	if v, err := strconv.Atoi(m.fDY); err == nil {
		m.cfg.Offset.DY = v
	}
	if v, err := strconv.Atoi(m.fWidth); err == nil && v > 0 {
		m.cfg.Overlay.Width = v
	}
	if v, err := strconv.Atoi(m.fHeight); err == nil && v > 0 {
		m.cfg.Overlay.Height = v
	}
	if _, err := config.ParseColor(m.fColor); err == nil {
		m.cfg.Overlay.Color = m.fColor
	}
	if m.fLogLevel != "" {
		m.cfg.LogLevel = m.fLogLevel
	}
}

// View implements tea.Model.
func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	statusBar := m.renderStatusBar()
	helpBar := m.renderHelpBar()

	contentHeight := m.height - lipgloss.Height(statusBar) - lipgloss.Height(helpBar)
	if contentHeight < 1 {
		contentHeight = 1
	}

	var content string
	switch {
	case m.saveOverlay.Active():
		content = m.saveOverlay.View(m.width, contentHeight)
	case m.editing && m.form != nil:
		content = m.viewEditing(contentHeight)
	default:
		content = m.viewDisplay(contentHeight)
	}

	return lipgloss.JoinVertical(lipgloss.Left, statusBar, content, helpBar)
}

func (m model) viewDisplay(height int) string {
	cfg := m.cfg

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("250")).
		Width(18).
		Align(lipgloss.Right).
		PaddingRight(2)

	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("15")).
		Bold(true)

	dimStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	row := func(label, value string) string {
		return labelStyle.Render(label) + valueStyle.Render(value)
	}

	offset := fmt.Sprintf("dx:%d dy:%d", cfg.Offset.DX, cfg.Offset.DY)
	size := fmt.Sprintf("%dx%d", cfg.Overlay.Width, cfg.Overlay.Height)

	lines := []string{
		"",
		row("Target Title", cfg.TargetTitle),
		row("Poll Interval", fmt.Sprintf("%dms", cfg.PollIntervalMs)),
		row("Offset", offset),
		"",
		row("Overlay Size", size),
		row("Overlay Color", cfg.Overlay.Color),
		"",
		row("Log Level", cfg.LogLevel),
		"",
		dimStyle.Render("  Press 'e' to edit settings"),
	}

	return lipgloss.NewStyle().
		Width(m.width).
		Height(height).
		Padding(1, 2).
		Render(strings.Join(lines, "\n"))
}

func (m model) viewEditing(height int) string {
	header := lipgloss.NewStyle().
		Foreground(lipgloss.Color("62")).
		Bold(true).
		Render("Editing Settings") +
		lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Render("  (esc to cancel)")

	return lipgloss.NewStyle().
		Width(m.width).
		Height(height).
		Padding(1, 2).
		Render(header + "\n\n" + m.form.View())
}

func (m model) renderStatusBar() string {
	var status string
	if m.daemonRunning {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render("●")
		status = dot + " daemon running"
		if m.daemonTitle != "" {
			status += "  pinned to: " + m.daemonTitle
		}
		status += "  (restart to pick up changes)"
	} else {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("●")
		status = dot + " daemon not running"
	}

	return lipgloss.NewStyle().
		Width(m.width).
		Background(lipgloss.Color("235")).
		Foreground(lipgloss.Color("250")).
		Padding(0, 1).
		Render(status)
}

func (m model) renderHelpBar() string {
	help := "e: edit  ctrl-s: save  q/ctrl-c: quit"
	if m.editing {
		help = "enter: next field  esc: cancel  ctrl-s: save  ctrl-c: quit"
	}
	return lipgloss.NewStyle().
		Width(m.width).
		Foreground(lipgloss.Color("241")).
		Padding(0, 1).
		Render(help)
}
