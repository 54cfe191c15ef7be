package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/andy/lumina/internal/app"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// Screen represents the current active screen
type Screen int

const (
	ScreenEditor Screen = iota
	ScreenPreview
	ScreenClients
	ScreenSettings
)

// String returns the screen name
func (s Screen) String() string {
	switch s {
	case ScreenEditor:
		return "Invoice"
	case ScreenPreview:
		return "Preview"
	case ScreenClients:
		return "Clients"
	case ScreenSettings:
		return "Settings"
	default:
		return "Unknown"
	}
}

// Model is the root Bubble Tea model
type Model struct {
	app           *app.App
	currentScreen Screen
	width         int
	height        int

	// Screen models (lazy initialized)
	editor   tea.Model
	preview  tea.Model
	clients  tea.Model
	settings tea.Model

	// First-run state
	checkedFirstRun bool

	err    error
	notice string // shown until the next keypress
}

// New creates a new root model
func New(a *app.App) Model {
	return Model{
		app:           a,
		currentScreen: ScreenEditor,
		editor:        NewEditorModel(a),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.loadTheme(),
		m.checkFirstRun(),
	}
	if m.editor != nil {
		cmds = append(cmds, m.editor.Init())
	}
	return tea.Batch(cmds...)
}

func (m *Model) loadTheme() tea.Cmd {
	return func() tea.Msg {
		theme, err := m.app.AccountService.Theme(context.Background())
		if err != nil {
			zap.L().Warn("failed to load theme", zap.Error(err))
		}
		return ThemeChangedMsg{Theme: theme}
	}
}

// checkFirstRun checks whether a business profile has been saved
func (m *Model) checkFirstRun() tea.Cmd {
	return func() tea.Msg {
		profile, err := m.app.ProfileRepo.Get(context.Background())
		if err != nil {
			return firstRunCheckMsg{hasProfile: true} // assume yes on error
		}
		return firstRunCheckMsg{hasProfile: profile != nil}
	}
}

func (m *Model) screen(s Screen) *tea.Model {
	switch s {
	case ScreenEditor:
		return &m.editor
	case ScreenPreview:
		return &m.preview
	case ScreenClients:
		return &m.clients
	case ScreenSettings:
		return &m.settings
	}
	return nil
}

// initScreen lazy-initializes a screen on first visit,
// and sends a RefreshDataMsg on subsequent visits so screens reload data.
func (m *Model) initScreen(s Screen) tea.Cmd {
	slot := m.screen(s)
	if slot == nil {
		return nil
	}
	if *slot != nil {
		return func() tea.Msg { return RefreshDataMsg{} }
	}

	switch s {
	case ScreenEditor:
		*slot = NewEditorModel(m.app)
	case ScreenPreview:
		*slot = NewPreviewModel(m.app)
	case ScreenClients:
		*slot = NewClientsModel(m.app)
	case ScreenSettings:
		*slot = NewSettingsModel(m.app)
	}

	cmds := []tea.Cmd{(*slot).Init()}
	if m.width > 0 {
		size := tea.WindowSizeMsg{Width: m.width, Height: m.height}
		cmds = append(cmds, func() tea.Msg { return size })
	}
	return tea.Batch(cmds...)
}

// InputCapturer is implemented by screens that capture keyboard input (e.g. text forms).
// When active, global navigation keys are suppressed.
type InputCapturer interface {
	IsCapturingInput() bool
}

// activeScreenCapturingInput returns true if the current screen is capturing text input
func (m *Model) activeScreenCapturingInput() bool {
	slot := m.screen(m.currentScreen)
	if slot == nil {
		return false
	}
	if ic, ok := (*slot).(InputCapturer); ok {
		return ic.IsCapturingInput()
	}
	return false
}

func (m *Model) switchTo(s Screen) tea.Cmd {
	m.currentScreen = s
	m.err = nil
	return m.initScreen(s)
}

// Update implements tea.Model - routes keys to screens
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Forwarded to the current screen so it can size itself

	case tea.KeyMsg:
		m.notice = ""

		// Skip global navigation when a screen is capturing text input
		if !m.activeScreenCapturingInput() {
			switch {
			case key.Matches(msg, DefaultKeyMap.Quit):
				return m, tea.Quit

			case key.Matches(msg, DefaultKeyMap.Editor):
				return m, m.switchTo(ScreenEditor)

			case key.Matches(msg, DefaultKeyMap.Preview):
				return m, m.switchTo(ScreenPreview)

			case key.Matches(msg, DefaultKeyMap.Clients):
				return m, m.switchTo(ScreenClients)

			case key.Matches(msg, DefaultKeyMap.Settings):
				return m, m.switchTo(ScreenSettings)
			}
		}

	case firstRunCheckMsg:
		if !m.checkedFirstRun && !msg.hasProfile {
			m.notice = "Welcome! Fill in your details, then press s to save them as your business profile."
		}
		m.checkedFirstRun = true
		return m, nil

	case ThemeChangedMsg:
		applyTheme(msg.Theme)

	case SwitchScreenMsg:
		return m, m.switchTo(msg.Screen)

	case ErrorMsg:
		m.err = msg.Err
		return m, nil
	}

	// Route message to current screen
	var cmd tea.Cmd
	if slot := m.screen(m.currentScreen); slot != nil && *slot != nil {
		*slot, cmd = (*slot).Update(msg)
	}

	return m, cmd
}

// View implements tea.Model - renders header + current screen + footer
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	header := headerStyle.Render(fmt.Sprintf("lumina - %s", m.currentScreen.String()))

	// Footer with navigation keys
	footer := footerStyle.Render("[I]nvoice  [P]review  [C]lients  [,] Settings  [Q]uit")

	content := "Loading..."
	if slot := m.screen(m.currentScreen); slot != nil && *slot != nil {
		content = (*slot).View()
	}

	// Error/notice display
	errorDisplay := ""
	if m.notice != "" {
		errorDisplay = lipgloss.NewStyle().
			Foreground(warningColor).
			Render(fmt.Sprintf("\n%s", m.notice))
	} else if m.err != nil {
		errorDisplay = lipgloss.NewStyle().
			Foreground(errorColor).
			Render(fmt.Sprintf("\nError: %s", m.err.Error()))
	}

	// Divider line between header and content
	innerWidth := m.width - 6 // account for border (2) + padding (4)
	if innerWidth < 20 {
		innerWidth = 20
	}
	dividerWidth := innerWidth - 12
	if dividerWidth < 10 {
		dividerWidth = 10
	}
	divider := lipgloss.NewStyle().Foreground(borderColor).Render(
		strings.Repeat("─", dividerWidth),
	)

	body := fmt.Sprintf("%s\n%s\n\n%s%s\n\n%s\n%s", header, divider, content, errorDisplay, divider, footer)

	// Wrap in border, sized to terminal
	frame := appBorderStyle.
		Width(innerWidth).
		Height(m.height - 4) // leave room for border top/bottom
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, frame.Render(body))
}

// Run starts the TUI
func Run(a *app.App) error {
	p := tea.NewProgram(New(a), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
