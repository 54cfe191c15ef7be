package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/andy/lumina/internal/app"
	"github.com/andy/lumina/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type settingsMode int

const (
	settingsModeView settingsMode = iota
	settingsModeEdit
)

// settings form field indices
const (
	settingsFieldOutputDir = iota
	settingsFieldPrefix
	settingsFieldDueDays
	settingsFieldLinkLength
	settingsFieldCount
)

type settingsSavedMsg struct {
	err error
}

type settingsLoadedMsg struct {
	profile *domain.BusinessProfile
	user    *domain.User
	theme   domain.Theme
	err     error
}

// SettingsModel manages the settings screen
type SettingsModel struct {
	app        *app.App
	mode       settingsMode
	fields     []textinput.Model
	fieldFocus int

	profile *domain.BusinessProfile
	user    *domain.User
	theme   domain.Theme

	err       error
	statusMsg string
}

// NewSettingsModel creates a new settings screen
func NewSettingsModel(a *app.App) tea.Model {
	return &SettingsModel{
		app:   a,
		mode:  settingsModeView,
		theme: domain.ThemeLight,
	}
}

// IsCapturingInput returns true when the edit form is active
func (m *SettingsModel) IsCapturingInput() bool {
	return m.mode == settingsModeEdit
}

func (m *SettingsModel) Init() tea.Cmd {
	return m.load()
}

func (m *SettingsModel) load() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		profile, err := m.app.ProfileRepo.Get(ctx)
		if err != nil {
			return settingsLoadedMsg{err: err}
		}
		user, err := m.app.AccountService.CurrentUser(ctx)
		if err != nil {
			return settingsLoadedMsg{err: err}
		}
		theme, err := m.app.AccountService.Theme(ctx)
		if err != nil {
			return settingsLoadedMsg{err: err}
		}
		return settingsLoadedMsg{profile: profile, user: user, theme: theme}
	}
}

func (m *SettingsModel) toggleTheme() tea.Cmd {
	return func() tea.Msg {
		theme, err := m.app.AccountService.ToggleTheme(context.Background())
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return ThemeChangedMsg{Theme: theme}
	}
}

func (m *SettingsModel) initForm() {
	m.fields = make([]textinput.Model, settingsFieldCount)
	cfg := m.app.Config

	// Output directory
	m.fields[settingsFieldOutputDir] = textinput.New()
	m.fields[settingsFieldOutputDir].Placeholder = "/path/to/invoices"
	m.fields[settingsFieldOutputDir].CharLimit = 256
	m.fields[settingsFieldOutputDir].Width = 60
	m.fields[settingsFieldOutputDir].SetValue(cfg.Invoice.OutputDir)

	// Number prefix
	m.fields[settingsFieldPrefix] = textinput.New()
	m.fields[settingsFieldPrefix].Placeholder = "INV"
	m.fields[settingsFieldPrefix].CharLimit = 20
	m.fields[settingsFieldPrefix].Width = 20
	m.fields[settingsFieldPrefix].SetValue(cfg.Invoice.NumberPrefix)

	// Default due days
	m.fields[settingsFieldDueDays] = textinput.New()
	m.fields[settingsFieldDueDays].Placeholder = "14"
	m.fields[settingsFieldDueDays].CharLimit = 5
	m.fields[settingsFieldDueDays].Width = 10
	m.fields[settingsFieldDueDays].SetValue(strconv.Itoa(cfg.Invoice.DefaultDueDays))

	// Mail link limit
	m.fields[settingsFieldLinkLength] = textinput.New()
	m.fields[settingsFieldLinkLength].Placeholder = "1800"
	m.fields[settingsFieldLinkLength].CharLimit = 6
	m.fields[settingsFieldLinkLength].Width = 10
	m.fields[settingsFieldLinkLength].SetValue(strconv.Itoa(cfg.Mail.MaxLinkLength))

	m.fieldFocus = settingsFieldOutputDir
	m.fields[settingsFieldOutputDir].Focus()
}

func (m *SettingsModel) saveSettings() tea.Cmd {
	return func() tea.Msg {
		outputDir := strings.TrimSpace(m.fields[settingsFieldOutputDir].Value())
		prefix := strings.TrimSpace(m.fields[settingsFieldPrefix].Value())
		dueDaysStr := m.fields[settingsFieldDueDays].Value()
		linkStr := m.fields[settingsFieldLinkLength].Value()

		if outputDir == "" {
			return settingsSavedMsg{err: fmt.Errorf("output directory is required")}
		}
		if prefix == "" {
			return settingsSavedMsg{err: fmt.Errorf("invoice prefix is required")}
		}

		dueDays, err := strconv.Atoi(strings.TrimSpace(dueDaysStr))
		if err != nil || dueDays < 0 {
			return settingsSavedMsg{err: fmt.Errorf("due days must be zero or a positive number")}
		}

		linkLength, err := strconv.Atoi(strings.TrimSpace(linkStr))
		if err != nil || linkLength < 200 {
			return settingsSavedMsg{err: fmt.Errorf("mail link limit must be at least 200")}
		}

		m.app.Config.Invoice.OutputDir = outputDir
		m.app.Config.Invoice.NumberPrefix = prefix
		m.app.Config.Invoice.DefaultDueDays = dueDays
		m.app.Config.Mail.MaxLinkLength = linkLength

		if err := m.app.SaveConfig(); err != nil {
			return settingsSavedMsg{err: fmt.Errorf("failed to save config: %w", err)}
		}

		return settingsSavedMsg{}
	}
}

func (m *SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case settingsLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.profile = msg.profile
		m.user = msg.user
		m.theme = msg.theme
		return m, nil

	case ThemeChangedMsg:
		m.theme = msg.Theme
		return m, nil

	case RefreshDataMsg:
		return m, m.load()
	}

	if m.mode == settingsModeEdit {
		return m.updateForm(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		m.err = nil
		switch {
		case key.Matches(keyMsg, DefaultKeyMap.Select):
			m.mode = settingsModeEdit
			m.statusMsg = ""
			m.initForm()
			return m, m.fields[m.fieldFocus].Focus()
		case key.Matches(keyMsg, DefaultKeyMap.Theme):
			return m, m.toggleTheme()
		}
	}

	return m, nil
}

func (m *SettingsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case settingsSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.mode = settingsModeView
		m.statusMsg = "Settings saved"
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.mode = settingsModeView
			m.err = nil
			return m, nil

		case "tab", "down":
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus + 1) % settingsFieldCount
			return m, m.fields[m.fieldFocus].Focus()

		case "shift+tab", "up":
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus - 1 + settingsFieldCount) % settingsFieldCount
			return m, m.fields[m.fieldFocus].Focus()

		case "enter":
			if m.fieldFocus == settingsFieldCount-1 {
				return m, m.saveSettings()
			}
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus++
			return m, m.fields[m.fieldFocus].Focus()

		case "ctrl+s":
			return m, m.saveSettings()
		}
	}

	// Update the focused text input
	var cmd tea.Cmd
	m.fields[m.fieldFocus], cmd = m.fields[m.fieldFocus].Update(msg)
	return m, cmd
}

func (m *SettingsModel) View() string {
	if m.mode == settingsModeEdit {
		return m.viewForm()
	}
	return m.viewSettings()
}

func (m *SettingsModel) viewSettings() string {
	var s string
	s += titleStyle.Render("Settings") + "\n\n"

	if m.statusMsg != "" {
		s += lipgloss.NewStyle().Foreground(successColor).
			Render("  "+m.statusMsg) + "\n\n"
	}
	if m.err != nil {
		s += lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n"
	}

	cfg := m.app.Config

	labelStyle := lipgloss.NewStyle().Bold(true).Width(22)
	valueStyle := lipgloss.NewStyle().Foreground(primaryColor)
	row := func(label, value string) string {
		return fmt.Sprintf("  %s %s\n", labelStyle.Render(label), valueStyle.Render(value))
	}

	s += subtitleStyle.Render("  Invoice Settings") + "\n\n"
	s += row("Output Directory:", cfg.Invoice.OutputDir)
	s += row("Number Prefix:", cfg.Invoice.NumberPrefix)
	s += row("Default Due Days:", strconv.Itoa(cfg.Invoice.DefaultDueDays))
	s += row("Mail Link Limit:", strconv.Itoa(cfg.Mail.MaxLinkLength))

	s += "\n" + subtitleStyle.Render("  Business Profile") + "\n\n"
	if m.profile == nil {
		s += subtitleStyle.Render("  Not saved yet. Press s in the invoice editor to save one.") + "\n"
	} else {
		s += row("Name:", m.profile.SenderName)
		s += row("Email:", m.profile.SenderEmail)
		s += row("Address:", oneLine(m.profile.SenderAddress))
		s += row("Currency:", m.profile.Currency)
		tax := m.profile.TaxType.Label()
		if m.profile.TaxRate != nil {
			tax += " " + domain.FormatRate(*m.profile.TaxRate) + "%"
		}
		s += row("Tax:", tax)
		logo := "none"
		if m.profile.Logo != "" {
			logo = "set"
		}
		s += row("Logo:", logo)
	}

	s += "\n" + subtitleStyle.Render("  Account") + "\n\n"
	user := "not signed in"
	if m.user != nil {
		user = fmt.Sprintf("%s <%s>", m.user.Name, m.user.Email)
	}
	s += row("User:", user)
	s += row("Theme:", string(m.theme))

	s += "\n" + helpStyle.Render("  enter: edit settings  t: toggle theme")

	return s
}

func (m *SettingsModel) viewForm() string {
	var s string
	s += titleStyle.Render("Edit Settings") + "\n\n"

	labels := []string{"Output Directory:", "Number Prefix:", "Default Due Days:", "Mail Link Limit:"}
	for i, label := range labels {
		indicator := "  "
		if i == m.fieldFocus {
			indicator = "> "
		}
		labelStyle := subtitleStyle
		if i == m.fieldFocus {
			labelStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
		}
		s += fmt.Sprintf("%s%s\n  %s\n\n", indicator, labelStyle.Render(label), m.fields[i].View())
	}

	if m.err != nil {
		s += lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n"
	}

	s += helpStyle.Render("  tab/shift+tab: navigate fields  ctrl+s: save  enter: next/save  esc: cancel")

	return s
}
