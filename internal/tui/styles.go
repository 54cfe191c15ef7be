package tui

import (
	"github.com/andy/lumina/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

type palette struct {
	primary, accent, muted, success, warning, error, border, help, footer lipgloss.Color
}

var palettes = map[domain.Theme]palette{
	domain.ThemeLight: {
		primary: "39",  // Blue
		accent:  "205", // Pink
		muted:   "241", // Gray
		success: "76",  // Green
		warning: "214", // Orange
		error:   "196", // Red
		border:  "63",  // Soft purple
		help:    "117", // Bright cyan
		footer:  "226", // Bright yellow
	},
	domain.ThemeDark: {
		primary: "111",
		accent:  "213",
		muted:   "245",
		success: "114",
		warning: "221",
		error:   "203",
		border:  "60",
		help:    "152",
		footer:  "229",
	},
}

var (
	// Colors
	primaryColor lipgloss.Color
	accentColor  lipgloss.Color
	mutedColor   lipgloss.Color
	successColor lipgloss.Color
	warningColor lipgloss.Color
	errorColor   lipgloss.Color
	borderColor  lipgloss.Color

	// Base styles
	titleStyle    lipgloss.Style
	subtitleStyle lipgloss.Style
	helpStyle     lipgloss.Style
	selectedStyle lipgloss.Style

	// Layout
	appBorderStyle lipgloss.Style

	// Header/Footer
	headerStyle lipgloss.Style
	footerStyle lipgloss.Style

	// Totals
	totalStyle    lipgloss.Style
	servicesStyle lipgloss.Style
	taxStyle      lipgloss.Style
)

func init() {
	applyTheme(domain.ThemeLight)
}

// applyTheme rebuilds every style from the theme's palette
func applyTheme(theme domain.Theme) {
	p, ok := palettes[theme]
	if !ok {
		p = palettes[domain.ThemeLight]
	}

	primaryColor = p.primary
	accentColor = p.accent
	mutedColor = p.muted
	successColor = p.success
	warningColor = p.warning
	errorColor = p.error
	borderColor = p.border

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
	subtitleStyle = lipgloss.NewStyle().Foreground(mutedColor)
	helpStyle = lipgloss.NewStyle().Foreground(p.help)
	selectedStyle = lipgloss.NewStyle().Bold(true).Background(primaryColor).Foreground(lipgloss.Color("0"))

	appBorderStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(1, 2)

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor).Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(p.footer).Bold(true)

	totalStyle = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	servicesStyle = lipgloss.NewStyle().Foreground(primaryColor)
	taxStyle = lipgloss.NewStyle().Foreground(warningColor)
}
