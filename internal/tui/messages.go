package tui

import "github.com/andy/lumina/internal/domain"

// SwitchScreenMsg requests a screen change
type SwitchScreenMsg struct {
	Screen Screen
}

// RefreshDataMsg requests data refresh
type RefreshDataMsg struct{}

// ErrorMsg carries error information
type ErrorMsg struct {
	Err error
}

// ThemeChangedMsg asks the root model to restyle
type ThemeChangedMsg struct {
	Theme domain.Theme
}

// firstRunCheckMsg reports whether a business profile has been saved
type firstRunCheckMsg struct {
	hasProfile bool
}
