package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/andy/lumina/internal/app"
	"github.com/andy/lumina/internal/domain"
	"github.com/andy/lumina/internal/export"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Rows taken by the root frame around a screen
const previewChrome = 14

type previewDataMsg struct {
	inv   domain.InvoiceData
	lines []string
	err   error
}

// PreviewModel shows the invoice as it will be sent, with the services/tax split
type PreviewModel struct {
	app    *app.App
	inv    domain.InvoiceData
	lines  []string
	offset int
	width  int
	height int
	err    error
}

// NewPreviewModel creates the invoice preview screen
func NewPreviewModel(a *app.App) tea.Model {
	return &PreviewModel{app: a}
}

func (m *PreviewModel) Init() tea.Cmd {
	return m.load()
}

func (m *PreviewModel) load() tea.Cmd {
	return func() tea.Msg {
		inv, err := m.app.InvoiceService.Current(context.Background())
		if err != nil {
			return previewDataMsg{err: err}
		}

		var b strings.Builder
		if err := export.RenderText(&b, inv); err != nil {
			return previewDataMsg{err: err}
		}
		return previewDataMsg{inv: inv, lines: strings.Split(strings.TrimRight(b.String(), "\n"), "\n")}
	}
}

// pageSize is the number of invoice lines visible at once
func (m *PreviewModel) pageSize() int {
	if m.height <= previewChrome {
		return 10
	}
	return m.height - previewChrome
}

func (m *PreviewModel) maxOffset() int {
	return max(len(m.lines)-m.pageSize(), 0)
}

func (m *PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.offset = min(m.offset, m.maxOffset())
		return m, nil

	case previewDataMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.inv = msg.inv
		m.lines = msg.lines
		m.offset = min(m.offset, m.maxOffset())
		return m, nil

	case RefreshDataMsg:
		return m, m.load()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, DefaultKeyMap.Up):
			if m.offset > 0 {
				m.offset--
			}
		case key.Matches(msg, DefaultKeyMap.Down):
			if m.offset < m.maxOffset() {
				m.offset++
			}
		}
	}
	return m, nil
}

func (m *PreviewModel) View() string {
	if m.err != nil {
		return lipgloss.NewStyle().Foreground(errorColor).Render(fmt.Sprintf("Error: %v", m.err))
	}
	if m.lines == nil {
		return "Loading preview..."
	}

	var s strings.Builder
	s.WriteString(titleStyle.Render("Preview") + "\n\n")

	end := min(m.offset+m.pageSize(), len(m.lines))
	for _, line := range m.lines[m.offset:end] {
		s.WriteString("  " + line + "\n")
	}
	if end < len(m.lines) {
		s.WriteString(subtitleStyle.Render(fmt.Sprintf("  ... %d more lines", len(m.lines)-end)) + "\n")
	}

	s.WriteString("\n" + m.viewShares())
	s.WriteString("\n" + helpStyle.Render("  ↑/↓: scroll  i: back to editor"))
	return s.String()
}

// viewShares renders the services/tax bar with its legend
func (m *PreviewModel) viewShares() string {
	totals := m.inv.Totals()
	shares := domain.Shares(totals)
	if len(shares) == 0 {
		return subtitleStyle.Render("  Add priced items to see the breakdown") + "\n"
	}

	width := 40
	if m.width > 0 {
		width = min(max(m.width-20, 10), 60)
	}

	var s strings.Builder
	s.WriteString("  " + sharesBar(shares, width) + "\n")
	symbol := m.inv.Symbol()
	for _, share := range shares {
		style := servicesStyle
		if share.Name == "Tax" {
			style = taxStyle
		}
		pct := share.Value / totals.Total * 100
		s.WriteString(fmt.Sprintf("  %s %-16s %14s %5.1f%%\n",
			style.Render("█"), share.Name, formatMoney(symbol, share.Value), pct))
	}
	return s.String()
}
