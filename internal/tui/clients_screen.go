package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/andy/lumina/internal/app"
	"github.com/andy/lumina/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// clientMode represents the current screen mode
type clientMode int

const (
	clientModeList clientMode = iota
	clientModeSearch
	clientModeNew
)

// form field indices
const (
	fieldName = iota
	fieldEmail
	fieldAddress
	fieldCount
)

// ClientsModel lists saved clients, filters them by name and applies one to the invoice
type ClientsModel struct {
	app     *app.App
	clients []domain.SavedClient
	cursor  int
	query   string
	loading bool
	err     error

	statusMsg string

	mode       clientMode
	search     textinput.Model
	fields     []textinput.Model
	fieldFocus int
}

type clientsDataMsg struct {
	clients []domain.SavedClient
	err     error
}

type clientSavedMsg struct {
	name string
	err  error
}

type clientUsedMsg struct {
	name string
	err  error
}

// NewClientsModel creates a new clients screen model
func NewClientsModel(a *app.App) tea.Model {
	return &ClientsModel{
		app:     a,
		loading: true,
	}
}

// IsCapturingInput returns true when the search box or the form is active
func (m *ClientsModel) IsCapturingInput() bool {
	return m.mode != clientModeList
}

func (m *ClientsModel) Init() tea.Cmd {
	return m.loadClients()
}

// loadClients lists every saved client, or the matches for the current query
func (m *ClientsModel) loadClients() tea.Cmd {
	query := m.query
	return func() tea.Msg {
		ctx := context.Background()
		if strings.TrimSpace(query) == "" {
			clients, err := m.app.ClientRepo.List(ctx)
			return clientsDataMsg{clients: clients, err: err}
		}
		clients, err := m.app.InvoiceService.SearchClients(ctx, query)
		return clientsDataMsg{clients: clients, err: err}
	}
}

func (m *ClientsModel) useClient(name string) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.app.InvoiceService.UseClient(context.Background(), name); err != nil {
			return clientUsedMsg{err: err}
		}
		return clientUsedMsg{name: name}
	}
}

// saveRecipient remembers the recipient currently on the invoice
func (m *ClientsModel) saveRecipient() tea.Cmd {
	return func() tea.Msg {
		client, err := m.app.InvoiceService.SaveClient(context.Background())
		return clientSavedMsg{name: client.Name, err: err}
	}
}

func (m *ClientsModel) saveForm() tea.Cmd {
	client := domain.SavedClient{
		Name:    strings.TrimSpace(m.fields[fieldName].Value()),
		Email:   strings.TrimSpace(m.fields[fieldEmail].Value()),
		Address: strings.TrimSpace(m.fields[fieldAddress].Value()),
	}
	return func() tea.Msg {
		if err := client.Validate(); err != nil {
			return clientSavedMsg{err: err}
		}
		if err := m.app.ClientRepo.Upsert(context.Background(), client); err != nil {
			return clientSavedMsg{err: err}
		}
		return clientSavedMsg{name: client.Name}
	}
}

func (m *ClientsModel) openSearch() tea.Cmd {
	m.search = textinput.New()
	m.search.Placeholder = "Client name"
	m.search.CharLimit = 100
	m.search.Width = 40
	m.search.SetValue(m.query)
	m.mode = clientModeSearch
	return m.search.Focus()
}

func (m *ClientsModel) initForm() {
	m.fields = make([]textinput.Model, fieldCount)

	m.fields[fieldName] = textinput.New()
	m.fields[fieldName].Placeholder = "Client name"
	m.fields[fieldName].CharLimit = 100
	m.fields[fieldName].Width = 40

	m.fields[fieldEmail] = textinput.New()
	m.fields[fieldEmail].Placeholder = "billing@client.com"
	m.fields[fieldEmail].CharLimit = 100
	m.fields[fieldEmail].Width = 40

	m.fields[fieldAddress] = textinput.New()
	m.fields[fieldAddress].Placeholder = "Street, City"
	m.fields[fieldAddress].CharLimit = 200
	m.fields[fieldAddress].Width = 60

	m.fieldFocus = fieldName
	m.fields[fieldName].Focus()
}

func (m *ClientsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case clientsDataMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.clients = msg.clients
		if m.cursor >= len(m.clients) {
			m.cursor = max(len(m.clients)-1, 0)
		}
		return m, nil

	case clientSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.mode = clientModeList
		m.err = nil
		m.statusMsg = fmt.Sprintf("Client %q saved", msg.name)
		return m, m.loadClients()

	case clientUsedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.statusMsg = ""
		return m, func() tea.Msg { return SwitchScreenMsg{Screen: ScreenEditor} }

	case RefreshDataMsg:
		return m, m.loadClients()
	}

	switch m.mode {
	case clientModeSearch:
		return m.updateSearch(msg)
	case clientModeNew:
		return m.updateForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	m.err = nil
	switch {
	case key.Matches(keyMsg, DefaultKeyMap.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, DefaultKeyMap.Down):
		if m.cursor < len(m.clients)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, DefaultKeyMap.Select):
		if m.cursor < len(m.clients) {
			return m, m.useClient(m.clients[m.cursor].Name)
		}
	case key.Matches(keyMsg, DefaultKeyMap.Search):
		m.statusMsg = ""
		return m, m.openSearch()
	case key.Matches(keyMsg, DefaultKeyMap.New):
		m.statusMsg = ""
		m.mode = clientModeNew
		m.initForm()
		return m, m.fields[m.fieldFocus].Focus()
	case key.Matches(keyMsg, DefaultKeyMap.SaveClient):
		return m, m.saveRecipient()
	case key.Matches(keyMsg, DefaultKeyMap.Back):
		if m.query != "" {
			m.query = ""
			return m, m.loadClients()
		}
	}

	return m, nil
}

// updateSearch filters the list as the query is typed
func (m *ClientsModel) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.mode = clientModeList
			m.query = ""
			return m, m.loadClients()
		case "enter":
			m.mode = clientModeList
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != m.query {
		m.query = m.search.Value()
		m.cursor = 0
		return m, tea.Batch(cmd, m.loadClients())
	}
	return m, cmd
}

func (m *ClientsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.mode = clientModeList
			m.err = nil
			return m, nil

		case "tab", "down":
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus + 1) % fieldCount
			return m, m.fields[m.fieldFocus].Focus()

		case "shift+tab", "up":
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus - 1 + fieldCount) % fieldCount
			return m, m.fields[m.fieldFocus].Focus()

		case "enter":
			if m.fieldFocus == fieldCount-1 {
				return m, m.saveForm()
			}
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus++
			return m, m.fields[m.fieldFocus].Focus()

		case "ctrl+s":
			return m, m.saveForm()
		}
	}

	var cmd tea.Cmd
	m.fields[m.fieldFocus], cmd = m.fields[m.fieldFocus].Update(msg)
	return m, cmd
}

func (m *ClientsModel) View() string {
	if m.mode == clientModeNew {
		return m.viewForm()
	}

	var s strings.Builder
	s.WriteString(titleStyle.Render("Clients") + "\n\n")

	if m.mode == clientModeSearch || m.query != "" {
		if m.mode == clientModeSearch {
			s.WriteString("  Search: " + m.search.View() + "\n\n")
		} else {
			s.WriteString(subtitleStyle.Render(fmt.Sprintf("  Filter: %q (esc to clear)", m.query)) + "\n\n")
		}
	}

	if m.statusMsg != "" {
		s.WriteString(lipgloss.NewStyle().Foreground(successColor).Render("  "+m.statusMsg) + "\n\n")
	}

	switch {
	case m.loading:
		s.WriteString("  Loading clients...\n")
	case len(m.clients) == 0 && m.query != "":
		s.WriteString(subtitleStyle.Render("  No saved clients match.") + "\n")
	case len(m.clients) == 0:
		s.WriteString(subtitleStyle.Render("  No saved clients yet. Press n to add one or w to save the invoice recipient.") + "\n")
	default:
		s.WriteString(subtitleStyle.Render(fmt.Sprintf("  %-26s %-30s %s", "Name", "Email", "Address")) + "\n")
		for i, c := range m.clients {
			line := fmt.Sprintf("%-26s %-30s %s",
				truncateStr(c.Name, 26),
				truncateStr(c.Email, 30),
				truncateStr(oneLine(c.Address), 40),
			)
			if i == m.cursor {
				s.WriteString(selectedStyle.Render("> "+line) + "\n")
			} else {
				s.WriteString("  " + line + "\n")
			}
		}
	}

	if m.err != nil {
		s.WriteString("\n" + lipgloss.NewStyle().Foreground(errorColor).Render(fmt.Sprintf("  Error: %v", m.err)) + "\n")
	}

	if m.mode == clientModeSearch {
		s.WriteString("\n" + helpStyle.Render("  type to filter  enter: done  esc: clear"))
	} else {
		s.WriteString("\n" + helpStyle.Render("  ↑/↓: move  enter: use on invoice  /: search  n: new client  w: save invoice recipient"))
	}
	return s.String()
}

func (m *ClientsModel) viewForm() string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("New Client") + "\n\n")

	labels := []string{"Name:", "Email:", "Address:"}
	for i, label := range labels {
		indicator := "  "
		labelStyle := subtitleStyle
		if i == m.fieldFocus {
			indicator = "> "
			labelStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
		}
		s.WriteString(fmt.Sprintf("%s%s\n  %s\n\n", indicator, labelStyle.Render(label), m.fields[i].View()))
	}

	if m.err != nil {
		s.WriteString(lipgloss.NewStyle().Foreground(errorColor).Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n")
	}

	s.WriteString(helpStyle.Render("  tab/shift+tab: navigate fields  ctrl+s: save  enter: next/save  esc: cancel"))
	return s.String()
}
