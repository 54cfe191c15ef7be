package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/andy/lumina/internal/app"
	"github.com/andy/lumina/internal/assist"
	"github.com/andy/lumina/internal/domain"
	"github.com/andy/lumina/internal/service"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type editorMode int

const (
	editorModeBrowse     editorMode = iota
	editorModeEditField             // single header field
	editorModeEditItem              // description/qty/price form
	editorModeConfirmNew            // y/n before starting a new invoice
)

// item form field indices
const (
	itemFieldDescription = iota
	itemFieldQty
	itemFieldPrice
	itemFieldCount
)

var itemFieldNames = [itemFieldCount]string{"description", "qty", "price"}

type invoiceLoadedMsg struct {
	inv    domain.InvoiceData
	status string
	err    error
}

type newInvoiceMsg struct {
	inv domain.InvoiceData
	ok  bool
	err error
}

type generatedMsg struct {
	status string
	apply  func(*domain.InvoiceData) error
}

// EditorModel edits the current invoice: header fields first, then line items
type EditorModel struct {
	app    *app.App
	inv    domain.InvoiceData
	loaded bool
	cursor int

	mode       editorMode
	input      textinput.Model
	itemFields []textinput.Model
	itemFocus  int
	itemID     string

	busy      string
	err       error
	statusMsg string
}

// NewEditorModel creates the invoice editor screen
func NewEditorModel(a *app.App) tea.Model {
	return &EditorModel{app: a}
}

// IsCapturingInput returns true when a form or the new-invoice confirmation is active
func (m *EditorModel) IsCapturingInput() bool {
	return m.mode != editorModeBrowse
}

func (m *EditorModel) Init() tea.Cmd {
	return m.load()
}

func (m *EditorModel) load() tea.Cmd {
	return func() tea.Msg {
		inv, err := m.app.InvoiceService.Current(context.Background())
		return invoiceLoadedMsg{inv: inv, err: err}
	}
}

// update runs fn against the stored draft and reports the result
func (m *EditorModel) update(status string, fn func(*domain.InvoiceData) error) tea.Cmd {
	return func() tea.Msg {
		inv, err := m.app.InvoiceService.Update(context.Background(), fn)
		if err != nil {
			return invoiceLoadedMsg{inv: inv, err: err}
		}
		return invoiceLoadedMsg{inv: inv, status: status}
	}
}

func (m *EditorModel) rowCount() int {
	return len(service.Fields) + len(m.inv.Items)
}

// selectedItem returns the item under the cursor, if the cursor is on an item row
func (m *EditorModel) selectedItem() (domain.LineItem, bool) {
	i := m.cursor - len(service.Fields)
	if i < 0 || i >= len(m.inv.Items) {
		return domain.LineItem{}, false
	}
	return m.inv.Items[i], true
}

func (m *EditorModel) selectedField() (service.Field, bool) {
	if m.cursor < 0 || m.cursor >= len(service.Fields) {
		return service.Field{}, false
	}
	return service.Fields[m.cursor], true
}

func (m *EditorModel) openFieldEditor(f service.Field) tea.Cmd {
	m.input = textinput.New()
	m.input.CharLimit = 500
	m.input.Width = 60
	m.input.SetValue(service.FieldValue(m.inv, f.Name))
	switch f.Name {
	case "date", "due":
		m.input.Placeholder = "YYYY-MM-DD, today or +14"
	case "tax-type":
		m.input.Placeholder = "standard, cgst_sgst or igst"
	case "currency":
		m.input.Placeholder = "USD"
	}
	m.mode = editorModeEditField
	return m.input.Focus()
}

func (m *EditorModel) openItemEditor(item domain.LineItem) tea.Cmd {
	m.itemFields = make([]textinput.Model, itemFieldCount)

	m.itemFields[itemFieldDescription] = textinput.New()
	m.itemFields[itemFieldDescription].Placeholder = "Description"
	m.itemFields[itemFieldDescription].CharLimit = 200
	m.itemFields[itemFieldDescription].Width = 50
	m.itemFields[itemFieldDescription].SetValue(item.Description)

	m.itemFields[itemFieldQty] = textinput.New()
	m.itemFields[itemFieldQty].Placeholder = "1"
	m.itemFields[itemFieldQty].CharLimit = 12
	m.itemFields[itemFieldQty].Width = 12
	m.itemFields[itemFieldQty].SetValue(domain.FormatRate(item.Quantity))

	m.itemFields[itemFieldPrice] = textinput.New()
	m.itemFields[itemFieldPrice].Placeholder = "0.00"
	m.itemFields[itemFieldPrice].CharLimit = 15
	m.itemFields[itemFieldPrice].Width = 15
	m.itemFields[itemFieldPrice].SetValue(domain.FormatRate(item.Price))

	m.itemID = item.ID
	m.itemFocus = itemFieldDescription
	m.mode = editorModeEditItem
	return m.itemFields[itemFieldDescription].Focus()
}

func (m *EditorModel) saveField(f service.Field) tea.Cmd {
	value := m.input.Value()
	return m.update(f.Label+" updated", func(inv *domain.InvoiceData) error {
		return service.SetField(inv, f.Name, value)
	})
}

func (m *EditorModel) saveItem() tea.Cmd {
	id := m.itemID
	values := make([]string, itemFieldCount)
	for i := range m.itemFields {
		values[i] = m.itemFields[i].Value()
	}
	return m.update("Item updated", func(inv *domain.InvoiceData) error {
		for i, v := range values {
			if err := service.SetItemField(inv, id, itemFieldNames[i], v); err != nil {
				return err
			}
		}
		return nil
	})
}

func (m *EditorModel) startNew() tea.Cmd {
	return func() tea.Msg {
		// The user has already confirmed in the editor
		inv, ok, err := m.app.InvoiceService.StartNew(context.Background(), service.AlwaysConfirm)
		return newInvoiceMsg{inv: inv, ok: ok, err: err}
	}
}

func (m *EditorModel) saveProfile() tea.Cmd {
	return func() tea.Msg {
		if _, err := m.app.InvoiceService.SaveProfile(context.Background()); err != nil {
			return invoiceLoadedMsg{inv: m.inv, err: err}
		}
		return invoiceLoadedMsg{inv: m.inv, status: "Business profile saved successfully!"}
	}
}

func (m *EditorModel) loadProfile() tea.Cmd {
	return func() tea.Msg {
		inv, err := m.app.InvoiceService.LoadProfile(context.Background())
		if err != nil {
			return invoiceLoadedMsg{inv: m.inv, err: err}
		}
		return invoiceLoadedMsg{inv: inv, status: "Business profile loaded"}
	}
}

func (m *EditorModel) saveClient() tea.Cmd {
	return func() tea.Msg {
		client, err := m.app.InvoiceService.SaveClient(context.Background())
		if err != nil {
			return invoiceLoadedMsg{inv: m.inv, err: err}
		}
		return invoiceLoadedMsg{inv: m.inv, status: fmt.Sprintf("Client %q saved", client.Name)}
	}
}

func (m *EditorModel) mail() tea.Cmd {
	return func() tea.Msg {
		res, err := m.app.InvoiceService.ComposeMail(context.Background())
		if err != nil {
			return invoiceLoadedMsg{inv: m.inv, err: err}
		}
		if err := app.OpenURI(res.URI); err != nil {
			return invoiceLoadedMsg{inv: m.inv, err: fmt.Errorf("failed to open mail client: %w", err)}
		}

		status := "Opened mail client"
		switch {
		case res.Warning != nil:
			status = res.Warning.Error()
		case res.Truncated:
			status = "Opened mail client (body shortened to fit)"
		}
		return invoiceLoadedMsg{inv: m.inv, status: status}
	}
}

func (m *EditorModel) export() tea.Cmd {
	inv := m.inv
	return func() tea.Msg {
		path, err := m.app.PDF.WriteFile(m.app.Config.Invoice.OutputDir, inv)
		if err != nil {
			return invoiceLoadedMsg{inv: inv, err: err}
		}
		return invoiceLoadedMsg{inv: inv, status: "Saved " + path}
	}
}

// generate drafts text for the row under the cursor
func (m *EditorModel) generate() tea.Cmd {
	svc, err := m.app.Assist()
	if err != nil {
		m.err = err
		return nil
	}

	inv := m.inv
	if item, ok := m.selectedItem(); ok {
		m.busy = "Rewriting item description..."
		return func() tea.Msg {
			desc := svc.ItemDescription(context.Background(), item.Description)
			return generatedMsg{status: "Item description rewritten", apply: func(d *domain.InvoiceData) error {
				return d.SetItemDescription(item.ID, desc)
			}}
		}
	}

	f, _ := m.selectedField()
	switch f.Name {
	case "terms":
		m.busy = "Generating terms..."
		return func() tea.Msg {
			descriptions := make([]string, 0, len(inv.Items))
			for _, item := range inv.Items {
				descriptions = append(descriptions, item.Description)
			}
			terms := svc.Terms(context.Background(), inv.SenderName, assist.SummarizeItems(descriptions))
			return generatedMsg{status: "Terms generated", apply: func(d *domain.InvoiceData) error {
				d.Terms = terms
				return nil
			}}
		}
	case "notes":
		m.busy = "Writing thank-you note..."
		return func() tea.Msg {
			note := svc.ThankYouNote(context.Background(), inv.RecipientName, inv.SenderName)
			return generatedMsg{status: "Thank-you note written", apply: func(d *domain.InvoiceData) error {
				d.Notes = note
				return nil
			}}
		}
	}

	m.err = errors.New("AI drafts are available on Notes, Terms and item rows")
	return nil
}

func (m *EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case invoiceLoadedMsg:
		m.busy = ""
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.inv = msg.inv
		m.loaded = true
		m.err = nil
		m.statusMsg = msg.status
		if m.cursor >= m.rowCount() {
			m.cursor = m.rowCount() - 1
		}
		return m, nil

	case newInvoiceMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		if msg.ok {
			m.inv = msg.inv
			m.cursor = 0
			m.statusMsg = fmt.Sprintf("New invoice %s created", msg.inv.InvoiceNumber)
		}
		return m, nil

	case generatedMsg:
		return m, m.update(msg.status, msg.apply)

	case RefreshDataMsg:
		return m, m.load()
	}

	switch m.mode {
	case editorModeEditField:
		return m.updateFieldForm(msg)
	case editorModeEditItem:
		return m.updateItemForm(msg)
	case editorModeConfirmNew:
		return m.updateConfirmNew(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !m.loaded || m.busy != "" {
		return m, nil
	}

	m.err = nil
	m.statusMsg = ""
	switch {
	case key.Matches(keyMsg, DefaultKeyMap.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, DefaultKeyMap.Down):
		if m.cursor < m.rowCount()-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, DefaultKeyMap.Select):
		if item, ok := m.selectedItem(); ok {
			return m, m.openItemEditor(item)
		}
		if f, ok := m.selectedField(); ok {
			return m, m.openFieldEditor(f)
		}
	case key.Matches(keyMsg, DefaultKeyMap.AddItem):
		m.cursor = m.rowCount()
		return m, m.update("Item added", func(inv *domain.InvoiceData) error {
			inv.AddItem()
			return nil
		})
	case key.Matches(keyMsg, DefaultKeyMap.Delete):
		if item, ok := m.selectedItem(); ok {
			return m, m.update("Item removed", func(inv *domain.InvoiceData) error {
				return inv.RemoveItem(item.ID)
			})
		}
	case key.Matches(keyMsg, DefaultKeyMap.New):
		m.mode = editorModeConfirmNew
	case key.Matches(keyMsg, DefaultKeyMap.SaveProfile):
		return m, m.saveProfile()
	case key.Matches(keyMsg, DefaultKeyMap.LoadProfile):
		return m, m.loadProfile()
	case key.Matches(keyMsg, DefaultKeyMap.SaveClient):
		return m, m.saveClient()
	case key.Matches(keyMsg, DefaultKeyMap.Mail):
		return m, m.mail()
	case key.Matches(keyMsg, DefaultKeyMap.Export):
		return m, m.export()
	case key.Matches(keyMsg, DefaultKeyMap.Generate):
		return m, m.generate()
	}

	return m, nil
}

func (m *EditorModel) updateFieldForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.mode = editorModeBrowse
			return m, nil
		case "enter":
			m.mode = editorModeBrowse
			f, _ := m.selectedField()
			return m, m.saveField(f)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *EditorModel) updateItemForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.mode = editorModeBrowse
			return m, nil

		case "tab", "down":
			m.itemFields[m.itemFocus].Blur()
			m.itemFocus = (m.itemFocus + 1) % itemFieldCount
			return m, m.itemFields[m.itemFocus].Focus()

		case "shift+tab", "up":
			m.itemFields[m.itemFocus].Blur()
			m.itemFocus = (m.itemFocus - 1 + itemFieldCount) % itemFieldCount
			return m, m.itemFields[m.itemFocus].Focus()

		case "enter":
			if m.itemFocus == itemFieldCount-1 {
				m.mode = editorModeBrowse
				return m, m.saveItem()
			}
			m.itemFields[m.itemFocus].Blur()
			m.itemFocus++
			return m, m.itemFields[m.itemFocus].Focus()

		case "ctrl+s":
			m.mode = editorModeBrowse
			return m, m.saveItem()
		}
	}

	var cmd tea.Cmd
	m.itemFields[m.itemFocus], cmd = m.itemFields[m.itemFocus].Update(msg)
	return m, cmd
}

func (m *EditorModel) updateConfirmNew(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "y", "Y":
		m.mode = editorModeBrowse
		return m, m.startNew()
	case "n", "N", "esc":
		m.mode = editorModeBrowse
		m.statusMsg = "Cancelled"
	}
	return m, nil
}

func (m *EditorModel) View() string {
	if !m.loaded {
		if m.err != nil {
			return lipgloss.NewStyle().Foreground(errorColor).Render(fmt.Sprintf("Error: %v", m.err))
		}
		return "Loading invoice..."
	}

	var s strings.Builder
	s.WriteString(titleStyle.Render("Invoice "+m.inv.InvoiceNumber) + "  ")
	s.WriteString(subtitleStyle.Render(fmt.Sprintf("%s · due %s", m.inv.Date, m.inv.DueDate)) + "\n\n")

	labelStyle := lipgloss.NewStyle().Width(18)
	for i, f := range service.Fields {
		value := truncateStr(oneLine(service.FieldValue(m.inv, f.Name)), 56)
		if f.Name == "tax-type" {
			value = m.inv.TaxType.Label()
		}
		line := fmt.Sprintf("%s %s", labelStyle.Render(f.Label+":"), value)
		s.WriteString(m.renderRow(i, line) + "\n")

		if m.mode == editorModeEditField && i == m.cursor {
			s.WriteString("    " + m.input.View() + "\n")
		}
	}

	s.WriteString("\n" + subtitleStyle.Render(fmt.Sprintf("  %-34s %8s %12s %12s", "Item", "Qty", "Price", "Amount")) + "\n")
	symbol := m.inv.Symbol()
	if len(m.inv.Items) == 0 {
		s.WriteString(subtitleStyle.Render("  No items. Press a to add one.") + "\n")
	}
	for i, item := range m.inv.Items {
		row := len(service.Fields) + i
		line := fmt.Sprintf("%-34s %8s %12s %12s",
			truncateStr(item.Description, 34),
			domain.FormatRate(item.Quantity),
			formatMoney(symbol, item.Price),
			formatMoney(symbol, item.Amount()),
		)
		s.WriteString(m.renderRow(row, line) + "\n")

		if m.mode == editorModeEditItem && item.ID == m.itemID {
			s.WriteString(m.viewItemForm())
		}
	}

	totals := m.inv.Totals()
	s.WriteString("\n")
	s.WriteString(fmt.Sprintf("  %-20s %14s\n", "Subtotal", formatMoney(symbol, totals.Subtotal)))
	for _, line := range domain.TaxBreakdown(m.inv.TaxType, m.inv.TaxRate, totals.TaxAmount) {
		s.WriteString(fmt.Sprintf("  %-20s %14s\n", line.Title(), formatMoney(symbol, line.Amount)))
	}
	s.WriteString("  " + totalStyle.Render(fmt.Sprintf("%-20s %14s", "Total", formatMoney(symbol, totals.Total))) + "\n")

	if m.mode == editorModeConfirmNew {
		s.WriteString("\n" + lipgloss.NewStyle().Foreground(warningColor).Bold(true).
			Render("  "+service.NewInvoicePrompt+" [y/N]") + "\n")
	}

	if m.busy != "" {
		s.WriteString("\n" + lipgloss.NewStyle().Foreground(accentColor).Render("  "+m.busy) + "\n")
	}
	if m.statusMsg != "" {
		s.WriteString("\n" + lipgloss.NewStyle().Foreground(successColor).Render("  "+m.statusMsg) + "\n")
	}
	if m.err != nil {
		s.WriteString("\n" + lipgloss.NewStyle().Foreground(errorColor).Render(fmt.Sprintf("  Error: %v", m.err)) + "\n")
	}

	s.WriteString("\n" + m.helpLine())
	return s.String()
}

func (m *EditorModel) renderRow(row int, line string) string {
	if row == m.cursor && m.mode == editorModeBrowse {
		return selectedStyle.Render("> " + line)
	}
	return "  " + line
}

func (m *EditorModel) viewItemForm() string {
	var s strings.Builder
	labels := [itemFieldCount]string{"Description:", "Qty:", "Price:"}
	for i, label := range labels {
		labelStyle := subtitleStyle
		if i == m.itemFocus {
			labelStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
		}
		s.WriteString(fmt.Sprintf("    %s %s\n", labelStyle.Render(label), m.itemFields[i].View()))
	}
	return s.String()
}

func (m *EditorModel) helpLine() string {
	switch m.mode {
	case editorModeEditField:
		return helpStyle.Render("  enter: save  esc: cancel")
	case editorModeEditItem:
		return helpStyle.Render("  tab/shift+tab: navigate fields  ctrl+s: save  enter: next/save  esc: cancel")
	case editorModeConfirmNew:
		return helpStyle.Render("  y: create new invoice  n/esc: cancel")
	}
	return helpStyle.Render("  ↑/↓: move  enter: edit  a: add item  d: delete item  g: AI draft\n" +
		"  n: new invoice  s/l: save/load profile  w: save client  m: email  x: export PDF")
}
