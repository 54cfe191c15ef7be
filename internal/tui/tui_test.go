package tui

import (
	"context"
	"strings"
	"testing"

	"github.com/andy/lumina/internal/app"
	"github.com/andy/lumina/internal/config"
	"github.com/andy/lumina/internal/domain"
	"github.com/andy/lumina/internal/repository"
	"github.com/andy/lumina/internal/service"
	"github.com/andy/lumina/internal/store"
	tea "github.com/charmbracelet/bubbletea"
)

func newTestApp() *app.App {
	mem := store.NewMemoryStore()
	cfg := config.DefaultConfig()

	a := &app.App{
		Config:         cfg,
		DraftRepo:      repository.NewDraftRepo(mem),
		ProfileRepo:    repository.NewProfileRepo(mem),
		ClientRepo:     repository.NewClientRepo(mem),
		SequenceRepo:   repository.NewSequenceRepo(mem),
		PreferenceRepo: repository.NewPreferenceRepo(mem),
	}
	a.InvoiceService = service.NewInvoiceService(a.DraftRepo, a.ProfileRepo, a.ClientRepo, a.SequenceRepo, service.InvoiceServiceConfig{
		NumberPrefix:   cfg.Invoice.NumberPrefix,
		DueDays:        cfg.Invoice.DefaultDueDays,
		MaxMailtoChars: cfg.Mail.MaxLinkLength,
	})
	a.AccountService = service.NewAccountService(a.PreferenceRepo)
	return a
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyEnter() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEnter}
}

// press sends a key and runs the command it returns, feeding the result back
func press(t *testing.T, m tea.Model, k tea.KeyMsg) tea.Model {
	t.Helper()
	m, cmd := m.Update(k)
	if cmd != nil {
		m, _ = m.Update(cmd())
	}
	return m
}

func loadedEditor(t *testing.T, a *app.App) *EditorModel {
	t.Helper()
	m := NewEditorModel(a).(*EditorModel)
	m.Update(m.Init()())
	if !m.loaded {
		t.Fatalf("editor did not load: %v", m.err)
	}
	return m
}

func TestEditor_LoadsDraft(t *testing.T) {
	m := loadedEditor(t, newTestApp())

	if m.inv.InvoiceNumber != "INV-001" {
		t.Errorf("expected INV-001, got %s", m.inv.InvoiceNumber)
	}
	view := m.View()
	if !strings.Contains(view, "Invoice INV-001") {
		t.Errorf("expected title in view, got:\n%s", view)
	}
	if !strings.Contains(view, "$1,265.00") {
		t.Errorf("expected total in view, got:\n%s", view)
	}
}

func TestEditor_AddAndDeleteItem(t *testing.T) {
	m := loadedEditor(t, newTestApp())

	press(t, m, keyRunes("a"))
	if len(m.inv.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(m.inv.Items))
	}
	item, ok := m.selectedItem()
	if !ok || item.Description != "New Item" {
		t.Fatalf("expected cursor on the new item, got %+v", item)
	}

	press(t, m, keyRunes("d"))
	if len(m.inv.Items) != 2 {
		t.Errorf("expected 2 items after delete, got %d", len(m.inv.Items))
	}
}

func TestEditor_EditField(t *testing.T) {
	m := loadedEditor(t, newTestApp())

	m.Update(keyEnter())
	if !m.IsCapturingInput() {
		t.Fatal("expected the field editor to capture input")
	}
	m.input.SetValue("ACME-7")
	press(t, m, keyEnter())

	if m.IsCapturingInput() {
		t.Error("expected the editor to return to browse mode")
	}
	if m.inv.InvoiceNumber != "ACME-7" {
		t.Errorf("expected ACME-7, got %s", m.inv.InvoiceNumber)
	}
}

func TestEditor_NewInvoiceNeedsConfirmation(t *testing.T) {
	a := newTestApp()
	m := loadedEditor(t, a)

	m.Update(keyRunes("n"))
	if !m.IsCapturingInput() {
		t.Fatal("expected the confirmation to capture input")
	}
	press(t, m, keyRunes("N"))
	if m.inv.InvoiceNumber != "INV-001" {
		t.Errorf("declining should keep INV-001, got %s", m.inv.InvoiceNumber)
	}

	m.Update(keyRunes("n"))
	press(t, m, keyRunes("y"))
	if m.inv.InvoiceNumber != "INV-002" {
		t.Errorf("expected INV-002, got %s", m.inv.InvoiceNumber)
	}
	if len(m.inv.Items) != 1 || m.inv.Items[0].Description != "New Service" {
		t.Errorf("expected a single New Service item, got %+v", m.inv.Items)
	}

	stored, err := a.InvoiceService.Current(context.Background())
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if stored.InvoiceNumber != "INV-002" {
		t.Errorf("expected the new draft to be stored, got %s", stored.InvoiceNumber)
	}
}

func TestClients_UseClient(t *testing.T) {
	a := newTestApp()
	ctx := context.Background()
	if err := a.ClientRepo.Upsert(ctx, domain.SavedClient{Name: "Acme Corp", Email: "ap@acme.test"}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	m := NewClientsModel(a).(*ClientsModel)
	m.Update(m.Init()())
	if len(m.clients) != 1 {
		t.Fatalf("expected 1 client, got %d", len(m.clients))
	}

	_, cmd := m.Update(keyEnter())
	if cmd == nil {
		t.Fatal("expected a command")
	}
	_, cmd = m.Update(cmd())
	if cmd == nil {
		t.Fatal("expected a screen switch")
	}
	if msg, ok := cmd().(SwitchScreenMsg); !ok || msg.Screen != ScreenEditor {
		t.Errorf("expected switch to editor, got %#v", msg)
	}

	inv, err := a.InvoiceService.Current(ctx)
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if inv.RecipientName != "Acme Corp" || inv.RecipientEmail != "ap@acme.test" {
		t.Errorf("recipient not applied: %+v", inv)
	}
}

func TestClients_SearchFilters(t *testing.T) {
	a := newTestApp()
	ctx := context.Background()
	for _, name := range []string{"Acme Corp", "Globex", "Acme Labs"} {
		if err := a.ClientRepo.Upsert(ctx, domain.SavedClient{Name: name}); err != nil {
			t.Fatalf("Upsert: %v", err)
		}
	}

	m := NewClientsModel(a).(*ClientsModel)
	m.Update(m.Init()())
	m.Update(keyRunes("/"))
	if !m.IsCapturingInput() {
		t.Fatal("expected search to capture input")
	}

	m.Update(keyRunes("acme"))
	if m.query != "acme" {
		t.Fatalf("expected query acme, got %q", m.query)
	}
	m.Update(m.loadClients()())
	if len(m.clients) != 2 {
		t.Errorf("expected 2 matches, got %d", len(m.clients))
	}
}

func TestSettings_ToggleTheme(t *testing.T) {
	a := newTestApp()
	m := NewSettingsModel(a).(*SettingsModel)
	m.Update(m.Init()())

	_, cmd := m.Update(keyRunes("t"))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(ThemeChangedMsg)
	if !ok || msg.Theme != domain.ThemeDark {
		t.Fatalf("expected dark theme, got %#v", msg)
	}

	theme, err := a.AccountService.Theme(context.Background())
	if err != nil {
		t.Fatalf("Theme: %v", err)
	}
	if theme != domain.ThemeDark {
		t.Errorf("expected stored dark theme, got %s", theme)
	}
}

func TestPreview_ShowsInvoice(t *testing.T) {
	m := NewPreviewModel(newTestApp()).(*PreviewModel)
	m.Update(m.Init()())

	view := m.View()
	for _, want := range []string{"INVOICE INV-001", "Services/Items", "Tax"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in preview, got:\n%s", want, view)
		}
	}
}

func TestModel_NavigationAndCapture(t *testing.T) {
	a := newTestApp()
	m := New(a)
	next, _ := m.Update(m.editor.Init()())
	m = next.(Model)

	next, _ = m.Update(keyRunes("c"))
	m = next.(Model)
	if m.currentScreen != ScreenClients {
		t.Fatalf("expected clients screen, got %s", m.currentScreen)
	}

	next, _ = m.Update(keyRunes("i"))
	m = next.(Model)
	next, _ = m.Update(keyRunes("n"))
	m = next.(Model)

	// The editor is asking for confirmation, so "c" must not navigate
	next, _ = m.Update(keyRunes("c"))
	m = next.(Model)
	if m.currentScreen != ScreenEditor {
		t.Errorf("expected to stay on the editor, got %s", m.currentScreen)
	}

	_, cmd := m.Update(keyRunes("q"))
	if cmd != nil {
		if _, ok := cmd().(tea.QuitMsg); ok {
			t.Error("q should not quit while the editor captures input")
		}
	}
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "$0.00"},
		{1265, "$1,265.00"},
		{1234567.891, "$1,234,567.89"},
		{-42.5, "-$42.50"},
	}
	for _, tt := range tests {
		if got := formatMoney("$", tt.amount); got != tt.want {
			t.Errorf("formatMoney(%v) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestTruncateStr(t *testing.T) {
	if got := truncateStr("short", 10); got != "short" {
		t.Errorf("got %q", got)
	}
	if got := truncateStr("Professional Consultation", 10); got != "Profess..." {
		t.Errorf("got %q", got)
	}
	if got := truncateStr("€€€€€€", 5); got != "€€..." {
		t.Errorf("got %q", got)
	}
}

func TestSharesBar(t *testing.T) {
	shares := domain.Shares(domain.Totals{Subtotal: 900, TaxAmount: 100, Total: 1000})
	bar := sharesBar(shares, 20)
	if n := strings.Count(bar, "█"); n != 20 {
		t.Errorf("expected 20 blocks, got %d", n)
	}
	if sharesBar(nil, 20) != "" {
		t.Error("expected empty bar for no shares")
	}
}
