package repository

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/andy/lumina/internal/domain"
	"github.com/andy/lumina/internal/store"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.WarnLevel)
	orig := zap.L()
	zap.ReplaceGlobals(zap.New(core))
	t.Cleanup(func() { zap.ReplaceGlobals(orig) })
	return logs
}

func TestDraftRepo_LoadDefaultWhenMissing(t *testing.T) {
	repo := NewDraftRepo(store.NewMemoryStore())
	repo.now = func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }

	inv, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inv.InvoiceNumber != "INV-001" || inv.Date != "2026-01-01" {
		t.Fatalf("expected default invoice, got %s dated %s", inv.InvoiceNumber, inv.Date)
	}
}

func TestDraftRepo_CorruptDraftFallsBackToDefault(t *testing.T) {
	logs := observeLogs(t)
	ctx := context.Background()
	s := store.NewMemoryStore()
	_ = s.Set(ctx, KeyInvoiceDraft, []byte(`{"items": "oops"`))
	_ = s.Set(ctx, KeyBusinessProfile, []byte(`{"senderName":"Acme"}`))

	inv, err := NewDraftRepo(s).Load(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inv.InvoiceNumber != "INV-001" {
		t.Fatalf("expected default invoice, got %s", inv.InvoiceNumber)
	}
	if logs.Len() == 0 {
		t.Fatalf("expected corruption to be logged")
	}

	profile, err := NewProfileRepo(s).Get(ctx)
	if err != nil || profile == nil || profile.SenderName != "Acme" {
		t.Fatalf("expected profile to survive draft corruption, got %+v (%v)", profile, err)
	}
}

func TestDraftRepo_SaveStripsLogoWhenTooLarge(t *testing.T) {
	logs := observeLogs(t)
	ctx := context.Background()
	s := store.NewMemoryStore()
	s.Quota = 2048

	inv := domain.DefaultInvoice(time.Now())
	inv.Logo = "data:image/png;base64," + strings.Repeat("A", 4096)

	repo := NewDraftRepo(s)
	if err := repo.Save(ctx, inv); err != nil {
		t.Fatalf("save must degrade silently, got %v", err)
	}

	saved, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.Logo != "" {
		t.Fatalf("expected logo to be stripped")
	}
	if saved.SenderName != inv.SenderName {
		t.Fatalf("expected textual data to be kept")
	}
	if logs.Len() != 1 {
		t.Fatalf("expected one warning, got %d", logs.Len())
	}
}

func TestDraftRepo_SaveGivesUpSilently(t *testing.T) {
	logs := observeLogs(t)
	s := store.NewMemoryStore()
	s.Quota = 10

	inv := domain.DefaultInvoice(time.Now())
	inv.Logo = "data:image/png;base64,AAAA"
	if err := NewDraftRepo(s).Save(context.Background(), inv); err != nil {
		t.Fatalf("save must degrade silently, got %v", err)
	}
	if s.Len() != 0 {
		t.Fatalf("expected nothing stored")
	}
	if logs.FilterMessage("failed to save draft even without logo").Len() != 1 {
		t.Fatalf("expected final failure to be logged")
	}
}

func TestDraftRepo_NullDraftLoadsDefault(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	_ = s.Set(ctx, KeyInvoiceDraft, []byte("null"))

	inv, err := NewDraftRepo(s).Load(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inv.InvoiceNumber != "INV-001" || inv.Currency != "USD" || len(inv.Items) != 2 {
		t.Fatalf("expected default invoice, got %+v", inv)
	}
}

func TestProfileRepo_PreservesZeroTaxRate(t *testing.T) {
	ctx := context.Background()
	repo := NewProfileRepo(store.NewMemoryStore())

	none, err := repo.Get(ctx)
	if err != nil || none != nil {
		t.Fatalf("expected no profile, got %+v (%v)", none, err)
	}

	inv := domain.DefaultInvoice(time.Now())
	inv.TaxRate = 0
	if err := repo.Save(ctx, domain.ProfileFromInvoice(inv)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p, err := repo.Get(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.TaxRate == nil || *p.TaxRate != 0 {
		t.Fatalf("expected saved tax rate 0 to be present, got %v", p.TaxRate)
	}
}

func TestClientRepo_UpsertAndSearch(t *testing.T) {
	ctx := context.Background()
	repo := NewClientRepo(store.NewMemoryStore())

	if err := repo.Upsert(ctx, domain.SavedClient{Name: "  Globex Corp ", Email: "ap@globex.test"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.Upsert(ctx, domain.SavedClient{Name: "Initech"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.Upsert(ctx, domain.SavedClient{Name: "globex corp", Email: "billing@globex.test"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	clients, _ := repo.List(ctx)
	if len(clients) != 2 {
		t.Fatalf("expected 2 clients after upsert, got %d", len(clients))
	}
	if clients[0].Email != "billing@globex.test" {
		t.Fatalf("expected existing client to be replaced in place, got %+v", clients[0])
	}

	matches, _ := repo.Search(ctx, "GLOB")
	if len(matches) != 1 || matches[0].Name != "globex corp" {
		t.Fatalf("unexpected matches %+v", matches)
	}
	if blank, _ := repo.Search(ctx, "  "); len(blank) != 0 {
		t.Fatalf("expected blank query to match nothing")
	}

	if err := repo.Upsert(ctx, domain.SavedClient{Name: " "}); err == nil {
		t.Fatalf("expected error for nameless client")
	}
}

func TestSequenceRepo_CorruptCounterIsAbsent(t *testing.T) {
	observeLogs(t)
	ctx := context.Background()
	s := store.NewMemoryStore()
	_ = s.Set(ctx, KeyInvoiceSequence, []byte("NaN"))

	repo := NewSequenceRepo(s)
	seq, err := repo.Get(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seq.Present {
		t.Fatalf("expected absent sequence, got %+v", seq)
	}

	if err := repo.Save(ctx, domain.Sequence{Value: 12, Present: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	raw, _, _ := s.Get(ctx, KeyInvoiceSequence)
	if string(raw) != "12" {
		t.Fatalf("expected counter stored as plain string, got %q", raw)
	}
}

func TestPreferenceRepo(t *testing.T) {
	ctx := context.Background()
	repo := NewPreferenceRepo(store.NewMemoryStore())

	if theme, _ := repo.Theme(ctx); theme != domain.ThemeLight {
		t.Fatalf("expected light default, got %s", theme)
	}
	_ = repo.SetTheme(ctx, domain.ThemeDark)
	if theme, _ := repo.Theme(ctx); theme != domain.ThemeDark {
		t.Fatalf("expected dark, got %s", theme)
	}

	_ = repo.SetUser(ctx, domain.User{Email: "a@b.c", Name: "a"})
	u, err := repo.User(ctx)
	if err != nil || u == nil || u.Email != "a@b.c" {
		t.Fatalf("expected stored user, got %+v (%v)", u, err)
	}
	_ = repo.ClearUser(ctx)
	if u, _ := repo.User(ctx); u != nil {
		t.Fatalf("expected user to be cleared")
	}
}
