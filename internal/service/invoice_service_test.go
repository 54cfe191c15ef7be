package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/andy/lumina/internal/domain"
	"github.com/andy/lumina/internal/repository"
	"github.com/andy/lumina/internal/store"
)

// mock implementations
type mockDraftRepo struct {
	draft domain.InvoiceData
	saves int
}

func (m *mockDraftRepo) Load(ctx context.Context) (domain.InvoiceData, error) {
	return m.draft.Clone(), nil
}
func (m *mockDraftRepo) Save(ctx context.Context, inv domain.InvoiceData) error {
	m.draft = inv.Clone()
	m.saves++
	return nil
}

type mockProfileRepo struct {
	profile *domain.BusinessProfile
	err     error
	saved   *domain.BusinessProfile
}

func (m *mockProfileRepo) Get(ctx context.Context) (*domain.BusinessProfile, error) {
	return m.profile, m.err
}
func (m *mockProfileRepo) Save(ctx context.Context, profile domain.BusinessProfile) error {
	m.saved = &profile
	return nil
}

type mockSequenceRepo struct {
	seq   domain.Sequence
	saves int
}

func (m *mockSequenceRepo) Get(ctx context.Context) (domain.Sequence, error) { return m.seq, nil }
func (m *mockSequenceRepo) Save(ctx context.Context, seq domain.Sequence) error {
	m.seq = seq
	m.saves++
	return nil
}

func newTestService(draft *mockDraftRepo, profile *mockProfileRepo, seq *mockSequenceRepo) *invoiceService {
	return &invoiceService{
		draftRepo:    draft,
		profileRepo:  profile,
		clientRepo:   repository.NewClientRepo(store.NewMemoryStore()),
		sequenceRepo: seq,
		cfg:          InvoiceServiceConfig{MaxMailtoChars: MaxMailtoLength},
		now:          func() time.Time { return fixedNow },
	}
}

func TestStartNew_Declined(t *testing.T) {
	ctx := context.Background()
	draft := &mockDraftRepo{draft: domain.DefaultInvoice(fixedNow)}
	seq := &mockSequenceRepo{}
	svc := newTestService(draft, &mockProfileRepo{}, seq)

	var prompt string
	decline := ConfirmFunc(func(_ context.Context, p string) (bool, error) {
		prompt = p
		return false, nil
	})

	inv, ok, err := svc.StartNew(ctx, decline)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("expected StartNew to report declined")
	}
	if prompt != NewInvoicePrompt {
		t.Fatalf("unexpected prompt %q", prompt)
	}
	if inv.InvoiceNumber != "INV-001" || inv.RecipientName != "Client Name" {
		t.Fatalf("expected the current draft back, got %+v", inv)
	}
	if draft.saves != 0 || seq.saves != 0 {
		t.Fatalf("expected nothing written, got %d draft saves and %d sequence saves", draft.saves, seq.saves)
	}
}

func TestStartNew_ConfirmError(t *testing.T) {
	draft := &mockDraftRepo{draft: domain.DefaultInvoice(fixedNow)}
	seq := &mockSequenceRepo{}
	svc := newTestService(draft, &mockProfileRepo{}, seq)

	boom := errors.New("tty closed")
	_, ok, err := svc.StartNew(context.Background(), ConfirmFunc(func(context.Context, string) (bool, error) {
		return false, boom
	}))
	if !errors.Is(err, boom) {
		t.Fatalf("expected confirm error, got %v", err)
	}
	if ok || draft.saves != 0 || seq.saves != 0 {
		t.Fatalf("expected nothing written")
	}
}

func TestStartNew_Confirmed(t *testing.T) {
	ctx := context.Background()
	draft := &mockDraftRepo{draft: domain.DefaultInvoice(fixedNow)}
	rate := 5.0
	profile := &mockProfileRepo{profile: &domain.BusinessProfile{
		SenderName: "Acme Studio",
		Currency:   "GBP",
		TaxRate:    &rate,
		TaxType:    domain.TaxTypeStandard,
	}}
	seq := &mockSequenceRepo{}
	svc := newTestService(draft, profile, seq)

	inv, ok, err := svc.StartNew(ctx, AlwaysConfirm)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("expected StartNew to report confirmed")
	}
	if inv.InvoiceNumber != "INV-002" || inv.SenderName != "Acme Studio" || inv.Currency != "GBP" || inv.TaxRate != 5 {
		t.Fatalf("unexpected new invoice %+v", inv)
	}
	if seq.seq.Value != 2 || seq.saves != 1 {
		t.Fatalf("expected counter 2 saved once, got %+v (%d saves)", seq.seq, seq.saves)
	}
	if draft.draft.InvoiceNumber != "INV-002" {
		t.Fatalf("expected new draft to be persisted")
	}

	inv, _, err = svc.StartNew(ctx, AlwaysConfirm)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inv.InvoiceNumber != "INV-003" {
		t.Fatalf("expected INV-003, got %s", inv.InvoiceNumber)
	}
}

func TestStartNew_ProfileErrorFallsBackToCurrent(t *testing.T) {
	current := domain.DefaultInvoice(fixedNow)
	current.SenderName = "Current Co"
	draft := &mockDraftRepo{draft: current}
	profile := &mockProfileRepo{err: errors.New("disk gone")}
	svc := newTestService(draft, profile, &mockSequenceRepo{})

	inv, ok, err := svc.StartNew(context.Background(), AlwaysConfirm)
	if err != nil || !ok {
		t.Fatalf("expected success, got ok=%v err=%v", ok, err)
	}
	if inv.SenderName != "Current Co" {
		t.Fatalf("expected sender from current invoice, got %q", inv.SenderName)
	}
}

func TestUpdate_ErrorLeavesDraft(t *testing.T) {
	draft := &mockDraftRepo{draft: domain.DefaultInvoice(fixedNow)}
	svc := newTestService(draft, &mockProfileRepo{}, &mockSequenceRepo{})

	_, err := svc.Update(context.Background(), func(inv *domain.InvoiceData) error {
		inv.Notes = "changed"
		return inv.RemoveItem("missing")
	})
	if !errors.Is(err, domain.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
	if draft.saves != 0 || draft.draft.Notes != "Thank you for your business!" {
		t.Fatalf("expected draft untouched")
	}
}

func TestSaveAndLoadProfile(t *testing.T) {
	ctx := context.Background()
	current := domain.DefaultInvoice(fixedNow)
	current.SenderName = "Acme Studio"
	current.TaxRate = 0
	draft := &mockDraftRepo{draft: current}
	profile := &mockProfileRepo{}
	svc := newTestService(draft, profile, &mockSequenceRepo{})

	if _, err := svc.LoadProfile(ctx); !errors.Is(err, ErrNoProfile) {
		t.Fatalf("expected ErrNoProfile, got %v", err)
	}

	saved, err := svc.SaveProfile(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.SenderName != "Acme Studio" || saved.TaxRate == nil || *saved.TaxRate != 0 {
		t.Fatalf("unexpected saved profile %+v", saved)
	}

	profile.profile = profile.saved
	draft.draft.SenderName = "Someone Else"
	draft.draft.TaxRate = 12

	inv, err := svc.LoadProfile(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inv.SenderName != "Acme Studio" || inv.TaxRate != 0 {
		t.Fatalf("expected profile applied, got %+v", inv)
	}
}

func TestSaveAndUseClient(t *testing.T) {
	ctx := context.Background()
	current := domain.DefaultInvoice(fixedNow)
	current.RecipientName = "  Globex  "
	current.RecipientEmail = "ap@globex.test"
	draft := &mockDraftRepo{draft: current}
	svc := newTestService(draft, &mockProfileRepo{}, &mockSequenceRepo{})

	if _, err := svc.SaveClient(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	matches, err := svc.SearchClients(ctx, "glob")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 1 || matches[0].Name != "Globex" {
		t.Fatalf("unexpected matches %+v", matches)
	}

	draft.draft.ApplyClient(domain.SavedClient{})
	inv, err := svc.UseClient(ctx, "GLOBEX")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inv.RecipientName != "Globex" || inv.RecipientEmail != "ap@globex.test" {
		t.Fatalf("expected client applied, got %+v", inv)
	}
}

func TestSaveClient_RequiresName(t *testing.T) {
	current := domain.DefaultInvoice(fixedNow)
	current.RecipientName = "   "
	svc := newTestService(&mockDraftRepo{draft: current}, &mockProfileRepo{}, &mockSequenceRepo{})

	if _, err := svc.SaveClient(context.Background()); err == nil {
		t.Fatalf("expected an error for a blank client name")
	}
}

func TestComposeMail(t *testing.T) {
	current := domain.DefaultInvoice(fixedNow)
	svc := newTestService(&mockDraftRepo{draft: current}, &mockProfileRepo{}, &mockSequenceRepo{})

	res, err := svc.ComposeMail(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(res.URI, "mailto:client@example.com?subject=") {
		t.Fatalf("unexpected link %s", res.URI)
	}
	if !strings.Contains(res.URI, EncodeURIComponent("Total Amount: $1265.00")) {
		t.Fatalf("expected total in link")
	}
}
