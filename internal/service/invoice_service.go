package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/andy/lumina/internal/domain"
	"github.com/andy/lumina/internal/repository"
	"go.uber.org/zap"
)

var (
	ErrNoProfile = errors.New("no saved profile found; fill in your details and save the profile first")
)

// NewInvoicePrompt is shown before the current invoice is replaced
const NewInvoicePrompt = "Create new invoice? This will save your business profile but clear client details and generate a new invoice number."

// Confirmer asks the user to approve a destructive action
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

// AlwaysConfirm approves every prompt
var AlwaysConfirm = ConfirmFunc(func(context.Context, string) (bool, error) { return true, nil })

// InvoiceService manages the invoice draft, the business profile and saved clients
type InvoiceService interface {
	// Current returns the draft being edited
	Current(ctx context.Context) (domain.InvoiceData, error)

	// Update applies fn to the draft and saves the result. The draft is left
	// untouched when fn returns an error.
	Update(ctx context.Context, fn func(*domain.InvoiceData) error) (domain.InvoiceData, error)

	// StartNew replaces the draft with a fresh invoice after confirmation.
	// It reports false, and changes nothing, when the user declines.
	StartNew(ctx context.Context, confirm Confirmer) (domain.InvoiceData, bool, error)

	// SaveProfile stores the draft's sender identity and tax defaults as the business profile
	SaveProfile(ctx context.Context) (domain.BusinessProfile, error)

	// LoadProfile applies the saved business profile to the draft
	LoadProfile(ctx context.Context) (domain.InvoiceData, error)

	// SaveClient remembers the draft's recipient for autocomplete
	SaveClient(ctx context.Context) (domain.SavedClient, error)

	// SearchClients returns saved clients whose name contains query
	SearchClients(ctx context.Context, query string) ([]domain.SavedClient, error)

	// UseClient copies a saved client into the draft's recipient fields
	UseClient(ctx context.Context, name string) (domain.InvoiceData, error)

	// ComposeMail builds the mailto link for the draft
	ComposeMail(ctx context.Context) (MailtoResult, error)
}

// InvoiceServiceConfig carries the tunables of the invoice service
type InvoiceServiceConfig struct {
	NumberPrefix   string
	DueDays        int
	MaxMailtoChars int
}

type invoiceService struct {
	draftRepo    repository.DraftRepository
	profileRepo  repository.ProfileRepository
	clientRepo   repository.ClientRepository
	sequenceRepo repository.SequenceRepository
	cfg          InvoiceServiceConfig
	now          func() time.Time
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	draftRepo repository.DraftRepository,
	profileRepo repository.ProfileRepository,
	clientRepo repository.ClientRepository,
	sequenceRepo repository.SequenceRepository,
	cfg InvoiceServiceConfig,
) InvoiceService {
	if cfg.MaxMailtoChars <= 0 {
		cfg.MaxMailtoChars = MaxMailtoLength
	}
	return &invoiceService{
		draftRepo:    draftRepo,
		profileRepo:  profileRepo,
		clientRepo:   clientRepo,
		sequenceRepo: sequenceRepo,
		cfg:          cfg,
		now:          time.Now,
	}
}

func (s *invoiceService) Current(ctx context.Context) (domain.InvoiceData, error) {
	return s.draftRepo.Load(ctx)
}

func (s *invoiceService) Update(ctx context.Context, fn func(*domain.InvoiceData) error) (domain.InvoiceData, error) {
	current, err := s.draftRepo.Load(ctx)
	if err != nil {
		return current, err
	}

	next := current.Clone()
	if err := fn(&next); err != nil {
		return current, err
	}

	if err := s.draftRepo.Save(ctx, next); err != nil {
		return current, err
	}
	return next, nil
}

func (s *invoiceService) StartNew(ctx context.Context, confirm Confirmer) (domain.InvoiceData, bool, error) {
	current, err := s.draftRepo.Load(ctx)
	if err != nil {
		return current, false, err
	}

	ok, err := confirm.Confirm(ctx, NewInvoicePrompt)
	if err != nil {
		return current, false, fmt.Errorf("confirmation failed: %w", err)
	}
	if !ok {
		return current, false, nil
	}

	profile, err := s.profileRepo.Get(ctx)
	if err != nil {
		// The profile only seeds the sender details; carry on from the current invoice
		zap.L().Warn("could not load business profile for new invoice", zap.Error(err))
		profile = nil
	}

	seq, err := s.sequenceRepo.Get(ctx)
	if err != nil {
		return current, false, err
	}

	inv, next := StartNewInvoice(current, profile, seq, s.now(), MergeOptions{
		NumberPrefix: s.cfg.NumberPrefix,
		DueDays:      s.cfg.DueDays,
	})

	// The counter advances even if the new invoice is later discarded
	if err := s.sequenceRepo.Save(ctx, next); err != nil {
		return current, false, err
	}
	if err := s.draftRepo.Save(ctx, inv); err != nil {
		return current, false, err
	}

	return inv, true, nil
}

func (s *invoiceService) SaveProfile(ctx context.Context) (domain.BusinessProfile, error) {
	current, err := s.draftRepo.Load(ctx)
	if err != nil {
		return domain.BusinessProfile{}, err
	}

	profile := domain.ProfileFromInvoice(current)
	if err := s.profileRepo.Save(ctx, profile); err != nil {
		return profile, fmt.Errorf("failed to save profile; the logo might be too large for storage: %w", err)
	}
	return profile, nil
}

func (s *invoiceService) LoadProfile(ctx context.Context) (domain.InvoiceData, error) {
	profile, err := s.profileRepo.Get(ctx)
	if err != nil {
		return domain.InvoiceData{}, err
	}
	if profile == nil {
		return domain.InvoiceData{}, ErrNoProfile
	}

	return s.Update(ctx, func(inv *domain.InvoiceData) error {
		*inv = profile.ApplyTo(*inv)
		return nil
	})
}

func (s *invoiceService) SaveClient(ctx context.Context) (domain.SavedClient, error) {
	current, err := s.draftRepo.Load(ctx)
	if err != nil {
		return domain.SavedClient{}, err
	}

	client := current.ClientDetails()
	if err := client.Validate(); err != nil {
		return client, fmt.Errorf("please enter a client name: %w", err)
	}
	if err := s.clientRepo.Upsert(ctx, client); err != nil {
		return client, err
	}
	return client, nil
}

func (s *invoiceService) SearchClients(ctx context.Context, query string) ([]domain.SavedClient, error) {
	return s.clientRepo.Search(ctx, query)
}

func (s *invoiceService) UseClient(ctx context.Context, name string) (domain.InvoiceData, error) {
	client, err := s.clientRepo.GetByName(ctx, name)
	if err != nil {
		return domain.InvoiceData{}, err
	}

	return s.Update(ctx, func(inv *domain.InvoiceData) error {
		inv.ApplyClient(*client)
		return nil
	})
}

func (s *invoiceService) ComposeMail(ctx context.Context) (MailtoResult, error) {
	current, err := s.draftRepo.Load(ctx)
	if err != nil {
		return MailtoResult{}, err
	}
	return BuildMailtoWithLimit(current, current.Totals().Total, s.cfg.MaxMailtoChars)
}
