package repository

import (
	"context"

	"github.com/andy/lumina/internal/domain"
)

// Storage keys, one independent JSON document each
const (
	KeyInvoiceDraft    = "invoice_data"
	KeyTheme           = "theme"
	KeyAuthUser        = "auth_user"
	KeyInvoiceSequence = "invoice_sequence"
	KeyBusinessProfile = "business_profile"
	KeySavedClients    = "saved_clients"
)

// DraftRepository persists the invoice being edited
type DraftRepository interface {
	// Load returns the saved draft, or the default invoice if none is stored or it is corrupt
	Load(ctx context.Context) (domain.InvoiceData, error)
	// Save writes the draft, retrying without the logo if the full record does not fit
	Save(ctx context.Context, inv domain.InvoiceData) error
}

// ProfileRepository persists the business profile
type ProfileRepository interface {
	Get(ctx context.Context) (*domain.BusinessProfile, error) // Returns nil if no profile is saved
	Save(ctx context.Context, profile domain.BusinessProfile) error
}

// ClientRepository persists the saved-client list used for recipient autocomplete
type ClientRepository interface {
	List(ctx context.Context) ([]domain.SavedClient, error)
	Upsert(ctx context.Context, client domain.SavedClient) error
	Search(ctx context.Context, query string) ([]domain.SavedClient, error)
	GetByName(ctx context.Context, name string) (*domain.SavedClient, error)
}

// SequenceRepository persists the invoice number sequence counter
type SequenceRepository interface {
	Get(ctx context.Context) (domain.Sequence, error)
	Save(ctx context.Context, seq domain.Sequence) error
}

// PreferenceRepository persists the theme and the signed-in user
type PreferenceRepository interface {
	Theme(ctx context.Context) (domain.Theme, error)
	SetTheme(ctx context.Context, theme domain.Theme) error
	User(ctx context.Context) (*domain.User, error) // Returns nil if nobody is signed in
	SetUser(ctx context.Context, user domain.User) error
	ClearUser(ctx context.Context) error
}
