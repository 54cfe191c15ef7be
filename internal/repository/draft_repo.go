package repository

import (
	"context"
	"time"

	"github.com/andy/lumina/internal/domain"
	"github.com/andy/lumina/internal/store"
	"go.uber.org/zap"
)

// DraftRepo stores the invoice draft under KeyInvoiceDraft
type DraftRepo struct {
	store store.Store
	now   func() time.Time
}

// NewDraftRepo creates a new DraftRepo
func NewDraftRepo(s store.Store) *DraftRepo {
	return &DraftRepo{store: s, now: time.Now}
}

// Load returns the saved draft or the default invoice
func (r *DraftRepo) Load(ctx context.Context) (domain.InvoiceData, error) {
	def := domain.DefaultInvoice(r.now())
	inv, err := store.LoadJSON(ctx, r.store, KeyInvoiceDraft, def)
	if err != nil {
		return def, err
	}
	if inv.Items == nil {
		inv.Items = []domain.LineItem{}
	}
	return inv, nil
}

// Save writes the draft. If the write fails it is retried with the logo
// stripped; if that also fails the failure is logged and dropped.
func (r *DraftRepo) Save(ctx context.Context, inv domain.InvoiceData) error {
	err := store.SaveJSON(ctx, r.store, KeyInvoiceDraft, inv)
	if err == nil {
		return nil
	}

	if inv.Logo == "" {
		zap.L().Error("failed to save draft", zap.Error(err))
		return nil
	}
	zap.L().Warn("failed to save draft, retrying without logo", zap.Error(err))

	stripped := inv.Clone()
	stripped.Logo = ""
	if err := store.SaveJSON(ctx, r.store, KeyInvoiceDraft, stripped); err != nil {
		zap.L().Error("failed to save draft even without logo", zap.Error(err))
	}
	return nil
}
