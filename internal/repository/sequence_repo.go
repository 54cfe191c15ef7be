package repository

import (
	"context"
	"fmt"

	"github.com/andy/lumina/internal/domain"
	"github.com/andy/lumina/internal/store"
	"go.uber.org/zap"
)

// SequenceRepo stores the invoice counter as a plain decimal string under KeyInvoiceSequence
type SequenceRepo struct {
	store store.Store
}

// NewSequenceRepo creates a new SequenceRepo
func NewSequenceRepo(s store.Store) *SequenceRepo {
	return &SequenceRepo{store: s}
}

// Get returns the stored counter. A missing or unreadable counter is reported as absent.
func (r *SequenceRepo) Get(ctx context.Context) (domain.Sequence, error) {
	raw, ok, err := r.store.Get(ctx, KeyInvoiceSequence)
	if err != nil {
		return domain.Sequence{}, fmt.Errorf("failed to read invoice sequence: %w", err)
	}
	if !ok {
		return domain.Sequence{}, nil
	}

	seq, err := domain.ParseSequence(string(raw))
	if err != nil {
		zap.L().Warn("discarding corrupt invoice sequence", zap.Error(err))
		if delErr := r.store.Delete(ctx, KeyInvoiceSequence); delErr != nil {
			zap.L().Error("failed to clear invoice sequence", zap.Error(delErr))
		}
		return domain.Sequence{}, nil
	}
	return seq, nil
}

// Save writes the counter
func (r *SequenceRepo) Save(ctx context.Context, seq domain.Sequence) error {
	if err := r.store.Set(ctx, KeyInvoiceSequence, []byte(seq.String())); err != nil {
		return fmt.Errorf("failed to save invoice sequence: %w", err)
	}
	return nil
}
