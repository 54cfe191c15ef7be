package repository

import (
	"context"

	"github.com/andy/lumina/internal/domain"
	"github.com/andy/lumina/internal/store"
)

// ProfileRepo stores the business profile under KeyBusinessProfile
type ProfileRepo struct {
	store store.Store
}

// NewProfileRepo creates a new ProfileRepo
func NewProfileRepo(s store.Store) *ProfileRepo {
	return &ProfileRepo{store: s}
}

// Get returns the saved profile, or nil if none is saved or it is corrupt
func (r *ProfileRepo) Get(ctx context.Context) (*domain.BusinessProfile, error) {
	return store.LoadJSON[*domain.BusinessProfile](ctx, r.store, KeyBusinessProfile, nil)
}

// Save writes the profile. Unlike the draft there is no reduced retry:
// a profile without its logo is not what the user asked to save.
func (r *ProfileRepo) Save(ctx context.Context, profile domain.BusinessProfile) error {
	return store.SaveJSON(ctx, r.store, KeyBusinessProfile, profile)
}
