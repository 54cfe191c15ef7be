package repository

import (
	"context"
	"fmt"

	"github.com/andy/lumina/internal/domain"
	"github.com/andy/lumina/internal/store"
)

// PreferenceRepo stores the theme and the signed-in user
type PreferenceRepo struct {
	store store.Store
}

// NewPreferenceRepo creates a new PreferenceRepo
func NewPreferenceRepo(s store.Store) *PreferenceRepo {
	return &PreferenceRepo{store: s}
}

// Theme returns the saved theme, defaulting to light.
// The theme is stored as a bare word, not JSON.
func (r *PreferenceRepo) Theme(ctx context.Context) (domain.Theme, error) {
	raw, ok, err := r.store.Get(ctx, KeyTheme)
	if err != nil {
		return domain.ThemeLight, fmt.Errorf("failed to read theme: %w", err)
	}
	if !ok {
		return domain.ThemeLight, nil
	}
	theme, err := domain.ParseTheme(string(raw))
	if err != nil {
		return domain.ThemeLight, nil
	}
	return theme, nil
}

// SetTheme saves the theme
func (r *PreferenceRepo) SetTheme(ctx context.Context, theme domain.Theme) error {
	if err := r.store.Set(ctx, KeyTheme, []byte(theme)); err != nil {
		return fmt.Errorf("failed to save theme: %w", err)
	}
	return nil
}

// User returns the signed-in user, or nil
func (r *PreferenceRepo) User(ctx context.Context) (*domain.User, error) {
	return store.LoadJSON[*domain.User](ctx, r.store, KeyAuthUser, nil)
}

// SetUser remembers the signed-in user
func (r *PreferenceRepo) SetUser(ctx context.Context, user domain.User) error {
	return store.SaveJSON(ctx, r.store, KeyAuthUser, user)
}

// ClearUser signs the user out
func (r *PreferenceRepo) ClearUser(ctx context.Context) error {
	return r.store.Delete(ctx, KeyAuthUser)
}
