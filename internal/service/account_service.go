package service

import (
	"context"

	"github.com/andy/lumina/internal/domain"
	"github.com/andy/lumina/internal/repository"
)

// AccountService manages the locally remembered user and display preferences
type AccountService interface {
	Login(ctx context.Context, email, name string) (domain.User, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*domain.User, error)

	Theme(ctx context.Context) (domain.Theme, error)
	SetTheme(ctx context.Context, theme domain.Theme) error
	ToggleTheme(ctx context.Context) (domain.Theme, error)
}

type accountService struct {
	prefRepo repository.PreferenceRepository
}

// NewAccountService creates a new account service
func NewAccountService(prefRepo repository.PreferenceRepository) AccountService {
	return &accountService{prefRepo: prefRepo}
}

func (s *accountService) Login(ctx context.Context, email, name string) (domain.User, error) {
	user, err := domain.NewUser(email, name)
	if err != nil {
		return user, err
	}
	if err := s.prefRepo.SetUser(ctx, user); err != nil {
		return user, err
	}
	return user, nil
}

func (s *accountService) Logout(ctx context.Context) error {
	return s.prefRepo.ClearUser(ctx)
}

func (s *accountService) CurrentUser(ctx context.Context) (*domain.User, error) {
	return s.prefRepo.User(ctx)
}

func (s *accountService) Theme(ctx context.Context) (domain.Theme, error) {
	return s.prefRepo.Theme(ctx)
}

func (s *accountService) SetTheme(ctx context.Context, theme domain.Theme) error {
	return s.prefRepo.SetTheme(ctx, theme)
}

func (s *accountService) ToggleTheme(ctx context.Context) (domain.Theme, error) {
	current, err := s.prefRepo.Theme(ctx)
	if err != nil {
		return current, err
	}
	next := domain.ThemeDark
	if current == domain.ThemeDark {
		next = domain.ThemeLight
	}
	if err := s.prefRepo.SetTheme(ctx, next); err != nil {
		return current, err
	}
	return next, nil
}
