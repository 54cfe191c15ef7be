package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/andy/lumina/internal/domain"
	"github.com/andy/lumina/internal/store"
)

// ClientRepo stores the saved-client list under KeySavedClients
type ClientRepo struct {
	store store.Store
}

// NewClientRepo creates a new ClientRepo
func NewClientRepo(s store.Store) *ClientRepo {
	return &ClientRepo{store: s}
}

// List returns all saved clients in insertion order
func (r *ClientRepo) List(ctx context.Context) ([]domain.SavedClient, error) {
	clients, err := store.LoadJSON(ctx, r.store, KeySavedClients, []domain.SavedClient{})
	if err != nil {
		return nil, err
	}
	if clients == nil {
		clients = []domain.SavedClient{}
	}
	return clients, nil
}

// Upsert adds a client or replaces the one with the same name (ignoring case)
func (r *ClientRepo) Upsert(ctx context.Context, client domain.SavedClient) error {
	client = domain.SavedClient{
		Name:    strings.TrimSpace(client.Name),
		Email:   strings.TrimSpace(client.Email),
		Address: strings.TrimSpace(client.Address),
	}
	if err := client.Validate(); err != nil {
		return fmt.Errorf("invalid client: %w", err)
	}

	clients, err := r.List(ctx)
	if err != nil {
		return err
	}

	replaced := false
	for i := range clients {
		if clients[i].SameName(client) {
			clients[i] = client
			replaced = true
			break
		}
	}
	if !replaced {
		clients = append(clients, client)
	}

	return store.SaveJSON(ctx, r.store, KeySavedClients, clients)
}

// Search returns saved clients whose name contains query, ignoring case.
// A blank query matches nothing.
func (r *ClientRepo) Search(ctx context.Context, query string) ([]domain.SavedClient, error) {
	clients, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	matches := make([]domain.SavedClient, 0)
	for _, c := range clients {
		if c.Matches(query) {
			matches = append(matches, c)
		}
	}
	return matches, nil
}

// GetByName returns the client with the given name, ignoring case
func (r *ClientRepo) GetByName(ctx context.Context, name string) (*domain.SavedClient, error) {
	clients, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range clients {
		if strings.EqualFold(c.Name, strings.TrimSpace(name)) {
			found := c
			return &found, nil
		}
	}
	return nil, fmt.Errorf("client not found: %s", name)
}
