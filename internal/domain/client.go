package domain

import (
	"errors"
	"strings"
)

// SavedClient is a remembered recipient used for autocomplete
type SavedClient struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// Validate returns an error if the client is invalid
func (c SavedClient) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("client name is required")
	}
	return nil
}

// Matches reports whether the client name contains query, ignoring case
func (c SavedClient) Matches(query string) bool {
	q := strings.TrimSpace(query)
	if q == "" {
		return false
	}
	return strings.Contains(strings.ToLower(c.Name), strings.ToLower(q))
}

// SameName reports whether two clients have the same name, ignoring case
func (c SavedClient) SameName(other SavedClient) bool {
	return strings.EqualFold(c.Name, other.Name)
}

// User is the locally remembered signed-in user. There is no server behind it.
type User struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// NewUser creates a user, deriving the name from the email when none is given
func NewUser(email, name string) (User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return User{}, errors.New("email is required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}
	return User{Email: email, Name: name}, nil
}

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme converts a string to a Theme
func ParseTheme(s string) (Theme, error) {
	switch t := Theme(strings.ToLower(strings.TrimSpace(s))); t {
	case ThemeLight, ThemeDark:
		return t, nil
	default:
		return "", errors.New("theme must be light or dark")
	}
}
