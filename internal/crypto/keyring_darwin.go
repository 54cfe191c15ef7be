//go:build darwin

package crypto

import (
	"errors"
	"fmt"
	"os"

	"github.com/zalando/go-keyring"
)

type darwinKeyring struct {
	entry Entry
}

func newPlatformKeyring(entry Entry) Keyring {
	return &darwinKeyring{entry: entry}
}

// GetKey retrieves the secret from macOS Keychain. The environment variable,
// when set, takes precedence.
func (k *darwinKeyring) GetKey() (string, error) {
	if v := os.Getenv(k.entry.EnvVar); v != "" {
		return v, nil
	}

	key, err := keyring.Get(ServiceName, k.entry.Name)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", fmt.Errorf("%s not found in keychain: %w", k.entry.Name, err)
		}
		return "", fmt.Errorf("failed to retrieve %s from keychain: %w", k.entry.Name, err)
	}

	if key == "" {
		return "", fmt.Errorf("%s is empty", k.entry.Name)
	}

	return key, nil
}

// SetKey stores the secret in macOS Keychain
func (k *darwinKeyring) SetKey(secret string) error {
	if secret == "" {
		return errors.New("secret cannot be empty")
	}

	if err := keyring.Set(ServiceName, k.entry.Name, secret); err != nil {
		return fmt.Errorf("failed to store %s in keychain: %w", k.entry.Name, err)
	}

	return nil
}

// DeleteKey removes the secret from macOS Keychain
func (k *darwinKeyring) DeleteKey() error {
	err := keyring.Delete(ServiceName, k.entry.Name)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("%s not found in keychain: %w", k.entry.Name, err)
		}
		return fmt.Errorf("failed to delete %s from keychain: %w", k.entry.Name, err)
	}

	return nil
}

// IsAvailable checks if the macOS Keychain is accessible
func (k *darwinKeyring) IsAvailable() bool {
	testKey := "__lumina_availability_test__"
	if err := keyring.Set(ServiceName, testKey, "test"); err != nil {
		return false
	}

	_ = keyring.Delete(ServiceName, testKey)
	return true
}
