//go:build !darwin

package crypto

import (
	"errors"
	"fmt"
	"os"
)

type fallbackKeyring struct {
	entry Entry
}

func newPlatformKeyring(entry Entry) Keyring {
	return &fallbackKeyring{entry: entry}
}

// GetKey retrieves the secret from the entry's environment variable
func (k *fallbackKeyring) GetKey() (string, error) {
	key := os.Getenv(k.entry.EnvVar)
	if key == "" {
		return "", fmt.Errorf("%s environment variable not set", k.entry.EnvVar)
	}

	return key, nil
}

// SetKey returns an error suggesting to set the environment variable
func (k *fallbackKeyring) SetKey(secret string) error {
	if secret == "" {
		return errors.New("secret cannot be empty")
	}

	return fmt.Errorf("keyring not available on this platform: please set the %s environment variable", k.entry.EnvVar)
}

// DeleteKey returns an error suggesting to unset the environment variable
func (k *fallbackKeyring) DeleteKey() error {
	return fmt.Errorf("keyring not available on this platform: please unset the %s environment variable manually", k.entry.EnvVar)
}

// IsAvailable reports whether the environment variable is set
func (k *fallbackKeyring) IsAvailable() bool {
	return os.Getenv(k.entry.EnvVar) != ""
}
