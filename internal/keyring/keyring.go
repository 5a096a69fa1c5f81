// Package keyring wraps the OS keyring for the two secrets ascend manages:
// the sync-service session token and an optional database connection string.
package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/ascend/internal/constants"
)

var (
	// ErrNotFound is returned when no entry exists in the keyring
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

func get(user string) (string, error) {
	value, err := keyring.Get(constants.AppName, user)
	if err != nil {
		if err == keyring.ErrNotFound {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return value, nil
}

func set(user, value string) error {
	if value == "" {
		return errors.New("keyring value cannot be empty")
	}
	if err := keyring.Set(constants.AppName, user, value); err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return nil
}

func del(user string) error {
	err := keyring.Delete(constants.AppName, user)
	if err != nil {
		if err == keyring.ErrNotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}

// GetSessionToken retrieves the stored session token.
func GetSessionToken() (string, error) { return get(constants.KeyringTokenUser) }

// SetSessionToken stores the session token.
func SetSessionToken(token string) error { return set(constants.KeyringTokenUser, token) }

// DeleteSessionToken removes the session token.
func DeleteSessionToken() error { return del(constants.KeyringTokenUser) }

// GetConnectionString retrieves the stored database connection string.
func GetConnectionString() (string, error) { return get(constants.KeyringConnStringUser) }

// SetConnectionString stores the database connection string.
func SetConnectionString(connStr string) error { return set(constants.KeyringConnStringUser, connStr) }

// DeleteConnectionString removes the database connection string.
func DeleteConnectionString() error { return del(constants.KeyringConnStringUser) }

// IsAvailable checks if the OS keyring is usable on the current system.
// Best effort: a not-found result still proves the keyring responds.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || err == keyring.ErrNotFound
}
