package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/planit-app/planit/internal/models"
)

// Preference keys. One row per key in the prefs table.
const (
	prefTheme        = "theme"
	prefProfileImage = "profile_image"
	prefLocalAccount = "local_account"
	prefAuthToken    = "auth_token"
)

func (s *Store) getPref(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.GetContext(ctx, &value, "SELECT value FROM prefs WHERE key = $1", key)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", ErrNotFound
		}
		return "", err
	}
	return value, nil
}

func (s *Store) setPref(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO prefs (key, value) VALUES ($1, $2)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`
	_, err := s.db.ExecContext(ctx, query, key, value)
	return err
}

func (s *Store) deletePref(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM prefs WHERE key = $1", key)
	return err
}

// Theme returns the persisted theme preference, defaulting to system.
func (s *Store) Theme(ctx context.Context) (models.Theme, error) {
	v, err := s.getPref(ctx, prefTheme)
	if err == ErrNotFound {
		return models.ThemeSystem, nil
	}
	if err != nil {
		return "", err
	}
	return models.Theme(v), nil
}

// SetTheme persists the theme preference.
func (s *Store) SetTheme(ctx context.Context, t models.Theme) error {
	if !t.Valid() {
		return fmt.Errorf("invalid theme %q", t)
	}
	return s.setPref(ctx, prefTheme, string(t))
}

// ProfileImage returns the persisted profile-image URI, empty when unset.
func (s *Store) ProfileImage(ctx context.Context) (string, error) {
	v, err := s.getPref(ctx, prefProfileImage)
	if err == ErrNotFound {
		return "", nil
	}
	return v, err
}

// SetProfileImage persists the profile-image URI.
func (s *Store) SetProfileImage(ctx context.Context, uri string) error {
	return s.setPref(ctx, prefProfileImage, uri)
}

// LocalAccount returns the on-device account fallback, nil when unset.
func (s *Store) LocalAccount(ctx context.Context) (*models.LocalAccount, error) {
	v, err := s.getPref(ctx, prefLocalAccount)
	if err == ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var acct models.LocalAccount
	if err := json.Unmarshal([]byte(v), &acct); err != nil {
		return nil, fmt.Errorf("decode local account: %w", err)
	}
	return &acct, nil
}

// SetLocalAccount persists the on-device account fallback.
func (s *Store) SetLocalAccount(ctx context.Context, acct models.LocalAccount) error {
	data, err := json.Marshal(acct)
	if err != nil {
		return fmt.Errorf("encode local account: %w", err)
	}
	return s.setPref(ctx, prefLocalAccount, string(data))
}

// AuthToken returns the persisted bearer token, empty when logged out.
func (s *Store) AuthToken(ctx context.Context) (string, error) {
	v, err := s.getPref(ctx, prefAuthToken)
	if err == ErrNotFound {
		return "", nil
	}
	return v, err
}

// SetAuthToken persists the bearer token.
func (s *Store) SetAuthToken(ctx context.Context, token string) error {
	return s.setPref(ctx, prefAuthToken, token)
}

// ClearAuthToken removes the persisted bearer token.
func (s *Store) ClearAuthToken(ctx context.Context) error {
	return s.deletePref(ctx, prefAuthToken)
}
