package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Iron-Ham/teamboard/internal/errors"
)

// AuthKey is the store key of the authenticated session record.
const AuthKey = "auth.json"

// Auth is the signed-in state of the local user.
type Auth struct {
	Authenticated bool   `json:"authenticated"`
	UserID        string `json:"user_id,omitempty"`
	// Role is empty until the user picks one.
	Role      string `json:"role,omitempty"`
	Onboarded bool   `json:"onboarded"`
}

// AuthStore reads and writes the Auth record.
type AuthStore struct {
	store *FileStore
}

// NewAuthStore returns an AuthStore backed by store.
func NewAuthStore(store *FileStore) *AuthStore {
	return &AuthStore{store: store}
}

// Load returns the stored session. A missing record is reported as
// ErrSessionNotFound so callers can treat it as signed out.
func (s *AuthStore) Load(ctx context.Context) (Auth, error) {
	data, err := s.store.Load(ctx, AuthKey)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Auth{}, errors.NewNotFoundError("session", AuthKey).WithCause(errors.ErrSessionNotFound)
		}
		return Auth{}, err
	}

	var auth Auth
	if err := json.Unmarshal(data, &auth); err != nil {
		return Auth{}, fmt.Errorf("failed to parse session: %w", err)
	}
	return auth, nil
}

// Save replaces the stored session.
func (s *AuthStore) Save(ctx context.Context, auth Auth) error {
	data, err := json.MarshalIndent(auth, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	return s.store.Save(ctx, AuthKey, data)
}

// MarkOnboarded sets Onboarded on the stored session, creating a signed-out
// record if none exists.
func (s *AuthStore) MarkOnboarded(ctx context.Context) error {
	auth, err := s.Load(ctx)
	if err != nil && !errors.Is(err, errors.ErrSessionNotFound) {
		return err
	}
	auth.Onboarded = true
	return s.Save(ctx, auth)
}

// SignOut removes the stored session.
func (s *AuthStore) SignOut(ctx context.Context) error {
	if err := s.store.Delete(ctx, AuthKey); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	return nil
}
