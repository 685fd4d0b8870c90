// Package session owns the authenticated user's identity and bearer
// credential, persisted so a restart does not force re-login. It is the
// only place that reads or writes the persisted session.
package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/solveigbr/holidaze/pkg/client"
	"github.com/solveigbr/holidaze/pkg/domain"
)

// Persisted storage keys. Both are written and cleared together.
const (
	userKey  = "holidaze_user"
	tokenKey = "holidaze_token"
)

// Store is the single source of truth for who the current user is and
// what credential authenticates them. User and token are present
// together or not at all.
type Store struct {
	api     *client.Client
	storage Storage
	user    *domain.Profile
	token   string
}

// New creates a store. Call Restore before first use.
func New(api *client.Client, storage Storage) *Store {
	return &Store{api: api, storage: storage}
}

// User returns the current profile, or nil when logged out.
func (s *Store) User() *domain.Profile { return s.user }

// Token returns the bearer credential, or empty when logged out.
func (s *Store) Token() string { return s.token }

// LoggedIn reports whether a session is active.
func (s *Store) LoggedIn() bool { return s.user != nil }

// Restore loads the persisted session. A corrupt or half-missing cache
// degrades to logged out and clears both keys; Restore never fails.
func (s *Store) Restore() {
	rawUser, okUser := s.storage.Get(userKey)
	token, okToken := s.storage.Get(tokenKey)
	if !okUser || !okToken {
		s.clear()
		return
	}
	var user domain.Profile
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil || user.Name == "" {
		s.clear()
		return
	}
	s.user = &user
	s.token = token
	s.api.SetToken(token)
}

// Login exchanges credentials for a session. On failure the session is
// left unchanged.
func (s *Store) Login(ctx context.Context, email, password string) error {
	auth, err := s.api.Login(ctx, email, password)
	if err != nil {
		return &AuthenticationError{Message: client.Message(err), Err: err}
	}
	user := domain.Profile{
		Name:         auth.Name,
		Email:        auth.Email,
		Avatar:       auth.Avatar,
		VenueManager: auth.VenueManager,
	}
	if err := s.persist(&user, auth.AccessToken); err != nil {
		return fmt.Errorf("session.Login: %w", err)
	}
	s.user = &user
	s.token = auth.AccessToken
	s.api.SetToken(auth.AccessToken)
	return nil
}

// Register creates a new account. It does not log the account in; the
// caller follows up with Login.
func (s *Store) Register(ctx context.Context, name, email, password string, venueManager bool) error {
	_, err := s.api.Register(ctx, client.RegisterRequest{
		Name:         name,
		Email:        email,
		Password:     password,
		VenueManager: venueManager,
	})
	if err != nil {
		return &RegistrationError{Message: client.Message(err), Err: err}
	}
	return nil
}

// UpdateAvatar replaces the current user's avatar URL, remotely and in
// the persisted session. A call with no active session is a no-op.
func (s *Store) UpdateAvatar(ctx context.Context, avatarURL string) error {
	if s.user == nil {
		return nil
	}
	updated, err := s.api.UpdateProfileAvatar(ctx, s.user.Name, avatarURL)
	if err != nil {
		return &ProfileUpdateError{Message: client.Message(err), Err: err}
	}
	user := *s.user
	user.Avatar = updated.Avatar
	if err := s.persist(&user, s.token); err != nil {
		return fmt.Errorf("session.UpdateAvatar: %w", err)
	}
	s.user = &user
	return nil
}

// Logout clears the persisted and in-memory session. It is idempotent
// and has no network effect.
func (s *Store) Logout() {
	s.clear()
}

// persist writes both keys through to storage before any in-memory
// update, so memory stays re-derivable from storage via Restore.
func (s *Store) persist(user *domain.Profile, token string) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	if err := s.storage.Set(userKey, string(raw)); err != nil {
		return err
	}
	if err := s.storage.Set(tokenKey, token); err != nil {
		return err
	}
	return nil
}

func (s *Store) clear() {
	s.storage.Remove(userKey)
	s.storage.Remove(tokenKey)
	s.user = nil
	s.token = ""
	s.api.SetToken("")
}
