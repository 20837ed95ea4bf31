package session

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/GrupoGenezisTUP2024/E-commerce-Frontend/internal/api"
)

const (
	keyToken = "token"
	keyUser  = "user"

	// undefinedSentinel is what a broken client once wrote into storage.
	// Either entry holding it is treated as absent.
	undefinedSentinel = "undefined"
)

// ErrInvalidLoginResponse is returned when the auth service answers a login
// without both a user and a token. Session state is left untouched.
var ErrInvalidLoginResponse = errors.New("invalid login response")

// Storage is the two-entry durable client storage behind the store. The
// production implementation is a signed cookie pair; tests use a map.
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Delete(key string)
}

// AuthService is the slice of the auth client the store needs.
type AuthService interface {
	Login(ctx context.Context, creds api.Credentials) (*api.LoginResponse, error)
	Register(ctx context.Context, in api.RegisterRequest) error
}

// Store owns the current session. It is the only writer of the persisted
// token/user entries; views read it through the middleware-provided accessor.
type Store struct {
	auth    AuthService
	storage Storage

	user  *User
	token string
}

// NewStore hydrates a store from storage. A literal "undefined" in either
// entry counts as absent; a user record that fails to parse wipes both
// entries and yields an empty session instead of propagating the error.
func NewStore(auth AuthService, storage Storage) *Store {
	s := &Store{auth: auth, storage: storage}
	s.hydrate()
	return s
}

func (s *Store) hydrate() {
	if v, ok := s.storage.Get(keyToken); ok && v != "" && v != undefinedSentinel {
		s.token = v
	}

	raw, ok := s.storage.Get(keyUser)
	if !ok || raw == "" || raw == undefinedSentinel {
		return
	}
	var u User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		// Corrupt state is discarded, not surfaced.
		s.storage.Delete(keyUser)
		s.storage.Delete(keyToken)
		s.user = nil
		s.token = ""
		return
	}
	s.user = &u
}

// Login authenticates against the auth service. The response must carry both
// a user and a token; otherwise nothing is mutated and
// ErrInvalidLoginResponse is returned.
func (s *Store) Login(ctx context.Context, creds api.Credentials) error {
	resp, err := s.auth.Login(ctx, creds)
	if err != nil {
		return err
	}
	if resp == nil || resp.User == nil || resp.Token == "" {
		return ErrInvalidLoginResponse
	}

	user := NormalizeUser(*resp.User)
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}

	s.storage.Set(keyToken, resp.Token)
	s.storage.Set(keyUser, string(raw))
	s.token = resp.Token
	s.user = &user
	return nil
}

// Register forwards to the auth service. It never mutates session state; the
// caller is expected to log in afterwards.
func (s *Store) Register(ctx context.Context, in api.RegisterRequest) error {
	return s.auth.Register(ctx, in)
}

// Logout clears the in-memory session and removes both persisted entries.
// Safe to call with no session.
func (s *Store) Logout() {
	s.user = nil
	s.token = ""
	s.storage.Delete(keyToken)
	s.storage.Delete(keyUser)
}

// UpdateUser overwrites the in-memory and persisted user record. The caller
// hands in an already-normalized user; no re-validation happens here.
func (s *Store) UpdateUser(u User) {
	s.user = &u
	if raw, err := json.Marshal(u); err == nil {
		s.storage.Set(keyUser, string(raw))
	}
}

// Current returns the normalized user, or false when nobody is signed in.
func (s *Store) Current() (User, bool) {
	if s.user == nil {
		return User{}, false
	}
	return *s.user, true
}

func (s *Store) Token() string { return s.token }

// IsAuthenticated reports whether a token is present.
func (s *Store) IsAuthenticated() bool { return s.token != "" }
