package store

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"recharge-earn/internal/api"
)

// Storage keys. auth-storage holds the versioned session record; token and
// user are kept as duplicates so the API client can read them directly.
const (
	authStorageKey = "auth-storage"
	tokenKey       = "token"
	userKey        = "user"
)

// authStorageVersion guards the persisted schema so fields can be added
// without breaking sessions written by older builds.
const authStorageVersion = 1

type persistedAuth struct {
	Version int       `json:"version"`
	State   authState `json:"state"`
}

type authState struct {
	User  *api.User `json:"user"`
	Token string    `json:"token"`
}

// AuthStore is the single authoritative copy of session state for the
// process. SetAuth and Logout are the only writers; readers take snapshots.
type AuthStore struct {
	mu      sync.RWMutex
	kv      *KV
	logger  *zap.Logger
	user    *api.User
	token   string
	loading bool
}

// NewAuthStore builds the store and rehydrates any persisted session.
func NewAuthStore(kv *KV, logger *zap.Logger) *AuthStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &AuthStore{kv: kv, logger: logger, loading: true}
	s.rehydrate()
	return s
}

func (s *AuthStore) rehydrate() {
	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	var record persistedAuth
	ok, err := s.kv.Get(authStorageKey, &record)
	if err != nil {
		s.logger.Warn("discarding unreadable session record", zap.Error(err))
		return
	}
	if !ok || record.State.Token == "" {
		return
	}
	if record.Version > authStorageVersion {
		s.logger.Warn("session record from a newer schema, ignoring",
			zap.Int("version", record.Version))
		return
	}
	s.mu.Lock()
	s.user = record.State.User
	s.token = record.State.Token
	s.mu.Unlock()
}

// SetAuth establishes the session: token and user are written to durable
// storage and the in-memory state flips to authenticated.
func (s *AuthStore) SetAuth(user api.User, token string) error {
	record := persistedAuth{
		Version: authStorageVersion,
		State:   authState{User: &user, Token: token},
	}
	if err := s.kv.Set(authStorageKey, record); err != nil {
		return err
	}
	if err := s.kv.Set(tokenKey, token); err != nil {
		return err
	}
	if err := s.kv.Set(userKey, user); err != nil {
		return err
	}

	s.mu.Lock()
	s.user = &user
	s.token = token
	s.loading = false
	s.mu.Unlock()
	return nil
}

// Logout clears durable storage and resets the session.
func (s *AuthStore) Logout() error {
	err := s.kv.Delete(authStorageKey, tokenKey, userKey)
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.mu.Unlock()
	return err
}

// Token implements api.TokenSource.
func (s *AuthStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns a snapshot of the cached user, if any.
func (s *AuthStore) User() (api.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return api.User{}, false
	}
	return *s.user, true
}

// IsAuthenticated reports whether a token is present. Token presence is the
// sole authentication criterion.
func (s *AuthStore) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// IsLoading reports whether the store has finished rehydrating.
func (s *AuthStore) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// ExpiresAt peeks at the session token's exp claim without verifying the
// signature (verification is the backend's job). The boolean is false when
// there is no token or no parsable claim.
func (s *AuthStore) ExpiresAt() (time.Time, bool) {
	token := s.Token()
	if token == "" {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
