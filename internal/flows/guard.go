package flows

import (
	"errors"

	"recharge-earn/internal/store"
)

var (
	// ErrNotAuthenticated gates authenticated actions for anonymous users.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrAuthPending means session rehydration has not finished yet.
	ErrAuthPending = errors.New("session state still loading")
)

// Guard wraps actions that require an established session. It is advisory
// only: the backend enforces authorization on every endpoint regardless.
type Guard struct {
	auth       *store.AuthStore
	onRedirect func()
}

// NewGuard builds a guard. onRedirect runs whenever an unauthenticated user
// hits a protected action (the login-redirect equivalent); it may be nil.
func NewGuard(auth *store.AuthStore, onRedirect func()) *Guard {
	return &Guard{auth: auth, onRedirect: onRedirect}
}

// Require runs fn only with an established session. While state is
// indeterminate it blocks with ErrAuthPending; unauthenticated callers get
// ErrNotAuthenticated after the redirect hook fires.
func (g *Guard) Require(fn func() error) error {
	if g.auth.IsLoading() {
		return ErrAuthPending
	}
	if !g.auth.IsAuthenticated() {
		if g.onRedirect != nil {
			g.onRedirect()
		}
		return ErrNotAuthenticated
	}
	return fn()
}
