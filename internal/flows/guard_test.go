package flows

import (
	"errors"
	"testing"

	"recharge-earn/internal/api"
)

func TestGuardBlocksAnonymousUsers(t *testing.T) {
	auth, _ := newFlowStores(t)
	redirects := 0
	guard := NewGuard(auth, func() { redirects++ })

	ran := false
	err := guard.Require(func() error { ran = true; return nil })
	if !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("err = %v, want ErrNotAuthenticated", err)
	}
	if ran {
		t.Fatal("protected action ran without a session")
	}
	if redirects != 1 {
		t.Fatalf("redirects = %d, want 1", redirects)
	}
}

func TestGuardRunsWithSession(t *testing.T) {
	auth, _ := newFlowStores(t)
	if err := auth.SetAuth(api.User{ID: "u1"}, "session-token"); err != nil {
		t.Fatalf("SetAuth: %v", err)
	}
	guard := NewGuard(auth, nil)

	ran := false
	if err := guard.Require(func() error { ran = true; return nil }); err != nil {
		t.Fatalf("Require: %v", err)
	}
	if !ran {
		t.Fatal("protected action did not run")
	}

	want := errors.New("downstream failure")
	if err := guard.Require(func() error { return want }); !errors.Is(err, want) {
		t.Fatalf("err = %v, want downstream error", err)
	}
}
