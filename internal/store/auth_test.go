package store

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"recharge-earn/internal/api"
)

func newTestKV(t *testing.T) *KV {
	t.Helper()
	kv, err := OpenKV(t.TempDir())
	if err != nil {
		t.Fatalf("open kv: %v", err)
	}
	return kv
}

func TestAuthStoreSetAuthPersists(t *testing.T) {
	kv := newTestKV(t)
	s := NewAuthStore(kv, zap.NewNop())

	if s.IsAuthenticated() {
		t.Fatalf("fresh store should not be authenticated")
	}
	if s.IsLoading() {
		t.Fatalf("store should finish loading during construction")
	}

	user := api.User{ID: "u1", FirstName: "Jane", Email: "jane@x.com"}
	if err := s.SetAuth(user, "tok-1"); err != nil {
		t.Fatalf("set auth: %v", err)
	}

	if !s.IsAuthenticated() {
		t.Fatalf("expected authenticated after SetAuth")
	}
	if got := s.Token(); got != "tok-1" {
		t.Fatalf("token = %q", got)
	}

	var storedToken string
	if ok, _ := kv.Get("token", &storedToken); !ok || storedToken != "tok-1" {
		t.Fatalf("token key = %q, present=%v", storedToken, ok)
	}
	var storedUser api.User
	if ok, _ := kv.Get("user", &storedUser); !ok || storedUser.ID != "u1" {
		t.Fatalf("user key = %+v, present=%v", storedUser, ok)
	}
}

func TestAuthStoreLogoutClears(t *testing.T) {
	kv := newTestKV(t)
	s := NewAuthStore(kv, zap.NewNop())
	if err := s.SetAuth(api.User{ID: "u1"}, "tok-1"); err != nil {
		t.Fatalf("set auth: %v", err)
	}
	if err := s.Logout(); err != nil {
		t.Fatalf("logout: %v", err)
	}

	if s.IsAuthenticated() {
		t.Fatalf("expected unauthenticated after logout")
	}
	for _, key := range []string{"auth-storage", "token", "user"} {
		if kv.Has(key) {
			t.Fatalf("key %s should be gone after logout", key)
		}
	}
}

func TestAuthStoreRehydrates(t *testing.T) {
	dir := t.TempDir()
	kv, err := OpenKV(dir)
	if err != nil {
		t.Fatalf("open kv: %v", err)
	}
	first := NewAuthStore(kv, zap.NewNop())
	if err := first.SetAuth(api.User{ID: "u1", Email: "jane@x.com"}, "tok-1"); err != nil {
		t.Fatalf("set auth: %v", err)
	}

	// Fresh process: reopen storage and rebuild the store.
	kv2, err := OpenKV(dir)
	if err != nil {
		t.Fatalf("reopen kv: %v", err)
	}
	second := NewAuthStore(kv2, zap.NewNop())
	if !second.IsAuthenticated() {
		t.Fatalf("expected rehydrated session")
	}
	user, ok := second.User()
	if !ok || user.Email != "jane@x.com" {
		t.Fatalf("rehydrated user = %+v, ok=%v", user, ok)
	}
}

func TestAuthStoreExpiresAt(t *testing.T) {
	kv := newTestKV(t)
	s := NewAuthStore(kv, zap.NewNop())

	if _, ok := s.ExpiresAt(); ok {
		t.Fatalf("no token should mean no expiry")
	}

	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": exp.Unix(),
	}).SignedString([]byte("backend-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	if err := s.SetAuth(api.User{ID: "u1"}, token); err != nil {
		t.Fatalf("set auth: %v", err)
	}

	got, ok := s.ExpiresAt()
	if !ok {
		t.Fatalf("expected expiry claim")
	}
	if !got.Equal(exp) {
		t.Fatalf("expiry = %v, want %v", got, exp)
	}

	if err := s.SetAuth(api.User{ID: "u1"}, "opaque-token"); err != nil {
		t.Fatalf("set auth: %v", err)
	}
	if _, ok := s.ExpiresAt(); ok {
		t.Fatalf("opaque token should yield no expiry")
	}
}
