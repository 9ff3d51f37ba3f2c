package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type staticTokens string

func (s staticTokens) Token() string { return string(s) }

func newTestClient(t *testing.T, handler http.HandlerFunc, tokens TokenSource) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second, tokens, zap.NewNop()), srv
}

func TestClientAttachesBearerToken(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]any{"success": true, "message": "ok", "data": map[string]any{"balance": 10, "currency": "NGN"}})
	}, staticTokens("tok-123"))

	_, err := client.GetWalletBalance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestClientOmitsAuthorizationWithoutToken(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]any{"success": true, "message": "ok", "data": map[string]any{"timestamp": "now"}})
	}, staticTokens(""))

	_, err := client.Health(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestClientUnauthorizedFiresHookOnce(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "token expired"})
	}, staticTokens("stale"))

	calls := 0
	client.SetUnauthorizedHook(func() { calls++ })

	_, err := client.GetProfile(context.Background())
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "token expired", apiErr.Message)
	assert.Equal(t, 1, calls)
}

func TestClientBusinessError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"message": "Insufficient wallet balance",
			"errors":  []map[string]string{{"msg": "amount too high", "param": "amount", "location": "body"}},
		})
	}, nil)

	err := client.PurchaseAirtime(context.Background(), AirtimePurchaseInput{
		PhoneNumber: "08012345678", Amount: 100, Network: "MTN", Reference: "REF-1-A",
	})
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Insufficient wallet balance", apiErr.Message)
	require.Len(t, apiErr.Errors, 1)
	assert.Equal(t, "amount", apiErr.Errors[0].Param)
}

func TestLoginDecodesSession(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/login", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "jane@x.com", body["email"])
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"message": "ok",
			"data": map[string]any{
				"user":  map[string]any{"_id": "u1", "firstName": "Jane", "email": "jane@x.com"},
				"token": "jwt-token",
			},
		})
	}, nil)

	res, err := client.Login(context.Background(), "jane@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "u1", res.User.ID)
	assert.Equal(t, "jwt-token", res.Token)
}

func TestWalletTransactionsQuery(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wallet/transactions", r.URL.Path)
		assert.Equal(t, "20", r.URL.Query().Get("limit"))
		assert.Empty(t, r.URL.Query().Get("skip"))
		json.NewEncoder(w).Encode(map[string]any{
			"success": true, "message": "ok",
			"data": []map[string]any{{"_id": "t1", "type": "debit", "category": "data_purchase", "amount": 500}},
		})
	}, nil)

	txs, err := client.GetWalletTransactions(context.Background(), 20, 0)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "data_purchase", txs[0].Category)
}
