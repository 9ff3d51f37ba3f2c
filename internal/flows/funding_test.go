package flows

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"recharge-earn/internal/api"
)

type stubFundingAPI struct {
	initCalls    int
	verifyCalls  int
	balanceCalls int

	lastAmount    float64
	lastReference string

	initErr    error
	verifyErr  error
	balanceErr error

	init         api.PaymentInit
	verification api.PaymentVerification
	balance      api.Balance
}

func (s *stubFundingAPI) InitializePayment(_ context.Context, email string, amount float64) (*api.PaymentInit, error) {
	s.initCalls++
	s.lastAmount = amount
	if s.initErr != nil {
		return nil, s.initErr
	}
	init := s.init
	return &init, nil
}

func (s *stubFundingAPI) VerifyPayment(_ context.Context, reference string) (*api.PaymentVerification, error) {
	s.verifyCalls++
	s.lastReference = reference
	if s.verifyErr != nil {
		return nil, s.verifyErr
	}
	v := s.verification
	v.Reference = reference
	return &v, nil
}

func (s *stubFundingAPI) GetWalletBalance(_ context.Context) (*api.Balance, error) {
	s.balanceCalls++
	if s.balanceErr != nil {
		return nil, s.balanceErr
	}
	b := s.balance
	return &b, nil
}

func TestReferenceFromQuery(t *testing.T) {
	tests := []struct {
		name  string
		query url.Values
		want  string
	}{
		{"reference param", url.Values{"reference": {"REF-1"}}, "REF-1"},
		{"trxref param", url.Values{"trxref": {"T-2"}}, "T-2"},
		{"reference wins over trxref", url.Values{"reference": {"REF-1"}, "trxref": {"T-2"}}, "REF-1"},
		{"neither", url.Values{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ReferenceFromQuery(tt.query); got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFundingValidation(t *testing.T) {
	backend := &stubFundingAPI{}
	flow := NewFundingFlow(backend, nil)

	_, err := flow.SubmitFunding(context.Background(), "bad-email", 50)
	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("err = %v, want ValidationErrors", err)
	}
	if len(verrs) != 2 {
		t.Fatalf("got %d field errors, want 2: %v", len(verrs), verrs)
	}
	if backend.initCalls != 0 {
		t.Fatal("backend called despite validation failure")
	}
}

func TestFundingHappyPath(t *testing.T) {
	backend := &stubFundingAPI{
		init:         api.PaymentInit{AuthorizationURL: "https://pay.example/abc", Reference: "REF-9"},
		verification: api.PaymentVerification{Amount: 500, HasAmount: true},
		balance:      api.Balance{Balance: 1500, Currency: "NGN"},
	}
	flow := NewFundingFlow(backend, nil)

	init, err := flow.SubmitFunding(context.Background(), "jane@example.com", 500)
	if err != nil {
		t.Fatalf("SubmitFunding: %v", err)
	}
	if init.AuthorizationURL != "https://pay.example/abc" {
		t.Fatalf("authorization URL = %q", init.AuthorizationURL)
	}
	if flow.State() != StateFundingRedirected {
		t.Fatalf("state = %q, want %q", flow.State(), StateFundingRedirected)
	}

	err = flow.HandleReturn(context.Background(), url.Values{"trxref": {"REF-9"}})
	if err != nil {
		t.Fatalf("HandleReturn: %v", err)
	}
	if backend.lastReference != "REF-9" {
		t.Fatalf("verified reference = %q", backend.lastReference)
	}
	result := flow.Result()
	if !result.HasAmount || result.Amount != 500 {
		t.Fatalf("result amount = %+v", result)
	}
	if !result.HasBalance || result.Balance != 1500 {
		t.Fatalf("result balance = %+v", result)
	}
	if flow.State() != StateFundingSucceeded {
		t.Fatalf("state = %q, want %q", flow.State(), StateFundingSucceeded)
	}
}

func TestFundingMissingReferenceIsTerminal(t *testing.T) {
	backend := &stubFundingAPI{}
	flow := NewFundingFlow(backend, nil)

	err := flow.HandleReturn(context.Background(), url.Values{})
	if !errors.Is(err, ErrMissingReference) {
		t.Fatalf("err = %v, want ErrMissingReference", err)
	}
	if flow.State() != StateFundingFailed {
		t.Fatalf("state = %q, want %q", flow.State(), StateFundingFailed)
	}
	if backend.verifyCalls != 0 {
		t.Fatal("verification attempted without a reference")
	}
}

func TestFundingVerificationFailureUsesBackendMessage(t *testing.T) {
	backend := &stubFundingAPI{
		verifyErr: &api.Error{Status: 400, Message: "Transaction not found"},
	}
	flow := NewFundingFlow(backend, nil)

	if err := flow.HandleReturn(context.Background(), url.Values{"reference": {"REF-X"}}); err == nil {
		t.Fatal("expected verification error")
	}
	if flow.State() != StateFundingFailed {
		t.Fatalf("state = %q, want %q", flow.State(), StateFundingFailed)
	}
	if flow.Result().FailureMsg != "Transaction not found" {
		t.Fatalf("failure message = %q", flow.Result().FailureMsg)
	}
}

func TestFundingBalanceRefreshFailureDegradesSilently(t *testing.T) {
	backend := &stubFundingAPI{
		verification: api.PaymentVerification{Amount: 500, HasAmount: true},
		balanceErr:   errors.New("balance unavailable"),
	}
	flow := NewFundingFlow(backend, nil)

	if err := flow.HandleReturn(context.Background(), url.Values{"reference": {"REF-9"}}); err != nil {
		t.Fatalf("HandleReturn: %v", err)
	}
	if flow.State() != StateFundingSucceeded {
		t.Fatalf("state = %q, want %q", flow.State(), StateFundingSucceeded)
	}
	if flow.Result().HasBalance {
		t.Fatal("balance should be absent when the refresh fails")
	}
}
