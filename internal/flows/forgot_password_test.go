package flows

import (
	"context"
	"errors"
	"testing"
)

type stubForgotPasswordAPI struct {
	forgotCalls int
	resetCalls  int

	lastEmail    string
	lastOTP      string
	lastPassword string

	forgotErr error
	resetErr  error
}

func (s *stubForgotPasswordAPI) ForgotPassword(_ context.Context, email string) error {
	s.forgotCalls++
	s.lastEmail = email
	return s.forgotErr
}

func (s *stubForgotPasswordAPI) ResetPassword(_ context.Context, email, otp, newPassword string) error {
	s.resetCalls++
	s.lastEmail = email
	s.lastOTP = otp
	s.lastPassword = newPassword
	return s.resetErr
}

func TestForgotPasswordWalksAllSteps(t *testing.T) {
	backend := &stubForgotPasswordAPI{}
	flow := NewForgotPasswordFlow(backend)

	if err := flow.SubmitEmail(context.Background(), "jane@example.com"); err != nil {
		t.Fatalf("SubmitEmail: %v", err)
	}
	if flow.State() != StateForgotOTP {
		t.Fatalf("state = %q, want %q", flow.State(), StateForgotOTP)
	}

	// Advancing past the OTP step requires no backend round trip.
	if err := flow.SubmitOTP("654321"); err != nil {
		t.Fatalf("SubmitOTP: %v", err)
	}
	if flow.State() != StateForgotReset {
		t.Fatalf("state = %q, want %q", flow.State(), StateForgotReset)
	}

	if err := flow.SubmitReset(context.Background(), "newpass1", "newpass1"); err != nil {
		t.Fatalf("SubmitReset: %v", err)
	}
	if flow.State() != StateForgotSuccess {
		t.Fatalf("state = %q, want %q", flow.State(), StateForgotSuccess)
	}
	if backend.lastEmail != "jane@example.com" || backend.lastOTP != "654321" || backend.lastPassword != "newpass1" {
		t.Fatalf("reset payload = %q %q %q", backend.lastEmail, backend.lastOTP, backend.lastPassword)
	}
}

func TestForgotPasswordOTPNotPreValidated(t *testing.T) {
	backend := &stubForgotPasswordAPI{}
	flow := NewForgotPasswordFlow(backend)
	if err := flow.SubmitEmail(context.Background(), "jane@example.com"); err != nil {
		t.Fatalf("SubmitEmail: %v", err)
	}

	calls := backend.forgotCalls + backend.resetCalls
	if err := flow.SubmitOTP("000000"); err != nil {
		t.Fatalf("SubmitOTP: %v", err)
	}
	if backend.forgotCalls+backend.resetCalls != calls {
		t.Fatal("OTP step should not hit the backend")
	}
}

func TestForgotPasswordResetValidation(t *testing.T) {
	backend := &stubForgotPasswordAPI{}
	flow := NewForgotPasswordFlow(backend)
	flow.state = StateForgotReset
	flow.email = "jane@example.com"
	flow.otp = "123456"

	err := flow.SubmitReset(context.Background(), "short", "different")
	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("err = %v, want ValidationErrors", err)
	}
	if len(verrs) != 2 {
		t.Fatalf("got %d field errors, want 2: %v", len(verrs), verrs)
	}
	if backend.resetCalls != 0 {
		t.Fatal("backend called despite validation failure")
	}
}

func TestForgotPasswordFailureKeepsStep(t *testing.T) {
	backend := &stubForgotPasswordAPI{resetErr: errors.New("invalid code")}
	flow := NewForgotPasswordFlow(backend)
	flow.state = StateForgotReset
	flow.email = "jane@example.com"
	flow.otp = "123456"

	if err := flow.SubmitReset(context.Background(), "newpass1", "newpass1"); err == nil {
		t.Fatal("expected backend error")
	}
	if flow.State() != StateForgotReset {
		t.Fatalf("state = %q, want to stay at %q", flow.State(), StateForgotReset)
	}
}

func TestForgotPasswordRejectsOutOfOrderSteps(t *testing.T) {
	flow := NewForgotPasswordFlow(&stubForgotPasswordAPI{})
	if err := flow.SubmitOTP("123456"); err == nil {
		t.Fatal("SubmitOTP should fail before the email step")
	}
	if err := flow.SubmitReset(context.Background(), "newpass1", "newpass1"); err == nil {
		t.Fatal("SubmitReset should fail before the OTP step")
	}
}
