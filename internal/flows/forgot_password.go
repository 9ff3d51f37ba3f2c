package flows

import "context"

// ForgotPasswordState enumerates the reset flow's steps.
type ForgotPasswordState string

const (
	StateForgotEmail   ForgotPasswordState = "email"
	StateForgotOTP     ForgotPasswordState = "otp"
	StateForgotReset   ForgotPasswordState = "reset"
	StateForgotSuccess ForgotPasswordState = "success"
)

// ForgotPasswordAPI is the backend surface the reset flow needs.
type ForgotPasswordAPI interface {
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, otp, newPassword string) error
}

// ForgotPasswordFlow walks email → otp → reset → success. A failure at any
// step keeps the user on that step; there is no automatic regression.
type ForgotPasswordFlow struct {
	api   ForgotPasswordAPI
	state ForgotPasswordState
	email string
	otp   string
}

func NewForgotPasswordFlow(backend ForgotPasswordAPI) *ForgotPasswordFlow {
	return &ForgotPasswordFlow{api: backend, state: StateForgotEmail}
}

func (f *ForgotPasswordFlow) State() ForgotPasswordState { return f.state }

func (f *ForgotPasswordFlow) Email() string { return f.email }

// SubmitEmail requests a reset code and advances to the OTP step.
func (f *ForgotPasswordFlow) SubmitEmail(ctx context.Context, email string) error {
	if f.state != StateForgotEmail {
		return errInvalidFlowState
	}
	if !validEmail(email) {
		return ValidationErrors{{Field: "email", Message: "invalid email address"}}
	}
	if err := f.api.ForgotPassword(ctx, email); err != nil {
		return err
	}
	f.email = email
	f.state = StateForgotOTP
	return nil
}

// SubmitOTP records the entered code and advances on local completion of
// six digits. The code is not pre-validated with the backend; a wrong code
// only surfaces at final reset submission.
func (f *ForgotPasswordFlow) SubmitOTP(otp string) error {
	if f.state != StateForgotOTP {
		return errInvalidFlowState
	}
	if !validOTP(otp) {
		return ValidationErrors{{Field: "otp", Message: "enter the complete 6-digit code"}}
	}
	f.otp = otp
	f.state = StateForgotReset
	return nil
}

// SubmitReset submits the email, code and new password together. Success
// moves to the terminal state; failure stays here for a retry.
func (f *ForgotPasswordFlow) SubmitReset(ctx context.Context, newPassword, confirmPassword string) error {
	if f.state != StateForgotReset {
		return errInvalidFlowState
	}
	var errs ValidationErrors
	if len(newPassword) < 6 {
		errs = append(errs, FieldError{"newPassword", "password must be at least 6 characters"})
	}
	if newPassword != confirmPassword {
		errs = append(errs, FieldError{"confirmPassword", "passwords don't match"})
	}
	if err := errs.ErrOrNil(); err != nil {
		return err
	}

	if err := f.api.ResetPassword(ctx, f.email, f.otp, newPassword); err != nil {
		return err
	}
	f.state = StateForgotSuccess
	return nil
}
