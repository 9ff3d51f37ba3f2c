package flows

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"recharge-earn/internal/api"
	"recharge-earn/internal/store"
	"recharge-earn/internal/utils"
)

// RegistrationState enumerates the registration flow's steps.
type RegistrationState string

const (
	StateCollectingRegistration RegistrationState = "collecting-registration"
	StateCollectingOTP          RegistrationState = "collecting-otp"
	StateRegistrationDone       RegistrationState = "done"
)

// resendWindow is the advisory client-side cooldown between OTP resends.
const resendWindow = 60 * time.Second

var (
	// ErrRegistrationDataMissing means the OTP step was reached without a
	// usable pending registration; the user must register again.
	ErrRegistrationDataMissing = errors.New("registration data missing, please register again")
	// ErrResendCooldown means the resend countdown has not elapsed.
	ErrResendCooldown = errors.New("resend cooldown active")

	errInvalidFlowState = errors.New("operation not valid in current step")
)

// RegistrationAPI is the backend surface the registration flow needs.
type RegistrationAPI interface {
	Register(ctx context.Context, in api.RegisterInput) error
	VerifyOTP(ctx context.Context, in api.VerifyOTPInput) (*api.LoginResult, error)
	ResendOTP(ctx context.Context, in api.ResendOTPInput) error
}

// RegisterForm is the raw registration submission.
type RegisterForm struct {
	FirstName    string
	LastName     string
	Email        string
	Password     string
	ReferralCode string
}

// RegistrationFlow drives registration through OTP verification to an
// established session.
type RegistrationFlow struct {
	api      RegistrationAPI
	auth     *store.AuthStore
	pending  *store.Registrations
	logger   *zap.Logger
	cooldown *Cooldown

	state RegistrationState
	email string
}

func NewRegistrationFlow(backend RegistrationAPI, auth *store.AuthStore, pending *store.Registrations, logger *zap.Logger) *RegistrationFlow {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RegistrationFlow{
		api:      backend,
		auth:     auth,
		pending:  pending,
		logger:   logger,
		cooldown: NewCooldown(resendWindow),
		state:    StateCollectingRegistration,
	}
}

func (f *RegistrationFlow) State() RegistrationState { return f.state }

// Email returns the address the OTP was sent to, once known.
func (f *RegistrationFlow) Email() string { return f.email }

func validateRegisterForm(form RegisterForm) (RegisterForm, error) {
	var errs ValidationErrors
	if len(form.FirstName) < 2 {
		errs = append(errs, FieldError{"firstName", "first name must be at least 2 characters"})
	}
	if len(form.LastName) < 2 {
		errs = append(errs, FieldError{"lastName", "last name must be at least 2 characters"})
	}
	if !validEmail(form.Email) {
		errs = append(errs, FieldError{"email", "invalid email address"})
	}
	if len(form.Password) < 6 {
		errs = append(errs, FieldError{"password", "password must be at least 6 characters"})
	}
	if form.ReferralCode != "" {
		if !utils.ValidateReferralCode(form.ReferralCode) {
			errs = append(errs, FieldError{"referralCode", "referral code must be 6 alphanumeric characters"})
		} else {
			form.ReferralCode = utils.NormalizeReferralCode(form.ReferralCode)
		}
	}
	return form, errs.ErrOrNil()
}

// SubmitRegistration validates and submits the registration, persists the
// pending payload for the OTP step, and advances the flow.
func (f *RegistrationFlow) SubmitRegistration(ctx context.Context, form RegisterForm) error {
	if f.state != StateCollectingRegistration {
		return errInvalidFlowState
	}
	form, err := validateRegisterForm(form)
	if err != nil {
		return err
	}

	err = f.api.Register(ctx, api.RegisterInput{
		FirstName:    form.FirstName,
		LastName:     form.LastName,
		Email:        form.Email,
		Password:     form.Password,
		ReferralCode: form.ReferralCode,
	})
	if err != nil {
		return err
	}

	if err := f.pending.Save(store.PendingRegistration{
		FirstName:    form.FirstName,
		LastName:     form.LastName,
		Password:     form.Password,
		ReferralCode: form.ReferralCode,
	}); err != nil {
		return fmt.Errorf("persist registration data: %w", err)
	}

	f.email = form.Email
	f.state = StateCollectingOTP
	f.logger.Info("registration submitted, awaiting otp", zap.String("email", form.Email))
	return nil
}

// ResumeOTP enters the OTP step directly, as when the user returns with the
// emailed link. The email and a fresh pending registration must both be
// present; otherwise the only recovery is registering again.
func (f *RegistrationFlow) ResumeOTP(email string) error {
	if email == "" {
		f.state = StateCollectingRegistration
		return ErrRegistrationDataMissing
	}
	if _, ok := f.pending.Load(); !ok {
		f.state = StateCollectingRegistration
		return ErrRegistrationDataMissing
	}
	f.email = email
	f.state = StateCollectingOTP
	return nil
}

// SubmitOTP combines the stored registration data with the code and phone
// number and verifies. Success establishes the session and finishes the
// flow; failure leaves the flow at the OTP step for a retry.
func (f *RegistrationFlow) SubmitOTP(ctx context.Context, otp, phone string) error {
	if f.state != StateCollectingOTP {
		return errInvalidFlowState
	}

	reg, ok := f.pending.Load()
	if !ok || f.email == "" {
		// Never attempt verification with incomplete data.
		return ErrRegistrationDataMissing
	}

	var errs ValidationErrors
	if !validOTP(otp) {
		errs = append(errs, FieldError{"otp", "enter the complete 6-digit code"})
	}
	normalizedPhone := utils.FormatPhoneNumber(phone)
	if !utils.ValidatePhoneNumber(normalizedPhone) {
		errs = append(errs, FieldError{"phone", "invalid phone number format"})
	}
	if err := errs.ErrOrNil(); err != nil {
		return err
	}

	result, err := f.api.VerifyOTP(ctx, api.VerifyOTPInput{
		Email:        f.email,
		OTP:          otp,
		FirstName:    reg.FirstName,
		LastName:     reg.LastName,
		Password:     reg.Password,
		Phone:        normalizedPhone,
		ReferralCode: reg.ReferralCode,
	})
	if err != nil {
		return err
	}

	if err := f.pending.Clear(); err != nil {
		f.logger.Warn("failed to clear registration data", zap.Error(err))
	}
	if err := f.auth.SetAuth(result.User, result.Token); err != nil {
		return fmt.Errorf("establish session: %w", err)
	}
	f.state = StateRegistrationDone
	f.logger.Info("registration verified", zap.String("user_id", result.User.ID))
	return nil
}

// Resend asks the backend for a new code, re-submitting the stored
// registration payload. Gated by the advisory cooldown.
func (f *RegistrationFlow) Resend(ctx context.Context) error {
	if f.state != StateCollectingOTP {
		return errInvalidFlowState
	}
	if !f.cooldown.Ready() {
		return fmt.Errorf("%w: %s left", ErrResendCooldown, f.cooldown.Remaining())
	}

	reg, ok := f.pending.Load()
	if !ok || f.email == "" {
		return ErrRegistrationDataMissing
	}

	err := f.api.ResendOTP(ctx, api.ResendOTPInput{
		Email:     f.email,
		FirstName: reg.FirstName,
		LastName:  reg.LastName,
		Password:  reg.Password,
	})
	if err != nil {
		return err
	}
	f.cooldown.Start()
	return nil
}

// ResendRemaining exposes the countdown for display.
func (f *RegistrationFlow) ResendRemaining() time.Duration {
	return f.cooldown.Remaining()
}

// Reset returns the flow to the registration step so it can be reused after
// a cancel or a completed run. The persisted pending registration is left
// alone; only in-memory step state is cleared.
func (f *RegistrationFlow) Reset() {
	f.email = ""
	f.state = StateCollectingRegistration
}
