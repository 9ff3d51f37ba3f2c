package api

import "context"

// RegisterInput is the registration payload. ReferralCode is optional and
// already normalized to uppercase by the caller.
type RegisterInput struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	ReferralCode string `json:"referralCode,omitempty"`
}

// VerifyOTPInput combines the stored registration payload with the emailed
// code and the user's phone number.
type VerifyOTPInput struct {
	Email        string `json:"email"`
	OTP          string `json:"otp"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Password     string `json:"password"`
	Phone        string `json:"phone"`
	ReferralCode string `json:"referralCode,omitempty"`
}

// ResendOTPInput re-submits the registration payload to trigger a new code.
type ResendOTPInput struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Password  string `json:"password"`
}

func (c *Client) Register(ctx context.Context, in RegisterInput) error {
	return c.post(ctx, "/users/register", in, nil)
}

func (c *Client) VerifyOTP(ctx context.Context, in VerifyOTPInput) (*LoginResult, error) {
	var out LoginResult
	if err := c.post(ctx, "/users/verify-otp", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ResendOTP(ctx context.Context, in ResendOTPInput) error {
	return c.post(ctx, "/users/resend-otp", in, nil)
}

func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	var out LoginResult
	if err := c.post(ctx, "/users/login", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetProfile(ctx context.Context) (*User, error) {
	var out User
	if err := c.get(ctx, "/users/profile", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.post(ctx, "/users/forgot-password", map[string]string{"email": email}, nil)
}

func (c *Client) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	body := map[string]string{"email": email, "otp": otp, "newPassword": newPassword}
	return c.post(ctx, "/users/reset-password", body, nil)
}

func (c *Client) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	body := map[string]string{"currentPassword": currentPassword, "newPassword": newPassword}
	return c.post(ctx, "/users/change-password", body, nil)
}

// Health pings the backend and returns its reported timestamp.
func (c *Client) Health(ctx context.Context) (string, error) {
	var out struct {
		Timestamp string `json:"timestamp"`
	}
	if err := c.get(ctx, "/health", nil, &out); err != nil {
		return "", err
	}
	return out.Timestamp, nil
}
