package flows

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"recharge-earn/internal/api"
	"recharge-earn/internal/store"
)

// AccountAPI is the backend surface of login, profile and wallet reads.
type AccountAPI interface {
	Login(ctx context.Context, email, password string) (*api.LoginResult, error)
	GetProfile(ctx context.Context) (*api.User, error)
	ChangePassword(ctx context.Context, currentPassword, newPassword string) error
	GetWalletBalance(ctx context.Context) (*api.Balance, error)
	GetWalletTransactions(ctx context.Context, limit, skip int) ([]api.Transaction, error)
	GetReferralCode(ctx context.Context) (string, error)
	GetReferralStats(ctx context.Context) (*api.ReferralStats, error)
}

// walletHistoryLimit is how many ledger entries the wallet screen shows.
const walletHistoryLimit = 20

// WalletOverview is the wallet screen's read model.
type WalletOverview struct {
	Balance      api.Balance
	Transactions []api.Transaction
}

// ReferralOverview is the referrals screen's read model.
type ReferralOverview struct {
	Code     string
	ShareURL string
	Stats    api.ReferralStats
}

// Account bundles session establishment and the authenticated read screens.
type Account struct {
	api       AccountAPI
	auth      *store.AuthStore
	shareBase string
	logger    *zap.Logger
}

func NewAccount(backend AccountAPI, auth *store.AuthStore, shareBase string, logger *zap.Logger) *Account {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Account{api: backend, auth: auth, shareBase: shareBase, logger: logger}
}

// Login validates the credentials, authenticates, and establishes the
// session.
func (a *Account) Login(ctx context.Context, email, password string) error {
	var errs ValidationErrors
	if !validEmail(email) {
		errs = append(errs, FieldError{"email", "invalid email address"})
	}
	if len(password) < 6 {
		errs = append(errs, FieldError{"password", "password must be at least 6 characters"})
	}
	if err := errs.ErrOrNil(); err != nil {
		return err
	}

	result, err := a.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if err := a.auth.SetAuth(result.User, result.Token); err != nil {
		return fmt.Errorf("establish session: %w", err)
	}
	a.logger.Info("logged in", zap.String("user_id", result.User.ID))
	return nil
}

// RefreshProfile re-reads the profile from the backend and updates the
// cached user record, keeping the current token.
func (a *Account) RefreshProfile(ctx context.Context) (*api.User, error) {
	user, err := a.api.GetProfile(ctx)
	if err != nil {
		return nil, err
	}
	if err := a.auth.SetAuth(*user, a.auth.Token()); err != nil {
		return nil, fmt.Errorf("cache profile: %w", err)
	}
	return user, nil
}

// ChangePassword validates and submits a password change for the
// authenticated user.
func (a *Account) ChangePassword(ctx context.Context, currentPassword, newPassword, confirmPassword string) error {
	var errs ValidationErrors
	if currentPassword == "" {
		errs = append(errs, FieldError{"currentPassword", "current password is required"})
	}
	if len(newPassword) < 6 {
		errs = append(errs, FieldError{"newPassword", "password must be at least 6 characters"})
	}
	if newPassword != confirmPassword {
		errs = append(errs, FieldError{"confirmPassword", "passwords don't match"})
	}
	if err := errs.ErrOrNil(); err != nil {
		return err
	}
	return a.api.ChangePassword(ctx, currentPassword, newPassword)
}

// Wallet fetches the balance and recent transactions concurrently.
func (a *Account) Wallet(ctx context.Context) (*WalletOverview, error) {
	var (
		wg       sync.WaitGroup
		overview WalletOverview
		balErr   error
		txErr    error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		balance, err := a.api.GetWalletBalance(ctx)
		if err != nil {
			balErr = err
			return
		}
		overview.Balance = *balance
	}()
	go func() {
		defer wg.Done()
		overview.Transactions, txErr = a.api.GetWalletTransactions(ctx, walletHistoryLimit, 0)
	}()
	wg.Wait()

	if err := errors.Join(balErr, txErr); err != nil {
		return nil, err
	}
	return &overview, nil
}

// FilterTransactionsByCategory returns the entries matching category. An
// empty category matches everything.
func FilterTransactionsByCategory(txs []api.Transaction, category string) []api.Transaction {
	if category == "" {
		return txs
	}
	var out []api.Transaction
	for _, tx := range txs {
		if tx.Category == category {
			out = append(out, tx)
		}
	}
	return out
}

// Referrals fetches the user's referral code and stats concurrently and
// builds the shareable registration URL.
func (a *Account) Referrals(ctx context.Context) (*ReferralOverview, error) {
	var (
		wg       sync.WaitGroup
		overview ReferralOverview
		codeErr  error
		statsErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		overview.Code, codeErr = a.api.GetReferralCode(ctx)
	}()
	go func() {
		defer wg.Done()
		stats, err := a.api.GetReferralStats(ctx)
		if err != nil {
			statsErr = err
			return
		}
		overview.Stats = *stats
	}()
	wg.Wait()

	if err := errors.Join(codeErr, statsErr); err != nil {
		return nil, err
	}
	if overview.Code != "" {
		overview.ShareURL = fmt.Sprintf("%s/register?ref=%s", a.shareBase, overview.Code)
	}
	return &overview, nil
}
