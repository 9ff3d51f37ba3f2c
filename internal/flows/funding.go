package flows

import (
	"context"
	"errors"
	"net/url"

	"go.uber.org/zap"

	"recharge-earn/internal/api"
)

// FundingState enumerates the wallet funding flow's steps.
type FundingState string

const (
	StateFundingCollecting FundingState = "collecting"
	StateFundingRedirected FundingState = "awaiting-return"
	StateFundingVerifying  FundingState = "verifying"
	StateFundingSucceeded  FundingState = "success"
	StateFundingFailed     FundingState = "failed"
)

// ErrMissingReference means the gateway return carried no payment reference
// under either known query-parameter name. This is a terminal failure, not
// a pending state.
var ErrMissingReference = errors.New("no payment reference found")

// FundingAPI is the backend surface the funding flow needs.
type FundingAPI interface {
	InitializePayment(ctx context.Context, email string, amount float64) (*api.PaymentInit, error)
	VerifyPayment(ctx context.Context, reference string) (*api.PaymentVerification, error)
	GetWalletBalance(ctx context.Context) (*api.Balance, error)
}

// FundingResult is what the terminal success/failure screen shows.
type FundingResult struct {
	Amount     float64
	HasAmount  bool
	Reference  string
	Balance    float64
	HasBalance bool
	FailureMsg string
}

// FundingFlow drives initialize → gateway redirect → verification. The
// gateway page itself is outside the client's control; the flow only picks
// the journey back up from the return redirect.
type FundingFlow struct {
	api    FundingAPI
	logger *zap.Logger

	state  FundingState
	init   *api.PaymentInit
	result FundingResult
}

func NewFundingFlow(backend FundingAPI, logger *zap.Logger) *FundingFlow {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FundingFlow{api: backend, logger: logger, state: StateFundingCollecting}
}

func (f *FundingFlow) State() FundingState { return f.state }

// Init returns the gateway hand-off once initialization has succeeded.
func (f *FundingFlow) Init() (api.PaymentInit, bool) {
	if f.init == nil {
		return api.PaymentInit{}, false
	}
	return *f.init, true
}

func (f *FundingFlow) Result() FundingResult { return f.result }

// SubmitFunding initializes the payment and returns the authorization URL
// the user must be navigated to.
func (f *FundingFlow) SubmitFunding(ctx context.Context, email string, amount float64) (*api.PaymentInit, error) {
	if f.state != StateFundingCollecting {
		return nil, errInvalidFlowState
	}
	var errs ValidationErrors
	if !validEmail(email) {
		errs = append(errs, FieldError{"email", "invalid email address"})
	}
	if amount < 100 {
		errs = append(errs, FieldError{"amount", "minimum amount is ₦100"})
	}
	if err := errs.ErrOrNil(); err != nil {
		return nil, err
	}

	init, err := f.api.InitializePayment(ctx, email, amount)
	if err != nil {
		return nil, err
	}
	f.init = init
	f.state = StateFundingRedirected
	f.logger.Info("payment initialized", zap.String("reference", init.Reference))
	return init, nil
}

// ReferenceFromQuery reads the payment reference from the gateway return
// parameters. The gateway is inconsistent about the parameter name.
func ReferenceFromQuery(query url.Values) string {
	if ref := query.Get("reference"); ref != "" {
		return ref
	}
	return query.Get("trxref")
}

// HandleReturn verifies the reference carried by the gateway's return
// redirect. The fresh balance is fetched best-effort: if that secondary
// read fails, the success screen simply renders without a balance figure.
func (f *FundingFlow) HandleReturn(ctx context.Context, query url.Values) error {
	if f.state != StateFundingRedirected && f.state != StateFundingCollecting {
		return errInvalidFlowState
	}

	reference := ReferenceFromQuery(query)
	if reference == "" {
		f.state = StateFundingFailed
		f.result = FundingResult{FailureMsg: ErrMissingReference.Error()}
		return ErrMissingReference
	}

	f.state = StateFundingVerifying
	verification, err := f.api.VerifyPayment(ctx, reference)
	if err != nil {
		f.state = StateFundingFailed
		f.result = FundingResult{
			Reference:  reference,
			FailureMsg: "Failed to verify payment. Please check your wallet balance or contact support.",
		}
		var apiErr *api.Error
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			f.result.FailureMsg = apiErr.Message
		}
		return err
	}

	f.result = FundingResult{
		Amount:    verification.Amount,
		HasAmount: verification.HasAmount,
		Reference: reference,
	}
	if balance, err := f.api.GetWalletBalance(ctx); err != nil {
		f.logger.Debug("balance refresh after funding failed", zap.Error(err))
	} else {
		f.result.Balance = balance.Balance
		f.result.HasBalance = true
	}
	f.state = StateFundingSucceeded
	return nil
}

// Reset returns the flow to the collecting step for another attempt.
func (f *FundingFlow) Reset() {
	f.init = nil
	f.result = FundingResult{}
	f.state = StateFundingCollecting
}
