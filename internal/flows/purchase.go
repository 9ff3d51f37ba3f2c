package flows

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"recharge-earn/internal/api"
	"recharge-earn/internal/catalog"
	"recharge-earn/internal/utils"
)

// Success display windows before the purchase forms reset.
const (
	dataSuccessWindow    = 2 * time.Second
	airtimeSuccessWindow = 3 * time.Second
	cableSuccessWindow   = 3 * time.Second
)

// UtilitiesAPI is the backend surface of the data/airtime/cable flows.
type UtilitiesAPI interface {
	GetDataPlans(ctx context.Context) (map[string][]api.DataPlan, error)
	PurchaseData(ctx context.Context, in api.DataPurchaseInput) error
	PurchaseAirtime(ctx context.Context, in api.AirtimePurchaseInput) error
	PurchaseCable(ctx context.Context, in api.CablePurchaseInput) error
}

// DataConfirmation is the snapshot shown before a data purchase is issued.
type DataConfirmation struct {
	Network     string
	PlanName    string
	Price       string
	PhoneNumber string
}

// DataFlow sells mobile data: pick a plan, confirm, purchase, then reset
// and re-fetch plans since availability and pricing drift.
type DataFlow struct {
	mu     sync.Mutex
	api    UtilitiesAPI
	logger *zap.Logger

	plans        map[string][]api.DataPlan
	selected     *api.DataPlan
	pendingPhone string
	success      bool

	successWindow time.Duration
	resetTimer    *time.Timer
}

func NewDataFlow(backend UtilitiesAPI, logger *zap.Logger) *DataFlow {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DataFlow{api: backend, logger: logger, successWindow: dataSuccessWindow}
}

// LoadPlans fetches the plan list, replacing any cached copy.
func (f *DataFlow) LoadPlans(ctx context.Context) error {
	plans, err := f.api.GetDataPlans(ctx)
	if err != nil {
		return err
	}
	f.mu.Lock()
	f.plans = plans
	f.mu.Unlock()
	return nil
}

// Plans returns the cached plans for one network.
func (f *DataFlow) Plans(network string) []api.DataPlan {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.plans[network]
}

// SelectPlan picks a plan by network and plan ID.
func (f *DataFlow) SelectPlan(network string, planID int) error {
	if !catalog.IsNetwork(network) {
		return ValidationErrors{{Field: "network", Message: "unknown network"}}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.plans[network] {
		if f.plans[network][i].ID == planID {
			plan := f.plans[network][i]
			plan.Network = network
			f.selected = &plan
			return nil
		}
	}
	return ValidationErrors{{Field: "plan_id", Message: fmt.Sprintf("no plan %d for %s", planID, network)}}
}

// PreparePurchase validates the phone number against the selected plan and
// returns the confirmation snapshot.
func (f *DataFlow) PreparePurchase(phone string) (DataConfirmation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.selected == nil {
		return DataConfirmation{}, ValidationErrors{{Field: "plan_id", Message: "select a plan first"}}
	}
	normalized := utils.FormatPhoneNumber(phone)
	if !utils.ValidatePhoneNumber(normalized) {
		return DataConfirmation{}, ValidationErrors{{Field: "phone_number", Message: "invalid phone number format"}}
	}
	f.pendingPhone = normalized
	return DataConfirmation{
		Network:     f.selected.Network,
		PlanName:    f.selected.Name,
		Price:       f.selected.Price,
		PhoneNumber: normalized,
	}, nil
}

// ConfirmPurchase issues the prepared purchase with a fresh client
// reference, shows the success window, then resets and re-fetches plans.
func (f *DataFlow) ConfirmPurchase(ctx context.Context) error {
	f.mu.Lock()
	if f.selected == nil || f.pendingPhone == "" {
		f.mu.Unlock()
		return errInvalidFlowState
	}
	input := api.DataPurchaseInput{
		PhoneNumber: f.pendingPhone,
		PlanID:      f.selected.ID,
		Reference:   utils.GenerateReference(),
		Network:     f.selected.Network,
	}
	f.mu.Unlock()

	if err := f.api.PurchaseData(ctx, input); err != nil {
		return err
	}

	f.mu.Lock()
	f.success = true
	f.resetTimer = time.AfterFunc(f.successWindow, func() {
		f.Reset()
		// Plan availability and pricing can change after a purchase.
		if err := f.LoadPlans(context.Background()); err != nil {
			f.logger.Debug("plan refresh failed", zap.Error(err))
		}
	})
	f.mu.Unlock()
	return nil
}

// Success reports whether the transient success state is showing.
func (f *DataFlow) Success() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.success
}

// Reset clears the selection and success state, keeping cached plans.
func (f *DataFlow) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.resetTimer != nil {
		f.resetTimer.Stop()
		f.resetTimer = nil
	}
	f.selected = nil
	f.pendingPhone = ""
	f.success = false
}

// AirtimeFlow is the single-step airtime top-up.
type AirtimeFlow struct {
	mu     sync.Mutex
	api    UtilitiesAPI
	logger *zap.Logger

	success       bool
	successWindow time.Duration
	resetTimer    *time.Timer
}

func NewAirtimeFlow(backend UtilitiesAPI, logger *zap.Logger) *AirtimeFlow {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AirtimeFlow{api: backend, logger: logger, successWindow: airtimeSuccessWindow}
}

// Submit validates and purchases airtime, then shows the transient success
// state.
func (f *AirtimeFlow) Submit(ctx context.Context, network, phone string, amount float64) error {
	var errs ValidationErrors
	if !catalog.IsNetwork(network) {
		errs = append(errs, FieldError{"network", "unknown network"})
	}
	normalized := utils.FormatPhoneNumber(phone)
	if !utils.ValidatePhoneNumber(normalized) {
		errs = append(errs, FieldError{"phone_number", "invalid phone number format"})
	}
	if amount < 50 {
		errs = append(errs, FieldError{"amount", "minimum amount is ₦50"})
	}
	if err := errs.ErrOrNil(); err != nil {
		return err
	}

	err := f.api.PurchaseAirtime(ctx, api.AirtimePurchaseInput{
		PhoneNumber: normalized,
		Amount:      amount,
		Network:     network,
		Reference:   utils.GenerateReference(),
	})
	if err != nil {
		return err
	}

	f.mu.Lock()
	f.success = true
	f.resetTimer = time.AfterFunc(f.successWindow, f.Reset)
	f.mu.Unlock()
	return nil
}

func (f *AirtimeFlow) Success() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.success
}

func (f *AirtimeFlow) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.resetTimer != nil {
		f.resetTimer.Stop()
		f.resetTimer = nil
	}
	f.success = false
}

// CableFlow is the single-step cable TV subscription.
type CableFlow struct {
	mu     sync.Mutex
	api    UtilitiesAPI
	logger *zap.Logger

	success       bool
	successWindow time.Duration
	resetTimer    *time.Timer
}

func NewCableFlow(backend UtilitiesAPI, logger *zap.Logger) *CableFlow {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CableFlow{api: backend, logger: logger, successWindow: cableSuccessWindow}
}

// Submit validates the smartcard and bouquet and issues the purchase.
func (f *CableFlow) Submit(ctx context.Context, smartcardNumber string, planID int) error {
	var errs ValidationErrors
	if len(smartcardNumber) < 10 || !digitsOnly.MatchString(smartcardNumber) {
		errs = append(errs, FieldError{"smartcard_number", "smartcard number must be at least 10 digits"})
	}
	if _, ok := catalog.CablePlanByID(planID); !ok {
		errs = append(errs, FieldError{"plan_id", "please select a plan"})
	}
	if err := errs.ErrOrNil(); err != nil {
		return err
	}

	err := f.api.PurchaseCable(ctx, api.CablePurchaseInput{
		SmartcardNumber: smartcardNumber,
		PlanID:          planID,
	})
	if err != nil {
		return err
	}

	f.mu.Lock()
	f.success = true
	f.resetTimer = time.AfterFunc(f.successWindow, f.Reset)
	f.mu.Unlock()
	return nil
}

func (f *CableFlow) Success() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.success
}

func (f *CableFlow) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.resetTimer != nil {
		f.resetTimer.Stop()
		f.resetTimer = nil
	}
	f.success = false
}
