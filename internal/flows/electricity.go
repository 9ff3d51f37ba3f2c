package flows

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"recharge-earn/internal/api"
	"recharge-earn/internal/catalog"
	"recharge-earn/internal/utils"
)

// ElectricityState enumerates the electricity flow's steps.
type ElectricityState string

const (
	StateElectricityVerify   ElectricityState = "verify"
	StateElectricityPurchase ElectricityState = "purchase"
	StateElectricitySuccess  ElectricityState = "success"
)

// tokenDisplayWindow is how long the recharge token stays on screen before
// the flow resets for the next purchase.
const tokenDisplayWindow = 10 * time.Second

// ElectricityAPI is the backend surface the electricity flow needs.
type ElectricityAPI interface {
	VerifyMeter(ctx context.Context, planID int, meterNumber string) (*api.MeterInfo, error)
	PurchaseElectricity(ctx context.Context, in api.ElectricityPurchaseInput) (*api.ElectricityReceipt, error)
}

// ElectricityConfirmation is the snapshot shown before the charge is
// issued. Wrong details are not refundable, so the purchase only proceeds
// through an explicit confirmation of this snapshot.
type ElectricityConfirmation struct {
	MeterNumber string
	Provider    string
	PlanType    catalog.PlanType
	PhoneNumber string
	Amount      float64
}

// ElectricityFlow drives meter verification, the confirmed purchase and the
// token display window. The reset timer fires on its own goroutine, so
// state is mutex-guarded.
type ElectricityFlow struct {
	mu     sync.Mutex
	api    ElectricityAPI
	logger *zap.Logger

	state       ElectricityState
	provider    string
	planType    catalog.PlanType
	planID      int
	meterNumber string
	meterInfo   *api.MeterInfo

	pendingPhone  string
	pendingAmount float64

	token      string
	resetDelay time.Duration
	resetTimer *time.Timer
}

func NewElectricityFlow(backend ElectricityAPI, logger *zap.Logger) *ElectricityFlow {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ElectricityFlow{
		api:        backend,
		logger:     logger,
		state:      StateElectricityVerify,
		resetDelay: tokenDisplayWindow,
	}
}

func (f *ElectricityFlow) State() ElectricityState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// MeterInfo returns the verified customer record while in the purchase
// step.
func (f *ElectricityFlow) MeterInfo() (api.MeterInfo, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.meterInfo == nil {
		return api.MeterInfo{}, false
	}
	return *f.meterInfo, true
}

// Token returns the recharge token while in the success step.
func (f *ElectricityFlow) Token() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

// PlanID returns the resolved aggregator plan ID.
func (f *ElectricityFlow) PlanID() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.planID
}

// SubmitVerify resolves the plan ID from the provider and plan type,
// verifies the meter, and advances to the purchase step.
func (f *ElectricityFlow) SubmitVerify(ctx context.Context, provider string, planType catalog.PlanType, meterNumber string) error {
	f.mu.Lock()
	if f.state != StateElectricityVerify {
		f.mu.Unlock()
		return errInvalidFlowState
	}
	f.mu.Unlock()

	var errs ValidationErrors
	if len(meterNumber) < 10 || !digitsOnly.MatchString(meterNumber) {
		errs = append(errs, FieldError{"meter_number", "meter number must be at least 10 digits"})
	}
	if planType != catalog.Prepaid && planType != catalog.Postpaid {
		errs = append(errs, FieldError{"plan_type", "plan type must be prepaid or postpaid"})
	}
	if err := errs.ErrOrNil(); err != nil {
		return err
	}

	planID := catalog.ElectricityPlanID(provider, planType)
	info, err := f.api.VerifyMeter(ctx, planID, meterNumber)
	if err != nil {
		return err
	}

	f.mu.Lock()
	f.provider = provider
	f.planType = planType
	f.planID = planID
	f.meterNumber = meterNumber
	f.meterInfo = info
	f.state = StateElectricityPurchase
	f.mu.Unlock()
	return nil
}

// PreparePurchase validates the purchase details and returns the
// confirmation snapshot. No charge is issued until ConfirmPurchase.
func (f *ElectricityFlow) PreparePurchase(phone string, amount float64) (ElectricityConfirmation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateElectricityPurchase {
		return ElectricityConfirmation{}, errInvalidFlowState
	}

	var errs ValidationErrors
	normalizedPhone := utils.FormatPhoneNumber(phone)
	if !utils.ValidatePhoneNumber(normalizedPhone) {
		errs = append(errs, FieldError{"phone_number", "invalid phone number format"})
	}
	if amount < 100 {
		errs = append(errs, FieldError{"amount", "minimum amount is ₦100"})
	}
	if err := errs.ErrOrNil(); err != nil {
		return ElectricityConfirmation{}, err
	}

	f.pendingPhone = normalizedPhone
	f.pendingAmount = amount
	return ElectricityConfirmation{
		MeterNumber: f.meterNumber,
		Provider:    f.provider,
		PlanType:    f.planType,
		PhoneNumber: normalizedPhone,
		Amount:      amount,
	}, nil
}

// ConfirmPurchase issues the charge prepared by PreparePurchase. Success
// moves to the token display and schedules the automatic reset.
func (f *ElectricityFlow) ConfirmPurchase(ctx context.Context) error {
	f.mu.Lock()
	if f.state != StateElectricityPurchase || f.pendingPhone == "" {
		f.mu.Unlock()
		return errInvalidFlowState
	}
	input := api.ElectricityPurchaseInput{
		PhoneNumber: f.pendingPhone,
		PlanID:      f.planID,
		Amount:      f.pendingAmount,
		MeterNumber: f.meterNumber,
	}
	f.mu.Unlock()

	receipt, err := f.api.PurchaseElectricity(ctx, input)
	if err != nil {
		return err
	}

	f.mu.Lock()
	f.token = receipt.Token
	f.state = StateElectricitySuccess
	f.resetTimer = time.AfterFunc(f.resetDelay, f.Reset)
	f.mu.Unlock()

	f.logger.Info("electricity purchased",
		zap.Int("plan_id", input.PlanID),
		zap.String("meter_number", input.MeterNumber))
	return nil
}

// Back discards the verified meter info and returns to the verify step,
// forcing re-verification.
func (f *ElectricityFlow) Back() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateElectricityPurchase {
		return
	}
	f.meterInfo = nil
	f.pendingPhone = ""
	f.pendingAmount = 0
	f.state = StateElectricityVerify
}

// Reset clears all transient flow state and returns to the verify step.
func (f *ElectricityFlow) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.resetTimer != nil {
		f.resetTimer.Stop()
		f.resetTimer = nil
	}
	f.provider = ""
	f.planType = ""
	f.planID = 0
	f.meterNumber = ""
	f.meterInfo = nil
	f.pendingPhone = ""
	f.pendingAmount = 0
	f.token = ""
	f.state = StateElectricityVerify
}
