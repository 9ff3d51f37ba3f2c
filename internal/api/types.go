package api

import "encoding/json"

// User is the backend identity record, cached client-side for the session's
// lifetime.
type User struct {
	ID              string `json:"_id"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Phone           string `json:"phone,omitempty"`
	IsActive        bool   `json:"isActive"`
	IsEmailVerified bool   `json:"isEmailVerified"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
}

// LoginResult is the session payload returned by login and OTP verification.
type LoginResult struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// Balance is the wallet read model. The client never mutates it locally.
type Balance struct {
	Balance  float64 `json:"balance"`
	Currency string  `json:"currency"`
}

// Transaction is an immutable wallet ledger entry. Token is only populated
// for electricity purchases.
type Transaction struct {
	ID            string         `json:"_id"`
	UserID        string         `json:"userId"`
	WalletID      string         `json:"walletId"`
	Type          string         `json:"type"` // credit | debit
	Category      string         `json:"category"`
	Amount        float64        `json:"amount"`
	BalanceBefore float64        `json:"balanceBefore"`
	BalanceAfter  float64        `json:"balanceAfter"`
	Status        string         `json:"status"`
	Reference     string         `json:"reference"`
	Description   string         `json:"description"`
	Token         string         `json:"token,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"`
	CreatedAt     string         `json:"createdAt"`
	UpdatedAt     string         `json:"updatedAt"`
}

// PaymentInit carries the gateway hand-off for a wallet funding attempt.
type PaymentInit struct {
	AuthorizationURL string `json:"authorizationUrl"`
	AccessCode       string `json:"accessCode"`
	Reference        string `json:"reference"`
}

// PaymentVerification is the normalized outcome of a verify-payment call.
// Amount is in naira; the gateway reports kobo and the adapter converts.
type PaymentVerification struct {
	Amount    float64
	HasAmount bool
	Reference string
	Raw       json.RawMessage
}

// DataPlan is one purchasable mobile data product.
type DataPlan struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	ATMPrice    string `json:"atm_price"`
	WalletPrice string `json:"wallet_price"`
	APIPrice    string `json:"api_price"`
	Price       string `json:"price"`
	MBValue     string `json:"mb_value,omitempty"`
	Type        int    `json:"type"`
	Network     string `json:"network"`
}

// MeterInfo is the customer record returned by meter verification, held only
// between the verify and purchase steps.
type MeterInfo struct {
	CustomerName string `json:"customer_name"`
	Address      string `json:"address"`
	MeterNumber  string `json:"meter_number"`
}

// ElectricityReceipt is the normalized result of an electricity purchase.
type ElectricityReceipt struct {
	Token string
	Raw   json.RawMessage
}

// ReferralStats summarizes a user's referral activity.
type ReferralStats struct {
	ReferralCode   string  `json:"referralCode"`
	TotalReferrals int     `json:"totalReferrals"`
	TotalRewards   float64 `json:"totalRewards"`
}
