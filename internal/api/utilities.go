package api

import (
	"context"
	"encoding/json"
)

// DataPurchaseInput is the data top-up payload. Reference is generated
// client-side.
type DataPurchaseInput struct {
	PhoneNumber string `json:"phone_number"`
	PlanID      int    `json:"plan_id"`
	Reference   string `json:"reference"`
	Network     string `json:"network,omitempty"`
}

// AirtimePurchaseInput is the airtime top-up payload.
type AirtimePurchaseInput struct {
	PhoneNumber string  `json:"phone_number"`
	Amount      float64 `json:"amount"`
	Network     string  `json:"network"`
	Reference   string  `json:"reference"`
}

// ElectricityPurchaseInput is the electricity charge payload. PlanID and
// MeterNumber come from the preceding verification step.
type ElectricityPurchaseInput struct {
	PhoneNumber string  `json:"phone_number"`
	PlanID      int     `json:"plan_id"`
	Amount      float64 `json:"amount"`
	MeterNumber string  `json:"meter_number"`
}

// CablePurchaseInput is the cable subscription payload.
type CablePurchaseInput struct {
	SmartcardNumber string `json:"smartcard_number"`
	PlanID          int    `json:"plan_id"`
}

// GetDataPlans returns the available data plans grouped by network. The
// aggregator wraps the grouping in an extra data layer; the adapter strips
// it.
func (c *Client) GetDataPlans(ctx context.Context) (map[string][]DataPlan, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/utilities/data", nil, &raw); err != nil {
		return nil, err
	}
	return extractDataPlans(raw)
}

func (c *Client) PurchaseData(ctx context.Context, in DataPurchaseInput) error {
	return c.post(ctx, "/utilities/data_purchase", in, nil)
}

func (c *Client) PurchaseAirtime(ctx context.Context, in AirtimePurchaseInput) error {
	return c.post(ctx, "/utilities/airtime_purchase", in, nil)
}

// VerifyMeter resolves a meter number against the aggregator and returns the
// customer record for the purchase confirmation step.
func (c *Client) VerifyMeter(ctx context.Context, planID int, meterNumber string) (*MeterInfo, error) {
	body := map[string]any{"plan_id": planID, "meter_number": meterNumber}
	var raw json.RawMessage
	if err := c.post(ctx, "/utilities/verify_meter", body, &raw); err != nil {
		return nil, err
	}
	info := extractMeterInfo(raw)
	if info.MeterNumber == "" {
		info.MeterNumber = meterNumber
	}
	return &info, nil
}

// PurchaseElectricity charges the wallet and returns the recharge token for
// prepaid meters. The token location in the aggregator response is
// normalized by the adapter.
func (c *Client) PurchaseElectricity(ctx context.Context, in ElectricityPurchaseInput) (*ElectricityReceipt, error) {
	var raw json.RawMessage
	if err := c.post(ctx, "/utilities/electric_purchase", in, &raw); err != nil {
		return nil, err
	}
	return &ElectricityReceipt{Token: extractElectricityToken(raw), Raw: raw}, nil
}

func (c *Client) PurchaseCable(ctx context.Context, in CablePurchaseInput) error {
	return c.post(ctx, "/utilities/cable_purchase", in, nil)
}

func (c *Client) GetTransactionByReference(ctx context.Context, reference string) (*Transaction, error) {
	var out Transaction
	if err := c.get(ctx, "/utilities/transactions/reference/"+reference, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
