package api

import (
	"context"
	"encoding/json"
	"net/url"
)

// InitializePayment starts a wallet funding attempt. The caller must
// navigate to the returned authorization URL; the gateway redirects back
// with a reference once payment completes.
func (c *Client) InitializePayment(ctx context.Context, email string, amount float64) (*PaymentInit, error) {
	body := map[string]any{"email": email, "amount": amount}
	var out PaymentInit
	if err := c.post(ctx, "/payments/initialize", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyPayment confirms a gateway reference with the backend and returns a
// normalized verification: the gateway reports amounts in kobo under a
// payload location that has shifted between API versions, so the raw data is
// run through the response adapter.
func (c *Client) VerifyPayment(ctx context.Context, reference string) (*PaymentVerification, error) {
	query := url.Values{"reference": []string{reference}}
	var raw json.RawMessage
	if err := c.get(ctx, "/payments/verify", query, &raw); err != nil {
		return nil, err
	}

	result := &PaymentVerification{Reference: reference, Raw: raw}
	if kobo, ok := extractPaymentAmountKobo(raw); ok {
		result.Amount = kobo / 100
		result.HasAmount = true
	}
	return result, nil
}
