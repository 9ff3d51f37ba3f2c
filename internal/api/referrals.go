package api

import "context"

func (c *Client) GetReferralCode(ctx context.Context) (string, error) {
	var out struct {
		ReferralCode string `json:"referralCode"`
	}
	if err := c.get(ctx, "/referrals/code", nil, &out); err != nil {
		return "", err
	}
	return out.ReferralCode, nil
}

func (c *Client) GetReferralStats(ctx context.Context) (*ReferralStats, error) {
	var out ReferralStats
	if err := c.get(ctx, "/referrals/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
