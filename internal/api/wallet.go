package api

import (
	"context"
	"net/url"
	"strconv"
)

func (c *Client) GetWalletBalance(ctx context.Context) (*Balance, error) {
	var out Balance
	if err := c.get(ctx, "/wallet/balance", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetWalletTransactions fetches the transaction history, newest first.
// Zero values omit the corresponding query parameter.
func (c *Client) GetWalletTransactions(ctx context.Context, limit, skip int) ([]Transaction, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	if skip > 0 {
		query.Set("skip", strconv.Itoa(skip))
	}
	var out []Transaction
	if err := c.get(ctx, "/wallet/transactions", query, &out); err != nil {
		return nil, err
	}
	return out, nil
}
