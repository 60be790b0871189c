package backend

import (
	"context"
	"net/http"

	"github.com/jordanlanch/alug/pkg/models"
)

// Balance returns the current user's ledger snapshot
func (c *Client) Balance(ctx context.Context, token string) (*models.Balance, error) {
	var out models.Balance
	if err := c.do(ctx, "payouts.balance", http.MethodGet, "/payouts/balance", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MyPayouts lists the current user's payout requests
func (c *Client) MyPayouts(ctx context.Context, token string) ([]models.PayoutRequest, error) {
	var out []models.PayoutRequest
	if err := c.do(ctx, "payouts.mine", http.MethodGet, "/payouts/my-payouts", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RequestPayout submits a payout request
func (c *Client) RequestPayout(ctx context.Context, token string, form models.PayoutForm) error {
	return c.do(ctx, "payouts.request", http.MethodPost, "/payouts/request", token, form, nil)
}
