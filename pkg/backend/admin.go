package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jordanlanch/alug/pkg/models"
)

// AllUsers lists every user (admin)
func (c *Client) AllUsers(ctx context.Context, token string) ([]models.AdminUser, error) {
	var out []models.AdminUser
	if err := c.do(ctx, "admin.users", http.MethodGet, "/admin/users", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AllConversions lists every conversion (admin)
func (c *Client) AllConversions(ctx context.Context, token string) ([]models.Conversion, error) {
	var out []models.Conversion
	if err := c.do(ctx, "admin.conversions", http.MethodGet, "/admin/conversions", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AllPayouts lists every payout request (admin)
func (c *Client) AllPayouts(ctx context.Context, token string) ([]models.PayoutRequest, error) {
	var out []models.PayoutRequest
	if err := c.do(ctx, "admin.payouts", http.MethodGet, "/admin/payouts", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AdminStats returns the admin summary
func (c *Client) AdminStats(ctx context.Context, token string) (*models.AdminStats, error) {
	var out models.AdminStats
	if err := c.do(ctx, "admin.stats", http.MethodGet, "/admin/stats", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdatePayoutStatus moves a payout request to a new status (admin)
func (c *Client) UpdatePayoutStatus(ctx context.Context, token string, payoutID int, status models.PayoutStatus) error {
	path := fmt.Sprintf("/admin/payouts/%d", payoutID)
	body := models.PayoutStatusUpdate{Status: status}
	return c.do(ctx, "admin.update_payout", http.MethodPut, path, token, body, nil)
}
