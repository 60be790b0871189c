package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jordanlanch/alug/pkg/models"
)

// MyStats returns the dashboard summary
func (c *Client) MyStats(ctx context.Context, token string) (*models.MyStats, error) {
	var out models.MyStats
	if err := c.do(ctx, "analytics.my_stats", http.MethodGet, "/analytics/my-stats", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LinkStats returns analytics for one link
func (c *Client) LinkStats(ctx context.Context, token string, linkID int) (*models.LinkStats, error) {
	var out models.LinkStats
	path := fmt.Sprintf("/analytics/link/%d", linkID)
	if err := c.do(ctx, "analytics.link", http.MethodGet, path, token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DailyStats returns the recent daily click/conversion series
func (c *Client) DailyStats(ctx context.Context, token string) ([]models.DailyStat, error) {
	var out []models.DailyStat
	if err := c.do(ctx, "analytics.daily_stats", http.MethodGet, "/analytics/daily-stats", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ProductStats returns revenue per product
func (c *Client) ProductStats(ctx context.Context, token string) ([]models.ProductStat, error) {
	var out []models.ProductStat
	if err := c.do(ctx, "analytics.product_stats", http.MethodGet, "/analytics/product-stats", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
