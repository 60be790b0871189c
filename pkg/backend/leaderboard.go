package backend

import (
	"context"
	"net/http"

	"github.com/jordanlanch/alug/pkg/models"
)

// TopMarketers returns the marketer ranking
func (c *Client) TopMarketers(ctx context.Context, token string) ([]models.TopMarketer, error) {
	var out []models.TopMarketer
	if err := c.do(ctx, "leaderboard.marketers", http.MethodGet, "/leaderboard/marketers", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TopProducts returns the product ranking
func (c *Client) TopProducts(ctx context.Context, token string) ([]models.TopProduct, error) {
	var out []models.TopProduct
	if err := c.do(ctx, "leaderboard.products", http.MethodGet, "/leaderboard/products", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
