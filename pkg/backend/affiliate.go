package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/jordanlanch/alug/pkg/models"
)

// GenerateLink mints (or returns the existing) link for a product
func (c *Client) GenerateLink(ctx context.Context, token string, productID int) (*models.AffiliateLink, error) {
	var out models.AffiliateLink
	body := models.GenerateLinkRequest{ProductID: productID}
	if err := c.do(ctx, "affiliate.generate", http.MethodPost, "/affiliate/generate", token, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MyLinks lists the current user's links
func (c *Client) MyLinks(ctx context.Context, token string) ([]models.AffiliateLink, error) {
	var out []models.AffiliateLink
	if err := c.do(ctx, "affiliate.my_links", http.MethodGet, "/affiliate/my-links", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TrackClick records a click on a link code
func (c *Client) TrackClick(ctx context.Context, linkCode string) error {
	body := map[string]string{"linkCode": linkCode}
	return c.do(ctx, "track.click", http.MethodPost, "/track/click", "", body, nil)
}

// TrackConversion records a conversion for a link code
func (c *Client) TrackConversion(ctx context.Context, linkCode string, amount float64) error {
	body := map[string]any{"linkCode": linkCode, "amount": amount}
	return c.do(ctx, "track.conversion", http.MethodPost, "/track/conversion", "", body, nil)
}

// ResolveLink looks up the destination for a link code
func (c *Client) ResolveLink(ctx context.Context, linkCode string) (*models.LinkResolution, error) {
	var out models.LinkResolution
	path := "/affiliate/link/" + url.PathEscape(linkCode)
	if err := c.do(ctx, "affiliate.resolve", http.MethodGet, path, "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
