package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jordanlanch/alug/pkg/models"
)

// ListProducts returns the full catalog
func (c *Client) ListProducts(ctx context.Context, token string) ([]models.Product, error) {
	var out []models.Product
	if err := c.do(ctx, "products.list", http.MethodGet, "/products", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetProduct returns one product
func (c *Client) GetProduct(ctx context.Context, token string, id int) (*models.Product, error) {
	var out models.Product
	if err := c.do(ctx, "products.get", http.MethodGet, fmt.Sprintf("/products/%d", id), token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateProduct creates a product from the admin form
func (c *Client) CreateProduct(ctx context.Context, token string, input models.ProductInput) (*models.Product, error) {
	var out models.Product
	if err := c.do(ctx, "products.create", http.MethodPost, "/products", token, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProduct replaces a product
func (c *Client) UpdateProduct(ctx context.Context, token string, id int, input models.ProductInput) (*models.Product, error) {
	var out models.Product
	if err := c.do(ctx, "products.update", http.MethodPut, fmt.Sprintf("/products/%d", id), token, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteProduct removes a product
func (c *Client) DeleteProduct(ctx context.Context, token string, id int) error {
	return c.do(ctx, "products.delete", http.MethodDelete, fmt.Sprintf("/products/%d", id), token, nil, nil)
}
