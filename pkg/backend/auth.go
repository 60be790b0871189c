package backend

import (
	"context"
	"net/http"

	"github.com/jordanlanch/alug/pkg/models"
)

// Login exchanges credentials for a token and user record
func (c *Client) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	var out models.AuthResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, "auth.login", http.MethodPost, "/auth/login", "", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates an account and returns its token and user record
func (c *Client) Register(ctx context.Context, name, email, password string) (*models.AuthResponse, error) {
	var out models.AuthResponse
	body := map[string]string{"name": name, "email": email, "password": password}
	if err := c.do(ctx, "auth.register", http.MethodPost, "/auth/register", "", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
