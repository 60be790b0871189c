package models

// User is the account record issued by the affiliate backend
type User struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest represents the registration form, including the confirmation field
type RegisterRequest struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirmPassword"`
}

// AdminLoginRequest carries the admin password prompt
type AdminLoginRequest struct {
	Password string `json:"password"`
}

// AuthResponse is returned by the backend on login and register
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// AdminUser is a row of the admin user table
type AdminUser struct {
	ID               int        `json:"id"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	TotalConversions FlexNumber `json:"total_conversions"`
	TotalEarnings    FlexNumber `json:"total_earnings"`
}

// SessionState describes the current browser session to the storefront shell
type SessionState struct {
	Authenticated       bool     `json:"authenticated"`
	User                *User    `json:"user,omitempty"`
	IsAdmin             bool     `json:"is_admin"`
	AdminGrant          string   `json:"admin_grant"`
	Views               []string `json:"views"`
	CookieBannerVisible bool     `json:"cookie_banner_visible"`
}
