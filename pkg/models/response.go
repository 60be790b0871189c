package models

// Banner lifetimes in milliseconds
const (
	ErrorBannerMillis   = 5000
	SuccessBannerMillis = 3000
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error          string      `json:"error"`
	Message        string      `json:"message,omitempty"`
	DismissAfterMS int         `json:"dismiss_after_ms,omitempty"`
	Navigation     *Navigation `json:"navigation,omitempty"`
}

// SuccessResponse represents a success response
type SuccessResponse struct {
	Success        bool        `json:"success"`
	Message        string      `json:"message,omitempty"`
	DismissAfterMS int         `json:"dismiss_after_ms,omitempty"`
	Data           any         `json:"data,omitempty"`
	Navigation     *Navigation `json:"navigation,omitempty"`
}

// Navigation tells the shell which view to show and which modals to toggle
// after an action
type Navigation struct {
	View  string   `json:"view,omitempty"`
	Open  []string `json:"open,omitempty"`
	Close []string `json:"close,omitempty"`
}
