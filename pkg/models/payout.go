package models

import "github.com/shopspring/decimal"

// PayoutStatus is the admin-driven lifecycle of a payout request
type PayoutStatus string

// Payout statuses
const (
	PayoutPending  PayoutStatus = "pending"
	PayoutApproved PayoutStatus = "approved"
	PayoutPaid     PayoutStatus = "paid"
	PayoutRejected PayoutStatus = "rejected"
)

// Balance is the server-side ledger snapshot for the current user
type Balance struct {
	TotalEarned decimal.Decimal `json:"total_earned"`
	TotalPaid   decimal.Decimal `json:"total_paid"`
	Available   decimal.Decimal `json:"available"`
}

// PayoutRequest is a withdrawal request
type PayoutRequest struct {
	ID             int             `json:"id"`
	Name           string          `json:"name,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	PaymentMethod  string          `json:"payment_method"`
	PaymentDetails string          `json:"payment_details"`
	Status         PayoutStatus    `json:"status"`
	StatusLabel    string          `json:"status_label,omitempty"`
	RequestedAt    string          `json:"requested_at,omitempty"`
}

// PayoutForm is the user's payout request form as posted to the backend
type PayoutForm struct {
	Amount         string `json:"amount"`
	PaymentMethod  string `json:"paymentMethod"`
	PaymentDetails string `json:"paymentDetails"`
}

// PayoutStatusUpdate is the admin status change body
type PayoutStatusUpdate struct {
	Status PayoutStatus `json:"status"`
}
