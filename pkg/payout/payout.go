// Package payout validates payout requests against the displayed balance and
// labels payout statuses.
package payout

import (
	"errors"
	"strings"

	"github.com/jordanlanch/alug/pkg/models"
	"github.com/shopspring/decimal"
)

// MinAmount is the smallest payout a user may request, in EUR
var MinAmount = decimal.NewFromInt(10)

// Payment methods
const (
	MethodPayPal = "paypal"
	MethodBank   = "bank"
	MethodCrypto = "crypto"
)

// Form errors carry the banner text shown to the user
var (
	ErrBelowMinimum        = errors.New("Mindestbetrag: 10€")
	ErrInsufficientBalance = errors.New("Nicht genug Guthaben")
	ErrMissingDetails      = errors.New("Zahlungsdetails fehlen")
	ErrUnknownMethod       = errors.New("Unbekannte Zahlungsmethode")
)

var statusLabels = map[models.PayoutStatus]string{
	models.PayoutPending:  "Ausstehend",
	models.PayoutApproved: "Genehmigt",
	models.PayoutPaid:     "Bezahlt",
	models.PayoutRejected: "Abgelehnt",
}

// ParseAmount reads a user-entered amount, accepting a decimal comma
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "€"))
	s = strings.Replace(s, ",", ".", 1)
	return decimal.NewFromString(s)
}

// Validate checks form against the available balance the user was shown and
// normalises it for the backend. Checks run in order: minimum, balance,
// payment details.
func Validate(form models.PayoutForm, available decimal.Decimal) (models.PayoutForm, error) {
	amount, err := ParseAmount(form.Amount)
	if err != nil || amount.LessThan(MinAmount) {
		return form, ErrBelowMinimum
	}
	if amount.GreaterThan(available) {
		return form, ErrInsufficientBalance
	}
	if strings.TrimSpace(form.PaymentDetails) == "" {
		return form, ErrMissingDetails
	}

	switch form.PaymentMethod {
	case "":
		form.PaymentMethod = MethodPayPal
	case MethodPayPal, MethodBank, MethodCrypto:
	default:
		return form, ErrUnknownMethod
	}

	form.Amount = amount.StringFixed(2)
	form.PaymentDetails = strings.TrimSpace(form.PaymentDetails)
	return form, nil
}

// CanRequest reports whether the balance allows a payout request at all
func CanRequest(b models.Balance) bool {
	return b.Available.GreaterThanOrEqual(MinAmount)
}

// Label returns the German label for status, or the raw status when unknown
func Label(status models.PayoutStatus) string {
	if l, ok := statusLabels[status]; ok {
		return l
	}
	return string(status)
}

// ValidStatus reports whether an admin may set status
func ValidStatus(status models.PayoutStatus) bool {
	_, ok := statusLabels[status]
	return ok
}

// WithLabels fills StatusLabel on each request
func WithLabels(payouts []models.PayoutRequest) []models.PayoutRequest {
	out := make([]models.PayoutRequest, len(payouts))
	for i, p := range payouts {
		p.StatusLabel = Label(p.Status)
		out[i] = p
	}
	return out
}
