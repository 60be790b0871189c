// Package views is the storefront's view state machine: which panels a
// session may see, which modals an action toggles, and what data each view
// loads on entry.
package views

import (
	"errors"
	"fmt"

	"github.com/jordanlanch/alug/pkg/models"
	"github.com/jordanlanch/alug/pkg/session"
)

// View is a top-level panel
type View string

// Views
const (
	Shop        View = "shop"
	Dashboard   View = "dashboard"
	Leaderboard View = "leaderboard"
	Admin       View = "admin"
)

// Modal is an overlay that opens independently of the current view
type Modal string

// Modals
const (
	ModalAdminLogin      Modal = "admin-login"
	ModalUserAuth        Modal = "user-auth"
	ModalPayoutRequest   Modal = "payout-request"
	ModalLegal           Modal = "legal"
	ModalCategoryManager Modal = "category-manager"
)

// Gating errors
var (
	ErrLoginRequired = errors.New("login required")
	ErrAdminRequired = errors.New("admin rights required")
	ErrUnknownView   = errors.New("unknown view")
)

var allViews = []View{Shop, Dashboard, Leaderboard, Admin}

// ParseView validates a view name
func ParseView(s string) (View, error) {
	for _, v := range allViews {
		if string(v) == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownView, s)
}

// Visible returns the views sess may navigate to, in menu order
func Visible(sess *session.Session) []View {
	out := []View{Shop}
	if sess.Authenticated() {
		out = append(out, Dashboard)
	}
	out = append(out, Leaderboard)
	if sess.IsAdmin() {
		out = append(out, Admin)
	}
	return out
}

// Names converts views to strings
func Names(vs []View) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = string(v)
	}
	return out
}

// Authorize checks whether sess may enter v
func Authorize(sess *session.Session, v View) error {
	switch v {
	case Dashboard:
		if !sess.Authenticated() {
			return ErrLoginRequired
		}
	case Admin:
		if !sess.IsAdmin() {
			return ErrAdminRequired
		}
	}
	return nil
}

// Navigate builds a navigation hint that switches to v (if non-empty) and
// toggles modals
func Navigate(v View, open []Modal, closed ...Modal) *models.Navigation {
	nav := &models.Navigation{View: string(v)}
	for _, m := range open {
		nav.Open = append(nav.Open, string(m))
	}
	for _, m := range closed {
		nav.Close = append(nav.Close, string(m))
	}
	return nav
}

// Open is a navigation hint that only opens m
func Open(m Modal) *models.Navigation {
	return Navigate("", []Modal{m})
}

// Close is a navigation hint that only closes ms
func Close(ms ...Modal) *models.Navigation {
	return Navigate("", nil, ms...)
}
