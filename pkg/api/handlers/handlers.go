// Package handlers implements the storefront's HTTP endpoints. Handlers read
// the request's session from the context, call the affiliate backend and
// answer with the banner envelopes from pkg/api/errors.
package handlers

import (
	"context"
	"errors"
	"net/http"

	apierrors "github.com/jordanlanch/alug/pkg/api/errors"
	"github.com/jordanlanch/alug/pkg/api/middleware"
	"github.com/jordanlanch/alug/pkg/models"
	"github.com/jordanlanch/alug/pkg/session"
	"github.com/labstack/echo/v4"
)

// MsgInvalidRequest is shown for undecodable request bodies
const MsgInvalidRequest = "Ungültige Anfrage"

// Backend is the part of the backend client the handlers call
type Backend interface {
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
	Register(ctx context.Context, name, email, password string) (*models.AuthResponse, error)

	ListProducts(ctx context.Context, token string) ([]models.Product, error)
	CreateProduct(ctx context.Context, token string, input models.ProductInput) (*models.Product, error)
	DeleteProduct(ctx context.Context, token string, id int) error

	GenerateLink(ctx context.Context, token string, productID int) (*models.AffiliateLink, error)
	MyLinks(ctx context.Context, token string) ([]models.AffiliateLink, error)

	Balance(ctx context.Context, token string) (*models.Balance, error)
	MyPayouts(ctx context.Context, token string) ([]models.PayoutRequest, error)
	RequestPayout(ctx context.Context, token string, form models.PayoutForm) error
	UpdatePayoutStatus(ctx context.Context, token string, payoutID int, status models.PayoutStatus) error
}

// Recorder receives business events for metrics
type Recorder interface {
	RecordViewLoad(view string)
	RecordLoginAttempt(kind string, success bool)
	RecordUserRegistered()
	RecordLinkGenerated()
	RecordPayoutRequest(status string)
	RecordRedirect(outcome string)
}

type nopRecorder struct{}

func (nopRecorder) RecordViewLoad(string)           {}
func (nopRecorder) RecordLoginAttempt(string, bool) {}
func (nopRecorder) RecordUserRegistered()           {}
func (nopRecorder) RecordLinkGenerated()            {}
func (nopRecorder) RecordPayoutRequest(string)      {}
func (nopRecorder) RecordRedirect(string)           {}

func recorderOrNop(r Recorder) Recorder {
	if r == nil {
		return nopRecorder{}
	}
	return r
}

var errNoSession = errors.New("request has no session")

// sessionOf returns the request's session. LoadSession runs first on every
// API route, so a missing session is a wiring bug.
func sessionOf(c echo.Context) (*session.Session, error) {
	sess := middleware.GetSession(c)
	if sess == nil {
		return nil, errNoSession
	}
	return sess, nil
}

// invalidRequest answers a body that could not be decoded
func invalidRequest(c echo.Context) error {
	return apierrors.Banner(c, http.StatusBadRequest, "invalid_request", MsgInvalidRequest, nil)
}
