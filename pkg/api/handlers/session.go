package handlers

import (
	"net/http"

	apierrors "github.com/jordanlanch/alug/pkg/api/errors"
	"github.com/jordanlanch/alug/pkg/legal"
	"github.com/jordanlanch/alug/pkg/models"
	"github.com/jordanlanch/alug/pkg/session"
	"github.com/jordanlanch/alug/pkg/views"
	"github.com/labstack/echo/v4"
)

// SessionHandler reports the browser's session to the shell
type SessionHandler struct {
	consent *legal.Consent
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(consent *legal.Consent) *SessionHandler {
	return &SessionHandler{consent: consent}
}

// GetSession godoc
// @Summary Current session
// @Description Returns login state, admin grant, visible views and whether the cookie banner shows
// @Tags Session
// @Produce json
// @Success 200 {object} models.SessionState
// @Router /session [get]
func (h *SessionHandler) GetSession(c echo.Context) error {
	sess, err := sessionOf(c)
	if err != nil {
		return apierrors.InternalError(c, err)
	}

	consent, err := h.consent.State(c.Request().Context(), sess.ClientID())
	if err != nil {
		return apierrors.InternalError(c, err)
	}

	state := stateOf(sess)
	state.CookieBannerVisible = consent.BannerVisible

	return c.JSON(http.StatusOK, state)
}

// stateOf is the session state returned alongside auth banners
func stateOf(sess *session.Session) models.SessionState {
	state := sess.State()
	state.Views = views.Names(views.Visible(sess))
	return state
}
