package handlers

import (
	"net/http"
	"time"

	apierrors "github.com/jordanlanch/alug/pkg/api/errors"
	"github.com/jordanlanch/alug/pkg/legal"
	"github.com/jordanlanch/alug/pkg/models"
	"github.com/labstack/echo/v4"
)

// MsgLegalSaved confirms the legal editor
const MsgLegalSaved = "Rechtliche Daten gespeichert!"

// LegalHandler renders legal pages and edits their configuration
type LegalHandler struct {
	configs *legal.ConfigStore
	consent *legal.Consent
	now     func() time.Time
}

// NewLegalHandler creates a new legal handler
func NewLegalHandler(configs *legal.ConfigStore, consent *legal.Consent) *LegalHandler {
	return &LegalHandler{configs: configs, consent: consent, now: time.Now}
}

// Page godoc
// @Summary Render a legal page
// @Description impressum, datenschutz, agb or disclaimer. Unknown pages render the impressum.
// @Tags Legal
// @Produce json
// @Param page path string true "Page"
// @Success 200 {object} models.LegalDocument
// @Router /legal/{page} [get]
func (h *LegalHandler) Page(c echo.Context) error {
	sess, err := sessionOf(c)
	if err != nil {
		return apierrors.InternalError(c, err)
	}

	cfg, err := h.configs.Load(c.Request().Context(), sess.ClientID())
	if err != nil {
		return apierrors.InternalError(c, err)
	}

	return c.JSON(http.StatusOK, legal.Render(c.Param("page"), cfg, h.now()))
}

// GetConfig godoc
// @Summary Legal configuration
// @Tags Legal
// @Produce json
// @Success 200 {object} models.LegalConfig
// @Router /legal/config [get]
func (h *LegalHandler) GetConfig(c echo.Context) error {
	sess, err := sessionOf(c)
	if err != nil {
		return apierrors.InternalError(c, err)
	}

	cfg, err := h.configs.Load(c.Request().Context(), sess.ClientID())
	if err != nil {
		return apierrors.InternalError(c, err)
	}
	return c.JSON(http.StatusOK, cfg)
}

// SaveConfig godoc
// @Summary Save the legal configuration
// @Description Stored as entered. Unset fields keep their placeholder in rendered pages.
// @Tags Legal
// @Accept json
// @Produce json
// @Param request body models.LegalConfig true "Legal configuration"
// @Success 200 {object} models.SuccessResponse
// @Router /legal/config [put]
func (h *LegalHandler) SaveConfig(c echo.Context) error {
	var cfg models.LegalConfig
	if err := c.Bind(&cfg); err != nil {
		return invalidRequest(c)
	}

	sess, err := sessionOf(c)
	if err != nil {
		return apierrors.InternalError(c, err)
	}

	if err := h.configs.Save(c.Request().Context(), sess.ClientID(), cfg); err != nil {
		return apierrors.InternalError(c, err)
	}
	return apierrors.Success(c, http.StatusOK, MsgLegalSaved, cfg, nil)
}

// Consent godoc
// @Summary Cookie banner state
// @Tags Legal
// @Produce json
// @Success 200 {object} models.ConsentState
// @Router /consent [get]
func (h *LegalHandler) Consent(c echo.Context) error {
	sess, err := sessionOf(c)
	if err != nil {
		return apierrors.InternalError(c, err)
	}

	state, err := h.consent.State(c.Request().Context(), sess.ClientID())
	if err != nil {
		return apierrors.InternalError(c, err)
	}
	return c.JSON(http.StatusOK, state)
}

// AcceptConsent godoc
// @Summary Accept cookies
// @Description Persists the acceptance. Repeating it changes nothing.
// @Tags Legal
// @Produce json
// @Success 200 {object} models.ConsentState
// @Router /consent/accept [post]
func (h *LegalHandler) AcceptConsent(c echo.Context) error {
	sess, err := sessionOf(c)
	if err != nil {
		return apierrors.InternalError(c, err)
	}

	if err := h.consent.Accept(c.Request().Context(), sess.ClientID()); err != nil {
		return apierrors.InternalError(c, err)
	}
	return c.JSON(http.StatusOK, models.ConsentState{BannerVisible: false})
}

// DeclineConsent godoc
// @Summary Decline cookies
// @Description Hides the banner for the current page only. Nothing is stored, so it shows again on the next load.
// @Tags Legal
// @Produce json
// @Success 200 {object} models.ConsentState
// @Router /consent/decline [post]
func (h *LegalHandler) DeclineConsent(c echo.Context) error {
	sess, err := sessionOf(c)
	if err != nil {
		return apierrors.InternalError(c, err)
	}

	if err := h.consent.Decline(c.Request().Context(), sess.ClientID()); err != nil {
		return apierrors.InternalError(c, err)
	}
	return c.JSON(http.StatusOK, models.ConsentState{BannerVisible: false})
}
