package handlers

import (
	"bytes"
	"net/http"

	"github.com/jordanlanch/alug/pkg/affiliate"
	apierrors "github.com/jordanlanch/alug/pkg/api/errors"
	"github.com/labstack/echo/v4"
)

// RedirectHandler follows affiliate links
type RedirectHandler struct {
	redirector *affiliate.Redirector
	metrics    Recorder
}

// NewRedirectHandler creates a new redirect handler
func NewRedirectHandler(redirector *affiliate.Redirector, metrics Recorder) *RedirectHandler {
	return &RedirectHandler{redirector: redirector, metrics: recorderOrNop(metrics)}
}

// Follow godoc
// @Summary Follow an affiliate link
// @Description Records a click and redirects to the product. Unknown links show a page that returns to the shop.
// @Tags Affiliate
// @Produce html
// @Param code path string true "Link code"
// @Success 302
// @Failure 404 {string} string "Fallback page"
// @Router /aff/{code} [get]
func (h *RedirectHandler) Follow(c echo.Context) error {
	outcome := h.redirector.Resolve(c.Request().Context(), c.Param("code"))
	h.metrics.RecordRedirect(outcome.Kind)

	if outcome.Kind == affiliate.OutcomeDestination {
		return c.Redirect(http.StatusFound, outcome.Destination)
	}

	var page bytes.Buffer
	if err := affiliate.RenderFallback(&page, outcome); err != nil {
		return apierrors.InternalError(c, err)
	}
	return c.HTMLBlob(http.StatusNotFound, page.Bytes())
}
