package handlers

import (
	"net/http"

	"github.com/jordanlanch/alug/pkg/affiliate"
	apierrors "github.com/jordanlanch/alug/pkg/api/errors"
	"github.com/jordanlanch/alug/pkg/logger"
	"github.com/jordanlanch/alug/pkg/models"
	"github.com/labstack/echo/v4"
)

// Link banner texts
const (
	MsgLinkGenerated      = "Link generiert!"
	MsgLinkGenerateFailed = "Fehler beim Generieren"
)

// LinkHandler lists and generates affiliate links
type LinkHandler struct {
	backend Backend
	origin  string
	log     logger.Logger
	metrics Recorder
}

// NewLinkHandler creates a new link handler. origin is the public URL links
// are shared on.
func NewLinkHandler(backend Backend, origin string, log logger.Logger, metrics Recorder) *LinkHandler {
	return &LinkHandler{
		backend: backend,
		origin:  origin,
		log:     log,
		metrics: recorderOrNop(metrics),
	}
}

// ListLinks godoc
// @Summary List my affiliate links
// @Description One link per product with its shareable URL. A backend failure yields an empty list.
// @Tags Links
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /links [get]
func (h *LinkHandler) ListLinks(c echo.Context) error {
	sess, err := sessionOf(c)
	if err != nil {
		return apierrors.InternalError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"links": h.load(c, sess.Token()),
	})
}

// GenerateLink godoc
// @Summary Generate an affiliate link
// @Tags Links
// @Accept json
// @Produce json
// @Param request body models.GenerateLinkRequest true "Product"
// @Success 201 {object} models.SuccessResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /links [post]
func (h *LinkHandler) GenerateLink(c echo.Context) error {
	var req models.GenerateLinkRequest
	if err := c.Bind(&req); err != nil || req.ProductID <= 0 {
		return invalidRequest(c)
	}

	sess, err := sessionOf(c)
	if err != nil {
		return apierrors.InternalError(c, err)
	}

	if _, err := h.backend.GenerateLink(c.Request().Context(), sess.Token(), req.ProductID); err != nil {
		return apierrors.BackendError(c, err, MsgLinkGenerateFailed, true)
	}
	h.metrics.RecordLinkGenerated()

	return apierrors.Success(c, http.StatusCreated, MsgLinkGenerated, map[string]interface{}{
		"links": h.load(c, sess.Token()),
	}, nil)
}

// load fetches, dedupes and renders the user's links
func (h *LinkHandler) load(c echo.Context, token string) []models.LinkView {
	links, err := h.backend.MyLinks(c.Request().Context(), token)
	if err != nil {
		h.log.Error("links error", "error", err)
		return []models.LinkView{}
	}
	return affiliate.Views(h.origin, links)
}
