package handlers

import (
	"errors"
	"net/http"

	apierrors "github.com/jordanlanch/alug/pkg/api/errors"
	"github.com/jordanlanch/alug/pkg/views"
	"github.com/labstack/echo/v4"
)

// ViewHandler serves view entries
type ViewHandler struct {
	loader  *views.Loader
	metrics Recorder
}

// NewViewHandler creates a new view handler
func NewViewHandler(loader *views.Loader, metrics Recorder) *ViewHandler {
	return &ViewHandler{loader: loader, metrics: recorderOrNop(metrics)}
}

// Enter godoc
// @Summary Enter a view
// @Description Loads the data of shop, dashboard, leaderboard or admin. Every call re-fetches.
// @Tags Views
// @Produce json
// @Param view path string true "View name"
// @Success 200 {object} views.Screen
// @Failure 401 {object} models.ErrorResponse "Dashboard without login"
// @Failure 403 {object} models.ErrorResponse "Admin without rights"
// @Failure 502 {object} models.ErrorResponse "Shop or admin data failed to load"
// @Router /views/{view} [get]
func (h *ViewHandler) Enter(c echo.Context) error {
	v, err := views.ParseView(c.Param("view"))
	if err != nil {
		return apierrors.NotFoundError(c, "view")
	}

	sess, err := sessionOf(c)
	if err != nil {
		return apierrors.InternalError(c, err)
	}

	screen, err := h.loader.Enter(c.Request().Context(), sess, v)
	if err != nil {
		var loadErr *views.LoadError
		switch {
		case errors.Is(err, views.ErrLoginRequired):
			return apierrors.UnauthorizedError(c, views.Open(views.ModalUserAuth))
		case errors.Is(err, views.ErrAdminRequired):
			return apierrors.ForbiddenError(c, "")
		case errors.As(err, &loadErr):
			return apierrors.BackendError(c, err, loadErr.Message, false)
		default:
			return apierrors.InternalError(c, err)
		}
	}
	h.metrics.RecordViewLoad(string(v))

	return c.JSON(http.StatusOK, screen)
}
