package handlers

import (
	"net/http"

	apierrors "github.com/jordanlanch/alug/pkg/api/errors"
	"github.com/jordanlanch/alug/pkg/charts"
	"github.com/labstack/echo/v4"
)

// ChartHandler serves the dashboard chart widgets
type ChartHandler struct {
	widgets *charts.Widgets
}

// NewChartHandler creates a new chart handler
func NewChartHandler(widgets *charts.Widgets) *ChartHandler {
	return &ChartHandler{widgets: widgets}
}

// Daily godoc
// @Summary Daily clicks and conversions
// @Tags Charts
// @Produce json
// @Success 200 {object} charts.DailySeries
// @Router /charts/daily [get]
func (h *ChartHandler) Daily(c echo.Context) error {
	sess, err := sessionOf(c)
	if err != nil {
		return apierrors.InternalError(c, err)
	}
	return c.JSON(http.StatusOK, h.widgets.Daily(c.Request().Context(), sess.Token()))
}

// Products godoc
// @Summary Top five products by revenue
// @Tags Charts
// @Produce json
// @Success 200 {object} charts.ProductSeries
// @Router /charts/products [get]
func (h *ChartHandler) Products(c echo.Context) error {
	sess, err := sessionOf(c)
	if err != nil {
		return apierrors.InternalError(c, err)
	}
	return c.JSON(http.StatusOK, h.widgets.Products(c.Request().Context(), sess.Token()))
}
