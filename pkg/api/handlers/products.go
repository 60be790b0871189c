package handlers

import (
	"net/http"
	"strconv"

	apierrors "github.com/jordanlanch/alug/pkg/api/errors"
	"github.com/jordanlanch/alug/pkg/catalog"
	"github.com/jordanlanch/alug/pkg/models"
	"github.com/jordanlanch/alug/pkg/views"
	"github.com/labstack/echo/v4"
)

// Product banner texts
const (
	MsgProductCreated      = "Produkt erfolgreich erstellt!"
	MsgProductCreateFailed = "Fehler beim Erstellen"
	MsgProductDeleted      = "Produkt gelöscht"
	MsgProductDeleteFailed = "Fehler beim Löschen"
)

// ProductHandler serves the catalog and the admin product form
type ProductHandler struct {
	backend Backend
}

// NewProductHandler creates a new product handler
func NewProductHandler(backend Backend) *ProductHandler {
	return &ProductHandler{backend: backend}
}

// ListProducts godoc
// @Summary List products
// @Description Returns the catalog filtered by search text and category and ordered by sort key
// @Tags Products
// @Produce json
// @Param q query string false "Search in name and description"
// @Param category query string false "Category or all"
// @Param sort query string false "newest, name-asc, name-desc, price-asc, price-desc, commission-high, commission-low"
// @Success 200 {object} map[string]interface{}
// @Failure 502 {object} models.ErrorResponse
// @Router /products [get]
func (h *ProductHandler) ListProducts(c echo.Context) error {
	var q catalog.Query
	if err := c.Bind(&q); err != nil {
		return invalidRequest(c)
	}

	sess, err := sessionOf(c)
	if err != nil {
		return apierrors.InternalError(c, err)
	}

	products, err := h.backend.ListProducts(c.Request().Context(), sess.Token())
	if err != nil {
		return apierrors.BackendError(c, err, views.MsgProductsFailed, false)
	}

	filtered := catalog.Apply(products, q)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"products": filtered,
		"total":    len(filtered),
	})
}

// CreateProduct godoc
// @Summary Create a product
// @Description Validates the admin product form, including the optional image, then creates it
// @Tags Products
// @Accept json
// @Produce json
// @Param request body models.ProductInput true "Product form"
// @Success 201 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /products [post]
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req models.ProductInput
	if err := c.Bind(&req); err != nil {
		return invalidRequest(c)
	}

	input, err := catalog.ValidateProduct(req)
	if err != nil {
		return apierrors.ValidationError(c, err)
	}

	sess, err := sessionOf(c)
	if err != nil {
		return apierrors.InternalError(c, err)
	}

	product, err := h.backend.CreateProduct(c.Request().Context(), sess.Token(), input)
	if err != nil {
		return apierrors.BackendError(c, err, MsgProductCreateFailed, true)
	}

	return apierrors.Success(c, http.StatusCreated, MsgProductCreated, product, nil)
}

// DeleteProduct godoc
// @Summary Delete a product
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.SuccessResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /products/{id} [delete]
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return invalidRequest(c)
	}

	sess, err := sessionOf(c)
	if err != nil {
		return apierrors.InternalError(c, err)
	}

	if err := h.backend.DeleteProduct(c.Request().Context(), sess.Token(), id); err != nil {
		return apierrors.BackendError(c, err, MsgProductDeleteFailed, false)
	}

	return apierrors.Success(c, http.StatusOK, MsgProductDeleted, nil, nil)
}
