package handlers

import (
	"errors"
	"net/http"
	"net/url"

	apierrors "github.com/jordanlanch/alug/pkg/api/errors"
	"github.com/jordanlanch/alug/pkg/catalog"
	"github.com/jordanlanch/alug/pkg/models"
	"github.com/labstack/echo/v4"
)

// Category banner texts
const (
	MsgCategoryAdded     = "Kategorie hinzugefügt"
	MsgCategoryDeleted   = "Kategorie gelöscht"
	MsgCategoryEmpty     = "Bitte gib einen Kategorienamen ein"
	MsgCategoryDuplicate = "Kategorie existiert bereits"
)

// CategoryHandler manages the browser's category set
type CategoryHandler struct {
	categories *catalog.CategoryStore
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categories *catalog.CategoryStore) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// ListCategories godoc
// @Summary List categories
// @Tags Categories
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /categories [get]
func (h *CategoryHandler) ListCategories(c echo.Context) error {
	sess, err := sessionOf(c)
	if err != nil {
		return apierrors.InternalError(c, err)
	}

	set, err := h.categories.Load(c.Request().Context(), sess.ClientID())
	if err != nil {
		return apierrors.InternalError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"categories": set.Names(),
	})
}

// AddCategory godoc
// @Summary Add a category
// @Tags Categories
// @Accept json
// @Produce json
// @Param request body models.CategoryRequest true "Category"
// @Success 201 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /categories [post]
func (h *CategoryHandler) AddCategory(c echo.Context) error {
	var req models.CategoryRequest
	if err := c.Bind(&req); err != nil {
		return invalidRequest(c)
	}

	sess, err := sessionOf(c)
	if err != nil {
		return apierrors.InternalError(c, err)
	}

	ctx := c.Request().Context()
	set, err := h.categories.Load(ctx, sess.ClientID())
	if err != nil {
		return apierrors.InternalError(c, err)
	}

	if err := set.Add(req.Name); err != nil {
		switch {
		case errors.Is(err, catalog.ErrEmptyCategory):
			return apierrors.ValidationError(c, errors.New(MsgCategoryEmpty))
		case errors.Is(err, catalog.ErrDuplicateCategory):
			return apierrors.Banner(c, http.StatusConflict, "duplicate_category", MsgCategoryDuplicate, nil)
		}
		return apierrors.InternalError(c, err)
	}

	if err := h.categories.Save(ctx, sess.ClientID(), set); err != nil {
		return apierrors.InternalError(c, err)
	}

	return apierrors.Success(c, http.StatusCreated, MsgCategoryAdded, set.Names(), nil)
}

// DeleteCategory godoc
// @Summary Remove a category
// @Tags Categories
// @Produce json
// @Param name path string true "Category name"
// @Success 200 {object} models.SuccessResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /categories/{name} [delete]
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	name, err := categoryParam(c)
	if err != nil {
		return invalidRequest(c)
	}

	sess, err := sessionOf(c)
	if err != nil {
		return apierrors.InternalError(c, err)
	}

	ctx := c.Request().Context()
	set, err := h.categories.Load(ctx, sess.ClientID())
	if err != nil {
		return apierrors.InternalError(c, err)
	}
	if !set.Remove(name) {
		return apierrors.NotFoundError(c, "category")
	}
	if err := h.categories.Save(ctx, sess.ClientID(), set); err != nil {
		return apierrors.InternalError(c, err)
	}

	return apierrors.Success(c, http.StatusOK, MsgCategoryDeleted, set.Names(), nil)
}

// categoryParam returns the decoded :name. echo leaves params escaped only
// when routing ran on the raw path.
func categoryParam(c echo.Context) (string, error) {
	name := c.Param("name")
	if c.Request().URL.RawPath == "" {
		return name, nil
	}
	return url.PathUnescape(name)
}
