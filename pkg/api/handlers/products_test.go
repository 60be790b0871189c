package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/jordanlanch/alug/pkg/api/middleware"
	"github.com/jordanlanch/alug/pkg/catalog"
	"github.com/jordanlanch/alug/pkg/models"
	"github.com/jordanlanch/alug/pkg/views"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupProductTest(t *testing.T) *testEnv {
	t.Helper()
	env := newTestEnv(t)
	env.backend.products = []models.Product{
		{ID: 1, Name: "Gaming Headset", Description: "Surround", Category: "Gaming", PriceValue: "79.99", CommissionValue: "10"},
		{ID: 2, Name: "VPS Hosting", Description: "Server mit Headroom", Category: "Hosting & Server", PriceValue: "5", CommissionValue: "30"},
		{ID: 3, Name: "Maus", Description: "Kabellos", Category: "Gaming", PriceValue: "29.99", CommissionValue: "abc"},
	}

	h := NewProductHandler(env.backend)
	env.e.GET("/products", h.ListProducts)
	env.e.POST("/products", h.CreateProduct, middleware.RequireAdmin())
	env.e.DELETE("/products/:id", h.DeleteProduct, middleware.RequireAdmin())
	return env
}

func productIDs(t *testing.T, body []byte) []int {
	t.Helper()
	var out struct {
		Products []models.Product `json:"products"`
		Total    int              `json:"total"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	ids := make([]int, len(out.Products))
	for i, p := range out.Products {
		ids[i] = p.ID
	}
	assert.Equal(t, len(ids), out.Total)
	return ids
}

func TestProductHandler_ListProductsKeepsCommissionText(t *testing.T) {
	env := newTestEnv(t)
	env.backend.products = []models.Product{
		{ID: 1, Name: "Cloud VPS", Category: "Hosting & Server", PriceValue: "4.99", CommissionValue: "25%"},
		{ID: 2, Name: "Headset", Category: "Gaming", PriceValue: "79.90", CommissionValue: "5-10"},
		{ID: 3, Name: "SEO Tool", Category: "Marketing", PriceValue: "99", CommissionValue: "8"},
	}
	env.e.GET("/products", NewProductHandler(env.backend).ListProducts)

	rec := env.do(http.MethodGet, "/products?sort=commission-high", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		Products []map[string]any `json:"products"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out.Products, 3)

	assert.Equal(t, "25%", out.Products[0]["commission_value"])
	assert.Equal(t, 8.0, out.Products[1]["commission_value"])
	assert.Equal(t, "5-10", out.Products[2]["commission_value"])
	assert.Equal(t, 4.99, out.Products[0]["price_value"])
}

func TestProductHandler_ListProducts(t *testing.T) {
	env := setupProductTest(t)

	tests := []struct {
		name  string
		query string
		want  []int
	}{
		{"default is newest first", "", []int{3, 2, 1}},
		{"search matches name or description", "?q=head", []int{2, 1}},
		{"category filter", "?category=Gaming", []int{3, 1}},
		{"all categories", "?category=all&sort=price-asc", []int{2, 3, 1}},
		{"search and category then sort", "?q=head&category=Gaming&sort=price-desc", []int{1}},
		{"commission high treats non-numeric as zero", "?sort=commission-high", []int{2, 1, 3}},
		{"unknown sort falls back to newest", "?sort=random", []int{3, 2, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(http.MethodGet, "/products"+tt.query, "")

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.want, productIDs(t, rec.Body.Bytes()))
		})
	}

	t.Run("Error - backend failure shows the products banner", func(t *testing.T) {
		env := setupProductTest(t)
		env.backend.errs["products.list"] = errBackendDown

		rec := env.do(http.MethodGet, "/products", "")

		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Equal(t, views.MsgProductsFailed, parseError(t, rec).Message)
	})
}

func TestProductHandler_CreateProduct(t *testing.T) {
	const form = `{"name":"Tastatur","description":"Mechanisch","price":"ab 49,90 €","commissionValue":"12","category":"Hardware"}`

	t.Run("Success - defaults and price value are applied", func(t *testing.T) {
		env := setupProductTest(t)
		env.login(t, true)

		rec := env.do(http.MethodPost, "/products", form)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, MsgProductCreated, parseSuccess(t, rec).Message)
		assert.Equal(t, "product", env.backend.created.Type)
		assert.Equal(t, models.CommissionPercentage, env.backend.created.CommissionType)
		assert.InDelta(t, 49.90, env.backend.created.PriceValue, 0.0001)
	})

	t.Run("Error - missing fields make no backend call", func(t *testing.T) {
		env := setupProductTest(t)
		env.login(t, true)

		rec := env.do(http.MethodPost, "/products", `{"name":"Tastatur"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, catalog.ErrRequiredFields.Error(), parseError(t, rec).Message)
		assert.Equal(t, 0, env.backend.count("products.create"))
	})

	t.Run("Error - backend message passes through", func(t *testing.T) {
		env := setupProductTest(t)
		env.login(t, true)
		env.backend.errs["products.create"] = apiError(http.StatusBadRequest, "Kategorie unbekannt")

		rec := env.do(http.MethodPost, "/products", form)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Kategorie unbekannt", parseError(t, rec).Message)
	})

	t.Run("Error - non-admin is forbidden", func(t *testing.T) {
		env := setupProductTest(t)
		env.login(t, false)

		rec := env.do(http.MethodPost, "/products", form)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, 0, env.backend.count("products.create"))
	})
}

func TestProductHandler_DeleteProduct(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		env := setupProductTest(t)
		env.login(t, true)

		rec := env.do(http.MethodDelete, "/products/2", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, MsgProductDeleted, parseSuccess(t, rec).Message)
	})

	t.Run("Error - invalid id", func(t *testing.T) {
		env := setupProductTest(t)
		env.login(t, true)

		rec := env.do(http.MethodDelete, "/products/abc", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, 0, env.backend.count("products.delete"))
	})

	t.Run("Error - backend failure", func(t *testing.T) {
		env := setupProductTest(t)
		env.login(t, true)
		env.backend.errs["products.delete"] = apiError(http.StatusInternalServerError, "db down")

		rec := env.do(http.MethodDelete, "/products/2", "")

		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Equal(t, MsgProductDeleteFailed, parseError(t, rec).Message)
	})
}

func TestCategoryHandler(t *testing.T) {
	env := newTestEnv(t)
	h := NewCategoryHandler(catalog.NewCategoryStore(env.store, time.Hour))
	env.e.GET("/categories", h.ListCategories)
	env.e.POST("/categories", h.AddCategory)
	env.e.DELETE("/categories/:name", h.DeleteCategory)

	names := func() []string {
		var out struct {
			Categories []string `json:"categories"`
		}
		require.NoError(t, json.Unmarshal(env.do(http.MethodGet, "/categories", "").Body.Bytes(), &out))
		return out.Categories
	}

	t.Run("Success - defaults for a new browser", func(t *testing.T) {
		assert.Equal(t, catalog.DefaultCategories, names())
	})

	t.Run("Success - add keeps order", func(t *testing.T) {
		rec := env.do(http.MethodPost, "/categories", `{"name":"Bücher"}`)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, MsgCategoryAdded, parseSuccess(t, rec).Message)
		assert.Equal(t, "Bücher", names()[len(catalog.DefaultCategories)])
	})

	t.Run("Error - duplicate", func(t *testing.T) {
		rec := env.do(http.MethodPost, "/categories", `{"name":"Gaming"}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, MsgCategoryDuplicate, parseError(t, rec).Message)
	})

	t.Run("Error - empty", func(t *testing.T) {
		rec := env.do(http.MethodPost, "/categories", `{"name":"   "}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, MsgCategoryEmpty, parseError(t, rec).Message)
	})

	t.Run("Success - delete", func(t *testing.T) {
		rec := env.do(http.MethodDelete, "/categories/Marketing", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, names(), "Marketing")
	})

	t.Run("Success - delete a name containing a percent sign", func(t *testing.T) {
		rec := env.do(http.MethodPost, "/categories", `{"name":"50% Rabatt"}`)
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = env.do(http.MethodDelete, "/categories/50%25%20Rabatt", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, names(), "50% Rabatt")
	})

	t.Run("Success - delete a name with an escaped ampersand", func(t *testing.T) {
		rec := env.do(http.MethodDelete, "/categories/Hosting%20%26%20Server", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, names(), "Hosting & Server")
	})

	t.Run("Error - delete unknown", func(t *testing.T) {
		rec := env.do(http.MethodDelete, "/categories/Nope", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
