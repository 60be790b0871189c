package catalog

import (
	"context"
	"encoding/base64"
	"testing"
	"time"

	"github.com/jordanlanch/alug/pkg/models"
	"github.com/jordanlanch/alug/pkg/storage"
	"github.com/jordanlanch/alug/pkg/testdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(products []models.Product) []int {
	out := make([]int, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

var sample = []models.Product{
	{ID: 1, Name: "Zocker Maus", Description: "Gaming mouse", Category: "Hardware", PriceValue: "49.99", CommissionValue: "10"},
	{ID: 2, Name: "Äpfel VPS", Description: "Schneller Server", Category: "Hosting & Server", PriceValue: "4.99", CommissionValue: "25%"},
	{ID: 3, Name: "Apex Hosting", Description: "Minecraft server", Category: "Hosting & Server", PriceValue: "9", CommissionValue: "n/a"},
	{ID: 4, Name: "SEO Tool", Description: "Marketing suite", Category: "Marketing", PriceValue: "99", CommissionValue: "30"},
}

func TestApply(t *testing.T) {
	t.Run("Success - Default sort is newest first", func(t *testing.T) {
		assert.Equal(t, []int{4, 3, 2, 1}, ids(Apply(sample, Query{})))
	})

	t.Run("Success - Search matches name or description", func(t *testing.T) {
		got := Apply(sample, Query{Search: "SERVER"})
		assert.Equal(t, []int{3, 2}, ids(got))
	})

	t.Run("Success - Search and category intersect", func(t *testing.T) {
		got := Apply(sample, Query{Search: "server", Category: "Hosting & Server", Sort: SortPriceAsc})
		assert.Equal(t, []int{2, 3}, ids(got))

		got = Apply(sample, Query{Search: "server", Category: "Marketing"})
		assert.Empty(t, got)
	})

	t.Run("Success - All category", func(t *testing.T) {
		assert.Len(t, Apply(sample, Query{Category: AllCategories}), 4)
	})

	t.Run("Success - German collation", func(t *testing.T) {
		got := Apply(sample, Query{Sort: SortNameAsc})
		assert.Equal(t, []int{3, 2, 4, 1}, ids(got), "Ä sorts as A")

		got = Apply(sample, Query{Sort: SortNameDesc})
		assert.Equal(t, []int{1, 4, 2, 3}, ids(got))
	})

	t.Run("Success - Price and commission", func(t *testing.T) {
		assert.Equal(t, []int{4, 1, 3, 2}, ids(Apply(sample, Query{Sort: SortPriceDesc})))
		assert.Equal(t, []int{4, 2, 1, 3}, ids(Apply(sample, Query{Sort: SortCommissionHigh})))
		assert.Equal(t, []int{3, 1, 2, 4}, ids(Apply(sample, Query{Sort: SortCommissionLow})))
	})

	t.Run("Success - Stable for equal keys", func(t *testing.T) {
		equal := []models.Product{
			{ID: 1, PriceValue: "5"}, {ID: 2, PriceValue: "5"}, {ID: 3, PriceValue: "5"},
		}
		assert.Equal(t, []int{1, 2, 3}, ids(Apply(equal, Query{Sort: SortPriceAsc})))
	})

	t.Run("Success - Input is not mutated", func(t *testing.T) {
		products := testdata.GenerateProducts(testdata.DefaultProductConfig)
		before := ids(products)

		_ = Apply(products, Query{Sort: SortNameAsc})

		assert.Equal(t, before, ids(products))
	})

	t.Run("Success - Unknown sort falls back to newest", func(t *testing.T) {
		assert.Equal(t, []int{4, 3, 2, 1}, ids(Apply(sample, Query{Sort: "bogus"})))
	})
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		price string
		want  float64
	}{
		{"49,99€", 49.99},
		{"ab 4.99 €/Monat", 4.99},
		{"1.299,99 €", 1.299},
		{"kostenlos", 0},
		{"", 0},
		{"100", 100},
	}
	for _, tt := range tests {
		t.Run(tt.price, func(t *testing.T) {
			assert.InDelta(t, tt.want, ParsePrice(tt.price), 1e-9)
		})
	}
}

func pngDataURL(size int) string {
	raw := make([]byte, size)
	copy(raw, []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\x0dIHDR"))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(raw)
}

func TestValidateProduct(t *testing.T) {
	valid := models.ProductInput{
		Name:            "Apex Hosting",
		Description:     "Minecraft server",
		Price:           "ab 4,99€",
		CommissionValue: "20",
		Category:        "Hosting & Server",
	}

	t.Run("Success - Defaults and price value", func(t *testing.T) {
		got, err := ValidateProduct(valid)
		require.NoError(t, err)
		assert.Equal(t, "product", got.Type)
		assert.Equal(t, models.CommissionPercentage, got.CommissionType)
		assert.InDelta(t, 4.99, got.PriceValue, 1e-9)
	})

	t.Run("Success - Image accepted", func(t *testing.T) {
		in := valid
		in.ImageData = pngDataURL(1024)
		_, err := ValidateProduct(in)
		assert.NoError(t, err)
	})

	t.Run("Error - Missing required field", func(t *testing.T) {
		in := valid
		in.Category = " "
		_, err := ValidateProduct(in)
		assert.ErrorIs(t, err, ErrRequiredFields)
	})

	t.Run("Error - Image too large", func(t *testing.T) {
		in := valid
		in.ImageData = pngDataURL(MaxImageBytes + 1)
		_, err := ValidateProduct(in)
		assert.ErrorIs(t, err, ErrImageTooLarge)
	})

	t.Run("Error - Not an image", func(t *testing.T) {
		in := valid
		in.ImageData = "data:text/plain;base64," + base64.StdEncoding.EncodeToString([]byte("hello world"))
		_, err := ValidateProduct(in)
		assert.ErrorIs(t, err, ErrInvalidImage)
	})
}

func TestCategories(t *testing.T) {
	c := NewCategories(nil)
	assert.Equal(t, DefaultCategories, c.Names())

	require.NoError(t, c.Add("Streaming"))
	assert.ErrorIs(t, c.Add("Gaming"), ErrDuplicateCategory)
	assert.ErrorIs(t, c.Add("  "), ErrEmptyCategory)

	assert.True(t, c.Remove("Marketing"))
	assert.False(t, c.Remove("Marketing"))
	assert.Equal(t, []string{"Gaming", "Hosting & Server", "Software", "Hardware", "Streaming"}, c.Names())
}

func TestCategoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewCategoryStore(storage.NewMemoryStore(), time.Hour)

	c, err := store.Load(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, DefaultCategories, c.Names())

	c.Remove("Gaming")
	require.NoError(t, store.Save(ctx, "c1", c))

	reloaded, err := store.Load(ctx, "c1")
	require.NoError(t, err)
	assert.NotContains(t, reloaded.Names(), "Gaming")

	other, err := store.Load(ctx, "c2")
	require.NoError(t, err)
	assert.Contains(t, other.Names(), "Gaming")
}
