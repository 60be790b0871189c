// Package catalog filters and orders the product list and validates the admin
// product form.
package catalog

import (
	"cmp"
	"regexp"
	"slices"
	"strings"

	"github.com/jordanlanch/alug/pkg/models"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey selects the catalog ordering
type SortKey string

// Sort keys offered by the shop
const (
	SortNewest         SortKey = "newest"
	SortNameAsc        SortKey = "name-asc"
	SortNameDesc       SortKey = "name-desc"
	SortPriceAsc       SortKey = "price-asc"
	SortPriceDesc      SortKey = "price-desc"
	SortCommissionHigh SortKey = "commission-high"
	SortCommissionLow  SortKey = "commission-low"
)

// AllCategories is the category filter value that matches every product
const AllCategories = "all"

// Query holds the shop's search, category filter and sort order
type Query struct {
	Search   string  `query:"q"`
	Category string  `query:"category"`
	Sort     SortKey `query:"sort"`
}

// Apply returns the products matching q in the requested order. The input
// slice is never modified and equal elements keep their relative order.
func Apply(products []models.Product, q Query) []models.Product {
	search := strings.ToLower(q.Search)
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		if q.Category != "" && q.Category != AllCategories && p.Category != q.Category {
			continue
		}
		out = append(out, p)
	}

	slices.SortStableFunc(out, comparator(q.Sort))
	return out
}

func comparator(key SortKey) func(a, b models.Product) int {
	switch key {
	case SortNameAsc:
		col := collate.New(language.German)
		return func(a, b models.Product) int { return col.CompareString(a.Name, b.Name) }
	case SortNameDesc:
		col := collate.New(language.German)
		return func(a, b models.Product) int { return col.CompareString(b.Name, a.Name) }
	case SortPriceAsc:
		return func(a, b models.Product) int { return cmp.Compare(a.PriceValue.Float(), b.PriceValue.Float()) }
	case SortPriceDesc:
		return func(a, b models.Product) int { return cmp.Compare(b.PriceValue.Float(), a.PriceValue.Float()) }
	case SortCommissionHigh:
		return func(a, b models.Product) int {
			return cmp.Compare(b.CommissionValue.Float(), a.CommissionValue.Float())
		}
	case SortCommissionLow:
		return func(a, b models.Product) int {
			return cmp.Compare(a.CommissionValue.Float(), b.CommissionValue.Float())
		}
	default:
		return func(a, b models.Product) int { return cmp.Compare(b.ID, a.ID) }
	}
}

var priceRun = regexp.MustCompile(`[\d.,]+`)

// ParsePrice extracts the numeric value from a display price such as
// "ab 4,99€/Monat": the first run of digits, dots and commas with the first
// comma read as a decimal point. Anything unparseable is 0.
func ParsePrice(price string) float64 {
	run := priceRun.FindString(price)
	if run == "" {
		return 0
	}
	return models.LeadingFloat(strings.Replace(run, ",", ".", 1))
}
