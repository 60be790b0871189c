package testdata

import (
	"fmt"
	"strconv"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/jordanlanch/alug/pkg/models"
)

// ProductGeneratorConfig configures catalog fixture generation
type ProductGeneratorConfig struct {
	Count       int
	Categories  []string
	FixedChance float64 // 0.0-1.0 (probability of a fixed commission)
	MinPrice    float64
	MaxPrice    float64
}

// DefaultProductConfig mirrors the storefront's default categories
var DefaultProductConfig = ProductGeneratorConfig{
	Count:       20,
	Categories:  []string{"Gaming", "Hosting & Server", "Marketing", "Software", "Hardware"},
	FixedChance: 0.3,
	MinPrice:    1,
	MaxPrice:    500,
}

// Seed makes generation deterministic
func Seed(seed int64) {
	gofakeit.Seed(seed)
}

// GenerateProduct creates one catalog product with the given id
func GenerateProduct(id int, config ProductGeneratorConfig) models.Product {
	price := gofakeit.Price(config.MinPrice, config.MaxPrice)

	commissionType := models.CommissionPercentage
	commission := float64(gofakeit.Number(5, 40))
	if gofakeit.Float64Range(0, 1) < config.FixedChance {
		commissionType = models.CommissionFixed
		commission = gofakeit.Price(1, 50)
	}

	category := ""
	if len(config.Categories) > 0 {
		category = gofakeit.RandomString(config.Categories)
	}

	return models.Product{
		ID:              id,
		Name:            gofakeit.ProductName(),
		Description:     gofakeit.ProductDescription(),
		Price:           fmt.Sprintf("%.2f€", price),
		PriceValue:      number(price),
		Type:            "product",
		Category:        category,
		CommissionType:  commissionType,
		CommissionValue: number(commission),
		ProductURL:      gofakeit.URL(),
		Clicks:          number(float64(gofakeit.Number(0, 5000))),
		Conversions:     number(float64(gofakeit.Number(0, 200))),
		Revenue:         number(gofakeit.Price(0, 10000)),
	}
}

// GenerateProducts creates config.Count products with ids 1..Count
func GenerateProducts(config ProductGeneratorConfig) []models.Product {
	products := make([]models.Product, 0, config.Count)
	for i := 1; i <= config.Count; i++ {
		products = append(products, GenerateProduct(i, config))
	}
	return products
}

// GenerateLinks creates one affiliate link per product, plus a duplicate of
// the first product's link when duplicates is true
func GenerateLinks(products []models.Product, duplicates bool) []models.AffiliateLink {
	links := make([]models.AffiliateLink, 0, len(products)+1)
	for i, p := range products {
		links = append(links, models.AffiliateLink{
			ID:          i + 1,
			ProductID:   p.ID,
			ProductName: p.Name,
			LinkCode:    gofakeit.LetterN(8),
			Clicks:      number(float64(gofakeit.Number(0, 100))),
		})
	}
	if duplicates && len(products) > 0 {
		links = append(links, models.AffiliateLink{
			ID:        len(links) + 1,
			ProductID: products[0].ID,
			LinkCode:  gofakeit.LetterN(8),
		})
	}
	return links
}

func number(f float64) models.FlexNumber {
	return models.FlexNumber(strconv.FormatFloat(f, 'f', 2, 64))
}
