package models

// Commission types
const (
	CommissionPercentage = "percentage"
	CommissionFixed      = "fixed"
)

// Product is a catalog entry as returned by the backend
type Product struct {
	ID              int        `json:"id"`
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	Price           string     `json:"price"`
	PriceValue      FlexNumber `json:"price_value"`
	Type            string     `json:"type"`
	Category        string     `json:"category"`
	CommissionType  string     `json:"commission_type"`
	CommissionValue FlexNumber `json:"commission_value"`
	ImageData       string     `json:"image_data,omitempty"`
	ProductURL      string     `json:"product_url,omitempty"`
	Clicks          FlexNumber `json:"clicks,omitempty"`
	Conversions     FlexNumber `json:"conversions,omitempty"`
	Revenue         FlexNumber `json:"revenue,omitempty"`
}

// ProductInput is the admin product form sent to the backend
type ProductInput struct {
	Name            string  `json:"name" validate:"required"`
	Description     string  `json:"description" validate:"required"`
	Price           string  `json:"price" validate:"required"`
	PriceValue      float64 `json:"priceValue"`
	Type            string  `json:"type"`
	CommissionType  string  `json:"commissionType" validate:"omitempty,oneof=percentage fixed"`
	CommissionValue string  `json:"commissionValue" validate:"required"`
	Category        string  `json:"category" validate:"required"`
	ImageData       string  `json:"imageData,omitempty"`
	ProductURL      string  `json:"productUrl,omitempty"`
}

// CategoryRequest adds a category to the held set
type CategoryRequest struct {
	Name string `json:"name"`
}
