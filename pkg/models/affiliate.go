package models

// AffiliateLink is a tracked link minted for one (user, product) pair
type AffiliateLink struct {
	ID          int        `json:"id"`
	ProductID   int        `json:"product_id"`
	ProductName string     `json:"product_name"`
	LinkCode    string     `json:"link_code"`
	Clicks      FlexNumber `json:"clicks"`
	Conversions FlexNumber `json:"conversions"`
	Revenue     FlexNumber `json:"revenue"`
}

// LinkView is an affiliate link as rendered, with its shareable URL
type LinkView struct {
	AffiliateLink
	URL string `json:"url"`
}

// GenerateLinkRequest asks the backend to mint a link for a product
type GenerateLinkRequest struct {
	ProductID int `json:"productId" validate:"required"`
}

// LinkResolution is the backend's answer for a link code
type LinkResolution struct {
	ProductURL string `json:"product_url"`
}

// Conversion is a tracked purchase attributed to a link
type Conversion struct {
	ID          int        `json:"id"`
	LinkCode    string     `json:"link_code,omitempty"`
	ProductName string     `json:"product_name,omitempty"`
	UserName    string     `json:"user_name,omitempty"`
	Amount      FlexNumber `json:"amount"`
	Commission  FlexNumber `json:"commission"`
	CreatedAt   string     `json:"created_at,omitempty"`
}
