package models

// MyStats is the dashboard summary for the current user
type MyStats struct {
	TotalLinks       FlexNumber `json:"total_links"`
	TotalClicks      FlexNumber `json:"total_clicks"`
	TotalConversions FlexNumber `json:"total_conversions"`
	TotalRevenue     FlexNumber `json:"total_revenue"`
}

// ConversionRate returns conversions per click in percent, 0 without clicks
func (s MyStats) ConversionRate() float64 {
	clicks := s.TotalClicks.Float()
	if clicks <= 0 {
		return 0
	}
	return s.TotalConversions.Float() / clicks * 100
}

// LinkStats is the per-link analytics record
type LinkStats struct {
	LinkID      int        `json:"link_id"`
	Clicks      FlexNumber `json:"clicks"`
	Conversions FlexNumber `json:"conversions"`
	Revenue     FlexNumber `json:"revenue"`
}

// DailyStat is one day of clicks and conversions
type DailyStat struct {
	Date        string     `json:"date"`
	Clicks      FlexNumber `json:"clicks"`
	Conversions FlexNumber `json:"conversions"`
}

// ProductStat is revenue and conversions for one product
type ProductStat struct {
	Name        string     `json:"name"`
	Revenue     FlexNumber `json:"revenue"`
	Conversions FlexNumber `json:"conversions"`
}

// TopMarketer is a leaderboard row
type TopMarketer struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Clicks      FlexNumber `json:"clicks"`
	Conversions FlexNumber `json:"conversions"`
	Revenue     FlexNumber `json:"revenue"`
}

// TopProduct is a leaderboard row
type TopProduct struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Category    string     `json:"category,omitempty"`
	Conversions FlexNumber `json:"conversions"`
	Revenue     FlexNumber `json:"revenue"`
}

// AdminStats is the admin panel summary
type AdminStats struct {
	TotalUsers       FlexNumber `json:"total_users"`
	TotalProducts    FlexNumber `json:"total_products"`
	TotalConversions FlexNumber `json:"total_conversions"`
	TotalRevenue     FlexNumber `json:"total_revenue"`
}
