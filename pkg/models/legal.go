package models

// LegalConfig holds the values substituted into the legal documents
type LegalConfig struct {
	CompanyName     string `json:"companyName"`
	Street          string `json:"street"`
	City            string `json:"city"`
	Country         string `json:"country"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	UstID           string `json:"ustId"`
	Handelsregister string `json:"handelsregister"`
	HostingProvider string `json:"hostingProvider"`
}

// LegalDocument is a rendered legal page
type LegalDocument struct {
	Page    string `json:"page"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ConsentState tells the shell whether to show the cookie banner
type ConsentState struct {
	BannerVisible bool `json:"banner_visible"`
}
