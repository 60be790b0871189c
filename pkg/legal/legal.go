// Package legal renders the storefront's legal pages from the operator's
// legal configuration and tracks cookie consent.
package legal

import (
	"embed"
	"html"
	"io"
	"strings"
	"time"

	"github.com/jordanlanch/alug/pkg/models"
	"github.com/valyala/fasttemplate"
)

// Pages
const (
	PageImpressum   = "impressum"
	PageDatenschutz = "datenschutz"
	PageAGB         = "agb"
	PageDisclaimer  = "disclaimer"
)

// DateLayout formats the "Stand:" date the way German readers expect
const DateLayout = "2.1.2006"

//go:embed documents/*.html
var documentFS embed.FS

type document struct {
	title    string
	template *fasttemplate.Template
}

var documents = map[string]document{
	PageImpressum:   load(PageImpressum, "Impressum"),
	PageDatenschutz: load(PageDatenschutz, "Datenschutzerklärung"),
	PageAGB:         load(PageAGB, "Allgemeine Geschäftsbedingungen (AGB)"),
	PageDisclaimer:  load(PageDisclaimer, "Affiliate Disclaimer"),
}

func load(page, title string) document {
	raw, err := documentFS.ReadFile("documents/" + page + ".html")
	if err != nil {
		panic(err)
	}
	return document{title: title, template: fasttemplate.New(string(raw), "[", "]")}
}

// Pages lists the available legal pages
func Pages() []string {
	return []string{PageImpressum, PageDatenschutz, PageAGB, PageDisclaimer}
}

// Render fills page with cfg. Unknown pages render the Impressum. A
// placeholder without a configured value stays as the literal token.
func Render(page string, cfg models.LegalConfig, now time.Time) models.LegalDocument {
	doc, ok := documents[page]
	if !ok {
		page = PageImpressum
		doc = documents[page]
	}

	content := doc.template.ExecuteFuncString(func(w io.Writer, tag string) (int, error) {
		if tag == "STAND" {
			return io.WriteString(w, now.Format(DateLayout))
		}
		if v := placeholderValue(tag, cfg); v != "" {
			return io.WriteString(w, html.EscapeString(v))
		}
		return io.WriteString(w, "["+tag+"]")
	})

	return models.LegalDocument{Page: page, Title: doc.title, Content: content}
}

func placeholderValue(tag string, cfg models.LegalConfig) string {
	switch {
	case tag == "FIRMENNAME", tag == "IHR NAME", tag == "IHR FIRMENNAME":
		return cfg.CompanyName
	case tag == "STRASSE UND HAUSNUMMER":
		return cfg.Street
	case tag == "PLZ STADT", tag == "IHR GERICHTSSTAND":
		return cfg.City
	case tag == "LAND":
		return cfg.Country
	case tag == "IHRE EMAIL":
		return cfg.Email
	case tag == "IHRE TELEFONNUMMER":
		return cfg.Phone
	case tag == "UST-ID FALLS VORHANDEN":
		return cfg.UstID
	case strings.HasPrefix(tag, "FALLS GmbH"):
		return cfg.Handelsregister
	case strings.HasPrefix(tag, "HOSTING-ANBIETER"):
		return cfg.HostingProvider
	case tag == "IHRE ADRESSE":
		return joinNonEmpty(", ", cfg.Street, cfg.City)
	}
	return ""
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
