// Package affiliate shapes affiliate links for display and resolves link
// codes for the /aff/:code redirect.
package affiliate

import (
	"net/url"
	"strings"

	"github.com/jordanlanch/alug/pkg/models"
)

// DedupeLinks keeps the first link for each product id, preserving order
func DedupeLinks(links []models.AffiliateLink) []models.AffiliateLink {
	seen := make(map[int]struct{}, len(links))
	out := make([]models.AffiliateLink, 0, len(links))
	for _, l := range links {
		if _, ok := seen[l.ProductID]; ok {
			continue
		}
		seen[l.ProductID] = struct{}{}
		out = append(out, l)
	}
	return out
}

// LinkURL returns the shareable URL for code under origin
func LinkURL(origin, code string) string {
	return strings.TrimRight(origin, "/") + "/aff/" + url.PathEscape(code)
}

// Views deduplicates links and attaches their shareable URLs
func Views(origin string, links []models.AffiliateLink) []models.LinkView {
	deduped := DedupeLinks(links)
	out := make([]models.LinkView, len(deduped))
	for i, l := range deduped {
		out[i] = models.LinkView{AffiliateLink: l, URL: LinkURL(origin, l.LinkCode)}
	}
	return out
}

// ForProduct returns the user's link for productID, if any
func ForProduct(links []models.AffiliateLink, productID int) (models.AffiliateLink, bool) {
	for _, l := range links {
		if l.ProductID == productID {
			return l, true
		}
	}
	return models.AffiliateLink{}, false
}
