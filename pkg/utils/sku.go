package utils

import "regexp"

// Per-domain listing URL patterns. Each captures the SKU in its first group.
var skuURLPatterns = map[string]*regexp.Regexp{
	"amazon.com":      regexp.MustCompile(`(?:/dp/|/gp/product/|/gp/offer-listing/)([A-Z0-9]{10})`),
	"amazon.ca":       regexp.MustCompile(`(?:/dp/|/gp/product/|/gp/offer-listing/)([A-Z0-9]{10})`),
	"walmart.com":     regexp.MustCompile(`/ip/(?:[^/]+/)?(\d+)`),
	"walmart.ca":      regexp.MustCompile(`/ip/(?:[^/]+/)?(\w+)$`),
	"canadiantire.ca": regexp.MustCompile(`-(\d{7,10})p(?:\.html)?(?:[?#].*)?$`),
}

// ExtractSKUFromURL pulls the listing SKU (ASIN, item id, product code) out
// of a listing page URL. Returns "" when the domain is unknown or the URL
// does not look like a listing page.
func ExtractSKUFromURL(rawURL, domain string) string {
	pattern, ok := skuURLPatterns[domain]
	if !ok {
		return ""
	}
	match := pattern.FindStringSubmatch(rawURL)
	if match == nil {
		return ""
	}
	return match[1]
}
