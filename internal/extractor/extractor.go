// Package extractor converts per-domain raw crawl payloads into partial
// listing records. One implementation exists per supported retailer domain;
// all of them tolerate missing keys and only fail hard when the identifying
// SKU cannot be resolved at all.
package extractor

import (
	"errors"
	"fmt"

	"github.com/jas0nkim/pricewatch/internal/entity"
)

var (
	// ErrSKUUnresolved means neither the URL nor the payload yielded the
	// identifying SKU. The SKU is the join key for items, so the payload
	// cannot be normalized.
	ErrSKUUnresolved = errors.New("sku cannot be resolved from url or payload")
	// ErrUnsupportedDomain means no extractor is registered for the payload's
	// domain.
	ErrUnsupportedDomain = errors.New("unsupported domain")
)

// PartialListing carries whichever listing fields an extractor could resolve.
// Pointer fields distinguish "not present in the payload" from "present and
// zero"; only SKU is mandatory.
type PartialListing struct {
	SKU                 string
	ParentSKU           *string
	Title               *string
	BrandName           *string
	UPC                 *string
	PictureURL          *string
	Price               *float64
	OriginalPrice       *float64
	Available           *bool
	UrgentQuantity      *int
	StoreAvailabilities []entity.StoreAvailability
}

// Extractor decodes one retailer domain's payload shape.
type Extractor interface {
	Extract(raw *entity.RawData) (*PartialListing, error)
}

// Registry maps domain strings to their extractor. Adding a retailer means
// adding one implementation and one Register call.
type Registry struct {
	extractors map[string]Extractor
}

// NewRegistry builds a registry with all supported retailer domains
// registered.
func NewRegistry() *Registry {
	r := &Registry{extractors: make(map[string]Extractor)}
	amazon := NewAmazonExtractor()
	r.Register("amazon.com", amazon)
	r.Register("amazon.ca", amazon)
	r.Register("walmart.com", NewWalmartComExtractor())
	r.Register("walmart.ca", NewWalmartCaExtractor())
	r.Register("canadiantire.ca", NewCanadianTireExtractor())
	return r
}

// Register binds a domain to an extractor, replacing any previous binding.
func (r *Registry) Register(domain string, e Extractor) {
	r.extractors[domain] = e
}

// Lookup returns the extractor for a domain, or ErrUnsupportedDomain.
func (r *Registry) Lookup(domain string) (Extractor, error) {
	e, ok := r.extractors[domain]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDomain, domain)
	}
	return e, nil
}

// Domains lists the registered domain strings.
func (r *Registry) Domains() []string {
	domains := make([]string, 0, len(r.extractors))
	for d := range r.extractors {
		domains = append(domains, d)
	}
	return domains
}

func ptr[T any](v T) *T { return &v }
