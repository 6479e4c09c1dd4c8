package extractor

import (
	"fmt"
	"strings"

	"github.com/jas0nkim/pricewatch/internal/entity"
	"github.com/jas0nkim/pricewatch/pkg/utils"
)

// AmazonExtractor handles the amazon.com / amazon.ca payload shape: a flat
// object produced by the spider with asin, title, brand_name, picture_urls,
// price, original_price and quantity keys.
type AmazonExtractor struct{}

func NewAmazonExtractor() *AmazonExtractor {
	return &AmazonExtractor{}
}

func (e *AmazonExtractor) Extract(raw *entity.RawData) (*PartialListing, error) {
	data, _ := decodeObject(raw.Data)

	sku, ok := stringAt(data, "asin")
	if !ok {
		sku = utils.ExtractSKUFromURL(raw.URL, raw.Domain)
	}
	if sku == "" {
		return nil, fmt.Errorf("%w: %s", ErrSKUUnresolved, raw.URL)
	}

	listing := &PartialListing{SKU: sku}
	if parent, ok := stringAt(data, "parent_asin"); ok {
		listing.ParentSKU = ptr(parent)
	}
	if title, ok := stringAt(data, "title"); ok {
		listing.Title = ptr(title)
	}
	if brand, ok := stringAt(data, "brand_name"); ok {
		listing.BrandName = ptr(brand)
	}
	if pictures, ok := arrayAt(data, "picture_urls"); ok {
		if first, ok := pictures[0].(string); ok && first != "" {
			listing.PictureURL = ptr(first)
		}
	}
	if price, ok := floatAt(data, "price"); ok {
		listing.Price = ptr(price)
	}
	if original, ok := floatAt(data, "original_price"); ok {
		listing.OriginalPrice = ptr(original)
	}
	e.extractQuantity(data, listing)
	return listing, nil
}

// extractQuantity handles both numeric quantities and the "in stock" /
// "out of stock" display strings older spider versions emitted.
func (e *AmazonExtractor) extractQuantity(data map[string]any, listing *PartialListing) {
	v, ok := valueAt(data, "quantity")
	if !ok {
		return
	}
	switch q := v.(type) {
	case float64:
		qty := int(q)
		listing.Available = ptr(qty > 0)
		if qty > 0 {
			listing.UrgentQuantity = ptr(qty)
		}
	case string:
		switch strings.ToLower(strings.TrimSpace(q)) {
		case "in stock":
			listing.Available = ptr(true)
		case "out of stock":
			listing.Available = ptr(false)
		}
	}
}
