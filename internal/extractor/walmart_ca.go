package extractor

import (
	"fmt"

	"github.com/jas0nkim/pricewatch/internal/entity"
	"github.com/jas0nkim/pricewatch/pkg/utils"
)

// WalmartCaExtractor handles the walmart.ca shape: the item page exposes
// product.item with its sku list, while the top-level skus map links each sku
// to offer ids whose price and quantity live in the offers map.
type WalmartCaExtractor struct{}

func NewWalmartCaExtractor() *WalmartCaExtractor {
	return &WalmartCaExtractor{}
}

func (e *WalmartCaExtractor) Extract(raw *entity.RawData) (*PartialListing, error) {
	data, _ := decodeObject(raw.Data)

	sku := e.resolveSKU(data)
	if sku == "" {
		sku = utils.ExtractSKUFromURL(raw.URL, raw.Domain)
	}
	if sku == "" {
		return nil, fmt.Errorf("%w: %s", ErrSKUUnresolved, raw.URL)
	}

	listing := &PartialListing{SKU: sku}
	if title, ok := stringAt(data, "product", "item", "name"); ok {
		listing.Title = ptr(title)
	}
	if brand, ok := stringAt(data, "product", "item", "brand", "name"); ok {
		listing.BrandName = ptr(brand)
	}

	offer, ok := e.offerForSKU(data, sku)
	if !ok {
		return listing, nil
	}
	if price, ok := floatAt(offer, "currentPrice"); ok {
		listing.Price = ptr(price)
	}
	if was, ok := floatAt(offer, "regularPrice"); ok {
		listing.OriginalPrice = ptr(was)
	}
	if qty, ok := intAt(offer, "availableQuantity"); ok {
		listing.Available = ptr(qty > 0)
		if qty > 0 {
			listing.UrgentQuantity = ptr(qty)
		}
	}
	return listing, nil
}

func (e *WalmartCaExtractor) resolveSKU(data map[string]any) string {
	skus, ok := arrayAt(data, "product", "item", "skus")
	if !ok {
		return ""
	}
	first, _ := skus[0].(string)
	return first
}

// offerForSKU follows skus[sku][0] into the offers map.
func (e *WalmartCaExtractor) offerForSKU(data map[string]any, sku string) (map[string]any, bool) {
	offerIDs, ok := arrayAt(data, "skus", sku)
	if !ok {
		return nil, false
	}
	offerID, ok := offerIDs[0].(string)
	if !ok {
		return nil, false
	}
	return objectAt(data, "offers", offerID)
}
