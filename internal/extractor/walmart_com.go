package extractor

import (
	"fmt"

	"github.com/jas0nkim/pricewatch/internal/entity"
	"github.com/jas0nkim/pricewatch/pkg/utils"
)

// WalmartComExtractor handles the walmart.com preloaded-state shape: the
// listing lives under item.product.buyBox, with the offer detail in
// buyBox.products[0].
type WalmartComExtractor struct{}

func NewWalmartComExtractor() *WalmartComExtractor {
	return &WalmartComExtractor{}
}

func (e *WalmartComExtractor) Extract(raw *entity.RawData) (*PartialListing, error) {
	data, _ := decodeObject(raw.Data)

	sku, ok := stringAt(data, "item", "product", "buyBox", "primaryUsItemId")
	if !ok {
		sku = utils.ExtractSKUFromURL(raw.URL, raw.Domain)
	}
	if sku == "" {
		return nil, fmt.Errorf("%w: %s", ErrSKUUnresolved, raw.URL)
	}

	listing := &PartialListing{SKU: sku}
	products, ok := arrayAt(data, "item", "product", "buyBox", "products")
	if !ok {
		return listing, nil
	}
	product, ok := products[0].(map[string]any)
	if !ok {
		return listing, nil
	}

	if title, ok := stringAt(product, "productName"); ok {
		listing.Title = ptr(title)
	}
	if brand, ok := stringAt(product, "brandName"); ok {
		listing.BrandName = ptr(brand)
	}
	if upc, ok := stringAt(product, "upc"); ok {
		listing.UPC = ptr(upc)
	}
	if picture, ok := stringAt(product, "imageSrc"); ok {
		listing.PictureURL = ptr(picture)
	}
	if price, ok := floatAt(product, "priceMap", "price"); ok {
		listing.Price = ptr(price)
	}
	if was, ok := floatAt(product, "priceMap", "wasPrice"); ok {
		listing.OriginalPrice = ptr(was)
	}

	switch status, _ := stringAt(product, "availabilityStatus"); status {
	case "IN_STOCK":
		listing.Available = ptr(true)
		if urgent, ok := intAt(product, "urgentQuantity"); ok && urgent > 0 {
			listing.UrgentQuantity = ptr(urgent)
		}
	case "OUT_OF_STOCK":
		listing.Available = ptr(false)
	}
	return listing, nil
}
