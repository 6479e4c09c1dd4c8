package extractor

import (
	"fmt"
	"strings"

	"github.com/jas0nkim/pricewatch/internal/entity"
	"github.com/jas0nkim/pricewatch/pkg/utils"
)

// CanadianTireExtractor handles the canadiantire.ca crawl, which lands three
// payload shapes under the same job: the listing page's data-component map
// (SkuSelectors), a near-stores array (storeNumber/name/address) and a price
// API array (SKU/CurrentPrice/OriginalPrice/Quantity rows). The SKU always
// comes from the listing URL's product-code suffix.
type CanadianTireExtractor struct{}

func NewCanadianTireExtractor() *CanadianTireExtractor {
	return &CanadianTireExtractor{}
}

func (e *CanadianTireExtractor) Extract(raw *entity.RawData) (*PartialListing, error) {
	sku := utils.ExtractSKUFromURL(raw.URL, raw.Domain)
	if sku == "" {
		return nil, fmt.Errorf("%w: %s", ErrSKUUnresolved, raw.URL)
	}

	listing := &PartialListing{SKU: sku}
	if data, ok := decodeObject(raw.Data); ok {
		e.extractListingPage(data, sku, listing)
	} else if rows, ok := decodeArray(raw.Data); ok {
		e.extractAPIRows(rows, sku, listing)
	}
	e.extractMeta(raw, listing)
	return listing, nil
}

// extractListingPage reads the data-component map scraped off the item page.
func (e *CanadianTireExtractor) extractListingPage(data map[string]any, sku string, listing *PartialListing) {
	if parent, ok := stringAt(data, "SkuSelectors", "pCode"); ok {
		listing.ParentSKU = ptr(parent)
	} else {
		// canadiantire parent codes are the sku with a P suffix
		listing.ParentSKU = ptr(sku + "P")
	}
}

// extractAPIRows reads either the near-stores array or the price API array,
// distinguished by the keys present on the first row.
func (e *CanadianTireExtractor) extractAPIRows(rows []any, sku string, listing *PartialListing) {
	first, ok := rows[0].(map[string]any)
	if !ok {
		return
	}
	if _, isStore := first["storeNumber"]; isStore {
		listing.StoreAvailabilities = e.storeAvailabilities(rows)
		return
	}
	for _, r := range rows {
		row, ok := r.(map[string]any)
		if !ok {
			continue
		}
		if rowSKU, ok := stringAt(row, "SKU"); ok && !strings.EqualFold(rowSKU, sku) {
			continue
		}
		if price, ok := floatAt(row, "CurrentPrice", "value"); ok {
			listing.Price = ptr(price)
		}
		if original, ok := floatAt(row, "OriginalPrice", "value"); ok {
			listing.OriginalPrice = ptr(original)
		}
		if qty, ok := intAt(row, "Quantity"); ok {
			listing.Available = ptr(qty > 0)
			if qty > 0 {
				listing.UrgentQuantity = ptr(qty)
			}
		}
		return
	}
}

func (e *CanadianTireExtractor) storeAvailabilities(rows []any) []entity.StoreAvailability {
	stores := make([]entity.StoreAvailability, 0, len(rows))
	for _, r := range rows {
		row, ok := r.(map[string]any)
		if !ok {
			continue
		}
		storeID, ok := stringAt(row, "storeNumber")
		if !ok {
			if n, numOK := intAt(row, "storeNumber"); numOK {
				storeID = fmt.Sprintf("%d", n)
			} else {
				continue
			}
		}
		store := entity.StoreAvailability{StoreID: storeID}
		store.Name, _ = stringAt(row, "name")
		store.Address, _ = stringAt(row, "address1")
		store.City, _ = stringAt(row, "city")
		if qty, ok := intAt(row, "quantity"); ok {
			store.Available = qty > 0
			if qty > 0 {
				store.UrgentQuantity = ptr(qty)
			}
		}
		stores = append(stores, store)
	}
	return stores
}

// extractMeta fills descriptive fields from the page's meta tags, which the
// crawler records separately from the structured payload.
func (e *CanadianTireExtractor) extractMeta(raw *entity.RawData, listing *PartialListing) {
	meta, ok := decodeObject(raw.MetaData)
	if !ok {
		return
	}
	if listing.Title == nil {
		if title, ok := stringAt(meta, "og:title"); ok {
			listing.Title = ptr(title)
		}
	}
	if listing.PictureURL == nil {
		if picture, ok := stringAt(meta, "og:image"); ok {
			listing.PictureURL = ptr(picture)
		}
	}
	if listing.BrandName == nil {
		if brand, ok := stringAt(meta, "branddata"); ok {
			listing.BrandName = ptr(brand)
		}
	}
}
