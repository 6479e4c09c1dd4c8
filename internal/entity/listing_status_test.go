package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListingStatusCodes(t *testing.T) {
	assert.Equal(t, ListingStatus(1000), ListingStatusGood)
	assert.Equal(t, ListingStatus(1001), ListingStatusInactive)
	assert.Equal(t, ListingStatus(1002), ListingStatusInvalidSKU)
	assert.Equal(t, ListingStatus(1003), ListingStatusSKUNotInVariation)
	assert.Equal(t, ListingStatus(1004), ListingStatusNoPriceGiven)
	assert.Equal(t, ListingStatus(1005), ListingStatusOutOfStock)
	assert.Equal(t, ListingStatus(1006), ListingStatusParsingFailedUnknown)
}

func TestListingStatusLabels(t *testing.T) {
	assert.Equal(t, "Good", ListingStatusGood.String())
	assert.Equal(t, "Inactive", ListingStatusInactive.String())
	assert.Equal(t, "Invalid SKU", ListingStatusInvalidSKU.String())
	assert.Equal(t, "SKU not in variation", ListingStatusSKUNotInVariation.String())
	assert.Equal(t, "No price", ListingStatusNoPriceGiven.String())
	assert.Equal(t, "Out of stock", ListingStatusOutOfStock.String())
	assert.Equal(t, "Parsing failed", ListingStatusParsingFailedUnknown.String())
	assert.Equal(t, "unknown", ListingStatus(9999).String())
}
