package entity

// ListingStatus classifies the outcome of normalizing one raw payload into a
// listing observation. The numeric codes are persisted and displayed
// downstream; both codes and labels are frozen.
type ListingStatus int

const (
	ListingStatusGood                 ListingStatus = 1000
	ListingStatusInactive             ListingStatus = 1001
	ListingStatusInvalidSKU           ListingStatus = 1002
	ListingStatusSKUNotInVariation    ListingStatus = 1003
	ListingStatusNoPriceGiven         ListingStatus = 1004
	ListingStatusOutOfStock           ListingStatus = 1005
	ListingStatusParsingFailedUnknown ListingStatus = 1006
)

var listingStatusLabels = map[ListingStatus]string{
	ListingStatusGood:                 "Good",
	ListingStatusInactive:             "Inactive",
	ListingStatusInvalidSKU:           "Invalid SKU",
	ListingStatusSKUNotInVariation:    "SKU not in variation",
	ListingStatusNoPriceGiven:         "No price",
	ListingStatusOutOfStock:           "Out of stock",
	ListingStatusParsingFailedUnknown: "Parsing failed",
}

func (s ListingStatus) String() string {
	if label, ok := listingStatusLabels[s]; ok {
		return label
	}
	return "unknown"
}
