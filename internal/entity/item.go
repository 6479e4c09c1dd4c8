package entity

import "time"

// Item is the canonical product identity, keyed by (domain, sku). Created on
// first observation; later observations update descriptive fields but never
// the identity key. Nullable descriptive fields are pointers so an absent
// extraction value can be told apart from an empty one.
type Item struct {
	ID         int64
	Domain     string
	SKU        string
	ParentSKU  *string
	UPC        *string
	Title      string
	BrandName  *string
	PictureURL *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// StoreAvailability is one per-store stock record attached to a price
// observation (brick-and-mortar retailers such as canadiantire.ca).
type StoreAvailability struct {
	StoreID        string `json:"store_id"`
	Name           string `json:"name"`
	Address        string `json:"address,omitempty"`
	City           string `json:"city,omitempty"`
	Available      bool   `json:"available"`
	UrgentQuantity *int   `json:"urgent_quantity,omitempty"`
}

// ItemPrice is one price/availability observation. Rows are append-only: one
// per successfully normalized payload, never updated or deleted.
type ItemPrice struct {
	ID                   int64
	Domain               string
	SKU                  string
	Price                float64
	OriginalPrice        float64
	OnlineAvailability   bool
	OnlineUrgentQuantity *int
	StoreAvailabilities  []StoreAvailability
	JobID                string
	CreatedAt            time.Time
}
