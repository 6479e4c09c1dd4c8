package repository

import (
	"context"

	"github.com/jas0nkim/pricewatch/internal/entity"
)

// ItemRepository stores canonical product identities keyed by (domain, sku).
type ItemRepository interface {
	// Upsert creates the item on first observation of its (domain, sku) pair,
	// or updates descriptive fields. An absent (nil) field in the new
	// observation never overwrites a previously known value.
	Upsert(ctx context.Context, item *entity.Item) error
	// FindBySKU retrieves an item. Absence is reported as (nil, nil): a
	// missing item is a normal lookup outcome during normalization.
	FindBySKU(ctx context.Context, domain, sku string) (*entity.Item, error)
}

// ItemPriceRepository appends price/availability observations. Rows are
// immutable once written.
type ItemPriceRepository interface {
	Insert(ctx context.Context, price *entity.ItemPrice) error
	// ListBySKU returns observations for one listing ordered by creation
	// time, newest last.
	ListBySKU(ctx context.Context, domain, sku string) ([]*entity.ItemPrice, error)
}
