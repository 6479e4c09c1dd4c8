package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jas0nkim/pricewatch/internal/entity"
)

// ItemRepoImpl provides a concrete implementation for the ItemRepository
// interface using PostgreSQL.
type ItemRepoImpl struct {
	db *pgxpool.Pool
}

// NewItemRepo creates a new instance of ItemRepoImpl.
func NewItemRepo(db *pgxpool.Pool) *ItemRepoImpl {
	return &ItemRepoImpl{db: db}
}

// Upsert creates or updates the item for its (domain, sku) pair. COALESCE on
// the nullable columns keeps an absent extraction value from nulling out a
// previously known one; the title only changes when the new one is non-empty.
func (r *ItemRepoImpl) Upsert(ctx context.Context, item *entity.Item) error {
	query := `
		INSERT INTO resrc_items (domain, sku, parent_sku, upc, title, brand_name, picture_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (domain, sku) DO UPDATE SET
			parent_sku = COALESCE(EXCLUDED.parent_sku, resrc_items.parent_sku),
			upc = COALESCE(EXCLUDED.upc, resrc_items.upc),
			title = CASE WHEN EXCLUDED.title <> '' THEN EXCLUDED.title ELSE resrc_items.title END,
			brand_name = COALESCE(EXCLUDED.brand_name, resrc_items.brand_name),
			picture_url = COALESCE(EXCLUDED.picture_url, resrc_items.picture_url),
			updated_at = NOW();
	`
	_, err := r.db.Exec(ctx, query,
		item.Domain, item.SKU, item.ParentSKU, item.UPC, item.Title, item.BrandName, item.PictureURL)
	return err
}

// FindBySKU retrieves an item; a missing row is reported as (nil, nil).
func (r *ItemRepoImpl) FindBySKU(ctx context.Context, domain, sku string) (*entity.Item, error) {
	query := `
		SELECT id, domain, sku, parent_sku, upc, title, brand_name, picture_url, created_at, updated_at
		FROM resrc_items
		WHERE domain = $1 AND sku = $2;
	`
	var item entity.Item
	err := r.db.QueryRow(ctx, query, domain, sku).Scan(
		&item.ID, &item.Domain, &item.SKU, &item.ParentSKU, &item.UPC,
		&item.Title, &item.BrandName, &item.PictureURL, &item.CreatedAt, &item.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}
