package postgres

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jas0nkim/pricewatch/internal/entity"
)

// ItemPriceRepoImpl provides a concrete implementation for the
// ItemPriceRepository interface using PostgreSQL. The table is append-only.
type ItemPriceRepoImpl struct {
	db *pgxpool.Pool
}

// NewItemPriceRepo creates a new instance of ItemPriceRepoImpl.
func NewItemPriceRepo(db *pgxpool.Pool) *ItemPriceRepoImpl {
	return &ItemPriceRepoImpl{db: db}
}

// Insert appends one price observation. Store availabilities are stored as
// JSONB.
func (r *ItemPriceRepoImpl) Insert(ctx context.Context, price *entity.ItemPrice) error {
	storesJSON, err := json.Marshal(price.StoreAvailabilities)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO resrc_item_prices
			(domain, sku, price, original_price, online_availability, online_urgent_quantity, store_availabilities, job_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at;
	`
	return r.db.QueryRow(ctx, query,
		price.Domain, price.SKU, price.Price, price.OriginalPrice,
		price.OnlineAvailability, price.OnlineUrgentQuantity, storesJSON, price.JobID,
	).Scan(&price.ID, &price.CreatedAt)
}

// ListBySKU returns observations for one listing, oldest first.
func (r *ItemPriceRepoImpl) ListBySKU(ctx context.Context, domain, sku string) ([]*entity.ItemPrice, error) {
	query := `
		SELECT id, domain, sku, price, original_price, online_availability, online_urgent_quantity, store_availabilities, job_id, created_at
		FROM resrc_item_prices
		WHERE domain = $1 AND sku = $2
		ORDER BY created_at ASC;
	`
	rows, err := r.db.Query(ctx, query, domain, sku)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var prices []*entity.ItemPrice
	for rows.Next() {
		var price entity.ItemPrice
		var storesJSON []byte
		if err := rows.Scan(
			&price.ID, &price.Domain, &price.SKU, &price.Price, &price.OriginalPrice,
			&price.OnlineAvailability, &price.OnlineUrgentQuantity, &storesJSON, &price.JobID, &price.CreatedAt,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(storesJSON, &price.StoreAvailabilities); err != nil {
			return nil, err
		}
		prices = append(prices, &price)
	}
	return prices, rows.Err()
}
