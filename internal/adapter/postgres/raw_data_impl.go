package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jas0nkim/pricewatch/internal/entity"
	"github.com/jas0nkim/pricewatch/internal/repository"
)

// RawDataRepoImpl reads the raw payload table the crawling subsystem writes.
// Normalization only ever consumes these rows.
type RawDataRepoImpl struct {
	db *pgxpool.Pool
}

// NewRawDataRepo creates a new instance of RawDataRepoImpl.
func NewRawDataRepo(db *pgxpool.Pool) *RawDataRepoImpl {
	return &RawDataRepoImpl{db: db}
}

// FindByID retrieves one raw payload.
func (r *RawDataRepoImpl) FindByID(ctx context.Context, id int64) (*entity.RawData, error) {
	query := `
		SELECT id, url, domain, http_status, data, meta_data, job_id, created_at
		FROM resrc_raw_data
		WHERE id = $1;
	`
	raw, err := scanRawData(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrRawDataNotFound
	}
	if err != nil {
		return nil, err
	}
	return raw, nil
}

// ListByJob returns all payloads collected under one job, oldest first.
func (r *RawDataRepoImpl) ListByJob(ctx context.Context, jobID string) ([]*entity.RawData, error) {
	query := `
		SELECT id, url, domain, http_status, data, meta_data, job_id, created_at
		FROM resrc_raw_data
		WHERE job_id = $1
		ORDER BY created_at ASC;
	`
	rows, err := r.db.Query(ctx, query, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payloads []*entity.RawData
	for rows.Next() {
		raw, err := scanRawData(rows)
		if err != nil {
			return nil, err
		}
		payloads = append(payloads, raw)
	}
	return payloads, rows.Err()
}

func scanRawData(row pgx.Row) (*entity.RawData, error) {
	var raw entity.RawData
	var data, metaData []byte
	err := row.Scan(&raw.ID, &raw.URL, &raw.Domain, &raw.HTTPStatus, &data, &metaData, &raw.JobID, &raw.CreatedAt)
	if err != nil {
		return nil, err
	}
	raw.Data = data
	raw.MetaData = metaData
	return &raw, nil
}
