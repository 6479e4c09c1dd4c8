package repository

import (
	"context"

	"github.com/jas0nkim/pricewatch/internal/entity"
)

// RawDataRepository reads raw payloads written by the crawling subsystem.
// This side never writes to the raw data table.
type RawDataRepository interface {
	// FindByID retrieves one raw payload, or ErrRawDataNotFound.
	FindByID(ctx context.Context, id int64) (*entity.RawData, error)
	// ListByJob returns all payloads collected under one job, ordered by
	// creation time.
	ListByJob(ctx context.Context, jobID string) ([]*entity.RawData, error)
}
