package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jas0nkim/pricewatch/internal/entity"
	"github.com/jas0nkim/pricewatch/internal/extractor"
	"github.com/jas0nkim/pricewatch/internal/repository"
	"github.com/jas0nkim/pricewatch/pkg/metrics"
)

// queuePollInterval is how long an idle worker sleeps before polling the raw
// data queue again.
const queuePollInterval = time.Second

// NormalizeResult is the outcome of processing one raw payload. Item and
// Price are nil when the classification forbade writing them.
type NormalizeResult struct {
	Item   *entity.Item
	Price  *entity.ItemPrice
	Status entity.ListingStatus
}

// Normalizer converts raw crawl payloads into canonical item and price
// records with a listing status classification.
type Normalizer interface {
	// Process normalizes a single payload. Expected extraction failures
	// (unresolvable SKU, parser errors) are folded into the result's status;
	// an error return means an unsupported domain or a storage failure.
	Process(ctx context.Context, raw *entity.RawData) (*NormalizeResult, error)
	// Run consumes the raw data queue with a pool of workers until the
	// context is canceled. A failure on one payload never halts the others.
	Run(ctx context.Context) error
}

type normalizerUseCase struct {
	registry  *extractor.Registry
	rawRepo   repository.RawDataRepository
	itemRepo  repository.ItemRepository
	priceRepo repository.ItemPriceRepository
	queue     repository.RawDataQueue
	workers   int
	itemLocks keyedMutex
}

// NewNormalizer creates the normalization engine use case.
func NewNormalizer(
	registry *extractor.Registry,
	rawRepo repository.RawDataRepository,
	itemRepo repository.ItemRepository,
	priceRepo repository.ItemPriceRepository,
	queue repository.RawDataQueue,
	workers int,
) Normalizer {
	if workers < 1 {
		workers = 1
	}
	return &normalizerUseCase{
		registry:  registry,
		rawRepo:   rawRepo,
		itemRepo:  itemRepo,
		priceRepo: priceRepo,
		queue:     queue,
		workers:   workers,
	}
}

func (uc *normalizerUseCase) Process(ctx context.Context, raw *entity.RawData) (*NormalizeResult, error) {
	start := time.Now()
	result, err := uc.process(ctx, raw)
	if err != nil {
		return nil, err
	}
	metrics.NormalizationsTotal.WithLabelValues(raw.Domain, result.Status.String()).Inc()
	metrics.NormalizationDuration.WithLabelValues(raw.Domain).Observe(time.Since(start).Seconds())
	return result, nil
}

func (uc *normalizerUseCase) process(ctx context.Context, raw *entity.RawData) (*NormalizeResult, error) {
	ext, err := uc.registry.Lookup(raw.Domain)
	if err != nil {
		return nil, err
	}

	// Non-200 means the page did not resolve; do not attempt extraction.
	if raw.HTTPStatus != 200 {
		return &NormalizeResult{Status: entity.ListingStatusInactive}, nil
	}

	listing, err := safeExtract(ext, raw)
	if err != nil {
		if errors.Is(err, extractor.ErrSKUUnresolved) {
			slog.Warn("SKU unresolved, dropping payload", "domain", raw.Domain, "url", raw.URL)
			return &NormalizeResult{Status: entity.ListingStatusInvalidSKU}, nil
		}
		slog.Error("Extraction failed", "domain", raw.Domain, "url", raw.URL, "error", err)
		return &NormalizeResult{Status: entity.ListingStatusParsingFailedUnknown}, nil
	}

	item := itemFromListing(raw.Domain, listing)
	if err := uc.upsertItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to upsert item %s/%s: %w", raw.Domain, listing.SKU, err)
	}

	if listing.Price == nil {
		return &NormalizeResult{Item: item, Status: entity.ListingStatusNoPriceGiven}, nil
	}

	price := priceFromListing(raw, listing)
	if err := uc.priceRepo.Insert(ctx, price); err != nil {
		return nil, fmt.Errorf("failed to insert price for %s/%s: %w", raw.Domain, listing.SKU, err)
	}

	status := entity.ListingStatusGood
	if !price.OnlineAvailability {
		status = entity.ListingStatusOutOfStock
	}
	return &NormalizeResult{Item: item, Price: price, Status: status}, nil
}

// upsertItem serializes writes per (domain, sku) so two concurrent payloads
// for the same listing cannot interleave partial field updates.
func (uc *normalizerUseCase) upsertItem(ctx context.Context, item *entity.Item) error {
	unlock := uc.itemLocks.lock(item.Domain + "|" + item.SKU)
	defer unlock()
	return uc.itemRepo.Upsert(ctx, item)
}

func (uc *normalizerUseCase) Run(ctx context.Context) error {
	slog.Info("Normalizer started", "workers", uc.workers)
	var wg sync.WaitGroup
	for i := 0; i < uc.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			uc.work(ctx)
		}()
	}
	wg.Wait()
	slog.Info("Normalizer stopped")
	return ctx.Err()
}

func (uc *normalizerUseCase) work(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		if err := uc.processNext(ctx); err != nil {
			if errors.Is(err, repository.ErrQueueEmpty) {
				select {
				case <-ctx.Done():
					return
				case <-time.After(queuePollInterval):
				}
				continue
			}
			slog.Error("Failed to process raw payload", "error", err)
		}
	}
}

func (uc *normalizerUseCase) processNext(ctx context.Context) error {
	rawDataID, err := uc.queue.Pop(ctx)
	if err != nil {
		return err
	}
	if depth, err := uc.queue.Size(ctx); err == nil {
		metrics.RawDataQueueDepth.Set(float64(depth))
	}
	raw, err := uc.rawRepo.FindByID(ctx, rawDataID)
	if err != nil {
		return fmt.Errorf("failed to load raw data %d: %w", rawDataID, err)
	}
	result, err := uc.Process(ctx, raw)
	if err != nil {
		return fmt.Errorf("failed to normalize raw data %d: %w", rawDataID, err)
	}
	slog.Info("Payload normalized",
		"raw_data_id", rawDataID,
		"domain", raw.Domain,
		"job_id", raw.JobID,
		"status", result.Status.String(),
	)
	return nil
}

// safeExtract recovers extractor panics so one malformed payload cannot take
// down the worker pool.
func safeExtract(ext extractor.Extractor, raw *entity.RawData) (listing *extractor.PartialListing, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("extractor panic: %v", r)
		}
	}()
	return ext.Extract(raw)
}

func itemFromListing(domain string, listing *extractor.PartialListing) *entity.Item {
	item := &entity.Item{
		Domain:     domain,
		SKU:        listing.SKU,
		ParentSKU:  listing.ParentSKU,
		UPC:        listing.UPC,
		BrandName:  listing.BrandName,
		PictureURL: listing.PictureURL,
	}
	if listing.Title != nil {
		item.Title = *listing.Title
	}
	return item
}

func priceFromListing(raw *entity.RawData, listing *extractor.PartialListing) *entity.ItemPrice {
	price := &entity.ItemPrice{
		Domain:               raw.Domain,
		SKU:                  listing.SKU,
		Price:                *listing.Price,
		OriginalPrice:        *listing.Price,
		OnlineAvailability:   listing.Available == nil || *listing.Available,
		OnlineUrgentQuantity: listing.UrgentQuantity,
		StoreAvailabilities:  listing.StoreAvailabilities,
		JobID:                raw.JobID,
	}
	if listing.OriginalPrice != nil {
		price.OriginalPrice = *listing.OriginalPrice
	}
	return price
}
