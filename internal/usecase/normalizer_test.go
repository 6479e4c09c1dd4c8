package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jas0nkim/pricewatch/internal/entity"
	"github.com/jas0nkim/pricewatch/internal/extractor"
	"github.com/jas0nkim/pricewatch/internal/repository"
	"github.com/jas0nkim/pricewatch/pkg/metrics"
)

// fakeItemStore mimics the postgres upsert: pointer fields only overwrite
// when the incoming value is non-nil, the title only when non-empty.
type fakeItemStore struct {
	mu    sync.Mutex
	items map[string]*entity.Item
	seq   int64
}

func newFakeItemStore() *fakeItemStore {
	return &fakeItemStore{items: make(map[string]*entity.Item)}
}

func (s *fakeItemStore) Upsert(_ context.Context, item *entity.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := item.Domain + "|" + item.SKU
	existing, ok := s.items[key]
	if !ok {
		s.seq++
		stored := *item
		stored.ID = s.seq
		stored.CreatedAt = time.Now()
		stored.UpdatedAt = stored.CreatedAt
		s.items[key] = &stored
		item.ID = stored.ID
		return nil
	}
	if item.ParentSKU != nil {
		existing.ParentSKU = item.ParentSKU
	}
	if item.UPC != nil {
		existing.UPC = item.UPC
	}
	if item.BrandName != nil {
		existing.BrandName = item.BrandName
	}
	if item.PictureURL != nil {
		existing.PictureURL = item.PictureURL
	}
	if item.Title != "" {
		existing.Title = item.Title
	}
	existing.UpdatedAt = time.Now()
	item.ID = existing.ID
	return nil
}

func (s *fakeItemStore) FindBySKU(_ context.Context, domain, sku string) (*entity.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[domain+"|"+sku]
	if !ok {
		return nil, nil
	}
	copied := *item
	return &copied, nil
}

func (s *fakeItemStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

type fakePriceStore struct {
	mu     sync.Mutex
	prices []*entity.ItemPrice
}

func (s *fakePriceStore) Insert(_ context.Context, price *entity.ItemPrice) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	price.ID = int64(len(s.prices) + 1)
	price.CreatedAt = time.Now()
	s.prices = append(s.prices, price)
	return nil
}

func (s *fakePriceStore) ListBySKU(_ context.Context, domain, sku string) ([]*entity.ItemPrice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.ItemPrice
	for _, p := range s.prices {
		if p.Domain == domain && p.SKU == sku {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *fakePriceStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.prices)
}

type fakeRawDataStore struct {
	mu   sync.Mutex
	rows map[int64]*entity.RawData
}

func newFakeRawDataStore() *fakeRawDataStore {
	return &fakeRawDataStore{rows: make(map[int64]*entity.RawData)}
}

func (s *fakeRawDataStore) add(raw *entity.RawData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[raw.ID] = raw
}

func (s *fakeRawDataStore) FindByID(_ context.Context, id int64) (*entity.RawData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, ok := s.rows[id]
	if !ok {
		return nil, repository.ErrRawDataNotFound
	}
	return raw, nil
}

func (s *fakeRawDataStore) ListByJob(_ context.Context, jobID string) ([]*entity.RawData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.RawData
	for _, raw := range s.rows {
		if raw.JobID == jobID {
			out = append(out, raw)
		}
	}
	return out, nil
}

type fakeRawDataQueue struct {
	mu  sync.Mutex
	ids []int64
}

func (q *fakeRawDataQueue) Push(_ context.Context, id int64) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.ids = append(q.ids, id)
	return nil
}

func (q *fakeRawDataQueue) Pop(_ context.Context) (int64, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.ids) == 0 {
		return 0, repository.ErrQueueEmpty
	}
	id := q.ids[0]
	q.ids = q.ids[1:]
	return id, nil
}

func (q *fakeRawDataQueue) Size(_ context.Context) (int64, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return int64(len(q.ids)), nil
}

type panickingExtractor struct{}

func (panickingExtractor) Extract(*entity.RawData) (*extractor.PartialListing, error) {
	panic("malformed payload")
}

type normalizerFixture struct {
	normalizer Normalizer
	items      *fakeItemStore
	prices     *fakePriceStore
	rawRepo    *fakeRawDataStore
	queue      *fakeRawDataQueue
}

func newNormalizerFixture(workers int) *normalizerFixture {
	metrics.Init()
	f := &normalizerFixture{
		items:   newFakeItemStore(),
		prices:  &fakePriceStore{},
		rawRepo: newFakeRawDataStore(),
		queue:   &fakeRawDataQueue{},
	}
	registry := extractor.NewRegistry()
	registry.Register("panic.example", panickingExtractor{})
	f.normalizer = NewNormalizer(registry, f.rawRepo, f.items, f.prices, f.queue, workers)
	return f
}

func amazonRaw(id int64, payload string) *entity.RawData {
	return &entity.RawData{
		ID:         id,
		URL:        "https://www.amazon.com/dp/B00TESTSKU",
		Domain:     "amazon.com",
		HTTPStatus: 200,
		Data:       json.RawMessage(payload),
		JobID:      "3a3898ed-fa43-442c-bb88-be21dd1a66f0",
	}
}

const amazonGoodPayload = `{
	"asin": "B00TESTSKU",
	"title": "USB-C Charging Cable",
	"brand_name": "Anker",
	"picture_urls": ["https://images.example/B00TESTSKU.jpg"],
	"price": 13.99,
	"original_price": 19.99,
	"quantity": 5
}`

func TestProcessUnsupportedDomain(t *testing.T) {
	f := newNormalizerFixture(1)
	raw := amazonRaw(1, amazonGoodPayload)
	raw.Domain = "ebay.com"

	_, err := f.normalizer.Process(context.Background(), raw)
	assert.ErrorIs(t, err, extractor.ErrUnsupportedDomain)
	assert.Zero(t, f.items.count())
}

func TestProcessNon200IsInactive(t *testing.T) {
	f := newNormalizerFixture(1)
	raw := amazonRaw(1, amazonGoodPayload)
	raw.HTTPStatus = 404

	result, err := f.normalizer.Process(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, entity.ListingStatusInactive, result.Status)
	assert.Nil(t, result.Item)
	assert.Nil(t, result.Price)
	assert.Zero(t, f.items.count())
	assert.Zero(t, f.prices.count())
}

func TestProcessUnresolvableSKU(t *testing.T) {
	f := newNormalizerFixture(1)
	raw := amazonRaw(1, `{"title": "mystery listing"}`)
	raw.URL = "https://www.amazon.com/gp/help/customer"

	result, err := f.normalizer.Process(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, entity.ListingStatusInvalidSKU, result.Status)
	assert.Zero(t, f.items.count())
	assert.Zero(t, f.prices.count())
}

func TestProcessSKUFromURL(t *testing.T) {
	f := newNormalizerFixture(1)
	raw := amazonRaw(1, `{"title": "USB-C Charging Cable", "price": 13.99}`)

	result, err := f.normalizer.Process(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, entity.ListingStatusGood, result.Status)
	require.NotNil(t, result.Item)
	assert.Equal(t, "B00TESTSKU", result.Item.SKU)
}

func TestProcessNoPriceWritesItemOnly(t *testing.T) {
	f := newNormalizerFixture(1)
	raw := amazonRaw(1, `{"asin": "B00TESTSKU", "title": "USB-C Charging Cable"}`)

	result, err := f.normalizer.Process(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, entity.ListingStatusNoPriceGiven, result.Status)
	require.NotNil(t, result.Item)
	assert.Nil(t, result.Price)
	assert.Equal(t, 1, f.items.count())
	assert.Zero(t, f.prices.count())
}

func TestProcessGoodListing(t *testing.T) {
	f := newNormalizerFixture(1)
	raw := amazonRaw(1, amazonGoodPayload)

	result, err := f.normalizer.Process(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, entity.ListingStatusGood, result.Status)

	item, err := f.items.FindBySKU(context.Background(), "amazon.com", "B00TESTSKU")
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, "USB-C Charging Cable", item.Title)
	require.NotNil(t, item.BrandName)
	assert.Equal(t, "Anker", *item.BrandName)
	require.NotNil(t, item.PictureURL)
	assert.Equal(t, "https://images.example/B00TESTSKU.jpg", *item.PictureURL)

	require.NotNil(t, result.Price)
	assert.Equal(t, 13.99, result.Price.Price)
	assert.Equal(t, 19.99, result.Price.OriginalPrice)
	assert.True(t, result.Price.OnlineAvailability)
	require.NotNil(t, result.Price.OnlineUrgentQuantity)
	assert.Equal(t, 5, *result.Price.OnlineUrgentQuantity)
	assert.Equal(t, raw.JobID, result.Price.JobID)
}

func TestProcessOutOfStock(t *testing.T) {
	f := newNormalizerFixture(1)
	raw := amazonRaw(1, `{"asin": "B00TESTSKU", "title": "USB-C Charging Cable", "price": 13.99, "quantity": 0}`)

	result, err := f.normalizer.Process(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, entity.ListingStatusOutOfStock, result.Status)
	require.NotNil(t, result.Price)
	assert.False(t, result.Price.OnlineAvailability)
	assert.Nil(t, result.Price.OnlineUrgentQuantity)
	assert.Equal(t, 1, f.prices.count())
}

func TestProcessOriginalPriceDefaultsToPrice(t *testing.T) {
	f := newNormalizerFixture(1)
	raw := amazonRaw(1, `{"asin": "B00TESTSKU", "price": 13.99}`)

	result, err := f.normalizer.Process(context.Background(), raw)
	require.NoError(t, err)
	require.NotNil(t, result.Price)
	assert.Equal(t, 13.99, result.Price.OriginalPrice)
}

func TestProcessExtractorPanic(t *testing.T) {
	f := newNormalizerFixture(1)
	raw := amazonRaw(1, `{}`)
	raw.Domain = "panic.example"

	result, err := f.normalizer.Process(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, entity.ListingStatusParsingFailedUnknown, result.Status)
	assert.Zero(t, f.items.count())
}

func TestProcessIdempotentItemAppendOnlyPrices(t *testing.T) {
	f := newNormalizerFixture(1)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := f.normalizer.Process(ctx, amazonRaw(int64(i+1), amazonGoodPayload))
		require.NoError(t, err)
	}

	assert.Equal(t, 1, f.items.count())
	assert.Equal(t, 2, f.prices.count())
}

func TestProcessPreservesKnownFields(t *testing.T) {
	f := newNormalizerFixture(1)
	ctx := context.Background()

	_, err := f.normalizer.Process(ctx, amazonRaw(1, amazonGoodPayload))
	require.NoError(t, err)

	// a later payload missing brand and picture must not erase them
	_, err = f.normalizer.Process(ctx, amazonRaw(2, `{"asin": "B00TESTSKU", "price": 12.49}`))
	require.NoError(t, err)

	item, err := f.items.FindBySKU(ctx, "amazon.com", "B00TESTSKU")
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, "USB-C Charging Cable", item.Title)
	require.NotNil(t, item.BrandName)
	assert.Equal(t, "Anker", *item.BrandName)
	require.NotNil(t, item.PictureURL)
}

func TestProcessConcurrentSameSKU(t *testing.T) {
	f := newNormalizerFixture(1)
	ctx := context.Background()

	const n = 16
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			payload := fmt.Sprintf(`{"asin": "B00TESTSKU", "title": "USB-C Charging Cable", "price": %d.99}`, 10+i)
			_, errs[i] = f.normalizer.Process(ctx, amazonRaw(int64(i+1), payload))
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, 1, f.items.count())
	assert.Equal(t, n, f.prices.count())
}

func TestRunDrainsQueue(t *testing.T) {
	f := newNormalizerFixture(2)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	for i := int64(1); i <= 3; i++ {
		f.rawRepo.add(amazonRaw(i, amazonGoodPayload))
		require.NoError(t, f.queue.Push(ctx, i))
	}

	done := make(chan error, 1)
	go func() { done <- f.normalizer.Run(ctx) }()

	require.Eventually(t, func() bool {
		return f.prices.count() == 3
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	err := <-done
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, f.items.count())
}

func TestRunSkipsMissingRawData(t *testing.T) {
	f := newNormalizerFixture(1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, f.queue.Push(ctx, 99))
	f.rawRepo.add(amazonRaw(1, amazonGoodPayload))
	require.NoError(t, f.queue.Push(ctx, 1))

	done := make(chan error, 1)
	go func() { done <- f.normalizer.Run(ctx) }()

	// the missing id is logged and dropped, the next one still lands
	require.Eventually(t, func() bool {
		return f.prices.count() == 1
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
}

func TestWalmartCaOfferResolution(t *testing.T) {
	f := newNormalizerFixture(1)
	raw := &entity.RawData{
		ID:         1,
		URL:        "https://www.walmart.ca/ip/usb-c-cable/6000123456789",
		Domain:     "walmart.ca",
		HTTPStatus: 200,
		Data: json.RawMessage(`{
			"product": {"item": {"skus": ["SKU123"], "name": "USB-C Cable", "brand": {"name": "onn."}}},
			"skus": {"SKU123": ["OFFER1"]},
			"offers": {"OFFER1": {"currentPrice": 9.97, "regularPrice": 14.97, "availableQuantity": 3}}
		}`),
		JobID: "3a3898ed-fa43-442c-bb88-be21dd1a66f0",
	}

	result, err := f.normalizer.Process(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, entity.ListingStatusGood, result.Status)
	assert.Equal(t, "SKU123", result.Item.SKU)
	require.NotNil(t, result.Price)
	assert.Equal(t, 9.97, result.Price.Price)
	assert.Equal(t, 14.97, result.Price.OriginalPrice)
}

func TestProcessStorageFailurePropagates(t *testing.T) {
	metrics.Init()
	registry := extractor.NewRegistry()
	items := &failingItemStore{}
	n := NewNormalizer(registry, newFakeRawDataStore(), items, &fakePriceStore{}, &fakeRawDataQueue{}, 1)

	_, err := n.Process(context.Background(), amazonRaw(1, amazonGoodPayload))
	assert.ErrorIs(t, err, errStorageDown)
}

var errStorageDown = errors.New("storage down")

type failingItemStore struct{}

func (failingItemStore) Upsert(context.Context, *entity.Item) error { return errStorageDown }
func (failingItemStore) FindBySKU(context.Context, string, string) (*entity.Item, error) {
	return nil, errStorageDown
}
