package extractor

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jas0nkim/pricewatch/internal/entity"
)

func amazonRawData(url, payload string) *entity.RawData {
	return &entity.RawData{
		URL:        url,
		Domain:     "amazon.com",
		HTTPStatus: 200,
		Data:       json.RawMessage(payload),
	}
}

func TestAmazonExtractFullPayload(t *testing.T) {
	raw := amazonRawData("https://www.amazon.com/dp/B00TESTSKU", `{
		"asin": "B00TESTSKU",
		"parent_asin": "B00PARENTSK",
		"title": "USB-C Charging Cable",
		"brand_name": "Anker",
		"picture_urls": ["https://images.example/1.jpg", "https://images.example/2.jpg"],
		"price": 13.99,
		"original_price": 19.99,
		"quantity": 5
	}`)

	listing, err := NewAmazonExtractor().Extract(raw)
	require.NoError(t, err)

	assert.Equal(t, "B00TESTSKU", listing.SKU)
	require.NotNil(t, listing.ParentSKU)
	assert.Equal(t, "B00PARENTSK", *listing.ParentSKU)
	require.NotNil(t, listing.Title)
	assert.Equal(t, "USB-C Charging Cable", *listing.Title)
	require.NotNil(t, listing.BrandName)
	assert.Equal(t, "Anker", *listing.BrandName)
	require.NotNil(t, listing.PictureURL)
	assert.Equal(t, "https://images.example/1.jpg", *listing.PictureURL)
	require.NotNil(t, listing.Price)
	assert.Equal(t, 13.99, *listing.Price)
	require.NotNil(t, listing.OriginalPrice)
	assert.Equal(t, 19.99, *listing.OriginalPrice)
	require.NotNil(t, listing.Available)
	assert.True(t, *listing.Available)
	require.NotNil(t, listing.UrgentQuantity)
	assert.Equal(t, 5, *listing.UrgentQuantity)
}

func TestAmazonExtractSKUFromURL(t *testing.T) {
	raw := amazonRawData("https://www.amazon.com/gp/product/B00TESTSKU", `{"title": "USB-C Charging Cable"}`)

	listing, err := NewAmazonExtractor().Extract(raw)
	require.NoError(t, err)
	assert.Equal(t, "B00TESTSKU", listing.SKU)
	assert.Nil(t, listing.Price)
}

func TestAmazonExtractUnresolvableSKU(t *testing.T) {
	raw := amazonRawData("https://www.amazon.com/gp/help/customer", `{"title": "not a listing"}`)

	_, err := NewAmazonExtractor().Extract(raw)
	assert.ErrorIs(t, err, ErrSKUUnresolved)
}

func TestAmazonExtractDisplayPrice(t *testing.T) {
	raw := amazonRawData("https://www.amazon.com/dp/B00TESTSKU", `{
		"asin": "B00TESTSKU",
		"price": "$1,299.99",
		"original_price": "$1,499.99"
	}`)

	listing, err := NewAmazonExtractor().Extract(raw)
	require.NoError(t, err)
	require.NotNil(t, listing.Price)
	assert.Equal(t, 1299.99, *listing.Price)
	require.NotNil(t, listing.OriginalPrice)
	assert.Equal(t, 1499.99, *listing.OriginalPrice)
}

func TestAmazonExtractQuantityStrings(t *testing.T) {
	t.Run("in stock", func(t *testing.T) {
		raw := amazonRawData("https://www.amazon.com/dp/B00TESTSKU", `{"asin": "B00TESTSKU", "quantity": "In Stock"}`)
		listing, err := NewAmazonExtractor().Extract(raw)
		require.NoError(t, err)
		require.NotNil(t, listing.Available)
		assert.True(t, *listing.Available)
		assert.Nil(t, listing.UrgentQuantity)
	})

	t.Run("out of stock", func(t *testing.T) {
		raw := amazonRawData("https://www.amazon.com/dp/B00TESTSKU", `{"asin": "B00TESTSKU", "quantity": "out of stock"}`)
		listing, err := NewAmazonExtractor().Extract(raw)
		require.NoError(t, err)
		require.NotNil(t, listing.Available)
		assert.False(t, *listing.Available)
	})

	t.Run("zero quantity", func(t *testing.T) {
		raw := amazonRawData("https://www.amazon.com/dp/B00TESTSKU", `{"asin": "B00TESTSKU", "quantity": 0}`)
		listing, err := NewAmazonExtractor().Extract(raw)
		require.NoError(t, err)
		require.NotNil(t, listing.Available)
		assert.False(t, *listing.Available)
		assert.Nil(t, listing.UrgentQuantity)
	})
}
