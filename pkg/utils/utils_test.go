package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDedupeTargets(t *testing.T) {
	assert.Equal(t, []string{"A1"}, DedupeTargets([]string{"A1", "a1 ", "A1"}))
	assert.Equal(t, []string{"A1", "B2"}, DedupeTargets([]string{"A1", "B2", " b2"}))
	assert.Equal(t, []string{"a1"}, DedupeTargets([]string{"a1", "A1"}), "first-seen casing wins")
	assert.Empty(t, DedupeTargets([]string{"", "  ", ""}))
	assert.Empty(t, DedupeTargets(nil))
}

func TestSplitTargets(t *testing.T) {
	assert.Equal(t, []string{"A1", "B2"}, SplitTargets("A1, B2, a1"))
	assert.Equal(t, []string{"A1"}, SplitTargets("A1"))
	assert.Empty(t, SplitTargets(""))
}

func TestMoneyToFloat(t *testing.T) {
	cases := map[string]float64{
		"$13.99":    13.99,
		"$1,299.99": 1299.99,
		"CDN$ 19.97": 19.97,
		"42":        42,
	}
	for in, want := range cases {
		got, err := MoneyToFloat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := MoneyToFloat("no price here")
	assert.Error(t, err)
}

func TestExtractInt(t *testing.T) {
	got, err := ExtractInt("Only 3 left in stock")
	require.NoError(t, err)
	assert.Equal(t, 3, got)

	_, err = ExtractInt("out of stock")
	assert.Error(t, err)
}

func TestExtractSKUFromURL(t *testing.T) {
	cases := []struct {
		url    string
		domain string
		want   string
	}{
		{"https://www.amazon.com/dp/B00TESTSKU", "amazon.com", "B00TESTSKU"},
		{"https://www.amazon.com/gp/product/B00TESTSKU/ref=xyz", "amazon.com", "B00TESTSKU"},
		{"https://www.amazon.ca/gp/offer-listing/B00TESTSKU", "amazon.ca", "B00TESTSKU"},
		{"https://www.amazon.com/gp/help/customer", "amazon.com", ""},
		{"https://www.walmart.com/ip/usb-c-cable/123456789", "walmart.com", "123456789"},
		{"https://www.walmart.com/ip/123456789", "walmart.com", "123456789"},
		{"https://www.walmart.ca/ip/usb-c-cable/6000123456789", "walmart.ca", "6000123456789"},
		{"https://www.canadiantire.ca/en/pdp/usb-c-cable-0651234p.html", "canadiantire.ca", "0651234"},
		{"https://www.canadiantire.ca/en/pdp/usb-c-cable-0651234p.html?store=33", "canadiantire.ca", "0651234"},
		{"https://www.canadiantire.ca/en/help.html", "canadiantire.ca", ""},
		{"https://www.example.com/dp/B00TESTSKU", "example.com", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ExtractSKUFromURL(c.url, c.domain), "%s (%s)", c.url, c.domain)
	}
}
