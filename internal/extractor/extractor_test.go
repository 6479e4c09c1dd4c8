package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryCoversSupportedDomains(t *testing.T) {
	r := NewRegistry()
	for _, domain := range []string{"amazon.com", "amazon.ca", "walmart.com", "walmart.ca", "canadiantire.ca"} {
		e, err := r.Lookup(domain)
		require.NoError(t, err, domain)
		assert.NotNil(t, e, domain)
	}
	assert.Len(t, r.Domains(), 5)
}

func TestRegistryUnsupportedDomain(t *testing.T) {
	r := NewRegistry()
	_, err := r.Lookup("ebay.com")
	assert.ErrorIs(t, err, ErrUnsupportedDomain)
	assert.ErrorContains(t, err, "ebay.com")
}

func TestRegisterReplacesBinding(t *testing.T) {
	r := NewRegistry()
	custom := NewAmazonExtractor()
	r.Register("walmart.com", custom)

	e, err := r.Lookup("walmart.com")
	require.NoError(t, err)
	assert.Same(t, custom, e)
}
