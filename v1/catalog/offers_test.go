package catalog

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		raw   string
		want  float64
		valid bool
	}{
		{`19.99`, 19.99, true},
		{`"20.00"`, 20, true},
		{`" 7 "`, 7, true},
		{`"free"`, 0, false},
		{`""`, 0, false},
		{`null`, 0, false},
		{``, 0, false},
		{`{"value": 3}`, 0, false},
	}
	for _, tt := range tests {
		got, ok := ParsePrice(json.RawMessage(tt.raw))
		assert.Equal(t, tt.valid, ok, tt.raw)
		assert.Equal(t, tt.want, got, tt.raw)
	}
}

func TestNormalizeAvailability(t *testing.T) {
	tests := map[string]string{
		"https://schema.org/InStock":             "IN_STOCK",
		"http://schema.org/OutOfStock":           "OUT_OF_STOCK",
		"schema:PreOrder":                        "PRE_ORDER",
		"InStock":                                "IN_STOCK",
		"IN_STOCK":                               "IN_STOCK",
		"":                                       "",
		"https://schema.org/LimitedAvailability": "LIMITED_AVAILABILITY",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeAvailability(in), in)
	}
}

func TestBuildOffers(t *testing.T) {
	raw := `{"@type":"Product","@id":"urn:p","offers":[
		{"@type":"Offer","price":"15.00","priceCurrency":"EUR","availability":"https://schema.org/InStock","inventoryLevel":{"@type":"QuantitativeValue","value":4},"priceValidUntil":"2026-12-31"},
		{"@type":"Offer","price":"n/a"},
		{"@type":"Offer","priceCurrency":"EUR"},
		{"@type":"Offer","price":20,"inventoryLevel":2}
	]}`
	node, err := DecodeNode(json.RawMessage(raw))
	require.NoError(t, err)

	offers, skipped := BuildOffers(node.(*ProductNode).Offers)
	assert.Equal(t, 2, skipped)
	require.Len(t, offers, 2)

	first := offers[0]
	assert.Equal(t, 15.0, first.Price)
	assert.Equal(t, "EUR", first.PriceCurrency)
	assert.Equal(t, AvailabilityInStock, first.Availability)
	require.NotNil(t, first.InventoryLevel)
	assert.Equal(t, 4, *first.InventoryLevel)
	require.NotNil(t, first.PriceValidUntil)
	assert.Equal(t, time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC), *first.PriceValidUntil)
	assert.Contains(t, string(first.RawData), `"15.00"`)

	require.NotNil(t, offers[1].InventoryLevel)
	assert.Equal(t, 2, *offers[1].InventoryLevel)
	assert.Nil(t, offers[1].PriceValidUntil)
}
