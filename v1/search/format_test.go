package search

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aleph-Alpha/discovery/v1/catalog"
)

func detail(urn string) *catalog.ProductDetail {
	category := "Shoes"
	return &catalog.ProductDetail{
		Type:        catalog.TypeProduct,
		ID:          urn,
		Name:        "Runner",
		Description: "Light running shoe",
		SKU:         "RUN-1",
		URL:         "https://shop.example/runner",
		Brand:       &catalog.BrandSummary{Name: "Acme"},
		Category:    &category,
		Offers:      []json.RawMessage{json.RawMessage(`{"@type":"Offer","price":"59.90"}`)},
		Media: []json.RawMessage{
			json.RawMessage(`{"@type":"ImageObject","url":"https://img/1.jpg","width":800}`),
			json.RawMessage(`{"url":"https://img/2.png","encodingFormat":"image/png"}`),
			json.RawMessage(`{"@type":"VideoObject","url":"https://vid/1.mp4","encodingFormat":"video/mp4"}`),
			json.RawMessage(`{"@type":"3DModel","contentUrl":"https://model/1.glb"}`),
			json.RawMessage(`{"@type":"ImageObject"}`),
		},
		AdditionalProperty: []catalog.PropertyValue{{Type: "PropertyValue", Name: "color", Value: "red"}},
		Group:              &catalog.GroupSummary{URN: "urn:cmp:product:runner", Name: "Runner family"},
	}
}

func TestFormat(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))
	hits := []Hit{{URN: "urn:cmp:sku:1", Score: 0.9}, {URN: "urn:cmp:sku:gone", Score: 0.5}, {URN: "urn:cmp:sku:2", Score: 0.1}}
	details := map[string]*catalog.ProductDetail{
		"urn:cmp:sku:1": detail("urn:cmp:sku:1"),
		"urn:cmp:sku:2": detail("urn:cmp:sku:2"),
	}

	list := Format(hits, details, now)

	assert.Equal(t, 2, list.TotalResults)
	assert.Equal(t, NodeVersion, list.NodeVersion)
	assert.Equal(t, "2026-03-01T11:00:00Z", list.DatePublished)
	require.Len(t, list.ItemListElement, 2)
	assert.Equal(t, 1, list.ItemListElement[0].Position)
	assert.Equal(t, 2, list.ItemListElement[1].Position)
	assert.Equal(t, "urn:cmp:sku:2", list.ItemListElement[1].Item.ID)

	item := list.ItemListElement[0].Item
	assert.Equal(t, 0.9, item.SearchScore)
	assert.Equal(t, &BrandRef{Type: "Brand", Name: "Acme"}, item.Brand)
	assert.Equal(t, &GroupRef{Type: "ProductGroup", ID: "urn:cmp:product:runner", Name: "Runner family"}, item.IsVariantOf)
	require.Len(t, item.Image, 2)
	assert.Equal(t, "https://img/1.jpg", item.Image[0].URL)
	assert.Equal(t, float64(800), item.Image[0].Width)
	assert.Equal(t, "image/png", item.Image[1].EncodingFormat)
	assert.Equal(t, []MediaObject{
		{Type: "VideoObject", URL: "https://vid/1.mp4", EncodingFormat: "video/mp4"},
		{Type: "3DModel", URL: "https://model/1.glb"},
	}, item.Media)
}

func TestFormat_JSONShape(t *testing.T) {
	list := Format([]Hit{{URN: "urn:cmp:sku:1", Score: 0.25}}, map[string]*catalog.ProductDetail{
		"urn:cmp:sku:1": {ID: "urn:cmp:sku:1", Name: "Plain"},
	}, time.Unix(0, 0))

	raw, err := json.Marshal(list)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, float64(1), body["cmp_totalResults"])
	assert.Equal(t, "1970-01-01T00:00:00Z", body["datePublished"])

	item := body["itemListElement"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "ListItem", item["@type"])
	product := item["item"].(map[string]interface{})
	assert.Equal(t, "Product", product["@type"])
	assert.Equal(t, 0.25, product["cmp:searchScore"])
	assert.NotContains(t, product, "brand")
	assert.NotContains(t, product, "image")
	assert.NotContains(t, product, "@cmp:media")
	assert.Contains(t, product, "category")
}

func TestFormat_NoHits(t *testing.T) {
	raw, err := json.Marshal(Format(nil, nil, time.Now()))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"itemListElement":[]`)
	assert.Contains(t, string(raw), `"cmp_totalResults":0`)
}
