package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeNode_ProductGroupShapes(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		wantBrand    string
		wantCategory string
		wantVaries   []string
	}{
		{
			name:         "brand object and category string",
			raw:          `{"@type":"ProductGroup","@id":"urn:g","brand":{"@type":"Brand","name":"Acme"},"category":"Books","variesBy":["format","size"]}`,
			wantBrand:    "Acme",
			wantCategory: "Books",
			wantVaries:   []string{"format", "size"},
		},
		{
			name:         "brand string and category object",
			raw:          `{"@type":"ProductGroup","@id":"urn:g","brand":"Acme","category":{"name":"Books"},"variesBy":"format"}`,
			wantBrand:    "Acme",
			wantCategory: "Books",
			wantVaries:   []string{"format"},
		},
		{
			name:         "malformed brand is dropped, other fields survive",
			raw:          `{"@type":"ProductGroup","@id":"urn:g","brand":42,"category":"Books"}`,
			wantCategory: "Books",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := DecodeNode(json.RawMessage(tt.raw))
			require.NoError(t, err)
			g, ok := node.(*ProductGroupNode)
			require.True(t, ok)
			assert.Equal(t, "urn:g", g.URN())
			if tt.wantBrand == "" {
				assert.True(t, g.Brand == nil || g.Brand.Name == "")
			} else {
				require.NotNil(t, g.Brand)
				assert.Equal(t, tt.wantBrand, g.Brand.Name)
			}
			assert.Equal(t, tt.wantCategory, string(g.Category))
			assert.Equal(t, tt.wantVaries, []string(g.VariesBy))
			assert.JSONEq(t, tt.raw, string(g.Raw()))
		})
	}
}

func TestDecodeNode_Product(t *testing.T) {
	raw := `{
		"@type": "Product",
		"@id": "urn:cmp:sku:1",
		"sku": "1",
		"isVariantOf": {"@id": "urn:cmp:product:1"},
		"additionalProperty": {"@type": "PropertyValue", "name": "color", "value": "red"},
		"offers": {"@type": "Offer", "price": "9.99", "priceCurrency": "EUR"},
		"@cmp:media": [{"@type": "ImageObject", "url": "https://img/1.jpg"}]
	}`
	node, err := DecodeNode(json.RawMessage(raw))
	require.NoError(t, err)
	p, ok := node.(*ProductNode)
	require.True(t, ok)

	assert.Equal(t, "urn:cmp:product:1", p.GroupURN())
	require.Len(t, p.AdditionalProperty, 1)
	assert.Equal(t, "color", p.AdditionalProperty[0].Name)
	assert.Equal(t, "red", p.AdditionalProperty[0].Value)
	assert.True(t, p.HasOffers)
	require.Len(t, p.Offers, 1)
	price, ok := ParsePrice(p.Offers[0].Price)
	assert.True(t, ok)
	assert.Equal(t, 9.99, price)
	assert.Contains(t, string(p.Raw()), "@cmp:media")
}

func TestDecodeNode_ProductSkipsIncompleteProperties(t *testing.T) {
	raw := `{"@type":"Product","@id":"urn:p","additionalProperty":[{"name":"a","value":"1"},{"name":"b"},{"value":"2"},"junk"]}`
	node, err := DecodeNode(json.RawMessage(raw))
	require.NoError(t, err)
	p := node.(*ProductNode)
	require.Len(t, p.AdditionalProperty, 1)
	assert.Equal(t, "a", p.AdditionalProperty[0].Name)
	assert.False(t, p.HasOffers)
	assert.Equal(t, "", p.GroupURN())
}

func TestDecodeNode_TypeList(t *testing.T) {
	node, err := DecodeNode(json.RawMessage(`{"@type":["Thing","Product"],"@id":"urn:p"}`))
	require.NoError(t, err)
	assert.Equal(t, TypeProduct, node.NodeType())
}

func TestDecodeNode_Unknown(t *testing.T) {
	node, err := DecodeNode(json.RawMessage(`{"@type":"Review","@id":"urn:r","rating":5}`))
	require.NoError(t, err)
	u, ok := node.(*UnknownNode)
	require.True(t, ok)
	assert.Equal(t, "Review", u.NodeType())
	assert.Equal(t, "urn:r", u.URN())
	assert.Contains(t, string(u.Raw()), "rating")
}

func TestDecodeNode_NotAnObject(t *testing.T) {
	_, err := DecodeNode(json.RawMessage(`"just a string"`))
	assert.Error(t, err)
}

func TestParseItemList(t *testing.T) {
	body := `{
		"identifier": " urn:cmp:org:1 ",
		"itemListElement": [
			{"@type": "ListItem", "position": 3, "item": {"@type": "ProductGroup", "@id": "urn:g"}},
			{"@type": "Product", "@id": "urn:p"},
			{"position": "7", "item": {"@type": "Product", "@id": "urn:q"}}
		]
	}`
	org, elements, err := ParseItemList([]byte(body))
	require.NoError(t, err)
	assert.Equal(t, "urn:cmp:org:1", org)
	require.Len(t, elements, 3)

	assert.Equal(t, 3, elements[0].Position)
	assert.Equal(t, TypeProductGroup, elements[0].Node.NodeType())
	assert.Equal(t, 0, elements[1].Position, "position defaults to 0")
	assert.Equal(t, "urn:p", elements[1].Node.URN(), "element without item is the node itself")
	assert.Equal(t, 7, elements[2].Position)
}

func TestParseItemList_ElementNotObject(t *testing.T) {
	_, _, err := ParseItemList([]byte(`{"identifier":{"value":"urn:o"},"itemListElement":[1]}`))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "itemListElement[0]")
}
