package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/Aleph-Alpha/discovery/v1/logger"
)

func offerRow(raw string) Offer {
	price, _ := ParsePrice(json.RawMessage(raw))
	return Offer{
		ID:            uuid.New(),
		Price:         price,
		PriceCurrency: "EUR",
		RawData:       datatypes.JSON(`{"@type":"Offer","price":` + raw + `,"priceCurrency":"EUR"}`),
	}
}

func TestBuildDetail_MinimumPrice(t *testing.T) {
	v := ProductView{
		Product: Product{URN: "urn:cmp:sku:1", Name: "Paperback"},
		Offers:  []Offer{offerRow(`"20.00"`), offerRow(`"15.00"`), offerRow(`"ask"`)},
	}
	d, skipped := BuildDetail(v)

	require.NotNil(t, d.Price)
	assert.Equal(t, 15.0, *d.Price)
	require.NotNil(t, d.PriceCurrency)
	assert.Equal(t, "EUR", *d.PriceCurrency)
	assert.Len(t, d.Offers, 2)
	assert.Equal(t, 1, skipped)
}

func TestBuildDetail_NoValidOffers(t *testing.T) {
	d, _ := BuildDetail(ProductView{Product: Product{URN: "urn:cmp:sku:1"}})

	assert.Nil(t, d.Price)
	assert.NotNil(t, d.Offers)
	assert.Empty(t, d.Offers)
	assert.Nil(t, d.Group)
	assert.Nil(t, d.Brand)
	assert.Nil(t, d.Category)

	body, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"price":null`)
	assert.Contains(t, string(body), `"offers":[]`)
	assert.Contains(t, string(body), `"group":null`)
}

func TestBuildDetail_MediaUnion(t *testing.T) {
	group := &ProductGroup{
		ID:       uuid.New(),
		URN:      testGroupURN,
		Name:     "Book",
		Category: "Books",
		RawData:  datatypes.JSON(`{"@cmp:media":{"@type":"ImageObject","url":"https://img/group.jpg"}}`),
	}

	t.Run("group only", func(t *testing.T) {
		d, _ := BuildDetail(ProductView{
			Product: Product{URN: "urn:cmp:sku:1", RawData: datatypes.JSON(`{"@type":"Product"}`)},
			Group:   group,
		})
		require.Len(t, d.Media, 1)
		assert.Contains(t, string(d.Media[0]), "group.jpg")
		require.NotNil(t, d.Group)
		assert.Equal(t, GroupSummary{ID: group.ID.String(), URN: testGroupURN, Name: "Book", Category: "Books"}, *d.Group)
	})

	t.Run("product and group", func(t *testing.T) {
		d, _ := BuildDetail(ProductView{
			Product: Product{URN: "urn:cmp:sku:1", RawData: datatypes.JSON(`{"@cmp:media":[{"url":"a.jpg"},{"url":"b.jpg"}]}`)},
			Group:   group,
		})
		require.Len(t, d.Media, 3)
		assert.Contains(t, string(d.Media[0]), "a.jpg")
		assert.Contains(t, string(d.Media[2]), "group.jpg")
	})

	t.Run("malformed entries skipped", func(t *testing.T) {
		d, skipped := BuildDetail(ProductView{
			Product: Product{URN: "urn:cmp:sku:1", RawData: datatypes.JSON(`{"@cmp:media":[{"url":"a.jpg"},"oops",7]}`)},
			Group:   &ProductGroup{ID: uuid.New(), RawData: datatypes.JSON(`{"@cmp:media":"not-media"}`)},
		})
		require.Len(t, d.Media, 1)
		assert.Equal(t, 3, skipped)
	})
}

func TestBuildDetail_AdditionalProperty(t *testing.T) {
	d, _ := BuildDetail(ProductView{Product: Product{
		URN:                  "urn:cmp:sku:1",
		AdditionalProperties: datatypes.JSON(`[{"@type":"PropertyValue","name":"format","value":"paperback"}]`),
	}})
	require.Len(t, d.AdditionalProperty, 1)
	assert.Equal(t, "format", d.AdditionalProperty[0].Name)
	assert.Equal(t, "paperback", d.AdditionalProperty[0].Value)
}

func TestProductDetails_RoundTrip(t *testing.T) {
	store := newMemStore(testOrg())
	svc := NewService(DefaultConfig(), store, logger.NewNop(), nil, nil, nil)

	p := productNode("urn:cmp:sku:1")
	p["offers"] = []obj{
		{"@type": "Offer", "price": "20.00", "priceCurrency": "EUR"},
		{"@type": "Offer", "price": "15.00", "priceCurrency": "EUR"},
	}
	_, err := svc.UpsertItemList(context.Background(), envelope(testOrgURN, groupNode(), p))
	require.NoError(t, err)

	d, err := svc.ProductDetails(context.Background(), "urn:cmp:sku:1")
	require.NoError(t, err)
	require.NotNil(t, d.Price)
	assert.Equal(t, 15.0, *d.Price)
	assert.Len(t, d.Offers, 2)
	assert.Equal(t, "Acme", d.Brand.Name)
	assert.Equal(t, "Books", *d.Category)
	assert.Len(t, d.Media, 1, "media comes from the group")
	require.NotNil(t, d.Group)
	assert.Equal(t, testGroupURN, d.Group.URN)

	_, err = svc.ProductDetails(context.Background(), "urn:cmp:sku:missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestProductsByURN(t *testing.T) {
	store := newMemStore(testOrg())
	svc := NewService(DefaultConfig(), store, logger.NewNop(), nil, nil, nil)
	_, err := svc.UpsertItemList(context.Background(),
		envelope(testOrgURN, groupNode(), productNode("urn:cmp:sku:1"), productNode("urn:cmp:sku:2")))
	require.NoError(t, err)

	got, err := svc.ProductsByURN(context.Background(), []string{"urn:cmp:sku:2", "urn:cmp:sku:nope"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "urn:cmp:sku:2", got["urn:cmp:sku:2"].ID)
}
