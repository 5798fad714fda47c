package vectorsync

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/Aleph-Alpha/discovery/v1/catalog"
)

func testView() catalog.ProductView {
	return catalog.ProductView{
		Product: catalog.Product{
			URN:            "urn:cmp:sku:book-1-hc",
			Name:           "The Go Programming Language",
			Description:    "Hardcover edition",
			ProductGroupID: uuid.MustParse("0b4f0c57-3d55-4b7e-9d0c-2f8e5f4c1a01"),
			VariantAttributes: datatypes.JSONMap{
				"format":    "hardcover",
				"signed":    false,
				"pages":     float64(380),
				"giftwrap":  true,
				"edition":   "",
				"condition": nil,
			},
		},
		Brand:    &catalog.Brand{Name: "Acme"},
		Category: &catalog.Category{Name: "Books"},
		Offers: []catalog.Offer{
			{Price: 20, Availability: "OUT_OF_STOCK"},
			{Price: 15, Availability: catalog.AvailabilityInStock},
		},
	}
}

func TestFromView(t *testing.T) {
	p := FromView(testView())

	assert.Equal(t, "urn:cmp:sku:book-1-hc", p.URN)
	assert.Equal(t, "Acme", p.BrandName)
	assert.Equal(t, "Books", p.CategoryName)
	assert.Equal(t, "0b4f0c57-3d55-4b7e-9d0c-2f8e5f4c1a01", p.ProductGroupID)
	require.NotNil(t, p.Price)
	assert.Equal(t, 15.0, *p.Price)
	assert.Equal(t, catalog.AvailabilityInStock, p.Availability)
}

func TestFromView_NoOffersOrRelations(t *testing.T) {
	v := testView()
	v.Brand, v.Category, v.Offers = nil, nil, nil

	p := FromView(v)
	assert.Nil(t, p.Price)
	assert.Empty(t, p.Availability)
	assert.Empty(t, p.BrandName)
	assert.Empty(t, p.CategoryName)
}

func TestFromView_FirstOfferAvailabilityWithoutStock(t *testing.T) {
	v := testView()
	v.Offers = []catalog.Offer{
		{Price: 9, Availability: "PRE_ORDER"},
		{Price: 8, Availability: "OUT_OF_STOCK"},
	}

	p := FromView(v)
	assert.Equal(t, "PRE_ORDER", p.Availability)
	assert.Equal(t, 8.0, *p.Price)
}

func TestCanonicalText(t *testing.T) {
	text := CanonicalText(FromView(testView()))

	assert.Equal(t,
		"The Go Programming Language Hardcover edition brand:Acme Books format:hardcover giftwrap:true pages:380 in stock",
		text)
}

func TestCanonicalText_IsDeterministic(t *testing.T) {
	p := FromView(testView())
	first := CanonicalText(p)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, CanonicalText(p))
	}
}

func TestCanonicalText_SkipsEmptyParts(t *testing.T) {
	text := CanonicalText(ProductForVector{Name: "Mug", Availability: "OUT_OF_STOCK"})
	assert.Equal(t, "Mug", text)
}

func TestMetadata(t *testing.T) {
	md := Metadata(FromView(testView()))

	assert.Equal(t, map[string]any{
		"price":            15.0,
		"availability":     catalog.AvailabilityInStock,
		"brand":            "Acme",
		"category":         "Books",
		"product_group_id": "0b4f0c57-3d55-4b7e-9d0c-2f8e5f4c1a01",
	}, md)

	md = Metadata(ProductForVector{})
	assert.Nil(t, md["price"])
}
