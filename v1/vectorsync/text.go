package vectorsync

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Aleph-Alpha/discovery/v1/catalog"
)

// ProductForVector is the flattened view of a product used to build index
// records.
type ProductForVector struct {
	URN            string
	Name           string
	Description    string
	BrandName      string
	CategoryName   string
	ProductGroupID string
	VariantAttrs   map[string]interface{}

	// Price is the lowest offer price; nil without offers.
	Price        *float64
	Availability string
}

// FromView flattens a catalog product. Availability is IN_STOCK when any
// offer is in stock, otherwise the first offer's value.
func FromView(v catalog.ProductView) ProductForVector {
	p := ProductForVector{
		URN:            v.Product.URN,
		Name:           v.Product.Name,
		Description:    v.Product.Description,
		ProductGroupID: v.Product.ProductGroupID.String(),
		VariantAttrs:   v.Product.VariantAttributes,
	}
	if v.Brand != nil {
		p.BrandName = v.Brand.Name
	}
	if v.Category != nil {
		p.CategoryName = v.Category.Name
	}

	for i, o := range v.Offers {
		if p.Price == nil || o.Price < *p.Price {
			price := o.Price
			p.Price = &price
		}
		if i == 0 || o.Availability == catalog.AvailabilityInStock {
			if p.Availability != catalog.AvailabilityInStock {
				p.Availability = o.Availability
			}
		}
	}
	return p
}

// CanonicalText is the string fed to both embedders. Token order is fixed:
// name, description, brand:<brand>, category, key:value per non-empty
// variant attribute (sorted by key), then "in stock".
func CanonicalText(p ProductForVector) string {
	parts := make([]string, 0, 6+len(p.VariantAttrs))
	if p.Name != "" {
		parts = append(parts, p.Name)
	}
	if p.Description != "" {
		parts = append(parts, p.Description)
	}
	if p.BrandName != "" {
		parts = append(parts, "brand:"+p.BrandName)
	}
	if p.CategoryName != "" {
		parts = append(parts, p.CategoryName)
	}

	keys := make([]string, 0, len(p.VariantAttrs))
	for k := range p.VariantAttrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if v := attrString(p.VariantAttrs[k]); v != "" {
			parts = append(parts, k+":"+v)
		}
	}

	if p.Availability == catalog.AvailabilityInStock {
		parts = append(parts, "in stock")
	}
	return strings.Join(parts, " ")
}

// Metadata is stored as the point payload next to the vector.
func Metadata(p ProductForVector) map[string]any {
	var price any
	if p.Price != nil {
		price = *p.Price
	}
	return map[string]any{
		"price":            price,
		"availability":     p.Availability,
		"brand":            p.BrandName,
		"category":         p.CategoryName,
		"product_group_id": p.ProductGroupID,
	}
}

func attrString(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		if !val {
			return ""
		}
		return "true"
	case float64:
		if val == 0 {
			return ""
		}
		return fmt.Sprint(val)
	default:
		return fmt.Sprint(val)
	}
}
