package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
)

// mediaKey is the extension field holding product and group media.
const mediaKey = "@cmp:media"

type BrandSummary struct {
	Name string `json:"name"`
}

type GroupSummary struct {
	ID       string `json:"id"`
	URN      string `json:"urn"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// ProductDetail is the read model of one product.
type ProductDetail struct {
	Type               string            `json:"@type"`
	ID                 string            `json:"@id"`
	Name               string            `json:"name"`
	Description        string            `json:"description"`
	SKU                string            `json:"sku"`
	URL                string            `json:"url"`
	Brand              *BrandSummary     `json:"brand"`
	Category           *string           `json:"category"`
	Price              *float64          `json:"price"`
	PriceCurrency      *string           `json:"priceCurrency"`
	Offers             []json.RawMessage `json:"offers"`
	Media              []json.RawMessage `json:"media"`
	AdditionalProperty []PropertyValue   `json:"additionalProperty"`
	Group              *GroupSummary     `json:"group"`
}

// ProductDetails loads the product with this URN. Unknown URNs return
// ErrNotFound.
func (s *Service) ProductDetails(ctx context.Context, urn string) (*ProductDetail, error) {
	views, err := s.store.Products(ctx, ProductQuery{URNs: []string{urn}, Limit: 1})
	if err != nil {
		return nil, fmt.Errorf("load product %s: %w", urn, err)
	}
	if len(views) == 0 {
		return nil, ErrNotFound
	}
	detail, skipped := BuildDetail(views[0])
	if skipped > 0 {
		s.log.WarnWithContext(ctx, "skipped malformed offer or media entries", nil, map[string]interface{}{
			"urn":     urn,
			"skipped": skipped,
		})
	}
	return detail, nil
}

// ProductsByURN returns details for the URNs that exist, keyed by URN.
func (s *Service) ProductsByURN(ctx context.Context, urns []string) (map[string]*ProductDetail, error) {
	out := make(map[string]*ProductDetail, len(urns))
	if len(urns) == 0 {
		return out, nil
	}
	views, err := s.store.Products(ctx, ProductQuery{URNs: urns})
	if err != nil {
		return nil, err
	}
	for _, v := range views {
		detail, _ := BuildDetail(v)
		out[v.Product.URN] = detail
	}
	return out, nil
}

// BuildDetail assembles the read model. The second result counts offers and
// media entries dropped because they could not be parsed.
func BuildDetail(v ProductView) (*ProductDetail, int) {
	p := v.Product
	d := &ProductDetail{
		Type:               TypeProduct,
		ID:                 p.URN,
		Name:               p.Name,
		Description:        p.Description,
		SKU:                p.SKU,
		URL:                p.URL,
		Offers:             []json.RawMessage{},
		AdditionalProperty: []PropertyValue{},
	}
	if v.Brand != nil {
		d.Brand = &BrandSummary{Name: v.Brand.Name}
	}
	if v.Category != nil {
		name := v.Category.Name
		d.Category = &name
	}

	skipped := 0
	for _, o := range v.Offers {
		price, raw, ok := offerPrice(o)
		if !ok {
			skipped++
			continue
		}
		d.Offers = append(d.Offers, raw)
		if d.Price == nil || price < *d.Price {
			lowest, currency := price, o.PriceCurrency
			d.Price = &lowest
			d.PriceCurrency = &currency
		}
	}

	productMedia, badProduct := MediaOf(p.RawData)
	d.Media = productMedia
	skipped += badProduct
	if v.Group != nil {
		groupMedia, badGroup := MediaOf(v.Group.RawData)
		d.Media = append(d.Media, groupMedia...)
		skipped += badGroup
		d.Group = &GroupSummary{
			ID:       v.Group.ID.String(),
			URN:      v.Group.URN,
			Name:     v.Group.Name,
			Category: v.Group.Category,
		}
	}

	if len(p.AdditionalProperties) > 0 {
		var props []PropertyValue
		if err := json.Unmarshal(p.AdditionalProperties, &props); err == nil {
			d.AdditionalProperty = props
		}
	}
	return d, skipped
}

// offerPrice prefers the price in the submitted JSON-LD over the stored
// column, so read-back matches what the seller published.
func offerPrice(o Offer) (float64, json.RawMessage, bool) {
	if len(o.RawData) == 0 {
		raw, err := json.Marshal(map[string]interface{}{
			"@type":         TypeOffer,
			"price":         o.Price,
			"priceCurrency": o.PriceCurrency,
		})
		return o.Price, raw, err == nil
	}
	var fields struct {
		Price json.RawMessage `json:"price"`
	}
	if err := json.Unmarshal(o.RawData, &fields); err != nil {
		return 0, nil, false
	}
	price, ok := ParsePrice(fields.Price)
	return price, json.RawMessage(o.RawData), ok
}

// MediaOf extracts the @cmp:media entries of a stored node. The field may be
// one object or a list; entries that are not objects are counted as bad.
func MediaOf(raw datatypes.JSON) ([]json.RawMessage, int) {
	media := []json.RawMessage{}
	if len(raw) == 0 {
		return media, 0
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return media, 1
	}
	value, ok := fields[mediaKey]
	if !ok {
		return media, 0
	}

	trimmed := bytes.TrimSpace(value)
	switch {
	case len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")):
		return media, 0
	case trimmed[0] == '{':
		return append(media, trimmed), 0
	case trimmed[0] == '[':
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return media, 1
		}
		bad := 0
		for _, item := range items {
			item = bytes.TrimSpace(item)
			if len(item) == 0 || item[0] != '{' {
				bad++
				continue
			}
			media = append(media, item)
		}
		return media, bad
	default:
		return media, 1
	}
}
