package catalog

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AvailabilityInStock is the normalized form of schema.org InStock.
const AvailabilityInStock = "IN_STOCK"

// ParsePrice reads a JSON number or numeric string. ok is false for a
// missing, empty or non-numeric price.
func ParsePrice(raw json.RawMessage) (price float64, ok bool) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return 0, false
	}
	if err := json.Unmarshal(raw, &price); err == nil {
		return price, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, false
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return price, true
}

// NormalizeAvailability turns "https://schema.org/InStock" or "InStock"
// into "IN_STOCK". Values already in upper snake case are kept.
func NormalizeAvailability(value string) string {
	value = strings.TrimSpace(value)
	if i := strings.LastIndexAny(value, "/:"); i >= 0 {
		value = value[i+1:]
	}
	if value == "" {
		return ""
	}
	var b strings.Builder
	runes := []rune(value)
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) && unicode.IsLower(runes[i-1]) {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

func parseInventory(raw json.RawMessage) *int {
	if v, ok := ParsePrice(raw); ok {
		n := int(v)
		return &n
	}
	var q struct {
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(raw, &q); err != nil || len(q.Value) == 0 {
		return nil
	}
	if v, ok := ParsePrice(q.Value); ok {
		n := int(v)
		return &n
	}
	return nil
}

func parseValidUntil(value string) *time.Time {
	value = strings.TrimSpace(value)
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t
		}
	}
	return nil
}

// BuildOffers converts offer nodes into rows, skipping nodes whose price
// cannot be parsed. The second return value counts skipped nodes.
func BuildOffers(nodes []*OfferNode) ([]Offer, int) {
	offers := make([]Offer, 0, len(nodes))
	skipped := 0
	for _, n := range nodes {
		price, ok := ParsePrice(n.Price)
		if !ok {
			skipped++
			continue
		}
		offers = append(offers, Offer{
			Price:           price,
			PriceCurrency:   n.PriceCurrency,
			Availability:    NormalizeAvailability(n.Availability),
			InventoryLevel:  parseInventory(n.InventoryLevel),
			PriceValidUntil: parseValidUntil(n.PriceValidUntil),
			RawData:         datatypes.JSON(n.Raw()),
		})
	}
	return offers, skipped
}

// processOffers replaces the seller's offers on a product. Nothing is
// written when no offer has a usable price.
func processOffers(ctx context.Context, st Store, productID, sellerID uuid.UUID, nodes []*OfferNode) (written, skipped int, err error) {
	offers, skipped := BuildOffers(nodes)
	if len(offers) == 0 {
		return 0, skipped, nil
	}
	if err := st.ReplaceOffers(ctx, productID, sellerID, offers); err != nil {
		return 0, skipped, err
	}
	return len(offers), skipped, nil
}
