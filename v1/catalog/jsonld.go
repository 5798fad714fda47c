package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// JSON-LD @type values recognized in an ItemList.
const (
	TypeProductGroup = "ProductGroup"
	TypeProduct      = "Product"
	TypeOffer        = "Offer"
	TypeBrand        = "Brand"
)

// Node is one decoded itemListElement entry. Unknown fields are never dropped:
// Raw returns the node exactly as submitted.
type Node interface {
	NodeType() string
	URN() string
	Raw() json.RawMessage
}

// Identifier carries the organization URN of an ItemList envelope.
type Identifier struct {
	Value string `json:"value"`
}

// UnmarshalJSON accepts both {"value": "..."} and a bare string.
func (i *Identifier) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		i.Value = s
		return nil
	}
	var obj struct {
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	i.Value = scalarString(obj.Value)
	return nil
}

// Element is a positioned node from itemListElement.
type Element struct {
	Position int
	Node     Node
}

// BrandRef is the brand of a ProductGroup: either a bare name or an object.
type BrandRef struct {
	ID   string `json:"@id,omitempty"`
	Name string `json:"name,omitempty"`
	Logo string `json:"logo,omitempty"`
	raw  json.RawMessage
}

func (b *BrandRef) UnmarshalJSON(data []byte) error {
	b.raw = append(json.RawMessage(nil), data...)
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		b.Name = s
		return nil
	}
	var obj struct {
		ID   string          `json:"@id"`
		Name string          `json:"name"`
		Logo json.RawMessage `json:"logo"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("brand must be a string or an object: %w", err)
	}
	b.ID, b.Name, b.Logo = obj.ID, obj.Name, logoURL(obj.Logo)
	return nil
}

func logoURL(data json.RawMessage) string {
	if s := scalarString(data); s != "" {
		return s
	}
	var obj struct {
		URL string `json:"url"`
	}
	_ = json.Unmarshal(data, &obj)
	return obj.URL
}

// CategoryRef is a category given as a name or as {"name": ...}.
type CategoryRef string

func (c *CategoryRef) UnmarshalJSON(data []byte) error {
	if s := scalarString(data); s != "" {
		*c = CategoryRef(s)
		return nil
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil
	}
	*c = CategoryRef(obj.Name)
	return nil
}

// StringList decodes a string or a list of strings.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		if one != "" {
			*l = StringList{one}
		}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("expected string or list of strings: %w", err)
	}
	*l = many
	return nil
}

// Reference is an {"@id": ...} back-reference.
type Reference struct {
	ID string `json:"@id"`
}

// PropertyValue is one additionalProperty entry.
type PropertyValue struct {
	Type  string      `json:"@type,omitempty"`
	Name  string      `json:"name"`
	Value interface{} `json:"value"`
}

type ProductGroupNode struct {
	ID             string      `json:"@id"`
	Name           string      `json:"name"`
	Description    string      `json:"description"`
	URL            string      `json:"url"`
	ProductGroupID string      `json:"productGroupID"`
	VariesBy       StringList  `json:"variesBy"`
	Brand          *BrandRef   `json:"brand"`
	Category       CategoryRef `json:"category"`
	raw            json.RawMessage
}

func (n *ProductGroupNode) NodeType() string     { return TypeProductGroup }
func (n *ProductGroupNode) URN() string          { return n.ID }
func (n *ProductGroupNode) Raw() json.RawMessage { return n.raw }

type ProductNode struct {
	ID                 string          `json:"@id"`
	Name               string          `json:"name"`
	Description        string          `json:"description"`
	SKU                string          `json:"sku"`
	URL                string          `json:"url"`
	Category           CategoryRef     `json:"category"`
	IsVariantOf        *Reference      `json:"isVariantOf"`
	AdditionalProperty []PropertyValue `json:"-"`
	Offers             []*OfferNode    `json:"-"`
	HasOffers          bool            `json:"-"`
	raw                json.RawMessage
}

func (n *ProductNode) NodeType() string     { return TypeProduct }
func (n *ProductNode) URN() string          { return n.ID }
func (n *ProductNode) Raw() json.RawMessage { return n.raw }

// GroupURN is the isVariantOf back-reference, or "" when absent.
func (n *ProductNode) GroupURN() string {
	if n.IsVariantOf == nil {
		return ""
	}
	return n.IsVariantOf.ID
}

// OfferNode keeps Price as the submitted token; ParsePrice decides whether
// it is usable.
type OfferNode struct {
	Price           json.RawMessage `json:"price"`
	PriceCurrency   string          `json:"priceCurrency"`
	Availability    string          `json:"availability"`
	InventoryLevel  json.RawMessage `json:"inventoryLevel"`
	PriceValidUntil string          `json:"priceValidUntil"`
	raw             json.RawMessage
}

func (n *OfferNode) NodeType() string     { return TypeOffer }
func (n *OfferNode) URN() string          { return "" }
func (n *OfferNode) Raw() json.RawMessage { return n.raw }

// UnknownNode carries any other @type through to the ledger.
type UnknownNode struct {
	Type string
	ID   string
	raw  json.RawMessage
}

func (n *UnknownNode) NodeType() string     { return n.Type }
func (n *UnknownNode) URN() string          { return n.ID }
func (n *UnknownNode) Raw() json.RawMessage { return n.raw }

// DecodeNode decodes a single JSON-LD object by its @type. Shape problems in
// optional fields are tolerated; only a non-object input is an error.
func DecodeNode(data json.RawMessage) (Node, error) {
	var head struct {
		Type json.RawMessage `json:"@type"`
		ID   string          `json:"@id"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("item must be a JSON object: %w", err)
	}
	raw := append(json.RawMessage(nil), data...)

	switch nodeType(head.Type) {
	case TypeProductGroup:
		n := &ProductGroupNode{raw: raw}
		if err := decodeLenient(data, n); err != nil {
			return nil, err
		}
		return n, nil
	case TypeProduct:
		return decodeProduct(data, raw)
	case TypeOffer:
		return decodeOffer(data)
	default:
		return &UnknownNode{Type: nodeType(head.Type), ID: head.ID, raw: raw}, nil
	}
}

func decodeProduct(data, raw json.RawMessage) (*ProductNode, error) {
	n := &ProductNode{raw: raw}
	if err := decodeLenient(data, n); err != nil {
		return nil, err
	}
	var extra struct {
		AdditionalProperty json.RawMessage `json:"additionalProperty"`
		Offers             json.RawMessage `json:"offers"`
	}
	if err := json.Unmarshal(data, &extra); err != nil {
		return nil, err
	}
	for _, item := range objectOrList(extra.AdditionalProperty) {
		var pv PropertyValue
		if err := json.Unmarshal(item, &pv); err != nil || pv.Name == "" || pv.Value == nil {
			continue
		}
		n.AdditionalProperty = append(n.AdditionalProperty, pv)
	}
	if len(extra.Offers) > 0 && !bytes.Equal(bytes.TrimSpace(extra.Offers), []byte("null")) {
		n.HasOffers = true
		for _, item := range objectOrList(extra.Offers) {
			offer, err := decodeOffer(item)
			if err != nil {
				continue
			}
			n.Offers = append(n.Offers, offer)
		}
	}
	return n, nil
}

func decodeOffer(data json.RawMessage) (*OfferNode, error) {
	n := &OfferNode{raw: append(json.RawMessage(nil), data...)}
	if err := decodeLenient(data, n); err != nil {
		return nil, err
	}
	return n, nil
}

// decodeLenient decodes data into v field by field so that one malformed
// optional field does not reject the whole node.
func decodeLenient(data json.RawMessage, v interface{}) error {
	if err := json.Unmarshal(data, v); err == nil {
		return nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("item must be a JSON object: %w", err)
	}
	for key, value := range fields {
		single, err := json.Marshal(map[string]json.RawMessage{key: value})
		if err != nil {
			continue
		}
		_ = json.Unmarshal(single, v)
	}
	return nil
}

// ParseItemList decodes the envelope and returns the organization URN and the
// positioned nodes. Envelope problems are returned as *ValidationError.
func ParseItemList(body []byte) (string, []Element, error) {
	var env struct {
		Identifier      *Identifier     `json:"identifier"`
		ItemListElement json.RawMessage `json:"itemListElement"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return "", nil, NewValidationError("invalid JSON body: %v", err)
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(env.ItemListElement, &elements); err != nil || len(elements) == 0 {
		return "", nil, NewValidationError("itemListElement must be a non-empty list")
	}
	if env.Identifier == nil || strings.TrimSpace(env.Identifier.Value) == "" {
		return "", nil, NewValidationError("identifier.value (organization_id) is required")
	}

	out := make([]Element, 0, len(elements))
	for i, el := range elements {
		var wrapper struct {
			Position json.RawMessage `json:"position"`
			Item     json.RawMessage `json:"item"`
		}
		if err := json.Unmarshal(el, &wrapper); err != nil {
			return "", nil, NewValidationError("itemListElement[%d] must be an object", i)
		}
		payload := wrapper.Item
		if len(payload) == 0 || bytes.Equal(bytes.TrimSpace(payload), []byte("null")) {
			payload = el
		}
		node, err := DecodeNode(payload)
		if err != nil {
			return "", nil, NewValidationError("itemListElement[%d]: %v", i, err)
		}
		out = append(out, Element{Position: position(wrapper.Position), Node: node})
	}
	return strings.TrimSpace(env.Identifier.Value), out, nil
}

// nodeType reads @type as a string or the first recognized entry of a list.
func nodeType(data json.RawMessage) string {
	if s := scalarString(data); s != "" {
		return s
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil || len(many) == 0 {
		return ""
	}
	for _, t := range many {
		switch t {
		case TypeProductGroup, TypeProduct, TypeOffer:
			return t
		}
	}
	return many[0]
}

func position(data json.RawMessage) int {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		return int(f)
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		var p int
		if _, err := fmt.Sscanf(strings.TrimSpace(s), "%d", &p); err == nil {
			return p
		}
	}
	return 0
}

// objectOrList normalizes an object or a list of objects to a list.
func objectOrList(data json.RawMessage) []json.RawMessage {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	if trimmed[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil
		}
		return items
	}
	if trimmed[0] == '{' {
		return []json.RawMessage{trimmed}
	}
	return nil
}

func scalarString(data json.RawMessage) string {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}
