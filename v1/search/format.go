package search

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/Aleph-Alpha/discovery/v1/catalog"
)

// NodeVersion is reported in every search response.
const NodeVersion = "v1.0.0"

// ItemList is the search response body.
type ItemList struct {
	ItemListElement []ListItem `json:"itemListElement"`
	TotalResults    int        `json:"cmp_totalResults"`
	NodeVersion     string     `json:"cmp_nodeVersion"`
	DatePublished   string     `json:"datePublished"`
}

type ListItem struct {
	Type     string        `json:"@type"`
	Position int           `json:"position"`
	Item     SearchProduct `json:"item"`
}

type SearchProduct struct {
	Type               string                  `json:"@type"`
	ID                 string                  `json:"@id"`
	Name               string                  `json:"name"`
	Description        string                  `json:"description"`
	Category           *string                 `json:"category"`
	URL                string                  `json:"url"`
	SKU                string                  `json:"sku,omitempty"`
	SearchScore        float64                 `json:"cmp:searchScore"`
	Brand              *BrandRef               `json:"brand,omitempty"`
	Image              []ImageObject           `json:"image,omitempty"`
	Media              []MediaObject           `json:"@cmp:media,omitempty"`
	Offers             []json.RawMessage       `json:"offers,omitempty"`
	IsVariantOf        *GroupRef               `json:"isVariantOf,omitempty"`
	AdditionalProperty []catalog.PropertyValue `json:"additionalProperty,omitempty"`
}

type BrandRef struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

type GroupRef struct {
	Type string `json:"@type"`
	ID   string `json:"@id"`
	Name string `json:"name"`
}

type ImageObject struct {
	Type           string      `json:"@type"`
	URL            string      `json:"url"`
	Width          interface{} `json:"width,omitempty"`
	Height         interface{} `json:"height,omitempty"`
	EncodingFormat string      `json:"encodingFormat,omitempty"`
}

type MediaObject struct {
	Type           string `json:"@type"`
	URL            string `json:"url"`
	EncodingFormat string `json:"encodingFormat,omitempty"`
}

// Format renders fused hits in rank order. Hits without a stored product
// (an index entry that outlived its row) are dropped.
func Format(hits []Hit, details map[string]*catalog.ProductDetail, now time.Time) ItemList {
	list := ItemList{
		ItemListElement: []ListItem{},
		NodeVersion:     NodeVersion,
		DatePublished:   now.UTC().Format(time.RFC3339),
	}
	for _, h := range hits {
		d, ok := details[h.URN]
		if !ok {
			continue
		}
		list.ItemListElement = append(list.ItemListElement, ListItem{
			Type:     "ListItem",
			Position: len(list.ItemListElement) + 1,
			Item:     formatProduct(d, h.Score),
		})
	}
	list.TotalResults = len(list.ItemListElement)
	return list
}

func formatProduct(d *catalog.ProductDetail, score float64) SearchProduct {
	p := SearchProduct{
		Type:               catalog.TypeProduct,
		ID:                 d.ID,
		Name:               d.Name,
		Description:        d.Description,
		Category:           d.Category,
		URL:                d.URL,
		SKU:                d.SKU,
		SearchScore:        score,
		Offers:             d.Offers,
		AdditionalProperty: d.AdditionalProperty,
	}
	if d.Brand != nil && d.Brand.Name != "" {
		p.Brand = &BrandRef{Type: "Brand", Name: d.Brand.Name}
	}
	if d.Group != nil {
		p.IsVariantOf = &GroupRef{Type: catalog.TypeProductGroup, ID: d.Group.URN, Name: d.Group.Name}
	}
	p.Image, p.Media = splitMedia(d.Media)
	return p
}

type mediaEntry struct {
	Type           string      `json:"@type"`
	AltType        string      `json:"type"`
	URL            string      `json:"url"`
	ContentURL     string      `json:"contentUrl"`
	Width          interface{} `json:"width"`
	Height         interface{} `json:"height"`
	EncodingFormat string      `json:"encodingFormat"`
}

// splitMedia separates images from other media. An entry is an image when
// its encoding format is image/* or, lacking a format, its type is
// ImageObject or absent. Entries without a URL are skipped.
func splitMedia(raw []json.RawMessage) ([]ImageObject, []MediaObject) {
	var images []ImageObject
	var media []MediaObject
	for _, r := range raw {
		var m mediaEntry
		if err := json.Unmarshal(r, &m); err != nil {
			continue
		}
		url := m.URL
		if url == "" {
			url = m.ContentURL
		}
		if url == "" {
			continue
		}
		typ := m.Type
		if typ == "" {
			typ = m.AltType
		}
		format := strings.ToLower(m.EncodingFormat)

		isImage := strings.HasPrefix(format, "image/") ||
			(format == "" && (typ == "" || typ == "ImageObject"))
		if isImage {
			images = append(images, ImageObject{
				Type:           "ImageObject",
				URL:            url,
				Width:          m.Width,
				Height:         m.Height,
				EncodingFormat: m.EncodingFormat,
			})
			continue
		}
		if typ == "" || typ == "ImageObject" {
			typ = "VideoObject"
		}
		media = append(media, MediaObject{Type: typ, URL: url, EncodingFormat: m.EncodingFormat})
	}
	return images, media
}
