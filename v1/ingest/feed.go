package ingest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Aleph-Alpha/discovery/v1/catalog"
)

// FeedIndex lists the shards of one organization's product feed.
type FeedIndex struct {
	Type   string `json:"@type"`
	Shards []struct {
		URL string `json:"url"`
	} `json:"shards"`
}

// ShardURLs returns the non-empty shard URLs resolved against base.
func (fi FeedIndex) ShardURLs(base string) ([]string, error) {
	out := make([]string, 0, len(fi.Shards))
	for _, s := range fi.Shards {
		if strings.TrimSpace(s.URL) == "" {
			continue
		}
		u, err := Resolve(base, s.URL)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}

// ParseFeedIndexes accepts one ProductFeedIndex or a list of them. Entries
// of another @type are dropped.
func ParseFeedIndexes(body []byte) ([]FeedIndex, error) {
	trimmed := bytes.TrimSpace(body)
	var all []FeedIndex
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &all); err != nil {
			return nil, fmt.Errorf("decode feed index: %w", err)
		}
	} else {
		var one FeedIndex
		if err := json.Unmarshal(trimmed, &one); err != nil {
			return nil, fmt.Errorf("decode feed index: %w", err)
		}
		all = []FeedIndex{one}
	}

	out := all[:0]
	for _, fi := range all {
		if fi.Type == "ProductFeedIndex" {
			out = append(out, fi)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("feed index holds no ProductFeedIndex")
	}
	return out, nil
}

type listItem struct {
	Position json.RawMessage `json:"position,omitempty"`
	Item     json.RawMessage `json:"item"`
}

// SplitShard turns a feed shard into ItemList bodies for organizationURN.
// Each ProductGroup opens a new list so that no list carries two groups;
// Products stay in the list of the group that precedes them. Variants under
// hasVariant follow their group with isVariantOf set. Elements that do not
// decode are counted in skipped.
func SplitShard(organizationURN string, shard []byte) (lists [][]byte, skipped int, err error) {
	var doc struct {
		ItemListElement []json.RawMessage `json:"itemListElement"`
	}
	if err := json.Unmarshal(shard, &doc); err != nil {
		return nil, 0, fmt.Errorf("decode shard: %w", err)
	}

	var batches [][]listItem
	appendItem := func(it listItem) {
		if len(batches) == 0 {
			batches = append(batches, nil)
		}
		batches[len(batches)-1] = append(batches[len(batches)-1], it)
	}

	for _, el := range doc.ItemListElement {
		var it listItem
		if err := json.Unmarshal(el, &it); err != nil {
			skipped++
			continue
		}
		if len(it.Item) == 0 || bytes.Equal(bytes.TrimSpace(it.Item), []byte("null")) {
			it.Item = el
		}
		node, err := catalog.DecodeNode(it.Item)
		if err != nil {
			skipped++
			continue
		}
		group, ok := node.(*catalog.ProductGroupNode)
		if !ok {
			appendItem(it)
			continue
		}

		batches = append(batches, []listItem{it})
		variants, err := liftVariants(it.Item, group.URN())
		if err != nil {
			skipped++
			continue
		}
		for _, v := range variants {
			appendItem(listItem{Position: it.Position, Item: v})
		}
	}

	for _, items := range batches {
		body, err := json.Marshal(map[string]interface{}{
			"@type":           "ItemList",
			"identifier":      map[string]string{"value": organizationURN},
			"itemListElement": items,
		})
		if err != nil {
			return nil, skipped, err
		}
		lists = append(lists, body)
	}
	return lists, skipped, nil
}

// liftVariants returns the hasVariant entries of a group, each pointing at
// groupURN unless it already names a group.
func liftVariants(group json.RawMessage, groupURN string) ([]json.RawMessage, error) {
	var g struct {
		HasVariant json.RawMessage `json:"hasVariant"`
	}
	if err := json.Unmarshal(group, &g); err != nil || len(g.HasVariant) == 0 {
		return nil, err
	}

	var variants []map[string]json.RawMessage
	if err := json.Unmarshal(g.HasVariant, &variants); err != nil {
		var one map[string]json.RawMessage
		if err := json.Unmarshal(g.HasVariant, &one); err != nil {
			return nil, fmt.Errorf("decode hasVariant: %w", err)
		}
		variants = []map[string]json.RawMessage{one}
	}

	ref, err := json.Marshal(map[string]string{"@id": groupURN})
	if err != nil {
		return nil, err
	}
	out := make([]json.RawMessage, 0, len(variants))
	for _, v := range variants {
		if _, ok := v["isVariantOf"]; !ok && groupURN != "" {
			v["isVariantOf"] = ref
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		out = append(out, raw)
	}
	return out, nil
}
