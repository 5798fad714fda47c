package ingest

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aleph-Alpha/discovery/v1/catalog"
)

const testOrgURN = "urn:cmp:org:acme"

type obj = map[string]interface{}

func shardOf(items ...obj) []byte {
	elements := make([]obj, 0, len(items))
	for i, item := range items {
		elements = append(elements, obj{"@type": "ListItem", "position": i + 1, "item": item})
	}
	body, _ := json.Marshal(obj{"@type": "ItemList", "itemListElement": elements})
	return body
}

func group(urn string, variants ...obj) obj {
	g := obj{
		"@type":          "ProductGroup",
		"@id":            urn,
		"name":           "Trail Shoe",
		"productGroupID": urn,
		"brand":          obj{"@type": "Brand", "name": "Acme"},
		"category":       "Shoes",
	}
	if len(variants) > 0 {
		g["hasVariant"] = variants
	}
	return g
}

func product(urn, groupURN string) obj {
	p := obj{"@type": "Product", "@id": urn, "name": "Trail Shoe 42"}
	if groupURN != "" {
		p["isVariantOf"] = obj{"@id": groupURN}
	}
	return p
}

func TestSplitShard_OneGroupPerList(t *testing.T) {
	shard := shardOf(
		group("urn:cmp:product:a"),
		product("urn:cmp:sku:a1", "urn:cmp:product:a"),
		group("urn:cmp:product:b"),
		product("urn:cmp:sku:b1", "urn:cmp:product:b"),
		product("urn:cmp:sku:b2", "urn:cmp:product:b"),
	)

	lists, skipped, err := SplitShard(testOrgURN, shard)
	require.NoError(t, err)
	assert.Zero(t, skipped)
	require.Len(t, lists, 2)

	orgURN, first, err := catalog.ParseItemList(lists[0])
	require.NoError(t, err)
	assert.Equal(t, testOrgURN, orgURN)
	require.Len(t, first, 2)
	assert.Equal(t, "urn:cmp:product:a", first[0].Node.URN())
	assert.Equal(t, 1, first[0].Position)

	_, second, err := catalog.ParseItemList(lists[1])
	require.NoError(t, err)
	require.Len(t, second, 3)
	assert.Equal(t, catalog.TypeProductGroup, second[0].Node.NodeType())
	assert.Equal(t, "urn:cmp:sku:b2", second[2].Node.URN())
}

func TestSplitShard_LiftsVariants(t *testing.T) {
	withRef := product("urn:cmp:sku:v2", "urn:cmp:product:other")
	shard := shardOf(group("urn:cmp:product:a", product("urn:cmp:sku:v1", ""), withRef))

	lists, _, err := SplitShard(testOrgURN, shard)
	require.NoError(t, err)
	require.Len(t, lists, 1)

	_, elements, err := catalog.ParseItemList(lists[0])
	require.NoError(t, err)
	require.Len(t, elements, 3)

	v1, ok := elements[1].Node.(*catalog.ProductNode)
	require.True(t, ok)
	assert.Equal(t, "urn:cmp:product:a", v1.GroupURN())
	v2 := elements[2].Node.(*catalog.ProductNode)
	assert.Equal(t, "urn:cmp:product:other", v2.GroupURN())
}

func TestSplitShard_ProductsBeforeAnyGroupShareAList(t *testing.T) {
	shard := shardOf(product("urn:cmp:sku:1", "urn:cmp:product:x"), product("urn:cmp:sku:2", "urn:cmp:product:x"))

	lists, _, err := SplitShard(testOrgURN, shard)
	require.NoError(t, err)
	require.Len(t, lists, 1)
	_, elements, err := catalog.ParseItemList(lists[0])
	require.NoError(t, err)
	assert.Len(t, elements, 2)
}

func TestSplitShard_SkipsUndecodableElements(t *testing.T) {
	shard := []byte(`{"itemListElement": [
		"not an object",
		{"position": 2, "item": [1, 2]},
		{"position": 3, "item": {"@type": "Product", "@id": "urn:cmp:sku:2", "isVariantOf": {"@id": "urn:cmp:product:x"}}}
	]}`)

	lists, skipped, err := SplitShard(testOrgURN, shard)
	require.NoError(t, err)
	assert.Equal(t, 2, skipped)
	require.Len(t, lists, 1)
}

func TestSplitShard_InvalidJSON(t *testing.T) {
	_, _, err := SplitShard(testOrgURN, []byte(`{`))
	assert.Error(t, err)
}

func TestParseFeedIndexes(t *testing.T) {
	t.Run("single index", func(t *testing.T) {
		got, err := ParseFeedIndexes([]byte(`{"@type": "ProductFeedIndex", "shards": [{"url": "shard-1.json"}, {"url": ""}]}`))
		require.NoError(t, err)
		require.Len(t, got, 1)

		urls, err := got[0].ShardURLs("https://feeds.example.com/acme/feed.json")
		require.NoError(t, err)
		assert.Equal(t, []string{"https://feeds.example.com/acme/shard-1.json"}, urls)
	})

	t.Run("list drops other types", func(t *testing.T) {
		got, err := ParseFeedIndexes([]byte(`[{"@type": "ProductFeedIndex"}, {"@type": "DataFeed"}]`))
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("no index", func(t *testing.T) {
		_, err := ParseFeedIndexes([]byte(`{"@type": "ItemList"}`))
		assert.Error(t, err)
	})
}
