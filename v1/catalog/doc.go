// Package catalog ingests JSON-LD product catalogs and persists them as an
// organization -> brand -> category -> product group -> product -> offer graph.
//
// # Upsert flow
//
// Service.UpsertItemList accepts an ItemList envelope:
//
//	{
//	  "identifier": {"value": "urn:cmp:org:6794c67d-..."},
//	  "itemListElement": [
//	    {"position": 0, "item": {"@type": "ProductGroup", "@id": "urn:cmp:product:1", "brand": {"name": "Acme"}, ...}},
//	    {"position": 1, "item": {"@type": "Product", "@id": "urn:cmp:sku:1", "isVariantOf": {"@id": "urn:cmp:product:1"}, ...}}
//	  ]
//	}
//
// The organization is resolved first, then the optional ProductGroup, then
// each Product independently. Envelope and group failures abort the request
// with a *ValidationError or *FatalError; product failures are recorded in
// the returned Ledger and processing continues with the next item.
//
// Every entity is keyed by its URN, so submitting the same list twice
// updates rows in place.
//
// # Read path
//
// Service.ProductDetails assembles the detail view served by the HTTP API,
// including the lowest valid offer price and the union of product and group
// media.
package catalog
