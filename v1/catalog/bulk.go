package catalog

import (
	"context"
	"fmt"
	"strings"
)

// bulkEligible reports whether products can be written with one multi-row
// upsert: every node belongs to batch and carries no category of its own.
func bulkEligible(products []Element, batch *ResolvedGroup, threshold int) bool {
	if batch == nil || batch.Brand == nil || batch.Category == nil || threshold <= 0 || len(products) < threshold {
		return false
	}
	for _, el := range products {
		node := el.Node.(*ProductNode)
		if ref := strings.TrimSpace(node.GroupURN()); ref != "" && ref != batch.Group.URN {
			return false
		}
		if node.Category != "" && string(node.Category) != batch.Category.Name {
			return false
		}
	}
	return true
}

// ReconcileBulk upserts products sharing batch's brand and category in one
// statement, then writes offers in a second pass keyed by URN. It returns one
// result per element, in input order. When a URN repeats, the last node wins.
//
// st must be bound to a transaction. A failed statement or offer pass returns
// an error and the caller rolls the whole batch back; only rejected nodes
// come back as per-item failures.
func (r *ProductReconciler) ReconcileBulk(ctx context.Context, st Store, products []Element, batch *ResolvedGroup) ([]ItemResult, error) {
	results := make([]ItemResult, len(products))
	m := &membership{
		group:               batch.Group,
		brand:               batch.Brand,
		category:            batch.Category,
		fallbackDescription: batch.Group.Description,
	}

	rows := make([]*Product, 0, len(products))
	rowIndex := make(map[string]int, len(products))
	for i, el := range products {
		node := el.Node.(*ProductNode)
		if strings.TrimSpace(node.ID) == "" {
			results[i] = failure(el, errMissingID)
			continue
		}
		row := buildProduct(node, m)
		if j, seen := rowIndex[row.URN]; seen {
			rows[j] = row
			continue
		}
		rowIndex[row.URN] = len(rows)
		rows = append(rows, row)
	}

	ids, err := st.SaveProducts(ctx, rows)
	if err != nil {
		return nil, fmt.Errorf("bulk product upsert failed: %w", err)
	}

	for i, el := range products {
		if results[i].Err != nil {
			continue
		}
		node := el.Node.(*ProductNode)
		id, ok := ids[strings.TrimSpace(node.ID)]
		if !ok {
			return nil, fmt.Errorf("product %s was not returned by the bulk upsert", node.ID)
		}
		if node.HasOffers {
			_, skipped, err := processOffers(ctx, st, id, batch.Brand.OrganizationID, node.Offers)
			if err != nil {
				return nil, fmt.Errorf("save offers for %s: %w", node.ID, err)
			}
			if skipped > 0 {
				r.log.WarnWithContext(ctx, "skipped offers without a usable price", nil, map[string]interface{}{
					"urn":     node.ID,
					"skipped": skipped,
				})
			}
		}
		results[i] = success(el, id.String())
	}
	return results, nil
}
