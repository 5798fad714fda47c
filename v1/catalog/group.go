package catalog

import (
	"context"
	"strings"

	"gorm.io/datatypes"

	"github.com/Aleph-Alpha/discovery/v1/logger"
)

// ResolvedGroup is a persisted group with the references its products inherit.
type ResolvedGroup struct {
	Group    *ProductGroup
	Brand    *Brand
	Category *Category
}

// GroupReconciler upserts the ProductGroup of a request.
type GroupReconciler struct {
	log logger.Logger
}

func NewGroupReconciler(log logger.Logger) *GroupReconciler {
	return &GroupReconciler{log: log}
}

// Reconcile validates node, resolves its brand and category, and upserts it
// by URN. Missing required fields are reported as *ValidationError.
func (g *GroupReconciler) Reconcile(ctx context.Context, st Store, node *ProductGroupNode, org *Organization) (*ResolvedGroup, error) {
	urn := strings.TrimSpace(node.ID)
	if urn == "" {
		return nil, NewValidationError("ProductGroup missing @id")
	}
	if node.Brand == nil || strings.TrimSpace(node.Brand.Name) == "" {
		return nil, NewValidationError("ProductGroup missing brand dict or brand name")
	}
	if len(node.VariesBy) == 0 {
		g.log.WarnWithContext(ctx, "product group is missing variesBy", nil, map[string]interface{}{"urn": urn})
	}

	resolver := NewResolver(st)
	brand, err := resolver.Brand(ctx, node.Brand.Name, org.ID)
	if err != nil {
		return nil, err
	}
	category, err := resolver.Category(ctx, string(node.Category))
	if err != nil {
		return nil, err
	}

	group := &ProductGroup{
		URN:            urn,
		Name:           node.Name,
		Description:    node.Description,
		URL:            node.URL,
		Category:       category.Name,
		ProductGroupID: node.ProductGroupID,
		VariesBy:       []string(node.VariesBy),
		BrandID:        brand.ID,
		CategoryID:     category.ID,
		OrganizationID: org.ID,
		RawData:        datatypes.JSON(node.Raw()),
	}
	if err := st.SaveGroup(ctx, group); err != nil {
		return nil, err
	}

	g.log.InfoWithContext(ctx, "product group upserted", nil, map[string]interface{}{
		"urn":      urn,
		"group_id": group.ID.String(),
		"brand":    brand.Name,
		"category": category.Name,
	})
	return &ResolvedGroup{Group: group, Brand: brand, Category: category}, nil
}
