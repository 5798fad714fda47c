package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/Aleph-Alpha/discovery/v1/logger"
)

// Per-product rejection reasons recorded in the ledger.
var (
	errMissingID          = errors.New("Product missing @id field")
	errNoBrandOrCategory  = errors.New("Cannot process product without brand or category")
	errInvalidGroupRef    = errors.New("Cannot process product without product group, invalid product group reference")
	errNoGroupOrReference = errors.New("Cannot process product without product group or isVariantOf reference")
)

// membership is what a product inherits from the group it belongs to.
type membership struct {
	group    *ProductGroup
	brand    *Brand
	category *Category
	// fallbackDescription replaces a blank product description.
	fallbackDescription string
}

// ProductReconciler upserts single products and homogeneous product batches.
type ProductReconciler struct {
	log logger.Logger
}

func NewProductReconciler(log logger.Logger) *ProductReconciler {
	return &ProductReconciler{log: log}
}

// Reconcile upserts node and its offers. batch is the group declared in the
// same request, or nil.
func (r *ProductReconciler) Reconcile(ctx context.Context, st Store, node *ProductNode, batch *ResolvedGroup) (*Product, error) {
	if strings.TrimSpace(node.ID) == "" {
		return nil, errMissingID
	}

	m, err := r.resolveMembership(ctx, st, node, batch)
	if err != nil {
		return nil, err
	}
	if node.Category != "" && string(node.Category) != m.category.Name {
		category, err := NewResolver(st).Category(ctx, string(node.Category))
		if err != nil {
			return nil, err
		}
		m.category = category
	}

	product := buildProduct(node, m)
	if err := st.SaveProduct(ctx, product); err != nil {
		return nil, fmt.Errorf("save product %s: %w", product.URN, err)
	}

	if node.HasOffers {
		written, skipped, err := processOffers(ctx, st, product.ID, m.brand.OrganizationID, node.Offers)
		if err != nil {
			return nil, fmt.Errorf("save offers for %s: %w", product.URN, err)
		}
		if skipped > 0 {
			r.log.WarnWithContext(ctx, "skipped offers without a usable price", nil, map[string]interface{}{
				"urn":     product.URN,
				"skipped": skipped,
				"written": written,
			})
		}
	}
	return product, nil
}

// resolveMembership picks the group a product belongs to: the request's
// group, then isVariantOf, then the product's current row.
func (r *ProductReconciler) resolveMembership(ctx context.Context, st Store, node *ProductNode, batch *ResolvedGroup) (*membership, error) {
	ref := strings.TrimSpace(node.GroupURN())

	if batch != nil && (ref == "" || ref == batch.Group.URN) {
		if batch.Brand == nil || batch.Category == nil {
			return nil, errNoBrandOrCategory
		}
		return &membership{
			group:               batch.Group,
			brand:               batch.Brand,
			category:            batch.Category,
			fallbackDescription: batch.Group.Description,
		}, nil
	}

	if ref != "" {
		group, err := st.GroupByURN(ctx, ref)
		if errors.Is(err, ErrNotFound) {
			r.log.WarnWithContext(ctx, "product references unknown product group", nil, map[string]interface{}{
				"urn":   node.ID,
				"group": ref,
			})
			return nil, errInvalidGroupRef
		}
		if err != nil {
			return nil, err
		}
		return inherit(ctx, st, group, group.BrandID, group.CategoryID, group.Description)
	}

	existing, err := st.ProductByURN(ctx, node.ID)
	if errors.Is(err, ErrNotFound) {
		return nil, errNoGroupOrReference
	}
	if err != nil {
		return nil, err
	}
	group, err := st.GroupByID(ctx, existing.ProductGroupID)
	if errors.Is(err, ErrNotFound) {
		return nil, errInvalidGroupRef
	}
	if err != nil {
		return nil, err
	}
	return inherit(ctx, st, group, existing.BrandID, existing.CategoryID, group.Description)
}

func inherit(ctx context.Context, st Store, group *ProductGroup, brandID, categoryID uuid.UUID, description string) (*membership, error) {
	brand, err := st.BrandByID(ctx, brandID)
	if errors.Is(err, ErrNotFound) {
		return nil, errNoBrandOrCategory
	}
	if err != nil {
		return nil, err
	}
	category, err := st.CategoryByID(ctx, categoryID)
	if errors.Is(err, ErrNotFound) {
		return nil, errNoBrandOrCategory
	}
	if err != nil {
		return nil, err
	}
	return &membership{group: group, brand: brand, category: category, fallbackDescription: description}, nil
}

func buildProduct(node *ProductNode, m *membership) *Product {
	description := node.Description
	if strings.TrimSpace(description) == "" {
		description = m.fallbackDescription
	}

	attributes := make(map[string]interface{}, len(node.AdditionalProperty))
	properties := make([]PropertyValue, 0, len(node.AdditionalProperty))
	for _, pv := range node.AdditionalProperty {
		attributes[pv.Name] = pv.Value
		properties = append(properties, PropertyValue{Type: "PropertyValue", Name: pv.Name, Value: pv.Value})
	}
	propsJSON, _ := json.Marshal(properties)

	return &Product{
		URN:                  strings.TrimSpace(node.ID),
		Name:                 node.Name,
		Description:          description,
		SKU:                  node.SKU,
		URL:                  node.URL,
		ProductGroupID:       m.group.ID,
		BrandID:              m.brand.ID,
		CategoryID:           m.category.ID,
		OrganizationID:       m.brand.OrganizationID,
		VariantAttributes:    datatypes.JSONMap(attributes),
		AdditionalProperties: datatypes.JSON(propsJSON),
		RawData:              datatypes.JSON(node.Raw()),
	}
}
