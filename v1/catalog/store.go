package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ProductQuery selects products for read paths. Zero fields do not filter.
// Results are ordered by creation time, then id, so offset paging is stable.
type ProductQuery struct {
	OrganizationID uuid.UUID
	URNs           []string
	Limit          int
	Offset         int
}

// ProductView is a product joined with the rows read paths need.
type ProductView struct {
	Product  Product
	Brand    *Brand
	Category *Category
	Group    *ProductGroup
	Offers   []Offer
}

// Store is the persistence boundary of the catalog. Lookups return
// ErrNotFound when nothing matches.
type Store interface {
	OrganizationByURN(ctx context.Context, urn string) (*Organization, error)
	OrganizationByHost(ctx context.Context, domain, subdomain string) (*Organization, error)

	// EnsureBrand returns the brand named name in the organization, creating
	// it when absent.
	EnsureBrand(ctx context.Context, organizationID uuid.UUID, name string) (*Brand, error)
	BrandByID(ctx context.Context, id uuid.UUID) (*Brand, error)

	// EnsureCategory returns the category with this exact name, creating it
	// when absent. Names are unique; when slug already belongs to another
	// name the new row gets DisambiguateSlug(slug, name).
	EnsureCategory(ctx context.Context, name, slug string) (*Category, error)
	CategoryByID(ctx context.Context, id uuid.UUID) (*Category, error)

	GroupByURN(ctx context.Context, urn string) (*ProductGroup, error)
	GroupByID(ctx context.Context, id uuid.UUID) (*ProductGroup, error)
	// SaveGroup inserts or updates by URN and sets g.ID to the stored id.
	SaveGroup(ctx context.Context, g *ProductGroup) error

	ProductByURN(ctx context.Context, urn string) (*Product, error)
	// SaveProduct inserts or updates by URN and sets p.ID to the stored id.
	SaveProduct(ctx context.Context, p *Product) error
	// SaveProducts upserts all rows in one statement and returns URN -> id.
	SaveProducts(ctx context.Context, ps []*Product) (map[string]uuid.UUID, error)

	// ReplaceOffers swaps the offers of one seller on one product.
	ReplaceOffers(ctx context.Context, productID, sellerID uuid.UUID, offers []Offer) error

	Products(ctx context.Context, q ProductQuery) ([]ProductView, error)

	// InTx runs fn against a Store bound to one transaction.
	InTx(ctx context.Context, fn func(Store) error) error
}
