package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// memStore is an in-memory Store. InTx restores the previous rows when fn
// fails.
type memStore struct {
	mu sync.Mutex

	orgs       []*Organization
	brands     []*Brand
	categories []*Category
	groups     []*ProductGroup
	products   []*Product
	offers     []Offer

	saveGroupErr      error
	saveProductErr    map[string]error
	saveProductsErr   error
	replaceOffersErr  error
	saveProductsCalls int
}

var _ Store = (*memStore)(nil)

func newMemStore(orgs ...*Organization) *memStore {
	return &memStore{orgs: orgs, saveProductErr: map[string]error{}}
}

func (m *memStore) InTx(_ context.Context, fn func(Store) error) error {
	m.mu.Lock()
	brands := append([]*Brand(nil), m.brands...)
	categories := append([]*Category(nil), m.categories...)
	groups := append([]*ProductGroup(nil), m.groups...)
	products := append([]*Product(nil), m.products...)
	offers := append([]Offer(nil), m.offers...)
	m.mu.Unlock()

	err := fn(m)
	if err != nil {
		m.mu.Lock()
		m.brands, m.categories, m.groups, m.products, m.offers = brands, categories, groups, products, offers
		m.mu.Unlock()
	}
	return err
}

func (m *memStore) OrganizationByURN(_ context.Context, urn string) (*Organization, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.orgs {
		if o.URN == urn {
			return o, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memStore) OrganizationByHost(_ context.Context, domain, subdomain string) (*Organization, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.orgs {
		if o.Domain != "" && o.Domain == domain {
			return o, nil
		}
	}
	for _, o := range m.orgs {
		if subdomain != "" && o.Subdomain == subdomain {
			return o, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memStore) EnsureBrand(_ context.Context, organizationID uuid.UUID, name string) (*Brand, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.brands {
		if b.OrganizationID == organizationID && b.Name == name {
			return b, nil
		}
	}
	b := &Brand{ID: uuid.New(), Name: name, OrganizationID: organizationID}
	m.brands = append(m.brands, b)
	return b, nil
}

func (m *memStore) BrandByID(_ context.Context, id uuid.UUID) (*Brand, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.brands {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memStore) EnsureCategory(_ context.Context, name, slug string) (*Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.categories {
		if c.Name == name {
			return c, nil
		}
	}
	for _, c := range m.categories {
		if c.Slug == slug {
			slug = DisambiguateSlug(slug, name)
			break
		}
	}
	c := &Category{ID: uuid.New(), Name: name, Slug: slug}
	m.categories = append(m.categories, c)
	return c, nil
}

func (m *memStore) CategoryByID(_ context.Context, id uuid.UUID) (*Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memStore) GroupByURN(_ context.Context, urn string) (*ProductGroup, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, g := range m.groups {
		if g.URN == urn {
			copied := *g
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memStore) GroupByID(_ context.Context, id uuid.UUID) (*ProductGroup, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, g := range m.groups {
		if g.ID == id {
			copied := *g
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memStore) SaveGroup(_ context.Context, g *ProductGroup) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveGroupErr != nil {
		return m.saveGroupErr
	}
	for i, existing := range m.groups {
		if existing.URN == g.URN {
			g.ID, g.CreatedAt, g.UpdatedAt = existing.ID, existing.CreatedAt, time.Now()
			copied := *g
			m.groups[i] = &copied
			return nil
		}
	}
	g.ID, g.CreatedAt, g.UpdatedAt = uuid.New(), time.Now(), time.Now()
	copied := *g
	m.groups = append(m.groups, &copied)
	return nil
}

func (m *memStore) ProductByURN(_ context.Context, urn string) (*Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.products {
		if p.URN == urn {
			copied := *p
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memStore) SaveProduct(_ context.Context, p *Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.saveProductErr[p.URN]; err != nil {
		return err
	}
	m.upsertProduct(p)
	return nil
}

func (m *memStore) upsertProduct(p *Product) {
	for i, existing := range m.products {
		if existing.URN == p.URN {
			p.ID, p.CreatedAt, p.UpdatedAt = existing.ID, existing.CreatedAt, time.Now()
			copied := *p
			m.products[i] = &copied
			return
		}
	}
	p.ID, p.CreatedAt, p.UpdatedAt = uuid.New(), time.Now(), time.Now()
	copied := *p
	m.products = append(m.products, &copied)
}

func (m *memStore) SaveProducts(_ context.Context, ps []*Product) (map[string]uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveProductsCalls++
	if m.saveProductsErr != nil {
		return nil, m.saveProductsErr
	}
	ids := make(map[string]uuid.UUID, len(ps))
	for _, p := range ps {
		m.upsertProduct(p)
		ids[p.URN] = p.ID
	}
	return ids, nil
}

func (m *memStore) ReplaceOffers(_ context.Context, productID, sellerID uuid.UUID, offers []Offer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.replaceOffersErr != nil {
		return m.replaceOffersErr
	}
	kept := m.offers[:0]
	for _, o := range m.offers {
		if o.ProductID != productID || o.SellerID != sellerID {
			kept = append(kept, o)
		}
	}
	m.offers = kept
	for _, o := range offers {
		o.ID, o.ProductID, o.SellerID = uuid.New(), productID, sellerID
		m.offers = append(m.offers, o)
	}
	return nil
}

func (m *memStore) Products(_ context.Context, q ProductQuery) ([]ProductView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	wanted := map[string]bool{}
	for _, urn := range q.URNs {
		wanted[urn] = true
	}

	var matched []*Product
	for _, p := range m.products {
		if q.OrganizationID != uuid.Nil && p.OrganizationID != q.OrganizationID {
			continue
		}
		if len(wanted) > 0 && !wanted[p.URN] {
			continue
		}
		matched = append(matched, p)
	}
	if q.Offset > 0 {
		if q.Offset >= len(matched) {
			return nil, nil
		}
		matched = matched[q.Offset:]
	}
	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}

	views := make([]ProductView, 0, len(matched))
	for _, p := range matched {
		v := ProductView{Product: *p}
		for _, b := range m.brands {
			if b.ID == p.BrandID {
				v.Brand = b
			}
		}
		for _, c := range m.categories {
			if c.ID == p.CategoryID {
				v.Category = c
			}
		}
		for _, g := range m.groups {
			if g.ID == p.ProductGroupID {
				v.Group = g
			}
		}
		for _, o := range m.offers {
			if o.ProductID == p.ID {
				v.Offers = append(v.Offers, o)
			}
		}
		views = append(views, v)
	}
	return views, nil
}

func (m *memStore) offersFor(productID uuid.UUID) []Offer {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Offer
	for _, o := range m.offers {
		if o.ProductID == productID {
			out = append(out, o)
		}
	}
	return out
}
