package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Aleph-Alpha/discovery/v1/postgres"
)

var groupUpdateColumns = []string{
	"name", "description", "url", "category", "product_group_id", "varies_by",
	"brand_id", "category_id", "organization_id", "raw_data", "updated_at",
}

var productUpdateColumns = []string{
	"name", "description", "sku", "url", "product_group_id", "brand_id",
	"category_id", "organization_id", "variant_attributes",
	"additional_properties", "raw_data", "updated_at",
}

// GormStore implements Store on top of the postgres client.
type GormStore struct {
	pg *postgres.Postgres
	tx *gorm.DB
}

var _ Store = (*GormStore)(nil)

func NewGormStore(pg *postgres.Postgres) *GormStore {
	return &GormStore{pg: pg}
}

func (s *GormStore) db(ctx context.Context) *gorm.DB {
	if s.tx != nil {
		return s.tx.WithContext(ctx)
	}
	return s.pg.WithContext(ctx)
}

func (s *GormStore) InTx(ctx context.Context, fn func(Store) error) error {
	if s.tx != nil {
		return s.tx.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return fn(&GormStore{pg: s.pg, tx: tx})
		})
	}
	return s.pg.Transaction(ctx, func(tx *gorm.DB) error {
		return fn(&GormStore{pg: s.pg, tx: tx})
	})
}

// translate maps a missing row onto ErrNotFound and keeps the driver text
// for everything else.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(postgres.TranslateError(err), postgres.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *GormStore) OrganizationByURN(ctx context.Context, urn string) (*Organization, error) {
	var org Organization
	if err := s.db(ctx).Where("urn = ?", urn).First(&org).Error; err != nil {
		return nil, translate(err)
	}
	return &org, nil
}

func (s *GormStore) OrganizationByHost(ctx context.Context, domain, subdomain string) (*Organization, error) {
	var org Organization
	err := s.db(ctx).Where("domain = ?", domain).First(&org).Error
	if err == nil {
		return &org, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) || subdomain == "" {
		return nil, translate(err)
	}
	if err := s.db(ctx).Where("subdomain = ?", subdomain).First(&org).Error; err != nil {
		return nil, translate(err)
	}
	return &org, nil
}

func (s *GormStore) EnsureBrand(ctx context.Context, organizationID uuid.UUID, name string) (*Brand, error) {
	candidate := Brand{Name: name, OrganizationID: organizationID}
	err := s.db(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "organization_id"}, {Name: "name"}},
		DoNothing: true,
	}).Create(&candidate).Error
	if err != nil {
		return nil, fmt.Errorf("insert brand %q: %w", name, err)
	}

	var brand Brand
	if err := s.db(ctx).Where("organization_id = ? AND name = ?", organizationID, name).First(&brand).Error; err != nil {
		return nil, translate(err)
	}
	return &brand, nil
}

func (s *GormStore) BrandByID(ctx context.Context, id uuid.UUID) (*Brand, error) {
	var brand Brand
	if err := s.db(ctx).First(&brand, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &brand, nil
}

func (s *GormStore) EnsureCategory(ctx context.Context, name, slug string) (*Category, error) {
	var category Category
	err := s.db(ctx).Where("name = ?", name).First(&category).Error
	if err == nil {
		return &category, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var taken int64
	if err := s.db(ctx).Model(&Category{}).Where("slug = ? AND name <> ?", slug, name).Count(&taken).Error; err != nil {
		return nil, fmt.Errorf("check category slug %q: %w", slug, err)
	}
	if taken > 0 {
		slug = DisambiguateSlug(slug, name)
	}

	candidate := Category{Name: name, Slug: slug}
	err = s.db(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&candidate).Error
	if err != nil {
		return nil, fmt.Errorf("insert category %q: %w", name, err)
	}
	if err := s.db(ctx).Where("name = ?", name).First(&category).Error; err != nil {
		return nil, translate(err)
	}
	return &category, nil
}

func (s *GormStore) CategoryByID(ctx context.Context, id uuid.UUID) (*Category, error) {
	var category Category
	if err := s.db(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &category, nil
}

func (s *GormStore) GroupByURN(ctx context.Context, urn string) (*ProductGroup, error) {
	var group ProductGroup
	if err := s.db(ctx).Where("urn = ?", urn).First(&group).Error; err != nil {
		return nil, translate(err)
	}
	return &group, nil
}

func (s *GormStore) GroupByID(ctx context.Context, id uuid.UUID) (*ProductGroup, error) {
	var group ProductGroup
	if err := s.db(ctx).First(&group, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &group, nil
}

func (s *GormStore) SaveGroup(ctx context.Context, g *ProductGroup) error {
	g.ID = uuid.Nil
	return s.db(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "urn"}},
		DoUpdates: clause.AssignmentColumns(groupUpdateColumns),
	}).Create(g).Error
}

func (s *GormStore) ProductByURN(ctx context.Context, urn string) (*Product, error) {
	var product Product
	if err := s.db(ctx).Where("urn = ?", urn).First(&product).Error; err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

func (s *GormStore) SaveProduct(ctx context.Context, p *Product) error {
	p.ID = uuid.Nil
	return s.db(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "urn"}},
		DoUpdates: clause.AssignmentColumns(productUpdateColumns),
	}).Create(p).Error
}

func (s *GormStore) SaveProducts(ctx context.Context, ps []*Product) (map[string]uuid.UUID, error) {
	if len(ps) == 0 {
		return map[string]uuid.UUID{}, nil
	}
	urns := make([]string, 0, len(ps))
	for _, p := range ps {
		p.ID = uuid.Nil
		urns = append(urns, p.URN)
	}

	err := s.db(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "urn"}},
		DoUpdates: clause.AssignmentColumns(productUpdateColumns),
	}).Create(&ps).Error
	if err != nil {
		return nil, err
	}

	var rows []struct {
		ID  uuid.UUID
		URN string
	}
	if err := s.db(ctx).Model(&Product{}).Select("id", "urn").Where("urn IN ?", urns).Scan(&rows).Error; err != nil {
		return nil, err
	}
	ids := make(map[string]uuid.UUID, len(rows))
	for _, r := range rows {
		ids[r.URN] = r.ID
	}
	return ids, nil
}

func (s *GormStore) ReplaceOffers(ctx context.Context, productID, sellerID uuid.UUID, offers []Offer) error {
	return s.InTx(ctx, func(st Store) error {
		db := st.(*GormStore).db(ctx)
		if err := db.Where("product_id = ? AND seller_id = ?", productID, sellerID).Delete(&Offer{}).Error; err != nil {
			return err
		}
		if len(offers) == 0 {
			return nil
		}
		for i := range offers {
			offers[i].ID = uuid.Nil
			offers[i].ProductID = productID
			offers[i].SellerID = sellerID
		}
		return db.Create(&offers).Error
	})
}

func (s *GormStore) Products(ctx context.Context, q ProductQuery) ([]ProductView, error) {
	db := s.db(ctx).Model(&Product{})
	if q.OrganizationID != uuid.Nil {
		db = db.Where("organization_id = ?", q.OrganizationID)
	}
	if len(q.URNs) > 0 {
		db = db.Where("urn IN ?", q.URNs)
	}
	if q.Limit > 0 {
		db = db.Limit(q.Limit)
	}
	if q.Offset > 0 {
		db = db.Offset(q.Offset)
	}

	var products []Product
	if err := db.Order("created_at, id").Find(&products).Error; err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, nil
	}
	return s.hydrate(ctx, products)
}

// hydrate loads brands, categories, groups and offers for products with one
// query per table.
func (s *GormStore) hydrate(ctx context.Context, products []Product) ([]ProductView, error) {
	var brandIDs, categoryIDs, groupIDs, productIDs []uuid.UUID
	for _, p := range products {
		brandIDs = append(brandIDs, p.BrandID)
		categoryIDs = append(categoryIDs, p.CategoryID)
		groupIDs = append(groupIDs, p.ProductGroupID)
		productIDs = append(productIDs, p.ID)
	}

	var brands []Brand
	if err := s.db(ctx).Where("id IN ?", brandIDs).Find(&brands).Error; err != nil {
		return nil, fmt.Errorf("load brands: %w", err)
	}
	var categories []Category
	if err := s.db(ctx).Where("id IN ?", categoryIDs).Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	var groups []ProductGroup
	if err := s.db(ctx).Where("id IN ?", groupIDs).Find(&groups).Error; err != nil {
		return nil, fmt.Errorf("load groups: %w", err)
	}
	var offers []Offer
	if err := s.db(ctx).Where("product_id IN ?", productIDs).Order("created_at, id").Find(&offers).Error; err != nil {
		return nil, fmt.Errorf("load offers: %w", err)
	}

	brandByID := make(map[uuid.UUID]*Brand, len(brands))
	for i := range brands {
		brandByID[brands[i].ID] = &brands[i]
	}
	categoryByID := make(map[uuid.UUID]*Category, len(categories))
	for i := range categories {
		categoryByID[categories[i].ID] = &categories[i]
	}
	groupByID := make(map[uuid.UUID]*ProductGroup, len(groups))
	for i := range groups {
		groupByID[groups[i].ID] = &groups[i]
	}
	offersByProduct := make(map[uuid.UUID][]Offer)
	for _, o := range offers {
		offersByProduct[o.ProductID] = append(offersByProduct[o.ProductID], o)
	}

	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, ProductView{
			Product:  p,
			Brand:    brandByID[p.BrandID],
			Category: categoryByID[p.CategoryID],
			Group:    groupByID[p.ProductGroupID],
			Offers:   offersByProduct[p.ID],
		})
	}
	return views, nil
}
