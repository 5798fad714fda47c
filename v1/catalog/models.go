package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// Organization owns brands. It is provisioned out of band and only read here.
type Organization struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	URN         string    `gorm:"uniqueIndex;not null" json:"urn"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description,omitempty"`
	URL         string    `json:"url,omitempty"`
	Subdomain   string    `gorm:"index" json:"subdomain,omitempty"`
	Domain      string    `gorm:"index" json:"domain,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Brand names are unique within an organization.
type Brand struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	URN            *string        `gorm:"uniqueIndex" json:"urn,omitempty"`
	Name           string         `gorm:"not null;uniqueIndex:idx_brands_org_name" json:"name"`
	OrganizationID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_brands_org_name" json:"organization_id"`
	LogoURL        string         `json:"logo_url,omitempty"`
	RawData        datatypes.JSON `gorm:"type:jsonb" json:"raw_data,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

type Category struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Slug        string     `gorm:"uniqueIndex;not null" json:"slug"`
	Name        string     `gorm:"uniqueIndex;not null" json:"name"`
	Description string     `json:"description,omitempty"`
	ParentID    *uuid.UUID `gorm:"type:uuid" json:"parent_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ProductGroup always references exactly one Brand and one Category.
// RawData keeps the submitted node, including extension fields such as
// @cmp:media.
type ProductGroup struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	URN            string         `gorm:"uniqueIndex;not null" json:"urn"`
	Name           string         `json:"name"`
	Description    string         `json:"description,omitempty"`
	URL            string         `json:"url,omitempty"`
	Category       string         `json:"category,omitempty"`
	ProductGroupID string         `gorm:"index" json:"product_group_id,omitempty"`
	VariesBy       pq.StringArray `gorm:"type:text[]" json:"varies_by,omitempty"`
	BrandID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"brand_id"`
	CategoryID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"category_id"`
	OrganizationID uuid.UUID      `gorm:"type:uuid;not null;index" json:"organization_id"`
	RawData        datatypes.JSON `gorm:"type:jsonb" json:"raw_data,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// Product is a sellable variant. ProductGroupID is never null.
type Product struct {
	ID                   uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	URN                  string            `gorm:"uniqueIndex;not null" json:"urn"`
	Name                 string            `json:"name"`
	Description          string            `json:"description,omitempty"`
	SKU                  string            `gorm:"index" json:"sku,omitempty"`
	URL                  string            `json:"url,omitempty"`
	ProductGroupID       uuid.UUID         `gorm:"type:uuid;not null;index" json:"product_group_id"`
	BrandID              uuid.UUID         `gorm:"type:uuid;not null;index" json:"brand_id"`
	CategoryID           uuid.UUID         `gorm:"type:uuid;not null;index" json:"category_id"`
	OrganizationID       uuid.UUID         `gorm:"type:uuid;not null;index" json:"organization_id"`
	VariantAttributes    datatypes.JSONMap `gorm:"type:jsonb" json:"variant_attributes,omitempty"`
	AdditionalProperties datatypes.JSON    `gorm:"type:jsonb" json:"additional_properties,omitempty"`
	RawData              datatypes.JSON    `gorm:"type:jsonb" json:"raw_data,omitempty"`
	CreatedAt            time.Time         `json:"created_at"`
	UpdatedAt            time.Time         `json:"updated_at"`
}

// Offer is one seller's listing for a product. RawData is the submitted
// JSON-LD offer and is what the API returns.
type Offer struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ProductID       uuid.UUID      `gorm:"type:uuid;not null;index:idx_offers_product_seller" json:"product_id"`
	SellerID        uuid.UUID      `gorm:"type:uuid;not null;index:idx_offers_product_seller" json:"seller_id"`
	Price           float64        `gorm:"type:numeric(12,2)" json:"price"`
	PriceCurrency   string         `json:"price_currency,omitempty"`
	Availability    string         `json:"availability,omitempty"`
	InventoryLevel  *int           `json:"inventory_level,omitempty"`
	PriceValidUntil *time.Time     `json:"price_valid_until,omitempty"`
	RawData         datatypes.JSON `gorm:"type:jsonb" json:"raw_data,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// Models lists every table for migrations.
func Models() []interface{} {
	return []interface{}{
		&Organization{},
		&Brand{},
		&Category{},
		&ProductGroup{},
		&Product{},
		&Offer{},
	}
}
