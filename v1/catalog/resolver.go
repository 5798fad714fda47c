package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// DefaultCategory is used for groups submitted without a category.
const DefaultCategory = "Uncategorized"

// Resolver looks up or creates the reference entities products depend on.
type Resolver struct {
	store Store
}

func NewResolver(store Store) *Resolver {
	return &Resolver{store: store}
}

// Organization returns the organization with urn. A missing organization is
// a *ValidationError.
func (r *Resolver) Organization(ctx context.Context, urn string) (*Organization, error) {
	org, err := r.store.OrganizationByURN(ctx, urn)
	if errors.Is(err, ErrNotFound) {
		return nil, NewValidationError("Organization does not exist with urn %s", urn)
	}
	if err != nil {
		return nil, fmt.Errorf("lookup organization %s: %w", urn, err)
	}
	return org, nil
}

// Brand resolves a brand by exact name within the organization.
func (r *Resolver) Brand(ctx context.Context, name string, organizationID uuid.UUID) (*Brand, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("brand name is required")
	}
	brand, err := r.store.EnsureBrand(ctx, organizationID, name)
	if err != nil {
		return nil, fmt.Errorf("resolve brand %q: %w", name, err)
	}
	return brand, nil
}

// Category resolves a category by exact name.
func (r *Resolver) Category(ctx context.Context, name string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultCategory
	}
	category, err := r.store.EnsureCategory(ctx, name, Slugify(name))
	if err != nil {
		return nil, fmt.Errorf("resolve category %q: %w", name, err)
	}
	return category, nil
}

// DisambiguateSlug derives a stable slug for name when slug is already used
// by a category with a different name ("A & B" and "A B").
func DisambiguateSlug(slug, name string) string {
	return slug + "-" + uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String()[:8]
}

// Slugify lowercases name and joins its words with single hyphens.
// "Electronics & Computers" becomes "electronics-computers".
func Slugify(name string) string {
	var b strings.Builder
	hyphen := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r == '&':
			continue
		case r == ' ' || r == '_' || r == '-' || r == '\t':
			hyphen = true
		default:
			if hyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			hyphen = false
			b.WriteRune(r)
		}
	}
	return b.String()
}
