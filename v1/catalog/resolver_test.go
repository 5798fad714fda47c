package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Books":                   "books",
		"Electronics & Computers": "electronics-computers",
		"home_and_garden":         "home-and-garden",
		"  Toys  ":                "toys",
		"Kids -- Toys":            "kids-toys",
		"Café Supplies":           "café-supplies",
	}
	for in, want := range tests {
		assert.Equal(t, want, Slugify(in), in)
	}
}

func TestResolver_BrandIsScopedToOrganization(t *testing.T) {
	store := newMemStore()
	r := NewResolver(store)
	orgA, orgB := uuid.New(), uuid.New()

	a1, err := r.Brand(context.Background(), "Acme", orgA)
	require.NoError(t, err)
	a2, err := r.Brand(context.Background(), " Acme ", orgA)
	require.NoError(t, err)
	b, err := r.Brand(context.Background(), "Acme", orgB)
	require.NoError(t, err)

	assert.Equal(t, a1.ID, a2.ID)
	assert.NotEqual(t, a1.ID, b.ID)
	assert.Equal(t, orgB, b.OrganizationID)

	_, err = r.Brand(context.Background(), "", orgA)
	assert.Error(t, err)
}

func TestResolver_CategoryGetOrCreate(t *testing.T) {
	store := newMemStore()
	r := NewResolver(store)

	c1, err := r.Category(context.Background(), "Home & Garden")
	require.NoError(t, err)
	c2, err := r.Category(context.Background(), "Home & Garden")
	require.NoError(t, err)
	assert.Equal(t, c1.ID, c2.ID)
	assert.Equal(t, "home-garden", c1.Slug)

	def, err := r.Category(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, DefaultCategory, def.Name)
}

func TestResolver_CategoriesWithCollidingSlugsStayDistinct(t *testing.T) {
	store := newMemStore()
	r := NewResolver(store)
	ctx := context.Background()

	first, err := r.Category(ctx, "A & B")
	require.NoError(t, err)
	second, err := r.Category(ctx, "A B")
	require.NoError(t, err)
	again, err := r.Category(ctx, "A B")
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, "A B", second.Name)
	assert.Equal(t, "a-b", first.Slug)
	assert.Equal(t, DisambiguateSlug("a-b", "A B"), second.Slug)
	assert.Equal(t, second.ID, again.ID)
}

func TestResolver_OrganizationMissing(t *testing.T) {
	r := NewResolver(newMemStore(testOrg()))

	org, err := r.Organization(context.Background(), testOrgURN)
	require.NoError(t, err)
	assert.Equal(t, testOrgURN, org.URN)

	_, err = r.Organization(context.Background(), "urn:cmp:org:missing")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Organization does not exist with urn urn:cmp:org:missing", verr.Message)
}
