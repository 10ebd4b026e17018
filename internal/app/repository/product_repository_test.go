package repository

import (
	"testing"

	"github.com/ikkim/storefront-backend/internal/app/model"
	"github.com/ikkim/storefront-backend/internal/db"
	"github.com/ikkim/storefront-backend/internal/pricing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupProductTest(t *testing.T) (*gorm.DB, ProductRepository) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	repo := NewProductRepository(testDB)
	return testDB, repo
}

func newTestProduct(slug string, status model.ProductStatus) *model.Product {
	return &model.Product{
		Name:            "Panjabi " + slug,
		Slug:            slug,
		Status:          status,
		RegularPrice:    1500,
		DiscountedPrice: 1200,
		Variants: []pricing.VariantGroup{
			{Name: "Color", Options: []pricing.VariantOption{{Value: "White"}, {Value: "Navy", Price: 50}}},
		},
		ComboPricing: []pricing.ComboPricingTier{
			{MinQuantity: 2, Discount: 100, DiscountType: pricing.DiscountTotal},
		},
		BulkPricing: []pricing.BulkPricingTier{
			{MinQuantity: 3, Price: 3300},
		},
		DeliveryChargeInsideDhaka:  60,
		DeliveryChargeOutsideDhaka: 120,
	}
}

func TestProductRepository_Create(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	product := newTestProduct("white-panjabi", model.ProductStatusActive)

	err := repo.Create(product)
	assert.NoError(t, err)
	assert.NotZero(t, product.ID)
}

func TestProductRepository_CreateDuplicateSlug(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	require.NoError(t, repo.Create(newTestProduct("dup", model.ProductStatusActive)))
	err := repo.Create(newTestProduct("dup", model.ProductStatusDraft))
	assert.Error(t, err)
}

func TestProductRepository_FindByIDRoundTripsPricing(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	product := newTestProduct("round-trip", model.ProductStatusActive)
	require.NoError(t, repo.Create(product))

	found, err := repo.FindByID(product.ID)
	require.NoError(t, err)

	cfg := found.PricingConfig()
	assert.Equal(t, 1200.0, cfg.BasePrice())
	require.Len(t, cfg.Variants, 1)
	assert.Equal(t, "Navy", cfg.Variants[0].Options[1].Value)
	assert.Equal(t, 50.0, cfg.Variants[0].Options[1].Price)
	require.Len(t, cfg.ComboPricing, 1)
	assert.Equal(t, pricing.DiscountTotal, cfg.ComboPricing[0].DiscountType)
	require.Len(t, cfg.BulkPricing, 1)
	assert.Equal(t, 3300.0, cfg.BulkPricing[0].Price)
}

func TestProductRepository_FindByIDNotFound(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	_, err := repo.FindByID(999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestProductRepository_FindBySlug(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	require.NoError(t, repo.Create(newTestProduct("eid-special", model.ProductStatusActive)))

	found, err := repo.FindBySlug("eid-special")
	require.NoError(t, err)
	assert.Equal(t, "eid-special", found.Slug)

	_, err = repo.FindBySlug("missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestProductRepository_FindAll(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	require.NoError(t, repo.Create(newTestProduct("a", model.ProductStatusActive)))
	require.NoError(t, repo.Create(newTestProduct("b", model.ProductStatusDraft)))
	require.NoError(t, repo.Create(newTestProduct("c", model.ProductStatusActive)))

	active := model.ProductStatusActive
	tests := []struct {
		name   string
		filter ProductFilter
		want   int
	}{
		{name: "All statuses", filter: ProductFilter{}, want: 3},
		{name: "Active only", filter: ProductFilter{Status: &active}, want: 2},
		{name: "Limited", filter: ProductFilter{Limit: 1}, want: 1},
		{name: "Offset", filter: ProductFilter{Limit: 10, Offset: 2}, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found, err := repo.FindAll(tt.filter)
			require.NoError(t, err)
			assert.Len(t, found, tt.want)
		})
	}
}

func TestProductRepository_Update(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	product := newTestProduct("update-me", model.ProductStatusDraft)
	require.NoError(t, repo.Create(product))

	product.Status = model.ProductStatusActive
	product.DiscountedPrice = 0
	product.FreeShipping = true
	product.ComboPricing = nil
	require.NoError(t, repo.Update(product))

	found, err := repo.FindByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ProductStatusActive, found.Status)
	assert.Equal(t, 1500.0, found.PricingConfig().BasePrice())
	assert.True(t, found.FreeShipping)
	assert.Empty(t, found.ComboPricing)
}

func TestProductRepository_Delete(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	product := newTestProduct("delete-me", model.ProductStatusActive)
	require.NoError(t, repo.Create(product))

	require.NoError(t, repo.Delete(product.ID))

	_, err := repo.FindByID(product.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	assert.ErrorIs(t, repo.Delete(product.ID), gorm.ErrRecordNotFound)
}
