package service

import (
	"context"
	"testing"
	"time"

	"github.com/ikkim/storefront-backend/internal/app/model"
	"github.com/ikkim/storefront-backend/internal/pricing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectionService_Lifecycle(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	product := createTestProduct(t, s, "lifecycle")

	view, err := s.selection.Start(ctx, product.ID)
	require.NoError(t, err)
	require.NotEmpty(t, view.ID)
	assert.Equal(t, 1, view.TotalQuantity)
	assert.Equal(t, 500.0, view.Breakdown.FinalTotal)

	view, err = s.selection.AddVariant(ctx, view.ID, "Color", "Gold")
	require.NoError(t, err)
	assert.Equal(t, 575.0, view.Breakdown.Subtotal)
	assert.Len(t, view.Selections, 2)

	view, err = s.selection.SetQuantity(ctx, view.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 1075.0, view.Breakdown.Subtotal)
	assert.Equal(t, 1025.0, view.Breakdown.FinalTotal)

	view, err = s.selection.UpdateVariantQuantity(ctx, view.ID, "Color", "Gold", 3)
	require.NoError(t, err)
	assert.Equal(t, 1225.0, view.Breakdown.Subtotal)
	assert.Equal(t, 2, view.TotalQuantity)

	view, err = s.selection.ToggleVariant(ctx, view.ID, "Color", "Gold")
	require.NoError(t, err)
	assert.Equal(t, 950.0, view.Breakdown.FinalTotal)
	assert.Len(t, view.Selections, 1)

	loaded, err := s.selection.Get(ctx, view.ID)
	require.NoError(t, err)
	assert.Equal(t, view.Breakdown, loaded.Breakdown)
}

func TestSelectionService_InvalidReferencesAreNoOps(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	product := createTestProduct(t, s, "noop")

	view, err := s.selection.Start(ctx, product.ID)
	require.NoError(t, err)

	view, err = s.selection.AddVariant(ctx, view.ID, "Color", "Purple")
	require.NoError(t, err)
	view, err = s.selection.UpdateVariantQuantity(ctx, view.ID, "Color", "Red", 5)
	require.NoError(t, err)

	assert.Len(t, view.Selections, 1)
	assert.Equal(t, 500.0, view.Breakdown.Subtotal)
}

func TestSelectionService_FollowsCatalogChanges(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	product := createTestProduct(t, s, "catalog-change")

	view, err := s.selection.Start(ctx, product.ID)
	require.NoError(t, err)
	view, err = s.selection.AddVariant(ctx, view.ID, "Color", "Gold")
	require.NoError(t, err)
	assert.Equal(t, 575.0, view.Breakdown.Subtotal)

	product.Variants[0].Options[1].Price = 200
	require.NoError(t, s.products.UpdateProduct(product))

	view, err = s.selection.Get(ctx, view.ID)
	require.NoError(t, err)
	assert.Equal(t, 700.0, view.Breakdown.Subtotal)
	require.Len(t, view.Selections, 2)
	assert.Equal(t, 200.0, view.Selections[1].Item.Price)

	product.Variants = []pricing.VariantGroup{
		{Name: "Color", Options: []pricing.VariantOption{{Value: "Red"}}},
	}
	require.NoError(t, s.products.UpdateProduct(product))

	view, err = s.selection.SetQuantity(ctx, view.ID, 2)
	require.NoError(t, err)
	assert.Len(t, view.Selections, 1)
	assert.Equal(t, 1000.0, view.Breakdown.Subtotal)

	// the dropped option stays dropped after the save
	view, err = s.selection.Get(ctx, view.ID)
	require.NoError(t, err)
	assert.Len(t, view.Selections, 1)
}

func TestSelectionService_SessionNotFound(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()

	_, err := s.selection.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrSelectionNotFound)

	_, err = s.selection.AddVariant(ctx, "missing", "Color", "Gold")
	assert.ErrorIs(t, err, ErrSelectionNotFound)

	assert.ErrorIs(t, s.selection.Discard(ctx, "missing"), ErrSelectionNotFound)
}

func TestSelectionService_SessionExpires(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	product := createTestProduct(t, s, "expires")

	view, err := s.selection.Start(ctx, product.ID)
	require.NoError(t, err)

	s.redis.FastForward(2 * time.Hour)

	_, err = s.selection.Get(ctx, view.ID)
	assert.ErrorIs(t, err, ErrSelectionNotFound)
}

func TestSelectionService_ProductUnpublished(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()
	product := createTestProduct(t, s, "unpublished")

	view, err := s.selection.Start(ctx, product.ID)
	require.NoError(t, err)

	product.Status = model.ProductStatusDraft
	require.NoError(t, s.products.UpdateProduct(product))

	_, err = s.selection.Get(ctx, view.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestSelectionService_StartUnknownProduct(t *testing.T) {
	s := setupServices(t)

	_, err := s.selection.Start(context.Background(), 999)
	assert.ErrorIs(t, err, ErrProductNotFound)
}
