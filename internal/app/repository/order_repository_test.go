package repository

import (
	"testing"

	"github.com/ikkim/storefront-backend/internal/app/model"
	"github.com/ikkim/storefront-backend/internal/checkout"
	"github.com/ikkim/storefront-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func setupOrderTest(t *testing.T) (*gorm.DB, OrderRepository, *model.Product) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	product := newTestProduct("order-product", model.ProductStatusActive)
	require.NoError(t, NewProductRepository(testDB).Create(product))

	return testDB, NewOrderRepository(testDB), product
}

func newTestOrder(productID uint) *model.Order {
	return &model.Order{
		ProductID:       productID,
		CustomerName:    "Rahim",
		CustomerPhone:   "01700000000",
		CustomerAddress: "House 1, Road 2, Dhanmondi",
		DeliveryArea:    checkout.DeliveryInsideDhaka,
		Quantity:        2,
		Variants: datatypes.NewJSONType(checkout.GroupedVariants{
			"Color": {{Value: "Navy", Price: 50, Quantity: 1}},
		}),
		Subtotal:       2450,
		ComboDiscount:  100,
		DeliveryCharge: 60,
		TotalAmount:    2410,
		Status:         model.OrderStatusPending,
	}
}

func TestOrderRepository_CreateAndFind(t *testing.T) {
	testDB, repo, product := setupOrderTest(t)
	defer db.CleanupTestDB(testDB)

	order := newTestOrder(product.ID)
	require.NoError(t, repo.Create(order))
	assert.NotZero(t, order.ID)

	found, err := repo.FindByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rahim", found.CustomerName)
	assert.Equal(t, product.Slug, found.Product.Slug)
	assert.Equal(t, 2410.0, found.TotalAmount)

	variants := found.Variants.Data()
	require.Len(t, variants["Color"], 1)
	assert.Equal(t, "Navy", variants["Color"][0].Value)
}

func TestOrderRepository_FindByIDNotFound(t *testing.T) {
	testDB, repo, _ := setupOrderTest(t)
	defer db.CleanupTestDB(testDB)

	_, err := repo.FindByID(42)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestOrderRepository_FindAll(t *testing.T) {
	testDB, repo, product := setupOrderTest(t)
	defer db.CleanupTestDB(testDB)

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(newTestOrder(product.ID)))
	}
	require.NoError(t, repo.UpdateStatus(1, model.OrderStatusConfirmed))

	pending := model.OrderStatusPending
	other := uint(999)

	tests := []struct {
		name   string
		filter OrderFilter
		want   int
	}{
		{name: "All", filter: OrderFilter{}, want: 3},
		{name: "Pending", filter: OrderFilter{Status: &pending}, want: 2},
		{name: "Product", filter: OrderFilter{ProductID: &product.ID}, want: 3},
		{name: "Other product", filter: OrderFilter{ProductID: &other}, want: 0},
		{name: "Limit", filter: OrderFilter{Limit: 2}, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders, err := repo.FindAll(tt.filter)
			require.NoError(t, err)
			assert.Len(t, orders, tt.want)
		})
	}
}

func TestOrderRepository_UpdateStatus(t *testing.T) {
	testDB, repo, product := setupOrderTest(t)
	defer db.CleanupTestDB(testDB)

	order := newTestOrder(product.ID)
	require.NoError(t, repo.Create(order))

	require.NoError(t, repo.UpdateStatus(order.ID, model.OrderStatusShipped))

	found, err := repo.FindByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusShipped, found.Status)

	assert.ErrorIs(t, repo.UpdateStatus(999, model.OrderStatusShipped), gorm.ErrRecordNotFound)
}
