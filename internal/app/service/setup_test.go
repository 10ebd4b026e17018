package service

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/ikkim/storefront-backend/internal/app/model"
	"github.com/ikkim/storefront-backend/internal/app/repository"
	"github.com/ikkim/storefront-backend/internal/db"
	"github.com/ikkim/storefront-backend/internal/pricing"
	"github.com/ikkim/storefront-backend/pkg/redis"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testServices struct {
	db        *gorm.DB
	redis     *miniredis.Miniredis
	products  ProductService
	pricing   PricingService
	selection SelectionService
	coupons   CouponService
	orders    OrderService
	couponRep repository.CouponRepository
}

func setupServices(t *testing.T) *testServices {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	productService := NewProductService(repository.NewProductRepository(testDB))
	pricingService := NewPricingService(productService, pricing.NewEngine(pricing.Options{}), 1)
	selectionService := NewSelectionService(redis.NewSelectionStore(rdb, time.Hour), productService, pricingService)
	couponRepo := repository.NewCouponRepository(testDB)
	couponService := NewCouponService(couponRepo, map[string]float64{"SAVE100": 100})
	orderService := NewOrderService(
		repository.NewOrderRepository(testDB),
		productService,
		pricingService,
		selectionService,
		couponService,
	)

	return &testServices{
		db:        testDB,
		redis:     mr,
		products:  productService,
		pricing:   pricingService,
		selection: selectionService,
		coupons:   couponService,
		orders:    orderService,
		couponRep: couponRepo,
	}
}

// createTestProduct stores a 500-taka product with a Gold surcharge of 75,
// combo tiers {2: 50 total, 3: 100 per product} and delivery 60/120.
func createTestProduct(t *testing.T, s *testServices, slug string) *model.Product {
	product := &model.Product{
		Name:         "Test " + slug,
		Slug:         slug,
		Status:       model.ProductStatusActive,
		RegularPrice: 500,
		Variants: []pricing.VariantGroup{
			{Name: "Color", Options: []pricing.VariantOption{{Value: "Red"}, {Value: "Gold", Price: 75}}},
		},
		ComboPricing: []pricing.ComboPricingTier{
			{MinQuantity: 2, Discount: 50, DiscountType: pricing.DiscountTotal},
			{MinQuantity: 3, Discount: 100, DiscountType: pricing.DiscountPerProduct},
		},
		DeliveryChargeInsideDhaka:  60,
		DeliveryChargeOutsideDhaka: 120,
	}
	require.NoError(t, s.products.CreateProduct(product))
	return product
}
