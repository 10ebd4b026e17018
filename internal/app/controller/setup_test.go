package controller

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/ikkim/storefront-backend/internal/app/model"
	"github.com/ikkim/storefront-backend/internal/app/repository"
	"github.com/ikkim/storefront-backend/internal/app/service"
	"github.com/ikkim/storefront-backend/internal/db"
	"github.com/ikkim/storefront-backend/internal/middleware"
	"github.com/ikkim/storefront-backend/internal/pricing"
	"github.com/ikkim/storefront-backend/pkg/redis"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testAdminKey = "test-admin-key"

type testEnv struct {
	router   *gin.Engine
	db       *gorm.DB
	products service.ProductService
}

func setupControllerTest(t *testing.T) *testEnv {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	productService := service.NewProductService(repository.NewProductRepository(testDB))
	pricingService := service.NewPricingService(productService, pricing.NewEngine(pricing.Options{}), 1)
	selectionService := service.NewSelectionService(redis.NewSelectionStore(rdb, time.Hour), productService, pricingService)
	couponService := service.NewCouponService(repository.NewCouponRepository(testDB), map[string]float64{"SAVE100": 100})
	orderService := service.NewOrderService(
		repository.NewOrderRepository(testDB),
		productService,
		pricingService,
		selectionService,
		couponService,
	)

	productController := NewProductController(productService, pricingService)
	selectionController := NewSelectionController(selectionService)
	couponController := NewCouponController(couponService)
	orderController := NewOrderController(orderService)
	admin := middleware.NewAdminMiddleware(testAdminKey)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.LoggingMiddleware())

	router.GET("/products", productController.ListProducts)
	router.GET("/products/:id", productController.GetProduct)
	router.POST("/products/:id/quote", productController.Quote)
	router.GET("/pages/:slug", productController.GetProductBySlug)

	router.POST("/selections", selectionController.StartSelection)
	router.GET("/selections/:id", selectionController.GetSelection)
	router.POST("/selections/:id/variants", selectionController.AddVariant)
	router.POST("/selections/:id/toggle", selectionController.ToggleVariant)
	router.PUT("/selections/:id/variants", selectionController.UpdateVariantQuantity)
	router.PUT("/selections/:id/quantity", selectionController.SetQuantity)

	router.POST("/coupons/validate", couponController.ValidateCoupon)

	router.POST("/orders", orderController.CreateOrder)
	router.POST("/orders/preview", orderController.PreviewOrder)
	router.GET("/orders/:id", orderController.GetOrder)

	adminGroup := router.Group("/admin", admin.RequireAdmin())
	adminGroup.GET("/products", productController.ListAllProducts)
	adminGroup.POST("/products", productController.CreateProduct)
	adminGroup.PUT("/products/:id", productController.UpdateProduct)
	adminGroup.DELETE("/products/:id", productController.DeleteProduct)
	adminGroup.GET("/products/:id/price-table.xlsx", productController.ExportPriceTable)
	adminGroup.GET("/orders", orderController.ListOrders)
	adminGroup.PUT("/orders/:id/status", orderController.UpdateOrderStatus)
	adminGroup.POST("/coupons", couponController.SaveCoupon)

	return &testEnv{
		router:   router,
		db:       testDB,
		products: productService,
	}
}

// createTestProduct stores a 500-taka product with a Gold surcharge of 75,
// combo tiers {2: 50 total, 3: 100 per product} and delivery 60/120.
func (e *testEnv) createTestProduct(t *testing.T, slug string, status model.ProductStatus) *model.Product {
	product := &model.Product{
		Name:         "Test " + slug,
		Slug:         slug,
		Status:       status,
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
	require.NoError(t, e.products.CreateProduct(product))
	return product
}

// do sends body as JSON. Admin requests carry the test admin key.
func (e *testEnv) do(t *testing.T, method, path string, body interface{}, asAdmin bool) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if asAdmin {
		req.Header.Set(middleware.AdminKeyHeader, testAdminKey)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func assertErrorCode(t *testing.T, w *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	require.Equal(t, status, w.Code, w.Body.String())
	require.Equal(t, code, decode(t, w)["error"])
}
