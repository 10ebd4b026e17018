package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/storefront-backend/config"
	"github.com/ikkim/storefront-backend/internal/app/controller"
	"github.com/ikkim/storefront-backend/internal/middleware"
)

type Router struct {
	productController   *controller.ProductController
	selectionController *controller.SelectionController
	couponController    *controller.CouponController
	orderController     *controller.OrderController
	adminMiddleware     *middleware.AdminMiddleware
	config              *config.Config
}

func NewRouter(
	productController *controller.ProductController,
	selectionController *controller.SelectionController,
	couponController *controller.CouponController,
	orderController *controller.OrderController,
	adminMiddleware *middleware.AdminMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		productController:   productController,
		selectionController: selectionController,
		couponController:    couponController,
		orderController:     orderController,
		adminMiddleware:     adminMiddleware,
		config:              cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Storefront API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		products := v1.Group("/products")
		{
			products.GET("", r.productController.ListProducts)
			products.GET("/:id", r.productController.GetProduct)
			products.POST("/:id/quote", r.productController.Quote)
		}

		v1.GET("/pages/:slug", r.productController.GetProductBySlug)

		selections := v1.Group("/selections")
		{
			selections.POST("", r.selectionController.StartSelection)
			selections.GET("/:id", r.selectionController.GetSelection)
			selections.POST("/:id/variants", r.selectionController.AddVariant)
			selections.PUT("/:id/variants", r.selectionController.UpdateVariantQuantity)
			selections.POST("/:id/toggle", r.selectionController.ToggleVariant)
			selections.PUT("/:id/quantity", r.selectionController.SetQuantity)
		}

		v1.POST("/coupons/validate", r.couponController.ValidateCoupon)

		orders := v1.Group("/orders")
		{
			orders.POST("", r.orderController.CreateOrder)
			orders.POST("/preview", r.orderController.PreviewOrder)
			orders.GET("/:id", r.orderController.GetOrder)
		}

		admin := v1.Group("/admin")
		admin.Use(r.adminMiddleware.RequireAdmin())
		{
			admin.GET("/products", r.productController.ListAllProducts)
			admin.POST("/products", r.productController.CreateProduct)
			admin.PUT("/products/:id", r.productController.UpdateProduct)
			admin.DELETE("/products/:id", r.productController.DeleteProduct)
			admin.GET("/products/:id/price-table.xlsx", r.productController.ExportPriceTable)

			admin.GET("/orders", r.orderController.ListOrders)
			admin.PUT("/orders/:id/status", r.orderController.UpdateOrderStatus)

			admin.POST("/coupons", r.couponController.SaveCoupon)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-Request-ID, X-Admin-Key, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
