package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ikkim/storefront-backend/config"
	"github.com/ikkim/storefront-backend/internal/app/controller"
	"github.com/ikkim/storefront-backend/internal/app/repository"
	"github.com/ikkim/storefront-backend/internal/app/service"
	"github.com/ikkim/storefront-backend/internal/db"
	"github.com/ikkim/storefront-backend/internal/middleware"
	"github.com/ikkim/storefront-backend/internal/pricing"
	"github.com/ikkim/storefront-backend/internal/router"
	"github.com/ikkim/storefront-backend/internal/scheduler"
	"github.com/ikkim/storefront-backend/pkg/logger"
	"github.com/ikkim/storefront-backend/pkg/redis"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	logger.Initialize(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		EnableColor: cfg.Log.Format == "console",
	})

	logger.Info("Starting storefront backend", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   cfg.Log.Level,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Seed database (optional)
	if err := db.Seed(cfg.Coupon.Codes); err != nil {
		logger.Warn("Failed to seed database", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// 선택 세션 저장소
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Fatal("Failed to initialize redis", err)
	}
	defer func() {
		if err := redis.Close(); err != nil {
			logger.Error("Failed to close redis connection", err)
		}
	}()

	// Initialize repositories
	productRepo := repository.NewProductRepository(db.GetDB())
	orderRepo := repository.NewOrderRepository(db.GetDB())
	couponRepo := repository.NewCouponRepository(db.GetDB())

	// Initialize services
	engine := pricing.NewEngine(pricing.Options{BundleRatio: cfg.Pricing.BundleRatio})
	productService := service.NewProductService(productRepo)
	pricingService := service.NewPricingService(productService, engine, cfg.Pricing.BaseSeedQuantity)
	selectionStore := redis.NewSelectionStore(redis.GetClient(), cfg.Pricing.SessionTTL)
	selectionService := service.NewSelectionService(selectionStore, productService, pricingService)
	couponService := service.NewCouponService(couponRepo, cfg.Coupon.Codes)
	orderService := service.NewOrderService(orderRepo, productService, pricingService, selectionService, couponService)

	couponScheduler := scheduler.NewCouponScheduler(couponService, cfg.Coupon.RefreshSpec)
	if err := couponScheduler.Start(); err != nil {
		logger.Fatal("Failed to start coupon scheduler", err)
	}
	defer couponScheduler.Stop()

	// Initialize controllers
	productController := controller.NewProductController(productService, pricingService)
	selectionController := controller.NewSelectionController(selectionService)
	couponController := controller.NewCouponController(couponService)
	orderController := controller.NewOrderController(orderService)

	if cfg.Admin.APIKey == "" {
		logger.Warn("ADMIN_API_KEY is not set, admin endpoints are disabled")
	}
	adminMiddleware := middleware.NewAdminMiddleware(cfg.Admin.APIKey)

	r := router.NewRouter(
		productController,
		selectionController,
		couponController,
		orderController,
		adminMiddleware,
		cfg,
	)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: r.Setup(),
	}

	go func() {
		logger.Info("Server started successfully", map[string]interface{}{
			"address": srv.Addr,
			"pid":     os.Getpid(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", err)
	}

	logger.Info("Server stopped successfully")
}
