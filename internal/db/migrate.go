package db

import (
	"github.com/ikkim/storefront-backend/internal/app/model"
	"github.com/ikkim/storefront-backend/internal/pricing"
	"github.com/ikkim/storefront-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Models is the migration set shared by the server and the test database.
func Models() []interface{} {
	return []interface{}{
		&model.Product{},
		&model.Order{},
		&model.Coupon{},
	}
}

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := Models()
	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// Seed stores the configured coupon codes and a demo product on an empty
// catalog.
func Seed(coupons map[string]float64) error {
	return SeedWith(DB, coupons)
}

func SeedWith(conn *gorm.DB, coupons map[string]float64) error {
	logger.Info("Seeding initial data...")

	if err := seedCoupons(conn, coupons); err != nil {
		logger.Error("Failed to seed coupons", err)
		return err
	}
	if err := seedDemoProduct(conn); err != nil {
		logger.Error("Failed to seed demo product", err)
		return err
	}

	logger.Info("Initial data seeded successfully")
	return nil
}

func seedCoupons(conn *gorm.DB, coupons map[string]float64) error {
	for code, amount := range coupons {
		coupon := model.Coupon{Code: code, Amount: amount, Active: true}
		err := conn.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoNothing: true,
		}).Create(&coupon).Error
		if err != nil {
			logger.Error("Failed to create coupon", err, map[string]interface{}{
				"code": code,
			})
			return err
		}
	}

	logger.Info("Coupons seeded", map[string]interface{}{
		"count": len(coupons),
	})
	return nil
}

func seedDemoProduct(conn *gorm.DB) error {
	var count int64
	if err := conn.Model(&model.Product{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Info("Products already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	product := model.Product{
		Name:            "Classic Cotton Panjabi",
		Slug:            "classic-cotton-panjabi",
		Description:     "Breathable cotton panjabi for everyday wear.",
		Status:          model.ProductStatusActive,
		RegularPrice:    1500,
		DiscountedPrice: 1200,
		Variants: []pricing.VariantGroup{
			{Name: "Color", Options: []pricing.VariantOption{{Value: "White"}, {Value: "Navy", Price: 50}}},
			{Name: "Size", Options: []pricing.VariantOption{{Value: "M"}, {Value: "L"}, {Value: "XL", Price: 100}}},
		},
		ComboPricing: []pricing.ComboPricingTier{
			{MinQuantity: 2, Discount: 100, DiscountType: pricing.DiscountTotal},
			{MinQuantity: 4, Discount: 80, DiscountType: pricing.DiscountPerProduct},
		},
		DeliveryChargeInsideDhaka:  60,
		DeliveryChargeOutsideDhaka: 120,
	}
	if err := conn.Create(&product).Error; err != nil {
		return err
	}

	logger.Info("Demo product seeded", map[string]interface{}{
		"product_id": product.ID,
		"slug":       product.Slug,
	})
	return nil
}
