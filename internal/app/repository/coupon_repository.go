package repository

import (
	"github.com/ikkim/storefront-backend/internal/app/model"
	"github.com/ikkim/storefront-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CouponRepository interface {
	Create(coupon *model.Coupon) error
	FindActive() ([]model.Coupon, error)
	Upsert(coupon *model.Coupon) error
}

type couponRepository struct {
	db *gorm.DB
}

func NewCouponRepository(db *gorm.DB) CouponRepository {
	return &couponRepository{db: db}
}

func (r *couponRepository) Create(coupon *model.Coupon) error {
	if err := r.db.Create(coupon).Error; err != nil {
		logger.Error("Failed to create coupon in database", err, map[string]interface{}{
			"code": coupon.Code,
		})
		return err
	}
	return nil
}

func (r *couponRepository) FindActive() ([]model.Coupon, error) {
	var coupons []model.Coupon
	if err := r.db.Where("active = ?", true).Order("code").Find(&coupons).Error; err != nil {
		logger.Error("Failed to find active coupons in database", err)
		return nil, err
	}
	return coupons, nil
}

// Upsert inserts the coupon or overwrites amount and active flag of the
// existing row with the same code.
func (r *couponRepository) Upsert(coupon *model.Coupon) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoUpdates: clause.AssignmentColumns([]string{"amount", "active", "updated_at"}),
	}).Create(coupon).Error
	if err != nil {
		logger.Error("Failed to upsert coupon in database", err, map[string]interface{}{
			"code": coupon.Code,
		})
		return err
	}

	logger.Debug("Coupon upserted in database", map[string]interface{}{
		"code":   coupon.Code,
		"amount": coupon.Amount,
		"active": coupon.Active,
	})
	return nil
}
