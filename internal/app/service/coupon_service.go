package service

import (
	"errors"
	"fmt"

	"github.com/ikkim/storefront-backend/internal/app/model"
	"github.com/ikkim/storefront-backend/internal/app/repository"
	"github.com/ikkim/storefront-backend/internal/checkout"
	"github.com/ikkim/storefront-backend/pkg/logger"
)

var (
	ErrInvalidCoupon = checkout.ErrInvalidCoupon
	ErrEmptyCoupon   = checkout.ErrEmptyCoupon
)

type CouponService interface {
	Validate(code string) (float64, error)
	Refresh() error
	SaveCoupon(code string, amount float64, active bool) (*model.Coupon, error)
}

type couponService struct {
	couponRepo repository.CouponRepository
	seed       map[string]float64
	book       *checkout.CouponBook
}

// NewCouponService starts with the configured codes only. Refresh layers the
// active coupons from the database over them.
func NewCouponService(couponRepo repository.CouponRepository, seed map[string]float64) CouponService {
	return &couponService{
		couponRepo: couponRepo,
		seed:       seed,
		book:       checkout.NewCouponBook(seed),
	}
}

func (s *couponService) Validate(code string) (float64, error) {
	amount, err := s.book.Lookup(code)
	if err != nil {
		if errors.Is(err, checkout.ErrInvalidCoupon) {
			logger.Warn("Invalid coupon code", map[string]interface{}{
				"code": checkout.NormalizeCode(code),
			})
		}
		return 0, err
	}
	return amount, nil
}

func (s *couponService) Refresh() error {
	coupons, err := s.couponRepo.FindActive()
	if err != nil {
		logger.Error("Failed to refresh coupon book", err)
		return err
	}

	codes := make(map[string]float64, len(s.seed)+len(coupons))
	for code, amount := range s.seed {
		codes[code] = amount
	}
	for _, c := range coupons {
		codes[c.Code] = c.Amount
	}
	s.book.Replace(codes)

	logger.Info("Coupon book refreshed", map[string]interface{}{
		"configured": len(s.seed),
		"stored":     len(coupons),
		"total":      s.book.Len(),
	})
	return nil
}

func (s *couponService) SaveCoupon(code string, amount float64, active bool) (*model.Coupon, error) {
	code = checkout.NormalizeCode(code)
	if code == "" {
		return nil, ErrEmptyCoupon
	}
	if amount < 0 {
		return nil, fmt.Errorf("%w: amount must not be negative", ErrInvalidCoupon)
	}

	coupon := &model.Coupon{Code: code, Amount: amount, Active: active}
	if err := s.couponRepo.Upsert(coupon); err != nil {
		return nil, err
	}

	if err := s.Refresh(); err != nil {
		return nil, err
	}

	logger.Info("Coupon saved", map[string]interface{}{
		"code":   code,
		"amount": amount,
		"active": active,
	})
	return coupon, nil
}
