package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/storefront-backend/internal/app/service"
	"github.com/ikkim/storefront-backend/internal/checkout"
	"github.com/ikkim/storefront-backend/internal/middleware"
)

type CouponController struct {
	couponService service.CouponService
}

func NewCouponController(couponService service.CouponService) *CouponController {
	return &CouponController{
		couponService: couponService,
	}
}

type ValidateCouponRequest struct {
	Code string `json:"code"`
}

type SaveCouponRequest struct {
	Code   string  `json:"code" binding:"required"`
	Amount float64 `json:"amount" binding:"gte=0"`
	Active *bool   `json:"active"`
}

// ValidateCoupon checks a code and returns its flat discount
// POST /api/v1/coupons/validate
func (ctrl *CouponController) ValidateCoupon(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req ValidateCouponRequest
	if !bindJSON(c, log, &req) {
		return
	}

	amount, err := ctrl.couponService.Validate(req.Code)
	if err != nil {
		respondServiceError(c, log, err, "validate coupon")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":   checkout.NormalizeCode(req.Code),
		"amount": amount,
	})
}

// SaveCoupon creates or updates a coupon (Admin only)
// POST /api/v1/admin/coupons
func (ctrl *CouponController) SaveCoupon(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req SaveCouponRequest
	if !bindJSON(c, log, &req) {
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	coupon, err := ctrl.couponService.SaveCoupon(req.Code, req.Amount, active)
	if err != nil {
		respondServiceError(c, log, err, "save coupon")
		return
	}

	log.Info("Coupon saved", map[string]interface{}{
		"code":   coupon.Code,
		"active": coupon.Active,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Coupon saved successfully",
		"coupon":  coupon,
	})
}
