// Package checkout assembles the order total around a price breakdown:
// delivery charge, coupon discount and the order submission payload.
package checkout

import (
	"math"

	"github.com/ikkim/storefront-backend/internal/pricing"
	"github.com/shopspring/decimal"
)

type DeliveryArea string

const (
	DeliveryInsideDhaka  DeliveryArea = "inside_dhaka"
	DeliveryOutsideDhaka DeliveryArea = "outside_dhaka"
)

func (a DeliveryArea) Valid() bool {
	return a == DeliveryInsideDhaka || a == DeliveryOutsideDhaka
}

// DeliveryConfig is the shipping part of a product.
type DeliveryConfig struct {
	FreeShipping bool
	InsideDhaka  float64
	OutsideDhaka float64
}

// DeliveryCharge is 0 for free-shipping products. Anything that is not
// inside Dhaka is charged the outside rate.
func DeliveryCharge(area DeliveryArea, cfg DeliveryConfig) float64 {
	if cfg.FreeShipping {
		return 0
	}
	if area == DeliveryInsideDhaka {
		return money(cfg.InsideDhaka)
	}
	return money(cfg.OutsideDhaka)
}

// OrderTotals is what gets charged for one order.
type OrderTotals struct {
	Subtotal       float64 `json:"subtotal"`
	ComboDiscount  float64 `json:"combo_discount"`
	ProductTotal   float64 `json:"product_total"` // breakdown FinalTotal
	CouponDiscount float64 `json:"coupon_discount"`
	DeliveryCharge float64 `json:"delivery_charge"`
	TotalAmount    float64 `json:"total_amount"`
}

// Totals applies the coupon after the combo discount and then adds delivery.
// The coupon is capped at the product total so it never eats into delivery.
func Totals(b pricing.PriceBreakdown, delivery, coupon float64) OrderTotals {
	product := decimal.NewFromFloat(money(b.FinalTotal))
	couponAmount := decimal.NewFromFloat(money(coupon))
	if couponAmount.GreaterThan(product) {
		couponAmount = product
	}
	deliveryAmount := decimal.NewFromFloat(money(delivery))

	total := product.Sub(couponAmount).Add(deliveryAmount)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return OrderTotals{
		Subtotal:       round2(b.Subtotal),
		ComboDiscount:  round2(b.ComboDiscount),
		ProductTotal:   round2(b.FinalTotal),
		CouponDiscount: couponAmount.Round(2).InexactFloat64(),
		DeliveryCharge: deliveryAmount.Round(2).InexactFloat64(),
		TotalAmount:    total.Round(2).InexactFloat64(),
	}
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(money(v)).Round(2).InexactFloat64()
}

// money maps NaN, infinities and negative amounts to 0.
func money(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
