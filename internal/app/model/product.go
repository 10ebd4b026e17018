package model

import (
	"time"

	"github.com/ikkim/storefront-backend/internal/checkout"
	"github.com/ikkim/storefront-backend/internal/pricing"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProductStatus string

const (
	ProductStatusActive ProductStatus = "active" // 판매 중
	ProductStatusDraft  ProductStatus = "draft"  // 비공개
)

type Product struct {
	ID                         uint                                          `gorm:"primarykey" json:"id"`                            // 상품 ID
	Name                       string                                        `gorm:"not null" json:"name"`                            // 상품명
	Slug                       string                                        `gorm:"uniqueIndex;not null" json:"slug"`                // 랜딩 페이지 경로
	Description                string                                        `gorm:"type:text" json:"description"`                    // 상품 설명
	Status                     ProductStatus                                 `gorm:"type:varchar(20);default:'active'" json:"status"` // 공개 상태
	ImageURL                   string                                        `json:"image_url"`                                       // 대표 이미지
	RegularPrice               float64                                       `gorm:"not null;default:0" json:"regular_price"`         // 정가
	DiscountedPrice            float64                                       `gorm:"default:0" json:"discounted_price"`               // 할인가 (0이면 정가 적용)
	Variants                   datatypes.JSONSlice[pricing.VariantGroup]     `json:"variants"`                                        // 옵션 그룹
	ComboPricing               datatypes.JSONSlice[pricing.ComboPricingTier] `json:"combo_pricing"`                                   // 수량 할인 구간
	BulkPricing                datatypes.JSONSlice[pricing.BulkPricingTier]  `json:"bulk_pricing"`                                    // 묶음 가격 구간
	FreeShipping               bool                                          `gorm:"default:false" json:"free_shipping"`              // 무료 배송 여부
	DeliveryChargeInsideDhaka  float64                                       `gorm:"default:0" json:"delivery_charge_inside_dhaka"`   // 다카 시내 배송비
	DeliveryChargeOutsideDhaka float64                                       `gorm:"default:0" json:"delivery_charge_outside_dhaka"`  // 다카 외 지역 배송비
	CreatedAt                  time.Time                                     `json:"created_at"`                                      // 생성 시각
	UpdatedAt                  time.Time                                     `json:"updated_at"`                                      // 수정 시각
	DeletedAt                  gorm.DeletedAt                                `gorm:"index" json:"-"`                                  // 삭제 시각(소프트 삭제)

	Orders []Order `gorm:"foreignKey:ProductID" json:"-"`
}

func (Product) TableName() string {
	return "products"
}

// PricingConfig maps the stored product onto the engine input.
func (p *Product) PricingConfig() pricing.Config {
	return pricing.Config{
		Price:        pricing.Price{Regular: p.RegularPrice, Discounted: p.DiscountedPrice},
		Variants:     []pricing.VariantGroup(p.Variants),
		ComboPricing: []pricing.ComboPricingTier(p.ComboPricing),
		BulkPricing:  []pricing.BulkPricingTier(p.BulkPricing),
	}
}

func (p *Product) DeliveryConfig() checkout.DeliveryConfig {
	return checkout.DeliveryConfig{
		FreeShipping: p.FreeShipping,
		InsideDhaka:  p.DeliveryChargeInsideDhaka,
		OutsideDhaka: p.DeliveryChargeOutsideDhaka,
	}
}
