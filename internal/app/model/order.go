package model

import (
	"time"

	"github.com/ikkim/storefront-backend/internal/checkout"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type OrderStatus string // 주문 상태 코드

const (
	OrderStatusPending   OrderStatus = "pending"   // 주문 접수
	OrderStatusConfirmed OrderStatus = "confirmed" // 주문 확정
	OrderStatusShipped   OrderStatus = "shipped"   // 배송 중
	OrderStatusDelivered OrderStatus = "delivered" // 배송 완료
	OrderStatusCancelled OrderStatus = "cancelled" // 주문 취소
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID              uint                                         `gorm:"primarykey" json:"id"`                             // 주문 ID
	ProductID       uint                                         `gorm:"not null;index" json:"product_id"`                 // 상품 ID
	CustomerName    string                                       `gorm:"not null" json:"customer_name"`                    // 주문자 이름
	CustomerPhone   string                                       `gorm:"not null;index" json:"customer_phone"`             // 연락처
	CustomerAddress string                                       `gorm:"type:text;not null" json:"customer_address"`       // 배송지 주소
	DeliveryArea    checkout.DeliveryArea                        `gorm:"type:varchar(20);not null" json:"delivery_area"`   // 배송 지역
	Quantity        int                                          `gorm:"not null" json:"quantity"`                         // 주문 수량
	Variants        datatypes.JSONType[checkout.GroupedVariants] `json:"variants"`                                         // 선택 옵션 스냅샷
	Subtotal        float64                                      `gorm:"not null" json:"subtotal"`                         // 할인 전 금액
	ComboDiscount   float64                                      `gorm:"default:0" json:"combo_discount"`                  // 수량 할인
	DeliveryCharge  float64                                      `gorm:"default:0" json:"delivery_charge"`                 // 배송비
	CouponCode      string                                       `gorm:"type:varchar(50)" json:"coupon_code,omitempty"`    // 쿠폰 코드
	CouponDiscount  float64                                      `gorm:"default:0" json:"coupon_discount"`                 // 쿠폰 할인
	TotalAmount     float64                                      `gorm:"not null" json:"total_amount"`                     // 총 결제 금액
	Status          OrderStatus                                  `gorm:"type:varchar(20);default:'pending'" json:"status"` // 주문 상태
	CreatedAt       time.Time                                    `json:"created_at"`                                       // 생성 시각
	UpdatedAt       time.Time                                    `json:"updated_at"`                                       // 수정 시각
	DeletedAt       gorm.DeletedAt                               `gorm:"index" json:"-"`                                   // 삭제 시각(소프트 삭제)

	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 상품 정보
}

func (Order) TableName() string {
	return "orders"
}
