package model

import "time"

type Coupon struct {
	ID        uint      `gorm:"primarykey" json:"id"`                              // 쿠폰 ID
	Code      string    `gorm:"uniqueIndex;not null;type:varchar(50)" json:"code"` // 쿠폰 코드 (대문자)
	Amount    float64   `gorm:"not null" json:"amount"`                            // 정액 할인 금액
	Active    bool      `gorm:"not null" json:"active"`                            // 사용 가능 여부
	CreatedAt time.Time `json:"created_at"`                                        // 생성 시각
	UpdatedAt time.Time `json:"updated_at"`                                        // 수정 시각
}

func (Coupon) TableName() string {
	return "coupons"
}
