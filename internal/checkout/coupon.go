package checkout

import (
	"errors"
	"strings"
	"sync"
)

var (
	ErrInvalidCoupon = errors.New("invalid coupon code")
	ErrEmptyCoupon   = errors.New("coupon code is empty")
)

// CouponBook is the in-memory table of coupon codes and their flat discount.
// Replace swaps the whole table so readers never see a half-loaded book.
type CouponBook struct {
	mu    sync.RWMutex
	codes map[string]float64
}

func NewCouponBook(codes map[string]float64) *CouponBook {
	b := &CouponBook{}
	b.Replace(codes)
	return b
}

// NormalizeCode trims and upper-cases a coupon code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Lookup returns the flat discount for code.
func (b *CouponBook) Lookup(code string) (float64, error) {
	code = NormalizeCode(code)
	if code == "" {
		return 0, ErrEmptyCoupon
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	amount, ok := b.codes[code]
	if !ok {
		return 0, ErrInvalidCoupon
	}
	return amount, nil
}

func (b *CouponBook) Replace(codes map[string]float64) {
	next := make(map[string]float64, len(codes))
	for code, amount := range codes {
		code = NormalizeCode(code)
		if code == "" {
			continue
		}
		next[code] = money(amount)
	}

	b.mu.Lock()
	b.codes = next
	b.mu.Unlock()
}

func (b *CouponBook) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.codes)
}
