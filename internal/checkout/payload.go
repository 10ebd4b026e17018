package checkout

import "github.com/ikkim/storefront-backend/internal/pricing"

// VariantLine is one selected option as the order endpoint expects it.
type VariantLine struct {
	Value    string  `json:"value"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// GroupedVariants maps a group name to its selected options.
type GroupedVariants map[string][]VariantLine

// Payload is the order submission body.
type Payload struct {
	Quantity int             `json:"quantity"`
	Variants GroupedVariants `json:"variants"`
	Coupon   string          `json:"coupon_code,omitempty"`
	OrderTotals
}

// GroupVariants flattens the active non-base selections by group, keeping
// selection order inside each group.
func GroupVariants(selections []pricing.VariantSelection) GroupedVariants {
	grouped := GroupedVariants{}
	for _, sel := range selections {
		if sel.IsBaseVariant || sel.Quantity <= 0 {
			continue
		}
		grouped[sel.Group] = append(grouped[sel.Group], VariantLine{
			Value:    sel.Item.Value,
			Price:    money(sel.Item.Price),
			Quantity: sel.Quantity,
		})
	}
	return grouped
}

func BuildPayload(selections []pricing.VariantSelection, b pricing.PriceBreakdown, totals OrderTotals, couponCode string) Payload {
	return Payload{
		Quantity:    b.TotalQuantity,
		Variants:    GroupVariants(selections),
		Coupon:      NormalizeCode(couponCode),
		OrderTotals: totals,
	}
}
