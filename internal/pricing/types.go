// Package pricing holds the variant selection state for a product page and the
// engine that turns it into a price breakdown. Nothing in here does I/O.
package pricing

// DiscountType controls how a combo tier's discount is applied.
type DiscountType string

const (
	DiscountTotal      DiscountType = "total"       // subtracted once from the subtotal
	DiscountPerProduct DiscountType = "per_product" // subtracted once per unit
)

// VariantOption is one selectable choice inside a variant group.
type VariantOption struct {
	Value string  `json:"value"`           // unique within the group
	Price float64 `json:"price"`           // per-unit surcharge, 0 means none
	Image string  `json:"image,omitempty"` // display only
}

// VariantGroup is a named set of options such as "Color" or "Pack Size".
type VariantGroup struct {
	Name    string          `json:"name"`
	Options []VariantOption `json:"options"`
}

// Find returns the option with the given value.
func (g VariantGroup) Find(value string) (VariantOption, bool) {
	for _, opt := range g.Options {
		if opt.Value == value {
			return opt, true
		}
	}
	return VariantOption{}, false
}

// ComboPricingTier is a volume discount activated at MinQuantity units.
type ComboPricingTier struct {
	MinQuantity  int          `json:"min_quantity"`
	Discount     float64      `json:"discount"`
	DiscountType DiscountType `json:"discount_type"`
}

// BulkPricingTier is the legacy volume-discount shape. Price is either a
// per-unit override or a bundle total, see NormalizeBulkTiers.
type BulkPricingTier struct {
	MinQuantity int     `json:"min_quantity"`
	Price       float64 `json:"price"`
}

// Price is the product's list price pair.
type Price struct {
	Regular    float64 `json:"regular"`
	Discounted float64 `json:"discounted"`
}

// Config is the pricing view of a product.
type Config struct {
	Price        Price              `json:"price"`
	Variants     []VariantGroup     `json:"variants"`
	ComboPricing []ComboPricingTier `json:"combo_pricing"`
	BulkPricing  []BulkPricingTier  `json:"bulk_pricing"`
}

// BasePrice is the discounted price when it is set and positive, otherwise the
// regular price.
func (c Config) BasePrice() float64 {
	discounted := sanitize(c.Price.Discounted)
	if discounted > 0 {
		return discounted
	}
	return sanitize(c.Price.Regular)
}

// Group returns the variant group with the given name.
func (c Config) Group(name string) (VariantGroup, bool) {
	for _, g := range c.Variants {
		if g.Name == name {
			return g, true
		}
	}
	return VariantGroup{}, false
}

// PriceBreakdown is the engine output. FinalTotal = max(0, Subtotal - ComboDiscount).
type PriceBreakdown struct {
	UnitPrice        float64           `json:"unit_price"`
	RegularPrice     float64           `json:"regular_price"`
	DiscountPercent  int               `json:"discount_percent"`
	BasePrice        float64           `json:"base_price"` // UnitPrice x quantity
	VariantTotal     float64           `json:"variant_total"`
	Subtotal         float64           `json:"subtotal"`
	ComboDiscount    float64           `json:"combo_discount"`
	Savings          float64           `json:"savings"`
	FinalTotal       float64           `json:"final_total"`
	TotalQuantity    int               `json:"total_quantity"`
	AppliedComboTier *ComboPricingTier `json:"applied_combo_tier"`
}
