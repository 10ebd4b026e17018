package pricing

import (
	"math"
	"sort"
)

// DefaultBundleRatio is the threshold, as a multiple of the unit price, at
// which a bulk tier price is read as a bundle total instead of a unit price.
const DefaultBundleRatio = 1.5

type Options struct {
	BundleRatio float64
}

// Engine computes price breakdowns. It holds no per-product state and is safe
// to share.
type Engine struct {
	bundleRatio float64
}

func NewEngine(opts Options) *Engine {
	ratio := sanitize(opts.BundleRatio)
	if ratio == 0 {
		ratio = DefaultBundleRatio
	}
	return &Engine{bundleRatio: ratio}
}

func (e *Engine) BundleRatio() float64 {
	return e.bundleRatio
}

// Input is everything a breakdown depends on. A nil Quantity means the
// quantity is read from the selections (see TotalQuantity).
type Input struct {
	Product    Config
	Selections []VariantSelection
	Quantity   *int
}

// Calculate returns the breakdown for in. It never fails: malformed numbers
// are treated as 0 and the totals are never negative.
func (e *Engine) Calculate(in Input) PriceBreakdown {
	unit := in.Product.BasePrice()
	regular := sanitize(in.Product.Price.Regular)

	out := PriceBreakdown{
		UnitPrice:       unit,
		RegularPrice:    regular,
		DiscountPercent: discountPercent(regular, unit),
	}

	quantity := resolveQuantity(in)
	out.TotalQuantity = quantity
	if quantity == 0 {
		return out
	}

	for _, sel := range in.Selections {
		if sel.IsBaseVariant || sel.Quantity <= 0 {
			continue
		}
		out.VariantTotal += sanitize(sel.Item.Price) * float64(sel.Quantity)
	}
	out.BasePrice = unit * float64(quantity)
	out.Subtotal = out.BasePrice + out.VariantTotal

	tiers := MergeTiers(in.Product.ComboPricing, NormalizeBulkTiers(unit, in.Product.BulkPricing, e.bundleRatio))
	if tier, ok := SelectTier(tiers, quantity); ok {
		discount := tierDiscount(tier, quantity)
		if discount > out.Subtotal {
			discount = out.Subtotal
		}
		out.ComboDiscount = discount
		out.AppliedComboTier = &tier
	}

	out.FinalTotal = math.Max(0, out.Subtotal-out.ComboDiscount)
	if out.ComboDiscount > 0 {
		out.Savings = out.ComboDiscount
	}
	return out
}

// NormalizeBulkTiers converts legacy bulk tiers into per_product combo tiers.
// A price at or above ratio x basePrice is a bundle total for MinQuantity
// units; anything lower is a per-unit price. Tiers that would not lower the
// price are dropped.
func NormalizeBulkTiers(basePrice float64, bulk []BulkPricingTier, ratio float64) []ComboPricingTier {
	basePrice = sanitize(basePrice)
	if basePrice == 0 || len(bulk) == 0 {
		return nil
	}
	if ratio = sanitize(ratio); ratio == 0 {
		ratio = DefaultBundleRatio
	}

	tiers := make([]ComboPricingTier, 0, len(bulk))
	for _, b := range bulk {
		price := sanitize(b.Price)
		if price == 0 {
			continue
		}
		minQty := b.MinQuantity
		if minQty < 1 {
			minQty = 1
		}

		unitPrice := price
		if price >= basePrice*ratio {
			unitPrice = price / float64(minQty)
		}
		discount := basePrice - unitPrice
		if discount <= 0 {
			continue
		}
		tiers = append(tiers, ComboPricingTier{
			MinQuantity:  minQty,
			Discount:     discount,
			DiscountType: DiscountPerProduct,
		})
	}
	return tiers
}

// MergeTiers returns a sanitized copy of combo followed by bulk.
func MergeTiers(combo, bulk []ComboPricingTier) []ComboPricingTier {
	merged := make([]ComboPricingTier, 0, len(combo)+len(bulk))
	for _, list := range [][]ComboPricingTier{combo, bulk} {
		for _, t := range list {
			merged = append(merged, sanitizeTier(t))
		}
	}
	return merged
}

// SelectTier picks the tier with the highest MinQuantity that quantity still
// reaches. On equal thresholds the earlier tier wins.
func SelectTier(tiers []ComboPricingTier, quantity int) (ComboPricingTier, bool) {
	if quantity < 1 || len(tiers) == 0 {
		return ComboPricingTier{}, false
	}

	sorted := append([]ComboPricingTier(nil), tiers...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MinQuantity > sorted[j].MinQuantity
	})

	for _, t := range sorted {
		if t.MinQuantity <= quantity {
			return t, true
		}
	}
	return ComboPricingTier{}, false
}

func tierDiscount(t ComboPricingTier, quantity int) float64 {
	if t.DiscountType == DiscountPerProduct {
		return t.Discount * float64(quantity)
	}
	return t.Discount
}

func resolveQuantity(in Input) int {
	if in.Quantity != nil {
		if *in.Quantity < 0 {
			return 0
		}
		return *in.Quantity
	}
	return TotalQuantity(in.Selections)
}

func sanitizeTier(t ComboPricingTier) ComboPricingTier {
	if t.MinQuantity < 1 {
		t.MinQuantity = 1
	}
	t.Discount = sanitize(t.Discount)
	if t.DiscountType != DiscountPerProduct {
		t.DiscountType = DiscountTotal
	}
	return t
}

func discountPercent(regular, unit float64) int {
	if regular <= 0 || unit >= regular {
		return 0
	}
	return int(math.Round((regular - unit) / regular * 100))
}

// sanitize maps NaN, infinities and negative amounts to 0.
func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
