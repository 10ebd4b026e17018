package spreadsheet

import (
	"fmt"
	"io"

	"github.com/ikkim/storefront-backend/internal/pricing"
	"github.com/xuri/excelize/v2"
)

const (
	priceSheet = "Price table"
	tierSheet  = "Tiers"

	// MaxPriceTableQuantity caps the export size.
	MaxPriceTableQuantity = 500
)

var priceHeader = []interface{}{
	"Quantity", "Unit price", "Base price", "Subtotal", "Tier", "Discount type", "Discount", "Final total", "Per unit",
}

var tierHeader = []interface{}{"Min quantity", "Discount", "Discount type", "Source"}

// WritePriceTable writes one row per quantity 1..maxQty with the engine's
// breakdown for a product with no variant surcharges, plus a sheet listing
// every tier the engine considers.
func WritePriceTable(w io.Writer, engine *pricing.Engine, cfg pricing.Config, maxQty int) error {
	if maxQty < 1 || maxQty > MaxPriceTableQuantity {
		return fmt.Errorf("quantity must be between 1 and %d, got %d", MaxPriceTableQuantity, maxQty)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", priceSheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(tierSheet); err != nil {
		return err
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return err
	}

	if err := f.SetSheetRow(priceSheet, "A1", &priceHeader); err != nil {
		return err
	}
	if err := f.SetCellStyle(priceSheet, "A1", "I1", header); err != nil {
		return err
	}

	for qty := 1; qty <= maxQty; qty++ {
		q := qty
		b := engine.Calculate(pricing.Input{Product: cfg, Quantity: &q})

		tier, discountType := "", ""
		if b.AppliedComboTier != nil {
			tier = fmt.Sprintf("%d+", b.AppliedComboTier.MinQuantity)
			discountType = string(b.AppliedComboTier.DiscountType)
		}

		row := []interface{}{
			qty, b.UnitPrice, b.BasePrice, b.Subtotal, tier, discountType, b.ComboDiscount, b.FinalTotal, b.FinalTotal / float64(qty),
		}
		cellRef, err := excelize.CoordinatesToCellName(1, qty+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(priceSheet, cellRef, &row); err != nil {
			return err
		}
	}

	last := maxQty + 1
	for _, col := range []string{"B", "C", "D", "G", "H", "I"} {
		if err := f.SetCellStyle(priceSheet, fmt.Sprintf("%s2", col), fmt.Sprintf("%s%d", col, last), money); err != nil {
			return err
		}
	}

	if err := writeTiers(f, cfg, engine, header); err != nil {
		return err
	}

	_, err = f.WriteTo(w)
	return err
}

func writeTiers(f *excelize.File, cfg pricing.Config, engine *pricing.Engine, header int) error {
	if err := f.SetSheetRow(tierSheet, "A1", &tierHeader); err != nil {
		return err
	}
	if err := f.SetCellStyle(tierSheet, "A1", "D1", header); err != nil {
		return err
	}

	bulk := pricing.NormalizeBulkTiers(cfg.BasePrice(), cfg.BulkPricing, engine.BundleRatio())
	tiers := pricing.MergeTiers(cfg.ComboPricing, bulk)

	for i, t := range tiers {
		source := "combo"
		if i >= len(tiers)-len(bulk) {
			source = "bulk"
		}
		row := []interface{}{t.MinQuantity, t.Discount, string(t.DiscountType), source}
		cellRef, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(tierSheet, cellRef, &row); err != nil {
			return err
		}
	}
	return nil
}
