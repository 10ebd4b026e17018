// Package spreadsheet moves product pricing in and out of XLSX workbooks:
// catalog import for the seed command and the per-quantity price table
// export for the admin CMS.
package spreadsheet

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/ikkim/storefront-backend/internal/app/model"
	"github.com/ikkim/storefront-backend/internal/pricing"
	"github.com/xuri/excelize/v2"
)

// Import column order. Trailing optional columns may be left out.
const (
	colName = iota
	colSlug
	colRegular
	colDiscounted
	colFreeShipping
	colInsideDhaka
	colOutsideDhaka
	colVariants
	colCombo
	colBulk
)

const minColumns = colRegular + 1

// RowError explains why a row was skipped. Row is 1-based as shown in Excel.
type RowError struct {
	Row    int
	Reason string
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Reason)
}

type ImportResult struct {
	Sheet    string
	Products []model.Product
	Skipped  []RowError
}

// ReadProducts parses the first sheet of the workbook at path.
func ReadProducts(path string) (*ImportResult, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()
	return readProducts(f)
}

func ReadProductsFrom(r io.Reader) (*ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX stream: %w", err)
	}
	defer f.Close()
	return readProducts(f)
}

func readProducts(f *excelize.File) (*ImportResult, error) {
	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in XLSX file")
	}

	result := &ImportResult{Sheet: sheet}
	seen := make(map[string]bool)

	// 첫 행은 헤더
	for i, row := range rows[1:] {
		rowNum := i + 2
		if isBlank(row) {
			continue
		}

		product, err := parseRow(row)
		if err != nil {
			result.Skipped = append(result.Skipped, RowError{Row: rowNum, Reason: err.Error()})
			continue
		}
		if seen[product.Slug] {
			result.Skipped = append(result.Skipped, RowError{Row: rowNum, Reason: "duplicate slug " + product.Slug})
			continue
		}
		seen[product.Slug] = true
		result.Products = append(result.Products, *product)
	}

	return result, nil
}

func parseRow(row []string) (*model.Product, error) {
	if len(row) < minColumns {
		return nil, fmt.Errorf("expected at least %d columns, got %d", minColumns, len(row))
	}

	p := &model.Product{
		Name:   cell(row, colName),
		Slug:   strings.ToLower(cell(row, colSlug)),
		Status: model.ProductStatusActive,
	}
	if p.Name == "" || p.Slug == "" {
		return nil, fmt.Errorf("name and slug are required")
	}

	var err error
	if p.RegularPrice, err = parseAmount(cell(row, colRegular), "regular price"); err != nil {
		return nil, err
	}
	if p.DiscountedPrice, err = parseAmount(cell(row, colDiscounted), "discounted price"); err != nil {
		return nil, err
	}
	p.FreeShipping = parseBool(cell(row, colFreeShipping))
	if p.DeliveryChargeInsideDhaka, err = parseAmount(cell(row, colInsideDhaka), "inside dhaka charge"); err != nil {
		return nil, err
	}
	if p.DeliveryChargeOutsideDhaka, err = parseAmount(cell(row, colOutsideDhaka), "outside dhaka charge"); err != nil {
		return nil, err
	}

	if p.Variants, err = ParseVariants(cell(row, colVariants)); err != nil {
		return nil, err
	}
	if p.ComboPricing, err = ParseComboTiers(cell(row, colCombo)); err != nil {
		return nil, err
	}
	if p.BulkPricing, err = ParseBulkTiers(cell(row, colBulk)); err != nil {
		return nil, err
	}
	return p, nil
}

// ParseVariants reads "Color:Red=0|Blue=50;Size:L|XL=30". An option without
// a price costs nothing extra.
func ParseVariants(s string) ([]pricing.VariantGroup, error) {
	var groups []pricing.VariantGroup
	for _, part := range splitNonEmpty(s, ";") {
		name, options, ok := strings.Cut(part, ":")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid variant group %q", part)
		}

		group := pricing.VariantGroup{Name: name}
		for _, opt := range splitNonEmpty(options, "|") {
			value, price, hasPrice := strings.Cut(opt, "=")
			option := pricing.VariantOption{Value: strings.TrimSpace(value)}
			if option.Value == "" {
				return nil, fmt.Errorf("empty option in group %q", name)
			}
			if hasPrice {
				amount, err := parseAmount(price, "option price")
				if err != nil {
					return nil, err
				}
				option.Price = amount
			}
			group.Options = append(group.Options, option)
		}
		if len(group.Options) == 0 {
			return nil, fmt.Errorf("variant group %q has no options", name)
		}
		groups = append(groups, group)
	}
	return groups, nil
}

// ParseComboTiers reads "2:50:total|4:120:per_product". The type defaults to
// total.
func ParseComboTiers(s string) ([]pricing.ComboPricingTier, error) {
	var tiers []pricing.ComboPricingTier
	for _, part := range splitNonEmpty(s, "|") {
		fields := strings.Split(part, ":")
		if len(fields) < 2 || len(fields) > 3 {
			return nil, fmt.Errorf("invalid combo tier %q", part)
		}
		minQty, err := parseQuantity(fields[0])
		if err != nil {
			return nil, err
		}
		discount, err := parseAmount(fields[1], "combo discount")
		if err != nil {
			return nil, err
		}

		tier := pricing.ComboPricingTier{MinQuantity: minQty, Discount: discount, DiscountType: pricing.DiscountTotal}
		if len(fields) == 3 {
			switch t := pricing.DiscountType(strings.TrimSpace(fields[2])); t {
			case pricing.DiscountTotal, pricing.DiscountPerProduct:
				tier.DiscountType = t
			default:
				return nil, fmt.Errorf("unknown discount type %q", fields[2])
			}
		}
		tiers = append(tiers, tier)
	}
	return tiers, nil
}

// ParseBulkTiers reads "3:900|6:1600".
func ParseBulkTiers(s string) ([]pricing.BulkPricingTier, error) {
	var tiers []pricing.BulkPricingTier
	for _, part := range splitNonEmpty(s, "|") {
		qty, price, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("invalid bulk tier %q", part)
		}
		minQty, err := parseQuantity(qty)
		if err != nil {
			return nil, err
		}
		amount, err := parseAmount(price, "bulk price")
		if err != nil {
			return nil, err
		}
		if amount == 0 {
			return nil, fmt.Errorf("bulk tier %q has no price", part)
		}
		tiers = append(tiers, pricing.BulkPricingTier{MinQuantity: minQty, Price: amount})
	}
	return tiers, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func splitNonEmpty(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseAmount accepts "1,200" style thousands separators. Empty means 0.
func parseAmount(s, field string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid %s %q", field, s)
	}
	return v, nil
}

func parseQuantity(s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 1 {
		return 0, fmt.Errorf("invalid tier quantity %q", s)
	}
	return v, nil
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "1", "y", "yes", "true":
		return true
	}
	return false
}
