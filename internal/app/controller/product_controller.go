package controller

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/storefront-backend/internal/app/model"
	"github.com/ikkim/storefront-backend/internal/app/service"
	apperrors "github.com/ikkim/storefront-backend/internal/errors"
	"github.com/ikkim/storefront-backend/internal/middleware"
	"github.com/ikkim/storefront-backend/internal/pricing"
	"github.com/ikkim/storefront-backend/internal/spreadsheet"
)

const defaultPriceTableQuantity = 20

type ProductController struct {
	productService service.ProductService
	pricingService service.PricingService
}

func NewProductController(productService service.ProductService, pricingService service.PricingService) *ProductController {
	return &ProductController{
		productService: productService,
		pricingService: pricingService,
	}
}

type ProductRequest struct {
	Name                       string                     `json:"name" binding:"required"`
	Slug                       string                     `json:"slug" binding:"required"`
	Description                string                     `json:"description"`
	Status                     model.ProductStatus        `json:"status"`
	ImageURL                   string                     `json:"image_url"`
	RegularPrice               float64                    `json:"regular_price" binding:"gte=0"`
	DiscountedPrice            float64                    `json:"discounted_price" binding:"gte=0"`
	Variants                   []pricing.VariantGroup     `json:"variants"`
	ComboPricing               []pricing.ComboPricingTier `json:"combo_pricing"`
	BulkPricing                []pricing.BulkPricingTier  `json:"bulk_pricing"`
	FreeShipping               bool                       `json:"free_shipping"`
	DeliveryChargeInsideDhaka  float64                    `json:"delivery_charge_inside_dhaka" binding:"gte=0"`
	DeliveryChargeOutsideDhaka float64                    `json:"delivery_charge_outside_dhaka" binding:"gte=0"`
}

func (r *ProductRequest) apply(p *model.Product) {
	p.Name = r.Name
	p.Slug = r.Slug
	p.Description = r.Description
	p.Status = r.Status
	p.ImageURL = r.ImageURL
	p.RegularPrice = r.RegularPrice
	p.DiscountedPrice = r.DiscountedPrice
	p.Variants = r.Variants
	p.ComboPricing = r.ComboPricing
	p.BulkPricing = r.BulkPricing
	p.FreeShipping = r.FreeShipping
	p.DeliveryChargeInsideDhaka = r.DeliveryChargeInsideDhaka
	p.DeliveryChargeOutsideDhaka = r.DeliveryChargeOutsideDhaka
}

type QuoteRequest struct {
	Selections []service.SelectionInput `json:"selections"`
	Quantity   *int                     `json:"quantity"`
}

// ListProducts returns the published catalog
// GET /api/v1/products
func (ctrl *ProductController) ListProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	status := model.ProductStatusActive
	products, err := ctrl.productService.ListProducts(&status)
	if err != nil {
		respondServiceError(c, log, err, "list products")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// GetProduct returns a published product with the breakdown for its initial
// selection.
// GET /api/v1/products/:id
func (ctrl *ProductController) GetProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, log, "id")
	if !ok {
		return
	}

	product, err := ctrl.productService.GetActiveProduct(id)
	if err != nil {
		respondServiceError(c, log, err, "get product")
		return
	}

	ctrl.respondWithProduct(c, product)
}

// GetProductBySlug resolves a landing page path
// GET /api/v1/pages/:slug
func (ctrl *ProductController) GetProductBySlug(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	product, err := ctrl.productService.GetProductBySlug(c.Param("slug"))
	if err != nil {
		respondServiceError(c, log, err, "get product")
		return
	}

	ctrl.respondWithProduct(c, product)
}

func (ctrl *ProductController) respondWithProduct(c *gin.Context, product *model.Product) {
	state := ctrl.pricingService.NewState(product)
	c.JSON(http.StatusOK, gin.H{
		"product":   product,
		"breakdown": ctrl.pricingService.Calculate(product, state.Selections()),
	})
}

// Quote prices a selection held by the client
// POST /api/v1/products/:id/quote
func (ctrl *ProductController) Quote(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, log, "id")
	if !ok {
		return
	}

	var req QuoteRequest
	if !bindJSON(c, log, &req) {
		return
	}

	quote, err := ctrl.pricingService.Quote(id, req.Selections, req.Quantity)
	if err != nil {
		respondServiceError(c, log, err, "quote product")
		return
	}

	c.JSON(http.StatusOK, quote)
}

// ListAllProducts returns products in every status (Admin only)
// GET /api/v1/admin/products?status=draft
func (ctrl *ProductController) ListAllProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var status *model.ProductStatus
	if s := c.Query("status"); s != "" {
		st := model.ProductStatus(s)
		status = &st
	}

	products, err := ctrl.productService.ListProducts(status)
	if err != nil {
		respondServiceError(c, log, err, "list products")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// CreateProduct creates a new product (Admin only)
// POST /api/v1/admin/products
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req ProductRequest
	if !bindJSON(c, log, &req) {
		return
	}

	product := &model.Product{}
	req.apply(product)

	if err := ctrl.productService.CreateProduct(product); err != nil {
		respondServiceError(c, log, err, "create product")
		return
	}

	log.Info("Product created successfully", map[string]interface{}{
		"product_id": product.ID,
		"slug":       product.Slug,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Product created successfully",
		"product": product,
	})
}

// UpdateProduct replaces a product's content (Admin only)
// PUT /api/v1/admin/products/:id
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, log, "id")
	if !ok {
		return
	}

	var req ProductRequest
	if !bindJSON(c, log, &req) {
		return
	}

	product, err := ctrl.productService.GetProductByID(id)
	if err != nil {
		respondServiceError(c, log, err, "update product")
		return
	}
	req.apply(product)

	if err := ctrl.productService.UpdateProduct(product); err != nil {
		respondServiceError(c, log, err, "update product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product updated successfully",
		"product": product,
	})
}

// DeleteProduct deletes a product (Admin only)
// DELETE /api/v1/admin/products/:id
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, log, "id")
	if !ok {
		return
	}

	if err := ctrl.productService.DeleteProduct(id); err != nil {
		respondServiceError(c, log, err, "delete product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product deleted successfully",
	})
}

// ExportPriceTable streams the per-quantity price table as XLSX (Admin only)
// GET /api/v1/admin/products/:id/price-table.xlsx?max=20
func (ctrl *ProductController) ExportPriceTable(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, log, "id")
	if !ok {
		return
	}

	maxQty := defaultPriceTableQuantity
	if s := c.Query("max"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 || v > spreadsheet.MaxPriceTableQuantity {
			apperrors.BadRequest(c, apperrors.ValidationInvalidRange,
				fmt.Sprintf("max must be between 1 and %d", spreadsheet.MaxPriceTableQuantity))
			return
		}
		maxQty = v
	}

	product, err := ctrl.productService.GetProductByID(id)
	if err != nil {
		respondServiceError(c, log, err, "export product")
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s-price-table.xlsx"`, product.Slug))
	c.Status(http.StatusOK)

	if err := spreadsheet.WritePriceTable(c.Writer, ctrl.pricingService.Engine(), product.PricingConfig(), maxQty); err != nil {
		log.Error("Failed to write price table", err, map[string]interface{}{
			"product_id": id,
		})
		return
	}

	log.Info("Price table exported", map[string]interface{}{
		"product_id": id,
		"max_qty":    maxQty,
	})
}
