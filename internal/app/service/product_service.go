package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ikkim/storefront-backend/internal/app/model"
	"github.com/ikkim/storefront-backend/internal/app/repository"
	"github.com/ikkim/storefront-backend/internal/pricing"
	"github.com/ikkim/storefront-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidProduct  = errors.New("invalid product")
)

type ProductService interface {
	ListProducts(status *model.ProductStatus) ([]model.Product, error)
	GetProductByID(id uint) (*model.Product, error)
	GetActiveProduct(id uint) (*model.Product, error)
	GetProductBySlug(slug string) (*model.Product, error)
	CreateProduct(product *model.Product) error
	UpdateProduct(product *model.Product) error
	DeleteProduct(id uint) error
}

type productService struct {
	productRepo repository.ProductRepository
}

func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productService{productRepo: productRepo}
}

func (s *productService) ListProducts(status *model.ProductStatus) ([]model.Product, error) {
	products, err := s.productRepo.FindAll(repository.ProductFilter{Status: status})
	if err != nil {
		logger.Error("Failed to list products", err)
		return nil, err
	}

	logger.Info("Products listed", map[string]interface{}{
		"status": status,
		"count":  len(products),
	})
	return products, nil
}

func (s *productService) GetProductByID(id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Product not found", map[string]interface{}{
				"product_id": id,
			})
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}
	return product, nil
}

// GetActiveProduct hides draft products from the storefront.
func (s *productService) GetActiveProduct(id uint) (*model.Product, error) {
	product, err := s.GetProductByID(id)
	if err != nil {
		return nil, err
	}
	if product.Status != model.ProductStatusActive {
		logger.Warn("Product is not active", map[string]interface{}{
			"product_id": id,
			"status":     product.Status,
		})
		return nil, ErrProductNotFound
	}
	return product, nil
}

func (s *productService) GetProductBySlug(slug string) (*model.Product, error) {
	product, err := s.productRepo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product by slug", err, map[string]interface{}{
			"slug": slug,
		})
		return nil, err
	}
	if product.Status != model.ProductStatusActive {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func (s *productService) CreateProduct(product *model.Product) error {
	if err := ValidateProduct(product); err != nil {
		logger.Warn("Rejected invalid product", map[string]interface{}{
			"slug":  product.Slug,
			"error": err.Error(),
		})
		return err
	}

	if err := s.productRepo.Create(product); err != nil {
		logger.Error("Failed to create product", err, map[string]interface{}{
			"slug": product.Slug,
		})
		return err
	}

	logger.Info("Product created", map[string]interface{}{
		"product_id": product.ID,
		"slug":       product.Slug,
	})
	return nil
}

func (s *productService) UpdateProduct(product *model.Product) error {
	existing, err := s.GetProductByID(product.ID)
	if err != nil {
		return err
	}
	if err := ValidateProduct(product); err != nil {
		logger.Warn("Rejected invalid product update", map[string]interface{}{
			"product_id": product.ID,
			"error":      err.Error(),
		})
		return err
	}

	product.CreatedAt = existing.CreatedAt
	if err := s.productRepo.Update(product); err != nil {
		logger.Error("Failed to update product", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return err
	}

	logger.Info("Product updated", map[string]interface{}{
		"product_id": product.ID,
	})
	return nil
}

func (s *productService) DeleteProduct(id uint) error {
	if err := s.productRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		logger.Error("Failed to delete product", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}

	logger.Info("Product deleted", map[string]interface{}{
		"product_id": id,
	})
	return nil
}

// ValidateProduct checks what the admin CMS writes. The engine tolerates
// malformed numbers, the catalog does not accept them.
func ValidateProduct(p *model.Product) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Slug = strings.TrimSpace(strings.ToLower(p.Slug))
	if p.Status == "" {
		p.Status = model.ProductStatusActive
	}

	switch {
	case p.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidProduct)
	case p.Slug == "":
		return fmt.Errorf("%w: slug is required", ErrInvalidProduct)
	case p.Status != model.ProductStatusActive && p.Status != model.ProductStatusDraft:
		return fmt.Errorf("%w: unknown status %q", ErrInvalidProduct, p.Status)
	case p.RegularPrice < 0 || p.DiscountedPrice < 0:
		return fmt.Errorf("%w: prices must not be negative", ErrInvalidProduct)
	case p.DeliveryChargeInsideDhaka < 0 || p.DeliveryChargeOutsideDhaka < 0:
		return fmt.Errorf("%w: delivery charges must not be negative", ErrInvalidProduct)
	}

	groups := map[string]bool{}
	for _, g := range p.Variants {
		if g.Name == "" || g.Name == pricing.BaseVariantGroup {
			return fmt.Errorf("%w: invalid variant group name %q", ErrInvalidProduct, g.Name)
		}
		if groups[g.Name] {
			return fmt.Errorf("%w: duplicate variant group %q", ErrInvalidProduct, g.Name)
		}
		groups[g.Name] = true

		values := map[string]bool{}
		for _, o := range g.Options {
			if o.Value == "" || values[o.Value] {
				return fmt.Errorf("%w: invalid option %q in group %q", ErrInvalidProduct, o.Value, g.Name)
			}
			if o.Price < 0 {
				return fmt.Errorf("%w: option %q has a negative price", ErrInvalidProduct, o.Value)
			}
			values[o.Value] = true
		}
	}

	for _, t := range p.ComboPricing {
		if t.MinQuantity < 1 || t.Discount < 0 {
			return fmt.Errorf("%w: invalid combo tier %d", ErrInvalidProduct, t.MinQuantity)
		}
		if t.DiscountType != pricing.DiscountTotal && t.DiscountType != pricing.DiscountPerProduct {
			return fmt.Errorf("%w: unknown discount type %q", ErrInvalidProduct, t.DiscountType)
		}
	}
	for _, t := range p.BulkPricing {
		if t.MinQuantity < 1 || t.Price <= 0 {
			return fmt.Errorf("%w: invalid bulk tier %d", ErrInvalidProduct, t.MinQuantity)
		}
	}

	return nil
}
