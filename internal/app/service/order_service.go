package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ikkim/storefront-backend/internal/app/model"
	"github.com/ikkim/storefront-backend/internal/app/repository"
	"github.com/ikkim/storefront-backend/internal/checkout"
	"github.com/ikkim/storefront-backend/internal/pricing"
	"github.com/ikkim/storefront-backend/pkg/logger"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound        = errors.New("order not found")
	ErrEmptySelection       = errors.New("order quantity is zero")
	ErrInvalidDeliveryArea  = errors.New("invalid delivery area")
	ErrInvalidCustomer      = errors.New("customer name, phone and address are required")
	ErrInvalidOrderStatus   = errors.New("invalid order status")
	ErrSelectionProductDiff = errors.New("selection belongs to another product")
)

type CreateOrderInput struct {
	ProductID       uint
	SessionID       string
	Selections      []SelectionInput
	Quantity        *int
	CustomerName    string
	CustomerPhone   string
	CustomerAddress string
	DeliveryArea    checkout.DeliveryArea
	CouponCode      string
}

type OrderService interface {
	PreviewOrder(ctx context.Context, input CreateOrderInput) (*checkout.Payload, error)
	CreateOrder(ctx context.Context, input CreateOrderInput) (*model.Order, error)
	GetOrder(id uint) (*model.Order, error)
	ListOrders(filter repository.OrderFilter) ([]model.Order, error)
	UpdateOrderStatus(id uint, status model.OrderStatus) error
}

type orderService struct {
	orderRepo        repository.OrderRepository
	productService   ProductService
	pricingService   PricingService
	selectionService SelectionService
	couponService    CouponService
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	productService ProductService,
	pricingService PricingService,
	selectionService SelectionService,
	couponService CouponService,
) OrderService {
	return &orderService{
		orderRepo:        orderRepo,
		productService:   productService,
		pricingService:   pricingService,
		selectionService: selectionService,
		couponService:    couponService,
	}
}

// PreviewOrder computes the payload the storefront would submit without
// persisting anything.
func (s *orderService) PreviewOrder(ctx context.Context, input CreateOrderInput) (*checkout.Payload, error) {
	payload, _, err := s.assemble(ctx, input)
	return payload, err
}

func (s *orderService) CreateOrder(ctx context.Context, input CreateOrderInput) (*model.Order, error) {
	logger.Info("Creating order", map[string]interface{}{
		"product_id":    input.ProductID,
		"session_id":    input.SessionID,
		"delivery_area": input.DeliveryArea,
	})

	if err := validateCustomer(&input); err != nil {
		return nil, err
	}

	payload, product, err := s.assemble(ctx, input)
	if err != nil {
		return nil, err
	}

	order := &model.Order{
		ProductID:       product.ID,
		CustomerName:    input.CustomerName,
		CustomerPhone:   input.CustomerPhone,
		CustomerAddress: input.CustomerAddress,
		DeliveryArea:    input.DeliveryArea,
		Quantity:        payload.Quantity,
		Variants:        datatypes.NewJSONType(payload.Variants),
		Subtotal:        payload.Subtotal,
		ComboDiscount:   payload.ComboDiscount,
		DeliveryCharge:  payload.DeliveryCharge,
		CouponCode:      payload.Coupon,
		CouponDiscount:  payload.CouponDiscount,
		TotalAmount:     payload.TotalAmount,
		Status:          model.OrderStatusPending,
	}
	if err := s.orderRepo.Create(order); err != nil {
		logger.Error("Failed to create order", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return nil, err
	}

	if input.SessionID != "" {
		if err := s.selectionService.Discard(ctx, input.SessionID); err != nil {
			logger.Warn("Failed to discard selection session after order", map[string]interface{}{
				"session_id": input.SessionID,
				"error":      err.Error(),
			})
		}
	}

	logger.Info("Order created successfully", map[string]interface{}{
		"order_id":     order.ID,
		"product_id":   product.ID,
		"quantity":     order.Quantity,
		"total_amount": order.TotalAmount,
	})
	return order, nil
}

// assemble resolves the selection, prices it and applies delivery and coupon.
func (s *orderService) assemble(ctx context.Context, input CreateOrderInput) (*checkout.Payload, *model.Product, error) {
	if !input.DeliveryArea.Valid() {
		return nil, nil, ErrInvalidDeliveryArea
	}

	product, selections, err := s.resolve(ctx, input)
	if err != nil {
		return nil, nil, err
	}

	breakdown := s.pricingService.Calculate(product, selections)
	if breakdown.TotalQuantity == 0 {
		logger.Warn("Cannot create order: quantity is zero", map[string]interface{}{
			"product_id": product.ID,
			"session_id": input.SessionID,
		})
		return nil, nil, ErrEmptySelection
	}

	var couponAmount float64
	if strings.TrimSpace(input.CouponCode) != "" {
		couponAmount, err = s.couponService.Validate(input.CouponCode)
		if err != nil {
			return nil, nil, err
		}
	}

	delivery := checkout.DeliveryCharge(input.DeliveryArea, product.DeliveryConfig())
	totals := checkout.Totals(breakdown, delivery, couponAmount)
	payload := checkout.BuildPayload(selections, breakdown, totals, input.CouponCode)
	return &payload, product, nil
}

func (s *orderService) resolve(ctx context.Context, input CreateOrderInput) (*model.Product, []pricing.VariantSelection, error) {
	if input.SessionID != "" {
		session, product, err := s.selectionService.Load(ctx, input.SessionID)
		if err != nil {
			return nil, nil, err
		}
		if input.ProductID != 0 && input.ProductID != session.ProductID {
			return nil, nil, ErrSelectionProductDiff
		}
		return product, session.State.Selections(), nil
	}

	product, err := s.productService.GetActiveProduct(input.ProductID)
	if err != nil {
		return nil, nil, err
	}
	state := s.pricingService.Resolve(product, input.Selections, input.Quantity)
	return product, state.Selections(), nil
}

func validateCustomer(input *CreateOrderInput) error {
	input.CustomerName = strings.TrimSpace(input.CustomerName)
	input.CustomerPhone = strings.TrimSpace(input.CustomerPhone)
	input.CustomerAddress = strings.TrimSpace(input.CustomerAddress)
	if input.CustomerName == "" || input.CustomerPhone == "" || input.CustomerAddress == "" {
		return ErrInvalidCustomer
	}
	return nil
}

func (s *orderService) GetOrder(id uint) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		logger.Error("Failed to fetch order", err, map[string]interface{}{
			"order_id": id,
		})
		return nil, err
	}
	return order, nil
}

func (s *orderService) ListOrders(filter repository.OrderFilter) ([]model.Order, error) {
	orders, err := s.orderRepo.FindAll(filter)
	if err != nil {
		logger.Error("Failed to list orders", err)
		return nil, err
	}
	return orders, nil
}

// UpdateOrderStatus moves an order to a new status. Delivered and cancelled
// orders are final.
func (s *orderService) UpdateOrderStatus(id uint, status model.OrderStatus) error {
	logger.Info("Updating order status", map[string]interface{}{
		"order_id":   id,
		"new_status": status,
	})

	if !status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidOrderStatus, status)
	}

	order, err := s.GetOrder(id)
	if err != nil {
		return err
	}
	if order.Status == model.OrderStatusDelivered || order.Status == model.OrderStatusCancelled {
		logger.Warn("Order status is final", map[string]interface{}{
			"order_id": id,
			"status":   order.Status,
		})
		return fmt.Errorf("%w: order is already %s", ErrInvalidOrderStatus, order.Status)
	}

	if err := s.orderRepo.UpdateStatus(id, status); err != nil {
		logger.Error("Failed to update order status", err, map[string]interface{}{
			"order_id":   id,
			"new_status": status,
		})
		return err
	}

	logger.Info("Order status updated successfully", map[string]interface{}{
		"order_id": id,
		"status":   status,
	})
	return nil
}
