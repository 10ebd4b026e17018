package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/storefront-backend/internal/app/model"
	"github.com/ikkim/storefront-backend/internal/app/repository"
	"github.com/ikkim/storefront-backend/internal/app/service"
	"github.com/ikkim/storefront-backend/internal/checkout"
	apperrors "github.com/ikkim/storefront-backend/internal/errors"
	"github.com/ikkim/storefront-backend/internal/middleware"
	"github.com/ikkim/storefront-backend/pkg/logger"
)

const (
	defaultOrderPageSize = 20
	maxOrderPageSize     = 100
)

type OrderController struct {
	orderService service.OrderService
}

func NewOrderController(orderService service.OrderService) *OrderController {
	return &OrderController{
		orderService: orderService,
	}
}

// CreateOrderRequest takes either a selection session or inline selections.
type CreateOrderRequest struct {
	ProductID       uint                     `json:"product_id"`
	SessionID       string                   `json:"session_id"`
	Selections      []service.SelectionInput `json:"selections"`
	Quantity        *int                     `json:"quantity"`
	CustomerName    string                   `json:"customer_name"`
	CustomerPhone   string                   `json:"customer_phone"`
	CustomerAddress string                   `json:"customer_address"`
	DeliveryArea    checkout.DeliveryArea    `json:"delivery_area" binding:"required"`
	CouponCode      string                   `json:"coupon_code"`
}

func (r *CreateOrderRequest) input() service.CreateOrderInput {
	return service.CreateOrderInput{
		ProductID:       r.ProductID,
		SessionID:       r.SessionID,
		Selections:      r.Selections,
		Quantity:        r.Quantity,
		CustomerName:    r.CustomerName,
		CustomerPhone:   r.CustomerPhone,
		CustomerAddress: r.CustomerAddress,
		DeliveryArea:    r.DeliveryArea,
		CouponCode:      r.CouponCode,
	}
}

type UpdateOrderStatusRequest struct {
	Status model.OrderStatus `json:"status" binding:"required"`
}

// bindOrderRequest also rejects requests naming neither a session nor a
// product.
func bindOrderRequest(c *gin.Context, log *logger.Logger, req *CreateOrderRequest) bool {
	if !bindJSON(c, log, req) {
		return false
	}
	if req.SessionID == "" && req.ProductID == 0 {
		log.Warn("Order request without session or product", nil)
		apperrors.BadRequest(c, apperrors.ValidationRequired, "session_id or product_id is required")
		return false
	}
	return true
}

// PreviewOrder returns the totals an order would be created with
// POST /api/v1/orders/preview
func (ctrl *OrderController) PreviewOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateOrderRequest
	if !bindOrderRequest(c, log, &req) {
		return
	}

	payload, err := ctrl.orderService.PreviewOrder(c.Request.Context(), req.input())
	if err != nil {
		respondServiceError(c, log, err, "preview order")
		return
	}

	c.JSON(http.StatusOK, payload)
}

// CreateOrder places an order
// POST /api/v1/orders
func (ctrl *OrderController) CreateOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateOrderRequest
	if !bindOrderRequest(c, log, &req) {
		return
	}

	order, err := ctrl.orderService.CreateOrder(c.Request.Context(), req.input())
	if err != nil {
		respondServiceError(c, log, err, "create order")
		return
	}

	log.Info("Order created successfully", map[string]interface{}{
		"order_id":     order.ID,
		"total_amount": order.TotalAmount,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order created successfully",
		"order":   order,
	})
}

// GetOrder returns an order by ID
// GET /api/v1/orders/:id
func (ctrl *OrderController) GetOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, log, "id")
	if !ok {
		return
	}

	order, err := ctrl.orderService.GetOrder(id)
	if err != nil {
		respondServiceError(c, log, err, "get order")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order": order,
	})
}

// ListOrders returns orders, newest first (Admin only)
// GET /api/v1/admin/orders?status=pending&product_id=1&limit=20&offset=0
func (ctrl *OrderController) ListOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var filter repository.OrderFilter
	if s := c.Query("status"); s != "" {
		status := model.OrderStatus(s)
		if !status.Valid() {
			apperrors.BadRequest(c, apperrors.OrderInvalidStatus, "Unknown order status")
			return
		}
		filter.Status = &status
	}
	if s := c.Query("product_id"); s != "" {
		id, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product ID")
			return
		}
		productID := uint(id)
		filter.ProductID = &productID
	}
	filter.Limit = queryInt(c, "limit", defaultOrderPageSize)
	if filter.Limit < 1 {
		filter.Limit = defaultOrderPageSize
	}
	if filter.Limit > maxOrderPageSize {
		filter.Limit = maxOrderPageSize
	}
	filter.Offset = queryInt(c, "offset", 0)
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	orders, err := ctrl.orderService.ListOrders(filter)
	if err != nil {
		respondServiceError(c, log, err, "list orders")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

// UpdateOrderStatus moves an order along its lifecycle (Admin only)
// PUT /api/v1/admin/orders/:id/status
func (ctrl *OrderController) UpdateOrderStatus(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, log, "id")
	if !ok {
		return
	}

	var req UpdateOrderStatusRequest
	if !bindJSON(c, log, &req) {
		return
	}

	if err := ctrl.orderService.UpdateOrderStatus(id, req.Status); err != nil {
		respondServiceError(c, log, err, "update order")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order status updated successfully",
	})
}

func queryInt(c *gin.Context, key string, fallback int) int {
	s := c.Query(key)
	if s == "" {
		return fallback
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return v
}
