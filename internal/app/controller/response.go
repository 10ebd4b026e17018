package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/storefront-backend/internal/app/service"
	apperrors "github.com/ikkim/storefront-backend/internal/errors"
	"github.com/ikkim/storefront-backend/pkg/logger"
)

// parseIDParam reads a positive numeric path parameter. On failure it has
// already written the 400 response.
func parseIDParam(c *gin.Context, log *logger.Logger, name string) (uint, bool) {
	idStr := c.Param(name)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		log.Warn("Invalid ID format", map[string]interface{}{
			"param": name,
			"value": idStr,
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid ID")
		return 0, false
	}
	return uint(id), true
}

// respondServiceError maps service sentinels onto error codes. Anything else
// goes through the database error parser.
func respondServiceError(c *gin.Context, log *logger.Logger, err error, context string) {
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
	case errors.Is(err, service.ErrSelectionNotFound):
		apperrors.NotFound(c, apperrors.SelectionNotFound, "Selection not found or expired")
	case errors.Is(err, service.ErrOrderNotFound):
		apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
	case errors.Is(err, service.ErrInvalidCoupon):
		apperrors.BadRequest(c, apperrors.CouponInvalid, "Invalid coupon code")
	case errors.Is(err, service.ErrEmptyCoupon):
		apperrors.BadRequest(c, apperrors.CouponEmpty, "Please enter a coupon code")
	case errors.Is(err, service.ErrEmptySelection):
		apperrors.BadRequest(c, apperrors.OrderEmptySelection, "Please select at least one item")
	case errors.Is(err, service.ErrInvalidDeliveryArea):
		apperrors.BadRequest(c, apperrors.OrderInvalidArea, "Delivery area must be inside_dhaka or outside_dhaka")
	case errors.Is(err, service.ErrInvalidCustomer):
		apperrors.BadRequest(c, apperrors.ValidationRequired, "Name, phone and address are required")
	case errors.Is(err, service.ErrInvalidOrderStatus):
		apperrors.BadRequest(c, apperrors.OrderInvalidStatus, err.Error())
	case errors.Is(err, service.ErrSelectionProductDiff):
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Selection belongs to another product")
	case errors.Is(err, service.ErrInvalidProduct):
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
	default:
		log.Error("Request failed", err, map[string]interface{}{
			"context": context,
		})
		apperrors.ParseAndRespond(c, err, context)
		return
	}

	log.Warn("Request rejected", map[string]interface{}{
		"context": context,
		"error":   err.Error(),
	})
}

func bindJSON(c *gin.Context, log *logger.Logger, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		log.Warn("Invalid request body", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.RespondWithError(c, http.StatusBadRequest, apperrors.ValidationInvalidInput, "Invalid request data")
		return false
	}
	return true
}
