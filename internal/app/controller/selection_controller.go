package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/storefront-backend/internal/app/service"
	"github.com/ikkim/storefront-backend/internal/middleware"
)

type SelectionController struct {
	selectionService service.SelectionService
}

func NewSelectionController(selectionService service.SelectionService) *SelectionController {
	return &SelectionController{
		selectionService: selectionService,
	}
}

type StartSelectionRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

type VariantRequest struct {
	Group string `json:"group" binding:"required"`
	Value string `json:"value" binding:"required"`
}

type UpdateVariantRequest struct {
	Group    string `json:"group" binding:"required"`
	Value    string `json:"value" binding:"required"`
	Quantity int    `json:"quantity"`
}

type QuantityRequest struct {
	Quantity int `json:"quantity"`
}

// StartSelection opens a selection session for a product
// POST /api/v1/selections
func (ctrl *SelectionController) StartSelection(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req StartSelectionRequest
	if !bindJSON(c, log, &req) {
		return
	}

	view, err := ctrl.selectionService.Start(c.Request.Context(), req.ProductID)
	if err != nil {
		respondServiceError(c, log, err, "start selection")
		return
	}

	log.Info("Selection session started", map[string]interface{}{
		"session_id": view.ID,
		"product_id": view.ProductID,
	})

	c.JSON(http.StatusCreated, view)
}

// GetSelection returns the session with its current breakdown
// GET /api/v1/selections/:id
func (ctrl *SelectionController) GetSelection(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	view, err := ctrl.selectionService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, log, err, "get selection")
		return
	}

	c.JSON(http.StatusOK, view)
}

// AddVariant adds an option to the selection
// POST /api/v1/selections/:id/variants
func (ctrl *SelectionController) AddVariant(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req VariantRequest
	if !bindJSON(c, log, &req) {
		return
	}

	view, err := ctrl.selectionService.AddVariant(c.Request.Context(), c.Param("id"), req.Group, req.Value)
	if err != nil {
		respondServiceError(c, log, err, "add variant")
		return
	}

	c.JSON(http.StatusOK, view)
}

// ToggleVariant adds the option or removes it when already selected
// POST /api/v1/selections/:id/toggle
func (ctrl *SelectionController) ToggleVariant(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req VariantRequest
	if !bindJSON(c, log, &req) {
		return
	}

	view, err := ctrl.selectionService.ToggleVariant(c.Request.Context(), c.Param("id"), req.Group, req.Value)
	if err != nil {
		respondServiceError(c, log, err, "toggle variant")
		return
	}

	c.JSON(http.StatusOK, view)
}

// UpdateVariantQuantity sets the quantity of a selected option
// PUT /api/v1/selections/:id/variants
func (ctrl *SelectionController) UpdateVariantQuantity(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req UpdateVariantRequest
	if !bindJSON(c, log, &req) {
		return
	}

	view, err := ctrl.selectionService.UpdateVariantQuantity(c.Request.Context(), c.Param("id"), req.Group, req.Value, req.Quantity)
	if err != nil {
		respondServiceError(c, log, err, "update variant quantity")
		return
	}

	c.JSON(http.StatusOK, view)
}

// SetQuantity sets the order quantity
// PUT /api/v1/selections/:id/quantity
func (ctrl *SelectionController) SetQuantity(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req QuantityRequest
	if !bindJSON(c, log, &req) {
		return
	}

	view, err := ctrl.selectionService.SetQuantity(c.Request.Context(), c.Param("id"), req.Quantity)
	if err != nil {
		respondServiceError(c, log, err, "set quantity")
		return
	}

	c.JSON(http.StatusOK, view)
}
