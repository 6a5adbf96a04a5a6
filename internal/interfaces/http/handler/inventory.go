package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	inventoryapp "github.com/jasmey/backend/internal/application/inventory"
	"github.com/jasmey/backend/internal/domain/shared"
	"github.com/jasmey/backend/internal/interfaces/http/dto"
	"github.com/jasmey/backend/internal/interfaces/http/middleware"
)

// InventoryHandler handles stock ledger endpoints
type InventoryHandler struct {
	BaseHandler
	inventoryService *inventoryapp.Service
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(inventoryService *inventoryapp.Service) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// GetStock handles GET /api/v1/stock/:productId
func (h *InventoryHandler) GetStock(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	stock, err := h.inventoryService.GetStock(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stock)
}

// GetStockBatch handles GET /api/v1/stock?ids=a,b,c
func (h *InventoryHandler) GetStockBatch(c *gin.Context) {
	raw := c.Query("ids")
	if raw == "" {
		h.BadRequest(c, "Missing ids parameter")
		return
	}

	parts := strings.Split(raw, ",")
	ids := make([]uuid.UUID, 0, len(parts))
	for _, part := range parts {
		id, err := uuid.Parse(strings.TrimSpace(part))
		if err != nil {
			h.BadRequest(c, "Invalid product ID: "+part)
			return
		}
		ids = append(ids, id)
	}

	stocks, err := h.inventoryService.GetStockBatch(c.Request.Context(), ids)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stocks)
}

// AdjustStock handles PUT /api/v1/admin/stock/:productId
func (h *InventoryHandler) AdjustStock(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req inventoryapp.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(c, err)
		return
	}

	stock, err := h.inventoryService.AdjustStock(c.Request.Context(), productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stock)
}

// ListLowStock handles GET /api/v1/admin/stock/low
func (h *InventoryHandler) ListLowStock(c *gin.Context) {
	var filter struct {
		Page     int `form:"page"`
		PageSize int `form:"page_size"`
	}
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.Error(c, 400, dto.ErrCodeValidation, err.Error())
		return
	}

	stocks, err := h.inventoryService.ListLowStock(c.Request.Context(), shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stocks)
}

// Movements handles GET /api/v1/admin/stock/:productId/movements
func (h *InventoryHandler) Movements(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var filter struct {
		Page     int `form:"page"`
		PageSize int `form:"page_size"`
	}
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.Error(c, 400, dto.ErrCodeValidation, err.Error())
		return
	}

	movements, err := h.inventoryService.Movements(c.Request.Context(), productID, shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, movements)
}
