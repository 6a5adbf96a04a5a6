package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	orderingapp "github.com/jasmey/backend/internal/application/ordering"
	"github.com/jasmey/backend/internal/interfaces/http/dto"
	"github.com/jasmey/backend/internal/interfaces/http/middleware"
)

// OrderHandler handles order lifecycle endpoints
type OrderHandler struct {
	BaseHandler
	orderService *orderingapp.Service
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *orderingapp.Service) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Get handles GET /api/v1/orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	// Customers may only see their own orders
	if middleware.GetUserRole(c) != "admin" && order.UserID != middleware.GetUserID(c) {
		h.Error(c, 403, dto.ErrCodeForbidden, "Not your order")
		return
	}
	h.Success(c, order)
}

// GetByNumber handles GET /api/v1/orders/number/:number
func (h *OrderHandler) GetByNumber(c *gin.Context) {
	order, err := h.orderService.GetByOrderNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if middleware.GetUserRole(c) != "admin" && order.UserID != middleware.GetUserID(c) {
		h.Error(c, 403, dto.ErrCodeForbidden, "Not your order")
		return
	}
	h.Success(c, order)
}

// ListMine handles GET /api/v1/orders for the authenticated customer
func (h *OrderHandler) ListMine(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		h.Error(c, 401, dto.ErrCodeUnauthorized, "Authentication required")
		return
	}

	var filter orderingapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.Error(c, 400, dto.ErrCodeValidation, err.Error())
		return
	}

	listing, err := h.orderService.ListByUser(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, listing.Orders, listing.Total, filter.Page, filter.PageSize)
}

// ListAll handles GET /api/v1/admin/orders
func (h *OrderHandler) ListAll(c *gin.Context) {
	var filter orderingapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.Error(c, 400, dto.ErrCodeValidation, err.Error())
		return
	}

	listing, err := h.orderService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, listing.Orders, listing.Total, filter.Page, filter.PageSize)
}

// TransitionStatus handles PATCH /api/v1/admin/orders/:id/status
func (h *OrderHandler) TransitionStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req orderingapp.TransitionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(c, err)
		return
	}

	order, err := h.orderService.TransitionStatus(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Cancel handles POST /api/v1/orders/:id/cancel. Customers may cancel their
// own orders; the same idempotent cancellation path the admin transition
// uses.
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	if middleware.GetUserRole(c) != "admin" {
		existing, err := h.orderService.GetByID(c.Request.Context(), id)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		if existing.UserID != middleware.GetUserID(c) {
			h.Error(c, 403, dto.ErrCodeForbidden, "Not your order")
			return
		}
	}

	order, err := h.orderService.TransitionStatus(c.Request.Context(), id,
		orderingapp.TransitionStatusRequest{Status: "cancelled"})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// UpdatePaymentStatus handles PATCH /api/v1/admin/orders/:id/payment
func (h *OrderHandler) UpdatePaymentStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req orderingapp.UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(c, err)
		return
	}

	order, err := h.orderService.UpdatePaymentStatus(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}
