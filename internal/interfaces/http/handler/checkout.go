package handler

import (
	"github.com/gin-gonic/gin"

	checkoutapp "github.com/jasmey/backend/internal/application/checkout"
	"github.com/jasmey/backend/internal/interfaces/http/dto"
	"github.com/jasmey/backend/internal/interfaces/http/middleware"
)

// CheckoutHandler handles cart pricing and order placement endpoints
type CheckoutHandler struct {
	BaseHandler
	checkoutService *checkoutapp.Service
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(checkoutService *checkoutapp.Service) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// Price handles POST /api/v1/cart/price. It returns a quote for the given
// cart lines without reserving anything.
func (h *CheckoutHandler) Price(c *gin.Context) {
	var req checkoutapp.PriceCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(c, err)
		return
	}

	quote, err := h.checkoutService.Price(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, quote)
}

// PlaceOrder handles POST /api/v1/orders
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		h.Error(c, 401, dto.ErrCodeUnauthorized, "Authentication required")
		return
	}

	var req checkoutapp.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(c, err)
		return
	}

	order, err := h.checkoutService.PlaceOrder(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}
