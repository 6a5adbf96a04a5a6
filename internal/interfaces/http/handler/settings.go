package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/jasmey/backend/internal/domain/ordering"
	"github.com/jasmey/backend/internal/infrastructure/config"
)

// StoreSettings is the public storefront configuration: the pricing inputs a
// client needs to show totals before checkout, plus the accepted payment
// methods. Prefixes and admin contact details stay server-side.
type StoreSettings struct {
	Currency              string          `json:"currency"`
	TaxRatePercent        decimal.Decimal `json:"tax_rate_percent"`
	DeliveryCharge        decimal.Decimal `json:"delivery_charge"`
	FreeDeliveryThreshold decimal.Decimal `json:"free_delivery_threshold"`
	MinOrderAmount        decimal.Decimal `json:"min_order_amount"`
	EstimatedDeliveryDays int             `json:"estimated_delivery_days"`
	PaymentMethods        []string        `json:"payment_methods"`
}

// SettingsHandler serves the public store settings
type SettingsHandler struct {
	BaseHandler
	settings StoreSettings
}

// NewSettingsHandler creates a new SettingsHandler from the store config
func NewSettingsHandler(store config.StoreConfig) *SettingsHandler {
	return &SettingsHandler{
		settings: StoreSettings{
			Currency:              store.Currency,
			TaxRatePercent:        store.TaxRatePercent,
			DeliveryCharge:        store.DeliveryCharge,
			FreeDeliveryThreshold: store.FreeDeliveryThreshold,
			MinOrderAmount:        store.MinOrderAmount,
			EstimatedDeliveryDays: store.EstimatedDeliveryDays,
			PaymentMethods: []string{
				string(ordering.PaymentMethodCOD),
				string(ordering.PaymentMethodUPI),
				string(ordering.PaymentMethodCard),
			},
		},
	}
}

// Get handles GET /api/v1/settings
func (h *SettingsHandler) Get(c *gin.Context) {
	h.Success(c, h.settings)
}
