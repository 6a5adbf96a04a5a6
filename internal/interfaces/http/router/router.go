package router

import (
	"github.com/gin-gonic/gin"

	"github.com/jasmey/backend/internal/infrastructure/auth"
	"github.com/jasmey/backend/internal/interfaces/http/handler"
	"github.com/jasmey/backend/internal/interfaces/http/middleware"
)

// Handlers groups the HTTP handlers the router wires up.
type Handlers struct {
	Product   *handler.ProductHandler
	Checkout  *handler.CheckoutHandler
	Order     *handler.OrderHandler
	Inventory *handler.InventoryHandler
	Settings  *handler.SettingsHandler
}

// Router registers all API routes on a gin engine. Routes fall into three
// tiers: public (catalog browsing, cart pricing, stock lookups), customer
// (placing and viewing own orders) and admin (catalog management, stock
// adjustment, order fulfilment).
type Router struct {
	engine     *gin.Engine
	apiVersion string
	handlers   Handlers
	jwtService *auth.JWTService
}

// Option is a functional option for Router configuration
type Option func(*Router)

// WithAPIVersion sets the API version prefix (e.g., "v1", "v2")
func WithAPIVersion(version string) Option {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// New creates a new Router instance
func New(engine *gin.Engine, handlers Handlers, jwtService *auth.JWTService, opts ...Option) *Router {
	r := &Router{
		engine:     engine,
		apiVersion: "v1",
		handlers:   handlers,
		jwtService: jwtService,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Setup registers all routes with the engine
func (r *Router) Setup() {
	api := r.engine.Group("/api/" + r.apiVersion)

	authed := middleware.RequireAuth(r.jwtService)
	adminOnly := middleware.RequireAdmin()

	// Public catalog and pricing routes. Anyone can browse products, price a
	// cart and check availability without an account.
	api.GET("/products", r.handlers.Product.List)
	api.GET("/products/images/download-url", r.handlers.Product.DownloadImageURL)
	api.GET("/products/:id", r.handlers.Product.Get)
	api.POST("/cart/price", r.handlers.Checkout.Price)
	api.GET("/stock", r.handlers.Inventory.GetStockBatch)
	api.GET("/stock/:productId", r.handlers.Inventory.GetStock)
	api.GET("/settings", r.handlers.Settings.Get)

	// Catalog management is admin-only but lives on the public paths.
	api.POST("/products", authed, adminOnly, r.handlers.Product.Create)
	api.PUT("/products/:id", authed, adminOnly, r.handlers.Product.Update)
	api.PATCH("/products/:id/active", authed, adminOnly, r.handlers.Product.SetActive)
	api.DELETE("/products/:id", authed, adminOnly, r.handlers.Product.Delete)
	api.POST("/products/:id/images/upload-url", authed, adminOnly, r.handlers.Product.UploadImageURL)

	// Customer order routes. Ownership is enforced in the handlers so admins
	// can use the same endpoints.
	orders := api.Group("/orders", authed)
	orders.POST("", r.handlers.Checkout.PlaceOrder)
	orders.GET("", r.handlers.Order.ListMine)
	orders.GET("/number/:number", r.handlers.Order.GetByNumber)
	orders.GET("/:id", r.handlers.Order.Get)
	orders.POST("/:id/cancel", r.handlers.Order.Cancel)

	// Admin fulfilment and stock routes.
	admin := api.Group("/admin", authed, adminOnly)
	admin.GET("/orders", r.handlers.Order.ListAll)
	admin.PATCH("/orders/:id/status", r.handlers.Order.TransitionStatus)
	admin.PATCH("/orders/:id/payment", r.handlers.Order.UpdatePaymentStatus)
	admin.PUT("/stock/:productId", r.handlers.Inventory.AdjustStock)
	admin.GET("/stock/low", r.handlers.Inventory.ListLowStock)
	admin.GET("/stock/:productId/movements", r.handlers.Inventory.Movements)
}
