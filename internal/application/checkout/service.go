package checkout

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jasmey/backend/internal/domain/cart"
	"github.com/jasmey/backend/internal/domain/catalog"
	"github.com/jasmey/backend/internal/domain/inventory"
	"github.com/jasmey/backend/internal/domain/numbering"
	"github.com/jasmey/backend/internal/domain/ordering"
	"github.com/jasmey/backend/internal/domain/pricing"
	"github.com/jasmey/backend/internal/domain/shared"
	"github.com/jasmey/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Settings holds the store configuration checkout depends on
type Settings struct {
	Pricing               pricing.Config
	MinOrderAmount        decimal.Decimal
	OrderPrefix           string
	InvoicePrefix         string
	EstimatedDeliveryDays int
}

// Service turns a cart into a priced quote and, at checkout, into a placed
// order with reserved stock. Placement runs inside one transaction: the order
// row, every stock decrement and every movement record commit together or not
// at all, so a failed line releases everything reserved before it.
type Service struct {
	txScope        TransactionScope
	productRepo    catalog.ProductRepository
	calculator     *pricing.Calculator
	settings       Settings
	eventPublisher shared.EventPublisher
}

// NewService creates a new checkout service
func NewService(txScope TransactionScope, productRepo catalog.ProductRepository, settings Settings) *Service {
	return &Service{
		txScope:     txScope,
		productRepo: productRepo,
		calculator:  pricing.NewCalculator(settings.Pricing),
		settings:    settings,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *Service) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Price computes totals for the given cart lines against current product
// data. Availability is not checked here; a product with zero stock still
// gets a price.
func (s *Service) Price(ctx context.Context, req PriceCartRequest) (*PriceCartResponse, error) {
	c, err := cartFromInputs(req.Lines)
	if err != nil {
		return nil, err
	}

	products, err := s.loadProducts(ctx, s.productRepo, c)
	if err != nil {
		return nil, err
	}

	draft, err := s.calculator.ComputeTotals(c.Lines(), products, decimal.Zero)
	if err != nil {
		return nil, err
	}

	response := ToPriceCartResponse(draft)
	return &response, nil
}

// PlaceOrder prices the cart, assigns order and invoice numbers, reserves
// stock for every line and persists the order, all in one transaction. A line
// that cannot be covered returns ErrInsufficientStock and leaves stock and
// orders untouched.
func (s *Service) PlaceOrder(ctx context.Context, userID string, req PlaceOrderRequest) (*OrderResponse, error) {
	c, err := cartFromInputs(req.Lines)
	if err != nil {
		return nil, err
	}

	customer, err := customerFromInput(req.Customer)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", err.Error())
	}

	paymentMethod := ordering.PaymentMethod(req.PaymentMethod)
	if !paymentMethod.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unknown payment method")
	}

	var order *ordering.Order
	var lowStock []shared.DomainEvent

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		products, err := s.loadProducts(ctx, repos.ProductRepo(), c)
		if err != nil {
			return err
		}

		draft, err := s.calculator.ComputeTotals(c.Lines(), products, decimal.Zero)
		if err != nil {
			return err
		}
		if draft.Subtotal.LessThan(s.settings.MinOrderAmount) {
			return shared.NewDomainError("MIN_ORDER_NOT_MET",
				"Order subtotal is below the minimum order amount")
		}

		numberSvc := numbering.NewService(repos.SequenceRepo(), s.settings.OrderPrefix, s.settings.InvoicePrefix)
		orderNumber, err := numberSvc.NextOrderNumber(ctx)
		if err != nil {
			return err
		}
		invoiceNumber, err := numberSvc.NextInvoiceNumber(ctx)
		if err != nil {
			return err
		}

		estimatedDelivery := time.Now().AddDate(0, 0, s.settings.EstimatedDeliveryDays)
		order, err = ordering.NewOrder(userID, orderNumber, invoiceNumber, draft, customer, paymentMethod, estimatedDelivery)
		if err != nil {
			return err
		}

		for _, item := range order.Items {
			if err := repos.StockRepo().ReserveStock(ctx, item.ProductID, item.Quantity, order.ID); err != nil {
				return err
			}
			movement := inventory.NewStockMovement(item.ProductID, -item.Quantity, inventory.MovementReasonReserve, order.ID)
			if err := repos.MovementRepo().Append(ctx, movement); err != nil {
				return err
			}

			stockItem, err := repos.StockRepo().FindByProductID(ctx, item.ProductID)
			if err != nil {
				return err
			}
			if err := stockItem.CheckIntegrity(); err != nil {
				return err
			}
			if stockItem.IsLowStock() {
				lowStock = append(lowStock, inventory.NewStockBelowThresholdEvent(stockItem))
			}
		}

		return repos.OrderRepo().Save(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, order.GetDomainEvents())
	s.publish(ctx, lowStock)
	order.ClearDomainEvents()

	response := ToOrderResponse(order)
	return &response, nil
}

func (s *Service) publish(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range events {
		// Event delivery is best-effort; the order is already committed.
		_ = s.eventPublisher.Publish(ctx, event)
	}
}

// loadProducts resolves every distinct product in the cart, rejecting
// references to unknown or inactive products.
func (s *Service) loadProducts(ctx context.Context, repo catalog.ProductRepository, c *cart.Cart) (map[uuid.UUID]*catalog.Product, error) {
	ids := make([]uuid.UUID, 0, c.LineCount())
	seen := make(map[uuid.UUID]bool, c.LineCount())
	for _, line := range c.Lines() {
		if !seen[line.ProductID] {
			seen[line.ProductID] = true
			ids = append(ids, line.ProductID)
		}
	}

	found, err := repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	products := make(map[uuid.UUID]*catalog.Product, len(found))
	for i := range found {
		products[found[i].ID] = &found[i]
	}
	for _, id := range ids {
		product, ok := products[id]
		if !ok {
			return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Cart references an unknown product")
		}
		if !product.IsActive() {
			return nil, shared.NewDomainError("PRODUCT_UNAVAILABLE", "Product "+product.Name+" is no longer available")
		}
	}
	return products, nil
}

func cartFromInputs(inputs []CartLineInput) (*cart.Cart, error) {
	lines := make([]cart.Line, 0, len(inputs))
	for _, in := range inputs {
		lines = append(lines, cart.Line{ProductID: in.ProductID, Size: in.Size, Quantity: in.Quantity})
	}
	return cart.FromLines(lines)
}

func customerFromInput(in CustomerInput) (valueobject.CustomerInfo, error) {
	addr, err := valueobject.NewAddress(in.Address.Line1, in.Address.Line2, in.Address.City,
		in.Address.State, in.Address.Pincode, in.Address.Landmark, valueobject.AddressType(in.Address.Type))
	if err != nil {
		return valueobject.CustomerInfo{}, err
	}
	return valueobject.NewCustomerInfo(in.Name, in.Email, in.Phone, addr)
}
