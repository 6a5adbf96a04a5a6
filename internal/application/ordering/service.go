package ordering

import (
	"context"

	"github.com/google/uuid"
	"github.com/jasmey/backend/internal/application/checkout"
	"github.com/jasmey/backend/internal/domain/inventory"
	"github.com/jasmey/backend/internal/domain/ordering"
	"github.com/jasmey/backend/internal/domain/shared"
)

// Service drives orders through their lifecycle. Transitions into cancelled
// credit the inventory ledger for every line exactly once; duplicate
// cancellation requests succeed without touching stock again.
type Service struct {
	txScope        TransactionScope
	orderRepo      ordering.OrderRepository
	eventPublisher shared.EventPublisher
}

// NewService creates a new order lifecycle service
func NewService(txScope TransactionScope, orderRepo ordering.OrderRepository) *Service {
	return &Service{
		txScope:   txScope,
		orderRepo: orderRepo,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *Service) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// GetByID retrieves an order, verifying its status/history invariant
func (s *Service) GetByID(ctx context.Context, orderID uuid.UUID) (*checkout.OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := order.CheckIntegrity(); err != nil {
		return nil, err
	}
	response := checkout.ToOrderResponse(order)
	return &response, nil
}

// GetByOrderNumber retrieves an order by its customer-facing number
func (s *Service) GetByOrderNumber(ctx context.Context, orderNumber string) (*checkout.OrderResponse, error) {
	order, err := s.orderRepo.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	if err := order.CheckIntegrity(); err != nil {
		return nil, err
	}
	response := checkout.ToOrderResponse(order)
	return &response, nil
}

// ListByUser lists a customer's orders, newest first
func (s *Service) ListByUser(ctx context.Context, userID string, filter ListFilter) (*OrderListResponse, error) {
	domainFilter := toDomainFilter(filter)
	orders, err := s.orderRepo.FindByUserID(ctx, userID, domainFilter)
	if err != nil {
		return nil, err
	}
	response := ToOrderListResponse(orders, int64(len(orders)))
	return &response, nil
}

// List lists orders for the admin view
func (s *Service) List(ctx context.Context, filter ListFilter) (*OrderListResponse, error) {
	domainFilter := toDomainFilter(filter)
	orders, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.orderRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	response := ToOrderListResponse(orders, total)
	return &response, nil
}

// TransitionStatus moves an order to the requested status. A transition into
// cancelled releases the reserved stock for every line; all other transitions
// only update status and history. Requesting cancelled on an already-cancelled
// order is an idempotent no-op that returns the current order.
func (s *Service) TransitionStatus(ctx context.Context, orderID uuid.UUID, req TransitionStatusRequest) (*checkout.OrderResponse, error) {
	target := ordering.OrderStatus(req.Status)
	if !target.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", "Unknown order status")
	}

	var order *ordering.Order

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		order, err = repos.OrderRepo().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if err := order.CheckIntegrity(); err != nil {
			return err
		}

		if target == ordering.OrderStatusCancelled {
			cancelled, err := order.Cancel()
			if err != nil {
				return err
			}
			if !cancelled {
				// Already cancelled: stock was released by the first
				// cancellation, nothing to do.
				return nil
			}
			if err := s.releaseStock(ctx, repos, order); err != nil {
				return err
			}
		} else {
			if err := order.TransitionTo(target); err != nil {
				return err
			}
		}

		return repos.OrderRepo().SaveWithLock(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, order.GetDomainEvents())
	order.ClearDomainEvents()

	response := checkout.ToOrderResponse(order)
	return &response, nil
}

// UpdatePaymentStatus updates the payment settlement state of an order
func (s *Service) UpdatePaymentStatus(ctx context.Context, orderID uuid.UUID, req UpdatePaymentStatusRequest) (*checkout.OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := order.SetPaymentStatus(ordering.PaymentStatus(req.PaymentStatus)); err != nil {
		return nil, err
	}
	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}
	response := checkout.ToOrderResponse(order)
	return &response, nil
}

// releaseStock credits the ledger for every line of a just-cancelled order
func (s *Service) releaseStock(ctx context.Context, repos TransactionalRepositories, order *ordering.Order) error {
	for _, item := range order.Items {
		if err := repos.StockRepo().ReleaseStock(ctx, item.ProductID, item.Quantity, order.ID); err != nil {
			return err
		}
		movement := inventory.NewStockMovement(item.ProductID, item.Quantity, inventory.MovementReasonRelease, order.ID)
		if err := repos.MovementRepo().Append(ctx, movement); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) publish(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range events {
		_ = s.eventPublisher.Publish(ctx, event)
	}
}

func toDomainFilter(filter ListFilter) shared.Filter {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	return domainFilter
}
