package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bakery-service/internal/broker"
	"bakery-service/internal/mailer"
	"bakery-service/internal/models"
	"bakery-service/internal/ordernumber"
	"bakery-service/internal/store"
	"bakery-service/internal/transport"
	"bakery-service/internal/util"
	"bakery-service/internal/validate"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service-level sentinel errors. Store sentinels (ErrNotFound,
// ErrDuplicateOrderNumber) pass through unchanged.
var (
	ErrInvalidStatus     = errors.New("invalid status")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrStoreUnavailable  = errors.New("store unavailable")
)

// orderNumberAttempts bounds regeneration after a unique-index collision.
const orderNumberAttempts = 3

// statusRank orders the forward statuses. cancelled sits outside the chain.
var statusRank = map[string]int{
	models.OrderStatusPending:   0,
	models.OrderStatusConfirmed: 1,
	models.OrderStatusPreparing: 2,
	models.OrderStatusShipped:   3,
	models.OrderStatusDelivered: 4,
}

// OrderService handles order submission and lifecycle logic.
type OrderService struct {
	store          *store.Store
	eventPublisher *broker.EventPublisher
	mailer         *mailer.Mailer
	shippingFee    int64
	logger         *zap.Logger

	// createFn is swappable for tests.
	createFn func(ctx context.Context, order *models.Order) error
}

// NewOrderService creates a new order service. eventPublisher may be nil
// when Kafka is not configured; notifications then go straight to the mailer.
func NewOrderService(
	store *store.Store,
	eventPublisher *broker.EventPublisher,
	mailer *mailer.Mailer,
	shippingFee int64,
) *OrderService {
	s := &OrderService{
		store:          store,
		eventPublisher: eventPublisher,
		mailer:         mailer,
		shippingFee:    shippingFee,
		logger:         util.GetLogger(),
	}
	s.createFn = store.CreateOrder
	return s
}

// CreateOrder validates a checkout submission, recomputes all money fields
// server-side, assigns an order number, and persists the order with status
// pending. The notification dispatch is fire-and-forget: its outcome never
// affects the returned result.
func (s *OrderService) CreateOrder(ctx context.Context, sub *transport.OrderSubmission) (*models.Order, validate.Errors, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.CreateOrder")
	defer span.End()

	if verrs := validate.Order(sub); verrs != nil {
		util.OrdersFailedTotal.WithLabelValues("validation").Inc()
		return nil, verrs, nil
	}

	items := s.snapshotItems(ctx, sub.Items)
	order := buildOrder(sub, items, s.shippingFee)

	if err := s.persistWithFreshNumber(ctx, order); err != nil {
		return nil, nil, err
	}

	util.OrdersCreatedTotal.Inc()
	s.logger.Info("Order created",
		zap.Int64("order_id", order.ID),
		zap.String("order_number", order.OrderNumber),
		zap.Int64("total", order.Total))

	s.notifyOrderCreated(ctx, order)

	return order, nil, nil
}

// buildOrder assembles a new pending order from a validated submission and
// its snapshotted items. Every money field is computed here; client-supplied
// totals are never consulted.
func buildOrder(sub *transport.OrderSubmission, items models.OrderItems, shippingFee int64) *models.Order {
	subtotal := itemsSubtotal(items)
	return &models.Order{
		Items: items,
		Customer: models.CustomerDoc{
			Name:            sub.CustomerInfo.Name,
			Phone:           sub.CustomerInfo.Phone,
			Email:           sub.CustomerInfo.Email,
			ZipCode:         sub.CustomerInfo.ZipCode,
			Address:         sub.CustomerInfo.Address,
			DetailAddress:   sub.CustomerInfo.DetailAddress,
			DeliveryMessage: sub.CustomerInfo.DeliveryMessage,
		},
		Subtotal:    subtotal,
		ShippingFee: shippingFee,
		Total:       subtotal + shippingFee,
		Status:      models.OrderStatusPending,
	}
}

// persistWithFreshNumber assigns an order number when absent and retries
// with a regenerated one on a uniqueness collision.
func (s *OrderService) persistWithFreshNumber(ctx context.Context, order *models.Order) error {
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		if order.OrderNumber == "" {
			order.OrderNumber = ordernumber.Generate(time.Now())
		}

		err := s.createFn(ctx, order)
		if err == nil {
			return nil
		}
		if errors.Is(err, store.ErrDuplicateOrderNumber) {
			util.OrderNumberRetriesTotal.Inc()
			s.logger.Warn("Order number collision, regenerating",
				zap.String("order_number", order.OrderNumber))
			order.OrderNumber = ""
			continue
		}

		util.OrdersFailedTotal.WithLabelValues("db_error").Inc()
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	util.OrdersFailedTotal.WithLabelValues("number_collision").Inc()
	return fmt.Errorf("order number collision persisted after %d attempts: %w",
		orderNumberAttempts, store.ErrDuplicateOrderNumber)
}

// snapshotItems freezes each line item's name and unit price. Catalog values
// win over client-supplied ones whenever the product is known; when the
// catalog cannot be read the submitted values are kept so checkout degrades
// rather than fails.
func (s *OrderService) snapshotItems(ctx context.Context, submitted []transport.OrderItemSubmission) models.OrderItems {
	ids := make([]int64, len(submitted))
	for i, item := range submitted {
		ids[i] = item.ProductID
	}

	byID := make(map[int64]*models.Product)
	products, err := s.store.GetProductsByIDs(ctx, ids)
	if err != nil {
		s.logger.Warn("Catalog lookup failed, keeping submitted item values", zap.Error(err))
	} else {
		for i := range products {
			byID[products[i].ID] = &products[i]
		}
	}

	items := make(models.OrderItems, len(submitted))
	for i, sub := range submitted {
		item := models.OrderItem{
			ProductID: sub.ProductID,
			Name:      sub.Name,
			NameEn:    sub.NameEn,
			Quantity:  sub.Quantity,
			Price:     sub.Price,
		}
		if p, ok := byID[sub.ProductID]; ok {
			item.Name = p.Name
			item.NameEn = p.NameEn
			item.Price = p.Price
		}
		items[i] = item
	}
	return items
}

// notifyOrderCreated publishes the confirmation event. A broker failure
// falls back to mailing directly so an outage does not drop confirmations;
// either way errors are logged and swallowed.
func (s *OrderService) notifyOrderCreated(ctx context.Context, order *models.Order) {
	if s.eventPublisher != nil {
		event := &models.OrderCreatedEvent{
			BaseEvent: models.BaseEvent{
				EventID:   uuid.New().String(),
				EventType: models.EventTypeOrderCreated,
				Timestamp: time.Now(),
			},
			Order: *order,
		}
		err := s.eventPublisher.PublishOrderCreated(ctx, event)
		if err == nil {
			return
		}
		s.logger.Error("Failed to publish OrderCreated event, falling back to direct mail",
			zap.String("order_number", order.OrderNumber), zap.Error(err))
	}

	if s.mailer == nil {
		return
	}
	snapshot := *order
	go func() {
		if err := s.mailer.SendOrderConfirmation(&snapshot); err != nil {
			util.NotificationsFailedTotal.WithLabelValues("order").Inc()
			s.logger.Error("Failed to send order confirmation",
				zap.String("order_number", snapshot.OrderNumber), zap.Error(err))
		}
	}()
}

// itemsSubtotal sums the line totals of snapshotted items.
func itemsSubtotal(items models.OrderItems) int64 {
	var subtotal int64
	for _, item := range items {
		subtotal += item.Price * int64(item.Quantity)
	}
	return subtotal
}

// GetOrder retrieves one order by database id or order number.
func (s *OrderService) GetOrder(ctx context.Context, ref string) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.GetOrder")
	defer span.End()

	return s.store.GetOrder(ctx, ref)
}

// ListOrders returns orders matching the filter. Unknown status values are
// rejected before touching the store.
func (s *OrderService) ListOrders(ctx context.Context, filter store.OrderFilter) ([]models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.ListOrders")
	defer span.End()

	for _, status := range filter.Statuses {
		if !models.ValidStatus(status) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, status)
		}
	}
	return s.store.ListOrders(ctx, filter)
}

// OrderStats returns per-status order counts for the admin view.
func (s *OrderService) OrderStats(ctx context.Context) (map[string]int64, error) {
	return s.store.CountOrdersByStatus(ctx)
}

// UpdateStatus applies a guarded status transition and persists the
// optional tracking number and notes. Entering shipped or delivered stamps
// the corresponding timestamp.
func (s *OrderService) UpdateStatus(ctx context.Context, ref string, req transport.UpdateStatusRequest) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.UpdateStatus")
	defer span.End()

	if !models.ValidStatus(req.Status) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, req.Status)
	}

	order, err := s.store.GetOrder(ctx, ref)
	if err != nil {
		return nil, err
	}

	if !canTransition(order.Status, req.Status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, req.Status)
	}

	entering := order.Status != req.Status
	order.Status = req.Status
	if req.TrackingNumber != "" {
		order.TrackingNumber = req.TrackingNumber
	}
	if req.Notes != "" {
		order.Notes = req.Notes
	}

	now := time.Now()
	if entering && req.Status == models.OrderStatusShipped && order.ShippedAt == nil {
		order.ShippedAt = &now
	}
	if entering && req.Status == models.OrderStatusDelivered && order.DeliveredAt == nil {
		order.DeliveredAt = &now
	}

	if err := s.store.UpdateOrderStatus(ctx, order); err != nil {
		return nil, err
	}

	util.OrderStatusUpdatesTotal.WithLabelValues(order.Status).Inc()
	s.logger.Info("Order status updated",
		zap.String("order_number", order.OrderNumber),
		zap.String("status", order.Status))

	return order, nil
}

// canTransition enforces the lifecycle guard: forward-only along the
// fulfillment chain, cancellation from any non-terminal state, terminal
// states frozen. Re-asserting the current non-terminal status is allowed
// so tracking numbers and notes can be amended before delivery.
func canTransition(from, to string) bool {
	if from == models.OrderStatusDelivered || from == models.OrderStatusCancelled {
		return false
	}
	if from == to {
		return true
	}
	if to == models.OrderStatusCancelled {
		return true
	}
	return statusRank[to] > statusRank[from]
}
