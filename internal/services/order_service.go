package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/example/grocery/internal/apperr"
	"github.com/example/grocery/internal/events"
	"github.com/example/grocery/internal/metrics"
	"github.com/example/grocery/internal/models"
	"github.com/example/grocery/internal/repository"
	"github.com/example/grocery/internal/utils"
)

const defaultPaymentMethod = "stripe"

// CreateOrderInput is the checkout payload. Items are stored exactly as sent.
type CreateOrderInput struct {
	Items           []models.OrderItem `json:"items"`
	DeliveryAddress models.Address     `json:"delivery_address"`
	PaymentMethod   string             `json:"payment_method"`
	DeliveryOption  string             `json:"delivery_option"`
	Notes           string             `json:"notes"`
}

// OrderService places orders and drives their lifecycle.
type OrderService struct {
	orders repository.OrderRepository
	events events.Publisher
	log    *slog.Logger
}

// NewOrderService constructs OrderService.
func NewOrderService(orders repository.OrderRepository, pub events.Publisher, log *slog.Logger) *OrderService {
	return &OrderService{orders: orders, events: pub, log: log}
}

// CreateOrder snapshots the items, prices them and stores a pending order for user.
func (s *OrderService) CreateOrder(ctx context.Context, user *models.User, in CreateOrderInput) (*models.Order, error) {
	items := make([]models.OrderItem, 0, len(in.Items))
	for i, item := range in.Items {
		if item.Quantity <= 0 {
			return nil, apperr.Validation(fmt.Sprintf("Item %d: quantity must be at least 1", i+1))
		}
		if item.Price < 0 {
			return nil, apperr.Validation(fmt.Sprintf("Item %d: price cannot be negative", i+1))
		}
		item.ID = 0
		item.OrderID = uuid.Nil
		items = append(items, item)
	}

	totals := PriceOrder(items)

	order := &models.Order{
		UserID:          user.ID,
		Items:           items,
		Subtotal:        totals.Subtotal,
		Tax:             totals.Tax,
		DeliveryFee:     totals.DeliveryFee,
		TotalPrice:      totals.Total,
		Status:          models.OrderStatusPending,
		DeliveryAddress: in.DeliveryAddress,
		PaymentMethod:   strings.TrimSpace(in.PaymentMethod),
		DeliveryOption:  strings.TrimSpace(in.DeliveryOption),
		Notes:           in.Notes,
	}
	if order.PaymentMethod == "" {
		order.PaymentMethod = defaultPaymentMethod
	}
	if order.DeliveryOption == "" {
		order.DeliveryOption = models.DefaultDeliveryOption
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, apperr.Upstream("Failed to create order", err)
	}

	metrics.OrdersCreated.Inc()
	s.log.InfoContext(ctx, "order created", "order_id", order.ID, "user_id", user.ID, "total", order.TotalPrice)
	events.Emit(ctx, s.events, s.log, events.OrderCreated, order)
	return order, nil
}

// GetOrder returns the order when it belongs to user.
func (s *OrderService) GetOrder(ctx context.Context, user *models.User, id string) (*models.Order, error) {
	orderID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.NotFound("Order")
	}
	order, err := s.find(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != user.ID {
		return nil, apperr.NotFound("Order")
	}
	return order, nil
}

// ListOrders pages through the caller's orders, newest first.
func (s *OrderService) ListOrders(ctx context.Context, user *models.User, status string, pg utils.Pagination) ([]models.Order, int64, error) {
	filter := repository.OrderFilter{UserID: &user.ID}
	if status != "" {
		st := models.OrderStatus(status)
		if !st.Valid() {
			return nil, 0, apperr.Validation("Invalid order status")
		}
		filter.Status = st
	}

	orders, total, err := s.orders.List(ctx, filter, pg)
	if err != nil {
		return nil, 0, apperr.Upstream("Failed to get orders", err)
	}
	return orders, total, nil
}

// UpdateOrder applies the customer-editable part of upd. Only notes are
// customer-editable; a status in upd is ignored.
func (s *OrderService) UpdateOrder(ctx context.Context, user *models.User, id string, upd models.OrderUpdate) (*models.Order, error) {
	order, err := s.GetOrder(ctx, user, id)
	if err != nil {
		return nil, err
	}

	if !(models.OrderUpdate{Notes: upd.Notes}).Apply(order) {
		return order, nil
	}
	if err := s.save(ctx, order); err != nil {
		return nil, err
	}
	events.Emit(ctx, s.events, s.log, events.OrderUpdated, order)
	return order, nil
}

// CancelOrder moves a pending order of user to cancelled.
func (s *OrderService) CancelOrder(ctx context.Context, user *models.User, id string) (*models.Order, error) {
	order, err := s.GetOrder(ctx, user, id)
	if err != nil {
		return nil, err
	}
	if order.Status != models.OrderStatusPending {
		return nil, apperr.ErrInvalidStateTransition
	}

	order.Status = models.OrderStatusCancelled
	if err := s.save(ctx, order); err != nil {
		return nil, err
	}

	metrics.OrderStatusChanges.WithLabelValues(string(order.Status)).Inc()
	s.log.InfoContext(ctx, "order cancelled", "order_id", order.ID)
	events.Emit(ctx, s.events, s.log, events.OrderCancelled, order)
	return order, nil
}

// SetOrderStatus is the administrative override: any order, any valid status, plus notes.
func (s *OrderService) SetOrderStatus(ctx context.Context, id string, upd models.OrderUpdate) (*models.Order, error) {
	orderID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.NotFound("Order")
	}
	if upd.Status != nil && !upd.Status.Valid() {
		return nil, apperr.Validation("Invalid order status")
	}

	order, err := s.find(ctx, orderID)
	if err != nil {
		return nil, err
	}

	previous := order.Status
	if !upd.Apply(order) {
		return order, nil
	}
	if err := s.save(ctx, order); err != nil {
		return nil, err
	}

	if order.Status != previous {
		metrics.OrderStatusChanges.WithLabelValues(string(order.Status)).Inc()
		s.log.InfoContext(ctx, "order status changed", "order_id", order.ID, "from", previous, "to", order.Status)
	}
	events.Emit(ctx, s.events, s.log, events.OrderUpdated, order)
	return order, nil
}

// ListAllOrders is the administrative listing across users.
func (s *OrderService) ListAllOrders(ctx context.Context, status, userID string, pg utils.Pagination) ([]models.Order, int64, error) {
	var filter repository.OrderFilter
	if status != "" {
		st := models.OrderStatus(status)
		if !st.Valid() {
			return nil, 0, apperr.Validation("Invalid order status")
		}
		filter.Status = st
	}
	if userID != "" {
		id, err := uuid.Parse(userID)
		if err != nil {
			return nil, 0, apperr.Validation("Invalid user_id")
		}
		filter.UserID = &id
	}

	orders, total, err := s.orders.List(ctx, filter, pg)
	if err != nil {
		return nil, 0, apperr.Upstream("Failed to get orders", err)
	}
	return orders, total, nil
}

func (s *OrderService) find(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("Order")
		}
		return nil, apperr.Upstream("Failed to load order", err)
	}
	return order, nil
}

func (s *OrderService) save(ctx context.Context, order *models.Order) error {
	if err := s.orders.Update(ctx, order); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("Order")
		}
		return apperr.Upstream("Failed to update order", err)
	}
	return nil
}
