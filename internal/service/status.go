package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/rivenshop/storefront/internal/events"
	"github.com/rivenshop/storefront/internal/logging"
	"github.com/rivenshop/storefront/internal/models"
	"github.com/rivenshop/storefront/internal/repo"
)

// statusTransitions is the fixed adjacency table for order statuses.
// Delivered and cancelled are terminal.
var statusTransitions = map[string][]string{
	models.OrderStatusPending:   {models.OrderStatusConfirmed, models.OrderStatusCancelled},
	models.OrderStatusConfirmed: {models.OrderStatusShipped, models.OrderStatusCancelled},
	models.OrderStatusShipped:   {models.OrderStatusDelivered},
	models.OrderStatusDelivered: {},
	models.OrderStatusCancelled: {},
}

var paymentStatuses = map[string]bool{
	models.PaymentStatusUnpaid:   true,
	models.PaymentStatusPaid:     true,
	models.PaymentStatusRefunded: true,
}

// AllowedTransitions returns the legal next statuses for the given status.
func AllowedTransitions(from string) []string {
	return statusTransitions[from]
}

// CanTransition reports whether from→to is in the transition table.
func CanTransition(from, to string) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type OrderService struct {
	Repo     *repo.GormRepo
	Producer *events.Producer
}

// Transition moves the order to the target status if the transition table
// allows it, and appends a history row. The rejection error names the
// current status and the allowed set.
func (s *OrderService) Transition(ctx context.Context, orderID uint, target, actor, note string) (*models.Order, error) {
	l := logging.FromContext(ctx).With("svc", "order.transition", "order_id", orderID)

	if _, ok := statusTransitions[target]; !ok {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, target)
	}

	order, err := s.Repo.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, orderID)
		}
		return nil, err
	}

	if !CanTransition(order.Status, target) {
		allowed := strings.Join(statusTransitions[order.Status], ", ")
		if allowed == "" {
			allowed = "none"
		}
		return nil, fmt.Errorf("%w: invalid transition from %q to %q (allowed: %s)",
			ErrConflict, order.Status, target, allowed)
	}

	prev := order.Status
	txErr := s.Repo.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txr := s.Repo.WithTx(tx)
		order.Status = target
		if err := txr.SaveOrder(ctx, order); err != nil {
			return err
		}
		return txr.CreateStatusHistory(ctx, &models.StatusHistory{
			OrderID:    order.ID,
			FromStatus: prev,
			ToStatus:   target,
			Actor:      actor,
			Note:       note,
			CreatedAt:  time.Now().UTC(),
		})
	})
	if txErr != nil {
		return nil, txErr
	}

	l.Info("order_status_changed", "from", prev, "to", target, "actor", actor)
	if err := s.Producer.PublishEvent(ctx, events.TopicOrderEvents, order.Number, map[string]any{
		"type":     "order_status_changed",
		"order_id": order.ID,
		"number":   order.Number,
		"from":     prev,
		"to":       target,
		"actor":    actor,
	}); err != nil {
		l.Error("publish_failed", "error", err)
	}

	return order, nil
}

// SetPaymentStatus updates the payment status independently of shipment
// status and logs it as a pseudo-transition in the history.
func (s *OrderService) SetPaymentStatus(ctx context.Context, orderID uint, target, actor, note string) (*models.Order, error) {
	l := logging.FromContext(ctx).With("svc", "order.set_payment_status", "order_id", orderID)

	if !paymentStatuses[target] {
		return nil, fmt.Errorf("%w: unknown payment status %q", ErrValidation, target)
	}

	order, err := s.Repo.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, orderID)
		}
		return nil, err
	}

	prev := order.PaymentStatus
	txErr := s.Repo.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txr := s.Repo.WithTx(tx)
		order.PaymentStatus = target
		if err := txr.SaveOrder(ctx, order); err != nil {
			return err
		}
		return txr.CreateStatusHistory(ctx, &models.StatusHistory{
			OrderID:    order.ID,
			FromStatus: "payment:" + prev,
			ToStatus:   "payment:" + target,
			Actor:      actor,
			Note:       note,
			CreatedAt:  time.Now().UTC(),
		})
	})
	if txErr != nil {
		return nil, txErr
	}

	l.Info("payment_status_changed", "from", prev, "to", target, "actor", actor)
	return order, nil
}

type TrackedOrder struct {
	Number        string                 `json:"number"`
	Status        string                 `json:"status"`
	PaymentStatus string                 `json:"payment_status"`
	Subtotal      int64                  `json:"subtotal"`
	DiscountTotal int64                  `json:"discount_total"`
	Shipping      int64                  `json:"shipping"`
	Total         int64                  `json:"total"`
	Items         []models.OrderItem     `json:"items"`
	Timeline      []models.StatusHistory `json:"timeline"`
}

// Track resolves an order by public number and customer email.
func (s *OrderService) Track(ctx context.Context, number, email string) (*TrackedOrder, error) {
	order, err := s.Repo.GetOrderByNumberAndEmail(ctx, number, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order", ErrNotFound)
		}
		return nil, err
	}

	items, err := s.Repo.ListOrderItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	timeline, err := s.Repo.ListStatusHistory(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	return &TrackedOrder{
		Number:        order.Number,
		Status:        order.Status,
		PaymentStatus: order.PaymentStatus,
		Subtotal:      order.Subtotal,
		DiscountTotal: order.DiscountTotal,
		Shipping:      order.Shipping,
		Total:         order.Total,
		Items:         items,
		Timeline:      timeline,
	}, nil
}
