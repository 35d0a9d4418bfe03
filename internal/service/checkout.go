package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rivenshop/storefront/internal/events"
	"github.com/rivenshop/storefront/internal/logging"
	"github.com/rivenshop/storefront/internal/models"
	"github.com/rivenshop/storefront/internal/repo"
)

type CheckoutService struct {
	Repo           *repo.GormRepo
	Producer       *events.Producer
	Discounts      *DiscountService
	Recommendation *RecommendationService
	ShippingFee    int64
}

type CheckoutItem struct {
	ProductID uint `json:"product_id"`
	Quantity  uint `json:"quantity"`
}

type CheckoutAddress struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2"`
	City       string `json:"city"`
	Region     string `json:"region"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

type CheckoutInput struct {
	Name               string
	Email              string
	Phone              string
	Address            CheckoutAddress
	PaymentMethod      string
	Items              []CheckoutItem
	DiscountCode       string
	RecommendationCode string
}

type CheckoutResult struct {
	OrderNumber   string `json:"order_number"`
	Subtotal      int64  `json:"subtotal"`
	DiscountTotal int64  `json:"discount_total"`
	Shipping      int64  `json:"shipping"`
	Total         int64  `json:"total"`
}

func newOrderNumber() string {
	return "ORD-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
}

// Checkout validates the cart against the catalog, then creates the
// customer, address, order, line items and the initial history row in a
// single transaction. Any unknown or inactive product aborts before writes.
func (s *CheckoutService) Checkout(ctx context.Context, in CheckoutInput) (*CheckoutResult, error) {
	l := logging.FromContext(ctx).With("svc", "checkout")

	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", ErrValidation)
	}

	var subtotal int64
	lines := make([]models.OrderItem, 0, len(in.Items))
	for _, item := range in.Items {
		if item.Quantity == 0 {
			return nil, fmt.Errorf("%w: quantity must be > 0 for product %d", ErrValidation, item.ProductID)
		}

		product, err := s.Repo.GetProduct(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: product %d not found", ErrValidation, item.ProductID)
			}
			return nil, err
		}
		if product.Status != models.ProductStatusActive {
			return nil, fmt.Errorf("%w: product %q is not available", ErrValidation, product.Title)
		}

		lineTotal := int64(item.Quantity) * product.Price
		subtotal += lineTotal
		lines = append(lines, models.OrderItem{
			ProductID: product.ID,
			Title:     product.Title,
			UnitPrice: product.Price,
			Quantity:  item.Quantity,
			LineTotal: lineTotal,
		})
	}

	var discount *DiscountResult
	if in.DiscountCode != "" {
		var err error
		discount, err = s.Discounts.Validate(ctx, in.DiscountCode, subtotal, in.Email)
		if err != nil {
			return nil, err
		}
	}

	var recommendation *models.RecommendationCode
	if in.RecommendationCode != "" {
		if in.Email == "" {
			return nil, fmt.Errorf("%w: email is required to redeem a recommendation code", ErrValidation)
		}
		var err error
		recommendation, err = s.Recommendation.Validate(ctx, in.RecommendationCode, in.Email)
		if err != nil {
			return nil, err
		}
	}

	var discountTotal int64
	if discount != nil {
		discountTotal = discount.Amount
	}
	shipping := s.ShippingFee
	total := subtotal - discountTotal + shipping

	addressJSON, err := json.Marshal(in.Address)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		Number:             newOrderNumber(),
		Status:             models.OrderStatusPending,
		PaymentStatus:      models.PaymentStatusUnpaid,
		PaymentMethod:      in.PaymentMethod,
		Subtotal:           subtotal,
		DiscountTotal:      discountTotal,
		Shipping:           shipping,
		Total:              total,
		DiscountCode:       in.DiscountCode,
		RecommendationCode: in.RecommendationCode,
		ShippingAddress:    string(addressJSON),
	}

	txErr := s.Repo.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txr := s.Repo.WithTx(tx)

		customer := &models.Customer{Name: in.Name, Email: in.Email, Phone: in.Phone}
		if err := txr.CreateCustomer(ctx, customer); err != nil {
			return err
		}

		address := &models.Address{
			CustomerID: customer.ID,
			Line1:      in.Address.Line1,
			Line2:      in.Address.Line2,
			City:       in.Address.City,
			Region:     in.Address.Region,
			PostalCode: in.Address.PostalCode,
			Country:    in.Address.Country,
		}
		if err := txr.CreateAddress(ctx, address); err != nil {
			return err
		}

		order.CustomerID = customer.ID
		if err := txr.CreateOrder(ctx, order); err != nil {
			return err
		}

		for i := range lines {
			lines[i].OrderID = order.ID
			if err := txr.CreateOrderItem(ctx, &lines[i]); err != nil {
				return err
			}
		}

		if err := txr.CreateStatusHistory(ctx, &models.StatusHistory{
			OrderID:   order.ID,
			ToStatus:  models.OrderStatusPending,
			Actor:     "customer",
			CreatedAt: time.Now().UTC(),
		}); err != nil {
			return err
		}

		if discount != nil {
			if err := txr.RedeemDiscountCode(ctx, discount.Code.ID, in.Email, order.ID); err != nil {
				return err
			}
		}

		if recommendation != nil {
			if err := txr.CreateRecommendationRedemption(ctx, &models.RecommendationRedemption{
				RecommendationCodeID: recommendation.ID,
				Email:                in.Email,
				OrderID:              order.ID,
			}); err != nil {
				return err
			}
		}

		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	l.Info("order_created", "number", order.Number, "total", order.Total, "items", len(lines))
	if err := s.Producer.PublishEvent(ctx, events.TopicOrderEvents, order.Number, map[string]any{
		"type":     "order_created",
		"order_id": order.ID,
		"number":   order.Number,
		"subtotal": order.Subtotal,
		"total":    order.Total,
		"items":    len(lines),
	}); err != nil {
		l.Error("publish_failed", "error", err)
	}

	return &CheckoutResult{
		OrderNumber:   order.Number,
		Subtotal:      subtotal,
		DiscountTotal: discountTotal,
		Shipping:      shipping,
		Total:         total,
	}, nil
}
