package repo

import (
	"context"

	"github.com/rivenshop/storefront/internal/models"
)

func (r *GormRepo) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	order := models.Order{}
	if err := r.DB.WithContext(ctx).First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrderByNumberAndEmail matches an order by its public number and the
// owning customer's email. Used by the public tracking endpoint.
func (r *GormRepo) GetOrderByNumberAndEmail(ctx context.Context, number, email string) (*models.Order, error) {
	order := models.Order{}
	err := r.DB.WithContext(ctx).
		Joins("JOIN customers ON customers.id = orders.customer_id").
		Where("orders.number = ? AND customers.email = ?", number, email).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

type OrderFilter struct {
	Status string
}

func (r *GormRepo) ListOrders(ctx context.Context, f OrderFilter, offset, limit int) (int64, []models.Order, error) {
	q := r.DB.WithContext(ctx).Model(&models.Order{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var orders []models.Order
	if err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&orders).Error; err != nil {
		return 0, nil, err
	}
	return total, orders, nil
}

func (r *GormRepo) CreateOrder(ctx context.Context, order *models.Order) error {
	return r.DB.WithContext(ctx).Create(order).Error
}

func (r *GormRepo) SaveOrder(ctx context.Context, order *models.Order) error {
	return r.DB.WithContext(ctx).Save(order).Error
}

func (r *GormRepo) CreateOrderItem(ctx context.Context, item *models.OrderItem) error {
	return r.DB.WithContext(ctx).Create(item).Error
}

func (r *GormRepo) ListOrderItems(ctx context.Context, orderID uint) ([]models.OrderItem, error) {
	var items []models.OrderItem
	if err := r.DB.WithContext(ctx).Where("order_id = ?", orderID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) CreateStatusHistory(ctx context.Context, h *models.StatusHistory) error {
	return r.DB.WithContext(ctx).Create(h).Error
}

func (r *GormRepo) ListStatusHistory(ctx context.Context, orderID uint) ([]models.StatusHistory, error) {
	var hist []models.StatusHistory
	if err := r.DB.WithContext(ctx).Where("order_id = ?", orderID).Order("id ASC").Find(&hist).Error; err != nil {
		return nil, err
	}
	return hist, nil
}

// EmailHasOrder reports whether any order belongs to a customer with the email.
func (r *GormRepo) EmailHasOrder(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.Order{}).
		Joins("JOIN customers ON customers.id = orders.customer_id").
		Where("customers.email = ?", email).
		Count(&count).Error
	return count > 0, err
}

type CoOccurrence struct {
	ProductID uint  `json:"product_id"`
	Count     int64 `json:"count"`
}

// CoPurchasedProducts ranks products appearing in the same orders as any of
// the given product IDs by the number of shared orders, excluding the inputs
// and non-active products. An order holding several reference products still
// counts once per recommended product.
func (r *GormRepo) CoPurchasedProducts(ctx context.Context, productIDs []uint, limit int) ([]CoOccurrence, error) {
	var rows []CoOccurrence
	err := r.DB.WithContext(ctx).Raw(`
		SELECT o2.product_id AS product_id, COUNT(DISTINCT o1.order_id) AS count
		FROM order_items o1
		JOIN order_items o2 ON o1.order_id = o2.order_id
		JOIN products p ON p.id = o2.product_id
		WHERE o1.product_id IN ?
		  AND o2.product_id NOT IN ?
		  AND p.status = ?
		GROUP BY o2.product_id
		ORDER BY count DESC, o2.product_id ASC
		LIMIT ?`,
		productIDs, productIDs, models.ProductStatusActive, limit,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
