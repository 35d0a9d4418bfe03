package repo

import (
	"context"
	"time"

	"github.com/rivenshop/storefront/internal/models"
)

func (r *GormRepo) CreateAnalyticsEvent(ctx context.Context, ev *models.AnalyticsEvent) error {
	return r.DB.WithContext(ctx).Create(ev).Error
}

func (r *GormRepo) ListAnalyticsEventsSince(ctx context.Context, since time.Time) ([]models.AnalyticsEvent, error) {
	var events []models.AnalyticsEvent
	if err := r.DB.WithContext(ctx).
		Where("created_at >= ?", since).
		Order("created_at ASC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *GormRepo) ListOrdersSince(ctx context.Context, since time.Time) ([]models.Order, error) {
	var orders []models.Order
	if err := r.DB.WithContext(ctx).
		Where("created_at >= ?", since).
		Order("created_at ASC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
