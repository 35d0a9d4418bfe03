package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rivenshop/storefront/internal/events"
	"github.com/rivenshop/storefront/internal/logging"
	"github.com/rivenshop/storefront/internal/models"
	"github.com/rivenshop/storefront/internal/repo"
)

type AnalyticsService struct {
	Repo     *repo.GormRepo
	Producer *events.Producer
}

const EventTypePageView = "page_view"

// Record stores a page-view event and mirrors it to the event stream.
func (s *AnalyticsService) Record(ctx context.Context, eventType, path string, productID *uint) error {
	if eventType == "" {
		eventType = EventTypePageView
	}

	ev := &models.AnalyticsEvent{
		Type:      eventType,
		Path:      path,
		ProductID: productID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Repo.CreateAnalyticsEvent(ctx, ev); err != nil {
		return err
	}

	l := logging.FromContext(ctx)
	if err := s.Producer.PublishEvent(ctx, events.TopicAnalyticsEvents, path, map[string]any{
		"type": eventType,
		"path": path,
	}); err != nil {
		l.Error("publish_failed", "error", err)
	}
	return nil
}

type DailySummary struct {
	Date    string `json:"date"`
	Views   int64  `json:"views"`
	Orders  int64  `json:"orders"`
	Revenue int64  `json:"revenue"`
}

type SummaryReport struct {
	Days         []DailySummary `json:"days"`
	TotalViews   int64          `json:"total_views"`
	TotalOrders  int64          `json:"total_orders"`
	TotalRevenue int64          `json:"total_revenue"`
}

// Summary rolls up page views and order revenue per day over the trailing
// window. Revenue counts paid orders only.
func (s *AnalyticsService) Summary(ctx context.Context, days int) (*SummaryReport, error) {
	if days <= 0 || days > 365 {
		days = 30
	}

	now := time.Now().UTC()
	since := now.AddDate(0, 0, -(days - 1)).Truncate(24 * time.Hour)

	evs, err := s.Repo.ListAnalyticsEventsSince(ctx, since)
	if err != nil {
		return nil, err
	}
	orders, err := s.Repo.ListOrdersSince(ctx, since)
	if err != nil {
		return nil, err
	}

	byDay := make(map[string]*DailySummary, days)
	for d := 0; d < days; d++ {
		day := since.AddDate(0, 0, d).Format("2006-01-02")
		byDay[day] = &DailySummary{Date: day}
	}

	report := &SummaryReport{}
	for _, ev := range evs {
		if ev.Type != EventTypePageView {
			continue
		}
		if day, ok := byDay[ev.CreatedAt.UTC().Format("2006-01-02")]; ok {
			day.Views++
			report.TotalViews++
		}
	}
	for _, o := range orders {
		day, ok := byDay[o.CreatedAt.UTC().Format("2006-01-02")]
		if !ok {
			continue
		}
		day.Orders++
		report.TotalOrders++
		if o.PaymentStatus == models.PaymentStatusPaid {
			day.Revenue += o.Total
			report.TotalRevenue += o.Total
		}
	}

	report.Days = make([]DailySummary, 0, days)
	for d := 0; d < days; d++ {
		day := since.AddDate(0, 0, d).Format("2006-01-02")
		report.Days = append(report.Days, *byDay[day])
	}

	if report.TotalViews == 0 && report.TotalOrders == 0 {
		logging.FromContext(ctx).Info("analytics_summary_empty", "since", fmt.Sprint(since))
	}
	return report, nil
}
