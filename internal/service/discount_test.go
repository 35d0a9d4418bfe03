package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rivenshop/storefront/internal/models"
	"github.com/rivenshop/storefront/internal/repo"
)

func seedDiscount(t *testing.T, r *repo.GormRepo, dc models.DiscountCode) *models.DiscountCode {
	t.Helper()
	if err := r.DB.Create(&dc).Error; err != nil {
		t.Fatalf("seed discount: %v", err)
	}
	return &dc
}

func TestDiscountAmountPercentage(t *testing.T) {
	dc := &models.DiscountCode{Type: models.DiscountTypePercentage, Value: 1000}
	// 10% of 5000
	require.Equal(t, int64(500), DiscountAmount(dc, 5000))
}

func TestDiscountAmountFloors(t *testing.T) {
	dc := &models.DiscountCode{Type: models.DiscountTypePercentage, Value: 333}
	// 3.33% of 999 = 33.2667, floored
	require.Equal(t, int64(33), DiscountAmount(dc, 999))
}

func TestDiscountAmountCappedAtSubtotal(t *testing.T) {
	percent := &models.DiscountCode{Type: models.DiscountTypePercentage, Value: 20000}
	require.Equal(t, int64(500), DiscountAmount(percent, 500))

	fixed := &models.DiscountCode{Type: models.DiscountTypeFixed, Value: 9999}
	require.Equal(t, int64(500), DiscountAmount(fixed, 500))
}

func TestValidateDiscountHappyPath(t *testing.T) {
	r := newTestRepo(t)
	svc := &DiscountService{Repo: r}

	seedDiscount(t, r, models.DiscountCode{
		Code: "SAVE10", Type: models.DiscountTypePercentage, Value: 1000, Active: true,
	})

	result, err := svc.Validate(context.Background(), "SAVE10", 5000, "")
	require.NoError(t, err)
	require.Equal(t, int64(500), result.Amount)
	require.Equal(t, "SAVE10", result.Code.Code)
}

func TestValidateDiscountNotFound(t *testing.T) {
	r := newTestRepo(t)
	svc := &DiscountService{Repo: r}

	_, err := svc.Validate(context.Background(), "NOPE", 5000, "")
	require.ErrorIs(t, err, ErrNotFound)
	require.Contains(t, err.Error(), "not found")
}

func TestValidateDiscountInactive(t *testing.T) {
	r := newTestRepo(t)
	svc := &DiscountService{Repo: r}

	seedDiscount(t, r, models.DiscountCode{
		Code: "OLD", Type: models.DiscountTypeFixed, Value: 100, Active: false,
	})

	_, err := svc.Validate(context.Background(), "OLD", 5000, "")
	require.ErrorIs(t, err, ErrValidation)
	require.Contains(t, err.Error(), "not active")
}

func TestValidateDiscountExpired(t *testing.T) {
	r := newTestRepo(t)
	svc := &DiscountService{Repo: r}

	past := time.Now().Add(-time.Hour)
	seedDiscount(t, r, models.DiscountCode{
		Code: "GONE", Type: models.DiscountTypeFixed, Value: 100, Active: true, ExpiresAt: &past,
	})

	_, err := svc.Validate(context.Background(), "GONE", 5000, "")
	require.ErrorIs(t, err, ErrValidation)
	require.Contains(t, err.Error(), "expired")
}

func TestValidateDiscountUsageExhausted(t *testing.T) {
	r := newTestRepo(t)
	svc := &DiscountService{Repo: r}

	seedDiscount(t, r, models.DiscountCode{
		Code: "FULL", Type: models.DiscountTypeFixed, Value: 100, Active: true,
		MaxUses: 5, UsedCount: 5,
	})

	_, err := svc.Validate(context.Background(), "FULL", 5000, "")
	require.ErrorIs(t, err, ErrValidation)
	require.Contains(t, err.Error(), "usage limit")
}

func TestValidateDiscountPerCustomerLimit(t *testing.T) {
	r := newTestRepo(t)
	svc := &DiscountService{Repo: r}

	dc := seedDiscount(t, r, models.DiscountCode{
		Code: "ONCE", Type: models.DiscountTypeFixed, Value: 100, Active: true,
		PerCustomerLimit: 1,
	})
	require.NoError(t, r.DB.Create(&models.DiscountRedemption{
		DiscountCodeID: dc.ID, Email: "repeat@example.com",
	}).Error)

	// the email that already used it is rejected
	_, err := svc.Validate(context.Background(), "ONCE", 5000, "repeat@example.com")
	require.ErrorIs(t, err, ErrValidation)
	require.Contains(t, err.Error(), "already used")

	// a fresh email passes
	_, err = svc.Validate(context.Background(), "ONCE", 5000, "fresh@example.com")
	require.NoError(t, err)

	// without an email the per-customer check is skipped
	_, err = svc.Validate(context.Background(), "ONCE", 5000, "")
	require.NoError(t, err)
}
