package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/rivenshop/storefront/internal/models"
	"github.com/rivenshop/storefront/internal/repo"
)

type DiscountService struct {
	Repo *repo.GormRepo
}

// DiscountResult carries the validated code and the computed amount in
// minor-currency units.
type DiscountResult struct {
	Code   *models.DiscountCode
	Amount int64
}

// Validate runs the eligibility checks in order and short-circuits on the
// first failure: exists, active, not expired, usage under max, per-customer
// usage under limit (only when an email is given).
func (s *DiscountService) Validate(ctx context.Context, code string, subtotal int64, email string) (*DiscountResult, error) {
	dc, err := s.Repo.GetDiscountCodeByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: discount code not found", ErrNotFound)
		}
		return nil, err
	}

	if !dc.Active {
		return nil, fmt.Errorf("%w: discount code is not active", ErrValidation)
	}

	if dc.ExpiresAt != nil && dc.ExpiresAt.Before(time.Now()) {
		return nil, fmt.Errorf("%w: discount code has expired", ErrValidation)
	}

	if dc.MaxUses > 0 && dc.UsedCount >= dc.MaxUses {
		return nil, fmt.Errorf("%w: discount code usage limit reached", ErrValidation)
	}

	if email != "" && dc.PerCustomerLimit > 0 {
		used, err := s.Repo.CountDiscountRedemptionsByEmail(ctx, dc.ID, email)
		if err != nil {
			return nil, err
		}
		if used >= int64(dc.PerCustomerLimit) {
			return nil, fmt.Errorf("%w: discount code already used by this customer", ErrValidation)
		}
	}

	return &DiscountResult{Code: dc, Amount: DiscountAmount(dc, subtotal)}, nil
}

// DiscountAmount computes the discount in minor units. Percentage values are
// basis points (1000 = 10%), floored by integer division; both types are
// capped at the subtotal.
func DiscountAmount(dc *models.DiscountCode, subtotal int64) int64 {
	var amount int64
	switch dc.Type {
	case models.DiscountTypePercentage:
		amount = dc.Value * subtotal / 10000
	case models.DiscountTypeFixed:
		amount = dc.Value
	}
	if amount > subtotal {
		amount = subtotal
	}
	if amount < 0 {
		amount = 0
	}
	return amount
}
