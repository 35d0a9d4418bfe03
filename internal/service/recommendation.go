package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rivenshop/storefront/internal/models"
	"github.com/rivenshop/storefront/internal/repo"
)

type RecommendationService struct {
	Repo *repo.GormRepo
}

// Validate checks a recommendation code against the redeeming email: the code
// must exist, the redeemer must not be the issuer, must have no prior order,
// and must not have redeemed any recommendation code before. The first
// failing check returns its specific reason.
func (s *RecommendationService) Validate(ctx context.Context, code, email string) (*models.RecommendationCode, error) {
	rc, err := s.Repo.GetRecommendationCodeByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: recommendation code not found", ErrNotFound)
		}
		return nil, err
	}

	issuer, err := s.Repo.GetCustomer(ctx, rc.CustomerID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if issuer != nil && issuer.Email != "" && strings.EqualFold(issuer.Email, email) {
		return nil, fmt.Errorf("%w: recommendation code cannot be redeemed by its issuer", ErrValidation)
	}

	hasOrder, err := s.Repo.EmailHasOrder(ctx, email)
	if err != nil {
		return nil, err
	}
	if hasOrder {
		return nil, fmt.Errorf("%w: recommendation codes are only valid for first-time buyers", ErrValidation)
	}

	redeemed, err := s.Repo.EmailHasRecommendationRedemption(ctx, email)
	if err != nil {
		return nil, err
	}
	if redeemed {
		return nil, fmt.Errorf("%w: recommendation code already redeemed by this customer", ErrValidation)
	}

	return rc, nil
}

// Issue creates a new code for an existing customer.
func (s *RecommendationService) Issue(ctx context.Context, customerID uint) (*models.RecommendationCode, error) {
	if _, err := s.Repo.GetCustomer(ctx, customerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: customer %d", ErrNotFound, customerID)
		}
		return nil, err
	}

	rc := &models.RecommendationCode{
		Code:       "REC-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8]),
		CustomerID: customerID,
	}
	if err := s.Repo.CreateRecommendationCode(ctx, rc); err != nil {
		return nil, err
	}
	return rc, nil
}
