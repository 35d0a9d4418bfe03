package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/rivenshop/storefront/internal/models"
)

func (r *GormRepo) GetDiscountCodeByCode(ctx context.Context, code string) (*models.DiscountCode, error) {
	dc := models.DiscountCode{}
	if err := r.DB.WithContext(ctx).Where("code = ?", code).First(&dc).Error; err != nil {
		return nil, err
	}
	return &dc, nil
}

func (r *GormRepo) GetDiscountCode(ctx context.Context, id uint) (*models.DiscountCode, error) {
	dc := models.DiscountCode{}
	if err := r.DB.WithContext(ctx).First(&dc, id).Error; err != nil {
		return nil, err
	}
	return &dc, nil
}

func (r *GormRepo) ListDiscountCodes(ctx context.Context, offset, limit int) (int64, []models.DiscountCode, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.DiscountCode{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var codes []models.DiscountCode
	if err := r.DB.WithContext(ctx).Order("id ASC").Offset(offset).Limit(limit).Find(&codes).Error; err != nil {
		return 0, nil, err
	}
	return total, codes, nil
}

func (r *GormRepo) CreateDiscountCode(ctx context.Context, dc *models.DiscountCode) error {
	return r.DB.WithContext(ctx).Create(dc).Error
}

func (r *GormRepo) SaveDiscountCode(ctx context.Context, dc *models.DiscountCode) error {
	return r.DB.WithContext(ctx).Save(dc).Error
}

func (r *GormRepo) DeleteDiscountCode(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.DiscountCode{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountDiscountRedemptionsByEmail counts how many times the email already
// redeemed the code.
func (r *GormRepo) CountDiscountRedemptionsByEmail(ctx context.Context, codeID uint, email string) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.DiscountRedemption{}).
		Where("discount_code_id = ? AND email = ?", codeID, email).
		Count(&count).Error
	return count, err
}

// RedeemDiscountCode bumps the usage counter and records the redemption.
func (r *GormRepo) RedeemDiscountCode(ctx context.Context, codeID uint, email string, orderID uint) error {
	if err := r.DB.WithContext(ctx).Model(&models.DiscountCode{}).
		Where("id = ?", codeID).
		Update("used_count", gorm.Expr("used_count + 1")).Error; err != nil {
		return err
	}
	return r.DB.WithContext(ctx).Create(&models.DiscountRedemption{
		DiscountCodeID: codeID,
		Email:          email,
		OrderID:        orderID,
	}).Error
}

func (r *GormRepo) GetRecommendationCodeByCode(ctx context.Context, code string) (*models.RecommendationCode, error) {
	rc := models.RecommendationCode{}
	if err := r.DB.WithContext(ctx).Where("code = ?", code).First(&rc).Error; err != nil {
		return nil, err
	}
	return &rc, nil
}

func (r *GormRepo) CreateRecommendationCode(ctx context.Context, rc *models.RecommendationCode) error {
	return r.DB.WithContext(ctx).Create(rc).Error
}

func (r *GormRepo) ListRecommendationCodes(ctx context.Context, offset, limit int) (int64, []models.RecommendationCode, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.RecommendationCode{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var codes []models.RecommendationCode
	if err := r.DB.WithContext(ctx).Order("id ASC").Offset(offset).Limit(limit).Find(&codes).Error; err != nil {
		return 0, nil, err
	}
	return total, codes, nil
}

// EmailHasRecommendationRedemption reports whether the email already redeemed
// any recommendation code.
func (r *GormRepo) EmailHasRecommendationRedemption(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.RecommendationRedemption{}).
		Where("email = ?", email).
		Count(&count).Error
	return count > 0, err
}

func (r *GormRepo) CreateRecommendationRedemption(ctx context.Context, rr *models.RecommendationRedemption) error {
	return r.DB.WithContext(ctx).Create(rr).Error
}
