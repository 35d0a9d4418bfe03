package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/rivenshop/storefront/internal/models"
)

func (r *GormRepo) GetAdminByUsername(ctx context.Context, username string) (*models.AdminUser, error) {
	admin := models.AdminUser{}
	if err := r.DB.WithContext(ctx).Where("username = ?", username).First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *GormRepo) ListAdmins(ctx context.Context) ([]models.AdminUser, error) {
	var admins []models.AdminUser
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&admins).Error; err != nil {
		return nil, err
	}
	return admins, nil
}

func (r *GormRepo) CreateAdmin(ctx context.Context, a *models.AdminUser) error {
	return r.DB.WithContext(ctx).Create(a).Error
}

func (r *GormRepo) DeleteAdmin(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.AdminUser{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
