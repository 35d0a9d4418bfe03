package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/rivenshop/storefront/internal/models"
)

func (r *GormRepo) GetCustomer(ctx context.Context, id uint) (*models.Customer, error) {
	customer := models.Customer{}
	if err := r.DB.WithContext(ctx).First(&customer, id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *GormRepo) ListCustomers(ctx context.Context, offset, limit int) (int64, []models.Customer, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Customer{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var customers []models.Customer
	if err := r.DB.WithContext(ctx).Order("id ASC").Offset(offset).Limit(limit).Find(&customers).Error; err != nil {
		return 0, nil, err
	}
	return total, customers, nil
}

func (r *GormRepo) CreateCustomer(ctx context.Context, c *models.Customer) error {
	return r.DB.WithContext(ctx).Create(c).Error
}

func (r *GormRepo) SaveCustomer(ctx context.Context, c *models.Customer) error {
	return r.DB.WithContext(ctx).Save(c).Error
}

func (r *GormRepo) DeleteCustomer(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Customer{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) CreateAddress(ctx context.Context, a *models.Address) error {
	return r.DB.WithContext(ctx).Create(a).Error
}

func (r *GormRepo) ListAddresses(ctx context.Context, customerID uint) ([]models.Address, error) {
	var addrs []models.Address
	if err := r.DB.WithContext(ctx).Where("customer_id = ?", customerID).Order("id ASC").Find(&addrs).Error; err != nil {
		return nil, err
	}
	return addrs, nil
}

// DedupeCustomersByEmail merges duplicate customers sharing an email into the
// oldest record, repointing orders, addresses and recommendation codes.
// Returns the number of removed duplicates. Customers without an email are
// left alone.
func (r *GormRepo) DedupeCustomersByEmail(ctx context.Context) (int64, error) {
	var removed int64
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var dupes []struct {
			Email string
			Keep  uint
		}
		if err := tx.Model(&models.Customer{}).
			Select("email, MIN(id) AS keep").
			Where("email <> ''").
			Group("email").
			Having("COUNT(*) > 1").
			Scan(&dupes).Error; err != nil {
			return err
		}

		for _, d := range dupes {
			var ids []uint
			if err := tx.Model(&models.Customer{}).
				Where("email = ? AND id <> ?", d.Email, d.Keep).
				Pluck("id", &ids).Error; err != nil {
				return err
			}
			if len(ids) == 0 {
				continue
			}

			if err := tx.Model(&models.Order{}).Where("customer_id IN ?", ids).
				Update("customer_id", d.Keep).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.Address{}).Where("customer_id IN ?", ids).
				Update("customer_id", d.Keep).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.RecommendationCode{}).Where("customer_id IN ?", ids).
				Update("customer_id", d.Keep).Error; err != nil {
				return err
			}

			res := tx.Delete(&models.Customer{}, ids)
			if res.Error != nil {
				return res.Error
			}
			removed += res.RowsAffected
		}
		return nil
	})
	return removed, err
}
