package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/rivenshop/storefront/internal/models"
)

const themeSettingID = 1

// GetThemeSetting returns the store-wide theme row, or a default when none
// has been saved yet.
func (r *GormRepo) GetThemeSetting(ctx context.Context) (*models.ThemeSetting, error) {
	ts := models.ThemeSetting{}
	err := r.DB.WithContext(ctx).First(&ts, themeSettingID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.ThemeSetting{ID: themeSettingID, Preset: "default"}, nil
	}
	if err != nil {
		return nil, err
	}
	return &ts, nil
}

func (r *GormRepo) SaveThemeSetting(ctx context.Context, ts *models.ThemeSetting) error {
	ts.ID = themeSettingID
	return r.DB.WithContext(ctx).Save(ts).Error
}
