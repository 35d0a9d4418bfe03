package service

import (
	"context"
	"fmt"

	"github.com/rivenshop/storefront/internal/models"
	"github.com/rivenshop/storefront/internal/repo"
)

type CrossSellService struct {
	Repo *repo.GormRepo
}

const DefaultCrossSellLimit = 4

type CrossSellItem struct {
	Product models.Product `json:"product"`
	Count   int64          `json:"count"`
}

// Recommend ranks products co-purchased with the given set by how often they
// appear in the same historical orders, excluding the inputs and inactive
// products.
func (s *CrossSellService) Recommend(ctx context.Context, productIDs []uint, limit int) ([]CrossSellItem, error) {
	if len(productIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one product id is required", ErrValidation)
	}
	if limit <= 0 || limit > 50 {
		limit = DefaultCrossSellLimit
	}

	rows, err := s.Repo.CoPurchasedProducts(ctx, productIDs, limit)
	if err != nil {
		return nil, err
	}

	items := make([]CrossSellItem, 0, len(rows))
	for _, row := range rows {
		product, err := s.Repo.GetProduct(ctx, row.ProductID)
		if err != nil {
			continue
		}
		items = append(items, CrossSellItem{Product: *product, Count: row.Count})
	}
	return items, nil
}
