package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rivenshop/storefront/internal/models"
	"github.com/rivenshop/storefront/internal/repo"
)

func seedOrderWith(t *testing.T, r *repo.GormRepo, customerID uint, productIDs ...uint) {
	t.Helper()
	o := seedOrder(t, r, customerID, models.OrderStatusPending)
	for _, pid := range productIDs {
		item := &models.OrderItem{OrderID: o.ID, ProductID: pid, Quantity: 1, UnitPrice: 100, LineTotal: 100}
		if err := r.DB.Create(item).Error; err != nil {
			t.Fatalf("seed order item: %v", err)
		}
	}
}

func TestCrossSellRanksByCoOccurrence(t *testing.T) {
	r := newTestRepo(t)
	svc := &CrossSellService{Repo: r}

	mug := seedProduct(t, r, "Stone Mug", 2499, models.ProductStatusActive)
	tray := seedProduct(t, r, "Oak Tray", 1899, models.ProductStatusActive)
	lamp := seedProduct(t, r, "Brass Lamp", 4999, models.ProductStatusActive)
	c := seedCustomer(t, r, "Ada", "ada@example.com")

	// tray appears with mug twice, lamp once
	seedOrderWith(t, r, c.ID, mug.ID, tray.ID)
	seedOrderWith(t, r, c.ID, mug.ID, tray.ID, lamp.ID)

	items, err := svc.Recommend(context.Background(), []uint{mug.ID}, 10)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, tray.ID, items[0].Product.ID)
	require.Equal(t, int64(2), items[0].Count)
	require.Equal(t, lamp.ID, items[1].Product.ID)
	require.Equal(t, int64(1), items[1].Count)
}

func TestCrossSellCountsOrdersNotPairs(t *testing.T) {
	r := newTestRepo(t)
	svc := &CrossSellService{Repo: r}

	mug := seedProduct(t, r, "Stone Mug", 2499, models.ProductStatusActive)
	tray := seedProduct(t, r, "Oak Tray", 1899, models.ProductStatusActive)
	lamp := seedProduct(t, r, "Brass Lamp", 4999, models.ProductStatusActive)
	bowl := seedProduct(t, r, "Clay Bowl", 1499, models.ProductStatusActive)
	c := seedCustomer(t, r, "Ada", "ada@example.com")

	// lamp shares one order with both reference products, bowl shares two
	// orders with one each; bowl must outrank lamp
	seedOrderWith(t, r, c.ID, mug.ID, tray.ID, lamp.ID)
	seedOrderWith(t, r, c.ID, mug.ID, bowl.ID)
	seedOrderWith(t, r, c.ID, tray.ID, bowl.ID)

	items, err := svc.Recommend(context.Background(), []uint{mug.ID, tray.ID}, 10)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, bowl.ID, items[0].Product.ID)
	require.Equal(t, int64(2), items[0].Count)
	require.Equal(t, lamp.ID, items[1].Product.ID)
	require.Equal(t, int64(1), items[1].Count)
}

func TestCrossSellExcludesInputProducts(t *testing.T) {
	r := newTestRepo(t)
	svc := &CrossSellService{Repo: r}

	mug := seedProduct(t, r, "Stone Mug", 2499, models.ProductStatusActive)
	tray := seedProduct(t, r, "Oak Tray", 1899, models.ProductStatusActive)
	c := seedCustomer(t, r, "Ada", "ada@example.com")

	seedOrderWith(t, r, c.ID, mug.ID, tray.ID)

	items, err := svc.Recommend(context.Background(), []uint{mug.ID, tray.ID}, 10)
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestCrossSellSkipsInactiveProducts(t *testing.T) {
	r := newTestRepo(t)
	svc := &CrossSellService{Repo: r}

	mug := seedProduct(t, r, "Stone Mug", 2499, models.ProductStatusActive)
	archived := seedProduct(t, r, "Retired Vase", 3499, models.ProductStatusArchived)
	c := seedCustomer(t, r, "Ada", "ada@example.com")

	seedOrderWith(t, r, c.ID, mug.ID, archived.ID)

	items, err := svc.Recommend(context.Background(), []uint{mug.ID}, 10)
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestCrossSellLimit(t *testing.T) {
	r := newTestRepo(t)
	svc := &CrossSellService{Repo: r}

	mug := seedProduct(t, r, "Stone Mug", 2499, models.ProductStatusActive)
	c := seedCustomer(t, r, "Ada", "ada@example.com")

	others := make([]uint, 0, 6)
	for _, title := range []string{"A Plate", "B Bowl", "C Fork", "D Spoon", "E Knife", "F Cup"} {
		p := seedProduct(t, r, title, 1000, models.ProductStatusActive)
		others = append(others, p.ID)
	}
	seedOrderWith(t, r, c.ID, append([]uint{mug.ID}, others...)...)

	items, err := svc.Recommend(context.Background(), []uint{mug.ID}, 3)
	require.NoError(t, err)
	require.Len(t, items, 3)
}

func TestCrossSellRequiresInput(t *testing.T) {
	r := newTestRepo(t)
	svc := &CrossSellService{Repo: r}

	_, err := svc.Recommend(context.Background(), nil, 10)
	require.ErrorIs(t, err, ErrValidation)
}
