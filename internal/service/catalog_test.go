package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rivenshop/storefront/internal/models"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Stone Mug":        "stone-mug",
		"  Oak  Tray!  ":   "oak-tray",
		"Brass Lamp (v2)":  "brass-lamp-v2",
		"UPPER case Title": "upper-case-title",
		"---":              "",
	}
	for in, want := range cases {
		require.Equal(t, want, Slugify(in), "input %q", in)
	}
}

func TestCreateProductDefaultsAndSlug(t *testing.T) {
	r := newTestRepo(t)
	svc := &CatalogService{Repo: r}

	p, err := svc.CreateProduct(context.Background(), ProductInput{Title: "Stone Mug", Price: 2499})
	require.NoError(t, err)
	require.Equal(t, "stone-mug", p.Slug)
	require.Equal(t, models.ProductStatusDraft, p.Status)
}

func TestCreateProductSlugConflict(t *testing.T) {
	r := newTestRepo(t)
	svc := &CatalogService{Repo: r}

	_, err := svc.CreateProduct(context.Background(), ProductInput{Title: "Stone Mug", Price: 2499})
	require.NoError(t, err)

	_, err = svc.CreateProduct(context.Background(), ProductInput{Title: "Stone Mug", Price: 1999})
	require.ErrorIs(t, err, ErrConflict)
	require.Contains(t, err.Error(), "stone-mug")
}

func TestCreateProductRejectsNegativePrice(t *testing.T) {
	r := newTestRepo(t)
	svc := &CatalogService{Repo: r}

	_, err := svc.CreateProduct(context.Background(), ProductInput{Title: "Stone Mug", Price: -1})
	require.ErrorIs(t, err, ErrValidation)
}

func TestCreateProductRejectsUnknownStatus(t *testing.T) {
	r := newTestRepo(t)
	svc := &CatalogService{Repo: r}

	_, err := svc.CreateProduct(context.Background(), ProductInput{Title: "Stone Mug", Price: 2499, Status: "hidden"})
	require.ErrorIs(t, err, ErrValidation)
}

func TestPatchProductUpdatesFields(t *testing.T) {
	r := newTestRepo(t)
	svc := &CatalogService{Repo: r}

	p, err := svc.CreateProduct(context.Background(), ProductInput{Title: "Stone Mug", Price: 2499, Status: models.ProductStatusActive})
	require.NoError(t, err)

	title := "Granite Mug"
	price := int64(2999)
	updated, err := svc.PatchProduct(context.Background(), p.ID, ProductPatch{Title: &title, Price: &price})
	require.NoError(t, err)
	require.Equal(t, "Granite Mug", updated.Title)
	require.Equal(t, int64(2999), updated.Price)
	require.Equal(t, "stone-mug", updated.Slug)
}

func TestPatchProductSlugConflict(t *testing.T) {
	r := newTestRepo(t)
	svc := &CatalogService{Repo: r}

	_, err := svc.CreateProduct(context.Background(), ProductInput{Title: "Stone Mug", Price: 2499})
	require.NoError(t, err)
	other, err := svc.CreateProduct(context.Background(), ProductInput{Title: "Oak Tray", Price: 1899})
	require.NoError(t, err)

	slug := "stone-mug"
	_, err = svc.PatchProduct(context.Background(), other.ID, ProductPatch{Slug: &slug})
	require.ErrorIs(t, err, ErrConflict)
}

func TestPatchProductNotFound(t *testing.T) {
	r := newTestRepo(t)
	svc := &CatalogService{Repo: r}

	title := "x"
	_, err := svc.PatchProduct(context.Background(), 404, ProductPatch{Title: &title})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteProductNotFound(t *testing.T) {
	r := newTestRepo(t)
	svc := &CatalogService{Repo: r}

	err := svc.DeleteProduct(context.Background(), 404)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCategorySlugConflict(t *testing.T) {
	r := newTestRepo(t)
	svc := &CatalogService{Repo: r}

	_, err := svc.CreateCategory(context.Background(), CategoryInput{Name: "Kitchen"})
	require.NoError(t, err)

	_, err = svc.CreateCategory(context.Background(), CategoryInput{Name: "Kitchen"})
	require.ErrorIs(t, err, ErrConflict)
}
