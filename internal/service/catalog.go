package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v9"
	"gorm.io/gorm"

	"github.com/rivenshop/storefront/internal/events"
	"github.com/rivenshop/storefront/internal/logging"
	"github.com/rivenshop/storefront/internal/models"
	"github.com/rivenshop/storefront/internal/repo"
	"github.com/rivenshop/storefront/internal/search"
)

type CatalogService struct {
	Repo     *repo.GormRepo
	Producer *events.Producer
	ES       *elasticsearch.Client
}

var productStatuses = map[string]bool{
	models.ProductStatusActive:   true,
	models.ProductStatusDraft:    true,
	models.ProductStatusArchived: true,
}

// Slugify lowercases and replaces runs of non-alphanumerics with hyphens.
func Slugify(s string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

type ProductInput struct {
	Title          string
	Slug           string
	Description    string
	Price          int64
	CompareAtPrice *int64
	CategoryID     *uint
	Status         string
	Tags           string
	ImagePath      string
}

func (s *CatalogService) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	if in.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if in.Price < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}
	if in.Status == "" {
		in.Status = models.ProductStatusDraft
	}
	if !productStatuses[in.Status] {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, in.Status)
	}
	if in.Slug == "" {
		in.Slug = Slugify(in.Title)
	}

	taken, err := s.Repo.ProductSlugTaken(ctx, in.Slug, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: slug %q already in use", ErrConflict, in.Slug)
	}

	product := &models.Product{
		Title:          in.Title,
		Slug:           in.Slug,
		Description:    in.Description,
		Price:          in.Price,
		CompareAtPrice: in.CompareAtPrice,
		CategoryID:     in.CategoryID,
		Status:         in.Status,
		Tags:           in.Tags,
		ImagePath:      in.ImagePath,
	}
	if err := s.Repo.CreateProduct(ctx, product); err != nil {
		return nil, err
	}

	s.afterProductChange(ctx, "product_created", product)
	return product, nil
}

type ProductPatch struct {
	Title          *string
	Slug           *string
	Description    *string
	Price          *int64
	CompareAtPrice *int64
	CategoryID     *uint
	Status         *string
	Tags           *string
	ImagePath      *string
}

func (s *CatalogService) PatchProduct(ctx context.Context, id uint, patch ProductPatch) (*models.Product, error) {
	product, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		return nil, err
	}

	if patch.Title != nil {
		product.Title = *patch.Title
	}
	if patch.Slug != nil {
		taken, err := s.Repo.ProductSlugTaken(ctx, *patch.Slug, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("%w: slug %q already in use", ErrConflict, *patch.Slug)
		}
		product.Slug = *patch.Slug
	}
	if patch.Description != nil {
		product.Description = *patch.Description
	}
	if patch.Price != nil {
		if *patch.Price < 0 {
			return nil, fmt.Errorf("%w: price cannot be negative", ErrValidation)
		}
		product.Price = *patch.Price
	}
	if patch.CompareAtPrice != nil {
		product.CompareAtPrice = patch.CompareAtPrice
	}
	if patch.CategoryID != nil {
		product.CategoryID = patch.CategoryID
	}
	if patch.Status != nil {
		if !productStatuses[*patch.Status] {
			return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, *patch.Status)
		}
		product.Status = *patch.Status
	}
	if patch.Tags != nil {
		product.Tags = *patch.Tags
	}
	if patch.ImagePath != nil {
		product.ImagePath = *patch.ImagePath
	}

	if err := s.Repo.SaveProduct(ctx, product); err != nil {
		return nil, err
	}

	s.afterProductChange(ctx, "product_updated", product)
	return product, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		return err
	}

	l := logging.FromContext(ctx)
	if err := s.Producer.PublishEvent(ctx, events.TopicProductEvents, fmt.Sprint(id), map[string]any{
		"type":       "product_deleted",
		"product_id": id,
	}); err != nil {
		l.Error("publish_failed", "error", err)
	}
	if err := search.DeleteProduct(ctx, s.ES, id); err != nil {
		l.Error("es_delete_failed", "product_id", id, "error", err)
	}
	return nil
}

// afterProductChange publishes the event and refreshes the search index.
// Both are best effort.
func (s *CatalogService) afterProductChange(ctx context.Context, eventType string, product *models.Product) {
	l := logging.FromContext(ctx)
	if err := s.Producer.PublishEvent(ctx, events.TopicProductEvents, fmt.Sprint(product.ID), map[string]any{
		"type":       eventType,
		"product_id": product.ID,
		"slug":       product.Slug,
	}); err != nil {
		l.Error("publish_failed", "error", err)
	}
	if err := search.IndexProduct(ctx, s.ES, product); err != nil {
		l.Error("es_index_failed", "product_id", product.ID, "error", err)
	}
}

// ReindexProducts pushes every product into the search index.
func (s *CatalogService) ReindexProducts(ctx context.Context) (int, error) {
	if s.ES == nil {
		return 0, fmt.Errorf("%w: search is not configured", ErrValidation)
	}

	var indexed int
	for page := 1; ; page++ {
		offset := (page - 1) * 100
		_, items, err := s.Repo.ListProducts(ctx, repo.ProductFilter{}, offset, 100)
		if err != nil {
			return indexed, err
		}
		if len(items) == 0 {
			return indexed, nil
		}
		for i := range items {
			if err := search.IndexProduct(ctx, s.ES, &items[i]); err != nil {
				return indexed, err
			}
			indexed++
		}
	}
}

type CategoryInput struct {
	Name      string
	Slug      string
	SortOrder int
}

func (s *CatalogService) CreateCategory(ctx context.Context, in CategoryInput) (*models.Category, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if in.Slug == "" {
		in.Slug = Slugify(in.Name)
	}

	taken, err := s.Repo.CategorySlugTaken(ctx, in.Slug, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: slug %q already in use", ErrConflict, in.Slug)
	}

	cat := &models.Category{Name: in.Name, Slug: in.Slug, SortOrder: in.SortOrder}
	if err := s.Repo.CreateCategory(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id uint, in CategoryInput) (*models.Category, error) {
	cat, err := s.Repo.GetCategory(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: category %d", ErrNotFound, id)
		}
		return nil, err
	}

	if in.Name != "" {
		cat.Name = in.Name
	}
	if in.Slug != "" {
		taken, err := s.Repo.CategorySlugTaken(ctx, in.Slug, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("%w: slug %q already in use", ErrConflict, in.Slug)
		}
		cat.Slug = in.Slug
	}
	cat.SortOrder = in.SortOrder

	if err := s.Repo.SaveCategory(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteCategory(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: category %d", ErrNotFound, id)
		}
		return err
	}
	return nil
}
