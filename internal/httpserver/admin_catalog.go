package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/rivenshop/storefront/internal/logging"
	"github.com/rivenshop/storefront/internal/repo"
	"github.com/rivenshop/storefront/internal/service"
	"github.com/rivenshop/storefront/internal/transport"
	"github.com/rivenshop/storefront/internal/util"
)

type AdminCatalogHTTP struct {
	Svc  *service.CatalogService
	Repo *repo.GormRepo
}

func paramID(c echo.Context) (uint, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

func (h *AdminCatalogHTTP) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	filter := repo.ProductFilter{
		Status:     c.QueryParam("status"),
		CategoryID: uint(util.ParseIntDefault(c.QueryParam("category_id"), 0)),
	}

	total, items, err := h.Repo.ListProducts(ctx, filter, offset, limit)
	if err != nil {
		logging.FromContext(ctx).Error("admin_list_products_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list products")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": items,
		"meta": map[string]any{"page": page, "size": limit, "total": total},
	})
}

func (h *AdminCatalogHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.create_product")

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("product_create_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	product, err := h.Svc.CreateProduct(ctx, service.ProductInput{
		Title:          req.Title,
		Slug:           req.Slug,
		Description:    req.Description,
		Price:          req.Price,
		CompareAtPrice: req.CompareAtPrice,
		CategoryID:     req.CategoryID,
		Status:         req.Status,
		Tags:           req.Tags,
		ImagePath:      req.ImagePath,
	})
	if err != nil {
		return serviceError(err)
	}

	l.Info("create_product_success", "product_id", product.ID)
	return c.JSON(http.StatusCreated, product)
}

func (h *AdminCatalogHTTP) PatchProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.patch_product")

	id, err := paramID(c)
	if err != nil {
		return err
	}

	var req transport.PatchProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("product_patch_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	product, err := h.Svc.PatchProduct(ctx, id, service.ProductPatch{
		Title:          req.Title,
		Slug:           req.Slug,
		Description:    req.Description,
		Price:          req.Price,
		CompareAtPrice: req.CompareAtPrice,
		CategoryID:     req.CategoryID,
		Status:         req.Status,
		Tags:           req.Tags,
		ImagePath:      req.ImagePath,
	})
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, product)
}

func (h *AdminCatalogHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c)
	if err != nil {
		return err
	}

	if err := h.Svc.DeleteProduct(ctx, id); err != nil {
		return serviceError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AdminCatalogHTTP) ReindexProducts(c echo.Context) error {
	ctx := c.Request().Context()

	indexed, err := h.Svc.ReindexProducts(ctx)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, map[string]any{"indexed": indexed})
}

func (h *AdminCatalogHTTP) CreateCategory(c echo.Context) error {
	ctx := c.Request().Context()

	var req transport.CategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	cat, err := h.Svc.CreateCategory(ctx, service.CategoryInput{
		Name: req.Name, Slug: req.Slug, SortOrder: req.SortOrder,
	})
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, cat)
}

func (h *AdminCatalogHTTP) UpdateCategory(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c)
	if err != nil {
		return err
	}

	var req transport.CategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	cat, err := h.Svc.UpdateCategory(ctx, id, service.CategoryInput{
		Name: req.Name, Slug: req.Slug, SortOrder: req.SortOrder,
	})
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, cat)
}

func (h *AdminCatalogHTTP) DeleteCategory(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c)
	if err != nil {
		return err
	}

	if err := h.Svc.DeleteCategory(ctx, id); err != nil {
		return serviceError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
