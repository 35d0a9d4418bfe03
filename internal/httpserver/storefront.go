package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/rivenshop/storefront/internal/logging"
	"github.com/rivenshop/storefront/internal/models"
	"github.com/rivenshop/storefront/internal/repo"
	"github.com/rivenshop/storefront/internal/search"
	"github.com/rivenshop/storefront/internal/service"
	"github.com/rivenshop/storefront/internal/transport"
	"github.com/rivenshop/storefront/internal/util"
)

// StorefrontHTTP serves the public, unauthenticated surface.
type StorefrontHTTP struct {
	Repo            *repo.GormRepo
	ES              *elasticsearch.Client
	CrossSell       *service.CrossSellService
	Discounts       *service.DiscountService
	Recommendations *service.RecommendationService
	Theme           *service.ThemeService
	Analytics       *service.AnalyticsService
}

func (h *StorefrontHTTP) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "storefront.list_products")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	filter := repo.ProductFilter{
		Status:     models.ProductStatusActive,
		CategoryID: uint(util.ParseIntDefault(c.QueryParam("category_id"), 0)),
	}

	total, items, err := h.Repo.ListProducts(ctx, filter, offset, limit)
	if err != nil {
		l.Error("list_products_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list products")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": items,
		"meta": map[string]any{
			"page":        page,
			"size":        limit,
			"total":       total,
			"total_pages": (total + int64(limit) - 1) / int64(limit),
			"has_prev":    page > 1,
			"has_next":    int64(offset+limit) < total,
		},
	})
}

func (h *StorefrontHTTP) GetProductBySlug(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "storefront.get_product")

	product, err := h.Repo.GetProductBySlug(ctx, c.Param("slug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		l.Error("get_product_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get product")
	}
	if product.Status != models.ProductStatusActive {
		return echo.NewHTTPError(http.StatusNotFound, "product not found")
	}

	return c.JSON(http.StatusOK, product)
}

func (h *StorefrontHTTP) ListCategories(c echo.Context) error {
	ctx := c.Request().Context()

	cats, err := h.Repo.ListCategories(ctx)
	if err != nil {
		logging.FromContext(ctx).Error("list_categories_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list categories")
	}
	return c.JSON(http.StatusOK, cats)
}

func (h *StorefrontHTTP) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "storefront.search")

	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query is required")
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	from, limit := util.Calculate(page, size)

	total, hits, err := search.Products(ctx, h.ES, q, from, limit)
	if err != nil {
		l.Error("search_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "search failed")
	}

	return c.JSON(http.StatusOK, echo.Map{"total": total, "products": hits})
}

func (h *StorefrontHTTP) CrossSellProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "storefront.cross_sell")

	var productIDs []uint
	for _, part := range strings.Split(c.QueryParam("products"), ",") {
		if id := util.ParseIntDefault(strings.TrimSpace(part), 0); id > 0 {
			productIDs = append(productIDs, uint(id))
		}
	}

	limit := util.ParseIntDefault(c.QueryParam("limit"), service.DefaultCrossSellLimit)

	items, err := h.CrossSell.Recommend(ctx, productIDs, limit)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			return serviceError(err)
		}
		l.Error("cross_sell_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot compute recommendations")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *StorefrontHTTP) ValidateDiscount(c echo.Context) error {
	ctx := c.Request().Context()

	code := c.QueryParam("code")
	if code == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "code is required")
	}
	subtotal := int64(util.ParseIntDefault(c.QueryParam("subtotal"), 0))

	result, err := h.Discounts.Validate(ctx, code, subtotal, c.QueryParam("email"))
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"valid":  true,
		"code":   result.Code.Code,
		"type":   result.Code.Type,
		"value":  result.Code.Value,
		"amount": result.Amount,
	})
}

func (h *StorefrontHTTP) ValidateRecommendation(c echo.Context) error {
	ctx := c.Request().Context()

	code := c.QueryParam("code")
	email := c.QueryParam("email")
	if code == "" || email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "code and email are required")
	}

	rc, err := h.Recommendations.Validate(ctx, code, email)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, map[string]any{"valid": true, "code": rc.Code})
}

func (h *StorefrontHTTP) GetTheme(c echo.Context) error {
	ctx := c.Request().Context()

	theme, err := h.Theme.Current(ctx)
	if err != nil {
		logging.FromContext(ctx).Error("get_theme_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot load theme")
	}
	return c.JSON(http.StatusOK, theme)
}

func (h *StorefrontHTTP) RecordEvent(c echo.Context) error {
	ctx := c.Request().Context()

	var req transport.AnalyticsEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.Analytics.Record(ctx, req.Type, req.Path, req.ProductID); err != nil {
		logging.FromContext(ctx).Error("record_event_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot record event")
	}
	return c.NoContent(http.StatusAccepted)
}
