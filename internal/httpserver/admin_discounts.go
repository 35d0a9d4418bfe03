package httpserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/rivenshop/storefront/internal/logging"
	"github.com/rivenshop/storefront/internal/models"
	"github.com/rivenshop/storefront/internal/repo"
	"github.com/rivenshop/storefront/internal/transport"
	"github.com/rivenshop/storefront/internal/util"
)

type AdminDiscountsHTTP struct {
	Repo *repo.GormRepo
}

func (h *AdminDiscountsHTTP) ListDiscountCodes(c echo.Context) error {
	ctx := c.Request().Context()

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, codes, err := h.Repo.ListDiscountCodes(ctx, offset, limit)
	if err != nil {
		logging.FromContext(ctx).Error("admin_list_discounts_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list discount codes")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": codes,
		"meta": map[string]any{"page": page, "size": limit, "total": total},
	})
}

func parseExpiry(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (h *AdminDiscountsHTTP) CreateDiscountCode(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.create_discount")

	var req transport.DiscountCodeRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("discount_create_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	expiresAt, err := parseExpiry(req.ExpiresAt)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "expires_at must be RFC3339")
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	dc := &models.DiscountCode{
		Code:             req.Code,
		Type:             req.Type,
		Value:            req.Value,
		MaxUses:          req.MaxUses,
		PerCustomerLimit: req.PerCustomerLimit,
		ExpiresAt:        expiresAt,
		Active:           active,
	}

	if _, err := h.Repo.GetDiscountCodeByCode(ctx, req.Code); err == nil {
		return echo.NewHTTPError(http.StatusConflict, "discount code already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create discount code")
	}

	if err := h.Repo.CreateDiscountCode(ctx, dc); err != nil {
		l.Error("discount_create_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create discount code")
	}
	return c.JSON(http.StatusCreated, dc)
}

func (h *AdminDiscountsHTTP) UpdateDiscountCode(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c)
	if err != nil {
		return err
	}

	var req transport.DiscountCodeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	dc, err := h.Repo.GetDiscountCode(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "discount code not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get discount code")
	}

	expiresAt, err := parseExpiry(req.ExpiresAt)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "expires_at must be RFC3339")
	}

	if req.Code != dc.Code {
		if _, err := h.Repo.GetDiscountCodeByCode(ctx, req.Code); err == nil {
			return echo.NewHTTPError(http.StatusConflict, "discount code already exists")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot save discount code")
		}
	}

	dc.Code = req.Code
	dc.Type = req.Type
	dc.Value = req.Value
	dc.MaxUses = req.MaxUses
	dc.PerCustomerLimit = req.PerCustomerLimit
	dc.ExpiresAt = expiresAt
	if req.Active != nil {
		dc.Active = *req.Active
	}

	if err := h.Repo.SaveDiscountCode(ctx, dc); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot save discount code")
	}
	return c.JSON(http.StatusOK, dc)
}

func (h *AdminDiscountsHTTP) DeleteDiscountCode(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c)
	if err != nil {
		return err
	}

	if err := h.Repo.DeleteDiscountCode(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "discount code not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete discount code")
	}
	return c.NoContent(http.StatusNoContent)
}
