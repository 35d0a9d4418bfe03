package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/rivenshop/storefront/internal/logging"
	"github.com/rivenshop/storefront/internal/repo"
	"github.com/rivenshop/storefront/internal/service"
	"github.com/rivenshop/storefront/internal/transport"
	"github.com/rivenshop/storefront/internal/util"
)

type AdminCustomersHTTP struct {
	Repo            *repo.GormRepo
	Recommendations *service.RecommendationService
}

func (h *AdminCustomersHTTP) ListCustomers(c echo.Context) error {
	ctx := c.Request().Context()

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, customers, err := h.Repo.ListCustomers(ctx, offset, limit)
	if err != nil {
		logging.FromContext(ctx).Error("admin_list_customers_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list customers")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": customers,
		"meta": map[string]any{"page": page, "size": limit, "total": total},
	})
}

func (h *AdminCustomersHTTP) GetCustomer(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c)
	if err != nil {
		return err
	}

	customer, err := h.Repo.GetCustomer(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "customer not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get customer")
	}

	addresses, err := h.Repo.ListAddresses(ctx, customer.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get addresses")
	}

	return c.JSON(http.StatusOK, map[string]any{"customer": customer, "addresses": addresses})
}

func (h *AdminCustomersHTTP) UpdateCustomer(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c)
	if err != nil {
		return err
	}

	var req transport.CustomerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	customer, err := h.Repo.GetCustomer(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "customer not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get customer")
	}

	customer.Name = req.Name
	customer.Email = req.Email
	customer.Phone = req.Phone
	if err := h.Repo.SaveCustomer(ctx, customer); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot save customer")
	}
	return c.JSON(http.StatusOK, customer)
}

func (h *AdminCustomersHTTP) DeleteCustomer(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c)
	if err != nil {
		return err
	}

	if err := h.Repo.DeleteCustomer(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "customer not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete customer")
	}
	return c.NoContent(http.StatusNoContent)
}

// DedupeCustomers merges customers sharing an email into the oldest record.
func (h *AdminCustomersHTTP) DedupeCustomers(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.dedupe_customers")

	removed, err := h.Repo.DedupeCustomersByEmail(ctx)
	if err != nil {
		l.Error("dedupe_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "dedupe failed")
	}

	l.Info("dedupe_success", "removed", removed)
	return c.JSON(http.StatusOK, map[string]any{"removed": removed})
}

// IssueRecommendationCode creates a referral code for an existing customer.
func (h *AdminCustomersHTTP) IssueRecommendationCode(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c)
	if err != nil {
		return err
	}

	rc, err := h.Recommendations.Issue(ctx, id)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, rc)
}

func (h *AdminCustomersHTTP) ListRecommendationCodes(c echo.Context) error {
	ctx := c.Request().Context()

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, codes, err := h.Repo.ListRecommendationCodes(ctx, offset, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list recommendation codes")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": codes,
		"meta": map[string]any{"page": page, "size": limit, "total": total},
	})
}
