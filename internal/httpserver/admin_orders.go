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

type AdminOrdersHTTP struct {
	Svc  *service.OrderService
	Repo *repo.GormRepo
}

func (h *AdminOrdersHTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, orders, err := h.Repo.ListOrders(ctx, repo.OrderFilter{Status: c.QueryParam("status")}, offset, limit)
	if err != nil {
		logging.FromContext(ctx).Error("admin_list_orders_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list orders")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": orders,
		"meta": map[string]any{"page": page, "size": limit, "total": total},
	})
}

func (h *AdminOrdersHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c)
	if err != nil {
		return err
	}

	order, err := h.Repo.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		}
		logging.FromContext(ctx).Error("admin_get_order_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get order")
	}

	items, err := h.Repo.ListOrderItems(ctx, order.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get order items")
	}
	history, err := h.Repo.ListStatusHistory(ctx, order.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get order history")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"order":   order,
		"items":   items,
		"history": history,
	})
}

// Transition requests a status change; illegal transitions come back as 409
// naming the current status and the allowed set.
func (h *AdminOrdersHTTP) Transition(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.order_transition")

	id, err := paramID(c)
	if err != nil {
		return err
	}

	var req transport.TransitionRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("order_transition_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	order, err := h.Svc.Transition(ctx, id, req.Status, AdminUsername(c), req.Note)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, order)
}

func (h *AdminOrdersHTTP) SetPaymentStatus(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c)
	if err != nil {
		return err
	}

	var req transport.PaymentStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	order, err := h.Svc.SetPaymentStatus(ctx, id, req.PaymentStatus, AdminUsername(c), req.Note)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, order)
}

func (h *AdminOrdersHTTP) SetNote(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c)
	if err != nil {
		return err
	}

	var req transport.OrderNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Repo.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get order")
	}

	order.Note = req.Note
	if err := h.Repo.SaveOrder(ctx, order); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot save order")
	}
	return c.JSON(http.StatusOK, order)
}
