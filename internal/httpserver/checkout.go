package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rivenshop/storefront/internal/logging"
	"github.com/rivenshop/storefront/internal/service"
	"github.com/rivenshop/storefront/internal/transport"
)

type CheckoutHTTP struct {
	Svc    *service.CheckoutService
	Orders *service.OrderService
}

func (h *CheckoutHTTP) Checkout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "checkout")

	var req transport.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("checkout_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	items := make([]service.CheckoutItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, service.CheckoutItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	result, err := h.Svc.Checkout(ctx, service.CheckoutInput{
		Name:               req.Name,
		Email:              req.Email,
		Phone:              req.Phone,
		Address:            req.Address,
		PaymentMethod:      req.PaymentMethod,
		Items:              items,
		DiscountCode:       req.DiscountCode,
		RecommendationCode: req.RecommendationCode,
	})
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusCreated, result)
}

// Track is the public order-tracking endpoint: order number + email.
func (h *CheckoutHTTP) Track(c echo.Context) error {
	ctx := c.Request().Context()

	number := c.QueryParam("number")
	email := c.QueryParam("email")
	if number == "" || email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "number and email are required")
	}

	tracked, err := h.Orders.Track(ctx, number, email)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, tracked)
}
