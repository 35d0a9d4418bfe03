package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rivenshop/storefront/internal/logging"
	"github.com/rivenshop/storefront/internal/service"
	"github.com/rivenshop/storefront/internal/util"
)

type AdminAnalyticsHTTP struct {
	Svc *service.AnalyticsService
}

func (h *AdminAnalyticsHTTP) Summary(c echo.Context) error {
	ctx := c.Request().Context()

	days := util.ParseIntDefault(c.QueryParam("days"), 30)

	report, err := h.Svc.Summary(ctx, days)
	if err != nil {
		logging.FromContext(ctx).Error("analytics_summary_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot compute summary")
	}
	return c.JSON(http.StatusOK, report)
}
