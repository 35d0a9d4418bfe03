package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rivenshop/storefront/internal/logging"
	"github.com/rivenshop/storefront/internal/service"
	"github.com/rivenshop/storefront/internal/transport"
)

type AdminUsersHTTP struct {
	Svc *service.AdminService
}

func (h *AdminUsersHTTP) ListAdmins(c echo.Context) error {
	ctx := c.Request().Context()

	admins, err := h.Svc.Repo.ListAdmins(ctx)
	if err != nil {
		logging.FromContext(ctx).Error("admin_list_admins_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list admins")
	}
	return c.JSON(http.StatusOK, admins)
}

func (h *AdminUsersHTTP) CreateAdmin(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.create_admin")

	var req transport.CreateAdminRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	admin, err := h.Svc.CreateAdmin(ctx, req.Username, req.Password)
	if err != nil {
		return serviceError(err)
	}

	l.Info("admin_created", "username", admin.Username)
	return c.JSON(http.StatusCreated, admin)
}

func (h *AdminUsersHTTP) DeleteAdmin(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c)
	if err != nil {
		return err
	}

	if err := h.Svc.DeleteAdmin(ctx, id); err != nil {
		return serviceError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
