package httpserver

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rivenshop/storefront/internal/logging"
	"github.com/rivenshop/storefront/internal/service"
	"github.com/rivenshop/storefront/internal/session"
	"github.com/rivenshop/storefront/internal/transport"
)

type AuthHTTP struct {
	Admin  *service.AdminService
	Secret []byte
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	username, err := h.Admin.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		l.Warn("login_failed", "status", 401, "username", req.Username)
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	now := time.Now()
	token, err := session.Issue(h.Secret, username, now)
	if err != nil {
		l.Error("login_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot issue session")
	}

	c.SetCookie(session.CreateCookie(token, now.Add(session.TTL)))
	l.Info("login_success", "username", username)
	return c.JSON(http.StatusOK, map[string]any{"username": username})
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	c.SetCookie(session.CreateCookie("", time.Unix(0, 0)))
	return c.NoContent(http.StatusNoContent)
}
