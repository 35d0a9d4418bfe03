package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rivenshop/storefront/internal/logging"
	"github.com/rivenshop/storefront/internal/palette"
	"github.com/rivenshop/storefront/internal/service"
	"github.com/rivenshop/storefront/internal/transport"
)

type AdminThemeHTTP struct {
	Theme   *service.ThemeService
	Palette *palette.Client
}

func (h *AdminThemeHTTP) GetTheme(c echo.Context) error {
	ctx := c.Request().Context()

	theme, err := h.Theme.Current(ctx)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, theme)
}

func (h *AdminThemeHTTP) UpdateTheme(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.update_theme")

	var req transport.ThemeRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("theme_update_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	theme, err := h.Theme.Update(ctx, req.Preset, req.Overrides)
	if err != nil {
		return serviceError(err)
	}

	l.Info("theme_updated", "preset", req.Preset)
	return c.JSON(http.StatusOK, theme)
}

func (h *AdminThemeHTTP) ListPresets(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"presets": service.PresetNames()})
}

// SuggestPalette proxies the external palette service; suggestions are
// advisory and can be applied as overrides by the admin UI.
func (h *AdminThemeHTTP) SuggestPalette(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.suggest_palette")

	var req transport.PaletteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	colors, err := h.Palette.Suggest(ctx, req.Prompt)
	if err != nil {
		if errors.Is(err, palette.ErrDisabled) {
			return echo.NewHTTPError(http.StatusBadRequest, "palette service is not configured")
		}
		l.Error("palette_error", "status", 502, "error", err)
		return echo.NewHTTPError(http.StatusBadGateway, "palette service failed")
	}

	return c.JSON(http.StatusOK, map[string]any{"colors": colors})
}
