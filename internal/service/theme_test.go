package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rivenshop/storefront/internal/models"
)

func TestComposeOverrideWins(t *testing.T) {
	preset := themePresets["default"]
	overrides := map[string]string{"primary": "#ff0000", "brand-new": "#00ff00"}

	merged := Compose(preset, overrides)

	require.Equal(t, "#ff0000", merged.Colors["primary"])
	require.Equal(t, "#00ff00", merged.Colors["brand-new"])
	// untouched tokens come from the preset
	require.Equal(t, preset.Colors["background"], merged.Colors["background"])
	require.Equal(t, preset.Shadows["md"], merged.Shadows["md"])
	require.Equal(t, preset.Fonts["body"], merged.Fonts["body"])
}

func TestComposeIdempotent(t *testing.T) {
	preset := themePresets["midnight"]
	overrides := map[string]string{"primary": "#123456", "accent": "#654321"}

	once := Compose(preset, overrides)
	twice := Compose(once, overrides)

	require.Equal(t, once, twice)
}

func TestComposeDoesNotMutatePreset(t *testing.T) {
	before := themePresets["default"].Colors["primary"]
	Compose(themePresets["default"], map[string]string{"primary": "#bad"})
	require.Equal(t, before, themePresets["default"].Colors["primary"])
}

func TestThemeServiceDefaults(t *testing.T) {
	r := newTestRepo(t)
	svc := &ThemeService{Repo: r}

	// nothing stored yet: default preset, no overrides
	current, err := svc.Current(context.Background())
	require.NoError(t, err)
	require.Equal(t, "default", current.Preset)
	require.Equal(t, themePresets["default"].Colors["primary"], current.Theme.Colors["primary"])
}

func TestThemeServiceUpdateAndReload(t *testing.T) {
	r := newTestRepo(t)
	svc := &ThemeService{Repo: r}

	updated, err := svc.Update(context.Background(), "terracotta", map[string]string{"primary": "#0000ff"})
	require.NoError(t, err)
	require.Equal(t, "#0000ff", updated.Theme.Colors["primary"])

	current, err := svc.Current(context.Background())
	require.NoError(t, err)
	require.Equal(t, "terracotta", current.Preset)
	require.Equal(t, "#0000ff", current.Theme.Colors["primary"])
	require.Equal(t, themePresets["terracotta"].Colors["background"], current.Theme.Colors["background"])
}

func TestThemeServiceUnknownPresetRejected(t *testing.T) {
	r := newTestRepo(t)
	svc := &ThemeService{Repo: r}

	_, err := svc.Update(context.Background(), "vaporwave", nil)
	require.ErrorIs(t, err, ErrValidation)
}

func TestThemeServiceUnknownStoredPresetFallsBack(t *testing.T) {
	r := newTestRepo(t)
	svc := &ThemeService{Repo: r}

	require.NoError(t, r.DB.Save(&models.ThemeSetting{ID: 1, Preset: "retired-preset"}).Error)

	current, err := svc.Current(context.Background())
	require.NoError(t, err)
	require.Equal(t, "default", current.Preset)
}

func TestPresetNamesSorted(t *testing.T) {
	names := PresetNames()
	require.Contains(t, names, "default")
	require.Contains(t, names, "midnight")
	require.Contains(t, names, "terracotta")
}
