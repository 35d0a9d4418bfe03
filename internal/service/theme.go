package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/rivenshop/storefront/internal/models"
	"github.com/rivenshop/storefront/internal/repo"
)

// Theme is a complete token set for rendering. Presets carry all three
// groups; per-store overrides replace color tokens only.
type Theme struct {
	Colors  map[string]string `json:"colors"`
	Shadows map[string]string `json:"shadows"`
	Fonts   map[string]string `json:"fonts"`
}

var themePresets = map[string]Theme{
	"default": {
		Colors: map[string]string{
			"background": "#ffffff",
			"surface":    "#f8f9fa",
			"text":       "#1a1a2e",
			"muted":      "#6c757d",
			"primary":    "#2563eb",
			"accent":     "#f59e0b",
			"border":     "#e5e7eb",
		},
		Shadows: map[string]string{
			"sm": "0 1px 2px rgba(0,0,0,0.05)",
			"md": "0 4px 6px rgba(0,0,0,0.1)",
			"lg": "0 10px 25px rgba(0,0,0,0.15)",
		},
		Fonts: map[string]string{
			"heading": "Inter, sans-serif",
			"body":    "Inter, sans-serif",
		},
	},
	"midnight": {
		Colors: map[string]string{
			"background": "#0f172a",
			"surface":    "#1e293b",
			"text":       "#f1f5f9",
			"muted":      "#94a3b8",
			"primary":    "#38bdf8",
			"accent":     "#fbbf24",
			"border":     "#334155",
		},
		Shadows: map[string]string{
			"sm": "0 1px 2px rgba(0,0,0,0.4)",
			"md": "0 4px 6px rgba(0,0,0,0.5)",
			"lg": "0 10px 25px rgba(0,0,0,0.6)",
		},
		Fonts: map[string]string{
			"heading": "Space Grotesk, sans-serif",
			"body":    "Inter, sans-serif",
		},
	},
	"terracotta": {
		Colors: map[string]string{
			"background": "#fdf6ee",
			"surface":    "#faeadd",
			"text":       "#3d2c29",
			"muted":      "#8d6e63",
			"primary":    "#c2410c",
			"accent":     "#15803d",
			"border":     "#e7d3c2",
		},
		Shadows: map[string]string{
			"sm": "0 1px 2px rgba(61,44,41,0.08)",
			"md": "0 4px 6px rgba(61,44,41,0.12)",
			"lg": "0 10px 25px rgba(61,44,41,0.18)",
		},
		Fonts: map[string]string{
			"heading": "Fraunces, serif",
			"body":    "Source Sans 3, sans-serif",
		},
	},
}

// Compose merges color overrides into the preset key-by-key; the override
// wins. Values are not validated here.
func Compose(preset Theme, overrides map[string]string) Theme {
	out := Theme{
		Colors:  make(map[string]string, len(preset.Colors)),
		Shadows: make(map[string]string, len(preset.Shadows)),
		Fonts:   make(map[string]string, len(preset.Fonts)),
	}
	for k, v := range preset.Colors {
		out.Colors[k] = v
	}
	for k, v := range preset.Shadows {
		out.Shadows[k] = v
	}
	for k, v := range preset.Fonts {
		out.Fonts[k] = v
	}
	for k, v := range overrides {
		out.Colors[k] = v
	}
	return out
}

func PresetNames() []string {
	names := make([]string, 0, len(themePresets))
	for name := range themePresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type ThemeService struct {
	Repo *repo.GormRepo
}

type ComposedTheme struct {
	Preset string `json:"preset"`
	Theme  Theme  `json:"theme"`
}

// Current loads the stored setting and returns the composed token set.
// Unknown preset names fall back to "default".
func (s *ThemeService) Current(ctx context.Context) (*ComposedTheme, error) {
	setting, err := s.Repo.GetThemeSetting(ctx)
	if err != nil {
		return nil, err
	}

	preset, ok := themePresets[setting.Preset]
	if !ok {
		setting.Preset = "default"
		preset = themePresets["default"]
	}

	overrides := map[string]string{}
	if setting.Overrides != "" {
		if err := json.Unmarshal([]byte(setting.Overrides), &overrides); err != nil {
			return nil, fmt.Errorf("%w: stored overrides are not valid JSON", ErrValidation)
		}
	}

	return &ComposedTheme{Preset: setting.Preset, Theme: Compose(preset, overrides)}, nil
}

// Update stores a new preset selection and override map.
func (s *ThemeService) Update(ctx context.Context, preset string, overrides map[string]string) (*ComposedTheme, error) {
	if _, ok := themePresets[preset]; !ok {
		return nil, fmt.Errorf("%w: unknown preset %q", ErrValidation, preset)
	}

	raw, err := json.Marshal(overrides)
	if err != nil {
		return nil, err
	}

	setting := &models.ThemeSetting{
		Preset:    preset,
		Overrides: string(raw),
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.Repo.SaveThemeSetting(ctx, setting); err != nil {
		return nil, err
	}

	return &ComposedTheme{Preset: preset, Theme: Compose(themePresets[preset], overrides)}, nil
}
