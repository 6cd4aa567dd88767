package config

import "fmt"

// Theme names.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// UIConfig holds user interface configuration.
type UIConfig struct {
	Theme string `yaml:"theme"` // dark or light

	// SplitPaneRatio is the chat pane's share of the width (0.0-1.0).
	// Default is 0.4 (chat left, charts and cards right).
	SplitPaneRatio float64 `yaml:"split_pane_ratio"`

	// ChartHeight is the plot height in rows.
	ChartHeight int `yaml:"chart_height"`

	// Markdown renders assistant replies through glamour.
	Markdown bool `yaml:"markdown"`
}

// DefaultUIConfig returns sensible UI defaults.
func DefaultUIConfig() *UIConfig {
	return &UIConfig{
		Theme:          ThemeDark,
		SplitPaneRatio: 0.4,
		ChartHeight:    12,
		Markdown:       true,
	}
}

// DarkMode reports whether the dark theme is selected.
func (u UIConfig) DarkMode() bool {
	return u.Theme != ThemeLight
}

// Validate checks the UI section.
func (u UIConfig) Validate() error {
	if u.Theme != ThemeDark && u.Theme != ThemeLight {
		return fmt.Errorf("invalid theme: %s (valid: %s, %s)", u.Theme, ThemeDark, ThemeLight)
	}
	if u.SplitPaneRatio <= 0 || u.SplitPaneRatio >= 1 {
		return fmt.Errorf("split pane ratio must be within (0, 1), got %v", u.SplitPaneRatio)
	}
	if u.ChartHeight < 4 {
		return fmt.Errorf("chart height must be at least 4, got %d", u.ChartHeight)
	}
	return nil
}
