// Package ui provides the visual styling and the pure render projections for
// the oceandash terminal dashboard.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Ocean palette
var (
	// Light Mode Colors
	LightBackground = lipgloss.Color("#f3f8fb")
	LightForeground = lipgloss.Color("#0b2239") // Abyss
	LightPrimary    = lipgloss.Color("#0e4c75") // Deep Sea
	LightAccent     = lipgloss.Color("#0fa3b1") // Lagoon
	LightSecondary  = lipgloss.Color("#dbe9f1")
	LightMuted      = lipgloss.Color("#6b8399")
	LightBorder     = lipgloss.Color("#c4d6e2")
	LightCard       = lipgloss.Color("#ffffff")

	// Dark Mode Colors
	DarkBackground = lipgloss.Color("#07182a")
	DarkForeground = lipgloss.Color("#e6f1f8")
	DarkPrimary    = lipgloss.Color("#4fc3f7") // Surface
	DarkAccent     = lipgloss.Color("#26c6da") // Lagoon
	DarkSecondary  = lipgloss.Color("#0f2a44")
	DarkMuted      = lipgloss.Color("#7893ab")
	DarkBorder     = lipgloss.Color("#1d3d5c")
	DarkCard       = lipgloss.Color("#0c2238")

	// Semantic Colors (same in both modes)
	Destructive = lipgloss.Color("#ef5350")
	Success     = lipgloss.Color("#66bb6a")
	Warning     = lipgloss.Color("#ffca28")
	Info        = lipgloss.Color("#42a5f5")

	// Chart Colors
	ChartActual    = lipgloss.Color("#29b6f6")
	ChartPredicted = lipgloss.Color("#ff8a65")
	ChartBand      = lipgloss.Color("#4db6ac")
)

// Theme holds the current color scheme
type Theme struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Secondary  lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Card       lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme
func LightTheme() Theme {
	return Theme{
		Background: LightBackground,
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Accent:     LightAccent,
		Secondary:  LightSecondary,
		Muted:      LightMuted,
		Border:     LightBorder,
		Card:       LightCard,
	}
}

// DarkTheme returns the dark mode theme
func DarkTheme() Theme {
	return Theme{
		Background: DarkBackground,
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Accent:     DarkAccent,
		Secondary:  DarkSecondary,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		Card:       DarkCard,
		IsDark:     true,
	}
}

// ThemeFor picks the theme for the configured mode.
func ThemeFor(dark bool) Theme {
	if dark {
		return DarkTheme()
	}
	return LightTheme()
}

// Styles holds all the styled components
type Styles struct {
	Theme Theme

	// Layout
	Header      lipgloss.Style
	Footer      lipgloss.Style
	Panel       lipgloss.Style
	ActivePanel lipgloss.Style

	// Text
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Bold     lipgloss.Style

	// Conversation
	UserLabel      lipgloss.Style
	UserBubble     lipgloss.Style
	AssistantLabel lipgloss.Style
	AssistantBody  lipgloss.Style
	Chip           lipgloss.Style
	QuickAction    lipgloss.Style
	Typing         lipgloss.Style
	Listening      lipgloss.Style

	// Chart
	Actual    lipgloss.Style
	Predicted lipgloss.Style
	Band      lipgloss.Style
	Axis      lipgloss.Style

	// Status
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Components
	Spinner       lipgloss.Style
	ProgressFill  lipgloss.Style
	ProgressTrack lipgloss.Style
	Divider       lipgloss.Style
	Badge         lipgloss.Style
}

// NewStyles creates a new Styles instance with the given theme
func NewStyles(theme Theme) Styles {
	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	return Styles{
		Theme: theme,

		Header: lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(theme.Background).
			Padding(0, 2).
			Bold(true),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 2),

		Panel:       panel,
		ActivePanel: panel.BorderForeground(theme.Accent),

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Subtitle: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true),

		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Bold: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		UserLabel: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		UserBubble: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Background(theme.Secondary).
			Padding(0, 1),

		AssistantLabel: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		AssistantBody: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			PaddingLeft(1).
			BorderLeft(true).
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(theme.Accent),

		Chip: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Border(lipgloss.RoundedBorder(), false, true).
			BorderForeground(theme.Border).
			Padding(0, 1),

		QuickAction: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Padding(0, 1),

		Typing: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true),

		Listening: lipgloss.NewStyle().
			Foreground(Destructive).
			Bold(true),

		Actual:    lipgloss.NewStyle().Foreground(ChartActual),
		Predicted: lipgloss.NewStyle().Foreground(ChartPredicted),
		Band:      lipgloss.NewStyle().Foreground(ChartBand),
		Axis:      lipgloss.NewStyle().Foreground(theme.Muted),

		Success: lipgloss.NewStyle().
			Foreground(Success).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(Destructive).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true),

		Info: lipgloss.NewStyle().
			Foreground(Info),

		Spinner: lipgloss.NewStyle().
			Foreground(theme.Accent),

		ProgressFill: lipgloss.NewStyle().
			Foreground(theme.Accent),

		ProgressTrack: lipgloss.NewStyle().
			Foreground(theme.Border),

		Divider: lipgloss.NewStyle().
			Foreground(theme.Border),

		Badge: lipgloss.NewStyle().
			Padding(0, 1).
			Bold(true),
	}
}

// DefaultStyles returns styles with the dark theme
func DefaultStyles() Styles {
	return NewStyles(DarkTheme())
}

// RenderDivider returns a horizontal divider
func (s Styles) RenderDivider(width int) string {
	if width <= 0 {
		return ""
	}
	return s.Divider.Render(strings.Repeat("─", width))
}
