package ui

// Layout constants for panel sizing
const (
	PanelBorderWidth = 1
	PanelPaddingH    = 1

	HeaderHeight  = 1
	FooterHeight  = 1
	InputHeight   = 3
	QuickBarLines = 1

	MinimumTerminalWidth  = 80
	MinimumTerminalHeight = 24
	CompactModeWidth      = 110

	MinChartHeight = 4
	CardMinWidth   = 30
)

// LayoutConfig provides computed layout dimensions based on terminal size
type LayoutConfig struct {
	TerminalWidth  int
	TerminalHeight int
	SplitRatio     float64
	IsCompact      bool
}

// NewLayoutConfig creates a layout configuration for the given terminal size.
// ratio is the chat pane's share of the width.
func NewLayoutConfig(width, height int, ratio float64) LayoutConfig {
	if ratio <= 0 || ratio >= 1 {
		ratio = 0.4
	}
	return LayoutConfig{
		TerminalWidth:  width,
		TerminalHeight: height,
		SplitRatio:     ratio,
		IsCompact:      width < CompactModeWidth,
	}
}

// SplitPaneWidths calculates left (chat) and right (charts) pane widths.
// Compact terminals stack the panes, so both get the full width.
func (l LayoutConfig) SplitPaneWidths() (left, right int) {
	if l.IsCompact {
		return l.TerminalWidth, l.TerminalWidth
	}
	left = int(float64(l.TerminalWidth) * l.SplitRatio)
	right = l.TerminalWidth - left
	return left, right
}

// BodyHeight is the height left after header, footer and input.
func (l LayoutConfig) BodyHeight() int {
	return max(0, l.TerminalHeight-HeaderHeight-FooterHeight-InputHeight-QuickBarLines)
}

// PanelContentWidth returns the content width inside a bordered panel
func PanelContentWidth(panelWidth int) int {
	return max(0, panelWidth-(PanelBorderWidth*2)-(PanelPaddingH*2))
}

// CardColumns returns how many metric cards fit side by side.
func CardColumns(width int) int {
	switch {
	case width >= 4*CardMinWidth:
		return 4
	case width >= 2*CardMinWidth:
		return 2
	default:
		return 1
	}
}
