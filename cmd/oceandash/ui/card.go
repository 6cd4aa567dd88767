package ui

import (
	"fmt"
	"math"
	"strings"

	"oceandash/internal/export"
	"oceandash/internal/metrics"

	"github.com/charmbracelet/lipgloss"
)

// Badge returns the arrow and magnitude text for a derived change.
func Badge(d metrics.Derived) string {
	if !d.Change.Defined() {
		return "– n/a"
	}
	arrow := "→"
	switch d.Direction {
	case metrics.Increase:
		arrow = "↑"
	case metrics.Decrease:
		arrow = "↓"
	}
	return fmt.Sprintf("%s %.1f%%", arrow, d.Change.Abs())
}

func badgeStyle(styles Styles, label metrics.Label) lipgloss.Style {
	switch label {
	case metrics.LabelIncreaseSignificant:
		return styles.Badge.Foreground(Success)
	case metrics.LabelDecreaseSignificant:
		return styles.Badge.Foreground(Destructive)
	case metrics.LabelIncreaseMinor, metrics.LabelDecreaseMinor:
		return styles.Badge.Foreground(Warning)
	default:
		return styles.Badge.Foreground(styles.Theme.Muted)
	}
}

// ProgressBar draws ratio (clamped to [0, 1]) as a bar of width cells.
func ProgressBar(ratio float64, width int, styles Styles) string {
	if width <= 0 {
		return ""
	}
	ratio = math.Max(0, math.Min(1, ratio))
	filled := int(math.Round(ratio * float64(width)))
	return styles.ProgressFill.Render(strings.Repeat("█", filled)) +
		styles.ProgressTrack.Render(strings.Repeat("░", width-filled))
}

// RenderMetricCard renders one comparison card in a bordered panel of the
// given outer width.
func RenderMetricCard(card export.MetricCard, styles Styles, width int) string {
	inner := max(10, PanelContentWidth(width))
	s := card.Sample

	badge := badgeStyle(styles, card.Label).Render(Badge(card.Derived))
	title := styles.Title.Render(s.Title)
	gap := max(1, inner-lipgloss.Width(title)-lipgloss.Width(badge))

	lines := []string{
		title + strings.Repeat(" ", gap) + badge,
		styles.Muted.Render(s.Description),
		styles.Bold.Render(fmt.Sprintf("%g %s", s.Current, s.Unit)) +
			styles.Muted.Render(fmt.Sprintf("  prev %g %s", s.Previous, s.Unit)),
		ProgressBar(metrics.FillRatio(card.Derived), inner, styles),
		styles.Subtitle.Render(metrics.Explain(card.Derived)),
	}

	return styles.Panel.Width(width - 2*PanelBorderWidth).Render(strings.Join(lines, "\n"))
}

// RenderMetricGrid lays cards out in as many columns as width allows.
func RenderMetricGrid(cards []export.MetricCard, styles Styles, width int) string {
	if len(cards) == 0 {
		return ""
	}
	cols := CardColumns(width)
	cardW := width / cols

	var rows []string
	for i := 0; i < len(cards); i += cols {
		var row []string
		for j := i; j < min(i+cols, len(cards)); j++ {
			row = append(row, RenderMetricCard(cards[j], styles, cardW))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
