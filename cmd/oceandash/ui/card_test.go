package ui

import (
	"strings"
	"testing"

	"oceandash/internal/export"
	"oceandash/internal/metrics"

	"github.com/stretchr/testify/assert"
)

func card(s metrics.Sample) export.MetricCard {
	d := metrics.ComputeDelta(s)
	return export.MetricCard{Sample: s, Derived: d, Label: d.Label()}
}

func TestRenderMetricCard(t *testing.T) {
	c := card(metrics.Sample{
		Title:       "Ocean Temperature",
		Description: "Average temperature across monitoring zones",
		Unit:        "°C",
		Current:     24.7,
		Previous:    22.4,
	})
	out := RenderMetricCard(c, DefaultStyles(), 100)

	assert.Contains(t, out, "Ocean Temperature")
	assert.Contains(t, out, "↑ 10.3%")
	assert.Contains(t, out, "24.7 °C")
	assert.Contains(t, out, "prev 22.4 °C")
	assert.Contains(t, out, "Increase of 10.3% compared to previous period - Significant change detected")
	assert.Contains(t, out, "█")
}

func TestRenderMetricCard_NoBaseline(t *testing.T) {
	out := RenderMetricCard(card(metrics.Sample{Title: "New", Unit: "pts", Current: 5}), DefaultStyles(), 60)
	assert.Contains(t, out, "n/a")
	assert.Contains(t, out, "No baseline for comparison")
	assert.NotContains(t, out, "█")
}

func TestBadge(t *testing.T) {
	assert.Equal(t, "↓ 5.2%", Badge(metrics.ComputeDelta(metrics.Sample{Current: 87.3, Previous: 92.1})))
	assert.Equal(t, "→ 0.0%", Badge(metrics.ComputeDelta(metrics.Sample{Current: 1, Previous: 1})))
}

func TestProgressBar(t *testing.T) {
	bar := ProgressBar(0.5, 10, DefaultStyles())
	assert.Equal(t, 5, strings.Count(bar, "█"))
	assert.Equal(t, 5, strings.Count(bar, "░"))

	assert.Equal(t, 10, strings.Count(ProgressBar(3, 10, DefaultStyles()), "█"))
	assert.Equal(t, 0, strings.Count(ProgressBar(-1, 10, DefaultStyles()), "█"))
	assert.Empty(t, ProgressBar(0.5, 0, DefaultStyles()))
}

func TestRenderMetricGrid(t *testing.T) {
	cards := make([]export.MetricCard, 0, 4)
	for _, s := range metrics.DefaultSamples() {
		cards = append(cards, card(s))
	}
	out := RenderMetricGrid(cards, DefaultStyles(), 130)
	for _, s := range metrics.DefaultSamples() {
		assert.Contains(t, out, s.Title)
	}
	assert.Empty(t, RenderMetricGrid(nil, DefaultStyles(), 100))
}

func TestCardColumns(t *testing.T) {
	assert.Equal(t, 4, CardColumns(130))
	assert.Equal(t, 2, CardColumns(80))
	assert.Equal(t, 1, CardColumns(40))
}
