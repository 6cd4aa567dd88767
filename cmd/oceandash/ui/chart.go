package ui

import (
	"fmt"
	"math"
	"strings"

	"oceandash/internal/export"
	"oceandash/internal/series"
)

// Chart glyphs
const (
	GlyphActual    = '•'
	GlyphPredicted = '-'
	GlyphBand      = '░'
)

const axisWidth = 8 // "  123.4 ┤"

type cellKind uint8

const (
	cellEmpty cellKind = iota
	cellBand
	cellPredicted
	cellActual
)

// RenderChart plots the visible slice of c: the actual line, the dashed
// prediction and the confidence band, scaled to the visible extrema only.
// width and height bound the whole projection; the plot gets what is left
// after the axis, title and caption.
func RenderChart(c export.ChartState, styles Styles, width, height int) string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(c.Title))
	sb.WriteString("\n")
	if c.Subtitle != "" {
		sb.WriteString(styles.Subtitle.Render(c.Subtitle))
		sb.WriteString("\n")
	}

	if len(c.Visible) == 0 {
		sb.WriteString(styles.Muted.Render("No data in range"))
		return sb.String()
	}

	plotW := max(2, width-axisWidth-2)
	plotH := max(MinChartHeight, height)
	lo, hi := extrema(c.Visible)
	grid := plotGrid(c.Visible, plotW, plotH, lo, hi)

	for r, row := range grid {
		sb.WriteString(styles.Axis.Render(axisLabel(r, plotH, lo, hi)))
		sb.WriteString(renderRow(row, styles))
		sb.WriteString("\n")
	}
	sb.WriteString(styles.Axis.Render(strings.Repeat(" ", axisWidth-1) + "└" + strings.Repeat("─", plotW)))
	sb.WriteString("\n")

	sb.WriteString(styles.Muted.Render(fmt.Sprintf("Start: %d  End: %d", c.Window.Lower, c.Window.Upper)))
	sb.WriteString("\n")
	sb.WriteString(styles.Actual.Render(string(GlyphActual) + " Actual"))
	sb.WriteString("  ")
	sb.WriteString(styles.Predicted.Render(string(GlyphPredicted) + " Predicted"))
	sb.WriteString("  ")
	sb.WriteString(styles.Band.Render(string(GlyphBand) + " Confidence band"))
	return sb.String()
}

// extrema returns the y range covering every value of pts.
func extrema(pts []series.Point) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, p := range pts {
		lo = math.Min(lo, math.Min(p.LowerBand, p.Actual))
		hi = math.Max(hi, math.Max(p.UpperBand, p.Actual))
	}
	if hi-lo < 1e-9 {
		hi = lo + 1
	}
	return lo, hi
}

func axisLabel(row, height int, lo, hi float64) string {
	switch row {
	case 0:
		return fmt.Sprintf("%*.1f ┤", axisWidth-2, hi)
	case height - 1:
		return fmt.Sprintf("%*.1f ┤", axisWidth-2, lo)
	case (height - 1) / 2:
		return fmt.Sprintf("%*.1f ┤", axisWidth-2, (hi+lo)/2)
	default:
		return strings.Repeat(" ", axisWidth-1) + "│"
	}
}

// plotGrid rasterizes pts into a height x width grid. Each column samples
// the series by linear interpolation, so short slices stretch across the
// plot and long ones are subsampled.
func plotGrid(pts []series.Point, width, height int, lo, hi float64) [][]cellKind {
	grid := make([][]cellKind, height)
	for r := range grid {
		grid[r] = make([]cellKind, width)
	}

	rowOf := func(v float64) int {
		r := int(math.Round((hi - v) / (hi - lo) * float64(height-1)))
		return min(height-1, max(0, r))
	}

	for x := 0; x < width; x++ {
		p := sampleAt(pts, x, width)

		top, bottom := rowOf(p.UpperBand), rowOf(p.LowerBand)
		for r := top; r <= bottom; r++ {
			grid[r][x] = cellBand
		}
		if x%2 == 0 {
			grid[rowOf(p.Predicted)][x] = cellPredicted
		}
		grid[rowOf(p.Actual)][x] = cellActual
	}
	return grid
}

func sampleAt(pts []series.Point, x, width int) series.Point {
	if len(pts) == 1 || width == 1 {
		return pts[0]
	}
	pos := float64(x) * float64(len(pts)-1) / float64(width-1)
	i := int(pos)
	if i >= len(pts)-1 {
		return pts[len(pts)-1]
	}
	f := pos - float64(i)
	a, b := pts[i], pts[i+1]
	lerp := func(u, v float64) float64 { return u + (v-u)*f }
	return series.Point{
		T:         a.T,
		Actual:    lerp(a.Actual, b.Actual),
		Predicted: lerp(a.Predicted, b.Predicted),
		LowerBand: lerp(a.LowerBand, b.LowerBand),
		UpperBand: lerp(a.UpperBand, b.UpperBand),
	}
}

// renderRow styles runs of equal cells together.
func renderRow(row []cellKind, styles Styles) string {
	var sb strings.Builder
	for i := 0; i < len(row); {
		j := i
		for j < len(row) && row[j] == row[i] {
			j++
		}
		n := j - i
		switch row[i] {
		case cellBand:
			sb.WriteString(styles.Band.Render(strings.Repeat(string(GlyphBand), n)))
		case cellPredicted:
			sb.WriteString(styles.Predicted.Render(strings.Repeat(string(GlyphPredicted), n)))
		case cellActual:
			sb.WriteString(styles.Actual.Render(strings.Repeat(string(GlyphActual), n)))
		default:
			sb.WriteString(strings.Repeat(" ", n))
		}
		i = j
	}
	return sb.String()
}
