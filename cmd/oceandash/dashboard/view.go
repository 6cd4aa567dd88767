package dashboard

import (
	"fmt"
	"strings"

	"oceandash/cmd/oceandash/ui"
	"oceandash/internal/export"

	"github.com/charmbracelet/lipgloss"
)

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	ds := m.presenter.Snapshot()
	header := m.renderHeader(ds)
	footer := m.renderFooter(ds)

	chatW, chartsW := m.layout.SplitPaneWidths()
	chat := m.renderChatPane(ds, chatW)
	charts := m.renderChartsPane(ds, chartsW)

	var body string
	if m.layout.IsCompact {
		body = lipgloss.JoinVertical(lipgloss.Left, chat, charts)
	} else {
		body = lipgloss.JoinHorizontal(lipgloss.Top, chat, charts)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m Model) renderHeader(ds export.DisplayState) string {
	title := m.styles.Header.Render("Ocean Analytics Console")
	right := m.status
	if right == "" {
		right = m.styles.Muted.Render(ds.TakenAt.Format("15:04:05"))
	}
	gap := max(1, m.width-lipgloss.Width(title)-lipgloss.Width(right))
	return title + strings.Repeat(" ", gap) + right
}

func (m Model) renderFooter(ds export.DisplayState) string {
	if ds.Layout.ChatFocused {
		return m.styles.Footer.Render(m.help.View(m.keys))
	}
	return m.styles.Footer.Render(m.help.ShortHelpView(m.keys.chartHelp()))
}

func (m Model) renderChatPane(ds export.DisplayState, width int) string {
	labels := make([]string, 0, 3)
	for _, qa := range m.presenter.Engine().QuickActions() {
		labels = append(labels, qa.Label)
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		m.viewport.View(),
		ui.RenderQuickActions(labels, m.styles),
		m.input.View(),
	)

	panel := m.styles.Panel
	if ds.Layout.ChatFocused {
		panel = m.styles.ActivePanel
	}
	return panel.Width(max(10, width-2*ui.PanelBorderWidth)).Render(content)
}

func (m Model) renderChartsPane(ds export.DisplayState, width int) string {
	inner := ui.PanelContentWidth(width)
	active := ds.Layout.ActiveChart

	var parts []string
	if active >= 0 && active < len(ds.Charts) {
		c := ds.Charts[active]
		height := max(ui.MinChartHeight, m.uiConfig.ChartHeight)
		chartKey := ui.ComputeKey("chart", active, c.Revision, inner, height)
		parts = append(parts, m.cache.GetOrCompute(chartKey, func() string {
			return ui.RenderChart(c, m.styles, inner, height)
		}))
		parts = append(parts, m.styles.Muted.Render(fmt.Sprintf("chart %d/%d", active+1, len(ds.Charts))))
	}

	cardKey := ui.ComputeKey("cards", inner, len(ds.Metrics))
	parts = append(parts, m.cache.GetOrCompute(cardKey, func() string {
		return ui.RenderMetricGrid(ds.Metrics, m.styles, inner)
	}))

	panel := m.styles.Panel
	if !ds.Layout.ChatFocused {
		panel = m.styles.ActivePanel
	}
	return panel.Width(max(10, width-2*ui.PanelBorderWidth)).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}
