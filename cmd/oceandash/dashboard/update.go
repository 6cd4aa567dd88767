package dashboard

import (
	"context"
	"fmt"
	"path/filepath"

	"oceandash/cmd/oceandash/ui"
	"oceandash/internal/logging"
	"oceandash/internal/schedule"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case schedule.Fired:
		if m.sched.Fire(msg.ID) {
			logging.UIDebug("timer %d fired on loop", msg.ID)
		}
		m.refreshChat()
		return m, nil

	case ExportedMsg:
		if msg.Err != nil {
			m.status = m.styles.Error.Render("Export failed: " + msg.Err.Error())
		} else if len(msg.Artifact.Paths) > 0 {
			m.status = m.styles.Success.Render(fmt.Sprintf("Exported to %s", filepath.Dir(msg.Artifact.Paths[0])))
		} else {
			m.status = m.styles.Success.Render("Export complete")
		}
		return m, nil

	case ConfigReloadedMsg:
		if msg.Err != nil {
			m.status = m.styles.Warning.Render("Config not reloaded: " + msg.Err.Error())
			return m, nil
		}
		m.uiConfig = msg.Config.UI
		m.applyTheme(m.uiConfig.DarkMode())
		logging.Configure(msg.Config.Logging.ToLogging())
		if m.ready {
			m.resize(m.width, m.height)
		}
		m.status = m.styles.Info.Render("Config reloaded")
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.presenter.Engine().Pending() {
			m.refreshChat()
		}
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	engine := m.presenter.Engine()
	chatFocused := m.presenter.Layout().ChatFocused

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Shutdown()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Focus):
		if m.presenter.FocusNext().ChatFocused {
			m.input.Focus()
		} else {
			m.input.Blur()
		}
		return m, nil

	case key.Matches(msg, m.keys.Voice):
		engine.ToggleVoiceCapture()
		m.refreshChat()
		return m, nil

	case key.Matches(msg, m.keys.Export):
		if m.presenter.RequestExport(context.Background()) {
			m.status = m.styles.Info.Render("Exporting...")
		} else {
			m.status = m.styles.Warning.Render("Export busy, try again")
		}
		return m, nil

	case key.Matches(msg, m.keys.QuickAction):
		engine.SelectQuickAction(digitIndex(msg.String()))
		m.refreshChat()
		return m, nil

	case key.Matches(msg, m.keys.ScrollUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keys.ScrollDown):
		m.viewport.HalfViewDown()
		return m, nil
	}

	if chatFocused {
		return m.handleChatKey(msg)
	}
	return m.handleChartKey(msg), nil
}

func (m Model) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	engine := m.presenter.Engine()

	switch {
	case key.Matches(msg, m.keys.Submit):
		if engine.Submit(m.input.Value()) {
			m.input.Reset()
		}
		m.refreshChat()
		return m, nil

	case key.Matches(msg, m.keys.Suggestion) && m.input.Value() == "":
		chips := engine.State().LatestSuggestions()
		if i := digitIndex(msg.String()); i >= 0 && i < len(chips) {
			engine.SelectSuggestion(chips[i])
			m.refreshChat()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleChartKey(msg tea.KeyMsg) Model {
	chart, ok := m.presenter.ActiveChart()
	if !ok {
		return m
	}
	store := chart.Store

	switch {
	case key.Matches(msg, m.keys.LowerDown):
		store.Shift(-1, 0)
	case key.Matches(msg, m.keys.LowerUp):
		store.Shift(1, 0)
	case key.Matches(msg, m.keys.UpperDown):
		store.Shift(0, -1)
	case key.Matches(msg, m.keys.UpperUp):
		store.Shift(0, 1)
	case key.Matches(msg, m.keys.Reset):
		store.Reset()
	case key.Matches(msg, m.keys.NextChart):
		m.presenter.CycleChart()
	}
	return m
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.layout = ui.NewLayoutConfig(width, height, m.uiConfig.SplitPaneRatio)
	m.help.Width = width

	chatW, _ := m.layout.SplitPaneWidths()
	chatH := m.layout.BodyHeight()
	if m.layout.IsCompact {
		chatH = max(3, chatH/3)
	}
	m.viewport.Width = ui.PanelContentWidth(chatW)
	m.viewport.Height = max(1, chatH-2)
	m.input.Width = max(10, chatW-6)

	if m.uiConfig.Markdown {
		r, err := ui.NewMarkdownRenderer(m.viewport.Width-2, m.uiConfig.DarkMode())
		if err != nil {
			logging.Get(logging.CategoryUI).Warn("markdown renderer unavailable: %v", err)
			m.markdown = nil
		} else {
			m.markdown = r
		}
	}

	m.cache.Clear()
	m.ready = true
	m.refreshChat()
}

// refreshChat re-renders the history into the viewport, keeping the latest
// message in view. The render cache skips work when nothing changed.
func (m *Model) refreshChat() {
	if !m.ready {
		return
	}
	state := m.presenter.Engine().State()
	frame := ""
	if state.Pending {
		frame = m.spinner.View()
	}
	cacheKey := ui.ComputeKey("chat", state.Revision, m.viewport.Width, frame)
	content := m.cache.GetOrCompute(cacheKey, func() string {
		return ui.RenderConversation(state, ui.ConversationView{
			Styles:   m.styles,
			Width:    m.viewport.Width,
			Markdown: m.markdown,
			Spinner:  frame,
		})
	})
	m.viewport.SetContent(content)
	m.viewport.GotoBottom()
}
