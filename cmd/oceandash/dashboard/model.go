// Package dashboard is the bubbletea front end: it wires the presenter to
// the terminal widgets and runs every scheduled callback on the program's
// event loop.
package dashboard

import (
	"context"
	"fmt"
	"sync"

	"oceandash/cmd/oceandash/ui"
	"oceandash/internal/config"
	"oceandash/internal/logging"
	"oceandash/internal/presenter"
	"oceandash/internal/schedule"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Options configures a Model.
type Options struct {
	Presenter *presenter.Presenter
	// Scheduler must be the one the conversation engine was built with.
	Scheduler *schedule.Posted
	UI        config.UIConfig
	// OnShutdown runs once after the engine and exports have stopped.
	OnShutdown func()
}

// Model is the dashboard's bubbletea model.
type Model struct {
	presenter *presenter.Presenter
	sched     *schedule.Posted

	styles   ui.Styles
	uiConfig config.UIConfig
	keys     keyMap
	help     help.Model
	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	markdown ui.MarkdownRenderer
	cache    *ui.RenderCache
	layout   ui.LayoutConfig

	width, height int
	ready         bool
	status        string

	onShutdown   func()
	shutdownOnce *sync.Once // pointer so Model copies share it
}

// New builds the model. It does not start anything.
func New(opts Options) Model {
	if opts.Presenter == nil || opts.Scheduler == nil {
		panic("dashboard: Presenter and Scheduler are required")
	}

	input := textinput.New()
	input.Placeholder = "Ask about trends, comparisons or forecasts..."
	input.Prompt = "› "
	input.CharLimit = 500
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		presenter:    opts.Presenter,
		sched:        opts.Scheduler,
		uiConfig:     opts.UI,
		keys:         defaultKeyMap(),
		help:         help.New(),
		input:        input,
		viewport:     viewport.New(0, 0),
		spinner:      sp,
		cache:        ui.NewRenderCache(64),
		onShutdown:   opts.OnShutdown,
		shutdownOnce: &sync.Once{},
	}
	m.applyTheme(opts.UI.DarkMode())
	return m
}

func (m *Model) applyTheme(dark bool) {
	m.styles = ui.NewStyles(ui.ThemeFor(dark))
	m.spinner.Style = m.styles.Spinner
	m.input.PromptStyle = m.styles.UserLabel
	m.cache.Clear()
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Shutdown closes the engine, drops pending timers and waits for in-flight
// exports. Safe to call multiple times.
func (m Model) Shutdown() {
	m.shutdownOnce.Do(func() {
		m.presenter.Engine().Close()
		m.sched.Stop()
		if err := m.presenter.Close(); err != nil {
			logging.Get(logging.CategoryUI).Warn("export failed during shutdown: %v", err)
		}
		if m.onShutdown != nil {
			m.onShutdown()
		}
		logging.UIDebug("dashboard shut down")
	})
}

// Run starts the program on the alternate screen and blocks until it exits.
// relay is bound to the program so background work can reach the loop.
func Run(ctx context.Context, m Model, relay *Relay) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	relay.Bind(p)
	defer relay.Bind(nil)

	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		fm.Shutdown()
	} else {
		m.Shutdown()
	}
	if err != nil {
		return fmt.Errorf("dashboard: %w", err)
	}
	return nil
}
