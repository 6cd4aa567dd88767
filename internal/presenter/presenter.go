// Package presenter composes the conversation engine, the chart stores and
// the metric samples into one display snapshot, and dispatches exports.
package presenter

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"oceandash/internal/conversation"
	"oceandash/internal/export"
	"oceandash/internal/logging"
	"oceandash/internal/metrics"
	"oceandash/internal/schedule"
	"oceandash/internal/series"

	"golang.org/x/sync/errgroup"
)

// DefaultMaxExports bounds concurrently running exports.
const DefaultMaxExports = 2

// Chart is a titled series store.
type Chart struct {
	Title    string
	Subtitle string
	Store    *series.Store
}

var chartTitles = [...]struct{ title, subtitle string }{
	{"Ocean Temperature Trends", "Real-time monitoring with predictive analysis"},
	{"System Performance Metrics", "Efficiency and resource utilization patterns"},
	{"Activity Correlation Analysis", "Multi-variable trend analysis with forecasting"},
}

// DefaultCharts generates the three dashboard charts, each from its own
// draw of rng.
func DefaultCharts(cfg series.Config, rng *rand.Rand) []Chart {
	charts := make([]Chart, 0, len(chartTitles))
	for _, t := range chartTitles {
		points := series.Generate(cfg, rng)
		logging.Series("generated %d points for %q", len(points), t.title)
		charts = append(charts, Chart{
			Title:    t.title,
			Subtitle: t.subtitle,
			Store:    series.NewStore(points),
		})
	}
	return charts
}

// Options configures a Presenter.
type Options struct {
	Comparator metrics.Comparator
	Clock      schedule.Clock // defaults to schedule.SystemClock
	// OnExported receives every export result. It runs on the export
	// goroutine.
	OnExported    func(export.Artifact, error)
	ExportTimeout time.Duration // zero means no timeout
	MaxExports    int           // defaults to DefaultMaxExports
}

// Presenter aggregates state for rendering. It owns layout state and the
// export goroutines, nothing else.
type Presenter struct {
	engine   *conversation.Engine
	charts   []Chart
	samples  []metrics.Sample
	exporter export.Exporter
	opts     Options

	mu     sync.Mutex
	layout export.Layout
	closed bool

	exports errgroup.Group
}

// New composes a presenter. A nil exporter selects export.NopExporter.
func New(engine *conversation.Engine, charts []Chart, samples []metrics.Sample, exporter export.Exporter, opts Options) *Presenter {
	if exporter == nil {
		exporter = export.NopExporter{}
	}
	if opts.Clock == nil {
		opts.Clock = schedule.SystemClock{}
	}
	if opts.MaxExports <= 0 {
		opts.MaxExports = DefaultMaxExports
	}
	p := &Presenter{
		engine:   engine,
		charts:   charts,
		samples:  append([]metrics.Sample(nil), samples...),
		exporter: exporter,
		opts:     opts,
		layout:   export.Layout{ChatFocused: true},
	}
	p.exports.SetLimit(opts.MaxExports)
	return p
}

// Engine returns the conversation engine.
func (p *Presenter) Engine() *conversation.Engine { return p.engine }

// Charts returns the chart list.
func (p *Presenter) Charts() []Chart { return p.charts }

// Snapshot aggregates the current state of every unit.
func (p *Presenter) Snapshot() export.DisplayState {
	p.mu.Lock()
	layout := p.layout
	p.mu.Unlock()

	ds := export.DisplayState{
		Conversation: p.engine.State(),
		Charts:       make([]export.ChartState, len(p.charts)),
		Metrics:      make([]export.MetricCard, len(p.samples)),
		Layout:       layout,
		TakenAt:      p.opts.Clock.Now(),
	}
	for i, c := range p.charts {
		snap := c.Store.Snapshot()
		ds.Charts[i] = export.ChartState{
			Title:    c.Title,
			Subtitle: c.Subtitle,
			Window:   snap.Window,
			Visible:  c.Store.Visible(),
			Revision: snap.Revision,
		}
	}
	for i, s := range p.samples {
		d := p.opts.Comparator.Compute(s)
		ds.Metrics[i] = export.MetricCard{Sample: s, Derived: d, Label: d.Label()}
	}
	return ds
}

// Layout returns the current layout state.
func (p *Presenter) Layout() export.Layout {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.layout
}

// FocusNext toggles keyboard focus between chat and charts.
func (p *Presenter) FocusNext() export.Layout {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.layout.ChatFocused = !p.layout.ChatFocused
	return p.layout
}

// CycleChart makes the next chart active, wrapping around.
func (p *Presenter) CycleChart() export.Layout {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.charts) > 0 {
		p.layout.ActiveChart = (p.layout.ActiveChart + 1) % len(p.charts)
	}
	return p.layout
}

// ActiveChart returns the chart that window keys apply to.
func (p *Presenter) ActiveChart() (Chart, bool) {
	p.mu.Lock()
	idx := p.layout.ActiveChart
	p.mu.Unlock()
	if idx < 0 || idx >= len(p.charts) {
		return Chart{}, false
	}
	return p.charts[idx], true
}

// RequestExport snapshots the display and hands it to the exporter on a
// background goroutine. It never waits for the result. It reports false
// when the presenter is closed or too many exports are already running.
func (p *Presenter) RequestExport(ctx context.Context) bool {
	state := p.Snapshot()

	// closed and TryGo share the lock so Close never misses a started export.
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return false
	}

	started := p.exports.TryGo(func() error {
		ectx := ctx
		if p.opts.ExportTimeout > 0 {
			var cancel context.CancelFunc
			ectx, cancel = context.WithTimeout(ctx, p.opts.ExportTimeout)
			defer cancel()
		}

		art, err := p.exporter.Export(ectx, state)
		if err != nil {
			logging.ExportError("export failed: %v", err)
		} else {
			logging.Presenter("export %s complete", art.ID)
		}
		if p.opts.OnExported != nil {
			p.opts.OnExported(art, err)
		}
		return err
	})
	if !started {
		logging.Presenter("export request dropped: %d already running", p.opts.MaxExports)
	}
	return started
}

// Close rejects further exports and waits for those in flight. It returns
// the first export error, if any. Safe to call multiple times.
func (p *Presenter) Close() error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	return p.exports.Wait()
}
