package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"oceandash/cmd/oceandash/dashboard"
	"oceandash/cmd/oceandash/ui"
	"oceandash/internal/config"
	"oceandash/internal/export"
	"oceandash/internal/logging"
	"oceandash/internal/schedule"
	"oceandash/internal/series"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func runDashboard(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	relay := &dashboard.Relay{}
	sched := schedule.NewPosted(relay.Send)
	a, err := buildApp(cfg, sched, schedule.SystemClock{}, func(art export.Artifact, err error) {
		relay.Send(dashboard.ExportedMsg{Artifact: art, Err: err})
	})
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var stopWatcher func()
	path := resolveConfigPath()
	if _, err := os.Stat(path); err == nil {
		w, err := config.NewWatcher(path, config.DefaultReloadDebounce, func(c *config.Config, err error) {
			relay.Send(dashboard.ConfigReloadedMsg{Config: c, Err: err})
		})
		if err != nil {
			logging.ConfigWarn("config hot reload disabled: %v", err)
		} else if err := w.Start(ctx); err != nil {
			logging.ConfigWarn("config hot reload disabled: %v", err)
			w.Stop()
		} else {
			stopWatcher = w.Stop
		}
	}

	m := dashboard.New(dashboard.Options{
		Presenter:  a.presenter,
		Scheduler:  sched,
		UI:         cfg.UI,
		OnShutdown: stopWatcher,
	})
	if err := dashboard.Run(ctx, m, relay); err != nil {
		logging.BootError("dashboard exited: %v", err)
		return err
	}
	return nil
}

// headless builds the app on a virtual clock so one-shot commands complete
// replies instantly and deterministically.
func headless(onExported func(export.Artifact, error)) (*app, *schedule.Virtual, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	v := schedule.NewVirtual(schedule.SystemClock{}.Now())
	a, err := buildApp(cfg, v, v, onExported)
	if err != nil {
		return nil, nil, err
	}
	return a, v, nil
}

func runCompare(cmd *cobra.Command, args []string) error {
	a, _, err := headless(nil)
	if err != nil {
		return err
	}
	defer a.Close()

	table := ui.NewSimpleTable("Metric comparison", []string{"Metric", "Current", "Previous", "Change", "Class"}).AlignRight(1, 2, 3)
	for _, m := range a.presenter.Snapshot().Metrics {
		change := "n/a"
		if v, ok := m.Derived.Change.Value(); ok {
			change = fmt.Sprintf("%+.2f%%", v)
		}
		table.AddRow(
			m.Sample.Title,
			fmt.Sprintf("%g %s", m.Sample.Current, m.Sample.Unit),
			fmt.Sprintf("%g %s", m.Sample.Previous, m.Sample.Unit),
			change,
			string(m.Label),
		)
	}
	fmt.Fprint(cmd.OutOrStdout(), table.View(ui.NewStyles(ui.ThemeFor(a.cfg.UI.DarkMode()))))
	return nil
}

func runSeries(cmd *cobra.Command, args []string) error {
	a, _, err := headless(nil)
	if err != nil {
		return err
	}
	defer a.Close()

	charts := a.presenter.Charts()
	if seriesChart < 0 || seriesChart >= len(charts) {
		return fmt.Errorf("chart index %d out of range (0-%d)", seriesChart, len(charts)-1)
	}
	chart := charts[seriesChart]
	w := chart.Store.SetWindow(seriesFrom, seriesTo)
	cliLogger().Debug("series window", zap.Int("lower", w.Lower), zap.Int("upper", w.Upper))

	out := cmd.OutOrStdout()
	styles := ui.NewStyles(ui.ThemeFor(a.cfg.UI.DarkMode()))
	visible := chart.Store.Visible()
	if len(visible) == 0 {
		fmt.Fprintln(out, "No data.")
		return nil
	}

	table := ui.NewSimpleTable(fmt.Sprintf("%s (Start: %d  End: %d)", chart.Title, w.Lower, w.Upper),
		[]string{"t", "Actual", "Predicted", "Lower", "Upper"}).AlignRight(0, 1, 2, 3, 4)
	for _, p := range visible {
		table.AddRow(fmt.Sprint(p.T), f1(p.Actual), f1(p.Predicted), f1(p.LowerBand), f1(p.UpperBand))
	}
	fmt.Fprint(out, table.View(styles))
	fmt.Fprintln(out, ui.RenderChart(chartState(chart.Title, chart.Subtitle, w, visible), styles, 80, a.cfg.UI.ChartHeight))
	return nil
}

func chartState(title, subtitle string, w series.Window, visible []series.Point) export.ChartState {
	return export.ChartState{Title: title, Subtitle: subtitle, Window: w, Visible: visible}
}

func f1(v float64) string { return fmt.Sprintf("%.1f", v) }

func runExport(cmd *cobra.Command, args []string) error {
	type result struct {
		art export.Artifact
		err error
	}
	done := make(chan result, 1)
	a, _, err := headless(func(art export.Artifact, err error) {
		done <- result{art, err}
	})
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if !a.presenter.RequestExport(ctx) {
		a.Close()
		return errors.New("export could not be started")
	}
	a.Close()
	res := <-done
	if res.err != nil {
		return fmt.Errorf("export failed: %w", res.err)
	}

	cliLogger().Info("export written", zap.String("id", res.art.ID), zap.Strings("paths", res.art.Paths))
	for _, p := range res.art.Paths {
		fmt.Fprintln(cmd.OutOrStdout(), p)
	}
	return nil
}

func runAsk(cmd *cobra.Command, args []string) error {
	a, v, err := headless(nil)
	if err != nil {
		return err
	}
	defer a.Close()

	question := strings.Join(args, " ")
	if !a.engine.Submit(question) {
		return errors.New("question is empty")
	}
	v.Advance(a.cfg.GetLatency())

	out := cmd.OutOrStdout()
	for _, m := range a.engine.State().History {
		who := "Assistant"
		if m.IsUser() {
			who = "You"
		}
		fmt.Fprintf(out, "%s: %s\n", who, m.Content)
		if m.HasSuggestions() {
			fmt.Fprintf(out, "  suggestions: %s\n", strings.Join(m.Suggestions, " | "))
		}
	}
	return nil
}
