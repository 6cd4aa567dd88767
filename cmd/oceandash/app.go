package main

import (
	"math/rand"
	"time"

	"oceandash/internal/config"
	"oceandash/internal/conversation"
	"oceandash/internal/export"
	"oceandash/internal/logging"
	"oceandash/internal/metrics"
	"oceandash/internal/presenter"
	"oceandash/internal/schedule"
	"oceandash/internal/voice"
)

// app is the assembled core: engine, charts, samples and presenter.
type app struct {
	cfg       *config.Config
	engine    *conversation.Engine
	presenter *presenter.Presenter
	exporter  export.Exporter
}

// buildApp wires every unit from cfg. sched decides where reply callbacks
// run: the dashboard passes a Posted scheduler, headless commands a Virtual.
func buildApp(cfg *config.Config, sched schedule.Scheduler, clock schedule.Clock, onExported func(export.Artifact, error)) (*app, error) {
	corpus, err := conversation.LoadCorpus(cfg.Conversation.CorpusPath)
	if err == nil {
		err = corpus.Validate()
	}
	if err != nil {
		logging.BootError("corpus %q rejected: %v", cfg.Conversation.CorpusPath, err)
		return nil, err
	}
	samples, err := metrics.LoadSamples(cfg.Metrics.SamplesPath)
	if err != nil {
		logging.BootError("samples %q rejected: %v", cfg.Metrics.SamplesPath, err)
		return nil, err
	}

	s := cfg.Seed
	if s == 0 {
		s = time.Now().UnixNano()
	}

	var capture voice.Capture = voice.Disabled{}
	if len(cfg.Voice.Transcripts) > 0 {
		capture = voice.NewScripted(cfg.Voice.Transcripts...)
	}

	prob := cfg.Conversation.SuggestionProbability
	engine := conversation.NewEngine(conversation.Options{
		Scheduler:             sched,
		Clock:                 clock,
		Rand:                  rand.New(rand.NewSource(s)),
		Voice:                 capture,
		Corpus:                &corpus,
		Latency:               cfg.GetLatency(),
		SuggestionProbability: &prob,
	})

	charts := presenter.DefaultCharts(cfg.SeriesParams(), rand.New(rand.NewSource(s+1)))
	exporter := export.NewFileExporter(cfg.ExportDir(resolveWorkspace()), cfg.Export.Formats...)

	p := presenter.New(engine, charts, samples, exporter, presenter.Options{
		Comparator:    metrics.Comparator{Threshold: cfg.Metrics.Threshold},
		Clock:         clock,
		OnExported:    onExported,
		ExportTimeout: cfg.GetExportTimeout(),
	})

	return &app{cfg: cfg, engine: engine, presenter: p, exporter: exporter}, nil
}

// Close stops the engine and waits for exports.
func (a *app) Close() error {
	a.engine.Close()
	return a.presenter.Close()
}
