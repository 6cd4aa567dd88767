package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"oceandash/internal/series"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 1500*time.Millisecond, cfg.GetLatency())
	assert.Equal(t, 0.5, cfg.Conversation.SuggestionProbability)
	assert.Equal(t, 5.0, cfg.Metrics.Threshold)
	assert.True(t, cfg.UI.DarkMode())
	if diff := cmp.Diff(series.DefaultConfig(), cfg.SeriesParams()); diff != "" {
		t.Errorf("series params mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("conversation:\n  latency: 250ms\nui:\n  theme: light\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, cfg.GetLatency())
	assert.False(t, cfg.UI.DarkMode())
	assert.Equal(t, 0.5, cfg.Conversation.SuggestionProbability)
	assert.Equal(t, 50, cfg.Series.Points)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("conversation: [\n"), 0644))
	_, err := Load(path)
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Seed = 99
	cfg.Voice.Transcripts = []string{"Show trends"}
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	if diff := cmp.Diff(cfg, loaded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"bad latency", func(c *Config) { c.Conversation.Latency = "soon" }, "latency"},
		{"probability above one", func(c *Config) { c.Conversation.SuggestionProbability = 1.5 }, "probability"},
		{"negative points", func(c *Config) { c.Series.Points = -1 }, "points"},
		{"negative margin", func(c *Config) { c.Series.Margin = -1 }, "margin"},
		{"negative threshold", func(c *Config) { c.Metrics.Threshold = -1 }, "threshold"},
		{"unknown format", func(c *Config) { c.Export.Formats = []string{"pdf"} }, "export format"},
		{"unknown theme", func(c *Config) { c.UI.Theme = "neon" }, "theme"},
		{"split ratio", func(c *Config) { c.UI.SplitPaneRatio = 1 }, "split pane"},
		{"chart height", func(c *Config) { c.UI.ChartHeight = 2 }, "chart height"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.errMsg)
		})
	}
}

func TestGetters_Fallbacks(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, 1500*time.Millisecond, cfg.GetLatency())
	assert.Equal(t, 30*time.Second, cfg.GetExportTimeout())
}

func TestExportDir(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, filepath.Join("/ws", ".oceandash", "exports"), cfg.ExportDir("/ws"))
	cfg.Export.Dir = "/tmp/out"
	assert.Equal(t, "/tmp/out", cfg.ExportDir("/ws"))
}

func TestLoggingConfig(t *testing.T) {
	lc := LoggingConfig{Level: "debug", Format: "json", DebugMode: true, Categories: map[string]bool{"ui": false}}
	assert.True(t, lc.IsCategoryEnabled("series"))
	assert.False(t, lc.IsCategoryEnabled("ui"))

	out := lc.ToLogging()
	assert.True(t, out.DebugMode)
	assert.True(t, out.JSONFormat)
	assert.Equal(t, "debug", out.Level)

	lc.DebugMode = false
	assert.False(t, lc.IsCategoryEnabled("series"))
}
