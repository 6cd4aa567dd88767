package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"oceandash/internal/export"
	"oceandash/internal/series"

	"gopkg.in/yaml.v3"
)

// Config holds all oceandash configuration.
type Config struct {
	Name string `yaml:"name"`

	// Seed for every random source. Zero seeds from the clock.
	Seed int64 `yaml:"seed"`

	Conversation ConversationConfig `yaml:"conversation"`
	Series       SeriesConfig       `yaml:"series"`
	Metrics      MetricsConfig      `yaml:"metrics"`
	Export       ExportConfig       `yaml:"export"`
	Voice        VoiceConfig        `yaml:"voice"`
	UI           UIConfig           `yaml:"ui"`
	Logging      LoggingConfig      `yaml:"logging"`
}

// ConversationConfig configures the simulated assistant.
type ConversationConfig struct {
	Latency               string  `yaml:"latency"`                // reply delay, e.g. "1500ms"
	SuggestionProbability float64 `yaml:"suggestion_probability"` // chance a reply carries follow-ups
	CorpusPath            string  `yaml:"corpus_path"`            // empty = built-in corpus
}

// SeriesConfig configures synthetic chart data.
type SeriesConfig struct {
	Points         int     `yaml:"points"`
	Base           float64 `yaml:"base"`
	Slope          float64 `yaml:"slope"`
	ActualNoise    float64 `yaml:"actual_noise"`
	PredictedNoise float64 `yaml:"predicted_noise"`
	Margin         float64 `yaml:"margin"`
}

// MetricsConfig configures the comparison cards.
type MetricsConfig struct {
	Threshold   float64 `yaml:"threshold"`    // significance cutoff, percentage points
	SamplesPath string  `yaml:"samples_path"` // empty = built-in samples
}

// ExportConfig configures the file exporter.
type ExportConfig struct {
	Dir     string   `yaml:"dir"`
	Formats []string `yaml:"formats"`
	Timeout string   `yaml:"timeout"`
}

// VoiceConfig configures the scripted voice capture.
type VoiceConfig struct {
	// Transcripts are replayed in order, one per capture. Empty disables voice.
	Transcripts []string `yaml:"transcripts,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	sc := series.DefaultConfig()
	return &Config{
		Name: "oceandash",

		Conversation: ConversationConfig{
			Latency:               "1500ms",
			SuggestionProbability: 0.5,
		},

		Series: SeriesConfig{
			Points:         sc.Points,
			Base:           sc.Base,
			Slope:          sc.Slope,
			ActualNoise:    sc.ActualNoise,
			PredictedNoise: sc.PredictedNoise,
			Margin:         sc.Margin,
		},

		Metrics: MetricsConfig{
			Threshold: 5,
		},

		Export: ExportConfig{
			Dir:     filepath.Join(".oceandash", "exports"),
			Formats: []string{export.FormatJSON, export.FormatMarkdown},
			Timeout: "30s",
		},

		UI: *DefaultUIConfig(),

		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides apply in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides. Malformed
// values are ignored.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("OCEANDASH_SEED"); v != "" {
		if seed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = seed
		}
	}
	if dir := os.Getenv("OCEANDASH_EXPORT_DIR"); dir != "" {
		c.Export.Dir = dir
	}
	if v := os.Getenv("OCEANDASH_LATENCY"); v != "" {
		if _, err := time.ParseDuration(v); err == nil {
			c.Conversation.Latency = v
		}
	}
	if v := os.Getenv("OCEANDASH_DARK_MODE"); v != "" {
		if dark, err := strconv.ParseBool(v); err == nil {
			if dark {
				c.UI.Theme = ThemeDark
			} else {
				c.UI.Theme = ThemeLight
			}
		}
	}
}

// GetLatency returns the reply latency as a duration.
func (c *Config) GetLatency() time.Duration {
	d, err := time.ParseDuration(c.Conversation.Latency)
	if err != nil || d <= 0 {
		return 1500 * time.Millisecond
	}
	return d
}

// GetExportTimeout returns the export timeout as a duration.
func (c *Config) GetExportTimeout() time.Duration {
	d, err := time.ParseDuration(c.Export.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// SeriesParams converts the series section for series.Generate.
func (c *Config) SeriesParams() series.Config {
	return series.Config{
		Points:         c.Series.Points,
		Base:           c.Series.Base,
		Slope:          c.Series.Slope,
		ActualNoise:    c.Series.ActualNoise,
		PredictedNoise: c.Series.PredictedNoise,
		Margin:         c.Series.Margin,
	}
}

// ExportDir resolves the export directory against workspace.
func (c *Config) ExportDir(workspace string) string {
	if filepath.IsAbs(c.Export.Dir) {
		return c.Export.Dir
	}
	return filepath.Join(workspace, c.Export.Dir)
}

// ValidExportFormats lists the formats the file exporter understands.
var ValidExportFormats = []string{export.FormatJSON, export.FormatMarkdown}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if _, err := time.ParseDuration(c.Conversation.Latency); err != nil {
		return fmt.Errorf("invalid conversation latency %q: %w", c.Conversation.Latency, err)
	}
	if p := c.Conversation.SuggestionProbability; p < 0 || p > 1 {
		return fmt.Errorf("suggestion probability must be within [0, 1], got %v", p)
	}
	if c.Series.Points < 0 {
		return fmt.Errorf("series points must not be negative, got %d", c.Series.Points)
	}
	if c.Series.Margin < 0 {
		return fmt.Errorf("series margin must not be negative, got %v", c.Series.Margin)
	}
	if c.Metrics.Threshold < 0 {
		return fmt.Errorf("metrics threshold must not be negative, got %v", c.Metrics.Threshold)
	}
	for _, f := range c.Export.Formats {
		valid := false
		for _, v := range ValidExportFormats {
			if f == v {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("invalid export format: %s (valid: %v)", f, ValidExportFormats)
		}
	}
	return c.UI.Validate()
}
