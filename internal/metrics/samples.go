package metrics

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed samples.yaml
var defaultSamplesYAML []byte

// DefaultSamples returns the built-in metric cards.
func DefaultSamples() []Sample {
	samples, err := ParseSamples(defaultSamplesYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded samples are invalid: %v", err))
	}
	return samples
}

// ParseSamples decodes a YAML list of samples.
func ParseSamples(data []byte) ([]Sample, error) {
	var samples []Sample
	if err := yaml.Unmarshal(data, &samples); err != nil {
		return nil, fmt.Errorf("failed to parse samples: %w", err)
	}
	return samples, nil
}

// LoadSamples reads a samples file. An empty path yields DefaultSamples.
func LoadSamples(path string) ([]Sample, error) {
	if path == "" {
		return DefaultSamples(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read samples: %w", err)
	}
	return ParseSamples(data)
}
