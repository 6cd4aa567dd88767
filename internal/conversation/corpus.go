package conversation

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed corpus.yaml
var defaultCorpusYAML []byte

// QuickAction is an always-visible prompt card. Selecting it submits Prompt.
type QuickAction struct {
	Label  string `yaml:"label" json:"label"`
	Prompt string `yaml:"prompt" json:"prompt"`
}

// Corpus is the static text the simulated assistant draws from.
type Corpus struct {
	Greeting           string        `yaml:"greeting"`
	StarterSuggestions []string      `yaml:"starter_suggestions"`
	Responses          []string      `yaml:"responses"`
	FollowUps          []string      `yaml:"follow_ups"`
	QuickActions       []QuickAction `yaml:"quick_actions"`
}

// DefaultCorpus returns the built-in corpus.
func DefaultCorpus() Corpus {
	c, err := ParseCorpus(defaultCorpusYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded corpus is invalid: %v", err))
	}
	return c
}

// ParseCorpus decodes and validates a YAML corpus.
func ParseCorpus(data []byte) (Corpus, error) {
	var c Corpus
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Corpus{}, fmt.Errorf("failed to parse corpus: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Corpus{}, err
	}
	return c, nil
}

// LoadCorpus reads a corpus file. An empty path yields the built-in corpus.
func LoadCorpus(path string) (Corpus, error) {
	if path == "" {
		return DefaultCorpus(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Corpus{}, fmt.Errorf("failed to read corpus: %w", err)
	}
	return ParseCorpus(data)
}

// Validate checks that the assistant has something to say.
func (c Corpus) Validate() error {
	if len(c.Responses) == 0 {
		return errors.New("corpus has no responses")
	}
	for i, r := range c.Responses {
		if strings.TrimSpace(r) == "" {
			return fmt.Errorf("corpus response %d is blank", i)
		}
	}
	for i, qa := range c.QuickActions {
		if strings.TrimSpace(qa.Prompt) == "" {
			return fmt.Errorf("quick action %d (%q) has no prompt", i, qa.Label)
		}
	}
	return nil
}
