package conversation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCorpus(t *testing.T) {
	c := DefaultCorpus()
	assert.Len(t, c.Responses, 4)
	assert.Len(t, c.FollowUps, 3)
	assert.Len(t, c.StarterSuggestions, 3)
	require.Len(t, c.QuickActions, 3)
	assert.Equal(t, "Analyze trend patterns", c.QuickActions[0].Label)
	assert.Equal(t, "Show me the key trend patterns in the data", c.QuickActions[0].Prompt)
	assert.NotEmpty(t, c.Greeting)
}

func TestParseCorpus_Validation(t *testing.T) {
	_, err := ParseCorpus([]byte("greeting: hi\nresponses: []\n"))
	assert.ErrorContains(t, err, "no responses")

	_, err = ParseCorpus([]byte("responses: ['ok', '  ']\n"))
	assert.ErrorContains(t, err, "blank")

	_, err = ParseCorpus([]byte("responses: [ok]\nquick_actions:\n  - label: x\n"))
	assert.ErrorContains(t, err, "no prompt")

	_, err = ParseCorpus([]byte("responses: [unterminated"))
	assert.ErrorContains(t, err, "failed to parse corpus")
}

func TestLoadCorpus(t *testing.T) {
	c, err := LoadCorpus("")
	require.NoError(t, err)
	assert.Equal(t, DefaultCorpus(), c)

	path := filepath.Join(t.TempDir(), "corpus.yaml")
	require.NoError(t, os.WriteFile(path, []byte("responses: [only answer]\nfollow_ups: [more]\n"), 0644))
	c, err = LoadCorpus(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"only answer"}, c.Responses)

	_, err = LoadCorpus(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
