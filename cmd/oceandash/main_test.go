package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"oceandash/internal/conversation"
	"oceandash/internal/logging"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// setupCLI points the global flags at a fresh workspace and returns a
// command whose output is captured.
func setupCLI(t *testing.T) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	t.Setenv("OCEANDASH_SEED", "")
	t.Setenv("OCEANDASH_EXPORT_DIR", "")
	t.Setenv("OCEANDASH_LATENCY", "")
	t.Setenv("OCEANDASH_DARK_MODE", "")

	workspace = t.TempDir()
	configPath = ""
	seed = 42
	verbose = false
	appConfig = nil
	logger = zap.NewNop()
	seriesFrom, seriesTo, seriesChart = 0, 49, 0
	t.Cleanup(func() {
		workspace = ""
		appConfig = nil
		logger = nil
	})

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	return cmd, &buf
}

func TestRootCommandTree(t *testing.T) {
	names := make([]string, 0)
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"compare", "series", "export", "ask"} {
		assert.Contains(t, names, want)
	}
	for _, flag := range []string{"verbose", "workspace", "config", "seed"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(flag), flag)
	}
}

func TestLoadConfig_SeedFlagWins(t *testing.T) {
	setupCLI(t)
	t.Setenv("OCEANDASH_SEED", "7")

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, int64(42), cfg.Seed)

	again, err := loadConfig()
	require.NoError(t, err)
	assert.Same(t, cfg, again)
}

func TestLoadConfig_InvalidFile(t *testing.T) {
	setupCLI(t)
	configPath = filepath.Join(workspace, "bad.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("metrics:\n  threshold: -3\n"), 0644))

	_, err := loadConfig()
	assert.Error(t, err)
}

func TestRunCompare(t *testing.T) {
	cmd, buf := setupCLI(t)
	require.NoError(t, runCompare(cmd, nil))

	out := buf.String()
	for _, title := range []string{"Ocean Temperature", "Efficiency Rate", "Activity Index", "Resource Usage"} {
		assert.Contains(t, out, title)
	}
	assert.Contains(t, out, "Metric comparison")
	assert.Contains(t, out, "%")
}

func TestRunSeries_CorrectsSwappedBounds(t *testing.T) {
	cmd, buf := setupCLI(t)
	seriesFrom, seriesTo = 12, 5

	require.NoError(t, runSeries(cmd, nil))
	out := buf.String()
	assert.Contains(t, out, "Start: 5  End: 12")
	assert.Contains(t, out, "Ocean Temperature Trends")
}

func TestRunSeries_ChartOutOfRange(t *testing.T) {
	cmd, _ := setupCLI(t)
	seriesChart = 9
	assert.Error(t, runSeries(cmd, nil))
}

func TestRunSeries_SameSeedSameOutput(t *testing.T) {
	cmd, buf := setupCLI(t)
	require.NoError(t, runSeries(cmd, nil))
	first := buf.String()

	cmd, buf = setupCLI(t)
	require.NoError(t, runSeries(cmd, nil))
	assert.Equal(t, first, buf.String())
}

func TestRunAsk(t *testing.T) {
	cmd, buf := setupCLI(t)
	require.NoError(t, runAsk(cmd, []string{"How", "are", "currents?"}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	out := buf.String()
	assert.Contains(t, lines[0], "Assistant: "+conversation.DefaultCorpus().Greeting)
	assert.Contains(t, out, "You: How are currents?")

	var reply string
	for _, l := range lines {
		if strings.HasPrefix(l, "Assistant: ") {
			reply = strings.TrimPrefix(l, "Assistant: ")
		}
	}
	assert.Contains(t, conversation.DefaultCorpus().Responses, reply)
}

func TestRunAsk_Blank(t *testing.T) {
	cmd, _ := setupCLI(t)
	assert.Error(t, runAsk(cmd, []string{"   "}))
}

func TestRunExport(t *testing.T) {
	cmd, buf := setupCLI(t)
	require.NoError(t, runExport(cmd, nil))

	paths := strings.Fields(buf.String())
	require.Len(t, paths, 2)
	for _, p := range paths {
		assert.True(t, strings.HasPrefix(p, filepath.Join(workspace, ".oceandash", "exports")), p)
		_, err := os.Stat(p)
		assert.NoError(t, err)
	}
	assert.Equal(t, ".json", filepath.Ext(paths[0]))
	assert.Equal(t, ".md", filepath.Ext(paths[1]))
}

func TestBuildApp_BadCorpusLogsBootError(t *testing.T) {
	cmd, _ := setupCLI(t)
	require.NoError(t, logging.Initialize(workspace, logging.Config{DebugMode: true}))
	t.Cleanup(func() {
		logging.CloseAll()
		logging.Configure(logging.Config{})
	})

	cfg, err := loadConfig()
	require.NoError(t, err)
	cfg.Conversation.CorpusPath = filepath.Join(workspace, "missing.yaml")

	assert.Error(t, runAsk(cmd, []string{"hello"}))
	logging.CloseAll()

	matches, err := filepath.Glob(filepath.Join(workspace, ".oceandash", "logs", "*_boot.log"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	content, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Contains(t, string(content), "missing.yaml")
	assert.Contains(t, string(content), "rejected")
}
