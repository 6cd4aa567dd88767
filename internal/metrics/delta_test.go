package metrics

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"oceandash/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeDelta(t *testing.T) {
	tests := []struct {
		name        string
		sample      Sample
		want        float64
		direction   Direction
		significant bool
		label       Label
	}{
		{
			name:        "ocean temperature rises significantly",
			sample:      Sample{Current: 24.7, Previous: 22.4},
			want:        10.27,
			direction:   Increase,
			significant: true,
			label:       LabelIncreaseSignificant,
		},
		{
			name:        "efficiency falls significantly",
			sample:      Sample{Current: 87.3, Previous: 92.1},
			want:        -5.21,
			direction:   Decrease,
			significant: true,
			label:       LabelDecreaseSignificant,
		},
		{
			name:        "resource usage falls a little",
			sample:      Sample{Current: 68.2, Previous: 71.8},
			want:        -5.01,
			direction:   Decrease,
			significant: true,
			label:       LabelDecreaseSignificant,
		},
		{
			name:      "small increase",
			sample:    Sample{Current: 103, Previous: 100},
			want:      3,
			direction: Increase,
			label:     LabelIncreaseMinor,
		},
		{
			name:      "small decrease",
			sample:    Sample{Current: 98, Previous: 100},
			want:      -2,
			direction: Decrease,
			label:     LabelDecreaseMinor,
		},
		{
			name:      "exactly at threshold is not significant",
			sample:    Sample{Current: 105, Previous: 100},
			want:      5,
			direction: Increase,
			label:     LabelIncreaseMinor,
		},
		{
			name:      "no change",
			sample:    Sample{Current: 42, Previous: 42},
			want:      0,
			direction: Flat,
			label:     LabelFlat,
		},
		{
			name:        "negative baseline",
			sample:      Sample{Current: -50, Previous: -100},
			want:        -50,
			direction:   Decrease,
			significant: true,
			label:       LabelDecreaseSignificant,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := ComputeDelta(tt.sample)
			v, ok := d.Change.Value()
			require.True(t, ok)
			assert.InDelta(t, tt.want, v, 0.01)
			assert.Equal(t, tt.direction, d.Direction)
			assert.Equal(t, tt.significant, d.Significant)
			assert.Equal(t, tt.label, d.Label())
		})
	}
}

func TestComputeDelta_ZeroBaseline(t *testing.T) {
	for _, s := range []Sample{
		{Current: 10, Previous: 0},
		{Current: 0, Previous: 0},
		{Current: math.NaN(), Previous: 3},
		{Current: 3, Previous: math.Inf(1)},
	} {
		d := ComputeDelta(s)
		assert.False(t, d.Change.Defined(), "%+v", s)
		assert.Equal(t, Undefined, d.Change)
		assert.Equal(t, Flat, d.Direction)
		assert.False(t, d.Significant)
		assert.Equal(t, LabelFlat, d.Label())
		assert.Zero(t, FillRatio(d))
		assert.Equal(t, "No baseline for comparison", Explain(d))
	}
}

func TestComputeDelta_IsPure(t *testing.T) {
	s := Sample{Title: "Activity Index", Current: 156, Previous: 134}
	first := ComputeDelta(s)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, ComputeDelta(s))
	}
	assert.Equal(t, Sample{Title: "Activity Index", Current: 156, Previous: 134}, s)
}

func TestComparator_Threshold(t *testing.T) {
	s := Sample{Current: 103, Previous: 100}

	assert.True(t, Comparator{Threshold: 2}.Compute(s).Significant)
	assert.False(t, Comparator{Threshold: 3}.Compute(s).Significant, "threshold is strict")
	assert.Equal(t, ComputeDelta(s), Comparator{}.Compute(s), "zero threshold falls back to default")
}

func TestFillRatio(t *testing.T) {
	tests := []struct {
		change float64
		want   float64
	}{
		{0, 0},
		{10.27, 0.2054},
		{-5.21, 0.1042},
		{50, 1},
		{-80, 1},
	}
	for _, tt := range tests {
		d := Derived{Change: Percent(tt.change)}
		assert.InDelta(t, tt.want, FillRatio(d), 1e-9, "change %v", tt.change)
	}
}

func TestExplain(t *testing.T) {
	assert.Equal(t,
		"Increase of 10.3% compared to previous period - Significant change detected",
		Explain(ComputeDelta(Sample{Current: 24.7, Previous: 22.4})))
	assert.Equal(t,
		"Decrease of 2.0% compared to previous period",
		Explain(ComputeDelta(Sample{Current: 98, Previous: 100})))
	assert.Equal(t,
		"No change compared to previous period",
		Explain(ComputeDelta(Sample{Current: 1, Previous: 1})))
}

func TestPercent_RejectsNonFinite(t *testing.T) {
	assert.Equal(t, Undefined, Percent(math.NaN()))
	assert.Equal(t, Undefined, Percent(math.Inf(-1)))
	assert.True(t, Percent(0).Defined())
	assert.Equal(t, "undefined", Undefined.String())
	assert.Equal(t, "10.27", Percent(10.2678).String())
}

func TestDerived_JSON(t *testing.T) {
	data, err := json.Marshal(ComputeDelta(Sample{Current: 150, Previous: 100}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"percent_change":50,"direction":"increase","significant":true}`, string(data))

	data, err = json.Marshal(ComputeDelta(Sample{Current: 1, Previous: 0}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"percent_change":"undefined","direction":"flat","significant":false}`, string(data))
}

func TestDefaultSamples(t *testing.T) {
	samples := DefaultSamples()
	require.Len(t, samples, 4)

	titles := make([]string, len(samples))
	for i, s := range samples {
		titles[i] = s.Title
		assert.NotEmpty(t, s.Unit)
	}
	assert.Equal(t, []string{"Ocean Temperature", "Efficiency Rate", "Activity Index", "Resource Usage"}, titles)
	assert.Equal(t, 24.7, samples[0].Current)
	assert.Equal(t, 22.4, samples[0].Previous)
}

func TestLoadSamples(t *testing.T) {
	samples, err := LoadSamples("")
	require.NoError(t, err)
	assert.Len(t, samples, 4)

	_, err = LoadSamples("/nonexistent/samples.yaml")
	assert.Error(t, err)

	_, err = ParseSamples([]byte("title: [unterminated"))
	assert.Error(t, err)
}

func TestComparator_LogsMissingBaseline(t *testing.T) {
	ws := t.TempDir()
	require.NoError(t, logging.Initialize(ws, logging.Config{DebugMode: true, Level: "debug"}))
	t.Cleanup(func() {
		logging.CloseAll()
		logging.Configure(logging.Config{})
	})

	ComputeDelta(Sample{Title: "Dormant", Current: 4, Previous: 0})
	ComputeDelta(Sample{Title: "Busy", Current: 12, Previous: 10})
	logging.CloseAll()

	matches, err := filepath.Glob(filepath.Join(ws, ".oceandash", "logs", "*_metrics.log"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	content, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Contains(t, string(content), `"Dormant" has no usable baseline`)
	assert.NotContains(t, string(content), "Busy")
}
