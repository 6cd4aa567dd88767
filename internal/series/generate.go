// Package series generates the synthetic trend series shown by the charts
// and owns the user-selected visible window over it.
package series

import (
	"math"
	"math/rand"
)

// Point is one sample of a generated series.
// LowerBand <= Predicted <= UpperBand and every value is >= 0.
type Point struct {
	T         int     `json:"t" yaml:"t"`
	Actual    float64 `json:"actual" yaml:"actual"`
	Predicted float64 `json:"predicted" yaml:"predicted"`
	LowerBand float64 `json:"lower_band" yaml:"lower_band"`
	UpperBand float64 `json:"upper_band" yaml:"upper_band"`
}

// Config controls the trend-plus-noise model.
type Config struct {
	Points         int     `yaml:"points" json:"points"`
	Base           float64 `yaml:"base" json:"base"`
	Slope          float64 `yaml:"slope" json:"slope"`
	ActualNoise    float64 `yaml:"actual_noise" json:"actual_noise"`       // peak-to-peak noise on the actual value
	PredictedNoise float64 `yaml:"predicted_noise" json:"predicted_noise"` // peak-to-peak noise on the prediction
	Margin         float64 `yaml:"margin" json:"margin"`                   // half-width of the confidence band
}

// DefaultConfig returns the model used by the dashboard charts.
func DefaultConfig() Config {
	return Config{
		Points:         50,
		Base:           100,
		Slope:          2,
		ActualNoise:    20,
		PredictedNoise: 10,
		Margin:         15,
	}
}

// Generate builds cfg.Points samples of base + i*slope with independent
// uniform noise on the actual and predicted values, floored at zero. The
// band is placed around the floored prediction so it always contains it.
// A non-positive point count yields an empty series.
func Generate(cfg Config, rng *rand.Rand) []Point {
	if cfg.Points <= 0 {
		return nil
	}
	points := make([]Point, cfg.Points)
	for i := range points {
		trend := cfg.Base + float64(i)*cfg.Slope
		noiseA := (rng.Float64() - 0.5) * cfg.ActualNoise
		noiseB := (rng.Float64() - 0.5) * cfg.PredictedNoise

		predicted := math.Max(0, trend+noiseB)
		points[i] = Point{
			T:         i,
			Actual:    math.Max(0, trend+noiseA),
			Predicted: predicted,
			LowerBand: math.Max(0, predicted-cfg.Margin),
			UpperBand: math.Max(0, predicted+cfg.Margin),
		}
	}
	return points
}
