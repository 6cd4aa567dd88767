// Package metrics classifies the change between paired current/previous
// metric samples.
package metrics

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"oceandash/internal/logging"
)

// DefaultThreshold is the significance cutoff in percentage points.
const DefaultThreshold = 5.0

// Sample is one metric card's input.
type Sample struct {
	Title       string  `yaml:"title" json:"title"`
	Description string  `yaml:"description" json:"description"`
	Unit        string  `yaml:"unit" json:"unit"`
	Current     float64 `yaml:"current" json:"current"`
	Previous    float64 `yaml:"previous" json:"previous"`
}

// Direction is the sign of a change.
type Direction int

const (
	Flat Direction = iota
	Increase
	Decrease
)

// String returns the display name for the direction.
func (d Direction) String() string {
	switch d {
	case Increase:
		return "increase"
	case Decrease:
		return "decrease"
	default:
		return "flat"
	}
}

// MarshalText encodes the direction by name.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// PercentChange is either a finite percentage or the Undefined sentinel.
// It never holds NaN or an infinity.
type PercentChange struct {
	value   float64
	defined bool
}

// Undefined marks a change that has no meaningful value, such as one
// against a zero baseline.
var Undefined = PercentChange{}

// Percent wraps v. Non-finite values become Undefined.
func Percent(v float64) PercentChange {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Undefined
	}
	return PercentChange{value: v, defined: true}
}

// Value returns the percentage and whether it is defined.
func (p PercentChange) Value() (float64, bool) {
	return p.value, p.defined
}

// Defined reports whether p carries a number.
func (p PercentChange) Defined() bool { return p.defined }

// Abs returns |p|, or 0 for Undefined.
func (p PercentChange) Abs() float64 {
	if !p.defined {
		return 0
	}
	return math.Abs(p.value)
}

// String formats p to two decimals, or "undefined".
func (p PercentChange) String() string {
	if !p.defined {
		return "undefined"
	}
	return strconv.FormatFloat(p.value, 'f', 2, 64)
}

// MarshalJSON encodes a defined value as a number and Undefined as the
// string "undefined".
func (p PercentChange) MarshalJSON() ([]byte, error) {
	if !p.defined {
		return json.Marshal("undefined")
	}
	return json.Marshal(p.value)
}

// Derived is the classification of a Sample.
type Derived struct {
	Change      PercentChange `json:"percent_change"`
	Direction   Direction     `json:"direction"`
	Significant bool          `json:"significant"`
}

// Label is the display class of a Derived value.
type Label string

const (
	LabelIncreaseSignificant Label = "increase-significant"
	LabelIncreaseMinor       Label = "increase-minor"
	LabelDecreaseSignificant Label = "decrease-significant"
	LabelDecreaseMinor       Label = "decrease-minor"
	LabelFlat                Label = "flat"
)

// Label derives the display class from direction and significance.
func (d Derived) Label() Label {
	switch {
	case d.Direction == Increase && d.Significant:
		return LabelIncreaseSignificant
	case d.Direction == Increase:
		return LabelIncreaseMinor
	case d.Direction == Decrease && d.Significant:
		return LabelDecreaseSignificant
	case d.Direction == Decrease:
		return LabelDecreaseMinor
	default:
		return LabelFlat
	}
}

// Comparator computes Derived values with a configurable threshold.
type Comparator struct {
	// Threshold in percentage points; a change is significant when its
	// magnitude is strictly greater. Zero or negative selects DefaultThreshold.
	Threshold float64
}

// Compute classifies s. A zero (or non-finite) baseline yields Undefined,
// Flat, not significant.
func (c Comparator) Compute(s Sample) Derived {
	threshold := c.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	if s.Previous == 0 || !finite(s.Previous) || !finite(s.Current) {
		logging.MetricsDebug("%q has no usable baseline (current=%v previous=%v)", s.Title, s.Current, s.Previous)
		return Derived{Change: Undefined, Direction: Flat}
	}

	change := Percent((s.Current - s.Previous) / s.Previous * 100)
	v, ok := change.Value()
	if !ok {
		logging.MetricsDebug("%q change overflowed (current=%v previous=%v)", s.Title, s.Current, s.Previous)
		return Derived{Change: Undefined, Direction: Flat}
	}

	d := Derived{Change: change, Significant: math.Abs(v) > threshold}
	switch {
	case v > 0:
		d.Direction = Increase
	case v < 0:
		d.Direction = Decrease
	default:
		d.Direction = Flat
	}
	return d
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ComputeDelta classifies s with the default threshold.
func ComputeDelta(s Sample) Derived {
	return Comparator{Threshold: DefaultThreshold}.Compute(s)
}

// FillRatio maps the change magnitude onto a progress bar fill in [0, 1].
// The magnitude is doubled for emphasis and capped at 100%. Display only.
func FillRatio(d Derived) float64 {
	return math.Min(100, d.Change.Abs()*2) / 100
}

// Explain returns the card's one-line explanation of d.
func Explain(d Derived) string {
	if !d.Change.Defined() {
		return "No baseline for comparison"
	}
	var text string
	switch d.Direction {
	case Increase:
		text = fmt.Sprintf("Increase of %.1f%% compared to previous period", d.Change.Abs())
	case Decrease:
		text = fmt.Sprintf("Decrease of %.1f%% compared to previous period", d.Change.Abs())
	default:
		text = "No change compared to previous period"
	}
	if d.Significant {
		text += " - Significant change detected"
	}
	return text
}
