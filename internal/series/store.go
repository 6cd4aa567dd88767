package series

import (
	"sync"

	"oceandash/internal/logging"
)

// Window is an inclusive index range into a series.
type Window struct {
	Lower int `json:"lower" yaml:"lower"`
	Upper int `json:"upper" yaml:"upper"`
}

// Len returns the number of points covered by the window.
func (w Window) Len() int { return w.Upper - w.Lower + 1 }

// ClampWindow maps any pair of indices onto a valid window over n points:
// both bounds are clamped into [0, n-1] and swapped if out of order. For an
// empty series it returns the zero Window.
func ClampWindow(lower, upper, n int) Window {
	if n <= 0 {
		return Window{}
	}
	lower = clamp(lower, 0, n-1)
	upper = clamp(upper, 0, n-1)
	if lower > upper {
		lower, upper = upper, lower
	}
	return Window{Lower: lower, Upper: upper}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Snapshot is the published state of a Store.
type Snapshot struct {
	Window   Window
	Revision uint64
}

// Store holds an immutable generated series and the mutable visible window.
type Store struct {
	mu       sync.Mutex
	points   []Point
	window   Window
	revision uint64
	subs     map[int]func(Snapshot)
	nextSub  int
}

// NewStore wraps points, which the store takes ownership of. The initial
// window covers the whole series.
func NewStore(points []Point) *Store {
	return &Store{
		points: points,
		window: ClampWindow(0, len(points)-1, len(points)),
		subs:   make(map[int]func(Snapshot)),
	}
}

// Len returns the number of generated points.
func (s *Store) Len() int {
	return len(s.points)
}

// Points returns a copy of the full series.
func (s *Store) Points() []Point {
	return append([]Point(nil), s.points...)
}

// Window returns the current window.
func (s *Store) Window() Window {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.window
}

// Snapshot returns the current window and revision.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{Window: s.window, Revision: s.revision}
}

// SetWindow selects a new visible range. Out-of-range or swapped bounds are
// corrected, never rejected. It returns the effective window.
func (s *Store) SetWindow(lower, upper int) Window {
	s.mu.Lock()
	w := ClampWindow(lower, upper, len(s.points))
	if w != (Window{Lower: lower, Upper: upper}) {
		logging.SeriesDebug("window (%d, %d) corrected to (%d, %d)", lower, upper, w.Lower, w.Upper)
	}
	s.window = w
	s.revision++
	snap := Snapshot{Window: w, Revision: s.revision}
	subs := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
	return w
}

// Shift moves the lower and upper bounds by the given deltas.
func (s *Store) Shift(lowerDelta, upperDelta int) Window {
	w := s.Window()
	return s.SetWindow(w.Lower+lowerDelta, w.Upper+upperDelta)
}

// Reset selects the whole series.
func (s *Store) Reset() Window {
	return s.SetWindow(0, len(s.points)-1)
}

// Visible returns a copy of the points inside the current window.
func (s *Store) Visible() []Point {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.points) == 0 {
		return nil
	}
	out := make([]Point, s.window.Len())
	copy(out, s.points[s.window.Lower:s.window.Upper+1])
	return out
}

// Subscribe registers fn to receive every new snapshot.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}
