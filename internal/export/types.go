// Package export defines the aggregate display snapshot and the collaborator
// that persists it.
package export

import (
	"context"
	"time"

	"oceandash/internal/conversation"
	"oceandash/internal/metrics"
	"oceandash/internal/series"
)

// ChartState is one chart's visible slice.
type ChartState struct {
	Title    string         `json:"title"`
	Subtitle string         `json:"subtitle"`
	Window   series.Window  `json:"window"`
	Visible  []series.Point `json:"visible"`
	Revision uint64         `json:"revision"`
}

// MetricCard pairs a sample with its derived classification.
type MetricCard struct {
	Sample  metrics.Sample  `json:"sample"`
	Derived metrics.Derived `json:"derived"`
	Label   metrics.Label   `json:"label"`
}

// Layout is presentation-only state.
type Layout struct {
	ChatFocused bool `json:"chat_focused"`
	ActiveChart int  `json:"active_chart"`
}

// DisplayState is everything a renderer needs for one frame.
type DisplayState struct {
	Conversation conversation.State `json:"conversation"`
	Charts       []ChartState       `json:"charts"`
	Metrics      []MetricCard       `json:"metrics"`
	Layout       Layout             `json:"layout"`
	TakenAt      time.Time          `json:"taken_at"`
}

// Artifact describes a completed export.
type Artifact struct {
	ID        string    `json:"id"`
	Paths     []string  `json:"paths"`
	CreatedAt time.Time `json:"created_at"`
}

// Exporter persists a snapshot somewhere outside the process.
type Exporter interface {
	Export(ctx context.Context, state DisplayState) (Artifact, error)
}

// NopExporter accepts every snapshot and writes nothing.
type NopExporter struct{}

// Export returns an artifact with no paths.
func (NopExporter) Export(ctx context.Context, state DisplayState) (Artifact, error) {
	if err := ctx.Err(); err != nil {
		return Artifact{}, err
	}
	return Artifact{CreatedAt: state.TakenAt}, nil
}
