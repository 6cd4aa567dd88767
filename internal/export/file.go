package export

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"oceandash/internal/logging"

	"github.com/google/uuid"
)

// DefaultSlowThreshold is the export duration above which a warning is logged.
const DefaultSlowThreshold = 2 * time.Second

// Output formats understood by FileExporter.
const (
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// FileExporter writes each snapshot as a JSON document and/or a markdown
// report under Dir. Files are named by a fresh UUID.
type FileExporter struct {
	Dir     string
	Formats []string // defaults to json and markdown
	// SlowThreshold defaults to DefaultSlowThreshold.
	SlowThreshold time.Duration

	now   func() time.Time
	newID func() string
}

// NewFileExporter creates an exporter rooted at dir.
func NewFileExporter(dir string, formats ...string) *FileExporter {
	return &FileExporter{Dir: dir, Formats: formats}
}

// Export writes state and returns the artifact describing the written files.
func (f *FileExporter) Export(ctx context.Context, state DisplayState) (Artifact, error) {
	timer := logging.StartTimer(logging.CategoryExport, "export")
	defer timer.StopWithThreshold(f.slowThreshold())

	if f.Dir == "" {
		return Artifact{}, fmt.Errorf("export directory not configured")
	}
	if err := os.MkdirAll(f.Dir, 0755); err != nil {
		return Artifact{}, fmt.Errorf("failed to create export dir: %w", err)
	}

	art := Artifact{ID: f.id(), CreatedAt: f.clock()}
	for _, format := range f.formats() {
		if err := ctx.Err(); err != nil {
			return art, err
		}

		var (
			data []byte
			ext  string
			err  error
		)
		switch format {
		case FormatJSON:
			data, err = json.MarshalIndent(state, "", "  ")
			ext = ".json"
		case FormatMarkdown:
			data = []byte(Markdown(state))
			ext = ".md"
		default:
			return art, fmt.Errorf("unknown export format %q", format)
		}
		if err != nil {
			return art, fmt.Errorf("failed to encode %s export: %w", format, err)
		}

		path := filepath.Join(f.Dir, "oceandash-"+art.ID+ext)
		if err := os.WriteFile(path, data, 0644); err != nil {
			return art, fmt.Errorf("failed to write %s: %w", path, err)
		}
		art.Paths = append(art.Paths, path)
	}

	logging.Export("exported snapshot %s (%d files)", art.ID, len(art.Paths))
	return art, nil
}

func (f *FileExporter) slowThreshold() time.Duration {
	if f.SlowThreshold > 0 {
		return f.SlowThreshold
	}
	return DefaultSlowThreshold
}

func (f *FileExporter) formats() []string {
	if len(f.Formats) == 0 {
		return []string{FormatJSON, FormatMarkdown}
	}
	return f.Formats
}

func (f *FileExporter) id() string {
	if f.newID != nil {
		return f.newID()
	}
	return uuid.NewString()
}

func (f *FileExporter) clock() time.Time {
	if f.now != nil {
		return f.now()
	}
	return time.Now()
}

// Markdown renders state as a human-readable report.
func Markdown(state DisplayState) string {
	var sb strings.Builder

	sb.WriteString("# Ocean Analytics Report\n\n")
	sb.WriteString(fmt.Sprintf("_Captured %s_\n\n", state.TakenAt.Format(time.RFC3339)))

	if len(state.Metrics) > 0 {
		sb.WriteString("## Metrics\n\n")
		sb.WriteString("| Metric | Current | Previous | Change | Class |\n")
		sb.WriteString("|--------|---------|----------|--------|-------|\n")
		for _, m := range state.Metrics {
			change := "n/a"
			if v, ok := m.Derived.Change.Value(); ok {
				change = fmt.Sprintf("%+.1f%%", v)
			}
			sb.WriteString(fmt.Sprintf("| %s | %g %s | %g %s | %s | %s |\n",
				m.Sample.Title, m.Sample.Current, m.Sample.Unit,
				m.Sample.Previous, m.Sample.Unit, change, m.Label))
		}
		sb.WriteString("\n")
	}

	for _, c := range state.Charts {
		sb.WriteString(fmt.Sprintf("## %s\n\n", c.Title))
		if c.Subtitle != "" {
			sb.WriteString(c.Subtitle + "\n\n")
		}
		if len(c.Visible) == 0 {
			sb.WriteString("No data.\n\n")
			continue
		}
		sb.WriteString(fmt.Sprintf("Window %d-%d (%d points)\n\n", c.Window.Lower, c.Window.Upper, len(c.Visible)))
		sb.WriteString("| t | Actual | Predicted | Band |\n")
		sb.WriteString("|---|--------|-----------|------|\n")
		for _, p := range c.Visible {
			sb.WriteString(fmt.Sprintf("| %d | %.1f | %.1f | %.1f-%.1f |\n", p.T, p.Actual, p.Predicted, p.LowerBand, p.UpperBand))
		}
		sb.WriteString("\n")
	}

	if len(state.Conversation.History) > 0 {
		sb.WriteString("## Conversation\n\n")
		for _, m := range state.Conversation.History {
			who := "Assistant"
			if m.IsUser() {
				who = "You"
			}
			sb.WriteString(fmt.Sprintf("**%s** (%s): %s\n\n", who, m.Timestamp.Format("15:04:05"), m.Content))
		}
	}

	return sb.String()
}
