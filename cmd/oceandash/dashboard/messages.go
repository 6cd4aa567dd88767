package dashboard

import (
	"sync"

	"oceandash/internal/config"
	"oceandash/internal/export"

	tea "github.com/charmbracelet/bubbletea"
)

// ExportedMsg reports a finished export.
type ExportedMsg struct {
	Artifact export.Artifact
	Err      error
}

// ConfigReloadedMsg carries a config reloaded from disk, or the reason the
// reload was rejected.
type ConfigReloadedMsg struct {
	Config *config.Config
	Err    error
}

// Relay forwards messages from background goroutines into a running
// program. Messages sent before Bind are dropped.
type Relay struct {
	mu sync.Mutex
	p  *tea.Program
}

// Bind attaches the program.
func (r *Relay) Bind(p *tea.Program) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.p = p
}

// Send posts msg to the bound program.
func (r *Relay) Send(msg any) {
	r.mu.Lock()
	p := r.p
	r.mu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}
