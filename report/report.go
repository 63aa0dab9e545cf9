package report

import (
	"fmt"
	"strings"
	"sync"
)

type Level int32

const (
	LevelTrace Level = iota + 1
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "trace"
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	}
	return "unknown"
}

// Diagnostic is a single message of an export or import run.
type Diagnostic struct {
	Level   Level  `json:"level"`
	Phase   string `json:"phase,omitempty"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message"`
}

func (d Diagnostic) String() string {
	var sb strings.Builder
	sb.WriteString("[" + d.Level.String() + "]")
	if d.Phase != "" {
		sb.WriteString(" " + d.Phase)
	}
	if d.Subject != "" {
		sb.WriteString(" " + d.Subject + ":")
	}
	sb.WriteString(" " + d.Message)
	return sb.String()
}

// Report collects the diagnostics of one run. Partial failures end up here
// so callers can inspect them after the run.
type Report struct {
	mu    sync.RWMutex
	items []Diagnostic
}

func New() *Report {
	return &Report{items: make([]Diagnostic, 0)}
}

func (r *Report) Add(d Diagnostic) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, d)
}

func (r *Report) Diagnostics() []Diagnostic {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Diagnostic, len(r.items))
	copy(out, r.items)
	return out
}

// Filter returns the diagnostics at or above level.
func (r *Report) Filter(level Level) []Diagnostic {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Diagnostic, 0)
	for _, item := range r.items {
		if item.Level >= level {
			out = append(out, item)
		}
	}
	return out
}

// Warnings returns the warn level diagnostics only, see Errors.
func (r *Report) Warnings() []Diagnostic {
	return r.level(LevelWarn)
}

func (r *Report) Errors() []Diagnostic {
	return r.level(LevelError)
}

func (r *Report) level(level Level) []Diagnostic {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Diagnostic, 0)
	for _, item := range r.items {
		if item.Level == level {
			out = append(out, item)
		}
	}
	return out
}

func (r *Report) HasErrors() bool {
	return len(r.Errors()) > 0
}

func (r *Report) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

func (r *Report) String() string {
	var sb strings.Builder
	for _, item := range r.Diagnostics() {
		sb.WriteString(item.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

// Summary renders "n warnings, m errors".
func (r *Report) Summary() string {
	var warns, errs int
	for _, item := range r.Diagnostics() {
		switch item.Level {
		case LevelWarn:
			warns++
		case LevelError:
			errs++
		}
	}
	return fmt.Sprintf("%d warnings, %d errors", warns, errs)
}
