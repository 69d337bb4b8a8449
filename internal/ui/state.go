package ui

import (
	"sync"
	"time"

	"github.com/OpenTraceLab/OpenTracePlot/pkg/plot"
)

// StateSnapshot captures a copy of the state data for rendering without
// requiring the UI to hold locks while laying out widgets.
type StateSnapshot struct {
	Title  string
	Status string

	Plots       int
	Annotations int
	Visible     int
	Triggers    plot.Trigger

	Logs []string

	LastUpdated time.Time
}

// AppState tracks the mutable state shared between the Gio event loop, the
// log sink and the command building the plots.
type AppState struct {
	mu sync.RWMutex

	title  string
	status string

	plots       int
	annotations int
	visible     int
	triggers    plot.Trigger

	logs     []string
	logLimit int

	lastUpdated time.Time
}

// NewState returns a baseline AppState with safe defaults.
func NewState() *AppState {
	return &AppState{
		title:       "OpenTracePlot",
		status:      "Idle",
		triggers:    plot.TriggerPick,
		logLimit:    200,
		lastUpdated: time.Now(),
	}
}

// Snapshot returns a copy of the mutable state for rendering.
func (s *AppState) Snapshot() StateSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	logCopy := make([]string, len(s.logs))
	copy(logCopy, s.logs)

	return StateSnapshot{
		Title:       s.title,
		Status:      s.status,
		Plots:       s.plots,
		Annotations: s.annotations,
		Visible:     s.visible,
		Triggers:    s.triggers,
		Logs:        logCopy,
		LastUpdated: s.lastUpdated,
	}
}

// SetTitle sets the window heading.
func (s *AppState) SetTitle(title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.title = title
	s.lastUpdated = time.Now()
}

// SetStatus updates the user-facing status message.
func (s *AppState) SetStatus(status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
	s.lastUpdated = time.Now()
}

// SetSession records the size of a rendered session.
func (s *AppState) SetSession(plots, annotations int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plots = plots
	s.annotations = annotations
	s.visible = 0
	s.lastUpdated = time.Now()
}

// SetVisible records how many annotations are shown.
func (s *AppState) SetVisible(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.visible == n {
		return
	}
	s.visible = n
	s.lastUpdated = time.Now()
}

// SetTriggers records the subscribed pointer interactions.
func (s *AppState) SetTriggers(t plot.Trigger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.triggers = t
	s.lastUpdated = time.Now()
}

// AppendLog appends a log message, trimming the oldest entries past the limit.
func (s *AppState) AppendLog(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logs = append(s.logs, msg)
	if s.logLimit > 0 && len(s.logs) > s.logLimit {
		offset := len(s.logs) - s.logLimit
		s.logs = append([]string(nil), s.logs[offset:]...)
	}
	s.lastUpdated = time.Now()
}
